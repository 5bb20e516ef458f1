package seq

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// Index and value of the largest element, ok is false
// if the sequence was empty. The first one wins on ties.
func MaxInd[I any, T constraints.Ordered](it iter.Seq2[I, T]) (ind I, max T, ok bool) {
	for i, v := range it {
		if !ok || v > max {
			ind, max, ok = i, v, true
		}
	}
	return ind, max, ok
}

// Index and value of the smallest element, ok is false
// if the sequence was empty. The first one wins on ties.
func MinInd[I any, T constraints.Ordered](it iter.Seq2[I, T]) (ind I, min T, ok bool) {
	for i, v := range it {
		if !ok || v < min {
			ind, min, ok = i, v, true
		}
	}
	return ind, min, ok
}
