package gheap

// generic adaptable min-heap: every inserted element
// gets an Entry token that can be used later to change
// its key or remove it without searching the heap

import (
	"errors"
	"fmt"
	"iter"
	"sync/atomic"

	"golang.org/x/exp/constraints"
)

var (
	ERR_INVALID_ENTRY = errors.New("Invalid heap entry")
	ERR_EMPTY_QUEUE   = errors.New("Empty queue")
)

// Source of heap ids. Zero is never handed out so the
// zero Entry is invalid for every heap.
var heap_ids atomic.Uint64

// Handle of a single element. Only meaningful for the heap
// that returned it and only until the element is removed.
type Entry struct {
	heap uint64
	slot int
	gen  uint32
}

func (e Entry) String() string {
	return fmt.Sprintf("entry{heap: %d, slot: %d, gen: %d}", e.heap, e.slot, e.gen)
}

// Key/value pair as stored in the heap
type Item[K constraints.Ordered, V any] struct {
	Key   K
	Value V
}

type record[K constraints.Ordered, V any] struct {
	key   K
	value V
	pos   int
	gen   uint32
	live  bool
}

// Heap keeps its elements in an arena of records, the heap
// array itself only holds arena slots. Record positions are
// rewritten on every swap so each entry always knows where
// its element sits. NaN keys break the ordering and are not
// supported. Not safe for concurrent use.
type Heap[K constraints.Ordered, V any] struct {
	id    uint64
	arena []record[K, V]
	free  []int
	h     []int
}

func New[K constraints.Ordered, V any]() *Heap[K, V] {
	return NewWithCapacity[K, V](0)
}

// Preallocates room for n elements
func NewWithCapacity[K constraints.Ordered, V any](n int) *Heap[K, V] {
	return &Heap[K, V]{
		id:    heap_ids.Add(1),
		arena: make([]record[K, V], 0, n),
		h:     make([]int, 0, n),
	}
}

func (h *Heap[K, V]) Len() int      { return len(h.h) }
func (h *Heap[K, V]) IsEmpty() bool { return len(h.h) == 0 }

func (h *Heap[K, V]) key(i int) K {
	return h.arena[h.h[i]].key
}

func (h *Heap[K, V]) swap(i, j int) {
	h.h[i], h.h[j] = h.h[j], h.h[i]
	h.arena[h.h[i]].pos = i
	h.arena[h.h[j]].pos = j
}

func (h *Heap[K, V]) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !(h.key(i) < h.key(parent)) {
			return
		}
		h.swap(i, parent)
		i = parent
	}
}

// Left child wins ties
func (h *Heap[K, V]) down(i int) {
	n := len(h.h)
	for {
		child := 2*i + 1
		if child >= n {
			return
		}
		if right := child + 1; right < n && h.key(right) < h.key(child) {
			child = right
		}
		if !(h.key(child) < h.key(i)) {
			return
		}
		h.swap(i, child)
		i = child
	}
}

func (h *Heap[K, V]) alloc(key K, value V) int {
	rec := record[K, V]{key: key, value: value, pos: len(h.h), live: true}
	if n := len(h.free); n > 0 {
		slot := h.free[n-1]
		h.free = h.free[:n-1]
		rec.gen = h.arena[slot].gen
		h.arena[slot] = rec
		return slot
	}
	h.arena = append(h.arena, rec)
	return len(h.arena) - 1
}

// Bumping the generation invalidates every outstanding
// token pointing at the slot
func (h *Heap[K, V]) release(slot int) {
	h.arena[slot] = record[K, V]{gen: h.arena[slot].gen + 1}
	h.free = append(h.free, slot)
}

// Returns the arena slot of a live entry minted by this heap
func (h *Heap[K, V]) resolve(e Entry) (int, error) {
	if e.heap != h.id {
		return 0, fmt.Errorf("%s belongs to another heap: %w", e, ERR_INVALID_ENTRY)
	}
	if e.slot < 0 || e.slot >= len(h.arena) {
		return 0, fmt.Errorf("%s is out of range: %w", e, ERR_INVALID_ENTRY)
	}
	rec := &h.arena[e.slot]
	if !rec.live || rec.gen != e.gen {
		return 0, fmt.Errorf("%s was already removed: %w", e, ERR_INVALID_ENTRY)
	}
	if rec.pos >= len(h.h) || h.h[rec.pos] != e.slot {
		return 0, fmt.Errorf("%s lost its position: %w", e, ERR_INVALID_ENTRY)
	}
	return e.slot, nil
}

func (h *Heap[K, V]) Insert(key K, value V) Entry {
	slot := h.alloc(key, value)
	h.h = append(h.h, slot)
	h.up(len(h.h) - 1)
	return Entry{heap: h.id, slot: slot, gen: h.arena[slot].gen}
}

// Removes the element with the smallest key
func (h *Heap[K, V]) RemoveMin() (Item[K, V], error) {
	if len(h.h) == 0 {
		return Item[K, V]{}, ERR_EMPTY_QUEUE
	}
	rec := h.arena[h.h[0]]
	return h.Remove(Entry{heap: h.id, slot: h.h[0], gen: rec.gen})
}

// Removes the element behind e, e can't be used afterwards.
// The element taking its place only ever moves in one
// direction: up if it is smaller than the removed key,
// down otherwise.
func (h *Heap[K, V]) Remove(e Entry) (Item[K, V], error) {
	slot, err := h.resolve(e)
	if err != nil {
		return Item[K, V]{}, err
	}
	removed := Item[K, V]{Key: h.arena[slot].key, Value: h.arena[slot].value}

	i, last := h.arena[slot].pos, len(h.h)-1
	h.swap(i, last)
	h.h = h.h[:last]
	h.release(slot)

	if i < last {
		if h.key(i) < removed.Key {
			h.up(i)
		} else {
			h.down(i)
		}
	}
	return removed, nil
}

// Changes the key of e in place and returns the previous one
func (h *Heap[K, V]) ReplaceKey(e Entry, key K) (K, error) {
	slot, err := h.resolve(e)
	if err != nil {
		var zero K
		return zero, err
	}
	rec := &h.arena[slot]
	old := rec.key
	rec.key = key
	switch {
	case key < old:
		h.up(rec.pos)
	case key > old:
		h.down(rec.pos)
	}
	return old, nil
}

// Smallest element without removing it
func (h *Heap[K, V]) Peek() (Item[K, V], error) {
	if len(h.h) == 0 {
		return Item[K, V]{}, ERR_EMPTY_QUEUE
	}
	rec := h.arena[h.h[0]]
	return Item[K, V]{Key: rec.key, Value: rec.value}, nil
}

func (h *Heap[K, V]) Contains(e Entry) bool {
	_, err := h.resolve(e)
	return err == nil
}

func (h *Heap[K, V]) Key(e Entry) (K, error) {
	slot, err := h.resolve(e)
	if err != nil {
		var zero K
		return zero, err
	}
	return h.arena[slot].key, nil
}

func (h *Heap[K, V]) Value(e Entry) (V, error) {
	slot, err := h.resolve(e)
	if err != nil {
		var zero V
		return zero, err
	}
	return h.arena[slot].value, nil
}

// Iterator over the live elements in heap array order.
// The heap must not be modified while iterating.
func (h *Heap[K, V]) All() iter.Seq2[Entry, Item[K, V]] {
	return func(yield func(Entry, Item[K, V]) bool) {
		for _, slot := range h.h {
			rec := h.arena[slot]
			if !yield(
				Entry{heap: h.id, slot: slot, gen: rec.gen},
				Item[K, V]{Key: rec.key, Value: rec.value},
			) {
				return
			}
		}
	}
}
