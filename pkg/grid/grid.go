package grid

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/mat"
)

var (
	ERR_OUT_OF_BOUNDS = errors.New("Out of bounds")
)

type Point struct {
	Row, Col int
}

func Pt(row, col int) Point {
	return Point{Row: row, Col: col}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Up, down, left, right
var directions = [4]Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Dense row-major 2d grid
type Grid[T any] struct {
	s          []T
	rows, cols int
}

// Returns a new grid with pre-allocated
// backing slice
func NewGrid[T any](rows, cols int) *Grid[T] {
	return &Grid[T]{
		s:    make([]T, rows*cols),
		rows: rows,
		cols: cols,
	}
}

// Returns a new grid with every cell set to v
func Fill[T any](rows, cols int, v T) *Grid[T] {
	g := NewGrid[T](rows, cols)
	for i := range g.s {
		g.s[i] = v
	}
	return g
}

func (g *Grid[T]) Rows() int { return g.rows }
func (g *Grid[T]) Cols() int { return g.cols }
func (g *Grid[T]) Len() int  { return len(g.s) }

func (g *Grid[T]) In(p Point) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// Panics if p is outside of the grid, use In to check
func (g *Grid[T]) At(p Point) T {
	return g.s[g.cols*p.Row+p.Col]
}

// Set the value of cell p
func (g *Grid[T]) Set(p Point, v T) error {
	if !g.In(p) {
		return fmt.Errorf("Can't set %s in %dx%d grid: %w", p, g.rows, g.cols, ERR_OUT_OF_BOUNDS)
	}
	g.s[g.cols*p.Row+p.Col] = v
	return nil
}

// Iterate over all cells row by row
func (g *Grid[T]) All() iter.Seq2[Point, T] {
	return func(yield func(Point, T) bool) {
		for ind, value := range g.s {
			if !yield(Pt(ind/g.cols, ind%g.cols), value) {
				return
			}
		}
	}
}

// Iterate over the in-bounds orthogonal neighbors of p
func (g *Grid[T]) Neighbors(p Point) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for _, d := range directions {
			n := Pt(p.Row+d.Row, p.Col+d.Col)
			if !g.In(n) {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// Maps an existing grid into a new one via f
func Map[T, E any](g *Grid[T], f func(e T, p Point) E) *Grid[E] {
	new_grid := NewGrid[E](g.rows, g.cols)
	for p, value := range g.All() {
		new_grid.s[g.cols*p.Row+p.Col] = f(value, p)
	}
	return new_grid
}

// Returns a new grid by mapping a mat.Dense with a provided function f
func NewGridFromDense[T any](m *mat.Dense, f func(float64) T) *Grid[T] {
	r, c := m.Dims()
	new_grid := NewGrid[T](r, c)
	for ind_r := range r {
		for ind_c := range c {
			new_grid.s[c*ind_r+ind_c] = f(m.At(ind_r, ind_c))
		}
	}
	return new_grid
}

// Exports the grid into a mat.Dense via f
func ToDense[T any](g *Grid[T], f func(T) float64) *mat.Dense {
	if g.Len() == 0 {
		return &mat.Dense{}
	}
	data := make([]float64, len(g.s))
	for ind, value := range g.s {
		data[ind] = f(value)
	}
	return mat.NewDense(g.rows, g.cols, data)
}

// Pretty print
func (g *Grid[T]) Sprintf(format string) string {
	b := new(strings.Builder)
	t := tabwriter.NewWriter(b, 3, 1, 1, ' ', 0)
	for p, value := range g.All() {
		fmt.Fprintf(t, format, value)
		fmt.Fprint(t, "\t")
		if p.Col == g.cols-1 {
			fmt.Fprint(t, "\n")
		}
	}
	t.Flush()
	return b.String()
}

func (g *Grid[T]) String() string {
	return g.Sprintf("%v")
}
