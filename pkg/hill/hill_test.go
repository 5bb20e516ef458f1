package hill

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/Robogera/hillclimb/pkg/grid"
)

var example = []string{
	"Sabqponm",
	"abcryxxl",
	"accszExk",
	"acctuvwj",
	"abdefghi",
}

func mustParse(t *testing.T, lines []string) *Map {
	t.Helper()
	m, err := ParseLines(lines)
	if err != nil {
		t.Fatalf("Can't parse map: %s", err)
	}
	return m
}

// Path has to start at from, end at the end point and
// only take legal steps
func checkPath(t *testing.T, m *Map, result Result, can_step func(from, to Cell) bool) {
	t.Helper()
	if len(result.Path) != result.Steps+1 {
		t.Fatalf("Path of %d cells for %d steps", len(result.Path), result.Steps)
	}
	for i := 1; i < len(result.Path); i++ {
		a, b := result.Path[i-1], result.Path[i]
		if math.Abs(float64(a.Row-b.Row))+math.Abs(float64(a.Col-b.Col)) != 1 {
			t.Fatalf("Step %s -> %s is not orthogonal", a, b)
		}
		if !can_step(m.At(a), m.At(b)) {
			t.Fatalf("Illegal step %s -> %s (%s -> %s)", a, b, m.At(a), m.At(b))
		}
	}
}

func TestParse(t *testing.T) {
	m, err := Parse(strings.NewReader("\n" + strings.Join(example, "\n") + "\n\n"))
	if err != nil {
		t.Fatalf("Can't parse: %s", err)
	}
	if m.Rows() != 5 || m.Cols() != 8 {
		t.Fatalf("Unexpected dims %dx%d", m.Rows(), m.Cols())
	}
	if m.Start != grid.Pt(0, 0) || m.End != grid.Pt(2, 5) {
		t.Fatalf("Unexpected start %s or end %s", m.Start, m.End)
	}
	if got := m.At(m.End).Elevation; got != MaxElevation {
		t.Fatalf("End elevation %d", got)
	}
	if got := m.String(); got != strings.Join(example, "\n")+"\n" {
		t.Fatalf("Round trip mismatch:\n%s", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		err   error
	}{
		{"empty", []string{"", " "}, ERR_EMPTY_MAP},
		{"ragged", []string{"Sab", "cE"}, ERR_RAGGED},
		{"bad mark", []string{"SaB", "abE"}, ERR_BAD_ELEVATION},
		{"no start", []string{"aaE"}, ERR_NO_START},
		{"no end", []string{"Saa"}, ERR_NO_END},
		{"two starts", []string{"SaE", "aSa"}, ERR_DUPLICATE},
		{"two ends", []string{"SaE", "aEa"}, ERR_DUPLICATE},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseLines(tt.lines); !errors.Is(err, tt.err) {
				t.Fatalf("Expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestCanReach(t *testing.T) {
	b, c, d := Cell{Elevation: 1}, Cell{Elevation: 2}, Cell{Elevation: 3}
	if !CanReach(b, c) || CanReach(b, d) || !CanReach(d, b) || !CanReach(c, c) {
		t.Fatal("Climbing rule broken")
	}
}

func TestShortestPath(t *testing.T) {
	m := mustParse(t, example)
	result, err := m.ShortestPath(m.Start)
	if err != nil {
		t.Fatalf("Search failed: %s", err)
	}
	if result.Steps != 31 {
		t.Fatalf("Expected 31 steps, got %d", result.Steps)
	}
	checkPath(t, m, result, CanReach)
	if result.Path[0] != m.Start || result.Path[len(result.Path)-1] != m.End {
		t.Fatalf("Path goes from %s to %s", result.Path[0], result.Path[len(result.Path)-1])
	}
	t.Logf("Stats: %+v", result.Stats)
	if result.Stats.Pops == 0 || result.Stats.Relaxations < result.Steps {
		t.Fatalf("Suspicious stats: %+v", result.Stats)
	}
}

func TestFewestStepsFromLowest(t *testing.T) {
	m := mustParse(t, example)
	for _, workers := range []int{0, 1, 4} {
		result, err := m.FewestStepsFromLowest(context.Background(), workers)
		if err != nil {
			t.Fatalf("Search with %d workers failed: %s", workers, err)
		}
		if result.Steps != 29 {
			t.Fatalf("Expected 29 steps with %d workers, got %d", workers, result.Steps)
		}
		checkPath(t, m, result, CanReach)
	}
}

func TestFewestStepsFromLowestReverse(t *testing.T) {
	m := mustParse(t, example)
	result, err := m.FewestStepsFromLowestReverse()
	if err != nil {
		t.Fatalf("Search failed: %s", err)
	}
	if result.Steps != 29 {
		t.Fatalf("Expected 29 steps, got %d", result.Steps)
	}
	checkPath(t, m, result, CanReach)
	if result.Path[len(result.Path)-1] != m.End {
		t.Fatalf("Path ends at %s", result.Path[len(result.Path)-1])
	}
	if m.At(result.Path[0]).Elevation != MinElevation {
		t.Fatalf("Path starts at %s", m.At(result.Path[0]))
	}
}

func TestUnreachable(t *testing.T) {
	m := mustParse(t, []string{"SbcE"})
	if _, err := m.ShortestPath(m.Start); !errors.Is(err, ERR_UNREACHABLE) {
		t.Fatalf("Expected %v, got %v", ERR_UNREACHABLE, err)
	}
	if _, err := m.FewestStepsFromLowest(context.Background(), 2); !errors.Is(err, ERR_UNREACHABLE) {
		t.Fatalf("Expected %v, got %v", ERR_UNREACHABLE, err)
	}
	if _, err := m.FewestStepsFromLowestReverse(); !errors.Is(err, ERR_UNREACHABLE) {
		t.Fatalf("Expected %v, got %v", ERR_UNREACHABLE, err)
	}

	distances, err := m.Distances(m.Start)
	if err != nil {
		t.Fatalf("Can't compute distances: %s", err)
	}
	for ind, want := range []int{0, 1, 2, Unreachable} {
		if got := distances.At(grid.Pt(0, ind)); got != want {
			t.Fatalf("Distance to column %d: %d, want %d", ind, got, want)
		}
	}

	dense, err := m.DistanceMatrix(m.Start)
	if err != nil {
		t.Fatalf("Can't compute distance matrix: %s", err)
	}
	if !math.IsInf(dense.At(0, 3), 1) || dense.At(0, 2) != 2 {
		t.Fatalf("Unexpected matrix row: %v", dense.RawRowView(0))
	}
}

func TestOutside(t *testing.T) {
	m := mustParse(t, example)
	if _, err := m.ShortestPath(grid.Pt(10, 0)); !errors.Is(err, ERR_OUTSIDE) {
		t.Fatalf("Expected %v, got %v", ERR_OUTSIDE, err)
	}
}

func TestCancelled(t *testing.T) {
	m := mustParse(t, example)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.FewestStepsFromLowest(ctx, 2); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected %v, got %v", context.Canceled, err)
	}
}
