package hill

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/Robogera/hillclimb/pkg/gheap"
	"github.com/Robogera/hillclimb/pkg/grid"
	"github.com/Robogera/hillclimb/pkg/seq"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

var (
	ERR_UNREACHABLE = errors.New("Goal unreachable")
	ERR_OUTSIDE     = errors.New("Point outside of the map")
)

// Distance of cells the search never reached
const Unreachable = math.MaxInt

var nowhere = grid.Pt(-1, -1)

type Stats struct {
	Pops        int
	Relaxations int
}

func (s Stats) Add(other Stats) Stats {
	return Stats{
		Pops:        s.Pops + other.Pops,
		Relaxations: s.Relaxations + other.Relaxations,
	}
}

type Result struct {
	Steps int
	// From the search origin to the goal, both included
	Path  []grid.Point
	Stats Stats
}

type searchState struct {
	distances *grid.Grid[int]
	previous  *grid.Grid[grid.Point]
	goal      grid.Point
	stats     Stats
}

// Dijkstra over the map. Every cell is queued up front, the
// locators grid maps cells to their heap entries so relaxing
// a cell is a single ReplaceKey. Stops at the first popped
// cell satisfying goal, or when only unreachable cells are left.
func (m *Map) search(
	from grid.Point,
	can_step func(from, to Cell) bool,
	goal func(grid.Point, Cell) bool,
) (*searchState, error) {
	if !m.In(from) {
		return nil, fmt.Errorf("Can't start at %s: %w", from, ERR_OUTSIDE)
	}
	state := &searchState{
		distances: grid.Fill(m.Rows(), m.Cols(), Unreachable),
		previous:  grid.Fill(m.Rows(), m.Cols(), nowhere),
		goal:      nowhere,
	}
	state.distances.Set(from, 0)

	queue := gheap.NewWithCapacity[int, grid.Point](m.Len())
	locators := grid.Map(state.distances, func(d int, p grid.Point) gheap.Entry {
		return queue.Insert(d, p)
	})

	for !queue.IsEmpty() {
		item, err := queue.RemoveMin()
		if err != nil {
			return nil, err
		}
		state.stats.Pops++
		distance, current := item.Key, item.Value
		if distance == Unreachable {
			break
		}
		current_cell := m.At(current)
		if goal != nil && goal(current, current_cell) {
			state.goal = current
			break
		}
		for neighbor := range m.Neighbors(current) {
			if !can_step(current_cell, m.At(neighbor)) {
				continue
			}
			if distance+1 >= state.distances.At(neighbor) {
				continue
			}
			if _, err := queue.ReplaceKey(locators.At(neighbor), distance+1); err != nil {
				return nil, fmt.Errorf("Can't relax %s: %w", neighbor, err)
			}
			state.distances.Set(neighbor, distance+1)
			state.previous.Set(neighbor, current)
			state.stats.Relaxations++
		}
	}
	return state, nil
}

func (s *searchState) path() []grid.Point {
	var path []grid.Point
	for p := s.goal; p != nowhere; p = s.previous.At(p) {
		path = append(path, p)
	}
	slices.Reverse(path)
	return path
}

func (s *searchState) result() (Result, error) {
	if s.goal == nowhere {
		return Result{Steps: Unreachable, Stats: s.stats}, ERR_UNREACHABLE
	}
	return Result{
		Steps: s.distances.At(s.goal),
		Path:  s.path(),
		Stats: s.stats,
	}, nil
}

// Fewest steps from `from` to the end point
func (m *Map) ShortestPath(from grid.Point) (Result, error) {
	state, err := m.search(from, CanReach, func(_ grid.Point, c Cell) bool {
		return c.Kind == KindEnd
	})
	if err != nil {
		return Result{}, err
	}
	return state.result()
}

// Distance to every cell reachable from `from`,
// Unreachable for the rest
func (m *Map) Distances(from grid.Point) (*grid.Grid[int], error) {
	state, err := m.search(from, CanReach, nil)
	if err != nil {
		return nil, err
	}
	return state.distances, nil
}

// Same as Distances, unreachable cells are +Inf
func (m *Map) DistanceMatrix(from grid.Point) (*mat.Dense, error) {
	distances, err := m.Distances(from)
	if err != nil {
		return nil, err
	}
	return grid.ToDense(distances, func(d int) float64 {
		if d == Unreachable {
			return math.Inf(1)
		}
		return float64(d)
	}), nil
}

// Runs one search per lowest cell, at most `workers` at a time,
// and returns the shortest of them
func (m *Map) FewestStepsFromLowest(ctx context.Context, workers int) (Result, error) {
	starts := m.Lowest()
	results := make([]Result, len(starts))

	eg, child_ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for ind, start := range starts {
		eg.Go(func() error {
			if err := child_ctx.Err(); err != nil {
				return err
			}
			result, err := m.ShortestPath(start)
			if err != nil && !errors.Is(err, ERR_UNREACHABLE) {
				return fmt.Errorf("Search from %s failed: %w", start, err)
			}
			results[ind] = result
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Result{}, err
	}

	var total Stats
	for _, result := range results {
		total = total.Add(result.Stats)
	}
	best, _, ok := seq.MinInd(reachable(results))
	if !ok {
		return Result{Steps: Unreachable, Stats: total}, ERR_UNREACHABLE
	}
	ret := results[best]
	ret.Stats = total
	return ret, nil
}

func reachable(results []Result) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for ind, result := range results {
			if result.Steps == Unreachable {
				continue
			}
			if !yield(ind, result.Steps) {
				return
			}
		}
	}
}

// Same answer as FewestStepsFromLowest with a single search:
// walks down from the end point with the climbing rule inverted
// until it hits the lowest elevation
func (m *Map) FewestStepsFromLowestReverse() (Result, error) {
	state, err := m.search(m.End,
		func(from, to Cell) bool { return CanReach(to, from) },
		func(_ grid.Point, c Cell) bool { return c.Elevation == MinElevation },
	)
	if err != nil {
		return Result{}, err
	}
	result, err := state.result()
	slices.Reverse(result.Path)
	return result, err
}
