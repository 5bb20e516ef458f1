package hill

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Robogera/hillclimb/pkg/grid"
)

var (
	ERR_EMPTY_MAP     = errors.New("Empty height map")
	ERR_RAGGED        = errors.New("Rows have different lengths")
	ERR_BAD_ELEVATION = errors.New("Bad elevation mark")
	ERR_NO_START      = errors.New("No start point")
	ERR_NO_END        = errors.New("No end point")
	ERR_DUPLICATE     = errors.New("Duplicate start or end point")
)

const (
	MinElevation = 0
	MaxElevation = 'z' - 'a'
)

type Kind uint8

const (
	KindNormal Kind = iota
	KindStart
	KindEnd
)

type Cell struct {
	Elevation int
	Kind      Kind
}

func (c Cell) String() string {
	switch c.Kind {
	case KindStart:
		return "S"
	case KindEnd:
		return "E"
	default:
		return string(rune('a' + c.Elevation))
	}
}

// Climbing is limited to one step up, descending is unlimited
func CanReach(from, to Cell) bool {
	return to.Elevation <= from.Elevation+1
}

type Map struct {
	*grid.Grid[Cell]
	Start, End grid.Point
}

func parseCell(r rune) (Cell, error) {
	switch {
	case r == 'S':
		return Cell{Elevation: MinElevation, Kind: KindStart}, nil
	case r == 'E':
		return Cell{Elevation: MaxElevation, Kind: KindEnd}, nil
	case r >= 'a' && r <= 'z':
		return Cell{Elevation: int(r - 'a'), Kind: KindNormal}, nil
	}
	return Cell{}, fmt.Errorf("%q: %w", r, ERR_BAD_ELEVATION)
}

// Reads a height map, one row per line. Blank lines
// around the map are ignored.
func Parse(r io.Reader) (*Map, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("Can't read height map: %w", err)
	}
	return ParseLines(lines)
}

func ParseLines(lines []string) (*Map, error) {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, ERR_EMPTY_MAP
	}

	cols := len(strings.TrimSpace(lines[0]))
	m := &Map{
		Grid:  grid.NewGrid[Cell](len(lines), cols),
		Start: grid.Pt(-1, -1),
		End:   grid.Pt(-1, -1),
	}
	for ind_r, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) != cols {
			return nil, fmt.Errorf("Row %d has %d cells, expected %d: %w", ind_r, len(line), cols, ERR_RAGGED)
		}
		for ind_c, r := range line {
			cell, err := parseCell(r)
			if err != nil {
				return nil, fmt.Errorf("Can't parse cell %s: %w", grid.Pt(ind_r, ind_c), err)
			}
			p := grid.Pt(ind_r, ind_c)
			switch cell.Kind {
			case KindStart:
				if m.Start.Row >= 0 {
					return nil, fmt.Errorf("Second start at %s: %w", p, ERR_DUPLICATE)
				}
				m.Start = p
			case KindEnd:
				if m.End.Row >= 0 {
					return nil, fmt.Errorf("Second end at %s: %w", p, ERR_DUPLICATE)
				}
				m.End = p
			}
			m.Set(p, cell)
		}
	}
	if m.Start.Row < 0 {
		return nil, ERR_NO_START
	}
	if m.End.Row < 0 {
		return nil, ERR_NO_END
	}
	return m, nil
}

// Every cell with the lowest elevation, start included
func (m *Map) Lowest() []grid.Point {
	var ret []grid.Point
	for p, cell := range m.All() {
		if cell.Elevation == MinElevation {
			ret = append(ret, p)
		}
	}
	return ret
}

func (m *Map) String() string {
	b := new(strings.Builder)
	for p, cell := range m.All() {
		b.WriteString(cell.String())
		if p.Col == m.Cols()-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
