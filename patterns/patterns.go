// Package patterns provides seed populations. A pattern is a pure function
// from an anchor coordinate to the living cells it places around it.
package patterns

import (
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-sparse/model"
)

// ErrUnknownPattern is returned when a pattern name is not registered
var ErrUnknownPattern = errors.New("unknown pattern")

// Generator places a pattern relative to anchor
type Generator func(anchor model.Position) []model.Position

// Registry maps pattern names to generators
type Registry map[string]Generator

// FromOffsets returns a generator that shifts fixed offsets by the anchor
func FromOffsets(offsets []model.Position) Generator {
	offsets = slices.Clone(offsets)
	return func(anchor model.Position) []model.Position {
		cells := make([]model.Position, len(offsets))
		for i, o := range offsets {
			cells[i] = model.Position{X: anchor.X + o.X, Y: anchor.Y + o.Y}
		}
		return cells
	}
}

// ParseRows reads a plain text picture, one string per row. 'O', '#' and '*'
// are living cells, '.' and ' ' are dead.
func ParseRows(rows []string) ([]model.Position, error) {
	var cells []model.Position
	for y, row := range rows {
		for x, r := range row {
			switch r {
			case 'O', '#', '*':
				cells = append(cells, model.Position{X: x, Y: y})
			case '.', ' ':
			default:
				return nil, errors.Errorf("[ParseRows] unexpected %q at row %d column %d", r, y, x)
			}
		}
	}
	return cells, nil
}

func mustRows(rows ...string) Generator {
	cells, err := ParseRows(rows)
	if err != nil {
		panic(err)
	}
	return FromOffsets(cells)
}

// Builtins returns a registry holding the built-in patterns
func Builtins() Registry {
	return Registry{
		"blinker": mustRows(
			"O",
			"O",
			"O",
		),
		"block": mustRows(
			"OO",
			"OO",
		),
		"beehive": mustRows(
			".OO.",
			"O..O",
			".OO.",
		),
		"toad": mustRows(
			".OOO",
			"OOO.",
		),
		"glider": mustRows(
			".O.",
			"..O",
			"OOO",
		),
		"r-pentomino": mustRows(
			".OO",
			"OO.",
			".O.",
		),
		"gosper-gun": mustRows(
			"........................O...........",
			"......................O.O...........",
			"............OO......OO............OO",
			"...........O...O....OO............OO",
			"OO........O.....O...OO..............",
			"OO........O...O.OO....O.O...........",
			"..........O.....O.......O...........",
			"...........O...O....................",
			"............OO......................",
		),
	}
}

// Lookup returns the generator registered under name
func (r Registry) Lookup(name string) (Generator, error) {
	g, ok := r[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPattern, "[Lookup] %q", name)
	}
	return g, nil
}

// Names returns the registered pattern names in sorted order
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Seed looks up name and places it at anchor
func (r Registry) Seed(name string, anchor model.Position) ([]model.Position, error) {
	g, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return g(anchor), nil
}
