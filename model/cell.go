package model

import "fmt"

// Position is a coordinate on the unbounded plane
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Step returns the position one unit away in direction d
func (p Position) Step(d Direction) Position {
	dx, dy := d.Offset()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Cell is the record kept for every living and candidate cell
type Cell struct {
	X, Y int
	Mask Mask
}

// NewCell returns a cell at p with an empty mask
func NewCell(p Position) Cell {
	return Cell{X: p.X, Y: p.Y}
}

// Pos returns the cell's position
func (c Cell) Pos() Position {
	return Position{X: c.X, Y: c.Y}
}

// Relation is the outcome of comparing two cells
type Relation uint8

const (
	Apart Relation = iota
	Adjacent
	SamePosition
)

// Classify compares self with other. When they are adjacent it also returns
// the direction that leads from other onto self.
func Classify(self, other *Cell) (Relation, Direction) {
	dx := self.X - other.X
	dy := self.Y - other.Y

	switch {
	case dx == 0 && dy == 0:
		return SamePosition, 0
	case dx < -1 || dx > 1 || dy < -1 || dy > 1:
		return Apart, 0
	}

	switch {
	case dx == 1 && dy == 1:
		return Adjacent, SE
	case dx == 1 && dy == -1:
		return Adjacent, NE
	case dx == 1:
		return Adjacent, E
	case dx == -1 && dy == 1:
		return Adjacent, SW
	case dx == -1 && dy == -1:
		return Adjacent, NW
	case dx == -1:
		return Adjacent, W
	case dy == 1:
		return Adjacent, S
	default:
		return Adjacent, N
	}
}
