package model

import "math/bits"

// Direction is one of the 8 compass directions, each a distinct bit of a Mask.
// Y grows downward, so N moves to y-1.
type Direction uint8

const (
	N Direction = 1 << iota
	S
	E
	W
	NE
	NW
	SE
	SW
)

// Directions lists every direction in bit order
var Directions = [8]Direction{N, S, E, W, NE, NW, SE, SW}

// Reverse returns the opposite direction, or 0 for anything that is not a
// single direction
func (d Direction) Reverse() Direction {
	switch d {
	case N:
		return S
	case S:
		return N
	case E:
		return W
	case W:
		return E
	case NE:
		return SW
	case SW:
		return NE
	case NW:
		return SE
	case SE:
		return NW
	}
	return 0
}

// Offset returns the unit step for the direction
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case N:
		return 0, -1
	case S:
		return 0, 1
	case E:
		return 1, 0
	case W:
		return -1, 0
	case NE:
		return 1, -1
	case NW:
		return -1, -1
	case SE:
		return 1, 1
	case SW:
		return -1, 1
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case N:
		return "N"
	case S:
		return "S"
	case E:
		return "E"
	case W:
		return "W"
	case NE:
		return "NE"
	case NW:
		return "NW"
	case SE:
		return "SE"
	case SW:
		return "SW"
	}
	return "invalid"
}

// Mask is a set of directions. A set bit d on a cell records that a neighbour
// moving one step in d lands on the cell, i.e. the neighbour sits at
// Step(d.Reverse()).
type Mask uint8

// Has reports whether d is in the mask
func (m Mask) Has(d Direction) bool {
	return m&Mask(d) != 0
}

// With returns the mask with d added
func (m Mask) With(d Direction) Mask {
	return m | Mask(d)
}

// Count returns the number of directions in the mask
func (m Mask) Count() int {
	return bits.OnesCount8(uint8(m))
}
