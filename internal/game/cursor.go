package game

// Direction is a one-cell cursor movement.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Opposite returns the direction that undoes d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// offset is the flattened-index delta of one step.
func (d Direction) offset() int {
	switch d {
	case Up:
		return -BoardWidth
	case Down:
		return BoardWidth
	case Left:
		return -1
	case Right:
		return 1
	default:
		return 0
	}
}

// Step moves a cursor one cell in direction d and wraps the result into
// [0, CellCount) with a non-negative modulo.
//
// The wrap treats the 49 cells as a single flat ring rather than a per-axis
// torus. Because 49 is a multiple of 7 the two behave identically for
// vertical moves (Up from the top row lands on the bottom row in the same
// column), but horizontal moves spill across rows: Left from column 0
// continues on the previous row's last column, Right from column 6 on the
// next row's first column, and the ring closes between cell 0 and cell 48.
// Every (index, direction) pair yields a valid cell, so movement never fails.
func Step(current int, d Direction) int {
	next := (current + d.offset()) % CellCount
	if next < 0 {
		next += CellCount
	}
	return next
}
