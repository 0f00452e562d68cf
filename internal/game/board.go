package game

// The playing surface is a 7x7 grid. The middle row and middle column form a
// cross-shaped divider that never holds pieces, leaving four 3x3 quadrants.
const (
	BoardWidth  = 7
	BoardHeight = 7
	CellCount   = BoardWidth * BoardHeight

	DividerRow = 3
	DividerCol = 3

	// QuadrantSize is the side length of each playable corner block.
	QuadrantSize = 3
)

// Player identifies a side. NoPlayer doubles as the empty occupant value, so
// the zero value of a cell means "free".
type Player uint8

const (
	NoPlayer Player = iota
	PlayerOne
	PlayerTwo
)

// Opponent returns the other side. NoPlayer maps to itself.
func (p Player) Opponent() Player {
	switch p {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	default:
		return NoPlayer
	}
}

// String is for logs and errors only. Display names shown to players are a
// rendering concern and live with the UI, not here.
func (p Player) String() string {
	switch p {
	case PlayerOne:
		return "one"
	case PlayerTwo:
		return "two"
	default:
		return "none"
	}
}

// Index flattens (row, col) into a cell index. Cells are numbered row-major:
// cell 0 is the top-left corner, cell 48 the bottom-right.
func Index(row, col int) int {
	return row*BoardWidth + col
}

// RowCol splits a cell index back into its row and column.
func RowCol(i int) (row, col int) {
	return i / BoardWidth, i % BoardWidth
}

// IsDivider reports whether cell i lies on the cross separating the four
// quadrants. 13 of the 49 cells are divider cells.
func IsDivider(i int) bool {
	return i/BoardWidth == DividerRow || i%BoardWidth == DividerCol
}

// Board holds the occupancy of all 49 cells. It is a plain value: copying a
// Board (or a State containing one) copies the occupancy with it, which is
// what lets the state machine hand out successor states without sharing.
// The zero value is an empty board.
type Board struct {
	cells [CellCount]Player
}

// Occupant returns the player holding cell i, or NoPlayer when the cell is
// free. i must be a valid cell index.
func (b Board) Occupant(i int) Player {
	return b.cells[i]
}

// Cells returns a copy of the raw occupancy array, indexed row-major.
func (b Board) Cells() [CellCount]Player {
	return b.cells
}

// PieceCount returns how many cells hold a piece.
func (b Board) PieceCount() int {
	n := 0
	for _, p := range b.cells {
		if p != NoPlayer {
			n++
		}
	}
	return n
}

// Place puts p on cell i. Divider cells are rejected with ErrDividerCell and
// already-held cells with ErrCellOccupied; the board is untouched on failure.
func (b *Board) Place(i int, p Player) error {
	if IsDivider(i) {
		return ErrDividerCell
	}
	if b.cells[i] != NoPlayer {
		return ErrCellOccupied
	}
	b.cells[i] = p
	return nil
}
