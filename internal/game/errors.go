package game

import "errors"

// Command failures are always recoverable: Apply reports one of these and
// returns the state unchanged, and the session simply continues.
var (
	// ErrDividerCell rejects placement onto the cross between the quadrants.
	ErrDividerCell = errors.New("cell is on the divider")

	// ErrCellOccupied rejects placement onto a cell that already holds a piece.
	ErrCellOccupied = errors.New("cell is already occupied")

	// ErrIllegalAction rejects a command that the current phase or turn rule
	// does not allow. Turn rules wrap it so callers can match with errors.Is.
	ErrIllegalAction = errors.New("action is not legal right now")
)
