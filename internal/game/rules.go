package game

import "fmt"

// TurnRule is the pluggable second half of a turn. The state machine fixes
// where the rule runs (between AwaitingTurnAction and the hand-over to the
// opponent) but not what it does; the concrete game rule is deliberately a
// separate decision from the engine.
//
// Turn receives the board by value together with the cursor cell at
// activation time and the player whose turn is ending, and returns the board
// to continue with. A rejection must wrap ErrIllegalAction so callers can
// match it with errors.Is; on rejection the state machine stays in
// AwaitingTurnAction and the same player keeps the turn.
type TurnRule interface {
	// Name identifies the rule in config files and saved sessions.
	Name() string
	Turn(b Board, idx int, mover Player) (Board, error)
}

// Rule names accepted in config and stored with sessions.
const (
	RuleConfirm = "confirm"
	RuleSpin    = "spin"
)

// ConfirmRule is the default: the activation simply confirms the placed
// piece and passes play over, leaving the board as it is. It keeps the
// two-activation rhythm of a turn without committing to a game rule.
type ConfirmRule struct{}

func (ConfirmRule) Name() string { return RuleConfirm }

func (ConfirmRule) Turn(b Board, _ int, _ Player) (Board, error) {
	return b, nil
}

// SpinRule rotates the 3x3 quadrant under the cursor a quarter turn
// clockwise. The divider belongs to no quadrant, so activating there is
// rejected and the player picks another cell.
type SpinRule struct{}

func (SpinRule) Name() string { return RuleSpin }

func (SpinRule) Turn(b Board, idx int, _ Player) (Board, error) {
	if IsDivider(idx) {
		return b, fmt.Errorf("%w: the divider belongs to no quadrant", ErrIllegalAction)
	}

	top, left := quadrantOrigin(idx)

	var q [QuadrantSize][QuadrantSize]Player
	for r := 0; r < QuadrantSize; r++ {
		for c := 0; c < QuadrantSize; c++ {
			q[r][c] = b.cells[Index(top+r, left+c)]
		}
	}
	// Clockwise quarter turn: the cell at (r, c) receives the old (2-c, r).
	for r := 0; r < QuadrantSize; r++ {
		for c := 0; c < QuadrantSize; c++ {
			b.cells[Index(top+r, left+c)] = q[QuadrantSize-1-c][r]
		}
	}
	return b, nil
}

// quadrantOrigin returns the top-left cell coordinates of the 3x3 quadrant
// containing cell i. i must not be a divider cell.
func quadrantOrigin(i int) (top, left int) {
	row, col := RowCol(i)
	if row > DividerRow {
		top = DividerRow + 1
	}
	if col > DividerCol {
		left = DividerCol + 1
	}
	return top, left
}

// RuleByName resolves a stored rule name. The second return is false for
// names this build does not know.
func RuleByName(name string) (TurnRule, bool) {
	switch name {
	case RuleConfirm:
		return ConfirmRule{}, true
	case RuleSpin:
		return SpinRule{}, true
	default:
		return nil, false
	}
}
