package game

import "fmt"

// Phase is the step of the active player's turn. A turn is two activations:
// place a piece, then perform the turn action.
type Phase uint8

const (
	// AwaitingPlacement means the next activation tries to put a piece on the
	// cursor cell.
	AwaitingPlacement Phase = iota

	// AwaitingTurnAction means a piece was just placed and the next activation
	// runs the configured turn rule, after which play passes to the opponent.
	AwaitingTurnAction
)

func (p Phase) String() string {
	switch p {
	case AwaitingPlacement:
		return "placement"
	case AwaitingTurnAction:
		return "turn action"
	default:
		return "unknown"
	}
}

// Command is one discrete player input. Commands are applied one at a time;
// each application is a single atomic transition.
type Command interface {
	isCommand()
}

// MoveCursor steps the cursor one cell. Moving is legal in every phase and
// never fails; see Step for the wrap behaviour.
type MoveCursor struct {
	Direction Direction
}

// ActivateCell acts on the cell under the cursor: placement while placing,
// the turn action while a turn action is pending.
type ActivateCell struct{}

// Quit marks the run as finished. The shell stops dispatching once the state
// reports Done.
type Quit struct{}

func (MoveCursor) isCommand()   {}
func (ActivateCell) isCommand() {}
func (Quit) isCommand()         {}

// State is the complete game state. It is a value: Apply returns a successor
// instead of mutating, so previous states stay usable (and testable) and
// nothing in this package holds globals.
type State struct {
	board  Board
	cursor int
	active Player
	phase  Phase
	rule   TurnRule
	done   bool
}

// Option tweaks the construction of a State.
type Option func(*State)

// WithTurnRule swaps the turn rule in. The default is ConfirmRule.
func WithTurnRule(r TurnRule) Option {
	return func(s *State) {
		if r != nil {
			s.rule = r
		}
	}
}

// NewState returns the start of a game: empty board, cursor on cell 0,
// player one placing.
func NewState(opts ...Option) State {
	s := State{
		active: PlayerOne,
		phase:  AwaitingPlacement,
		rule:   ConfirmRule{},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Board returns the current occupancy.
func (s State) Board() Board { return s.board }

// Cursor returns the flattened index of the selected cell.
func (s State) Cursor() int { return s.cursor }

// ActivePlayer returns whose turn it is.
func (s State) ActivePlayer() Player { return s.active }

// Phase returns the pending step of the active player's turn.
func (s State) Phase() Phase { return s.phase }

// Rule returns the turn rule in effect.
func (s State) Rule() TurnRule { return s.rule }

// Done reports whether a Quit command has ended the run.
func (s State) Done() bool { return s.done }

// Snapshot is the read-only view handed to rendering and persistence. The
// flags mirror the phase: exactly one of CanPlace and CanTurn is set.
type Snapshot struct {
	ActivePlayer Player
	Cursor       int
	CanPlace     bool
	CanTurn      bool
	Board        [CellCount]Player
	Done         bool
}

// Snapshot captures the state for consumers outside this package.
func (s State) Snapshot() Snapshot {
	return Snapshot{
		ActivePlayer: s.active,
		Cursor:       s.cursor,
		CanPlace:     s.phase == AwaitingPlacement,
		CanTurn:      s.phase == AwaitingTurnAction,
		Board:        s.board.cells,
		Done:         s.done,
	}
}

// Apply processes one command and returns the successor state. When the
// command is refused the returned state is the receiver unchanged and the
// error says why; callers can always keep using whichever state they hold.
func (s State) Apply(cmd Command) (State, error) {
	switch c := cmd.(type) {
	case MoveCursor:
		s.cursor = Step(s.cursor, c.Direction)
		return s, nil
	case ActivateCell:
		return s.activate()
	case Quit:
		s.done = true
		return s, nil
	default:
		return s, fmt.Errorf("%w: unknown command %T", ErrIllegalAction, cmd)
	}
}

// activate runs the phase-dependent half of a turn. The receiver is a copy,
// so mutating s locally and returning it yields a fresh successor while the
// caller's state stays intact on error paths.
func (s State) activate() (State, error) {
	switch s.phase {
	case AwaitingPlacement:
		if err := s.board.Place(s.cursor, s.active); err != nil {
			return s, err
		}
		s.phase = AwaitingTurnAction
		return s, nil

	case AwaitingTurnAction:
		next, err := s.rule.Turn(s.board, s.cursor, s.active)
		if err != nil {
			return s, err
		}
		s.board = next
		s.phase = AwaitingPlacement
		s.active = s.active.Opponent()
		return s, nil

	default:
		return s, fmt.Errorf("%w: unknown phase %d", ErrIllegalAction, s.phase)
	}
}

// Restore rebuilds a State from a snapshot, re-validating the board
// invariants on the way in. Occupied cells are replayed through Place, so a
// snapshot with pieces on divider cells (or doubled up) is rejected rather
// than trusted. The phase is taken from the CanTurn flag and Done is
// ignored: a finished run is not worth restoring.
func Restore(snap Snapshot, opts ...Option) (State, error) {
	if snap.Cursor < 0 || snap.Cursor >= CellCount {
		return State{}, fmt.Errorf("restore: cursor %d out of range", snap.Cursor)
	}
	if snap.ActivePlayer != PlayerOne && snap.ActivePlayer != PlayerTwo {
		return State{}, fmt.Errorf("restore: invalid active player %d", snap.ActivePlayer)
	}

	s := NewState(opts...)
	for i, p := range snap.Board {
		switch p {
		case NoPlayer:
		case PlayerOne, PlayerTwo:
			if err := s.board.Place(i, p); err != nil {
				return State{}, fmt.Errorf("restore: cell %d: %w", i, err)
			}
		default:
			return State{}, fmt.Errorf("restore: cell %d holds invalid player %d", i, p)
		}
	}

	s.cursor = snap.Cursor
	s.active = snap.ActivePlayer
	if snap.CanTurn {
		s.phase = AwaitingTurnAction
	}
	return s, nil
}
