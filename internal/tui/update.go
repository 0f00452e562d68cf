package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/quadra/internal/game"
	"github.com/jask/quadra/internal/session"
)

// Messages produced by session I/O commands.
type sessionSavedMsg struct{ err error }

type sessionLoadedMsg struct {
	saved session.Saved
	err   error
}

type sessionClearedMsg struct{ err error }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.commandOpen {
			return m.updateCommandMode(msg)
		}
		return m.updateGameKeys(msg)

	case sessionSavedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("Save failed: %v", msg.err))
			return m, nil
		}
		m.setInfo("Session saved.")
		return m, nil

	case sessionLoadedMsg:
		return m.applyLoadedSession(msg)

	case sessionClearedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("Clear failed: %v", msg.err))
			return m, nil
		}
		m.setInfo("New game.")
		return m, nil
	}
	return m, nil
}

func (m Model) updateGameKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Command):
		m.commandOpen = true
		m.commandInput = ""
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Up):
		return m.applyGameCommand(game.MoveCursor{Direction: game.Up}), nil
	case key.Matches(msg, m.keys.Down):
		return m.applyGameCommand(game.MoveCursor{Direction: game.Down}), nil
	case key.Matches(msg, m.keys.Left):
		return m.applyGameCommand(game.MoveCursor{Direction: game.Left}), nil
	case key.Matches(msg, m.keys.Right):
		return m.applyGameCommand(game.MoveCursor{Direction: game.Right}), nil
	case key.Matches(msg, m.keys.Activate):
		return m.applyGameCommand(game.ActivateCell{}), nil
	}
	return m, nil
}

// applyGameCommand routes one command into the core. Rejections become
// status text; the state is left exactly as it was.
func (m Model) applyGameCommand(cmd game.Command) Model {
	next, err := m.state.Apply(cmd)
	if err != nil {
		m.logger.Debug("command rejected", "command", fmt.Sprintf("%T", cmd), "error", err)
		m.setError(rejectionText(err))
		return m
	}

	prev := m.state.Snapshot()
	m.state = next
	snap := next.Snapshot()

	switch {
	case prev.CanPlace && snap.CanTurn:
		m.setInfo(fmt.Sprintf("%s placed a piece. Activate again for the turn action.", m.playerLabel(snap.ActivePlayer)))
	case prev.CanTurn && snap.CanPlace:
		m.setInfo(fmt.Sprintf("Turn passes to %s.", m.playerLabel(snap.ActivePlayer)))
	}
	return m
}

// rejectionText translates core errors into the one-line status shown under
// the board.
func rejectionText(err error) string {
	switch {
	case errors.Is(err, game.ErrDividerCell):
		return "That cell is on the divider."
	case errors.Is(err, game.ErrCellOccupied):
		return "That cell is already occupied."
	case errors.Is(err, game.ErrIllegalAction):
		return fmt.Sprintf("Not allowed: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// quit ends the run, saving the session first when autoresume is on.
func (m Model) quit() (tea.Model, tea.Cmd) {
	state, err := m.state.Apply(game.Quit{})
	if err != nil {
		m.setError(fmt.Sprintf("Error: %v", err))
		return m, nil
	}
	m.state = state

	if m.store != nil && m.cfg.Session.Autoresume {
		return m, tea.Sequence(m.saveSessionCmd(), tea.Quit)
	}
	return m, tea.Quit
}

func (m Model) saveSessionCmd() tea.Cmd {
	store, snap, rule := m.store, m.state.Snapshot(), m.ruleName
	return func() tea.Msg {
		err := store.Save(context.Background(), session.Saved{Snapshot: snap, Rule: rule})
		return sessionSavedMsg{err: err}
	}
}

func (m Model) loadSessionCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		saved, err := store.Load(context.Background())
		return sessionLoadedMsg{saved: saved, err: err}
	}
}

func (m Model) clearSessionCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		return sessionClearedMsg{err: store.Clear(context.Background())}
	}
}

func (m Model) applyLoadedSession(msg sessionLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, session.ErrNoSession) {
			m.setError("No saved session to resume.")
			return m, nil
		}
		m.setError(fmt.Sprintf("Resume failed: %v", msg.err))
		return m, nil
	}

	rule, ok := game.RuleByName(msg.saved.Rule)
	if !ok {
		m.logger.Warn("saved session used unknown rule, using current", "rule", msg.saved.Rule)
		rule = m.state.Rule()
	}
	state, err := game.Restore(msg.saved.Snapshot, game.WithTurnRule(rule))
	if err != nil {
		m.setError(fmt.Sprintf("Resume failed: %v", err))
		return m, nil
	}

	m.state = state
	m.ruleName = rule.Name()
	m.logger.Info("session restored", "rule", m.ruleName, "pieces", state.Board().PieceCount())
	m.setInfo(fmt.Sprintf("Session restored. %s to move.", m.playerLabel(state.ActivePlayer())))
	return m, nil
}

func (m *Model) setInfo(text string) {
	m.status = text
	m.statusIsErr = false
}

func (m *Model) setError(text string) {
	m.status = text
	m.statusIsErr = true
}
