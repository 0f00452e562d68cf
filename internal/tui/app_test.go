package tui

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/quadra/internal/config"
	"github.com/jask/quadra/internal/game"
	"github.com/jask/quadra/internal/keymap"
	"github.com/jask/quadra/internal/session"
)

func testConfig() config.Config {
	return config.Config{
		Session: config.SessionConfig{Autoresume: false},
		UI:      config.UIConfig{PlayerOneLabel: "Player 1", PlayerTwoLabel: "Player 2"},
		Keys:    config.KeysConfig{Profile: "wasd"},
		Rules:   config.RulesConfig{Turn: game.RuleConfirm},
	}
}

func testProfiles(t *testing.T) []keymap.Profile {
	t.Helper()
	profiles, err := keymap.Load(filepath.Join(t.TempDir(), "keymaps.toml"))
	require.NoError(t, err)
	return profiles
}

func newTestModel(t *testing.T, store *session.Store) Model {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(testConfig(), testProfiles(t), game.NewState(), store, logger)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press runs one key through Update and returns the next model.
func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestMovementKeys(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = press(t, m, keyRunes("d"))
	m, _ = press(t, m, keyRunes("d"))
	assert.Equal(t, 2, m.state.Cursor())

	m, _ = press(t, m, keyRunes("s"))
	assert.Equal(t, 9, m.state.Cursor())

	m, _ = press(t, m, keyRunes("w"))
	m, _ = press(t, m, keyRunes("a"))
	m, _ = press(t, m, keyRunes("a"))
	assert.Equal(t, 0, m.state.Cursor())
}

func TestActivateOnDividerKeepsState(t *testing.T) {
	m := newTestModel(t, nil)

	for i := 0; i < 3; i++ {
		m, _ = press(t, m, keyRunes("d"))
	}
	require.Equal(t, 3, m.state.Cursor())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	snap := m.state.Snapshot()
	assert.Equal(t, game.PlayerOne, snap.ActivePlayer)
	assert.True(t, snap.CanPlace)
	assert.Equal(t, 0, m.state.Board().PieceCount())
	assert.True(t, m.statusIsErr)
	assert.Contains(t, m.status, "divider")
}

func TestPlacementAndTurnAction(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	snap := m.state.Snapshot()
	assert.Equal(t, game.PlayerOne, snap.Board[0])
	assert.False(t, snap.CanPlace)
	assert.True(t, snap.CanTurn)
	assert.Contains(t, m.status, "Player 1 placed a piece")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	snap = m.state.Snapshot()
	assert.Equal(t, game.PlayerTwo, snap.ActivePlayer)
	assert.True(t, snap.CanPlace)
	assert.Contains(t, m.status, "Player 2")
}

func TestQuitMarksDone(t *testing.T) {
	m := newTestModel(t, nil)

	m, cmd := press(t, m, keyRunes("q"))
	assert.True(t, m.state.Done())
	assert.NotNil(t, cmd)
}

func TestCommandModeTypoSuggestion(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = press(t, m, keyRunes(":"))
	require.True(t, m.commandOpen)

	m, _ = press(t, m, keyRunes("sve"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.commandOpen)
	assert.Contains(t, m.status, `Unknown command "sve"`)
	assert.Contains(t, m.status, `"save"`)
}

func TestCommandModeEscCancels(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = press(t, m, keyRunes(":"))
	m, _ = press(t, m, keyRunes("new"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.commandOpen)
	assert.Empty(t, m.commandInput)
}

func TestNewCommandResetsGame(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // place
	require.Equal(t, 1, m.state.Board().PieceCount())

	m, _ = press(t, m, keyRunes(":"))
	m, _ = press(t, m, keyRunes("new"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 0, m.state.Board().PieceCount())
	assert.Equal(t, game.PlayerOne, m.state.ActivePlayer())
}

func TestRuleCommandSwitchesRule(t *testing.T) {
	t.Setenv("QUADRA_CONFIG", filepath.Join(t.TempDir(), "config.toml"))
	m := newTestModel(t, nil)

	m, _ = press(t, m, keyRunes(":"))
	m, _ = press(t, m, keyRunes("rule"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = press(t, m, keyRunes("spin"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, game.RuleSpin, m.ruleName)
	assert.Equal(t, game.RuleSpin, m.state.Rule().Name())
}

func TestKeysCommandSwitchesProfile(t *testing.T) {
	t.Setenv("QUADRA_CONFIG", filepath.Join(t.TempDir(), "config.toml"))
	m := newTestModel(t, nil)

	m, _ = press(t, m, keyRunes(":"))
	m, _ = press(t, m, keyRunes("keys arrows"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{"up", "k"}, m.keys.Up.Keys())

	// old movement keys no longer move
	before := m.state.Cursor()
	m, _ = press(t, m, keyRunes("d"))
	assert.Equal(t, before, m.state.Cursor())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, before+1, m.state.Cursor())
}

func TestSessionSaveAndResume(t *testing.T) {
	store, err := session.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	m := newTestModel(t, store)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // place at 0
	m, _ = press(t, m, keyRunes("d"))

	// run the save command's tea.Cmd and feed its message back
	msg := m.saveSessionCmd()()
	next, _ := m.Update(msg)
	m = next.(Model)
	assert.Contains(t, m.status, "saved")

	// a fresh model resumes the stored game
	fresh := newTestModel(t, store)
	msg = fresh.loadSessionCmd()()
	next, _ = fresh.Update(msg)
	fresh = next.(Model)

	assert.Equal(t, 1, fresh.state.Cursor())
	assert.Equal(t, game.PlayerOne, fresh.state.Board().Occupant(0))
	assert.Equal(t, game.AwaitingTurnAction, fresh.state.Phase())
	assert.Contains(t, fresh.status, "restored")
}

func TestResumeWithoutSavedSession(t *testing.T) {
	store, err := session.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	m := newTestModel(t, store)
	msg := m.loadSessionCmd()()
	next, _ := m.Update(msg)
	m = next.(Model)

	assert.True(t, m.statusIsErr)
	assert.Contains(t, m.status, "No saved session")
}

func TestNearestCommand(t *testing.T) {
	assert.Equal(t, "save", nearestCommand("sav"))
	assert.Equal(t, "resume", nearestCommand("resum"))
	assert.Equal(t, "quit", nearestCommand("qiut"))
	assert.Equal(t, "", nearestCommand("xyzzy"))
}
