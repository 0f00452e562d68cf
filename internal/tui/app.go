// Package tui is the terminal shell around the game core: it maps key events
// to game commands and renders read-only snapshots. All game legality lives
// in internal/game; this package only reads the flags the snapshot exposes.
package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/quadra/internal/config"
	"github.com/jask/quadra/internal/game"
	"github.com/jask/quadra/internal/keymap"
	"github.com/jask/quadra/internal/session"
)

// Model ties the game state to the terminal.
type Model struct {
	cfg      config.Config
	state    game.State
	ruleName string

	keys     keymap.KeyMap
	profiles []keymap.Profile
	labels   map[game.Player]string
	glyphs   glyphSet

	store  *session.Store
	logger *slog.Logger

	help        help.Model
	status      string
	statusIsErr bool

	commandOpen  bool
	commandInput string

	width  int
	height int
}

// New builds the shell. store may be nil, which disables the session
// commands but nothing else; logger must not be nil (use a discard handler
// to silence it).
func New(cfg config.Config, profiles []keymap.Profile, state game.State, store *session.Store, logger *slog.Logger) Model {
	profile, known := keymap.ByName(profiles, cfg.Keys.Profile)
	if !known {
		logger.Warn("unknown key profile, using default", "profile", cfg.Keys.Profile)
	}

	glyphs := unicodeGlyphs
	if cfg.UI.ASCII {
		glyphs = asciiGlyphs
	}

	return Model{
		cfg:      cfg,
		state:    state,
		ruleName: state.Rule().Name(),
		keys:     keymap.Compile(profile),
		profiles: profiles,
		labels: map[game.Player]string{
			game.PlayerOne: cfg.UI.PlayerOneLabel,
			game.PlayerTwo: cfg.UI.PlayerTwoLabel,
		},
		glyphs: glyphs,
		store:  store,
		logger: logger,
		help:   help.New(),
		status: "Move the cursor and activate a cell to place a piece.",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// playerLabel returns the display name for p. The mapping is owned here:
// the game core only knows players as values.
func (m Model) playerLabel(p game.Player) string {
	if label, ok := m.labels[p]; ok && label != "" {
		return label
	}
	return "Player " + p.String()
}
