package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/quadra/internal/config"
	"github.com/jask/quadra/internal/game"
	"github.com/jask/quadra/internal/keymap"
	"github.com/jask/quadra/internal/session"
	"github.com/jask/quadra/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closeLog, err := initLogger(cfg.Debug.LogPath)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer closeLog()

	keymapPath, err := keymap.DefaultPath()
	if err != nil {
		log.Fatalf("keymaps: %v", err)
	}
	profiles, err := keymap.Load(keymapPath)
	if err != nil {
		// Load falls back to the built-in profiles, so a broken file is
		// playable but worth reporting.
		logger.Warn("keymaps file unusable, using built-in profiles", "path", keymapPath, "error", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Session.Path), 0o755); err != nil {
		log.Fatalf("mkdir session dir: %v", err)
	}
	store, err := session.Open(cfg.Session.Path)
	if err != nil {
		log.Fatalf("open session store: %v", err)
	}
	defer store.Close()

	rule, ok := game.RuleByName(cfg.Rules.Turn)
	if !ok {
		logger.Warn("unknown turn rule, using confirm", "rule", cfg.Rules.Turn)
		rule = game.ConfirmRule{}
	}

	state := game.NewState(game.WithTurnRule(rule))
	if cfg.Session.Autoresume {
		if resumed, ok := resumeSession(ctx, store, rule, logger); ok {
			state = resumed
		}
	}

	p := tea.NewProgram(tui.New(cfg, profiles, state, store, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// resumeSession restores the saved game if there is one. Any problem with
// the stored snapshot just means starting fresh.
func resumeSession(ctx context.Context, store *session.Store, fallback game.TurnRule, logger *slog.Logger) (game.State, bool) {
	saved, err := store.Load(ctx)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			logger.Warn("session load failed", "error", err)
		}
		return game.State{}, false
	}

	rule, ok := game.RuleByName(saved.Rule)
	if !ok {
		logger.Warn("saved session used unknown rule", "rule", saved.Rule)
		rule = fallback
	}

	state, err := game.Restore(saved.Snapshot, game.WithTurnRule(rule))
	if err != nil {
		logger.Warn("saved session is invalid, starting fresh", "error", err)
		return game.State{}, false
	}
	logger.Info("session resumed", "rule", rule.Name(), "pieces", state.Board().PieceCount())
	return state, true
}

// initLogger builds the debug logger. The terminal belongs to the UI, so
// logs go to a file; an empty path disables them entirely.
func initLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}
