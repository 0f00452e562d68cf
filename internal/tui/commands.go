package tui

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/quadra/internal/config"
	"github.com/jask/quadra/internal/game"
	"github.com/jask/quadra/internal/keymap"
)

// colonCommand is one verb reachable from command mode (:name args).
type colonCommand struct {
	name  string
	usage string
	help  string
	run   func(m Model, args []string) (Model, tea.Cmd)
}

func colonCommands() []colonCommand {
	return []colonCommand{
		{
			name: "new",
			help: "start a fresh game (clears the saved session)",
			run: func(m Model, _ []string) (Model, tea.Cmd) {
				rule := m.state.Rule()
				m.state = game.NewState(game.WithTurnRule(rule))
				if m.store == nil {
					m.setInfo("New game.")
					return m, nil
				}
				return m, m.clearSessionCmd()
			},
		},
		{
			name: "save",
			help: "save the game in progress",
			run: func(m Model, _ []string) (Model, tea.Cmd) {
				if m.store == nil {
					m.setError("Session storage is disabled.")
					return m, nil
				}
				return m, m.saveSessionCmd()
			},
		},
		{
			name: "resume",
			help: "restore the saved game",
			run: func(m Model, _ []string) (Model, tea.Cmd) {
				if m.store == nil {
					m.setError("Session storage is disabled.")
					return m, nil
				}
				return m, m.loadSessionCmd()
			},
		},
		{
			name:  "rule",
			usage: "rule <confirm|spin>",
			help:  "switch the turn rule",
			run: func(m Model, args []string) (Model, tea.Cmd) {
				if len(args) != 1 {
					m.setError("Usage: :rule <confirm|spin>")
					return m, nil
				}
				rule, ok := game.RuleByName(args[0])
				if !ok {
					m.setError(fmt.Sprintf("Unknown rule %q.", args[0]))
					return m, nil
				}
				state, err := game.Restore(m.state.Snapshot(), game.WithTurnRule(rule))
				if err != nil {
					m.setError(fmt.Sprintf("Rule change failed: %v", err))
					return m, nil
				}
				m.state = state
				m.ruleName = rule.Name()
				m.cfg.Rules.Turn = rule.Name()
				if err := config.Save(m.cfg); err != nil {
					m.logger.Warn("config save failed", "error", err)
				}
				m.setInfo(fmt.Sprintf("Turn rule is now %q.", rule.Name()))
				return m, nil
			},
		},
		{
			name:  "keys",
			usage: "keys <profile>",
			help:  "switch the key profile",
			run: func(m Model, args []string) (Model, tea.Cmd) {
				if len(args) != 1 {
					m.setError("Usage: :keys <profile>")
					return m, nil
				}
				profile, ok := keymap.ByName(m.profiles, args[0])
				if !ok {
					m.setError(fmt.Sprintf("Unknown key profile %q.", args[0]))
					return m, nil
				}
				m.keys = keymap.Compile(profile)
				m.cfg.Keys.Profile = profile.Name
				if err := config.Save(m.cfg); err != nil {
					m.logger.Warn("config save failed", "error", err)
				}
				m.setInfo(fmt.Sprintf("Key profile is now %q.", profile.Name))
				return m, nil
			},
		},
		{
			name: "quit",
			help: "leave the game",
			run: func(m Model, _ []string) (Model, tea.Cmd) {
				return quitModel(m)
			},
		},
	}
}

// quitModel adapts Model.quit for command handlers, which return Model
// rather than tea.Model.
func quitModel(m Model) (Model, tea.Cmd) {
	next, cmd := m.quit()
	return next.(Model), cmd
}

// runColonCommand parses and executes one command-mode input line. Unknown
// verbs get a nearest-match suggestion instead of a bare failure.
func (m Model) runColonCommand(input string) (Model, tea.Cmd) {
	fields := strings.Fields(strings.TrimSpace(input))
	if len(fields) == 0 {
		return m, nil
	}
	verb, args := strings.ToLower(fields[0]), fields[1:]

	for _, cmd := range colonCommands() {
		if cmd.name == verb {
			return cmd.run(m, args)
		}
	}

	if hint := nearestCommand(verb); hint != "" {
		m.setError(fmt.Sprintf("Unknown command %q. Did you mean %q?", verb, hint))
	} else {
		m.setError(fmt.Sprintf("Unknown command %q.", verb))
	}
	return m, nil
}

// nearestCommand returns the registered verb closest to input, or "" when
// nothing is close enough to be a plausible typo.
func nearestCommand(input string) string {
	const maxDistance = 2

	best := ""
	bestDist := maxDistance + 1
	for _, cmd := range colonCommands() {
		if d := levenshtein.ComputeDistance(input, cmd.name); d < bestDist {
			best = cmd.name
			bestDist = d
		}
	}
	return best
}

// updateCommandMode handles keys while the ':' prompt is open.
func (m Model) updateCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.commandOpen = false
		m.commandInput = ""
		return m, nil

	case tea.KeyEnter:
		input := m.commandInput
		m.commandOpen = false
		m.commandInput = ""
		return m.runColonCommand(input)

	case tea.KeyBackspace:
		if len(m.commandInput) > 0 {
			m.commandInput = m.commandInput[:len(m.commandInput)-1]
		}
		return m, nil

	case tea.KeySpace:
		m.commandInput += " "
		return m, nil

	case tea.KeyRunes:
		m.commandInput += string(msg.Runes)
		return m, nil
	}
	return m, nil
}
