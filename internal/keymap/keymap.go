package keymap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/bubbles/key"
)

// Profile is one named control scheme. Each field lists the raw key strings
// (bubbletea key names) bound to that action; a profile may bind several keys
// to the same action.
type Profile struct {
	Name     string   `toml:"name"`
	Up       []string `toml:"up"`
	Down     []string `toml:"down"`
	Left     []string `toml:"left"`
	Right    []string `toml:"right"`
	Activate []string `toml:"activate"`
	Command  []string `toml:"command"`
	Help     []string `toml:"help"`
	Quit     []string `toml:"quit"`
}

// keymapsFile is the top-level TOML structure.
type keymapsFile struct {
	Profile []Profile `toml:"profile"`
}

// DefaultProfile is used when the configured profile name is unknown.
const DefaultProfile = "wasd"

const defaultKeymapsTOML = `# Quadra key profiles
# Add new [[profile]] blocks and select one with keys.profile in config.toml.

[[profile]]
name = "wasd"
up = ["w"]
down = ["s"]
left = ["a"]
right = ["d"]
activate = ["enter", " "]
command = [":"]
help = ["?"]
quit = ["q", "ctrl+c"]

[[profile]]
name = "arrows"
up = ["up", "k"]
down = ["down", "j"]
left = ["left", "h"]
right = ["right", "l"]
activate = ["enter", " "]
command = [":"]
help = ["?"]
quit = ["q", "ctrl+c"]
`

// dir returns the directory for quadra config files, using XDG_CONFIG_HOME
// or falling back to ~/.config.
func dir() (string, error) {
	d, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(d, "quadra"), nil
}

// DefaultPath returns the full path to the keymaps.toml file.
func DefaultPath() (string, error) {
	d, err := dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "keymaps.toml"), nil
}

// Load reads key profiles from path. If the file doesn't exist it is created
// with the built-in wasd and arrows profiles, so users always have a file to
// edit.
func Load(path string) ([]Profile, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return defaultProfiles(), fmt.Errorf("create config dir: %w", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(defaultKeymapsTOML), 0o644); wErr != nil {
			return defaultProfiles(), fmt.Errorf("write default keymaps: %w", wErr)
		}
	}

	var f keymapsFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return defaultProfiles(), fmt.Errorf("parse keymaps: %w", err)
	}
	if len(f.Profile) == 0 {
		return defaultProfiles(), nil
	}
	for _, p := range f.Profile {
		if err := p.validate(); err != nil {
			return defaultProfiles(), fmt.Errorf("profile %q: %w", p.Name, err)
		}
	}
	return f.Profile, nil
}

func defaultProfiles() []Profile {
	var f keymapsFile
	// The built-in TOML is a compile-time constant; it always parses.
	if _, err := toml.Decode(defaultKeymapsTOML, &f); err != nil {
		panic(fmt.Sprintf("keymap: default keymaps invalid: %v", err))
	}
	return f.Profile
}

func (p Profile) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("missing name")
	}
	for action, keys := range map[string][]string{
		"up": p.Up, "down": p.Down, "left": p.Left, "right": p.Right,
		"activate": p.Activate, "quit": p.Quit,
	} {
		if len(keys) == 0 {
			return fmt.Errorf("no keys bound to %s", action)
		}
	}
	return nil
}

// ByName finds the named profile, falling back to the wasd default when the
// name is unknown. The bool reports whether the name matched.
func ByName(profiles []Profile, name string) (Profile, bool) {
	for _, p := range profiles {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	for _, p := range profiles {
		if p.Name == DefaultProfile {
			return p, false
		}
	}
	return defaultProfiles()[0], false
}

// KeyMap is a compiled profile: bubbles bindings ready for key.Matches and
// the help widget.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Activate key.Binding
	Command  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// Compile turns a profile into bindings. Help labels show the first bound
// key for each action.
func Compile(p Profile) KeyMap {
	return KeyMap{
		Up:       compileBinding(p.Up, "up"),
		Down:     compileBinding(p.Down, "down"),
		Left:     compileBinding(p.Left, "left"),
		Right:    compileBinding(p.Right, "right"),
		Activate: compileBinding(p.Activate, "activate"),
		Command:  compileBinding(p.Command, "command"),
		Help:     compileBinding(p.Help, "help"),
		Quit:     compileBinding(p.Quit, "quit"),
	}
}

func compileBinding(keys []string, help string) key.Binding {
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	label := keys[0]
	if label == " " {
		label = "space"
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, help))
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.Command, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Activate, k.Command, k.Help, k.Quit},
	}
}
