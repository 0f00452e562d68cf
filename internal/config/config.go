package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Session SessionConfig
	UI      UIConfig
	Keys    KeysConfig
	Rules   RulesConfig
	Debug   DebugConfig
}

// SessionConfig holds the resumable-session sqlite settings.
type SessionConfig struct {
	Path       string
	Autoresume bool
}

// UIConfig holds presentation settings. Player labels are what the top bar
// shows; the game core never formats player names itself.
type UIConfig struct {
	PlayerOneLabel string `mapstructure:"player_one_label"`
	PlayerTwoLabel string `mapstructure:"player_two_label"`
	ASCII          bool   `mapstructure:"ascii"`
}

// KeysConfig selects the active keymap profile from keymaps.toml.
type KeysConfig struct {
	Profile string
}

// RulesConfig selects the turn rule applied on the second activation.
type RulesConfig struct {
	Turn string
}

// DebugConfig controls the debug log. Empty path disables logging; stdout is
// never used because the terminal belongs to the UI.
type DebugConfig struct {
	LogPath string `mapstructure:"log_path"`
}

// Load reads configuration from file and env. Env var overrides use prefix QUADRA_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("session.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "quadra", "session.db"))
	v.SetDefault("session.autoresume", true)
	v.SetDefault("ui.player_one_label", "Player 1")
	v.SetDefault("ui.player_two_label", "Player 2")
	v.SetDefault("ui.ascii", false)
	v.SetDefault("keys.profile", "wasd")
	v.SetDefault("rules.turn", "confirm")
	v.SetDefault("debug.log_path", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("QUADRA_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "quadra"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("QUADRA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used by the colon commands that change settings mid-run.
func Save(cfg Config) error {
	path := os.Getenv("QUADRA_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "quadra", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("session.path", cfg.Session.Path)
	v.Set("session.autoresume", cfg.Session.Autoresume)
	v.Set("ui.player_one_label", cfg.UI.PlayerOneLabel)
	v.Set("ui.player_two_label", cfg.UI.PlayerTwoLabel)
	v.Set("ui.ascii", cfg.UI.ASCII)
	v.Set("keys.profile", cfg.Keys.Profile)
	v.Set("rules.turn", cfg.Rules.Turn)
	v.Set("debug.log_path", cfg.Debug.LogPath)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
