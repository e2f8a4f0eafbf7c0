// Copyright (c) 2025 Andrew
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package config loads the compositor configuration from
// ~/.config/infinidesk/infinidesk.toml, creating the file with defaults on
// first launch.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ThatOtherAndrew/Infinidesk/internal/keys"
	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml"
	"github.com/sirupsen/logrus"
)

const (
	configDir  = "infinidesk"
	configFile = "infinidesk.toml"
)

const defaultConfig = `# Infinidesk configuration file

# Output scale factor for HiDPI displays (e.g., 1.0, 1.5, 2.0)
scale = 1.0

# Startup commands are executed when the compositor starts.
# Each command runs in its own shell process.
startup = [
]

[keybinds]
"super + Return" = "exec:kitty"
"super + q" = "close_window"
"super + escape" = "exit"
"super + d" = "toggle_drawing"
"super + c" = "clear_drawings"
"super + u" = "undo_stroke"
"super + r" = "redo_stroke"
"super + g" = "gather_windows"
"alt + Tab" = "window_switcher"
`

// Config is the parsed configuration.
type Config struct {
	// Scale is the HiDPI output scale factor.
	Scale float32
	// Startup commands run once after the socket is ready.
	Startup []string
	// Keybinds maps chords to actions. Parsed entries come from a decoded
	// TOML table, so their order is not the order of the file.
	Keybinds []Keybind
}

// rawConfig mirrors the TOML file shape.
type rawConfig struct {
	Scale    float32           `toml:"scale"`
	Startup  []string          `toml:"startup"`
	Keybinds map[string]string `toml:"keybinds"`
}

// Path returns the config file location, preferring the XDG config home
// (which itself falls back to $HOME/.config).
func Path() string {
	base := xdg.ConfigHome
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, configDir, configFile)
}

// Load reads the config file, creating it with defaults first if missing.
func Load() (*Config, error) {
	path := Path()
	if path == "" {
		return nil, fmt.Errorf("cannot determine config location: HOME not set")
	}

	if err := ensureFile(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	logrus.WithField("path", path).Infoln("Loading config")
	return Parse(data)
}

// Parse decodes and validates a config document.
func Parse(data []byte) (*Config, error) {
	raw := rawConfig{Scale: 1.0}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg := &Config{
		Scale:   raw.Scale,
		Startup: raw.Startup,
	}
	if cfg.Scale <= 0 {
		logrus.WithField("scale", raw.Scale).Errorln("Invalid scale in config, using 1.0")
		cfg.Scale = 1.0
	}

	if len(raw.Keybinds) == 0 {
		cfg.Keybinds = DefaultKeybinds()
		logrus.WithField("count", len(cfg.Keybinds)).Infoln("Using default keybinds")
		return cfg, nil
	}

	for chord, value := range raw.Keybinds {
		kb, err := ParseKeybind(chord, value)
		if err != nil {
			// A broken entry is skipped, not fatal.
			logrus.WithError(err).WithField("chord", chord).Errorln("Skipping keybind")
			continue
		}
		cfg.Keybinds = append(cfg.Keybinds, kb)
	}

	logrus.WithFields(logrus.Fields{
		"startup":  len(cfg.Startup),
		"keybinds": len(cfg.Keybinds),
	}).Infoln("Config loaded")
	return cfg, nil
}

// Lookup finds the action bound to the given chord. Only the four chord
// modifiers participate in the comparison, so locked caps or numlock do
// not break bindings.
func (c *Config) Lookup(modifiers keys.Modifiers, sym keys.Sym) (Action, bool) {
	const relevant = keys.ModShift | keys.ModCtrl | keys.ModAlt | keys.ModLogo
	modifiers &= relevant
	for _, kb := range c.Keybinds {
		if kb.Modifiers == modifiers && kb.Sym == sym {
			return kb.Action, true
		}
	}
	return Action{}, false
}

func ensureFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	logrus.WithField("path", path).Infoln("Created default config file")
	return nil
}
