// Package config holds funseal's build-time constants and the optional
// funseal.yaml project configuration.
//
// The config file tunes the tooling, not the language: REPL history
// location, diagnostic coloring, and tracing. A missing funseal.yaml is
// not an error; Default() covers every setting.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ColorMode controls ANSI coloring of diagnostics.
type ColorMode string

const (
	// ColorAuto colors output only when stderr is a terminal.
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config represents the top-level funseal.yaml configuration.
type Config struct {
	// HistoryFile is where the REPL persists its input history.
	// Defaults to ~/.funseal_history.
	HistoryFile string `yaml:"history_file,omitempty"`

	// Color selects diagnostic coloring: auto, always or never.
	Color ColorMode `yaml:"color,omitempty"`

	// Trace enables per-stage pipeline tracing on stderr.
	Trace bool `yaml:"trace,omitempty"`
}

// Default returns the configuration used when no funseal.yaml exists.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		HistoryFile: filepath.Join(home, ".funseal_history"),
		Color:       ColorAuto,
	}
}

// LoadConfig reads and parses a funseal.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses funseal.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfig searches for funseal.yaml starting from dir and walking up
// to parent directories. Returns the path and nil if found, or empty
// string and nil if no config exists anywhere up the tree.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range []string{"funseal.yaml", "funseal.yml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Load finds and loads the nearest funseal.yaml above dir, falling back
// to Default() when none exists.
func Load(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return LoadConfig(path)
}

func (c *Config) validate(path string) error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return fmt.Errorf("%s: invalid color mode %q (want auto, always or never)", path, c.Color)
	}
}
