// Package config reads the optional YAML defaults file for the CLI.
// The path comes from --config or $SHORTHAND_CONFIG; values in the file are
// overridden by flags given on the command line.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lucrnz/shorthand/internal/report"
	"github.com/lucrnz/shorthand/internal/shorthand"
	"github.com/lucrnz/shorthand/internal/util"
)

// EnvPath names the environment variable consulted when --config is not set.
const EnvPath = "SHORTHAND_CONFIG"

var (
	// ErrNotFound is returned when an explicitly requested config file is missing.
	ErrNotFound = errors.New("config file not found")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Log holds logging options.
type Log struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Config contains the CLI defaults. Unset fields leave the flag defaults alone.
type Config struct {
	Format           string              `yaml:"format,omitempty"`
	Lenient          *bool               `yaml:"lenient,omitempty"`
	Sum              *bool               `yaml:"sum,omitempty"`
	Max              *shorthand.Duration `yaml:"max,omitempty"`
	MaxBytes         string              `yaml:"max_bytes,omitempty"`
	ProgressInterval string              `yaml:"progress_interval,omitempty"`
	Log              Log                 `yaml:"log,omitempty"`

	path string
}

// Load reads the config at path, falling back to $SHORTHAND_CONFIG.
// With neither set, an empty Config is returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{path: path}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every configured value.
func (c *Config) Validate() error {
	if c.Format != "" {
		if _, err := report.ParseFormat(c.Format); err != nil {
			return fmt.Errorf("%w: format: %v", ErrInvalidValue, err)
		}
	}
	if _, err := util.ParseByteSize(c.MaxBytes); err != nil {
		return fmt.Errorf("%w: max_bytes: %v", ErrInvalidValue, err)
	}
	if _, err := util.ParseDuration(c.ProgressInterval); err != nil {
		return fmt.Errorf("%w: progress_interval: %v", ErrInvalidValue, err)
	}
	return nil
}

// Path returns the file the config was loaded from, or "" if none.
func (c *Config) Path() string {
	return c.path
}
