// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every configuration error (unreadable file, bad YAML, failed validation).
var ErrInvalid = errors.New("config: invalid")

// Config holds settings shared by the pocket tools.
type Config struct {
	Contacts Contacts `yaml:"contacts"`
	Game     Game     `yaml:"game"`
	Log      Log      `yaml:"log"`
}

// Contacts holds contact book storage settings.
type Contacts struct {
	File string `yaml:"file"`
}

// Game holds rock-paper-scissors settings.
type Game struct {
	Plain bool `yaml:"plain"` // Never start the TUI, even on a terminal
}

// Log holds diagnostic logging settings.
type Log struct {
	Level string `yaml:"level"` // "off" | "debug" | "info" | "warn" | "error"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Contacts: Contacts{
			File: "contact_data.json",
		},
		Log: Log{
			Level: "off",
		},
	}
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Contacts.File == "" {
		return fmt.Errorf("%w: contacts.file cannot be empty", ErrInvalid)
	}
	switch c.Log.Level {
	case "off", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level must be one of off, debug, info, warn, error, got %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: POCKET_CONTACTS_FILE, POCKET_GAME_PLAIN, POCKET_LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("POCKET_CONTACTS_FILE"); v != "" {
		c.Contacts.File = v
	}
	if v := os.Getenv("POCKET_GAME_PLAIN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: POCKET_GAME_PLAIN %q: %v", ErrInvalid, v, err)
		}
		c.Game.Plain = b
	}
	if v := os.Getenv("POCKET_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Contacts *rawContacts `yaml:"contacts"`
	Game     *rawGame     `yaml:"game"`
	Log      *rawLog      `yaml:"log"`
}

type rawContacts struct {
	File *string `yaml:"file"`
}

type rawGame struct {
	Plain *bool `yaml:"plain"`
}

type rawLog struct {
	Level *string `yaml:"level"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist or holds no content. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalid, path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrInvalid, path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Contacts != nil && layer.Contacts.File != nil {
		c.Contacts.File = *layer.Contacts.File
	}
	if layer.Game != nil && layer.Game.Plain != nil {
		c.Game.Plain = *layer.Game.Plain
	}
	if layer.Log != nil && layer.Log.Level != nil {
		c.Log.Level = *layer.Log.Level
	}
}

// UserPath is the per-user config file, the lowest-priority layer after defaults.
func UserPath() string {
	return os.ExpandEnv("$HOME/.config/pocket/config.yaml")
}

// Resolve loads the user layer, then projectPath, then environment overrides.
// Callers apply flag overrides and then call Validate.
func Resolve(projectPath string) (*Config, error) {
	cfg, err := LoadLayered(UserPath(), projectPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}
