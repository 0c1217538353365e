// Package config loads the spoor configuration file: where the state
// document lives, which storage backend holds it, and the build-time
// preferences (dog name, program start date). Configuration is YAML with
// SPOOR_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Preferences are the user inputs consumed when building a fresh state.
type Preferences struct {
	DogName   string `yaml:"dogName"`
	StartDate string `yaml:"startDate"`
}

// Config is the full configuration document.
type Config struct {
	StatePath   string      `yaml:"statePath"`
	PlanPath    string      `yaml:"planPath"`
	Backend     string      `yaml:"backend"`
	Preferences Preferences `yaml:"preferences"`
}

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Default returns the configuration used when no file exists: file-backed
// state under ~/.spoor/.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := filepath.Join(home, ".spoor")
	return &Config{
		StatePath: filepath.Join(dir, "state.json"),
		PlanPath:  filepath.Join(dir, "plan.json"),
		Backend:   BackendFile,
		Preferences: Preferences{
			StartDate: time.Now().Format("2006-01-02"),
		},
	}
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist, then applies environment overrides. A present but
// unreadable file is an error, not a silent fallback.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config file, creating its directory if needed. Used by
// 'spoor init' so preferences given as flags survive into later runs.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".spoor", "config.yaml")
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SPOOR_STATE"); v != "" {
		cfg.StatePath = v
	}
	if v := os.Getenv("SPOOR_PLAN"); v != "" {
		cfg.PlanPath = v
	}
	if v := os.Getenv("SPOOR_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("SPOOR_DOG"); v != "" {
		cfg.Preferences.DogName = v
	}
}

// Validate checks the config invariants: a known backend and, when set, a
// plausible ISO start date.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q (expected %s or %s)", c.Backend, BackendFile, BackendSQLite)
	}
	if c.StatePath == "" {
		return fmt.Errorf("statePath is required")
	}
	if c.Preferences.StartDate != "" && !IsISODate(c.Preferences.StartDate) {
		return fmt.Errorf("startDate %q is not a valid YYYY-MM-DD date", c.Preferences.StartDate)
	}
	return nil
}

// IsISODate reports whether the value is a real YYYY-MM-DD calendar date.
func IsISODate(value string) bool {
	if !isoDatePattern.MatchString(value) {
		return false
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}
