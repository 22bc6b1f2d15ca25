// Package config loads and validates the TOML application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application name used for the config directory
	AppName = "timelog"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
	// LogFile is the default name of the CSV log file
	LogFile = "timelog.csv"
	// TimerFile is the name of the JSON timer state file
	TimerFile = "timer.json"
)

// Config represents the application configuration. The core packages treat
// it as an opaque settings struct; only the CLI and TUI read its fields.
type Config struct {
	// LogFile overrides the default log file location when non-empty
	LogFile string `toml:"log_file"`
	// DateFormat is the Go reference layout used when displaying timestamps
	DateFormat string `toml:"date_format"`
	// Timezone is an IANA timezone name (e.g. "Europe/Oslo") or "Local"
	Timezone string `toml:"timezone"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogFile:    "",
		DateFormat: "2006-01-02 15:04",
		Timezone:   "Local",
	}
}

// Normalize trims whitespace and fills empty fields with defaults.
func (c *Config) Normalize() {
	c.LogFile = strings.TrimSpace(c.LogFile)
	c.DateFormat = strings.TrimSpace(c.DateFormat)
	c.Timezone = strings.TrimSpace(c.Timezone)

	defaults := DefaultConfig()
	if c.DateFormat == "" {
		c.DateFormat = defaults.DateFormat
	}
	if c.Timezone == "" {
		c.Timezone = defaults.Timezone
	}
}

// Validate checks that the configuration values are usable.
func (c Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Localize converts t to the configured timezone for display. The stored
// offset is kept when the timezone cannot be resolved.
func (c Config) Localize(t time.Time) time.Time {
	loc, err := c.Location()
	if err != nil {
		return t
	}
	return t.In(loc)
}

// LoadOrDefault reads the config file at path, returning defaults when the
// file does not exist. A file that exists but cannot be parsed is an error.
func LoadOrDefault(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// GenerateSampleConfig returns a documented sample config file.
func GenerateSampleConfig() string {
	defaults := DefaultConfig()
	return fmt.Sprintf(`# timelog configuration file

# Path to the CSV log file. Empty means the default location
# under the user config directory.
log_file = %q

# Display layout for timestamps (Go reference time layout)
date_format = %q

# Timezone: IANA timezone name (e.g. "Europe/Oslo") or "Local"
timezone = %q
`, defaults.LogFile, defaults.DateFormat, defaults.Timezone)
}

// appDir returns the application's config directory, creating it if needed.
// Uses os.UserConfigDir() for cross-platform XDG-compliant placement.
func appDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(configDir, AppName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	return dir, nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	dir, err := appDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFile), nil
}

// DefaultLogPath returns the default path to the CSV log file.
func DefaultLogPath() (string, error) {
	dir, err := appDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogFile), nil
}

// DefaultTimerPath returns the path to the timer state file.
func DefaultTimerPath() (string, error) {
	dir, err := appDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, TimerFile), nil
}

// ResolveLogPath returns the configured log file path, falling back to the
// default location when the config does not set one.
func (c Config) ResolveLogPath() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, nil
	}
	return DefaultLogPath()
}
