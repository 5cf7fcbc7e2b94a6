// Package config handles loading atui configuration.
//
// Connection credentials come from the environment and are required:
//
//   - ATLASSIAN_URL       instance base URL
//   - ATLASSIAN_USERNAME  account email
//   - ATLASSIAN_API_TOKEN API token
//
// Non-secret preferences live in an optional YAML file following the XDG
// Base Directory layout (~/.config/atui/config.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ocasazza/atui/pkg/atlassian"
)

// Config is the top-level file configuration for atui.
type Config struct {
	// CommandBinary is the actl binary the TUI dispatches operations to.
	CommandBinary string `yaml:"command_binary,omitempty"`
	// DryRun makes every dispatched command a dry run by default.
	DryRun bool `yaml:"dry_run,omitempty"`
	// HistoryDB is the SQLite file for persisted command history.
	// Empty keeps history in memory only.
	HistoryDB string `yaml:"history_db,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CommandBinary: "actl",
	}
}

// Dir returns the XDG config directory for atui.
func Dir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "atui")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "atui")
}

// Path returns the full path to config.yaml.
func Path() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// A missing file yields DefaultConfig.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// A missing file yields DefaultConfig.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.CommandBinary == "" {
		cfg.CommandBinary = "actl"
	}
	return cfg, nil
}

// ConnectionFromEnv resolves the required Atlassian connection values
// from the environment. A missing value is a fatal bootstrap failure; the
// core is never constructed without a valid client.
func ConnectionFromEnv() (atlassian.Config, error) {
	conn := atlassian.Config{
		BaseURL:  os.Getenv("ATLASSIAN_URL"),
		Username: os.Getenv("ATLASSIAN_USERNAME"),
		APIToken: os.Getenv("ATLASSIAN_API_TOKEN"),
	}
	if conn.BaseURL == "" {
		return conn, &atlassian.ConfigError{Message: "ATLASSIAN_URL environment variable not set"}
	}
	if conn.Username == "" {
		return conn, &atlassian.ConfigError{Message: "ATLASSIAN_USERNAME environment variable not set"}
	}
	if conn.APIToken == "" {
		return conn, &atlassian.ConfigError{Message: "ATLASSIAN_API_TOKEN environment variable not set"}
	}
	return conn, nil
}
