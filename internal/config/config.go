// Package config provides unified configuration loading for localint.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/graphgames/localint/internal/constants"
	"gopkg.in/yaml.v3"
)

// Config contains all localint configuration settings.
type Config struct {
	// Simulation contains defaults applied to runs that do not set their own.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Store contains settings for the run archive.
	Store StoreConfig `json:"store" yaml:"store"`

	// Logging contains settings for operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// SimulationConfig holds per-run defaults.
type SimulationConfig struct {
	// Revision names the default revision protocol: "simultaneous" or
	// "sequential".
	Revision string `json:"revision" yaml:"revision"`

	// Steps is the default trajectory length.
	Steps int `json:"steps" yaml:"steps"`
}

// StoreConfig configures where run records are kept.
type StoreConfig struct {
	// Path is the SQLite database file for saved runs. Supports ${VAR}
	// syntax for environment variables. Empty means the default under
	// ~/.localint.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// LoggingConfig configures localint's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "trace" additionally logs full action profiles per step.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Revision: constants.DefaultRevision,
			Steps:    constants.DefaultSteps,
		},
		Store: StoreConfig{
			Path: "",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.localint/config.yaml -> environment variables
func Load() (*Config, error) {
	config := Default()

	// Try to load from default config file
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, constants.ConfigDirName, constants.ConfigFileName)
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Expand environment variables in the store path
	config.Store.Path = expandEnvVars(config.Store.Path)

	return config, nil
}

// StorePath resolves the run archive location, falling back to the default
// under the user's home directory when unset.
func (c *Config) StorePath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(homeDir, constants.ConfigDirName, constants.RunDBFileName), nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	validRevisions := map[string]bool{"": true, "simultaneous": true, "sequential": true}
	if !validRevisions[c.Simulation.Revision] {
		return fmt.Errorf("invalid revision: %s (valid: simultaneous, sequential, or empty for default)", c.Simulation.Revision)
	}

	if c.Simulation.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", c.Simulation.Steps)
	}
	if c.Simulation.Steps > constants.MaxSteps {
		return fmt.Errorf("steps must be at most %d, got %d", constants.MaxSteps, c.Simulation.Steps)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("LOCALINT_REVISION"); v != "" {
		config.Simulation.Revision = v
	}

	if v := os.Getenv("LOCALINT_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Simulation.Steps = n
		}
	}

	if v := os.Getenv("LOCALINT_STORE_PATH"); v != "" {
		config.Store.Path = v
	}

	if v := os.Getenv("LOCALINT_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, os.Getenv)
}
