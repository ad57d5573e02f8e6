package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/graphgames/localint/internal/config"
	"github.com/graphgames/localint/internal/constants"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage localint configuration",
		Long: `View and modify localint configuration settings.

Configuration is stored in ~/.localint/config.yaml.

Examples:
  localint config list                      # Show all settings
  localint config get simulation.revision   # Get a specific setting
  localint config set simulation.steps 500  # Set a setting`,
	}

	cmd.AddCommand(
		newConfigListCmd(),
		newConfigGetCmd(),
		newConfigSetCmd(),
	)

	return cmd
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			w := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(w).Encode(cfg)
			}

			fmt.Fprintln(w, "Configuration (~/.localint/config.yaml):")
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Simulation Settings:")
			fmt.Fprintf(w, "  simulation.revision:  %s\n", cfg.Simulation.Revision)
			fmt.Fprintf(w, "  simulation.steps:     %d\n", cfg.Simulation.Steps)
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Store Settings:")
			fmt.Fprintf(w, "  store.path:           %s\n", valueOrDefault(cfg.Store.Path, "(default)"))
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Logging Settings:")
			fmt.Fprintf(w, "  logging.level:        %s\n", cfg.Logging.Level)

			return nil
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			key := args[0]

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			w := cmd.OutOrStdout()
			value, found := getConfigValue(cfg, key)
			if !found {
				if jsonOut {
					json.NewEncoder(w).Encode(map[string]interface{}{
						"error": "key not found",
						"key":   key,
					})
				} else {
					fmt.Fprintf(w, "Unknown configuration key: %s\n", key)
				}
				return nil
			}

			if jsonOut {
				return json.NewEncoder(w).Encode(map[string]interface{}{
					"key":   key,
					"value": value,
				})
			}
			fmt.Fprintf(w, "%s = %v\n", key, value)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			key := args[0]
			value := args[1]

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			w := cmd.OutOrStdout()
			if err := setConfigValue(cfg, key, value); err != nil {
				if jsonOut {
					json.NewEncoder(w).Encode(map[string]interface{}{
						"error": err.Error(),
						"key":   key,
					})
				} else {
					fmt.Fprintf(w, "Error: %v\n", err)
				}
				return nil
			}

			if err := saveConfig(cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(w).Encode(map[string]interface{}{
					"status": "updated",
					"key":    key,
					"value":  value,
				})
			}
			fmt.Fprintf(w, "Set %s = %s\n", key, value)
			return nil
		},
	}
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (interface{}, bool) {
	switch key {
	case "simulation.revision":
		return cfg.Simulation.Revision, true
	case "simulation.steps":
		return cfg.Simulation.Steps, true
	case "store.path":
		return cfg.Store.Path, true
	case "logging.level":
		return cfg.Logging.Level, true
	default:
		return nil, false
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "simulation.revision":
		if value != "simultaneous" && value != "sequential" {
			return fmt.Errorf("invalid revision: %s (valid: simultaneous, sequential)", value)
		}
		cfg.Simulation.Revision = value
	case "simulation.steps":
		steps, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid steps: %s (must be an integer)", value)
		}
		if steps < 0 || steps > constants.MaxSteps {
			return fmt.Errorf("steps must be between 0 and %d, got %d", constants.MaxSteps, steps)
		}
		cfg.Simulation.Steps = steps
	case "store.path":
		cfg.Store.Path = value
	case "logging.level":
		if value != "info" && value != "debug" && value != "trace" {
			return fmt.Errorf("invalid log level: %s (valid: info, debug, trace)", value)
		}
		cfg.Logging.Level = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// saveConfig writes the configuration to ~/.localint/config.yaml.
func saveConfig(cfg *config.Config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, constants.ConfigDirName)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", constants.ConfigDirName, err)
	}

	configPath := filepath.Join(configDir, constants.ConfigFileName)
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
