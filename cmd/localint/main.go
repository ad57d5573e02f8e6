package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/graphgames/localint/internal/config"
	"github.com/graphgames/localint/internal/logging"
	"github.com/graphgames/localint/internal/store"
	"github.com/spf13/cobra"
)

// Set via -ldflags at build time
var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "localint",
		Short: "Local interaction games on networks",
		Long: `localint runs best-response dynamics on weighted interaction networks.

Agents sit on a directed graph, share one payoff matrix, and repeatedly
revise their actions against the weighted mix of actions they observe.
Runs can be archived, listed, and exported for analysis.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			if level == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				level = cfg.Logging.Level
			}
			slog.SetDefault(logging.NewLogger(level, os.Stderr))
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for agent consumption)")
	rootCmd.PersistentFlags().String("store", "", "Run archive path (default ~/.localint/runs.db)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug, or trace")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newSimulateCmd(),
		newTopologyCmd(),
		newRunsCmd(),
		newBackupCmd(),
		newRestoreBackupCmd(),
		newConfigCmd(),
		newMCPServerCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// storePath resolves the run archive location: the --store flag when set,
// otherwise the configured path under ~/.localint/.
func storePath(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("store")
	if path != "" {
		return path, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	return cfg.StorePath()
}

// openRunStore opens the SQLite run archive the command should work
// against.
func openRunStore(cmd *cobra.Command) (store.RunStore, error) {
	path, err := storePath(cmd)
	if err != nil {
		return nil, err
	}
	s, err := store.NewSQLiteRunStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run store: %w", err)
	}
	return s, nil
}

// valueOrDefault returns the value if non-empty, otherwise the default.
func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
