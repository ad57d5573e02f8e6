package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/graphgames/localint/internal/mcp"
	"github.com/spf13/cobra"
)

func newMCPServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp-server",
		Short: "Start the MCP server over stdio",
		Long: `Start a Model Context Protocol server exposing localint tools.

The server speaks MCP over stdin/stdout; all logging goes to stderr.
Register it with an MCP client to run simulations, query best responses,
inspect topologies, and browse archived runs from the client.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			memoryStore, _ := cmd.Flags().GetBool("memory")

			cfg := &mcp.Config{
				Name:    "localint",
				Version: version,
			}
			if !memoryStore {
				path, err := storePath(cmd)
				if err != nil {
					return err
				}
				cfg.StorePath = path
			}

			server, err := mcp.NewServer(cfg)
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			slog.Info("starting MCP server", "version", version, "store", valueOrDefault(cfg.StorePath, "memory"))
			return server.Run(context.Background())
		},
	}

	cmd.Flags().Bool("memory", false, "Keep the run archive in memory instead of on disk")

	return cmd
}
