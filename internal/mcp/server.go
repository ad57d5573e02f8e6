// Package mcp provides an MCP (Model Context Protocol) server for localint.
package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/graphgames/localint/internal/ratelimit"
	"github.com/graphgames/localint/internal/store"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP SDK server and provides localint-specific
// functionality.
type Server struct {
	server       *sdk.Server
	store        store.RunStore
	toolLimiters ratelimit.ToolLimiters
}

// Config holds server configuration.
type Config struct {
	Name      string // Server name (e.g., "localint")
	Version   string // Server version
	StorePath string // SQLite run archive; empty uses an in-memory store
}

// NewServer creates a new MCP server with localint tools.
func NewServer(cfg *Config) (*Server, error) {
	var runStore store.RunStore
	if cfg.StorePath != "" {
		sqliteStore, err := store.NewSQLiteRunStore(cfg.StorePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open run store: %w", err)
		}
		runStore = sqliteStore
	} else {
		runStore = store.NewMemoryRunStore()
	}

	// Create MCP server
	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, req *sdk.InitializedRequest) {
			// Client initialized, ready to serve
		},
	})

	s := &Server{
		server:       mcpServer,
		store:        runStore,
		toolLimiters: ratelimit.NewToolLimiters(),
	}

	// Register tools
	if err := s.registerTools(); err != nil {
		runStore.Close()
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	// Register resources for loading run summaries into context
	if err := s.registerResources(); err != nil {
		runStore.Close()
		return nil, fmt.Errorf("failed to register resources: %w", err)
	}

	return s, nil
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle OS signals
	sigChan := make(chan os.Signal, 1)
	notifySignals(sigChan)

	go func() {
		<-sigChan
		cancel()
	}()

	// Run server (blocks)
	err := s.server.Run(ctx, &sdk.StdioTransport{})

	// Clean up
	s.store.Close()

	return err
}

// Close closes the server and releases resources.
func (s *Server) Close() error {
	return s.store.Close()
}
