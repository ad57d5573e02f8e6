package mcp

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewServer(t *testing.T) {
	cfg := &Config{
		Name:    "test-server",
		Version: "v1.0.0",
	}

	server, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	defer server.Close()

	if server.server == nil {
		t.Error("Server.server is nil")
	}
	if server.store == nil {
		t.Error("Server.store is nil")
	}
}

func TestNewServer_SQLiteStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	cfg := &Config{
		Name:      "test-server",
		Version:   "v1.0.0",
		StorePath: dbPath,
	}

	server, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	defer server.Close()

	// Opening the store creates the database file
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("SQLite run archive was not created")
	}
}

func TestClose(t *testing.T) {
	cfg := &Config{
		Name:    "test-server",
		Version: "v1.0.0",
	}

	server, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}

	// Close should not error
	if err := server.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	// Multiple closes should be safe
	if err := server.Close(); err != nil {
		t.Errorf("Second Close() error = %v", err)
	}
}

func TestNewServer_HasRateLimiters(t *testing.T) {
	server := setupTestServer(t)

	tools := []string{
		"localint_simulate",
		"localint_best_response",
		"localint_topology",
		"localint_runs",
	}
	for _, tool := range tools {
		if server.toolLimiters[tool] == nil {
			t.Errorf("No rate limiter configured for %s", tool)
		}
	}
}
