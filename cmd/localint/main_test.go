package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// newTestRootCmd creates a root command with persistent flags for testing subcommands
func newTestRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use: "localint",
	}
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("store", "", "Run archive path")
	rootCmd.PersistentFlags().String("log-level", "", "Log level")
	return rootCmd
}

// isolateHome sets HOME to a temp directory to avoid touching real ~/.localint/
func isolateHome(t *testing.T) {
	t.Helper()
	tmpHome := filepath.Join(t.TempDir(), "home")
	if err := os.MkdirAll(tmpHome, 0700); err != nil {
		t.Fatalf("Failed to create temp home: %v", err)
	}
	oldHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpHome)
	t.Cleanup(func() {
		os.Setenv("HOME", oldHome)
	})
}

func TestNewVersionCmd(t *testing.T) {
	cmd := newVersionCmd()
	if cmd.Use != "version" {
		t.Errorf("Use = %q, want %q", cmd.Use, "version")
	}

	root := newTestRootCmd()
	root.AddCommand(cmd)
	root.SetArgs([]string{"version"})
	var buf bytes.Buffer
	root.SetOut(&buf)
	if err := root.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "localint "+version) {
		t.Errorf("output = %q, want prefix %q", buf.String(), "localint "+version)
	}
}

func TestVersionCmdJSON(t *testing.T) {
	root := newTestRootCmd()
	root.AddCommand(newVersionCmd())
	root.SetArgs([]string{"version", "--json"})
	var buf bytes.Buffer
	root.SetOut(&buf)
	if err := root.Execute(); err != nil {
		t.Fatalf("version --json failed: %v", err)
	}

	var got struct {
		Version string `json:"version"`
		Go      string `json:"go"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Version != version {
		t.Errorf("version = %q, want %q", got.Version, version)
	}
	if got.Go == "" {
		t.Error("go field is empty")
	}
}

func TestNewSimulateCmd(t *testing.T) {
	cmd := newSimulateCmd()
	if cmd.Use != "simulate [scenario.yaml]" {
		t.Errorf("Use = %q, want %q", cmd.Use, "simulate [scenario.yaml]")
	}

	for _, flag := range []string{"topology", "n", "steps", "revision", "seed", "init", "save", "out", "format", "trajectory"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("missing --%s flag", flag)
		}
	}
}

func TestNewTopologyCmd(t *testing.T) {
	cmd := newTopologyCmd()
	if cmd.Use != "topology" {
		t.Errorf("Use = %q, want %q", cmd.Use, "topology")
	}
	if cmd.Flags().Lookup("dot") == nil {
		t.Error("missing --dot flag")
	}
}

func TestNewRunsCmd(t *testing.T) {
	cmd := newRunsCmd()
	if cmd.Use != "runs" {
		t.Errorf("Use = %q, want %q", cmd.Use, "runs")
	}

	subs := map[string]bool{}
	for _, sub := range cmd.Commands() {
		subs[sub.Name()] = true
	}
	for _, want := range []string{"list", "show", "export", "delete"} {
		if !subs[want] {
			t.Errorf("missing subcommand %q", want)
		}
	}
}

func TestNewBackupCmd(t *testing.T) {
	cmd := newBackupCmd()
	if cmd.Use != "backup" {
		t.Errorf("Use = %q, want %q", cmd.Use, "backup")
	}
	for _, flag := range []string{"output", "keep"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("missing --%s flag", flag)
		}
	}

	subs := map[string]bool{}
	for _, sub := range cmd.Commands() {
		subs[sub.Name()] = true
	}
	for _, want := range []string{"list", "verify"} {
		if !subs[want] {
			t.Errorf("missing subcommand %q", want)
		}
	}
}

func TestNewRestoreBackupCmd(t *testing.T) {
	cmd := newRestoreBackupCmd()
	if cmd.Use != "restore-backup <file>" {
		t.Errorf("Use = %q, want %q", cmd.Use, "restore-backup <file>")
	}
	if cmd.Flags().Lookup("mode") == nil {
		t.Error("missing --mode flag")
	}
}

func TestNewConfigCmd(t *testing.T) {
	cmd := newConfigCmd()
	if cmd.Use != "config" {
		t.Errorf("Use = %q, want %q", cmd.Use, "config")
	}
}

func TestNewMCPServerCmd(t *testing.T) {
	cmd := newMCPServerCmd()
	if cmd.Use != "mcp-server" {
		t.Errorf("Use = %q, want %q", cmd.Use, "mcp-server")
	}
	if cmd.Flags().Lookup("memory") == nil {
		t.Error("missing --memory flag")
	}
}

func TestValueOrDefault(t *testing.T) {
	if got := valueOrDefault("x", "d"); got != "x" {
		t.Errorf("valueOrDefault(x, d) = %q, want x", got)
	}
	if got := valueOrDefault("", "d"); got != "d" {
		t.Errorf("valueOrDefault(\"\", d) = %q, want d", got)
	}
}
