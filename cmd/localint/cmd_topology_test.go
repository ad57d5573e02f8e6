package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func runTopology(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	rootCmd := newTestRootCmd()
	rootCmd.AddCommand(newTopologyCmd())
	rootCmd.SetArgs(append([]string{"topology"}, args...))
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	return out, rootCmd.Execute()
}

func TestTopologyCmd(t *testing.T) {
	out, err := runTopology(t, "--kind", "star", "--n", "5")
	if err != nil {
		t.Fatalf("topology failed: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "star: 5 agents, 8 directed edges") {
		t.Errorf("missing summary line:\n%s", text)
	}
	if !strings.Contains(text, "0 -> 1") {
		t.Errorf("missing edge list:\n%s", text)
	}
}

func TestTopologyCmdDot(t *testing.T) {
	out, err := runTopology(t, "--kind", "cycle", "--n", "3", "--dot")
	if err != nil {
		t.Fatalf("topology failed: %v", err)
	}

	if !strings.Contains(out.String(), "digraph localint") {
		t.Errorf("missing DOT header:\n%s", out.String())
	}
}

func TestTopologyCmdJSON(t *testing.T) {
	out, err := runTopology(t, "--json", "--kind", "complete", "--n", "4")
	if err != nil {
		t.Fatalf("topology failed: %v", err)
	}

	var result struct {
		Kind  string `json:"kind"`
		N     int    `json:"n"`
		Edges []struct {
			From   int     `json:"from"`
			To     int     `json:"to"`
			Weight float64 `json:"weight"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out.String())
	}
	if result.Kind != "complete" || result.N != 4 {
		t.Errorf("kind=%q n=%d, want complete and 4", result.Kind, result.N)
	}
	if len(result.Edges) != 12 {
		t.Errorf("len(edges) = %d, want 12", len(result.Edges))
	}
}

func TestTopologyCmdRank(t *testing.T) {
	out, err := runTopology(t, "--kind", "star", "--n", "5", "--rank")
	if err != nil {
		t.Fatalf("topology failed: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "Influence:") {
		t.Errorf("missing influence block:\n%s", text)
	}
	// The hub is watched by every leaf, so it scores highest
	if !strings.Contains(text, "  0  1.000") {
		t.Errorf("hub should have influence 1.000:\n%s", text)
	}
}

func TestTopologyCmdRankJSON(t *testing.T) {
	out, err := runTopology(t, "--json", "--kind", "cycle", "--n", "4", "--rank")
	if err != nil {
		t.Fatalf("topology failed: %v", err)
	}

	var result struct {
		Influence []float64 `json:"influence"`
	}
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out.String())
	}
	if len(result.Influence) != 4 {
		t.Fatalf("len(influence) = %d, want 4", len(result.Influence))
	}
	// Every agent on a cycle is watched by exactly one other
	for i, score := range result.Influence {
		if score < 0.999 || score > 1.001 {
			t.Errorf("influence[%d] = %g, want 1.0", i, score)
		}
	}
}

func TestTopologyCmdUnknownKind(t *testing.T) {
	_, err := runTopology(t, "--kind", "torus", "--n", "4")
	if err == nil {
		t.Fatal("expected error for unknown topology kind")
	}
	if !strings.Contains(err.Error(), "unknown topology kind") {
		t.Errorf("error = %v, want unknown kind error", err)
	}
}
