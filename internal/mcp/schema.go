// Package mcp provides an MCP (Model Context Protocol) server for localint.
package mcp

import (
	"time"

	"github.com/graphgames/localint/internal/scenario"
	"github.com/graphgames/localint/topology"
)

// SimulateInput defines the input for the localint_simulate tool.
type SimulateInput struct {
	Scenario        scenario.Scenario `json:"scenario" jsonschema:"description=Run description: topology plus payoff plus steps plus revision plus seed plus optional init profile,required"`
	Save            bool              `json:"save,omitempty" jsonschema:"description=Archive the run in the run store (default: false)"`
	IncludeProfiles bool              `json:"include_profiles,omitempty" jsonschema:"description=Return the full trajectory instead of only the final profile (default: false)"`
}

// SimulateOutput defines the output for the localint_simulate tool.
type SimulateOutput struct {
	RunID      string  `json:"run_id,omitempty" jsonschema:"description=ID of the archived run when save was requested"`
	N          int     `json:"n" jsonschema:"description=Number of agents"`
	NumActions int     `json:"num_actions" jsonschema:"description=Size of the action set"`
	Revision   string  `json:"revision" jsonschema:"description=Revision protocol that was played"`
	Steps      int     `json:"steps" jsonschema:"description=Number of recorded profiles"`
	Final      []int   `json:"final" jsonschema:"description=Last recorded action profile"`
	Profiles   [][]int `json:"profiles,omitempty" jsonschema:"description=Full trajectory when include_profiles was set"`
}

// BestResponseInput defines the input for the localint_best_response tool.
type BestResponseInput struct {
	Payoff    scenario.Payoff `json:"payoff" jsonschema:"description=Payoff matrix: preset (coordination or anticoordination or rps) or explicit square matrix,required"`
	Opponents []float64       `json:"opponents" jsonschema:"description=Weighted distribution over opponent actions; weights need not sum to 1,required"`
}

// BestResponseOutput defines the output for the localint_best_response tool.
type BestResponseOutput struct {
	Action          int       `json:"action" jsonschema:"description=Payoff-maximising action (smallest index on ties)"`
	ExpectedPayoffs []float64 `json:"expected_payoffs" jsonschema:"description=Expected payoff of every action against the distribution"`
}

// TopologyInput defines the input for the localint_topology tool.
type TopologyInput struct {
	Topology topology.Spec `json:"topology" jsonschema:"description=Network to build: kind (cycle path star complete grid random) plus its parameters,required"`
	Dot      bool          `json:"dot,omitempty" jsonschema:"description=Include a Graphviz DOT rendering (default: false)"`
	Rank     bool          `json:"rank,omitempty" jsonschema:"description=Include per-agent influence scores (default: false)"`
}

// TopologyOutput defines the output for the localint_topology tool.
type TopologyOutput struct {
	N         int           `json:"n" jsonschema:"description=Number of agents"`
	Edges     int           `json:"edges" jsonschema:"description=Number of directed edges"`
	List      []EdgeSummary `json:"list,omitempty" jsonschema:"description=Directed edge list; omitted beyond 500 edges"`
	Dot       string        `json:"dot,omitempty" jsonschema:"description=Graphviz DOT rendering when requested"`
	Influence []float64     `json:"influence,omitempty" jsonschema:"description=Per-agent influence score in [0;1] when requested"`
}

// EdgeSummary is one directed observation edge.
type EdgeSummary struct {
	From   int     `json:"from"`
	To     int     `json:"to"`
	Weight float64 `json:"weight"`
}

// RunsInput defines the input for the localint_runs tool.
type RunsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"description=Maximum number of runs to return (default: 20)"`
}

// RunsOutput defines the output for the localint_runs tool.
type RunsOutput struct {
	Runs  []RunListItem `json:"runs" jsonschema:"description=Archived runs newest first"`
	Count int           `json:"count" jsonschema:"description=Number of runs returned"`
}

// RunListItem provides a list view of an archived run.
type RunListItem struct {
	ID         string    `json:"id"`
	Label      string    `json:"label,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	N          int       `json:"n"`
	NumActions int       `json:"num_actions"`
	Topology   string    `json:"topology,omitempty"`
	Revision   string    `json:"revision"`
	Seed       int64     `json:"seed"`
	Steps      int       `json:"steps"`
}
