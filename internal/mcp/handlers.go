package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/graphgames/localint/internal/export"
	"github.com/graphgames/localint/internal/rank"
	"github.com/graphgames/localint/internal/ratelimit"
	"github.com/graphgames/localint/internal/scenario"
	"github.com/graphgames/localint/player"
	"github.com/graphgames/localint/topology"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// maxEdgeList caps the edge list included in topology tool output.
const maxEdgeList = 500

// registerTools registers all localint MCP tools with the server.
func (s *Server) registerTools() error {
	// Register localint_simulate tool
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "localint_simulate",
		Description: "Run best-response dynamics on an interaction network and return the resulting trajectory",
	}, s.handleSimulate)

	// Register localint_best_response tool
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "localint_best_response",
		Description: "Compute the payoff-maximising action against a weighted distribution over opponent actions",
	}, s.handleBestResponse)

	// Register localint_topology tool
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "localint_topology",
		Description: "Build a standard interaction network (cycle, path, star, complete, grid, random) and describe its edges",
	}, s.handleTopology)

	// Register localint_runs tool
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "localint_runs",
		Description: "List archived simulation runs, newest first",
	}, s.handleRuns)

	return nil
}

// registerResources registers MCP resources for loading run summaries into
// context.
func (s *Server) registerResources() error {
	// Register the recent runs resource
	s.server.AddResource(&sdk.Resource{
		URI:         "localint://runs/recent",
		Name:        "localint-recent-runs",
		Description: "Summary of recently archived simulation runs.",
		MIMEType:    "text/markdown",
	}, s.handleRecentRunsResource)

	// Register expansion resource template for full run details
	s.server.AddResourceTemplate(&sdk.ResourceTemplate{
		URITemplate: "localint://runs/{id}",
		Name:        "localint-run-detail",
		Description: "Full parameters and trajectory of one archived run.",
		MIMEType:    "text/markdown",
	}, s.handleRunResource)

	return nil
}

// handleSimulate implements the localint_simulate tool.
func (s *Server) handleSimulate(ctx context.Context, req *sdk.CallToolRequest, args SimulateInput) (*sdk.CallToolResult, SimulateOutput, error) {
	if err := ratelimit.CheckLimit(s.toolLimiters, "localint_simulate"); err != nil {
		return nil, SimulateOutput{}, err
	}

	sc := args.Scenario
	sc.ApplyDefaults()
	if err := sc.Validate(); err != nil {
		return nil, SimulateOutput{}, err
	}

	run, profiles, err := sc.Run()
	if err != nil {
		return nil, SimulateOutput{}, err
	}

	out := SimulateOutput{
		N:          run.N,
		NumActions: run.NumActions,
		Revision:   run.Revision,
		Steps:      run.Steps,
	}
	if len(profiles) > 0 {
		out.Final = profiles[len(profiles)-1]
	}
	if args.IncludeProfiles {
		out.Profiles = profiles
	}

	if args.Save {
		id, err := s.store.SaveRun(ctx, run, profiles)
		if err != nil {
			return nil, SimulateOutput{}, fmt.Errorf("failed to archive run: %w", err)
		}
		out.RunID = id
	}

	return nil, out, nil
}

// handleBestResponse implements the localint_best_response tool.
func (s *Server) handleBestResponse(ctx context.Context, req *sdk.CallToolRequest, args BestResponseInput) (*sdk.CallToolResult, BestResponseOutput, error) {
	if err := ratelimit.CheckLimit(s.toolLimiters, "localint_best_response"); err != nil {
		return nil, BestResponseOutput{}, err
	}

	if len(args.Opponents) == 0 {
		return nil, BestResponseOutput{}, fmt.Errorf("'opponents' parameter is required")
	}

	// Reuse the scenario payoff machinery for preset resolution
	sc := scenario.Scenario{Payoff: args.Payoff}
	sc.ApplyDefaults()
	payoff, err := sc.BuildPayoff()
	if err != nil {
		return nil, BestResponseOutput{}, err
	}

	p, err := player.New(payoff)
	if err != nil {
		return nil, BestResponseOutput{}, err
	}
	if len(args.Opponents) != p.NumActions() {
		return nil, BestResponseOutput{}, fmt.Errorf("opponents distribution has length %d, payoff covers %d actions", len(args.Opponents), p.NumActions())
	}

	return nil, BestResponseOutput{
		Action:          p.BestResponse(args.Opponents),
		ExpectedPayoffs: p.ExpectedPayoffs(nil, args.Opponents),
	}, nil
}

// handleTopology implements the localint_topology tool.
func (s *Server) handleTopology(ctx context.Context, req *sdk.CallToolRequest, args TopologyInput) (*sdk.CallToolResult, TopologyOutput, error) {
	if err := ratelimit.CheckLimit(s.toolLimiters, "localint_topology"); err != nil {
		return nil, TopologyOutput{}, err
	}

	adj, err := topology.Build(args.Topology)
	if err != nil {
		return nil, TopologyOutput{}, err
	}

	out := TopologyOutput{
		N:     adj.N(),
		Edges: adj.NNZ(),
	}
	if adj.NNZ() <= maxEdgeList {
		out.List = make([]EdgeSummary, 0, adj.NNZ())
		adj.Visit(func(i, j int, w float64) {
			out.List = append(out.List, EdgeSummary{From: i, To: j, Weight: w})
		})
	}
	if args.Dot {
		dot, err := export.RenderDOT(adj, nil)
		if err != nil {
			return nil, TopologyOutput{}, err
		}
		out.Dot = dot
	}
	if args.Rank {
		influence, err := rank.Influence(adj, rank.DefaultConfig())
		if err != nil {
			return nil, TopologyOutput{}, err
		}
		out.Influence = influence
	}

	return nil, out, nil
}

// handleRuns implements the localint_runs tool.
func (s *Server) handleRuns(ctx context.Context, req *sdk.CallToolRequest, args RunsInput) (*sdk.CallToolResult, RunsOutput, error) {
	if err := ratelimit.CheckLimit(s.toolLimiters, "localint_runs"); err != nil {
		return nil, RunsOutput{}, err
	}

	limit := args.Limit
	if limit <= 0 {
		limit = 20
	}

	runs, err := s.store.ListRuns(ctx)
	if err != nil {
		return nil, RunsOutput{}, fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) > limit {
		runs = runs[:limit]
	}

	items := make([]RunListItem, 0, len(runs))
	for _, run := range runs {
		items = append(items, RunListItem{
			ID:         run.ID,
			Label:      run.Label,
			CreatedAt:  run.CreatedAt,
			N:          run.N,
			NumActions: run.NumActions,
			Topology:   run.Topology,
			Revision:   run.Revision,
			Seed:       run.Seed,
			Steps:      run.Steps,
		})
	}

	return nil, RunsOutput{Runs: items, Count: len(items)}, nil
}

// handleRecentRunsResource returns a markdown summary of recent runs for
// context injection.
func (s *Server) handleRecentRunsResource(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
	runs, err := s.store.ListRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) > 10 {
		runs = runs[:10]
	}

	var b strings.Builder
	b.WriteString("# Recent simulation runs\n\n")
	if len(runs) == 0 {
		b.WriteString("No archived runs yet.\n")
	} else {
		b.WriteString("| id | label | agents | actions | topology | revision | steps |\n")
		b.WriteString("|----|-------|--------|---------|----------|----------|-------|\n")
		for _, run := range runs {
			fmt.Fprintf(&b, "| %s | %s | %d | %d | %s | %s | %d |\n",
				run.ID, run.Label, run.N, run.NumActions, run.Topology, run.Revision, run.Steps)
		}
	}

	return &sdk.ReadResourceResult{
		Contents: []*sdk.ResourceContents{
			{
				URI:      "localint://runs/recent",
				MIMEType: "text/markdown",
				Text:     b.String(),
			},
		},
	}, nil
}

// handleRunResource returns full details for one archived run.
func (s *Server) handleRunResource(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
	// URI format: localint://runs/{id}
	uri := req.Params.URI
	prefix := "localint://runs/"
	if !strings.HasPrefix(uri, prefix) {
		return nil, fmt.Errorf("invalid URI format: %s", uri)
	}
	runID := strings.TrimPrefix(uri, prefix)
	if runID == "" {
		return nil, fmt.Errorf("run ID is required")
	}

	run, err := s.store.GetRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if run == nil {
		return nil, fmt.Errorf("run not found: %s", runID)
	}
	profiles, err := s.store.GetProfiles(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get trajectory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Run %s\n\n", run.ID)
	if run.Label != "" {
		fmt.Fprintf(&b, "label: %s\n\n", run.Label)
	}
	fmt.Fprintf(&b, "- agents: %d\n- actions: %d\n- topology: %s\n- revision: %s\n- seed: %d\n- steps: %d\n\n",
		run.N, run.NumActions, run.Topology, run.Revision, run.Seed, run.Steps)
	b.WriteString("## Trajectory\n\n```\n")
	for step, profile := range profiles {
		fmt.Fprintf(&b, "%4d  %v\n", step, profile)
	}
	b.WriteString("```\n")

	return &sdk.ReadResourceResult{
		Contents: []*sdk.ResourceContents{
			{
				URI:      uri,
				MIMEType: "text/markdown",
				Text:     b.String(),
			},
		},
	}, nil
}
