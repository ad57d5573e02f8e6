package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/graphgames/localint/internal/config"
	"github.com/graphgames/localint/internal/export"
	"github.com/graphgames/localint/internal/logging"
	"github.com/graphgames/localint/internal/scenario"
	"github.com/graphgames/localint/internal/store"
	"github.com/graphgames/localint/topology"
	"github.com/spf13/cobra"
)

// simulateResult is the JSON shape of a finished run.
type simulateResult struct {
	RunID      string  `json:"run_id,omitempty"`
	N          int     `json:"n"`
	NumActions int     `json:"num_actions"`
	Topology   string  `json:"topology"`
	Revision   string  `json:"revision"`
	Seed       int64   `json:"seed"`
	Steps      int     `json:"steps"`
	Final      []int   `json:"final"`
	Profiles   [][]int `json:"profiles,omitempty"`
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [scenario.yaml]",
		Short: "Run best-response dynamics on a network",
		Long: `Run best-response dynamics and print the resulting trajectory.

The run is described either by a scenario file or by flags. Flags given
alongside a scenario file override the file.

Examples:
  localint simulate scenario.yaml
  localint simulate --topology cycle --n 20 --steps 50
  localint simulate --topology random --n 30 --prob 0.2 --revision sequential --seed 7
  localint simulate scenario.yaml --save --out run.arrow`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := buildScenario(cmd, args)
			if err != nil {
				return err
			}

			sc.ApplyDefaults()
			if err := sc.Validate(); err != nil {
				return err
			}

			slog.Debug("running scenario",
				"topology", sc.Topology.Kind,
				"steps", sc.Steps,
				"revision", sc.Revision,
				"seed", sc.Seed)

			run, profiles, err := sc.Run()
			if err != nil {
				return err
			}

			if slog.Default().Enabled(context.Background(), logging.LevelTrace) {
				for step, profile := range profiles {
					slog.Log(context.Background(), logging.LevelTrace, "profile",
						"step", step, "actions", fmt.Sprint(profile))
				}
			}

			result := simulateResult{
				N:          run.N,
				NumActions: run.NumActions,
				Topology:   run.Topology,
				Revision:   run.Revision,
				Seed:       run.Seed,
				Steps:      run.Steps,
			}
			if len(profiles) > 0 {
				result.Final = profiles[len(profiles)-1]
			}

			if save, _ := cmd.Flags().GetBool("save"); save {
				s, err := openRunStore(cmd)
				if err != nil {
					return err
				}
				defer s.Close()
				id, err := s.SaveRun(context.Background(), run, profiles)
				if err != nil {
					return fmt.Errorf("failed to archive run: %w", err)
				}
				result.RunID = id
			}

			if out, _ := cmd.Flags().GetString("out"); out != "" {
				format, _ := cmd.Flags().GetString("format")
				if err := writeTrajectoryFile(out, format, run, profiles); err != nil {
					return err
				}
			}

			trajectory, _ := cmd.Flags().GetBool("trajectory")
			if trajectory {
				result.Profiles = profiles
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Ran %d steps on %s (%d agents, %d actions, %s revision)\n",
				result.Steps, result.Topology, result.N, result.NumActions, result.Revision)
			if trajectory {
				for step, profile := range profiles {
					fmt.Fprintf(w, "%4d  %v\n", step, profile)
				}
			} else if result.Final != nil {
				fmt.Fprintf(w, "Final profile: %v\n", result.Final)
			}
			if result.RunID != "" {
				fmt.Fprintf(w, "Archived as %s\n", result.RunID)
			}

			return nil
		},
	}

	cmd.Flags().String("topology", "cycle", "Topology kind: cycle, path, star, complete, grid, or random")
	cmd.Flags().Int("n", 10, "Number of agents")
	cmd.Flags().Int("rows", 0, "Grid rows (grid topology)")
	cmd.Flags().Int("cols", 0, "Grid columns (grid topology)")
	cmd.Flags().Float64("prob", 0, "Edge probability (random topology)")
	cmd.Flags().Int64("graph-seed", 0, "Edge seed (random topology)")
	cmd.Flags().String("payoff", "", "Payoff preset: coordination, anticoordination, or rps")
	cmd.Flags().Int("actions", 0, "Number of actions (sized presets)")
	cmd.Flags().Int("steps", 0, "Number of revision steps")
	cmd.Flags().String("revision", "", "Revision protocol: simultaneous or sequential")
	cmd.Flags().Int64("seed", 0, "Model seed for sequential agent picks and initial profiles")
	cmd.Flags().String("init", "", "Initial action profile, comma-separated (e.g. 0,1,0)")
	cmd.Flags().String("name", "", "Run label used when archiving")
	cmd.Flags().Bool("save", false, "Archive the run in the run store")
	cmd.Flags().String("out", "", "Write the trajectory to a file")
	cmd.Flags().String("format", "arrow", "Trajectory file format: arrow, jsonl, or csv")
	cmd.Flags().Bool("trajectory", false, "Print every recorded profile, not just the final one")

	return cmd
}

// buildScenario assembles the scenario from the optional file plus flags.
// Flag values override the file; config supplies defaults for steps and
// revision when neither sets them.
func buildScenario(cmd *cobra.Command, args []string) (*scenario.Scenario, error) {
	var sc *scenario.Scenario
	if len(args) == 1 {
		loaded, err := scenario.Load(args[0])
		if err != nil {
			return nil, err
		}
		sc = loaded
	} else {
		kind, _ := cmd.Flags().GetString("topology")
		n, _ := cmd.Flags().GetInt("n")
		rows, _ := cmd.Flags().GetInt("rows")
		cols, _ := cmd.Flags().GetInt("cols")
		prob, _ := cmd.Flags().GetFloat64("prob")
		graphSeed, _ := cmd.Flags().GetInt64("graph-seed")
		preset, _ := cmd.Flags().GetString("payoff")
		actions, _ := cmd.Flags().GetInt("actions")

		sc = &scenario.Scenario{
			Topology: topology.Spec{
				Kind: kind,
				N:    n,
				Rows: rows,
				Cols: cols,
				P:    prob,
				Seed: graphSeed,
			},
			Payoff: scenario.Payoff{Preset: preset, Actions: actions},
		}
	}

	// Explicit flags win over the file
	if cmd.Flags().Changed("steps") {
		sc.Steps, _ = cmd.Flags().GetInt("steps")
	}
	if cmd.Flags().Changed("revision") {
		sc.Revision, _ = cmd.Flags().GetString("revision")
	}
	if cmd.Flags().Changed("seed") {
		sc.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	if cmd.Flags().Changed("name") {
		sc.Name, _ = cmd.Flags().GetString("name")
	}
	if cmd.Flags().Changed("init") {
		initStr, _ := cmd.Flags().GetString("init")
		init, err := parseInitProfile(initStr)
		if err != nil {
			return nil, err
		}
		sc.Init = init
	}

	// Configured defaults fill what is still unset
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if sc.Steps == 0 {
		sc.Steps = cfg.Simulation.Steps
	}
	if sc.Revision == "" {
		sc.Revision = cfg.Simulation.Revision
	}

	return sc, nil
}

// parseInitProfile parses a comma-separated action list.
func parseInitProfile(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	init := make([]int, 0, len(parts))
	for _, part := range parts {
		a, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid init profile entry %q", part)
		}
		init = append(init, a)
	}
	return init, nil
}

// writeTrajectoryFile exports the trajectory to a file in the given format.
func writeTrajectoryFile(path, format string, run store.Run, profiles [][]int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export.WriteTrajectory(f, format, run, profiles); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
