package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Manage archived simulation runs",
		Long: `List, inspect, export, and delete runs archived with 'simulate --save'.

Examples:
  localint runs list
  localint runs show 6b1f...
  localint runs export 6b1f... --out run.arrow
  localint runs delete 6b1f...`,
	}

	cmd.AddCommand(
		newRunsListCmd(),
		newRunsShowCmd(),
		newRunsExportCmd(),
		newRunsDeleteCmd(),
	)

	return cmd
}

func newRunsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRunStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			runs, err := s.ListRuns(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			w := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(w).Encode(runs)
			}

			if len(runs) == 0 {
				fmt.Fprintln(w, "No archived runs. Archive one with 'localint simulate --save'.")
				return nil
			}

			fmt.Fprintf(w, "Archived runs (%d):\n\n", len(runs))
			for _, run := range runs {
				label := valueOrDefault(run.Label, "(unnamed)")
				fmt.Fprintf(w, "%s  %s\n", run.ID, run.CreatedAt.Format(time.RFC3339))
				fmt.Fprintf(w, "   %s: %d agents, %d actions, %s on %s, %d steps\n",
					label, run.N, run.NumActions, run.Revision,
					valueOrDefault(run.Topology, "custom"), run.Steps)
			}
			return nil
		},
	}
}

func newRunsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one archived run with its trajectory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRunStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := context.Background()
			run, err := s.GetRun(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get run: %w", err)
			}
			if run == nil {
				return fmt.Errorf("run not found: %s", args[0])
			}
			profiles, err := s.GetProfiles(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get trajectory: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			w := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(w).Encode(map[string]interface{}{
					"run":      run,
					"profiles": profiles,
				})
			}

			fmt.Fprintf(w, "Run %s\n", run.ID)
			if run.Label != "" {
				fmt.Fprintf(w, "  Label:    %s\n", run.Label)
			}
			fmt.Fprintf(w, "  Created:  %s\n", run.CreatedAt.Format(time.RFC3339))
			fmt.Fprintf(w, "  Agents:   %d\n", run.N)
			fmt.Fprintf(w, "  Actions:  %d\n", run.NumActions)
			fmt.Fprintf(w, "  Topology: %s\n", valueOrDefault(run.Topology, "custom"))
			fmt.Fprintf(w, "  Revision: %s\n", run.Revision)
			fmt.Fprintf(w, "  Seed:     %d\n", run.Seed)
			fmt.Fprintf(w, "  Steps:    %d\n", run.Steps)
			fmt.Fprintln(w)
			for step, profile := range profiles {
				fmt.Fprintf(w, "%4d  %v\n", step, profile)
			}
			return nil
		},
	}
}

func newRunsExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <run-id>",
		Short: "Export an archived trajectory to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			format, _ := cmd.Flags().GetString("format")

			s, err := openRunStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := context.Background()
			run, err := s.GetRun(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get run: %w", err)
			}
			if run == nil {
				return fmt.Errorf("run not found: %s", args[0])
			}
			profiles, err := s.GetProfiles(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get trajectory: %w", err)
			}

			if err := writeTrajectoryFile(out, format, *run, profiles); err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			w := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(w).Encode(map[string]string{
					"run_id": run.ID,
					"out":    out,
					"format": format,
				})
			}
			fmt.Fprintf(w, "Exported %s (%d steps) to %s\n", run.ID, len(profiles), out)
			return nil
		},
	}

	cmd.Flags().StringP("out", "o", "", "Output file path")
	cmd.Flags().String("format", "arrow", "Trajectory file format: arrow, jsonl, or csv")

	return cmd
}

func newRunsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRunStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.DeleteRun(context.Background(), args[0]); err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			w := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(w).Encode(map[string]string{
					"status": "deleted",
					"run_id": args[0],
				})
			}
			fmt.Fprintf(w, "Deleted %s\n", args[0])
			return nil
		},
	}
}
