package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/graphgames/localint/internal/backup"
	"github.com/spf13/cobra"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export the run archive to a backup file",
		Long: `Backup every archived run and its trajectory to a compressed file.

Default location: ~/.localint/backups/localint-backup-YYYYMMDD-HHMMSS.json
Keeps the most recent backups in that directory (default: last 10).

Examples:
  localint backup                        # Backup to the default location
  localint backup --output runs.json     # Backup to a specific file
  localint backup list                   # List all backups
  localint backup verify <file>          # Verify backup integrity`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputPath, _ := cmd.Flags().GetString("output")
			keep, _ := cmd.Flags().GetInt("keep")

			if outputPath == "" {
				dir, err := backup.DefaultBackupDir()
				if err != nil {
					return fmt.Errorf("failed to get backup directory: %w", err)
				}
				outputPath = backup.GenerateBackupPath(dir)
			}

			s, err := openRunStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			archive, err := backup.Backup(context.Background(), s, outputPath)
			if err != nil {
				return fmt.Errorf("backup failed: %w", err)
			}

			steps := 0
			for _, ar := range archive.Runs {
				steps += len(ar.Profiles)
			}

			if keep > 0 {
				policy := &backup.CountPolicy{MaxCount: keep}
				if _, err := backup.Prune(filepath.Dir(outputPath), policy); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to prune old backups: %v\n", err)
				}
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			w := cmd.OutOrStdout()
			if jsonOut {
				info, _ := os.Stat(outputPath)
				var sizeBytes int64
				if info != nil {
					sizeBytes = info.Size()
				}
				return json.NewEncoder(w).Encode(map[string]interface{}{
					"path":       outputPath,
					"run_count":  len(archive.Runs),
					"step_count": steps,
					"size_bytes": sizeBytes,
				})
			}

			fmt.Fprintf(w, "Backup created: %d runs, %d steps\n", len(archive.Runs), steps)
			fmt.Fprintf(w, "  Path: %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().String("output", "", "Output file path (default: auto-generated in ~/.localint/backups/)")
	cmd.Flags().Int("keep", 10, "Backups to keep in the output directory, 0 to keep all")

	cmd.AddCommand(
		newBackupListCmd(),
		newBackupVerifyCmd(),
	)

	return cmd
}

func newBackupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all backups with metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := backup.DefaultBackupDir()
			if err != nil {
				return fmt.Errorf("failed to get backup directory: %w", err)
			}

			backups, err := backup.ListBackups(dir)
			if err != nil {
				return fmt.Errorf("failed to list backups: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			w := cmd.OutOrStdout()
			if jsonOut {
				type jsonEntry struct {
					Path      string `json:"path"`
					Size      int64  `json:"size_bytes"`
					CreatedAt string `json:"created_at"`
					RunCount  int    `json:"run_count"`
				}
				entries := make([]jsonEntry, 0, len(backups))
				for _, b := range backups {
					entries = append(entries, jsonEntry{
						Path:      b.Path,
						Size:      b.Size,
						CreatedAt: b.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
						RunCount:  b.RunCount,
					})
				}
				return json.NewEncoder(w).Encode(map[string]interface{}{
					"backups":     entries,
					"total_count": len(entries),
					"directory":   dir,
				})
			}

			if len(backups) == 0 {
				fmt.Fprintf(w, "No backups found in %s\n", dir)
				return nil
			}

			fmt.Fprintf(w, "Backups in %s:\n", dir)
			var totalSize int64
			for _, b := range backups {
				totalSize += b.Size
				fmt.Fprintf(w, "  %s  %s  %d runs  %s\n",
					b.CreatedAt.Format("2006-01-02 15:04"),
					formatBytes(b.Size),
					b.RunCount,
					filepath.Base(b.Path),
				)
			}
			fmt.Fprintf(w, "Total: %d backups, %s\n", len(backups), formatBytes(totalSize))
			return nil
		},
	}
}

func newBackupVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file>",
		Short: "Verify backup file integrity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filePath := args[0]

			jsonOut, _ := cmd.Flags().GetBool("json")
			w := cmd.OutOrStdout()

			if err := backup.VerifyChecksum(filePath); err != nil {
				if jsonOut {
					return json.NewEncoder(w).Encode(map[string]interface{}{
						"file":  filePath,
						"valid": false,
						"error": err.Error(),
					})
				}
				fmt.Fprintf(w, "FAILED: %v\n", err)
				fmt.Fprintf(w, "  File: %s\n", filePath)
				return fmt.Errorf("checksum verification failed")
			}

			if jsonOut {
				return json.NewEncoder(w).Encode(map[string]interface{}{
					"file":  filePath,
					"valid": true,
				})
			}

			fmt.Fprintf(w, "OK: checksum verified\n")
			fmt.Fprintf(w, "  File: %s\n", filePath)
			return nil
		},
	}
}

func newRestoreBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore-backup <file>",
		Short: "Restore the run archive from a backup file",
		Long: `Restore archived runs from a backup file.

Modes:
  merge   - Skip runs that already exist (default)
  replace - Clear the archive first, then restore

Examples:
  localint restore-backup ~/.localint/backups/localint-backup-20260823-120000.json
  localint restore-backup runs.json --mode replace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, _ := cmd.Flags().GetString("mode")

			s, err := openRunStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := backup.Restore(context.Background(), s, args[0], backup.RestoreMode(mode))
			if err != nil {
				return fmt.Errorf("restore failed: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			w := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(w).Encode(result)
			}

			fmt.Fprintf(w, "Restore complete (mode: %s)\n", mode)
			fmt.Fprintf(w, "  Runs: %d restored, %d skipped, %d deleted\n",
				result.RunsRestored, result.RunsSkipped, result.RunsDeleted)
			return nil
		},
	}

	cmd.Flags().String("mode", "merge", "Restore mode: merge or replace")

	return cmd
}

// formatBytes formats a byte count as a human-readable string.
func formatBytes(b int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case b >= gb:
		return fmt.Sprintf("%.1fGB", float64(b)/float64(gb))
	case b >= mb:
		return fmt.Sprintf("%.1fMB", float64(b)/float64(mb))
	case b >= kb:
		return fmt.Sprintf("%.1fKB", float64(b)/float64(kb))
	default:
		return fmt.Sprintf("%dB", b)
	}
}
