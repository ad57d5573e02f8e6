// Package backup provides backup and restore functionality for the run
// archive. Archives are single files: a JSON header line followed by a
// gzip-compressed, checksummed JSON payload of every run and its
// trajectory.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/graphgames/localint/internal/store"
)

// Archive is the payload of a backup file.
type Archive struct {
	Version   int           `json:"version"`
	CreatedAt time.Time     `json:"created_at"`
	Runs      []ArchivedRun `json:"runs"`
}

// ArchivedRun bundles one run with its recorded trajectory.
type ArchivedRun struct {
	Run      store.Run `json:"run"`
	Profiles [][]int   `json:"profiles"`
}

// DefaultBackupDir returns the default backup directory (~/.localint/backups/).
func DefaultBackupDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".localint", "backups"), nil
}

// Backup exports every run and trajectory from the store to an archive file.
func Backup(ctx context.Context, s store.RunStore, outputPath string) (*Archive, error) {
	runs, err := s.ListRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	archive := &Archive{
		Version:   FormatVersion,
		CreatedAt: time.Now().UTC(),
		Runs:      make([]ArchivedRun, 0, len(runs)),
	}
	for _, run := range runs {
		profiles, err := s.GetProfiles(ctx, run.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get trajectory for %s: %w", run.ID, err)
		}
		archive.Runs = append(archive.Runs, ArchivedRun{Run: run, Profiles: profiles})
	}

	if err := WriteFile(outputPath, archive); err != nil {
		return nil, err
	}

	return archive, nil
}

// RestoreMode controls how restore handles existing data.
type RestoreMode string

const (
	// RestoreMerge skips runs that already exist (default).
	RestoreMerge RestoreMode = "merge"
	// RestoreReplace clears the store before restoring.
	RestoreReplace RestoreMode = "replace"
)

// RestoreResult contains statistics about the restore operation.
type RestoreResult struct {
	RunsRestored int `json:"runs_restored"`
	RunsSkipped  int `json:"runs_skipped"`
	RunsDeleted  int `json:"runs_deleted"`
}

// Restore imports runs from an archive file into the store.
func Restore(ctx context.Context, s store.RunStore, inputPath string, mode RestoreMode) (*RestoreResult, error) {
	if mode != RestoreMerge && mode != RestoreReplace {
		return nil, fmt.Errorf("unknown restore mode %q (use merge or replace)", mode)
	}

	archive, err := ReadFile(inputPath)
	if err != nil {
		return nil, err
	}

	result := &RestoreResult{}

	if mode == RestoreReplace {
		existing, err := s.ListRuns(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list runs: %w", err)
		}
		for _, run := range existing {
			if err := s.DeleteRun(ctx, run.ID); err != nil {
				return nil, fmt.Errorf("failed to clear run %s: %w", run.ID, err)
			}
			result.RunsDeleted++
		}
	}

	for _, ar := range archive.Runs {
		if mode == RestoreMerge {
			existing, err := s.GetRun(ctx, ar.Run.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check existing run %s: %w", ar.Run.ID, err)
			}
			if existing != nil {
				result.RunsSkipped++
				continue
			}
		}

		if _, err := s.SaveRun(ctx, ar.Run, ar.Profiles); err != nil {
			// Skip duplicates silently in merge mode
			if mode == RestoreMerge {
				result.RunsSkipped++
				continue
			}
			return nil, fmt.Errorf("failed to restore run %s: %w", ar.Run.ID, err)
		}
		result.RunsRestored++
	}

	return result, nil
}

// GenerateBackupPath creates a timestamped archive filename in the given
// directory.
func GenerateBackupPath(dir string) string {
	ts := time.Now().Format("20060102-150405")
	return filepath.Join(dir, fmt.Sprintf("localint-backup-%s.json", ts))
}
