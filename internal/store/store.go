// Package store defines the RunStore interface for archiving simulation
// runs and their recorded trajectories.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/graphgames/localint/internal/constants"
)

// Run describes one archived simulation: its parameters and enough shape
// information to interpret the stored trajectory.
type Run struct {
	ID         string    `json:"id"`
	Label      string    `json:"label,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	N          int       `json:"n"`
	NumActions int       `json:"num_actions"`
	Topology   string    `json:"topology,omitempty"` // topology kind, or "custom"
	Revision   string    `json:"revision"`
	Seed       int64     `json:"seed"`
	Steps      int       `json:"steps"` // number of recorded profiles
}

// Validate checks that a run record is internally consistent before it is
// written. Steps is set by SaveRun from the trajectory itself.
func (r Run) Validate() error {
	if r.N < 1 {
		return fmt.Errorf("run needs at least 1 agent, got %d", r.N)
	}
	if r.N > constants.MaxAgents {
		return fmt.Errorf("run exceeds the %d agent limit: %d", constants.MaxAgents, r.N)
	}
	if r.NumActions < 1 {
		return fmt.Errorf("run needs at least 1 action, got %d", r.NumActions)
	}
	if r.Revision != "simultaneous" && r.Revision != "sequential" {
		return fmt.Errorf("run has unknown revision %q", r.Revision)
	}
	return nil
}

// RunStore defines the interface for archiving and querying runs.
//
// SaveRun assigns the run a fresh ID when none is set and returns the ID
// under which the run was stored. GetRun and GetProfiles return nil when
// the ID is unknown.
type RunStore interface {
	SaveRun(ctx context.Context, run Run, profiles [][]int) (string, error)
	GetRun(ctx context.Context, id string) (*Run, error)
	GetProfiles(ctx context.Context, id string) ([][]int, error)

	// ListRuns returns all runs, newest first.
	ListRuns(ctx context.Context) ([]Run, error)

	DeleteRun(ctx context.Context, id string) error
	Close() error
}

// checkProfiles verifies that a trajectory matches the run's declared shape.
func checkProfiles(run Run, profiles [][]int) error {
	for step, profile := range profiles {
		if len(profile) != run.N {
			return fmt.Errorf("profile at step %d has width %d, want %d", step, len(profile), run.N)
		}
		for i, a := range profile {
			if a < 0 || a >= run.NumActions {
				return fmt.Errorf("profile at step %d has action %d for agent %d, want [0,%d)", step, a, i, run.NumActions)
			}
		}
	}
	return nil
}
