package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRunStore implements RunStore for testing and one-off sessions.
type MemoryRunStore struct {
	mu       sync.RWMutex
	runs     map[string]Run
	profiles map[string][][]int
}

// NewMemoryRunStore creates a new in-memory store.
func NewMemoryRunStore() *MemoryRunStore {
	return &MemoryRunStore{
		runs:     make(map[string]Run),
		profiles: make(map[string][][]int),
	}
}

// SaveRun stores a run and its trajectory. The trajectory is copied so the
// caller may keep mutating its buffers.
func (s *MemoryRunStore) SaveRun(ctx context.Context, run Run, profiles [][]int) (string, error) {
	if err := run.Validate(); err != nil {
		return "", err
	}
	if err := checkProfiles(run, profiles); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	run.Steps = len(profiles)

	s.runs[run.ID] = run
	s.profiles[run.ID] = copyProfiles(profiles)
	return run.ID, nil
}

// GetRun retrieves a run by ID. Returns nil if not found.
func (s *MemoryRunStore) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, exists := s.runs[id]
	if !exists {
		return nil, nil
	}
	return &run, nil
}

// GetProfiles retrieves a run's trajectory by ID. Returns nil if not found.
func (s *MemoryRunStore) GetProfiles(ctx context.Context, id string) ([][]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profiles, exists := s.profiles[id]
	if !exists {
		return nil, nil
	}
	return copyProfiles(profiles), nil
}

// ListRuns returns all runs, newest first.
func (s *MemoryRunStore) ListRuns(ctx context.Context) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.After(runs[j].CreatedAt)
		}
		return runs[i].ID < runs[j].ID
	})
	return runs, nil
}

// DeleteRun removes a run and its trajectory.
func (s *MemoryRunStore) DeleteRun(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[id]; !exists {
		return fmt.Errorf("run not found: %s", id)
	}
	delete(s.runs, id)
	delete(s.profiles, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryRunStore) Close() error { return nil }

func copyProfiles(profiles [][]int) [][]int {
	out := make([][]int, len(profiles))
	for i, profile := range profiles {
		out[i] = append([]int(nil), profile...)
	}
	return out
}
