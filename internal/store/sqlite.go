package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteRunStore implements RunStore using SQLite for persistence.
type SQLiteRunStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteRunStore opens (or creates) the run archive at dbPath and
// initializes its schema. The parent directory is created when missing.
func NewSQLiteRunStore(dbPath string) (*SQLiteRunStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteRunStore{db: db}, nil
}

// SaveRun stores a run and its trajectory in a single transaction.
func (s *SQLiteRunStore) SaveRun(ctx context.Context, run Run, profiles [][]int) (string, error) {
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

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, label, created_at, n, num_actions, topology, revision, seed, steps)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Label, run.CreatedAt.Format(time.RFC3339),
		run.N, run.NumActions, run.Topology, run.Revision, run.Seed, run.Steps,
	); err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	insert, err := tx.PrepareContext(ctx, `INSERT INTO profiles (run_id, step, actions) VALUES (?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare profile insert: %w", err)
	}
	defer insert.Close()

	for step, profile := range profiles {
		actions, err := json.Marshal(profile)
		if err != nil {
			return "", fmt.Errorf("failed to marshal profile at step %d: %w", step, err)
		}
		if _, err := insert.ExecContext(ctx, run.ID, step, string(actions)); err != nil {
			return "", fmt.Errorf("failed to insert profile at step %d: %w", step, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return run.ID, nil
}

// GetRun retrieves a run by ID. Returns nil if not found.
func (s *SQLiteRunStore) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, label, created_at, n, num_actions, topology, revision, seed, steps
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// GetProfiles retrieves a run's trajectory by ID. Returns nil if not found.
func (s *SQLiteRunStore) GetProfiles(ctx context.Context, id string) ([][]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check run: %w", err)
	}
	if exists == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT actions FROM profiles WHERE run_id = ? ORDER BY step`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	profiles := [][]int{}
	for rows.Next() {
		var actions string
		if err := rows.Scan(&actions); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		var profile []int
		if err := json.Unmarshal([]byte(actions), &profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}
	return profiles, nil
}

// ListRuns returns all runs, newest first.
func (s *SQLiteRunStore) ListRuns(ctx context.Context) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, created_at, n, num_actions, topology, revision, seed, steps
		FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}
	return runs, nil
}

// DeleteRun removes a run; its profiles go with it via ON DELETE CASCADE.
func (s *SQLiteRunStore) DeleteRun(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteRunStore) Close() error {
	return s.db.Close()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var label, topology sql.NullString
	var createdAt string
	if err := row.Scan(&run.ID, &label, &createdAt, &run.N, &run.NumActions,
		&topology, &run.Revision, &run.Seed, &run.Steps); err != nil {
		return nil, err
	}
	run.Label = label.String
	run.Topology = topology.String

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	run.CreatedAt = ts
	return &run, nil
}
