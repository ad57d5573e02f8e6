package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the schema generation stamped into new archives via
// PRAGMA user_version. Bump it when the table layout changes.
const SchemaVersion = 1

const schemaV1 = `
-- Run metadata
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    label TEXT,
    created_at TEXT NOT NULL,
    n INTEGER NOT NULL,
    num_actions INTEGER NOT NULL,
    topology TEXT,
    revision TEXT NOT NULL,
    seed INTEGER NOT NULL,
    steps INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);

-- One row per recorded step; actions is a JSON array of length n
CREATE TABLE IF NOT EXISTS profiles (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    step INTEGER NOT NULL,
    actions TEXT NOT NULL,
    PRIMARY KEY (run_id, step)
);
`

// InitSchema brings the database up to the current schema. New files get
// the full schema; existing files are integrity-checked first and rejected
// when written by a newer release.
func InitSchema(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	switch {
	case version == 0:
		return createSchema(ctx, db)
	case version > SchemaVersion:
		return fmt.Errorf("archive schema version %d is newer than supported version %d", version, SchemaVersion)
	}

	if err := ValidateIntegrity(ctx, db); err != nil {
		return fmt.Errorf("database integrity check failed: %w", err)
	}

	// Migrations from older versions slot in here once a v2 exists.
	return nil
}

func createSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	// user_version is in the file header and participates in the transaction
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, SchemaVersion)); err != nil {
		return fmt.Errorf("failed to stamp schema version: %w", err)
	}
	return tx.Commit()
}

// ValidateIntegrity checks the file for corruption and dangling profile rows.
func ValidateIntegrity(ctx context.Context, db *sql.DB) error {
	var result string
	if err := db.QueryRowContext(ctx, `PRAGMA quick_check(1)`).Scan(&result); err != nil {
		return fmt.Errorf("failed to run quick_check: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("quick_check failed: %s", result)
	}

	rows, err := db.QueryContext(ctx, `PRAGMA foreign_key_check`)
	if err != nil {
		return fmt.Errorf("failed to run foreign_key_check: %w", err)
	}
	defer rows.Close()

	violations := 0
	for rows.Next() {
		violations++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if violations > 0 {
		return fmt.Errorf("foreign_key_check found %d dangling rows", violations)
	}
	return nil
}
