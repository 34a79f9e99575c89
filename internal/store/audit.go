package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type RefreshRecord struct {
	ID         string `json:"id"`
	RunAt      string `json:"run_at"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
	Active     int    `json:"active"`
	Completed  int    `json:"completed"`
	Interviews int    `json:"interviews"`
	Flags      int    `json:"flags"`
}

type ActionRecord struct {
	ID       string `json:"id"`
	At       string `json:"at"`
	Kind     string `json:"kind"` // delete | resolve | upload | initialize
	EntityID string `json:"entity_id"`
	Outcome  string `json:"outcome"` // succeeded | failed | partial
	Error    string `json:"error,omitempty"`
}

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS refresh_log (
  id TEXT PRIMARY KEY,
  run_at TEXT NOT NULL,
  ok INTEGER NOT NULL,
  error TEXT NOT NULL DEFAULT '',
  active INTEGER NOT NULL DEFAULT 0,
  completed INTEGER NOT NULL DEFAULT 0,
  interviews INTEGER NOT NULL DEFAULT 0,
  flags INTEGER NOT NULL DEFAULT 0
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS action_log (
  id TEXT PRIMARY KEY,
  at TEXT NOT NULL,
  kind TEXT NOT NULL,
  entity_id TEXT NOT NULL,
  outcome TEXT NOT NULL,
  error TEXT NOT NULL DEFAULT ''
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_refresh_log_run_at ON refresh_log(run_at DESC);
`); err != nil {
		return err
	}
	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_action_log_at ON action_log(at DESC);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

func RecordRefresh(ctx context.Context, db *sql.DB, rec RefreshRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.RunAt == "" {
		rec.RunAt = time.Now().UTC().Format(time.RFC3339)
	}
	ok := 0
	if rec.OK {
		ok = 1
	}
	_, err := db.ExecContext(ctx, `
INSERT INTO refresh_log (id, run_at, ok, error, active, completed, interviews, flags)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		rec.ID, rec.RunAt, ok, rec.Error, rec.Active, rec.Completed, rec.Interviews, rec.Flags)
	if err != nil {
		return fmt.Errorf("record refresh: %w", err)
	}
	return nil
}

func RecordAction(ctx context.Context, db *sql.DB, rec ActionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.At == "" {
		rec.At = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := db.ExecContext(ctx, `
INSERT INTO action_log (id, at, kind, entity_id, outcome, error)
VALUES (?, ?, ?, ?, ?, ?);`,
		rec.ID, rec.At, rec.Kind, rec.EntityID, rec.Outcome, rec.Error)
	if err != nil {
		return fmt.Errorf("record action: %w", err)
	}
	return nil
}

func ListRefreshes(ctx context.Context, db *sql.DB, limit int) ([]RefreshRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, run_at, ok, error, active, completed, interviews, flags
FROM refresh_log
ORDER BY run_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RefreshRecord
	for rows.Next() {
		var r RefreshRecord
		var ok int
		if err := rows.Scan(&r.ID, &r.RunAt, &ok, &r.Error, &r.Active, &r.Completed, &r.Interviews, &r.Flags); err != nil {
			return nil, err
		}
		r.OK = ok != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func ListActions(ctx context.Context, db *sql.DB, limit int) ([]ActionRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, at, kind, entity_id, outcome, error
FROM action_log
ORDER BY at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ActionRecord
	for rows.Next() {
		var r ActionRecord
		if err := rows.Scan(&r.ID, &r.At, &r.Kind, &r.EntityID, &r.Outcome, &r.Error); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func CleanupOldRecords(db *sql.DB) (deleted int64, err error) {
	// Timestamps are stored RFC3339; the cutoff must use the same format or
	// the comparison degrades to date granularity.
	res, err := db.Exec(`
DELETE FROM refresh_log
WHERE run_at < strftime('%Y-%m-%dT%H:%M:%SZ', 'now', '-7 days');
`)
	if err != nil {
		return 0, fmt.Errorf("cleanup refresh log: %w", err)
	}
	n, _ := res.RowsAffected()

	res2, err := db.Exec(`
DELETE FROM action_log
WHERE at < strftime('%Y-%m-%dT%H:%M:%SZ', 'now', '-30 days');
`)
	if err != nil {
		return n, fmt.Errorf("cleanup action log: %w", err)
	}
	n2, _ := res2.RowsAffected()
	return n + n2, nil
}
