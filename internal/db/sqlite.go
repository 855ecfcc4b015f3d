package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sortbench/internal/benchmark"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store and applies migrations.
// The parent directory of path is created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		finished_at DATETIME,
		trials INTEGER NOT NULL,
		policy TEXT NOT NULL,
		plan TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		size INTEGER NOT NULL,
		shape TEXT NOT NULL,
		bubble_ms REAL NOT NULL,
		merge_ms REAL NOT NULL,
		quick_ms REAL NOT NULL,
		status TEXT NOT NULL,
		completed INTEGER NOT NULL,
		error TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_records_run ON records(run_id, id);
	`
	_, err := s.db.Exec(query)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun inserts a new run.
func (s *SQLiteStore) SaveRun(run RunInfo) error {
	if run.Status == "" {
		run.Status = RunRunning
	}
	query := `INSERT INTO runs (id, started_at, trials, policy, plan, status) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.Exec(query, run.ID, run.StartedAt.UTC(), run.Trials, run.Policy, run.Plan, string(run.Status))
	return err
}

// SaveRecord appends a configuration result to a run.
func (s *SQLiteStore) SaveRecord(runID string, rec benchmark.Record) error {
	query := `INSERT INTO records (run_id, size, shape, bubble_ms, merge_ms, quick_ms, status, completed, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.Exec(query, runID, rec.Size, rec.Shape.String(), rec.BubbleMs, rec.MergeMs, rec.QuickMs,
		string(rec.Status), rec.Completed, rec.Error)
	return err
}

// FinishRun stamps the end time and final status of a run.
func (s *SQLiteStore) FinishRun(runID string, status RunStatus) error {
	query := `UPDATE runs SET finished_at = ?, status = ? WHERE id = ?`
	res, err := s.db.Exec(query, time.Now().UTC(), string(status), runID)
	if err != nil {
		return err
	}
	return checkAffected(res, runID)
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(limit int) ([]RunInfo, error) {
	query := `SELECT id, started_at, finished_at, trials, policy, plan, status FROM runs ORDER BY started_at DESC LIMIT ?`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []RunInfo
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, run)
	}
	return results, rows.Err()
}

// Records returns the records of a run in insertion order.
func (s *SQLiteStore) Records(runID string) ([]benchmark.Record, error) {
	query := `SELECT size, shape, bubble_ms, merge_ms, quick_ms, status, completed, error
		FROM records WHERE run_id = ? ORDER BY id ASC`
	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []benchmark.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, rec)
	}
	return results, rows.Err()
}

func scanRun(row rowScanner) (RunInfo, error) {
	var run RunInfo
	var finished sql.NullTime
	var status string
	if err := row.Scan(&run.ID, &run.StartedAt, &finished, &run.Trials, &run.Policy, &run.Plan, &status); err != nil {
		return RunInfo{}, err
	}
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	run.Status = RunStatus(status)
	return run, nil
}

func checkAffected(res sql.Result, runID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}
