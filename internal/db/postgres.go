package db

import (
	"database/sql"
	"fmt"
	"log/slog"

	"sortbench/internal/benchmark"

	_ "github.com/lib/pq"
)

// PostgresStore implements Store using PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store and applies migrations
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TIMESTAMPTZ NOT NULL,
			finished_at TIMESTAMPTZ,
			trials INTEGER NOT NULL,
			policy TEXT NOT NULL,
			plan TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS records (
			id SERIAL PRIMARY KEY,
			run_id TEXT NOT NULL REFERENCES runs(id),
			size INTEGER NOT NULL,
			shape TEXT NOT NULL,
			bubble_ms DOUBLE PRECISION NOT NULL,
			merge_ms DOUBLE PRECISION NOT NULL,
			quick_ms DOUBLE PRECISION NOT NULL,
			status TEXT NOT NULL,
			completed INTEGER NOT NULL,
			error TEXT NOT NULL DEFAULT ''
		);`,
	}
	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}

	// Indexes only speed up history queries, so a failure here is not fatal.
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_records_run ON records(run_id, id)`); err != nil {
		slog.Debug("failed to create records index", "error", err)
	}
	return nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// SaveRun inserts a new run.
func (s *PostgresStore) SaveRun(run RunInfo) error {
	if run.Status == "" {
		run.Status = RunRunning
	}
	query := `INSERT INTO runs (id, started_at, trials, policy, plan, status) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.db.Exec(query, run.ID, run.StartedAt.UTC(), run.Trials, run.Policy, run.Plan, string(run.Status))
	return err
}

// SaveRecord appends a configuration result to a run.
func (s *PostgresStore) SaveRecord(runID string, rec benchmark.Record) error {
	query := `INSERT INTO records (run_id, size, shape, bubble_ms, merge_ms, quick_ms, status, completed, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := s.db.Exec(query, runID, rec.Size, rec.Shape.String(), rec.BubbleMs, rec.MergeMs, rec.QuickMs,
		string(rec.Status), rec.Completed, rec.Error)
	return err
}

// FinishRun stamps the end time and final status of a run.
func (s *PostgresStore) FinishRun(runID string, status RunStatus) error {
	query := `UPDATE runs SET finished_at = NOW(), status = $1 WHERE id = $2`
	res, err := s.db.Exec(query, string(status), runID)
	if err != nil {
		return err
	}
	return checkAffected(res, runID)
}

// ListRuns returns the most recent runs, newest first.
func (s *PostgresStore) ListRuns(limit int) ([]RunInfo, error) {
	query := `SELECT id, started_at, finished_at, trials, policy, plan, status FROM runs ORDER BY started_at DESC LIMIT $1`
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
func (s *PostgresStore) Records(runID string) ([]benchmark.Record, error) {
	query := `SELECT size, shape, bubble_ms, merge_ms, quick_ms, status, completed, error
		FROM records WHERE run_id = $1 ORDER BY id ASC`
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
