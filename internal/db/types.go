package db

import (
	"errors"
	"fmt"
	"time"

	"sortbench/internal/benchmark"
	"sortbench/internal/dataset"
)

// ErrRunNotFound is returned when a run ID does not exist in the store.
var ErrRunNotFound = errors.New("run not found")

// RunStatus is the lifecycle state of a stored run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunHalted    RunStatus = "halted"
	RunCancelled RunStatus = "cancelled"
	RunFailed    RunStatus = "failed"
)

// RunInfo describes one sweep execution.
type RunInfo struct {
	ID         string     `json:"id"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Trials     int        `json:"trials"`
	Policy     string     `json:"policy"`
	Plan       string     `json:"plan"`
	Status     RunStatus  `json:"status"`
}

// Store interface defines the methods for persistent storage of sweep results
type Store interface {
	Close() error
	SaveRun(run RunInfo) error
	SaveRecord(runID string, rec benchmark.Record) error
	FinishRun(runID string, status RunStatus) error
	ListRuns(limit int) ([]RunInfo, error)
	Records(runID string) ([]benchmark.Record, error)
}

// RecordSink adapts a Store to benchmark.Sink for a single run.
type RecordSink struct {
	Store Store
	RunID string
}

func (s RecordSink) Write(rec benchmark.Record) error {
	if err := s.Store.SaveRecord(s.RunID, rec); err != nil {
		return fmt.Errorf("failed to store record: %w", err)
	}
	return nil
}

// NopStore discards everything. It backs the "none" store type.
type NopStore struct{}

func (NopStore) Close() error                               { return nil }
func (NopStore) SaveRun(RunInfo) error                      { return nil }
func (NopStore) SaveRecord(string, benchmark.Record) error  { return nil }
func (NopStore) FinishRun(string, RunStatus) error          { return nil }
func (NopStore) ListRuns(int) ([]RunInfo, error)            { return nil, nil }
func (NopStore) Records(string) ([]benchmark.Record, error) { return nil, nil }

// rowScanner is satisfied by *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (benchmark.Record, error) {
	var rec benchmark.Record
	var shape, status string
	if err := row.Scan(&rec.Size, &shape, &rec.BubbleMs, &rec.MergeMs, &rec.QuickMs,
		&status, &rec.Completed, &rec.Error); err != nil {
		return benchmark.Record{}, err
	}
	var err error
	if rec.Shape, err = dataset.ParseShape(shape); err != nil {
		return benchmark.Record{}, err
	}
	rec.Status = benchmark.Status(status)
	return rec, nil
}
