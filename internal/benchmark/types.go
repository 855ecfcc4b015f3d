package benchmark

import (
	"errors"
	"fmt"
	"time"

	"sortbench/internal/dataset"
	"sortbench/internal/sorting"
)

// ErrInvalidConfig is returned for configurations that cannot be run.
var ErrInvalidConfig = errors.New("invalid benchmark configuration")

// Config is one (size, shape) cell of a sweep.
type Config struct {
	Size   int           `json:"size"`
	Shape  dataset.Shape `json:"shape"`
	Trials int           `json:"trials"`
}

// Validate checks size > 0, trials > 0 and a known shape.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidConfig, c.Size)
	}
	if c.Trials <= 0 {
		return fmt.Errorf("%w: trials must be positive, got %d", ErrInvalidConfig, c.Trials)
	}
	if !c.Shape.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, dataset.ErrUnknownShape)
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("size=%d shape=%s trials=%d", c.Size, c.Shape, c.Trials)
}

// Status marks whether every trial of a configuration completed.
type Status string

const (
	StatusSuccess Status = "Success"
	StatusFailure Status = "Failure"
)

// Record is the aggregated result of one configuration. Means are in
// milliseconds over the trials that completed.
type Record struct {
	Size      int           `json:"size"`
	Shape     dataset.Shape `json:"shape"`
	BubbleMs  float64       `json:"bubble_ms"`
	MergeMs   float64       `json:"merge_ms"`
	QuickMs   float64       `json:"quick_ms"`
	Status    Status        `json:"status"`
	Completed int           `json:"completed_trials"`
	Error     string        `json:"error,omitempty"`

	// Err keeps the failure cause for errors.Is checks; it is not persisted.
	Err error `json:"-"`
}

// Mean returns the mean duration recorded for alg.
func (r Record) Mean(alg sorting.Algorithm) float64 {
	switch alg {
	case sorting.Bubble:
		return r.BubbleMs
	case sorting.Merge:
		return r.MergeMs
	case sorting.Quick:
		return r.QuickMs
	}
	return 0
}

func (r *Record) setMean(alg sorting.Algorithm, ms float64) {
	switch alg {
	case sorting.Bubble:
		r.BubbleMs = ms
	case sorting.Merge:
		r.MergeMs = ms
	case sorting.Quick:
		r.QuickMs = ms
	}
}

// Failed reports whether the configuration stopped early.
func (r Record) Failed() bool {
	return r.Status == StatusFailure
}

// Run represents the records from a single sweep execution.
type Run struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Commit    string    `json:"commit,omitempty"`
	GoVersion string    `json:"go_version,omitempty"`
	Plan      string    `json:"plan,omitempty"`
	Trials    int       `json:"trials"`
	Records   []Record  `json:"records"`
}

// Summary describes how a sweep ended.
type Summary struct {
	Configurations int
	Succeeded      int
	Failed         int
	Halted         bool
	Elapsed        time.Duration
}
