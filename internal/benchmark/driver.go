package benchmark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"sortbench/internal/dataset"
	"sortbench/internal/sorting"
)

// ErrSweepHalted is returned by Sweep when a failed configuration stops the
// sweep under PolicyHalt.
var ErrSweepHalted = errors.New("sweep halted")

// Policy decides what a sweep does after a failed configuration.
type Policy string

const (
	// PolicyHalt writes the failed record and stops the sweep.
	PolicyHalt Policy = "halt"
	// PolicySkip writes the failed record and moves on to the next configuration.
	PolicySkip Policy = "skip"
)

// ParsePolicy validates a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyHalt, PolicySkip:
		return p, nil
	}
	return "", fmt.Errorf("unknown failure policy %q (want %q or %q)", s, PolicyHalt, PolicySkip)
}

// Sink receives one record per finished configuration.
type Sink interface {
	Write(rec Record) error
}

// Source produces a fresh dataset per measurement. *dataset.Generator
// satisfies it.
type Source interface {
	Generate(size int, shape dataset.Shape) (dataset.Dataset, error)
}

// Observer is notified as the driver makes progress.
type Observer interface {
	ConfigStarted(cfg Config)
	TrialTimed(alg sorting.Algorithm, shape dataset.Shape, ms float64)
	ConfigFinished(rec Record)
	// ConfigAborted is called instead of ConfigFinished when the context
	// ends a configuration before it produced a record.
	ConfigAborted(cfg Config, err error)
}

type nopObserver struct{}

func (nopObserver) ConfigStarted(Config)                                {}
func (nopObserver) TrialTimed(sorting.Algorithm, dataset.Shape, float64) {}
func (nopObserver) ConfigFinished(Record)                               {}
func (nopObserver) ConfigAborted(Config, error)                         {}

// Driver runs configurations through the generator and timer.
type Driver struct {
	gen        Source
	timer      *Timer
	algorithms []sorting.Algorithm
	policy     Policy
	observer   Observer
	logger     *slog.Logger
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithPolicy sets the failure policy. The default is PolicyHalt.
func WithPolicy(p Policy) DriverOption {
	return func(d *Driver) { d.policy = p }
}

// WithObserver attaches a progress observer such as the Prometheus collectors.
func WithObserver(o Observer) DriverOption {
	return func(d *Driver) { d.observer = o }
}

// WithLogger overrides slog.Default.
func WithLogger(l *slog.Logger) DriverOption {
	return func(d *Driver) { d.logger = l }
}

// WithTimer replaces the timer, mainly for tests with a fake clock.
func WithTimer(t *Timer) DriverOption {
	return func(d *Driver) { d.timer = t }
}

// NewDriver builds a driver over gen timing every algorithm.
func NewDriver(gen Source, opts ...DriverOption) *Driver {
	d := &Driver{
		gen:        gen,
		timer:      NewTimer(dataset.NewGuard(dataset.DefaultMemoryLimit)),
		algorithms: sorting.All(),
		policy:     PolicyHalt,
		observer:   nopObserver{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RunConfig measures every algorithm on cfg.Trials fresh datasets each and
// returns the per-algorithm means. Allocation and generator failures end the
// configuration early and are reported through the record's Failure status.
// The returned error is non-nil only for an invalid configuration or a
// cancelled context.
func (d *Driver) RunConfig(ctx context.Context, cfg Config) (Record, error) {
	if err := cfg.Validate(); err != nil {
		return Record{}, err
	}

	rec := Record{Size: cfg.Size, Shape: cfg.Shape, Status: StatusSuccess}
	totals := make(map[sorting.Algorithm]float64, len(d.algorithms))

	d.observer.ConfigStarted(cfg)
	d.logger.Info("Processing configuration", "size", cfg.Size, "type", cfg.Shape.String())

	for trial := 0; trial < cfg.Trials; trial++ {
		if err := ctx.Err(); err != nil {
			d.observer.ConfigAborted(cfg, err)
			return Record{}, err
		}
		d.logger.Debug("Starting run", "size", cfg.Size, "type", cfg.Shape.String(), "run", trial+1)

		sample, err := d.runTrial(cfg)
		if err != nil {
			rec.Status = StatusFailure
			rec.Err = err
			rec.Error = err.Error()
			d.logger.Error("Configuration failed", "size", cfg.Size, "type", cfg.Shape.String(),
				"run", trial+1, "error", err)
			break
		}
		for alg, ms := range sample {
			totals[alg] += ms
		}
		rec.Completed++
	}

	if rec.Completed > 0 {
		for _, alg := range d.algorithms {
			rec.setMean(alg, totals[alg]/float64(rec.Completed))
		}
	}

	d.observer.ConfigFinished(rec)
	return rec, nil
}

// runTrial times each algorithm once on its own freshly generated dataset.
// A trial either completes for every algorithm or contributes nothing.
func (d *Driver) runTrial(cfg Config) (map[sorting.Algorithm]float64, error) {
	sample := make(map[sorting.Algorithm]float64, len(d.algorithms))
	for _, alg := range d.algorithms {
		data, err := d.gen.Generate(cfg.Size, cfg.Shape)
		if err != nil {
			return nil, err
		}
		ms, err := d.timer.TimeOwned(alg, data)
		if err != nil {
			return nil, fmt.Errorf("%s sort: %w", alg, err)
		}
		d.observer.TrialTimed(alg, cfg.Shape, ms)
		d.logger.Debug("Sort timed", "algorithm", alg.String(), "size", cfg.Size, "ms", ms)
		sample[alg] = ms
	}
	return sample, nil
}

// Sweep runs configs in order and writes every record to sink. Under
// PolicyHalt the first failed configuration is written and the sweep returns
// ErrSweepHalted; under PolicySkip it carries on.
func (d *Driver) Sweep(ctx context.Context, configs []Config, sink Sink) (Summary, error) {
	var sum Summary
	start := time.Now()

	for _, cfg := range configs {
		rec, err := d.RunConfig(ctx, cfg)
		if err != nil {
			sum.Elapsed = time.Since(start)
			return sum, fmt.Errorf("configuration %s: %w", cfg, err)
		}
		sum.Configurations++

		if err := sink.Write(rec); err != nil {
			sum.Elapsed = time.Since(start)
			return sum, fmt.Errorf("write record for %s: %w", cfg, err)
		}

		if !rec.Failed() {
			sum.Succeeded++
			continue
		}
		sum.Failed++
		if d.policy == PolicyHalt {
			sum.Halted = true
			sum.Elapsed = time.Since(start)
			return sum, fmt.Errorf("%w at size %d (%s): %w", ErrSweepHalted, cfg.Size, cfg.Shape, rec.Err)
		}
		d.logger.Warn("Skipping failed configuration", "size", cfg.Size, "type", cfg.Shape.String())
	}

	sum.Elapsed = time.Since(start)
	return sum, nil
}
