package benchmark

import (
	"time"

	"sortbench/internal/dataset"
	"sortbench/internal/sorting"
)

// Timer measures the wall-clock duration of a single sort invocation.
type Timer struct {
	now   func() time.Time
	guard dataset.Guard
}

// NewTimer returns a Timer that clones inputs under the given guard.
func NewTimer(guard dataset.Guard) *Timer {
	return &Timer{now: time.Now, guard: guard}
}

// Time sorts a private copy of d and returns the elapsed milliseconds.
// The caller's dataset is never modified.
func (t *Timer) Time(alg sorting.Algorithm, d dataset.Dataset) (float64, error) {
	work, err := t.guard.Clone(d)
	if err != nil {
		return 0, err
	}
	return t.TimeOwned(alg, work)
}

// TimeOwned sorts d in place and returns the elapsed milliseconds. Use it
// only when d was created for this measurement and nothing else reads it.
func (t *Timer) TimeOwned(alg sorting.Algorithm, d dataset.Dataset) (ms float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			ms, err = 0, dataset.AsAllocationError(r)
		}
	}()

	// time.Now carries a monotonic reading, so Sub is immune to wall-clock steps.
	start := t.now()
	alg.Sort(d)
	elapsed := t.now().Sub(start)

	ms = float64(elapsed) / float64(time.Millisecond)
	if ms < 0 {
		ms = 0
	}
	return ms, nil
}
