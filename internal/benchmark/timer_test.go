package benchmark

import (
	"testing"
	"time"

	"sortbench/internal/dataset"
	"sortbench/internal/sorting"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steppingClock advances by step on every reading.
func steppingClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestTimer_DoesNotMutateInput(t *testing.T) {
	timer := NewTimer(dataset.NewGuard(dataset.DefaultMemoryLimit))
	in := dataset.Dataset{5, 4, 3, 2, 1}

	for _, alg := range sorting.All() {
		ms, err := timer.Time(alg, in)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, ms, 0.0)
	}
	assert.Equal(t, dataset.Dataset{5, 4, 3, 2, 1}, in)
}

func TestTimer_TimeOwnedSortsInPlace(t *testing.T) {
	timer := NewTimer(dataset.NewGuard(0))
	d := dataset.Dataset{3, 1, 2}
	_, err := timer.TimeOwned(sorting.Quick, d)
	require.NoError(t, err)
	assert.Equal(t, dataset.Dataset{1, 2, 3}, d)
}

func TestTimer_ConvertsToMilliseconds(t *testing.T) {
	timer := &Timer{now: steppingClock(1500 * time.Microsecond), guard: dataset.NewGuard(0)}
	ms, err := timer.Time(sorting.Bubble, dataset.Dataset{2, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, ms, 1e-9)
}

func TestTimer_NegativeElapsedClampsToZero(t *testing.T) {
	timer := &Timer{now: steppingClock(-time.Millisecond), guard: dataset.NewGuard(0)}
	ms, err := timer.Time(sorting.Merge, dataset.Dataset{2, 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, ms)
}

func TestTimer_CloneAllocationFailure(t *testing.T) {
	timer := NewTimer(dataset.NewGuard(8))
	_, err := timer.Time(sorting.Merge, dataset.Dataset{2, 1})
	assert.ErrorIs(t, err, dataset.ErrAllocation)
}

func TestTimer_TrivialInputsAverageNearZero(t *testing.T) {
	timer := NewTimer(dataset.NewGuard(dataset.DefaultMemoryLimit))
	const n = 50
	var total float64
	for i := 0; i < n; i++ {
		ms, err := timer.Time(sorting.Quick, dataset.Dataset{1})
		require.NoError(t, err)
		require.GreaterOrEqual(t, ms, 0.0)
		total += ms
	}
	assert.Less(t, total/n, 5.0)
}
