package benchmark

import (
	"math"
	"testing"

	"sortbench/internal/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_DefaultSweep(t *testing.T) {
	p := DefaultPlan()
	sizes, err := p.SizeList()
	require.NoError(t, err)

	require.Len(t, sizes, (DefaultMax-DefaultStart)/DefaultStep+1)
	assert.Equal(t, 100, sizes[0])
	assert.Equal(t, 110, sizes[1])
	assert.Equal(t, 5000, sizes[len(sizes)-1])

	configs, err := p.Configs()
	require.NoError(t, err)
	assert.Len(t, configs, len(sizes)*4)
	assert.Equal(t, Config{Size: 100, Shape: dataset.Random, Trials: 5}, configs[0])
	assert.Equal(t, Config{Size: 100, Shape: dataset.ReverseSorted, Trials: 5}, configs[3])
	assert.Equal(t, Config{Size: 110, Shape: dataset.Random, Trials: 5}, configs[4])
}

func TestPlan_BoundIsInclusiveAndTerminates(t *testing.T) {
	p := Plan{Start: 10, Step: 7, Max: 31, Shapes: []dataset.Shape{dataset.Sorted}, Trials: 1}
	sizes, err := p.SizeList()
	require.NoError(t, err)
	assert.Equal(t, []int{10, 17, 24, 31}, sizes)
}

func TestPlan_ExplicitSizes(t *testing.T) {
	p := Plan{Sizes: []int{100, 500, 1000}, Shapes: []dataset.Shape{dataset.Sorted, dataset.Random}, Trials: 5}
	configs, err := p.Configs()
	require.NoError(t, err)
	require.Len(t, configs, 6)
	assert.Equal(t, 1000, configs[5].Size)
	assert.Equal(t, dataset.Random, configs[5].Shape)

	// The sweep bound only ends an open-ended sweep; listed sizes all run.
	p.Max = 500
	sizes, err := p.SizeList()
	require.NoError(t, err)
	assert.Equal(t, []int{100, 500, 1000}, sizes)
}

func TestPlan_BoundNearMaxIntTerminates(t *testing.T) {
	p := Plan{Start: math.MaxInt - 25, Step: 10, Max: math.MaxInt, Shapes: []dataset.Shape{dataset.Sorted}, Trials: 1}
	sizes, err := p.SizeList()
	require.NoError(t, err)
	assert.Equal(t, []int{math.MaxInt - 25, math.MaxInt - 15, math.MaxInt - 5}, sizes)

	p = Plan{Start: 5, Step: 5, Max: 5, Shapes: []dataset.Shape{dataset.Sorted}, Trials: 1}
	sizes, err = p.SizeList()
	require.NoError(t, err)
	assert.Equal(t, []int{5}, sizes)
}

func TestPlan_Invalid(t *testing.T) {
	shapes := []dataset.Shape{dataset.Random}
	tests := []struct {
		name string
		plan Plan
	}{
		{"zero trials", Plan{Sizes: []int{10}, Shapes: shapes}},
		{"no shapes", Plan{Sizes: []int{10}, Trials: 1}},
		{"bad shape", Plan{Sizes: []int{10}, Shapes: []dataset.Shape{9}, Trials: 1}},
		{"negative size", Plan{Sizes: []int{10, -1}, Shapes: shapes, Trials: 1}},
		{"zero start", Plan{Step: 1, Max: 10, Shapes: shapes, Trials: 1}},
		{"zero step", Plan{Start: 1, Max: 10, Shapes: shapes, Trials: 1}},
		{"max below start", Plan{Start: 20, Step: 1, Max: 10, Shapes: shapes, Trials: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.plan.Configs()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
