package benchmark

import (
	"testing"

	"sortbench/internal/dataset"
	"sortbench/internal/sorting"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	prev := Run{
		Records: []Record{
			{Size: 100, Shape: dataset.Random, BubbleMs: 10, MergeMs: 2, QuickMs: 1, Status: StatusSuccess},
			{Size: 200, Shape: dataset.Random, BubbleMs: 40, MergeMs: 4, QuickMs: 2, Status: StatusSuccess},
		},
	}
	curr := Run{
		Records: []Record{
			{Size: 100, Shape: dataset.Random, BubbleMs: 11, MergeMs: 1.6, QuickMs: 1, Status: StatusSuccess},
			{Size: 100, Shape: dataset.Sorted, BubbleMs: 5, Status: StatusSuccess},  // new
			{Size: 200, Shape: dataset.Random, BubbleMs: 41, Status: StatusFailure}, // failed now
		},
	}

	comps := Compare(prev, curr)

	require.Len(t, comps, 3) // one configuration times three algorithms

	assert.Equal(t, sorting.Bubble, comps[0].Algorithm)
	assert.InDelta(t, 10.0, comps[0].DiffPct, 0.01)
	assert.True(t, comps[0].Regressed(5))

	assert.Equal(t, sorting.Merge, comps[1].Algorithm)
	assert.InDelta(t, -20.0, comps[1].DiffPct, 0.01)
	assert.False(t, comps[1].Regressed(5))

	assert.Equal(t, sorting.Quick, comps[2].Algorithm)
	assert.InDelta(t, 0.0, comps[2].DiffPct, 0.01)
	assert.Contains(t, comps[0].String(), "100/random/bubble")
}

func TestCompare_ZeroBaseline(t *testing.T) {
	prev := Run{Records: []Record{{Size: 1, Shape: dataset.Sorted, Status: StatusSuccess}}}
	curr := Run{Records: []Record{{Size: 1, Shape: dataset.Sorted, BubbleMs: 0.001, Status: StatusSuccess}}}

	comps := Compare(prev, curr)
	require.Len(t, comps, 3)
	assert.Equal(t, 0.0, comps[0].DiffPct)
}
