package dataset

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Sorted(t *testing.T) {
	g := NewGenerator(WithSeed(1))
	for _, size := range []int{0, 1, 2, 10, 257} {
		d, err := g.Generate(size, Sorted)
		require.NoError(t, err)
		require.Len(t, d, size)
		for i, v := range d {
			assert.Equal(t, int64(i), v)
		}
	}
}

func TestGenerate_ReverseSorted(t *testing.T) {
	g := NewGenerator(WithSeed(1))

	d, err := g.Generate(10, ReverseSorted)
	require.NoError(t, err)
	assert.Equal(t, Dataset{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, d)

	d, err = g.Generate(1000, ReverseSorted)
	require.NoError(t, err)
	for i, v := range d {
		assert.Equal(t, int64(1000-i), v)
	}
}

func TestGenerate_RandomWithinRange(t *testing.T) {
	g := NewGenerator(WithSeed(42))
	d, err := g.Generate(5000, Random)
	require.NoError(t, err)
	require.Len(t, d, 5000)

	distinct := make(map[int64]struct{})
	for _, v := range d {
		assert.GreaterOrEqual(t, v, RandomMin)
		assert.LessOrEqual(t, v, RandomMax)
		distinct[v] = struct{}{}
	}
	// A range of a million keeps collisions rare.
	assert.Greater(t, len(distinct), 4900)
}

func TestGenerate_SeedIsReproducible(t *testing.T) {
	a, err := NewGenerator(WithSeed(7)).Generate(100, Random)
	require.NoError(t, err)
	b, err := NewGenerator(WithSeed(7)).Generate(100, Random)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerate_PartiallySortedIsPermutation(t *testing.T) {
	g := NewGenerator(WithSeed(3))
	d, err := g.Generate(1000, PartiallySorted)
	require.NoError(t, err)

	sorted := append(Dataset(nil), d...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i, v := range sorted {
		require.Equal(t, int64(i), v)
	}

	displaced := 0
	for i, v := range d {
		if v != int64(i) {
			displaced++
		}
	}
	// At most two positions move per swap.
	assert.LessOrEqual(t, displaced, 2*(1000/10))
}

func TestGenerate_PartiallySortedSmallHasNoSwaps(t *testing.T) {
	d, err := NewGenerator().Generate(9, PartiallySorted)
	require.NoError(t, err)
	assert.Equal(t, Dataset{0, 1, 2, 3, 4, 5, 6, 7, 8}, d)
}

func TestGenerate_UnknownShape(t *testing.T) {
	_, err := NewGenerator().Generate(10, Shape(99))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownShape))
}

func TestGenerate_AllocationFailure(t *testing.T) {
	g := NewGenerator(WithMemoryLimit(80))

	d, err := g.Generate(10, Sorted)
	require.NoError(t, err)
	assert.Len(t, d, 10)

	_, err = g.Generate(11, Sorted)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAllocation)
}

func TestGuard_NegativeLength(t *testing.T) {
	_, err := NewGuard(0).Alloc(-1)
	assert.ErrorIs(t, err, ErrAllocation)
}

func TestGuard_CloneIsIndependent(t *testing.T) {
	src := Dataset{3, 1, 2}
	dst, err := NewGuard(DefaultMemoryLimit).Clone(src)
	require.NoError(t, err)
	dst[0] = 99
	assert.Equal(t, Dataset{3, 1, 2}, src)
}

func TestAsAllocationError(t *testing.T) {
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = AsAllocationError(r)
			}
		}()
		n := -1
		_ = make([]int64, n)
	}()
	assert.ErrorIs(t, err, ErrAllocation)

	assert.Panics(t, func() { AsAllocationError("boom") })
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		name string
		want Shape
	}{
		{"random", Random},
		{"sorted", Sorted},
		{"partially_sorted", PartiallySorted},
		{"reverse_sorted", ReverseSorted},
		{" Reverse_Sorted ", ReverseSorted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseShape(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseShape("nearly_sorted")
	assert.ErrorIs(t, err, ErrUnknownShape)

	for _, s := range AllShapes() {
		back, err := ParseShape(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, back)
	}
}

func TestParseShapes(t *testing.T) {
	shapes, err := ParseShapes([]string{"sorted", "random"})
	require.NoError(t, err)
	assert.Equal(t, []Shape{Sorted, Random}, shapes)

	_, err = ParseShapes([]string{"sorted", "bogus"})
	assert.ErrorIs(t, err, ErrUnknownShape)
}
