package dataset

import (
	"fmt"
	"math/rand"
	"time"
)

// Dataset is an ordered, mutable sequence of signed integers.
type Dataset []int64

// Bounds of the uniform range used for Random datasets (inclusive).
const (
	RandomMin int64 = 1
	RandomMax int64 = 1_000_000
)

// Generator produces datasets of a requested size and shape.
type Generator struct {
	rng   *rand.Rand
	guard Guard
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes Random and PartiallySorted output reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithMemoryLimit sets the byte ceiling for a single dataset.
func WithMemoryLimit(limit int64) Option {
	return func(g *Generator) {
		g.guard = NewGuard(limit)
	}
}

// NewGenerator returns a Generator seeded from the clock unless WithSeed is given.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		guard: NewGuard(DefaultMemoryLimit),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Guard exposes the allocation guard so callers can clone under the same limit.
func (g *Generator) Guard() Guard {
	return g.guard
}

// Generate builds a dataset of the given size and shape.
//
//	Sorted:          0, 1, ..., size-1
//	ReverseSorted:   size, size-1, ..., 1
//	Random:          uniform over [RandomMin, RandomMax]
//	PartiallySorted: Sorted followed by size/10 random index swaps
func (g *Generator) Generate(size int, shape Shape) (Dataset, error) {
	if !shape.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownShape, shape)
	}
	data, err := g.guard.Alloc(size)
	if err != nil {
		return nil, fmt.Errorf("generate %s dataset of size %d: %w", shape, size, err)
	}

	switch shape {
	case Random:
		span := RandomMax - RandomMin + 1
		for i := range data {
			data[i] = RandomMin + g.rng.Int63n(span)
		}
	case Sorted:
		fillAscending(data)
	case PartiallySorted:
		fillAscending(data)
		for i := 0; i < size/10; i++ {
			a, b := g.rng.Intn(size), g.rng.Intn(size)
			data[a], data[b] = data[b], data[a]
		}
	case ReverseSorted:
		for i := range data {
			data[i] = int64(size - i)
		}
	}
	return data, nil
}

func fillAscending(data Dataset) {
	for i := range data {
		data[i] = int64(i)
	}
}
