package dataset

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrAllocation is returned when a dataset or buffer cannot be materialised.
var ErrAllocation = errors.New("allocation failed")

// DefaultMemoryLimit caps a single dataset at 1 GiB.
const DefaultMemoryLimit int64 = 1 << 30

const elementSize = 8

// Guard enforces the per-allocation memory ceiling. A zero or negative
// limit disables the ceiling check.
type Guard struct {
	Limit int64
}

// NewGuard returns a Guard with the given byte limit.
func NewGuard(limit int64) Guard {
	return Guard{Limit: limit}
}

// Alloc returns a zeroed dataset of length n.
func (g Guard) Alloc(n int) (d Dataset, err error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrAllocation, n)
	}
	if g.Limit > 0 && int64(n) > g.Limit/elementSize {
		return nil, fmt.Errorf("%w: %d elements exceed memory limit of %d bytes", ErrAllocation, n, g.Limit)
	}
	defer func() {
		if r := recover(); r != nil {
			d, err = nil, AsAllocationError(r)
		}
	}()
	return make(Dataset, n), nil
}

// Clone returns a private copy of d allocated through the guard.
func (g Guard) Clone(d Dataset) (Dataset, error) {
	out, err := g.Alloc(len(d))
	if err != nil {
		return nil, err
	}
	copy(out, d)
	return out, nil
}

// AsAllocationError converts a recovered slice-allocation panic into
// ErrAllocation. Any other panic value is re-panicked.
func AsAllocationError(r any) error {
	if rerr, ok := r.(runtime.Error); ok {
		msg := rerr.Error()
		if strings.Contains(msg, "makeslice") || strings.Contains(msg, "out of memory") {
			return fmt.Errorf("%w: %v", ErrAllocation, rerr)
		}
	}
	panic(r)
}
