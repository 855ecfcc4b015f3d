package benchmark

import (
	"fmt"

	"sortbench/internal/dataset"
	"sortbench/internal/sorting"
)

// Comparison is the change of one algorithm's mean between two runs for
// the same size and shape.
type Comparison struct {
	Size      int
	Shape     dataset.Shape
	Algorithm sorting.Algorithm
	PrevMs    float64
	CurrMs    float64
	DiffPct   float64 // positive is slower
}

type recordKey struct {
	size  int
	shape dataset.Shape
}

// Compare returns comparisons for every configuration that succeeded in both
// runs, in the order of curr.
func Compare(prev, curr Run) []Comparison {
	prevMap := make(map[recordKey]Record)
	for _, r := range prev.Records {
		if !r.Failed() {
			prevMap[recordKey{r.Size, r.Shape}] = r
		}
	}

	var comparisons []Comparison
	for _, c := range curr.Records {
		if c.Failed() {
			continue
		}
		p, ok := prevMap[recordKey{c.Size, c.Shape}]
		if !ok {
			continue
		}
		for _, alg := range sorting.All() {
			comp := Comparison{
				Size:      c.Size,
				Shape:     c.Shape,
				Algorithm: alg,
				PrevMs:    p.Mean(alg),
				CurrMs:    c.Mean(alg),
			}
			if comp.PrevMs > 0 {
				comp.DiffPct = (comp.CurrMs - comp.PrevMs) / comp.PrevMs * 100
			}
			comparisons = append(comparisons, comp)
		}
	}
	return comparisons
}

// Regressed reports whether the slowdown exceeds threshold percent.
func (c Comparison) Regressed(threshold float64) bool {
	return c.DiffPct > threshold
}

func (c Comparison) String() string {
	return fmt.Sprintf("%d/%s/%s: %.4fms -> %.4fms (%+.2f%%)",
		c.Size, c.Shape, c.Algorithm, c.PrevMs, c.CurrMs, c.DiffPct)
}
