package sorting

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAlgorithm is returned by ParseAlgorithm for unrecognised names.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithm selects one of the benchmarked sorts.
type Algorithm int

const (
	Bubble Algorithm = iota
	Merge
	Quick
)

type algorithmInfo struct {
	name   string
	column string
	sort   func([]int64)
}

var algorithms = [...]algorithmInfo{
	Bubble: {"bubble", "BubbleSortTime", BubbleSort},
	Merge:  {"merge", "MergeSortTime", MergeSort},
	Quick:  {"quick", "QuickSortTime", QuickSort},
}

// All returns the algorithms in result-column order.
func All() []Algorithm {
	return []Algorithm{Bubble, Merge, Quick}
}

func (a Algorithm) valid() bool {
	return a >= 0 && int(a) < len(algorithms)
}

// String returns the short name used on the command line and in metrics.
func (a Algorithm) String() string {
	if !a.valid() {
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
	return algorithms[a].name
}

// Column returns the CSV header for the algorithm's mean duration.
func (a Algorithm) Column() string {
	if !a.valid() {
		return ""
	}
	return algorithms[a].column
}

// Sort sorts d in place. It panics on an invalid Algorithm value.
func (a Algorithm) Sort(d []int64) {
	if !a.valid() {
		panic(fmt.Sprintf("sorting: invalid algorithm %d", int(a)))
	}
	algorithms[a].sort(d)
}

// ParseAlgorithm accepts either the short name ("quick") or the long form ("quicksort").
func ParseAlgorithm(name string) (Algorithm, error) {
	key := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), "sort")
	for _, a := range All() {
		if algorithms[a].name == key {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}
