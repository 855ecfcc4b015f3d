package sorting_test

import (
	"fmt"
	"testing"

	"sortbench/internal/dataset"
	"sortbench/internal/sorting"
)

// BenchmarkSort/<algorithm>/<shape>/<size> is what `sortbench microbench` parses.
func BenchmarkSort(b *testing.B) {
	gen := dataset.NewGenerator(dataset.WithSeed(1))
	for _, alg := range sorting.All() {
		for _, shape := range dataset.AllShapes() {
			for _, size := range []int{100, 1000} {
				src, err := gen.Generate(size, shape)
				if err != nil {
					b.Fatal(err)
				}
				work := make(dataset.Dataset, len(src))
				b.Run(fmt.Sprintf("%s/%s/%d", alg, shape, size), func(b *testing.B) {
					b.ReportAllocs()
					for i := 0; i < b.N; i++ {
						copy(work, src)
						alg.Sort(work)
					}
				})
			}
		}
	}
}
