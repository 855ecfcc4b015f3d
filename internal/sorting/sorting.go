// Package sorting implements the three benchmarked algorithms. Every
// function sorts in place into non-decreasing order and uses no recursion.
package sorting

// InsertionThreshold is the largest high-low span that QuickSort hands to
// insertion sort instead of partitioning.
const InsertionThreshold = 64

// BubbleSort is the unoptimised adjacent-swap sort. It always performs every
// pass, even when a pass makes no swaps.
func BubbleSort(d []int64) {
	n := len(d)
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-i-1; j++ {
			if d[j] > d[j+1] {
				d[j], d[j+1] = d[j+1], d[j]
			}
		}
	}
}

// MergeSort is a bottom-up merge sort. Runs of width 1, 2, 4, ... are merged
// pairwise until a single run covers the slice.
func MergeSort(d []int64) {
	n := len(d)
	for width := 1; width < n; width *= 2 {
		for left := 0; left < n-1; left += 2 * width {
			mid := min(left+width-1, n-1)
			right := min(left+2*width-1, n-1)
			merge(d, left, mid, right)
		}
	}
}

// merge combines the sorted ranges d[left..mid] and d[mid+1..right]. Each
// side is copied into its own buffer; ties take from the left.
func merge(d []int64, left, mid, right int) {
	lhs := make([]int64, mid-left+1)
	rhs := make([]int64, right-mid)
	copy(lhs, d[left:mid+1])
	copy(rhs, d[mid+1:right+1])

	i, j, k := 0, 0, left
	for i < len(lhs) && j < len(rhs) {
		if lhs[i] <= rhs[j] {
			d[k] = lhs[i]
			i++
		} else {
			d[k] = rhs[j]
			j++
		}
		k++
	}
	for ; i < len(lhs); i++ {
		d[k] = lhs[i]
		k++
	}
	for ; j < len(rhs); j++ {
		d[k] = rhs[j]
		k++
	}
}

type span struct {
	low, high int
}

// QuickSort partitions with a Lomuto scheme around the last element, driven
// by an explicit stack of inclusive ranges. Ranges whose high-low is at most
// InsertionThreshold are finished with insertion sort.
func QuickSort(d []int64) {
	if len(d) < 2 {
		return
	}
	stack := []span{{0, len(d) - 1}}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if r.low >= r.high {
			continue
		}
		if r.high-r.low <= InsertionThreshold {
			InsertionSort(d, r.low, r.high)
			continue
		}
		p := partition(d, r.low, r.high)
		stack = append(stack, span{r.low, p - 1}, span{p + 1, r.high})
	}
}

func partition(d []int64, low, high int) int {
	pivot := d[high]
	i := low - 1
	for j := low; j < high; j++ {
		if d[j] <= pivot {
			i++
			d[i], d[j] = d[j], d[i]
		}
	}
	d[i+1], d[high] = d[high], d[i+1]
	return i + 1
}

// InsertionSort sorts the inclusive range d[low..high].
func InsertionSort(d []int64, low, high int) {
	for i := low + 1; i <= high; i++ {
		key := d[i]
		j := i - 1
		for j >= low && d[j] > key {
			d[j+1] = d[j]
			j--
		}
		d[j+1] = key
	}
}
