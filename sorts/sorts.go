// Package sorts holds the sorting routines the harness knows how to
// benchmark.
package sorts

import (
	"cmp"
	"slices"
)

// insertionThreshold: use insertion sort for slices this size or smaller.
const insertionThreshold = 24

// Std sorts data in place with the standard library. It is the trusted
// reference every candidate is verified against.
func Std[T cmp.Ordered](data []T) {
	slices.Sort(data)
}

// HeapSort sorts data in place with an O(n log n) worst case.
func HeapSort[T cmp.Ordered](data []T) {
	n := len(data)
	if n <= 1 {
		return
	}

	for i := n/2 - 1; i >= 0; i-- {
		siftDown(data, i, n)
	}

	for i := n - 1; i > 0; i-- {
		data[0], data[i] = data[i], data[0]
		siftDown(data, 0, i)
	}
}

func siftDown[T cmp.Ordered](data []T, i, n int) {
	for {
		largest := i
		left := 2*i + 1
		right := 2*i + 2

		if left < n && data[left] > data[largest] {
			largest = left
		}
		if right < n && data[right] > data[largest] {
			largest = right
		}

		if largest == i {
			return
		}

		data[i], data[largest] = data[largest], data[i]
		i = largest
	}
}

func insertionSort[T cmp.Ordered](data []T) {
	for i := 1; i < len(data); i++ {
		key := data[i]
		j := i - 1
		for j >= 0 && data[j] > key {
			data[j+1] = data[j]
			j--
		}
		data[j+1] = key
	}
}

func sortSmall[T cmp.Ordered](data []T) {
	if len(data) <= insertionThreshold {
		insertionSort(data)
		return
	}

	slices.Sort(data)
}
