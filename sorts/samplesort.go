package sorts

import (
	"cmp"
	"math/rand/v2"
	"slices"
)

const (
	// numBuckets is the fan-out of one distribution pass. Bucket indices
	// fit in a byte.
	numBuckets = 256

	// oversampling is the number of sample elements drawn per bucket.
	oversampling = 4

	// baseCaseSize: below this, sort directly instead of distributing.
	baseCaseSize = 1024
)

// SampleSort writes the sorted contents of input to output. Input is used
// as scratch space and is left in an unspecified order. Both slices must
// have the same length.
//
// Each pass draws a random sample, picks up to 255 splitters from it,
// classifies every element by binary search over the splitters and
// scatters the elements into their buckets in output. Buckets are then
// sorted recursively, bouncing between the two slices.
func SampleSort[T cmp.Ordered](input, output []T) {
	n := len(input)
	if n <= baseCaseSize {
		copy(output, input)
		sortSmall(output[:n])

		return
	}

	splitters := sampleSplitters(input)
	if len(splitters) == 0 {
		copy(output, input)
		slices.Sort(output[:n])

		return
	}

	oracle := make([]uint8, n)

	var counts [numBuckets]int
	for i, v := range input {
		b, _ := slices.BinarySearch(splitters, v)
		oracle[i] = uint8(b)
		counts[b]++
	}

	var starts [numBuckets + 1]int
	for b := range numBuckets {
		starts[b+1] = starts[b] + counts[b]
	}

	next := starts
	for i, v := range input {
		b := oracle[i]
		output[next[b]] = v
		next[b]++
	}

	for b := range numBuckets {
		lo, hi := starts[b], starts[b+1]
		size := hi - lo

		switch {
		case size <= 1:
		case size == n:
			// The splitters did not separate anything.
			slices.Sort(output[lo:hi])
		case size <= baseCaseSize:
			sortSmall(output[lo:hi])
		default:
			copy(input[lo:hi], output[lo:hi])
			SampleSort(input[lo:hi], output[lo:hi])
		}
	}
}

// sampleSplitters returns strictly increasing splitters drawn from a random
// sample of data. It returns nil when the sample holds a single value.
func sampleSplitters[T cmp.Ordered](data []T) []T {
	sampleSize := min(len(data), oversampling*numBuckets)

	sample := make([]T, sampleSize)
	for i := range sample {
		sample[i] = data[rand.IntN(len(data))]
	}
	slices.Sort(sample)

	splitters := make([]T, 0, numBuckets-1)
	for i := oversampling - 1; i < sampleSize && len(splitters) < numBuckets-1; i += oversampling {
		splitters = append(splitters, sample[i])
	}

	splitters = slices.Compact(splitters)
	if len(splitters) == 1 && sample[0] == sample[sampleSize-1] {
		return nil
	}

	return splitters
}
