// Package workload generates benchmark inputs following named statistical
// distributions. A case's input is produced once and shared by every
// algorithm so comparisons stay fair.
package workload

import (
	"math/rand/v2"
	"strconv"
	"unsafe"
)

// Integer is the set of element types the synthetic distributions can fill.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Generator fills a buffer following one named distribution.
type Generator[T any] interface {
	// Name identifies the distribution in result records.
	Name() string

	// Generate writes up to len(buf) elements and returns how many it
	// wrote. Sources backed by finite data may write fewer.
	Generate(buf []T) int
}

// Random fills every slot with an independently drawn value.
type Random[T Integer] struct{}

func (Random[T]) Name() string { return "random" }

func (Random[T]) Generate(buf []T) int {
	for i := range buf {
		buf[i] = randomValue[T]()
	}

	return len(buf)
}

// NearlySorted fills the buffer with increasing values spanning the value
// range, then overwrites n/K randomly chosen positions with random values.
// K must be positive.
type NearlySorted[T Integer] struct {
	K int
}

func (g NearlySorted[T]) Name() string {
	return "nearly-sorted:" + strconv.Itoa(g.K)
}

func (g NearlySorted[T]) Generate(buf []T) int {
	n := len(buf)
	if n == 0 {
		return 0
	}

	fillAscending(buf, n)

	for range n / g.K {
		buf[rand.IntN(n)] = randomValue[T]()
	}

	return n
}

// UnsortedTail fills the first n - n/K positions with increasing values
// spanning the value range and the remaining n/K positions with random
// values.
type UnsortedTail[T Integer] struct {
	K int
}

func (g UnsortedTail[T]) Name() string {
	return "unsorted-tail:" + strconv.Itoa(g.K)
}

func (g UnsortedTail[T]) Generate(buf []T) int {
	n := len(buf)
	ordered := n - n/g.K

	fillAscending(buf[:ordered], ordered)

	for i := ordered; i < n; i++ {
		buf[i] = randomValue[T]()
	}

	return n
}

// Sorted produces 0, 1, ..., n-1. Values wrap once n exceeds the range
// of T, so buffers must be no longer than T's maximum plus one.
type Sorted[T Integer] struct{}

func (Sorted[T]) Name() string { return "sorted" }

func (Sorted[T]) Generate(buf []T) int {
	for i := range buf {
		buf[i] = T(i)
	}

	return len(buf)
}

// Reverse produces n, n-1, ..., 1. Values wrap once n exceeds the
// maximum of T.
type Reverse[T Integer] struct{}

func (Reverse[T]) Name() string { return "reverse" }

func (Reverse[T]) Generate(buf []T) int {
	n := len(buf)
	for i := range buf {
		buf[i] = T(n - i)
	}

	return n
}

// Constant sets every position to 1.
type Constant[T Integer] struct{}

func (Constant[T]) Name() string { return "constant" }

func (Constant[T]) Generate(buf []T) int {
	for i := range buf {
		buf[i] = 1
	}

	return len(buf)
}

type renamed[T any] struct {
	Generator[T]
	name string
}

func (r renamed[T]) Name() string { return r.name }

// Rename reports g under a different distribution name.
func Rename[T any](g Generator[T], name string) Generator[T] {
	return renamed[T]{Generator: g, name: name}
}

// fillAscending writes increasing values to buf, spaced so that a sequence
// of length span covers the non-negative range of T.
func fillAscending[T Integer](buf []T, span int) {
	if span == 0 {
		return
	}

	factor := uint64(maxValue[T]()) / uint64(span)
	for i := range buf {
		buf[i] = T(uint64(i) * factor)
	}
}

func randomValue[T Integer]() T {
	return T(rand.Uint64() & uint64(maxValue[T]()))
}

// maxValue returns the largest value representable by T.
func maxValue[T Integer]() T {
	var zero T

	ones := ^zero
	if ones < zero {
		bits := unsafe.Sizeof(zero) * 8

		return T(uint64(1)<<(bits-1) - 1)
	}

	return ones
}
