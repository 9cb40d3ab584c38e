package harness

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/weiihann/sortbench/sorts"
)

// ErrUnknownAlgorithm is returned by Resolve for unregistered names.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// KnownAlgorithms returns the list of supported algorithm names.
func KnownAlgorithms() []string {
	return []string{"samplesort", "heapsort", "stdsort"}
}

// Resolve returns the registered algorithm called name.
func Resolve[T cmp.Ordered](name string) (Algorithm[T], error) {
	switch name {
	case "samplesort":
		return Algorithm[T]{
			Name: name,
			Sort: sorts.SampleSort[T],
		}, nil

	case "heapsort":
		return Algorithm[T]{
			Name:    name,
			Sort:    func(input, _ []T) { sorts.HeapSort(input) },
			InPlace: true,
		}, nil

	case "stdsort":
		return Algorithm[T]{
			Name:    name,
			Sort:    func(input, _ []T) { sorts.Std(input) },
			InPlace: true,
		}, nil

	default:
		return Algorithm[T]{}, fmt.Errorf("%w %q", ErrUnknownAlgorithm, name)
	}
}
