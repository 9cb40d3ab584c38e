// Package verify checks that an algorithm's output is a correct sort of
// its input by comparing it to a trusted reference.
package verify

import (
	"cmp"
	"log/slog"
)

// Report is the outcome of one verification. Sortedness and equality are
// checked independently; indices are -1 when the check passed.
type Report struct {
	Sorted        bool
	Equal         bool
	FirstUnsorted int
	FirstMismatch int
	Mismatches    int
}

// OK reports whether the output is both sorted and equal to the reference.
func (r Report) OK() bool { return r.Sorted && r.Equal }

// LogValue implements slog.LogValuer.
func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("sorted", r.Sorted),
		slog.Bool("equal", r.Equal),
		slog.Int("first_unsorted", r.FirstUnsorted),
		slog.Int("first_mismatch", r.FirstMismatch),
		slog.Int("mismatches", r.Mismatches),
	)
}

// Check verifies that output is in non-decreasing order and equal to
// reference at every position. Outputs of a different length than the
// reference mismatch at the shorter length.
func Check[T cmp.Ordered](output, reference []T) Report {
	report := Report{
		Sorted:        true,
		Equal:         true,
		FirstUnsorted: -1,
		FirstMismatch: -1,
	}

	for i := 1; i < len(output); i++ {
		if output[i] < output[i-1] {
			report.Sorted = false
			report.FirstUnsorted = i

			break
		}
	}

	n := min(len(output), len(reference))
	for i := 0; i < n; i++ {
		if output[i] != reference[i] {
			if report.Equal {
				report.Equal = false
				report.FirstMismatch = i
			}
			report.Mismatches++
		}
	}

	if len(output) != len(reference) {
		if report.Equal {
			report.Equal = false
			report.FirstMismatch = n
		}
		report.Mismatches += max(len(output), len(reference)) - n
	}

	return report
}

// Mismatch is one position where the output differs from the reference.
type Mismatch[T any] struct {
	Index    int
	Expected T
	Got      T
}

// Mismatches lists up to limit positions where output differs from
// reference, for diagnostics.
func Mismatches[T cmp.Ordered](output, reference []T, limit int) []Mismatch[T] {
	var found []Mismatch[T]

	n := min(len(output), len(reference))
	for i := 0; i < n && len(found) < limit; i++ {
		if output[i] != reference[i] {
			found = append(found, Mismatch[T]{
				Index:    i,
				Expected: reference[i],
				Got:      output[i],
			})
		}
	}

	return found
}
