package verify

import (
	"log/slog"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiihann/sortbench/sorts"
)

func TestCheck_ReversedFails(t *testing.T) {
	output := []int32{8, 7, 6, 5, 4, 3, 2, 1}
	reference := slices.Clone(output)
	sorts.Std(reference)

	report := Check(output, reference)

	assert.False(t, report.OK())
	assert.False(t, report.Sorted)
	assert.Equal(t, 1, report.FirstUnsorted)
	assert.False(t, report.Equal)
	assert.Equal(t, 0, report.FirstMismatch)
	assert.Equal(t, 8, report.Mismatches)
}

func TestCheck_ReversedFailsEvenAgainstItself(t *testing.T) {
	output := []int32{2, 1}

	report := Check(output, output)

	assert.False(t, report.OK(), "a reversed array is never a correct sort")
	assert.True(t, report.Equal)
	assert.False(t, report.Sorted)
}

func TestCheck_BaselineOutputPasses(t *testing.T) {
	input := []string{"pear", "apple", "fig", "apple", "kiwi"}

	reference := slices.Clone(input)
	sorts.Std(reference)

	output := make([]string, len(input))
	sorts.SampleSort(slices.Clone(input), output)

	report := Check(output, reference)

	assert.True(t, report.OK())
	assert.Equal(t, -1, report.FirstUnsorted)
	assert.Equal(t, -1, report.FirstMismatch)
	assert.Zero(t, report.Mismatches)
}

func TestCheck_SortedButWrong(t *testing.T) {
	report := Check([]int{1, 2, 2, 4}, []int{1, 2, 3, 4})

	assert.True(t, report.Sorted)
	assert.False(t, report.Equal)
	assert.Equal(t, 2, report.FirstMismatch)
	assert.Equal(t, 1, report.Mismatches)
}

func TestCheck_LengthMismatch(t *testing.T) {
	report := Check([]int{1, 2}, []int{1, 2, 3})

	assert.True(t, report.Sorted)
	assert.False(t, report.Equal)
	assert.Equal(t, 2, report.FirstMismatch)
	assert.Equal(t, 1, report.Mismatches)
}

func TestCheck_Empty(t *testing.T) {
	report := Check([]int{}, []int{})

	assert.True(t, report.OK(), "an empty output is vacuously sorted")
}

func TestMismatches_Limit(t *testing.T) {
	output := []int{9, 9, 9, 9}
	reference := []int{1, 2, 3, 9}

	found := Mismatches(output, reference, 2)

	require.Len(t, found, 2)
	assert.Equal(t, Mismatch[int]{Index: 0, Expected: 1, Got: 9}, found[0])
	assert.Equal(t, Mismatch[int]{Index: 1, Expected: 2, Got: 9}, found[1])
}

func TestReport_LogValue(t *testing.T) {
	value := Check([]int{2, 1}, []int{1, 2}).LogValue()

	require.Equal(t, slog.KindGroup, value.Kind())
	assert.Len(t, value.Group(), 5)
}
