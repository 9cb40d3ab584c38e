package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/weiihann/sortbench/progress"
)

// ErrAlgorithmFailed is returned by Run when the algorithm panics.
var ErrAlgorithmFailed = errors.New("algorithm failed")

// Algorithm is a sorting routine under test.
type Algorithm[T any] struct {
	Name string

	// Sort transforms input into sorted output. Both slices have the
	// case's length.
	Sort func(input, output []T)

	// InPlace algorithms leave their result in input and ignore output,
	// so output is not zeroed between iterations.
	InPlace bool

	// PreservesInput algorithms never modify input, so it is not restored
	// between iterations.
	PreservesInput bool
}

// Buffers are the three equal-length buffers of one case. Pristine holds
// the generated input and is never modified.
type Buffers[T any] struct {
	Pristine []T
	Working  []T
	Output   []T
}

// NewBuffers allocates buffers for n elements.
func NewBuffers[T any](n int) Buffers[T] {
	return Buffers[T]{
		Pristine: make([]T, n),
		Working:  make([]T, n),
		Output:   make([]T, n),
	}
}

// Len returns the case size.
func (b Buffers[T]) Len() int { return len(b.Pristine) }

// Truncate shrinks the buffers to n elements.
func (b Buffers[T]) Truncate(n int) Buffers[T] {
	return Buffers[T]{
		Pristine: b.Pristine[:n],
		Working:  b.Working[:n],
		Output:   b.Output[:n],
	}
}

// Result returns the buffer holding alg's result after it ran.
func (b Buffers[T]) Result(alg Algorithm[T]) []T {
	if alg.InPlace {
		return b.Working
	}

	return b.Output
}

// Runner measures algorithms over case buffers, one at a time.
type Runner[T any] struct {
	Timer      Timer
	Progress   io.Writer
	BarOptions []progress.Option
	Logger     *slog.Logger
}

// NewRunner creates a Runner that times with timer and draws progress
// bars on progressOut.
func NewRunner[T any](
	timer Timer,
	progressOut io.Writer,
	logger *slog.Logger,
	barOpts ...progress.Option,
) *Runner[T] {
	return &Runner[T]{
		Timer:      timer,
		Progress:   progressOut,
		BarOptions: barOpts,
		Logger:     logger,
	}
}

// Run executes alg once untimed to warm up, then iterations times under
// the timer, and returns the total measured time. Buffer restoration
// happens before the timer is reset and is never measured.
//
// If alg panics, Run stops and returns an error wrapping
// ErrAlgorithmFailed; no partial total is reported. An empty case has
// nothing to measure and reports zero.
func (r *Runner[T]) Run(
	alg Algorithm[T],
	bufs Buffers[T],
	iterations int,
) (time.Duration, error) {
	if bufs.Len() == 0 {
		return 0, nil
	}

	bar := progress.New(
		r.Progress, uint64(iterations)+1, alg.Name+": ", r.BarOptions...,
	)
	defer bar.Undraw()

	copy(bufs.Working, bufs.Pristine)

	if err := invoke(alg, bufs); err != nil {
		return 0, fmt.Errorf("warm-up: %w", err)
	}

	bar.Step()

	var total time.Duration

	for it := 0; it < iterations; it++ {
		if !alg.PreservesInput {
			copy(bufs.Working, bufs.Pristine)
		}
		if !alg.InPlace {
			clear(bufs.Output)
		}

		r.Timer.Reset()

		if err := invoke(alg, bufs); err != nil {
			return 0, fmt.Errorf("iteration %d: %w", it, err)
		}

		total += r.Timer.Elapsed()
		bar.Step()
	}

	r.Logger.Debug("algorithm measured",
		slog.String("algo", alg.Name),
		slog.Int("size", bufs.Len()),
		slog.Int("iterations", iterations),
		slog.Duration("total", total),
	)

	return total, nil
}

func invoke[T any](alg Algorithm[T], bufs Buffers[T]) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %s: %v", ErrAlgorithmFailed, alg.Name, p)
		}
	}()

	alg.Sort(bufs.Working, bufs.Output)

	return nil
}
