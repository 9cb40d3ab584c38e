// Package sweep drives benchmark runs across distributions and sizes and
// emits one result record per algorithm per case.
package sweep

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/weiihann/sortbench/harness"
	"github.com/weiihann/sortbench/verify"
	"github.com/weiihann/sortbench/workload"
)

// ErrBaselineNotInPlace is returned by New when the baseline algorithm
// writes to the output buffer, where the candidate's result is kept.
var ErrBaselineNotInPlace = errors.New("baseline must sort in place")

// mismatchLogLimit caps the per-position diagnostics logged for one case.
const mismatchLogLimit = 10

// Sweep runs a candidate and a baseline algorithm over every configured
// case, verifying the candidate against the baseline.
type Sweep[T cmp.Ordered] struct {
	iterations  int
	sizes       []int
	elementType string
	candidate   harness.Algorithm[T]
	baseline    harness.Algorithm[T]
	runner      *harness.Runner[T]
	sinks       []Sink
	logger      *slog.Logger
}

// New creates a Sweep. Records are passed to every sink in order.
//
// An in-place candidate leaves its result in the working buffer, which the
// baseline then overwrites. New accepts such a candidate but warns, and the
// sweep copies the candidate's result aside before the baseline runs.
func New[T cmp.Ordered](
	cfg Config,
	candidate, baseline harness.Algorithm[T],
	runner *harness.Runner[T],
	logger *slog.Logger,
	sinks ...Sink,
) (*Sweep[T], error) {
	if cfg.Iterations < 1 {
		return nil, fmt.Errorf("iterations must be at least 1, got %d",
			cfg.Iterations)
	}

	if err := CheckAlgorithms(candidate, baseline); err != nil {
		return nil, err
	}

	var zero T

	s := &Sweep[T]{
		iterations:  cfg.Iterations,
		sizes:       cfg.Sizes(),
		elementType: fmt.Sprintf("%T", zero),
		candidate:   candidate,
		baseline:    baseline,
		runner:      runner,
		sinks:       sinks,
		logger: logger.With(
			slog.String("candidate", candidate.Name),
			slog.String("baseline", baseline.Name),
		),
	}

	if candidate.InPlace {
		s.logger.Warn("candidate sorts in place; its result is copied " +
			"out of the working buffer before the baseline runs")
	}

	return s, nil
}

// CheckAlgorithms reports whether candidate and baseline can be paired in
// a sweep. The baseline's result is read from the working buffer, so it
// must sort in place.
func CheckAlgorithms[T cmp.Ordered](candidate, baseline harness.Algorithm[T]) error {
	if candidate.Name == baseline.Name {
		return fmt.Errorf("candidate and baseline are both %s", baseline.Name)
	}

	if !baseline.InPlace {
		return fmt.Errorf("%w: %s", ErrBaselineNotInPlace, baseline.Name)
	}

	return nil
}

// Run sweeps every generator over every size. A generator that runs short
// of data ends its progression after the truncated case, since larger
// sizes would repeat it.
func (s *Sweep[T]) Run(
	ctx context.Context,
	gens []workload.Generator[T],
) ([]harness.Result, error) {
	var all []harness.Result

	for _, gen := range gens {
		s.logger.InfoContext(ctx, "sweeping distribution",
			slog.String("distribution", gen.Name()),
			slog.String("element_type", s.elementType),
			slog.Int("sizes", len(s.sizes)),
		)

		for _, size := range s.sizes {
			results, effective, err := s.RunCase(ctx, gen, size)
			if err != nil {
				return all, fmt.Errorf("run %s size %d: %w",
					gen.Name(), size, err)
			}

			all = append(all, results...)

			if effective < size {
				break
			}
		}
	}

	return all, nil
}

// RunCase generates one input of the requested size, measures both
// algorithms on it, verifies the candidate and emits the records. It
// returns the records and the effective case size.
//
// Algorithm failures and verification mismatches are reported in the
// records; the error is non-nil only when a sink fails.
func (s *Sweep[T]) RunCase(
	ctx context.Context,
	gen workload.Generator[T],
	size int,
) ([]harness.Result, int, error) {
	timer := s.runner.Timer
	bufs := harness.NewBuffers[T](size)

	timer.Reset()
	n := gen.Generate(bufs.Pristine)
	bufs = bufs.Truncate(n)
	copy(bufs.Working, bufs.Pristine)
	tGenerate := timer.ElapsedAndReset()

	if n < size {
		s.logger.InfoContext(ctx, "generator ran short",
			slog.String("distribution", gen.Name()),
			slog.Int("requested", size),
			slog.Int("available", n),
		)
	}

	candTotal, candErr := s.runner.Run(s.candidate, bufs, s.iterations)
	if candErr == nil && s.candidate.InPlace {
		copy(bufs.Output, bufs.Working)
	}

	baseTotal, baseErr := s.runner.Run(s.baseline, bufs, s.iterations)

	for _, err := range []error{candErr, baseErr} {
		if err != nil {
			s.logger.ErrorContext(ctx, "algorithm failed",
				slog.String("distribution", gen.Name()),
				slog.Int("size", n),
				slog.String("error", err.Error()),
			)
		}
	}

	var (
		tVerify time.Duration
		correct bool
	)

	if candErr == nil && baseErr == nil {
		timer.Reset()
		report := verify.Check(bufs.Output, bufs.Working)
		tVerify = timer.ElapsedAndReset()

		correct = report.OK()
		if !correct {
			s.logMismatch(ctx, gen.Name(), report, bufs)
		}
	}

	c := harness.Case{
		ElementType:  s.elementType,
		Size:         n,
		Distribution: gen.Name(),
		Iterations:   s.iterations,
		Algorithm:    s.candidate.Name,
	}

	candResult := harness.NewResult(c, candTotal, tGenerate, tVerify, correct)
	candResult.Failed = candErr != nil

	c.Algorithm = s.baseline.Name
	baseResult := harness.NewResult(
		c, baseTotal, tGenerate, tVerify, baseErr == nil,
	)
	baseResult.Failed = baseErr != nil

	results := []harness.Result{candResult, baseResult}

	for _, r := range results {
		for _, sink := range s.sinks {
			if err := sink.Record(ctx, r); err != nil {
				return nil, n, fmt.Errorf("emit %s record: %w", r.Algo, err)
			}
		}
	}

	return results, n, nil
}

func (s *Sweep[T]) logMismatch(
	ctx context.Context,
	distribution string,
	report verify.Report,
	bufs harness.Buffers[T],
) {
	s.logger.WarnContext(ctx, "verification failed",
		slog.String("distribution", distribution),
		slog.Int("size", bufs.Len()),
		slog.Any("report", report),
	)

	if !s.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}

	for _, m := range verify.Mismatches(bufs.Output, bufs.Working, mismatchLogLimit) {
		s.logger.DebugContext(ctx, "mismatch",
			slog.Int("index", m.Index),
			slog.Any("expected", m.Expected),
			slog.Any("got", m.Got),
		)
	}
}
