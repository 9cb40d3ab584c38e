package harness

import "time"

// Timer measures elapsed time since its last reset.
type Timer interface {
	Reset()
	Elapsed() time.Duration
	ElapsedAndReset() time.Duration
}

// Stopwatch is a Timer backed by the monotonic clock.
type Stopwatch struct {
	start time.Time
}

// NewStopwatch returns a started Stopwatch.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{start: time.Now()}
}

func (s *Stopwatch) Reset() { s.start = time.Now() }

func (s *Stopwatch) Elapsed() time.Duration { return time.Since(s.start) }

func (s *Stopwatch) ElapsedAndReset() time.Duration {
	now := time.Now()
	elapsed := now.Sub(s.start)
	s.start = now

	return elapsed
}
