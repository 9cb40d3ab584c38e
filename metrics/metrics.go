// Package metrics exposes benchmark results as Prometheus metrics and
// writes them in the text exposition format, for pickup by the node
// exporter's textfile collector.
package metrics

import (
	"context"
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/weiihann/sortbench/harness"
)

const namespace = "sortbench"

// Outcome label values of CasesTotal.
const (
	OutcomeCorrect   = "correct"
	OutcomeIncorrect = "incorrect"
	OutcomeFailed    = "failed"
)

// Recorder accumulates metrics for one run on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	// MeanSeconds is the mean time per iteration of the latest case.
	// Labels: algo, distribution, size
	MeanSeconds *prometheus.GaugeVec

	// CasesTotal counts cases by algorithm and outcome.
	// Labels: algo, outcome (correct, incorrect, failed)
	CasesTotal *prometheus.CounterVec

	// GenerateSeconds is the distribution of input generation times.
	// Each case is observed once, on its first record.
	GenerateSeconds prometheus.Histogram

	// VerifySeconds is the distribution of verification times.
	VerifySeconds prometheus.Histogram

	lastCase string
}

// NewRecorder creates a Recorder with all metrics registered.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		MeanSeconds: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "mean_seconds",
				Help:      "Mean time per sort iteration",
			},
			[]string{"algo", "distribution", "size"},
		),
		CasesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cases_total",
				Help:      "Benchmark cases by algorithm and outcome",
			},
			[]string{"algo", "outcome"},
		),
		GenerateSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generate_seconds",
				Help:      "Time spent generating case inputs",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 8),
			},
		),
		VerifySeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "verify_seconds",
				Help:      "Time spent verifying candidate output",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 8),
			},
		),
	}
}

// Registry returns the registry holding the recorder's metrics.
func (m *Recorder) Registry() *prometheus.Registry { return m.registry }

// Record updates the metrics with r. Records of one case arrive
// consecutively, and the case-level times are observed once per case.
func (m *Recorder) Record(_ context.Context, r harness.Result) error {
	size := strconv.Itoa(r.Size)

	if !r.Failed {
		m.MeanSeconds.WithLabelValues(r.Algo, r.Name, size).Set(r.Time)
	}

	m.CasesTotal.WithLabelValues(r.Algo, outcome(r)).Inc()

	key := r.Name + "/" + size
	if key != m.lastCase {
		m.lastCase = key
		m.GenerateSeconds.Observe(r.TGenerate)
		m.VerifySeconds.Observe(r.TVerify)
	}

	return nil
}

// WriteFile writes the current metrics to path in the text exposition
// format. The file is replaced atomically.
func (m *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}

	return nil
}

func outcome(r harness.Result) string {
	switch {
	case r.Failed:
		return OutcomeFailed
	case r.Correct:
		return OutcomeCorrect
	default:
		return OutcomeIncorrect
	}
}
