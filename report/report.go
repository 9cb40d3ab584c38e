// Package report formats benchmark results into comparison tables.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/weiihann/sortbench/harness"
)

// ErrNoResults is returned when there is nothing to report.
var ErrNoResults = errors.New("no results to report")

// Generate writes a markdown comparison table for the given results. Each
// row's relative time is measured against the fastest algorithm on the
// same case.
func Generate(w io.Writer, results []harness.Result) error {
	if len(results) == 0 {
		return ErrNoResults
	}

	p := message.NewPrinter(language.English)
	fastest := findFastest(results)

	// Header.
	p.Fprintln(w, "## Benchmark Results")
	p.Fprintln(w)

	// Correctness check.
	if failures := collectFailures(results); len(failures) == 0 {
		p.Fprintln(w, "Correctness: **all correct**")
	} else {
		p.Fprintln(w, "Correctness: **FAILURES**")

		for _, r := range failures {
			p.Fprintf(w, "  - %s on %s, %d elements: %s\n",
				r.Algo, r.Name, r.Size, status(r))
		}
	}

	p.Fprintln(w)

	// Table header.
	p.Fprintln(w, "| Algorithm | Distribution | Size | Iterations "+
		"| Mean | Relative | Correct |")
	p.Fprintln(w, "|-----------|--------------|------|------------"+
		"|------|----------|---------|")

	for _, r := range results {
		relative := "-"
		if !r.Failed {
			ratio := 1.0
			if best := fastest[caseKey(r)]; best > 0 && r.Time > 0 {
				ratio = r.Time / best
			}

			relative = fmt.Sprintf("%.2fx", ratio)
		}

		p.Fprintf(w, "| %s | %s | %d | %d | %s | %s | %s |\n",
			r.Algo,
			r.Name,
			r.Size,
			r.Iterations,
			formatSeconds(r),
			relative,
			status(r),
		)
	}

	return nil
}

// GenerateJSON writes results as JSON to w.
func GenerateJSON(w io.Writer, results []harness.Result) error {
	if len(results) == 0 {
		return ErrNoResults
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(results)
}

type key struct {
	name string
	size int
}

func caseKey(r harness.Result) key { return key{name: r.Name, size: r.Size} }

func findFastest(results []harness.Result) map[key]float64 {
	fastest := make(map[key]float64)

	for _, r := range results {
		if r.Failed || r.Time <= 0 {
			continue
		}

		k := caseKey(r)
		if best, ok := fastest[k]; !ok || r.Time < best {
			fastest[k] = r.Time
		}
	}

	return fastest
}

func collectFailures(results []harness.Result) []harness.Result {
	var failures []harness.Result

	for _, r := range results {
		if r.Failed || !r.Correct {
			failures = append(failures, r)
		}
	}

	return failures
}

func status(r harness.Result) string {
	switch {
	case r.Failed:
		return "failed"
	case r.Correct:
		return "yes"
	default:
		return "no"
	}
}

func formatSeconds(r harness.Result) string {
	if r.Failed {
		return "-"
	}

	s := r.Time

	switch {
	case s == 0:
		return "0s"
	case s < 1e-6:
		return fmt.Sprintf("%.0fns", s*1e9)
	case s < 1e-3:
		return fmt.Sprintf("%.2fµs", s*1e6)
	case s < 1:
		return fmt.Sprintf("%.2fms", s*1e3)
	default:
		return fmt.Sprintf("%.2fs", s)
	}
}
