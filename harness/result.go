// Package harness measures sorting algorithms over generated inputs and
// describes their results.
package harness

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// recordPrefix starts every result line.
const recordPrefix = "RESULT"

// Case identifies one row of output: an algorithm run over one generated
// input.
type Case struct {
	ElementType  string
	Size         int
	Distribution string
	Iterations   int
	Algorithm    string
}

// Result holds the outcome of one algorithm on one case. Times are in
// seconds.
type Result struct {
	Algo       string  `json:"algo"`
	Name       string  `json:"name"`
	Size       int     `json:"size"`
	Iterations int     `json:"iterations"`
	Time       float64 `json:"time"`
	TGenerate  float64 `json:"t_generate"`
	TVerify    float64 `json:"t_verify"`
	Correct    bool    `json:"correct"`
	Failed     bool    `json:"failed,omitempty"`
}

// NewResult builds the record for c. The mean is total divided by the
// case's iteration count.
func NewResult(
	c Case,
	total, generate, verify time.Duration,
	correct bool,
) Result {
	mean := 0.0
	if c.Iterations > 0 {
		mean = total.Seconds() / float64(c.Iterations)
	}

	return Result{
		Algo:       c.Algorithm,
		Name:       c.Distribution,
		Size:       c.Size,
		Iterations: c.Iterations,
		Time:       mean,
		TGenerate:  generate.Seconds(),
		TVerify:    verify.Seconds(),
		Correct:    correct,
	}
}

// Line formats r as a single RESULT record, newline included.
func (r Result) Line() string {
	var b strings.Builder

	b.WriteString(recordPrefix)
	b.WriteString(" algo=" + r.Algo)
	b.WriteString(" name=" + r.Name)
	b.WriteString(" size=" + strconv.Itoa(r.Size))
	b.WriteString(" iterations=" + strconv.Itoa(r.Iterations))
	b.WriteString(" time=" + formatSeconds(r.Time))
	b.WriteString(" t_generate=" + formatSeconds(r.TGenerate))
	b.WriteString(" t_verify=" + formatSeconds(r.TVerify))
	b.WriteString(" correct=" + formatBool(r.Correct))

	if r.Failed {
		b.WriteString(" failed=1")
	}

	b.WriteByte('\n')

	return b.String()
}

// ParseRecords reads every RESULT line from r. Other lines are skipped.
func ParseRecords(r io.Reader) ([]Result, error) {
	scanner := bufio.NewScanner(r)

	var (
		results []Result
		lineNum int
	)

	for scanner.Scan() {
		lineNum++

		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, recordPrefix+" ") {
			continue
		}

		result, err := parseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		results = append(results, result)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}

	return results, nil
}

func parseRecord(line string) (Result, error) {
	var result Result

	for _, field := range strings.Fields(line)[1:] {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return result, fmt.Errorf("malformed field %q", field)
		}

		var err error

		switch key {
		case "algo":
			result.Algo = value
		case "name":
			result.Name = value
		case "size":
			result.Size, err = strconv.Atoi(value)
		case "iterations":
			result.Iterations, err = strconv.Atoi(value)
		case "time":
			result.Time, err = strconv.ParseFloat(value, 64)
		case "t_generate":
			result.TGenerate, err = strconv.ParseFloat(value, 64)
		case "t_verify":
			result.TVerify, err = strconv.ParseFloat(value, 64)
		case "correct":
			result.Correct, err = parseBool(value)
		case "failed":
			result.Failed, err = parseBool(value)
		}

		if err != nil {
			return result, fmt.Errorf("parse %s: %w", key, err)
		}
	}

	if result.Algo == "" {
		return result, fmt.Errorf("record has no algo")
	}

	return result, nil
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'g', 6, 64)
}

func formatBool(b bool) string {
	if b {
		return "1"
	}

	return "0"
}

func parseBool(s string) (bool, error) {
	switch s {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid flag %q", s)
	}
}
