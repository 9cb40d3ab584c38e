package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiihann/sortbench/harness"
	"github.com/weiihann/sortbench/report"
	"github.com/weiihann/sortbench/store"
	"github.com/weiihann/sortbench/sweep"
	"github.com/weiihann/sortbench/workload"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root := newRootCmd(discardLogger(), new(slog.LevelVar))
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func recordLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, "RESULT ") {
			lines = append(lines, line)
		}
	}

	return lines
}

func TestRunCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	stats := filepath.Join(dir, "stats.txt")
	db := filepath.Join(dir, "results.db")
	prom := filepath.Join(dir, "sortbench.prom")
	corpus := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(corpus, []byte("pear\napple\n\nfig\n"), 0o600))

	args := []string{
		"run", "2", stats, corpus,
		"--min-exp", "2", "--max-exp", "4",
		"--distributions", "reverse,ones",
		"--db", db,
		"--metrics-file", prom,
	}

	// Two distributions at two sizes, plus one truncated corpus case.
	const perRun = 10

	for i := 0; i < 2; i++ {
		out, err := execute(t, args...)
		require.NoError(t, err)
		assert.Len(t, recordLines(out), perRun)
	}

	data, err := os.ReadFile(stats)
	require.NoError(t, err)

	lines := recordLines(string(data))
	require.Len(t, lines, 2*perRun, "stats file is appended to")

	for _, line := range lines {
		assert.True(t, strings.HasSuffix(line, " correct=1"), line)
	}

	assert.Contains(t, string(data),
		"RESULT algo=samplesort name=file size=3 iterations=2 ")

	results, err := harness.ParseRecords(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "reverse", results[0].Name)
	assert.Equal(t, 4, results[0].Size)

	promData, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(promData),
		`sortbench_cases_total{algo="samplesort",outcome="correct"} 5`)

	var buf bytes.Buffer
	err = runReport(context.Background(), discardLogger(), &buf,
		reportConfig{dbPath: db, outputJSON: true})
	require.NoError(t, err)

	var stored []harness.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &stored))
	assert.Len(t, stored, perRun, "only the latest run is reported")
}

func TestRunCommandNoStatsFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := execute(t, "run", "1", "-",
		"--min-exp", "0", "--max-exp", "2", "--distributions", "random")
	require.NoError(t, err)
	assert.Len(t, recordLines(out), 4)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunCommandSetupErrors(t *testing.T) {
	dir := t.TempDir()
	stats := filepath.Join(dir, "stats.txt")

	tests := []struct {
		name string
		args []string
		is   error
	}{
		{
			name: "bad iterations",
			args: []string{"run", "ten", stats},
		},
		{
			name: "zero iterations",
			args: []string{"run", "0", stats},
		},
		{
			name: "unknown distribution",
			args: []string{"run", "1", stats, "--distributions", "zigzag"},
			is:   workload.ErrUnknownDistribution,
		},
		{
			name: "unknown algorithm",
			args: []string{"run", "1", stats, "--candidate", "bogosort"},
			is:   harness.ErrUnknownAlgorithm,
		},
		{
			name: "missing corpus",
			args: []string{"run", "1", stats, filepath.Join(dir, "missing.txt")},
		},
		{
			name: "missing config",
			args: []string{"run", "--config", filepath.Join(dir, "missing.yaml")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)

			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), "got %v", err)
			}

			_, statErr := os.Stat(stats)
			assert.True(t, os.IsNotExist(statErr),
				"no stats file is created before setup succeeds")
		})
	}
}

func TestRunCommandOutOfPlaceBaselineLeavesNoTrace(t *testing.T) {
	dir := t.TempDir()
	stats := filepath.Join(dir, "stats.txt")
	db := filepath.Join(dir, "results.db")

	_, err := execute(t, "run", "1", stats,
		"--min-exp", "2", "--max-exp", "3", "--distributions", "random",
		"--db", db)
	require.NoError(t, err)

	require.NoError(t, os.Remove(stats))

	_, err = execute(t, "run", "1", stats,
		"--candidate", "heapsort", "--baseline", "samplesort", "--db", db)
	assert.ErrorIs(t, err, sweep.ErrBaselineNotInPlace)

	_, statErr := os.Stat(stats)
	assert.True(t, os.IsNotExist(statErr), "stats file created for a rejected run")

	s, err := store.Open(context.Background(), db)
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.Runs(context.Background())
	require.NoError(t, err)
	assert.Len(t, runs, 1, "rejected run was registered")

	out, err := execute(t, "report", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "| samplesort | random | 4 |")
}

func TestReportCommand(t *testing.T) {
	dir := t.TempDir()
	stats := filepath.Join(dir, "stats.txt")

	content := "warming up\n" +
		"RESULT algo=samplesort name=random size=1024 iterations=10 time=1e-05 t_generate=0 t_verify=0 correct=1\n" +
		"RESULT algo=stdsort name=random size=1024 iterations=10 time=3e-05 t_generate=0 t_verify=0 correct=1\n"
	require.NoError(t, os.WriteFile(stats, []byte(content), 0o600))

	out, err := execute(t, "report", stats)
	require.NoError(t, err)
	assert.Contains(t, out, "all correct")
	assert.Contains(t, out, "| stdsort | random | 1,024 | 10 | 30.00µs | 3.00x | yes |")
}

func TestReportCommandErrors(t *testing.T) {
	_, err := execute(t, "report")
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	_, err = execute(t, "report", empty)
	assert.ErrorIs(t, err, report.ErrNoResults)

	_, err = execute(t, "report", "--db", filepath.Join(t.TempDir(), "fresh.db"))
	assert.ErrorIs(t, err, report.ErrNoResults)
}

func TestAlgorithmsCommand(t *testing.T) {
	out, err := execute(t, "algorithms")
	require.NoError(t, err)

	for _, name := range harness.KnownAlgorithms() {
		assert.Contains(t, out, name)
	}

	assert.Contains(t, out, "stdsort      in place")
	assert.Contains(t, out, "99.9pcsorted")
}
