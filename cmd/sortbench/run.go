package main

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/weiihann/sortbench/harness"
	"github.com/weiihann/sortbench/metrics"
	"github.com/weiihann/sortbench/store"
	"github.com/weiihann/sortbench/sweep"
	"github.com/weiihann/sortbench/workload"
)

const (
	defaultStatsFile = "stats.txt"
	noStatsFile      = "-"
)

type runConfig struct {
	sweep       sweep.Config
	statsPath   string
	corpusPath  string
	dbPath      string
	metricsPath string
}

func newRunCmd(logger *slog.Logger) *cobra.Command {
	var (
		configPath    string
		minExp        int
		maxExp        int
		distributions []string
		candidate     string
		baseline      string
		dbPath        string
		metricsPath   string
	)

	cmd := &cobra.Command{
		Use:   "run [iterations] [stats-file] [corpus]",
		Short: "Run the benchmark sweep",
		Long: `Run the candidate and baseline over every configured distribution and
size. Results go to stdout and are appended to the stats file (default
stats.txt, "-" for none). A corpus file adds a string sweep over its non-empty
lines.`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sweep.LoadConfig(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("min-exp") {
				cfg.MinExponent = minExp
			}
			if flags.Changed("max-exp") {
				cfg.MaxExponent = maxExp
			}
			if flags.Changed("distributions") {
				cfg.Distributions = distributions
			}
			if flags.Changed("candidate") {
				cfg.Candidate = candidate
			}
			if flags.Changed("baseline") {
				cfg.Baseline = baseline
			}

			rc := runConfig{
				statsPath:   defaultStatsFile,
				dbPath:      dbPath,
				metricsPath: metricsPath,
			}

			if len(args) > 0 {
				cfg.Iterations, err = strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("parse iterations %q: %w", args[0], err)
				}
			}
			if len(args) > 1 {
				rc.statsPath = args[1]
			}
			if len(args) > 2 {
				rc.corpusPath = args[2]
			}

			rc.sweep = cfg

			return runBenchmark(cmd.Context(), logger, cmd.OutOrStdout(), rc)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "",
		"YAML sweep configuration file")
	flags.IntVar(&minExp, "min-exp", 0,
		"Smallest size exponent (sizes are 2^e)")
	flags.IntVar(&maxExp, "max-exp", 0,
		"Exclusive upper size exponent")
	flags.StringSliceVar(&distributions, "distributions", nil,
		"Distributions to sweep (e.g. random,90pcsorted,nearly-sorted:50)")
	flags.StringVar(&candidate, "candidate", "",
		"Algorithm under test")
	flags.StringVar(&baseline, "baseline", "",
		"In-place reference algorithm")
	flags.StringVar(&dbPath, "db", "",
		"SQLite database to record results in")
	flags.StringVar(&metricsPath, "metrics-file", "",
		"Write Prometheus metrics to this file at the end of the run")

	return cmd
}

func runBenchmark(
	ctx context.Context,
	logger *slog.Logger,
	stdout io.Writer,
	rc runConfig,
) error {
	if err := rc.sweep.Validate(); err != nil {
		return err
	}

	gens, err := workload.ParseAll[int32](rc.sweep.Distributions)
	if err != nil {
		return err
	}

	var corpus *workload.Corpus[string]
	if rc.corpusPath != "" {
		corpus, err = workload.LoadCorpus(rc.corpusPath)
		if err != nil {
			return err
		}

		logger.InfoContext(ctx, "corpus loaded",
			slog.String("path", rc.corpusPath),
			slog.Int("lines", corpus.Len()),
		)
	}

	if err := checkAlgorithms(rc.sweep); err != nil {
		return err
	}

	runID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate run id: %w", err)
	}

	logger = logger.With(slog.String("run_id", runID.String()))

	out := stdout

	if rc.statsPath != noStatsFile {
		f, err := os.OpenFile(rc.statsPath,
			os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open stats file: %w", err)
		}
		defer f.Close()

		out = io.MultiWriter(stdout, f)
	}

	sinks := []sweep.Sink{sweep.NewLineSink(out)}

	if rc.dbPath != "" {
		db, err := store.Open(ctx, rc.dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		run, err := db.StartRun(ctx, runID)
		if err != nil {
			return err
		}

		sinks = append(sinks, run)
	}

	var recorder *metrics.Recorder
	if rc.metricsPath != "" {
		recorder = metrics.NewRecorder()
		sinks = append(sinks, recorder)
	}

	logger.InfoContext(ctx, "starting benchmark",
		slog.String("candidate", rc.sweep.Candidate),
		slog.String("baseline", rc.sweep.Baseline),
		slog.Int("iterations", rc.sweep.Iterations),
		slog.Int("min_exponent", rc.sweep.MinExponent),
		slog.Int("max_exponent", rc.sweep.MaxExponent),
		slog.Any("distributions", rc.sweep.Distributions),
		slog.String("stats_file", rc.statsPath),
	)

	results, err := runSweep(ctx, logger, stdout, rc.sweep, gens, sinks)
	if err != nil {
		return err
	}

	if corpus != nil {
		more, err := runSweep(ctx, logger, stdout, rc.sweep,
			[]workload.Generator[string]{corpus}, sinks)
		if err != nil {
			return err
		}

		results = append(results, more...)
	}

	if recorder != nil {
		if err := recorder.WriteFile(rc.metricsPath); err != nil {
			return err
		}
	}

	var incorrect int
	for _, r := range results {
		if !r.Correct {
			incorrect++
		}
	}

	logger.InfoContext(ctx, "benchmark complete",
		slog.Int("records", len(results)),
		slog.Int("incorrect", incorrect),
	)

	return nil
}

// checkAlgorithms resolves the configured pair so a bad pairing fails
// before the stats file or the store is touched.
func checkAlgorithms(cfg sweep.Config) error {
	candidate, err := harness.Resolve[int32](cfg.Candidate)
	if err != nil {
		return err
	}

	baseline, err := harness.Resolve[int32](cfg.Baseline)
	if err != nil {
		return err
	}

	return sweep.CheckAlgorithms(candidate, baseline)
}

func runSweep[T cmp.Ordered](
	ctx context.Context,
	logger *slog.Logger,
	progressOut io.Writer,
	cfg sweep.Config,
	gens []workload.Generator[T],
	sinks []sweep.Sink,
) ([]harness.Result, error) {
	candidate, err := harness.Resolve[T](cfg.Candidate)
	if err != nil {
		return nil, err
	}

	baseline, err := harness.Resolve[T](cfg.Baseline)
	if err != nil {
		return nil, err
	}

	runner := harness.NewRunner[T](harness.NewStopwatch(), progressOut, logger)

	s, err := sweep.New(cfg, candidate, baseline, runner, logger, sinks...)
	if err != nil {
		return nil, err
	}

	return s.Run(ctx, gens)
}
