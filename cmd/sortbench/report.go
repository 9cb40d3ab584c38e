package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/weiihann/sortbench/harness"
	"github.com/weiihann/sortbench/report"
	"github.com/weiihann/sortbench/store"
)

type reportConfig struct {
	statsPath  string
	dbPath     string
	runID      string
	outputJSON bool
}

func newReportCmd(logger *slog.Logger) *cobra.Command {
	var rc reportConfig

	cmd := &cobra.Command{
		Use:   "report [stats-file]",
		Short: "Summarize recorded results",
		Long: `Render a comparison table from the RESULT lines of a stats file, or from
a run recorded with --db. Without --run the most recent run is reported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				rc.statsPath = args[0]
			}

			return runReport(cmd.Context(), logger, cmd.OutOrStdout(), rc)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&rc.dbPath, "db", "",
		"Read results from this SQLite database instead of a stats file")
	flags.StringVar(&rc.runID, "run", "",
		"Run ID to report (with --db)")
	flags.BoolVar(&rc.outputJSON, "json", false,
		"Output results as JSON instead of table")

	return cmd
}

func runReport(
	ctx context.Context,
	logger *slog.Logger,
	w io.Writer,
	rc reportConfig,
) error {
	var (
		results []harness.Result
		err     error
	)

	switch {
	case rc.dbPath != "":
		results, err = loadRun(ctx, logger, rc.dbPath, rc.runID)
	case rc.statsPath != "":
		results, err = loadStats(rc.statsPath)
	default:
		return errors.New("a stats file or --db is required")
	}

	if err != nil {
		return err
	}

	if rc.outputJSON {
		if err := report.GenerateJSON(w, results); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}

		return nil
	}

	if err := report.Generate(w, results); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	return nil
}

func loadStats(path string) ([]harness.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stats file: %w", err)
	}
	defer f.Close()

	results, err := harness.ParseRecords(f)
	if err != nil {
		return nil, fmt.Errorf("parse stats file %s: %w", path, err)
	}

	return results, nil
}

func loadRun(
	ctx context.Context,
	logger *slog.Logger,
	dbPath, rawID string,
) ([]harness.Result, error) {
	db, err := store.Open(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var id uuid.UUID

	if rawID != "" {
		id, err = uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("parse run id %q: %w", rawID, err)
		}
	} else {
		runs, err := db.Runs(ctx)
		if err != nil {
			return nil, err
		}

		if len(runs) == 0 {
			return nil, report.ErrNoResults
		}

		id = runs[len(runs)-1]
	}

	logger.InfoContext(ctx, "loading run",
		slog.String("db", dbPath),
		slog.String("run_id", id.String()),
	)

	return db.Results(ctx, id)
}
