// Package main provides the CLI entry point for sortbench, a
// microbenchmark harness for sorting algorithms.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	root := newRootCmd(logger, level)
	if err := root.Execute(); err != nil {
		logger.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "sortbench",
		Short: "Sorting algorithm microbenchmark harness",
		Long: `Sortbench times a candidate sorting algorithm against a baseline over
a sweep of input distributions and power-of-two sizes, verifies the candidate's
output against the baseline's, and emits one RESULT line per algorithm per case.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				level.Set(slog.LevelDebug)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	root.AddCommand(
		newRunCmd(logger),
		newReportCmd(logger),
		newAlgorithmsCmd(),
	)

	return root
}
