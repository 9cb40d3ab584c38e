package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weiihann/sortbench/harness"
	"github.com/weiihann/sortbench/workload"
)

func newAlgorithmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List available algorithms and distributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()

			fmt.Fprintln(w, "Algorithms:")
			for _, name := range harness.KnownAlgorithms() {
				alg, err := harness.Resolve[int32](name)
				if err != nil {
					return err
				}

				mode := "out of place"
				if alg.InPlace {
					mode = "in place"
				}

				fmt.Fprintf(w, "  %-12s %s\n", name, mode)
			}

			fmt.Fprintln(w)
			fmt.Fprintln(w, "Distributions:")
			for _, name := range workload.DefaultNames() {
				fmt.Fprintf(w, "  %s\n", name)
			}
			fmt.Fprintf(w, "  %s\n", workload.CorpusName+" (corpus argument)")

			return nil
		},
	}
}
