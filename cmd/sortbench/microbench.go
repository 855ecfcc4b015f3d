package main

import (
	"fmt"
	"strconv"

	"sortbench/internal/benchmark"
	"sortbench/internal/ui"

	"github.com/spf13/cobra"
)

var microbenchPackage string

var newMicroRunner = func() benchmark.Runner { return benchmark.NewGoRunner() }

var microbenchCmd = &cobra.Command{
	Use:   "microbench [PATTERN]",
	Short: "Run the Go testing benchmarks of the sort implementations",
	Long: `Executes 'go test -bench' for the sorting package and prints one row per
sub-benchmark (algorithm/shape/size). Use it to cross-check the wall-clock sweep
against the testing package's own measurements. Requires the Go toolchain and
the module sources.`,
	Example: "  sortbench microbench 'Sort/quick/.*'",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := "."
		if len(args) == 1 {
			pattern = args[0]
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Running benchmarks for %s\n", microbenchPackage)
		results, err := newMicroRunner().Run(cmd.Context(), microbenchPackage, pattern)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted("No benchmarks found."))
			return nil
		}

		rows := make([][]string, len(results))
		for i, r := range results {
			rows[i] = []string{
				r.Name,
				strconv.FormatInt(r.Iterations, 10),
				strconv.FormatFloat(r.MsPerOp(), 'f', 4, 64),
				strconv.FormatInt(r.BytesPerOp, 10),
				strconv.FormatInt(r.AllocsPerOp, 10),
			}
		}
		headers := []string{"Benchmark", "Iterations", "ms/op", "B/op", "allocs/op"}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Table(headers, rows, nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(microbenchCmd)
	microbenchCmd.Flags().StringVar(&microbenchPackage, "package", "./internal/sorting", "Package containing the benchmarks")
}
