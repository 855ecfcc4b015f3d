package main

import (
	"fmt"

	"sortbench/internal/benchmark"
	"sortbench/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	compareThreshold  float64
	compareFailOnRegr bool
)

var compareCmd = &cobra.Command{
	Use:   "compare [PREV_ID CURR_ID]",
	Short: "Compare two saved runs",
	Long: `Compares the per-algorithm means of two runs from the JSON history file.
By default the newest run is compared with the newest earlier run of the same
plan. Only configurations that succeeded in both runs are compared. Changes
slower than --threshold percent are flagged.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("accepts 0 or 2 run IDs, received %d", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := newHistoryStore(viper.GetString("history_file"))
		if err != nil {
			return err
		}
		prev, curr, err := selectRuns(history, args)
		if err != nil {
			return err
		}

		comps := benchmark.Compare(prev, curr)
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", runLabel(prev), runLabel(curr))
		if prev.Plan != curr.Plan {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted(fmt.Sprintf("Plans differ: %q vs %q", prev.Plan, curr.Plan)))
		}
		if len(comps) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted("No configurations in common."))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.ComparisonTable(comps, compareThreshold))

		regressions := 0
		for _, c := range comps {
			if c.Regressed(compareThreshold) {
				regressions++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d measurements slower by more than %.1f%%\n",
			regressions, len(comps), compareThreshold)
		if compareFailOnRegr && regressions > 0 {
			return fmt.Errorf("%d regressions above %.1f%%", regressions, compareThreshold)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().Float64Var(&compareThreshold, "threshold", 10.0, "Percentage threshold for regression warning")
	compareCmd.Flags().BoolVar(&compareFailOnRegr, "fail-on-regression", false, "Exit non-zero when a regression is found")
}

func selectRuns(history benchmark.History, ids []string) (benchmark.Run, benchmark.Run, error) {
	if len(ids) == 0 {
		return history.LatestPair()
	}
	prev, err := history.Get(ids[0])
	if err != nil {
		return benchmark.Run{}, benchmark.Run{}, err
	}
	curr, err := history.Get(ids[1])
	if err != nil {
		return benchmark.Run{}, benchmark.Run{}, err
	}
	return prev, curr, nil
}

func runLabel(r benchmark.Run) string {
	label := r.ID
	if r.Commit != "" {
		label += " (" + r.Commit + ")"
	}
	return label
}
