package main

import (
	"fmt"
	"strconv"
	"time"

	"sortbench/internal/db"
	"sortbench/internal/ui"
	"sortbench/internal/utils"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	historyLimit int
	historyRunID string
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored benchmark runs",
	Long: `Lists the runs recorded in the results store, newest first. With --run, prints
the records of a single run. With --json, lists the runs of the JSON history
file written by 'sortbench run --save' instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyJSON {
			return printJSONHistory(cmd)
		}

		store, err := newResultsStore(db.StoreConfig{
			Type:             viper.GetString("store.type"),
			ConnectionString: viper.GetString("store.dsn"),
		})
		if err != nil {
			return fmt.Errorf("failed to open results store: %w", err)
		}
		defer store.Close()

		if historyRunID != "" {
			records, err := store.Records(historyRunID)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("no records for run %s", historyRunID)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Title("Run "+historyRunID))
			fmt.Fprintln(cmd.OutOrStdout(), ui.ResultsTable(records))
			return nil
		}

		runs, err := store.ListRuns(historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted("No runs recorded."))
			return nil
		}

		rows := make([][]string, len(runs))
		for i, r := range runs {
			finished := "-"
			if r.FinishedAt != nil {
				finished = r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond).String()
			}
			rows[i] = []string{
				r.ID,
				r.StartedAt.Local().Format(time.DateTime),
				utils.FormatSince(r.StartedAt),
				finished,
				string(r.Status),
				strconv.Itoa(r.Trials),
				r.Policy,
				r.Plan,
			}
		}
		headers := []string{"Run", "Started", "Age", "Duration", "Status", "Trials", "Policy", "Plan"}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Table(headers, rows, nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to list")
	historyCmd.Flags().StringVar(&historyRunID, "run", "", "Show the records of this run")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "List the JSON history file instead of the results store")
}

func printJSONHistory(cmd *cobra.Command) error {
	path := viper.GetString("history_file")
	history, err := newHistoryStore(path)
	if err != nil {
		return err
	}
	runs, err := history.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Muted("No runs saved in "+path+"."))
		return nil
	}

	// Newest first, like the results store.
	rows := make([][]string, 0, len(runs))
	for i := len(runs) - 1; i >= 0 && len(rows) < historyLimit; i-- {
		r := runs[i]
		failed := 0
		for _, rec := range r.Records {
			if rec.Failed() {
				failed++
			}
		}
		rows = append(rows, []string{
			r.ID,
			r.Timestamp.Local().Format(time.DateTime),
			utils.FormatSince(r.Timestamp),
			r.Commit,
			strconv.Itoa(len(r.Records)),
			strconv.Itoa(failed),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.Table([]string{"Run", "Started", "Age", "Commit", "Records", "Failed"}, rows, nil))
	return nil
}
