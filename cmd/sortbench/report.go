package main

import (
	"fmt"
	"os"
	"path/filepath"

	"sortbench/internal/benchmark"
	"sortbench/internal/ui"

	"github.com/spf13/cobra"
)

var (
	reportMarkdown bool
	reportRaw      bool
	reportWidth    int
)

var reportCmd = &cobra.Command{
	Use:   "report FILE",
	Short: "Render a CSV results file",
	Long: `Reads a results file written by 'sortbench run' (with or without the Status
column) and renders it as a table, or as a Markdown report with --markdown.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open results file: %w", err)
		}
		defer f.Close()

		records, err := benchmark.ReadCSV(f)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		if !reportMarkdown {
			fmt.Fprintln(cmd.OutOrStdout(), ui.ResultsTable(records))
			return nil
		}

		md := ui.MarkdownReport("Sort benchmark: "+filepath.Base(args[0]), records)
		if reportRaw {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderMarkdown(md, reportWidth))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().BoolVar(&reportMarkdown, "markdown", false, "Render a Markdown report")
	reportCmd.Flags().BoolVar(&reportRaw, "raw", false, "With --markdown, print the Markdown source")
	reportCmd.Flags().IntVar(&reportWidth, "width", 100, "Word-wrap width of the rendered report")
}
