package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"sortbench/internal/benchmark"
	"sortbench/internal/dataset"
	"sortbench/internal/sorting"

	"github.com/spf13/cobra"
)

var sortTime bool

var sortCmd = &cobra.Command{
	Use:   "sort ALGORITHM [N...]",
	Short: "Sort integers with one of the algorithms",
	Long: `Sorts the integers given as arguments, or read from stdin when none are given,
with bubble, merge or quick sort and prints them in ascending order.`,
	Example: `  sortbench sort quick 5 3 9 1
  sortbench generate 1000 random | sortbench sort merge --time`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		alg, err := sorting.ParseAlgorithm(args[0])
		if err != nil {
			return err
		}

		var data dataset.Dataset
		if len(args) > 1 {
			data, err = parseInts(args[1:])
		} else {
			data, err = readInts(cmd.InOrStdin())
		}
		if err != nil {
			return err
		}

		timer := benchmark.NewTimer(dataset.NewGuard(dataset.DefaultMemoryLimit))
		ms, err := timer.TimeOwned(alg, data)
		if err != nil {
			return err
		}

		w := bufio.NewWriter(cmd.OutOrStdout())
		for i, v := range data {
			if i > 0 {
				w.WriteByte(' ')
			}
			w.WriteString(strconv.FormatInt(v, 10))
		}
		w.WriteByte('\n')
		if err := w.Flush(); err != nil {
			return err
		}
		if sortTime {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s sort of %d values: %.4f ms\n", alg, len(data), ms)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sortCmd)
	sortCmd.Flags().BoolVar(&sortTime, "time", false, "Print the elapsed time to stderr")
}

func parseInts(fields []string) (dataset.Dataset, error) {
	data := make(dataset.Dataset, 0, len(fields))
	for _, f := range fields {
		for _, part := range strings.Split(f, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid integer %q: %w", part, err)
			}
			data = append(data, v)
		}
	}
	return data, nil
}

func readInts(r io.Reader) (dataset.Dataset, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	var fields []string
	for scanner.Scan() {
		fields = append(fields, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return parseInts(fields)
}
