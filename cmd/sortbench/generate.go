package main

import (
	"bufio"
	"fmt"
	"strconv"

	"sortbench/internal/dataset"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var generateSeed int64

var generateCmd = &cobra.Command{
	Use:   "generate SIZE SHAPE",
	Short: "Print a generated dataset",
	Long: `Prints a dataset of SIZE integers in one of the shapes random, sorted,
partially_sorted or reverse_sorted, one value per line.`,
	Example: "  sortbench generate 10 reverse_sorted",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid size %q: %w", args[0], err)
		}
		shape, err := dataset.ParseShape(args[1])
		if err != nil {
			return err
		}

		opts := []dataset.Option{dataset.WithMemoryLimit(viper.GetInt64("memory_limit"))}
		if generateSeed != 0 {
			opts = append(opts, dataset.WithSeed(generateSeed))
		}
		data, err := dataset.NewGenerator(opts...).Generate(size, shape)
		if err != nil {
			return err
		}

		w := bufio.NewWriter(cmd.OutOrStdout())
		for _, v := range data {
			w.WriteString(strconv.FormatInt(v, 10))
			w.WriteByte('\n')
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "Random seed (0 seeds from the clock)")
}
