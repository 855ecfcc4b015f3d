package main

import (
	"fmt"
	"os"

	"sortbench/internal/profiling"

	"github.com/spf13/cobra"
)

var profileTop int

var profileCmd = &cobra.Command{
	Use:   "profile FILE",
	Short: "Summarise a CPU profile",
	Long: `Prints the functions with the most samples in a pprof CPU profile, such as
the one written by 'sortbench run --cpuprofile FILE'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open profile: %w", err)
		}
		defer f.Close()

		sum, err := profiling.Summarize(f, profileTop)
		if err != nil {
			return err
		}
		return sum.Write(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().IntVarP(&profileTop, "top", "n", 15, "Number of functions to print (0 for all)")
}
