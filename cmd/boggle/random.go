package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"crosswarped.com/boggle"
)

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Print a random board",
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetInt("width")
		seed, _ := cmd.Flags().GetUint64("seed")
		if !cmd.Flags().Changed("seed") {
			seed = uint64(time.Now().UnixNano())
		}

		grid, err := boggle.RandomGrid(width, rand.New(rand.NewPCG(seed, seed>>1)))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), grid.Repr())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(randomCmd)
	randomCmd.Flags().Int("width", 4, "The width of the board")
	randomCmd.Flags().Uint64("seed", 0, "Random seed (default: current time)")
}
