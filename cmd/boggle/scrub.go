package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crosswarped.com/boggle/internal/wordlist"
)

var scrubCmd = &cobra.Command{
	Use:   "scrub <input> <output>",
	Short: "Filter a raw word list into a dictionary",
	Long: `Scrub keeps words of ASCII letters within the length bounds, lower-cases
them, and writes one per line. Words listed in --exclude files are dropped.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		minLength, _ := cmd.Flags().GetInt("min-length")
		maxLength, _ := cmd.Flags().GetInt("max-length")
		excludeFiles, _ := cmd.Flags().GetStringSlice("exclude")

		filter := wordlist.Filter{MinLength: minLength, MaxLength: maxLength}
		for _, path := range excludeFiles {
			excluded, err := wordlist.Load(cmd.Context(), path, wordlist.Filter{})
			if err != nil {
				return fmt.Errorf("loading excluded words: %w", err)
			}
			filter = filter.Exclude(excluded...)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Scrubbing file %s and writing to %s\n", args[0], args[1])
		stats, err := wordlist.ScrubFile(cmd.Context(), args[0], args[1], filter)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %d of %d words to %s\n", stats.Written, stats.Read, args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scrubCmd)
	scrubCmd.Flags().Int("min-length", 3, "The minimum word length")
	scrubCmd.Flags().Int("max-length", 16, "The maximum word length")
	scrubCmd.Flags().StringSlice("exclude", nil, "Files of words to leave out")
}
