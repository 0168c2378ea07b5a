package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"crosswarped.com/boggle/internal/config"
	"crosswarped.com/boggle/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "boggle",
	Short: "Find every dictionary word on a boggle board",
	Long: `boggle traces words through adjacent letters of a square board, using each
cell at most once per word. It can solve a board from the command line, scrub
a raw word list into a dictionary, or serve solutions over HTTP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides the config file")
}

// loadConfig reads --config and applies --log-level.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logging.New(level), nil
}
