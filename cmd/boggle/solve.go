package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"crosswarped.com/boggle"
	"crosswarped.com/boggle/internal/app"
	"crosswarped.com/boggle/internal/config"
	"crosswarped.com/boggle/internal/wordlist"
	"crosswarped.com/boggle/internal/wordsource"
)

type solveOptions struct {
	letters     string
	random      bool
	width       int
	words       string
	search      config.Search
	timeout     time.Duration
	profileFile string
	memoryFile  string
	debug       bool
}

var solveCmd = &cobra.Command{
	Use:   "solve [letters...]",
	Short: "Print every dictionary word on a board",
	Long: `Solve reads the board from the arguments, row by row. Whitespace, commas and
slashes between letters are ignored, so "abcd efgh ijkl mnop" and
"abcdefghijklmnop" are the same 4x4 board.`,
	Example: `  boggle solve --words en.txt ABCD EFGH IJKL MNOP
  boggle solve --random --width 5 --prune extend`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts := solveOptions{
			letters: strings.Join(args, " "),
			search:  cfg.Search,
		}
		opts.random, _ = cmd.Flags().GetBool("random")
		opts.width, _ = cmd.Flags().GetInt("width")
		opts.words, _ = cmd.Flags().GetString("words")
		opts.timeout, _ = cmd.Flags().GetDuration("timeout")
		if cmd.Flags().Changed("prune") {
			opts.search.Prune, _ = cmd.Flags().GetString("prune")
		}
		if cmd.Flags().Changed("parallel") {
			opts.search.Parallelism, _ = cmd.Flags().GetInt("parallel")
		}
		if cmd.Flags().Changed("min-length") {
			opts.search.MinLength, _ = cmd.Flags().GetInt("min-length")
		}
		if profile, _ := cmd.Flags().GetBool("profile"); profile {
			opts.profileFile, _ = cmd.Flags().GetString("profile-file")
			opts.memoryFile, _ = cmd.Flags().GetString("memory-profile-file")
		}
		opts.debug, _ = cmd.Flags().GetBool("debug")

		if !opts.random && opts.letters == "" {
			return fmt.Errorf("solve: give the board letters or --random")
		}

		ctx := cmd.Context()
		var src wordsource.Source
		if opts.words != "" {
			src = &wordsource.File{
				Path:   opts.words,
				Filter: wordlist.Filter{MinLength: cfg.Lexicon.MinLength, MaxLength: cfg.Lexicon.MaxLength},
			}
		} else {
			if src, err = wordsource.Open(cfg.Lexicon); err != nil {
				return err
			}
			if c, ok := src.(io.Closer); ok {
				defer c.Close()
			}
		}

		return runSolve(ctx, cmd.OutOrStdout(), logger, src, opts)
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().String("words", "", "Scrubbed word file, one word per line (default: the configured lexicon source)")
	solveCmd.Flags().Bool("random", false, "Solve a random board instead of the given letters")
	solveCmd.Flags().Int("width", 4, "Width of the random board")
	solveCmd.Flags().String("prune", "strict", "Prune rule: strict stops at prefixes with a single completion, extend finds every word")
	solveCmd.Flags().Int("parallel", 1, "Number of workers searching start cells")
	solveCmd.Flags().Int("min-length", 0, "Drop words shorter than this")
	solveCmd.Flags().Duration("timeout", time.Minute, "Abandon the search after this long")
	solveCmd.Flags().Bool("profile", false, "Write a CPU profile of the search")
	solveCmd.Flags().String("profile-file", "cpu.pprof", "The file to write the CPU profile to")
	solveCmd.Flags().String("memory-profile-file", "mem.pprof", "The file to write the memory profile to")
	solveCmd.Flags().Bool("debug", false, "Print the internal board layout before the words")
}

func runSolve(ctx context.Context, out io.Writer, logger *slog.Logger, src wordsource.Source, opts solveOptions) error {
	var (
		grid *boggle.Grid
		err  error
	)
	if opts.random {
		now := time.Now()
		grid, err = boggle.RandomGrid(opts.width, rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(now.Nanosecond()))))
	} else {
		grid, err = boggle.ParseGrid(opts.letters)
	}
	if err != nil {
		return err
	}

	lex, err := wordsource.LoadLexicon(ctx, src, logger)
	if err != nil {
		return err
	}

	solverOpts, err := app.SolverOptions(opts.search)
	if err != nil {
		return err
	}

	if opts.profileFile != "" {
		f, err := os.Create(opts.profileFile)
		if err != nil {
			return fmt.Errorf("creating profile file: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("starting CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}
	if opts.memoryFile != "" {
		mf, err := os.Create(opts.memoryFile)
		if err != nil {
			return fmt.Errorf("creating memory profile file: %w", err)
		}
		defer mf.Close()
		defer pprof.WriteHeapProfile(mf)
	}

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := boggle.NewSolver(grid, lex, solverOpts...).Solve(ctx)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}
	logger.Debug("search finished", "paths", res.Paths, "duration", time.Since(start))

	fmt.Fprintln(out, grid.Repr())
	if opts.debug {
		fmt.Fprintln(out, grid.DebugString())
	}
	fmt.Fprintln(out, "--------------------------------")
	for _, w := range res.Words {
		fmt.Fprintln(out, w)
	}
	fmt.Fprintln(out, "--------------------------------")
	fmt.Fprintf(out, "Found %d words\n", len(res.Words))
	return nil
}
