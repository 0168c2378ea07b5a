package boggle

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"crosswarped.com/boggle/pkg/lexicon"
	"crosswarped.com/boggle/pkg/primitives"
)

// PruneRule decides whether a search keeps descending past a candidate.
type PruneRule int

const (
	// PruneStrict continues only while more than one dictionary word starts
	// with the candidate (counting the candidate itself). A prefix with a
	// single completion is abandoned, so that completion is never found.
	PruneStrict PruneRule = iota

	// PruneExtend continues while any longer dictionary word starts with the
	// candidate. This finds every word on the board.
	PruneExtend
)

func (p PruneRule) String() string {
	switch p {
	case PruneStrict:
		return "strict"
	case PruneExtend:
		return "extend"
	default:
		return fmt.Sprintf("PruneRule(%d)", int(p))
	}
}

// ParsePruneRule maps "strict" or "extend" to a PruneRule.
func ParsePruneRule(s string) (PruneRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return PruneStrict, nil
	case "extend":
		return PruneExtend, nil
	default:
		return 0, fmt.Errorf("unknown prune rule %q", s)
	}
}

// Solver finds the dictionary words on a board.
//
// A Solver has no mutable state: every call allocates its own visited set and
// match set, so one Solver may be used from many goroutines.
type Solver struct {
	grid *Grid
	lex  *lexicon.Lexicon

	prune       PruneRule
	parallelism int
	minLength   int
}

type Option func(*Solver)

// WithPruneRule selects how aggressively the search abandons prefixes.
func WithPruneRule(rule PruneRule) Option {
	return func(s *Solver) {
		s.prune = rule
	}
}

// WithParallelism spreads start cells across n workers. n <= 1 searches on
// the calling goroutine.
func WithParallelism(n int) Option {
	return func(s *Solver) {
		s.parallelism = n
	}
}

// WithMinLength drops matches shorter than n letters.
func WithMinLength(n int) Option {
	return func(s *Solver) {
		s.minLength = n
	}
}

func NewSolver(grid *Grid, lex *lexicon.Lexicon, opts ...Option) *Solver {
	s := &Solver{
		grid:        grid,
		lex:         lex,
		prune:       PruneStrict,
		parallelism: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is the outcome of one search.
type Result struct {
	// Words are the distinct matches, longest first.
	Words []string

	// Paths is the number of path prefixes the search looked up.
	Paths int
}

// FindWords returns every distinct dictionary word on the board, longest
// first.
func (s *Solver) FindWords() []string {
	res, _ := s.Solve(context.Background())
	return res.Words
}

// Solve runs the search. The context is checked between start cells; if it is
// cancelled the partial result is discarded and ctx.Err() returned.
func (s *Solver) Solve(ctx context.Context) (Result, error) {
	nodes := s.grid.Nodes()

	if s.parallelism <= 1 {
		w := s.newWalk()
		for _, n := range nodes {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			w.visit(n, "")
		}
		return s.result(w.matches, w.paths), nil
	}

	var (
		mu      sync.Mutex
		matches = make(map[string]struct{})
		paths   int
	)
	starts := make(chan Cell)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(starts)
		for _, n := range nodes {
			select {
			case starts <- n:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for range min(s.parallelism, len(nodes)) {
		g.Go(func() error {
			w := s.newWalk()
			for n := range starts {
				if err := gctx.Err(); err != nil {
					return err
				}
				w.visit(n, "")
			}

			mu.Lock()
			defer mu.Unlock()
			for m := range w.matches {
				matches[m] = struct{}{}
			}
			paths += w.paths
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return s.result(matches, paths), nil
}

func (s *Solver) result(matches map[string]struct{}, paths int) Result {
	words := make([]string, 0, len(matches))
	for m := range matches {
		if len(m) < s.minLength {
			continue
		}
		words = append(words, m)
	}
	slices.SortFunc(words, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return Result{Words: words, Paths: paths}
}

// walk is the state private to one goroutine's traversal.
type walk struct {
	s       *Solver
	visited *primitives.CellSet
	matches map[string]struct{}
	paths   int
}

func (s *Solver) newWalk() *walk {
	return &walk{
		s:       s,
		visited: s.grid.NewCellSet(),
		matches: make(map[string]struct{}),
	}
}

func (w *walk) canContinue(candidate string) bool {
	if w.s.prune == PruneExtend {
		return w.s.lex.CanExtend(candidate)
	}
	return w.s.lex.ContainsPrefix(candidate)
}

// visit extends prefix with cell's letter, records the candidate if it is a
// word, and descends into unvisited neighbors while the prune rule allows.
// The visited set is restored before returning.
func (w *walk) visit(cell Cell, prefix string) {
	candidate := prefix + string(cell.Letter)
	w.paths++

	if w.s.lex.ContainsWord(candidate) {
		w.matches[candidate] = struct{}{}
	}
	if !w.canContinue(candidate) {
		return
	}

	if err := w.visited.Add(int(cell.ID)); err != nil {
		panic(fmt.Sprintf("boggle: visited set too small for cell %d: %v", cell.ID, err))
	}
	for _, n := range w.s.grid.Neighbors(cell.ID, w.visited) {
		w.visit(n, candidate)
	}
	w.visited.Remove(int(cell.ID))
}
