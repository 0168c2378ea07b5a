// Package app wires configuration, the word source and the HTTP handler
// together for the server binaries.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"crosswarped.com/boggle"
	"crosswarped.com/boggle/internal/config"
	"crosswarped.com/boggle/internal/metrics"
	"crosswarped.com/boggle/internal/server"
	"crosswarped.com/boggle/internal/wordsource"
	"crosswarped.com/boggle/pkg/lexicon"
)

// reloadQuiet is how long a watched word file must stay unchanged before it
// is reloaded.
const reloadQuiet = 500 * time.Millisecond

// SolverOptions translates the search section of cfg.
func SolverOptions(cfg config.Search) ([]boggle.Option, error) {
	rule, err := boggle.ParsePruneRule(cfg.Prune)
	if err != nil {
		return nil, err
	}
	return []boggle.Option{
		boggle.WithPruneRule(rule),
		boggle.WithParallelism(cfg.Parallelism),
		boggle.WithMinLength(cfg.MinLength),
	}, nil
}

type App struct {
	Handler http.Handler

	cfg    config.Config
	logger *slog.Logger
	src    wordsource.Source
	store  *server.Store
}

// New loads the configured lexicon and builds the solve handler. reg receives
// the solve metrics and is served on /metrics.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, reg *prometheus.Registry) (*App, error) {
	opts, err := SolverOptions(cfg.Search)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	src, err := wordsource.Open(cfg.Lexicon)
	if err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, logger: logger, src: src}

	lex, err := a.load(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.store = server.NewStore(lex)
	a.Handler = server.NewHandler(a.store,
		server.WithLogger(logger),
		server.WithMetrics(metrics.NewSolve(reg), reg),
		server.WithMaxWidth(cfg.Server.MaxWidth),
		server.WithSolverOptions(opts...),
	)
	return a, nil
}

// Reload reads the word source again and swaps the new lexicon in. On error
// the current lexicon keeps serving.
func (a *App) Reload(ctx context.Context) error {
	lex, err := a.load(ctx)
	if err != nil {
		return err
	}
	old := a.store.Replace(lex)
	a.logger.Info("lexicon reloaded", "words", lex.Len(), "previous", old.Len())
	return nil
}

// Watch reloads the lexicon whenever the word files change, until ctx is
// done. It returns immediately unless the file source has watching enabled.
func (a *App) Watch(ctx context.Context) error {
	file, ok := a.src.(*wordsource.File)
	if !ok || !a.cfg.Lexicon.Watch {
		return nil
	}
	a.logger.Info("watching word files", "path", file.Path)
	return file.Watch(ctx, reloadQuiet, func() {
		if err := a.Reload(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Error("lexicon reload failed", "error", err)
		}
	})
}

// Close releases the word source.
func (a *App) Close() error {
	if c, ok := a.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (a *App) load(ctx context.Context) (*lexicon.Lexicon, error) {
	lex, err := wordsource.LoadLexicon(ctx, a.src, a.logger)
	if err != nil {
		return nil, err
	}
	if lex.Len() == 0 {
		a.logger.Warn("lexicon is empty; every board will solve to no words", "source", a.cfg.Lexicon.Source)
	}
	return lex, nil
}
