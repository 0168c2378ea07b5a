// Package wordsource fetches dictionary words from the places a deployment
// keeps them: a scrubbed text file, a BigQuery table, or a Redis set.
package wordsource

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	backend "github.com/redis/go-redis/v9"

	"crosswarped.com/boggle/internal/config"
	"crosswarped.com/boggle/internal/wordlist"
	"crosswarped.com/boggle/pkg/lexicon"
)

// Source yields the words of a dictionary.
type Source interface {
	Words(ctx context.Context) ([]string, error)
}

// Open builds the Source selected by cfg.Source.
func Open(cfg config.Lexicon) (Source, error) {
	filter := wordlist.Filter{MinLength: cfg.MinLength, MaxLength: cfg.MaxLength}

	switch cfg.Source {
	case config.SourceFile:
		return &File{Path: cfg.Path, Filter: filter}, nil
	case config.SourceBigQuery:
		return &BigQuery{
			Project:  cfg.BigQuery.Project,
			Query:    cfg.BigQuery.Query,
			Location: cfg.BigQuery.Location,
			Filter:   filter,
		}, nil
	case config.SourceRedis:
		client := backend.NewClient(&backend.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return &Redis{Client: client, Key: cfg.Redis.Key, Filter: filter}, nil
	default:
		return nil, fmt.Errorf("wordsource: unknown source %q", cfg.Source)
	}
}

// LoadLexicon reads every word from src into a Lexicon.
func LoadLexicon(ctx context.Context, src Source, logger *slog.Logger) (*lexicon.Lexicon, error) {
	start := time.Now()
	words, err := src.Words(ctx)
	if err != nil {
		return nil, fmt.Errorf("wordsource: %w", err)
	}
	lex := lexicon.FromWords(words)
	logger.Info("lexicon loaded",
		"source", fmt.Sprintf("%T", src),
		"words", lex.Len(),
		"duration", time.Since(start),
	)
	return lex, nil
}
