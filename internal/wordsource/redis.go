package wordsource

import (
	"context"
	"fmt"
	"slices"

	backend "github.com/redis/go-redis/v9"

	"crosswarped.com/boggle/internal/wordlist"
)

// seedBatch bounds the members sent in one SADD.
const seedBatch = 1000

// Redis reads the members of a set.
type Redis struct {
	Client *backend.Client
	Key    string
	Filter wordlist.Filter
}

func (r *Redis) Words(ctx context.Context) ([]string, error) {
	members, err := r.Client.SMembers(ctx, r.Key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers %s: %w", r.Key, err)
	}

	words := make([]string, 0, len(members))
	for _, m := range members {
		if word, ok := r.Filter.Accept(m); ok {
			words = append(words, word)
		}
	}
	// Set order is arbitrary; keep loads reproducible.
	slices.Sort(words)
	return words, nil
}

// Seed adds words to the set.
func (r *Redis) Seed(ctx context.Context, words []string) error {
	pipe := r.Client.Pipeline()
	for batch := range slices.Chunk(words, seedBatch) {
		members := make([]any, len(batch))
		for i, w := range batch {
			members[i] = w
		}
		pipe.SAdd(ctx, r.Key, members...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis sadd %s: %w", r.Key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.Client.Close()
}
