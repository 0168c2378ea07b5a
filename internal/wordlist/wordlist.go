// Package wordlist filters raw word corpora down to entries a board can hold
// and loads the filtered files.
package wordlist

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

var asciiLetters = regexp.MustCompile(`^[a-zA-Z]+$`)

// Filter decides which raw words are kept.
type Filter struct {
	MinLength int
	MaxLength int
	Excluded  map[string]bool
}

// DefaultFilter keeps words of 3 to 16 ASCII letters.
func DefaultFilter() Filter {
	return Filter{MinLength: 3, MaxLength: 16}
}

// Exclude returns a copy of f that also rejects words.
func (f Filter) Exclude(words ...string) Filter {
	excluded := make(map[string]bool, len(f.Excluded)+len(words))
	for w := range f.Excluded {
		excluded[w] = true
	}
	for _, w := range words {
		excluded[strings.ToLower(strings.TrimSpace(w))] = true
	}
	f.Excluded = excluded
	return f
}

// Accept trims raw and reports whether it is kept, returning the lower case
// form.
func (f Filter) Accept(raw string) (string, bool) {
	word := strings.TrimSpace(raw)
	if len(word) < f.MinLength || (f.MaxLength > 0 && len(word) > f.MaxLength) {
		return "", false
	}
	if !asciiLetters.MatchString(word) {
		return "", false
	}
	word = strings.ToLower(word)
	if f.Excluded[word] {
		return "", false
	}
	return word, true
}

// Stats summarizes a Scrub run.
type Stats struct {
	Read    int
	Written int
}

// Scrub copies the words of r accepted by f to w, one per line.
func Scrub(ctx context.Context, r io.Reader, w io.Writer, f Filter) (Stats, error) {
	var stats Stats
	out := bufio.NewWriter(w)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Read++
		word, ok := f.Accept(scanner.Text())
		if !ok {
			continue
		}
		if _, err := fmt.Fprintln(out, word); err != nil {
			return stats, fmt.Errorf("wordlist: writing: %w", err)
		}
		stats.Written++
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("wordlist: reading: %w", err)
	}
	if err := out.Flush(); err != nil {
		return stats, fmt.Errorf("wordlist: writing: %w", err)
	}
	return stats, nil
}

// ScrubFile is Scrub over named files.
func ScrubFile(ctx context.Context, inPath, outPath string, f Filter) (Stats, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return Stats{}, err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return Stats{}, err
	}

	stats, err := Scrub(ctx, in, out, f)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = cerr
	}
	return stats, err
}

// Load returns the accepted words of a file. Lines starting with '#' are
// comments.
func Load(ctx context.Context, path string, f Filter) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(ctx, file, f)
}

// Read is Load over an open reader.
func Read(ctx context.Context, r io.Reader, f Filter) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		if word, ok := f.Accept(line); ok {
			words = append(words, word)
		}
	}
	return words, scanner.Err()
}
