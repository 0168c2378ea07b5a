package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswarped.com/boggle/internal/config"
	"crosswarped.com/boggle/internal/logging"
	"crosswarped.com/boggle/internal/wordlist"
	"crosswarped.com/boggle/internal/wordsource"
)

func wordFile(t *testing.T, words ...string) *wordsource.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(words, "\n")+"\n"), 0o644))
	return &wordsource.File{Path: path, Filter: wordlist.DefaultFilter()}
}

func TestRunSolve(t *testing.T) {
	src := wordFile(t, "fab", "fabe", "abe")

	tests := []struct {
		name  string
		prune string
		want  []string
	}{
		{name: "strict", prune: "strict", want: []string{"fabe", "fab"}},
		{name: "extend", prune: "extend", want: []string{"fabe", "abe", "fab"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := solveOptions{
				letters: "abcd efgh ijkl mnop",
				search:  config.Search{Prune: tt.prune, Parallelism: 2},
				timeout: time.Minute,
			}
			var out bytes.Buffer
			require.NoError(t, runSolve(t.Context(), &out, logging.NewNop(), src, opts))

			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			assert.Equal(t, []string{"ABCD", "EFGH", "IJKL", "MNOP"}, lines[:4])
			assert.Equal(t, tt.want, lines[5:5+len(tt.want)])
			assert.Equal(t, fmt.Sprintf("Found %d words", len(tt.want)), lines[len(lines)-1])
		})
	}
}

func TestRunSolve_Random(t *testing.T) {
	opts := solveOptions{random: true, width: 3, search: config.Search{Prune: "strict", Parallelism: 1}}
	var out bytes.Buffer
	require.NoError(t, runSolve(t.Context(), &out, logging.NewNop(), wordFile(t, "cat"), opts))

	lines := strings.Split(out.String(), "\n")
	for _, row := range lines[:3] {
		assert.Len(t, row, 3)
	}
}

func TestRunSolve_Errors(t *testing.T) {
	src := wordFile(t, "cat")
	search := config.Search{Prune: "strict", Parallelism: 1}

	var out bytes.Buffer
	err := runSolve(t.Context(), &out, logging.NewNop(), src, solveOptions{letters: "abc", search: search})
	assert.Error(t, err, "three letters do not make a square")

	err = runSolve(t.Context(), &out, logging.NewNop(), src, solveOptions{letters: "abcd", search: config.Search{Prune: "sometimes"}})
	assert.Error(t, err)

	missing := &wordsource.File{Path: filepath.Join(t.TempDir(), "missing.txt")}
	err = runSolve(t.Context(), &out, logging.NewNop(), missing, solveOptions{letters: "abcd", search: search})
	assert.Error(t, err)
	assert.Empty(t, out.String())
}

func TestScrubCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "raw.txt")
	out := filepath.Join(dir, "en.txt")
	exclude := filepath.Join(dir, "exclude.txt")
	require.NoError(t, os.WriteFile(in, []byte("Cat\nox\ndon't\nbanana\nrude\n"), 0o644))
	require.NoError(t, os.WriteFile(exclude, []byte("rude\n"), 0o644))

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"scrub", in, out, "--exclude", exclude})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "cat\nbanana\n", string(data))
	assert.Contains(t, stdout.String(), "Wrote 2 of 5 words")
}
