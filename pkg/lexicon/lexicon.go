// Package lexicon holds the dictionary a board is searched against.
//
// Words are stored in a trie whose nodes count the distinct words beneath
// them, so both exact-word and prefix queries walk at most len(s) nodes.
// Entries are expected to be filtered upstream (3 to 16 lowercase ASCII
// letters); the lexicon lower-cases and trims them but does not reject
// anything other than blank lines.
package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type node struct {
	children map[byte]*node
	terminal bool

	// count is the number of distinct words at or below this node.
	count int
}

func newNode() *node {
	return &node{children: make(map[byte]*node)}
}

// Lexicon is an immutable prefix-indexed word list. It is safe for concurrent
// use once constructed.
type Lexicon struct {
	root *node
}

// New reads newline separated words from r.
func New(r io.Reader) (*Lexicon, error) {
	l := &Lexicon{root: newNode()}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		l.insert(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("lexicon: reading words: %w", err)
	}
	return l, nil
}

// FromWords builds a lexicon from an in-memory word list.
func FromWords(words []string) *Lexicon {
	l := &Lexicon{root: newNode()}
	for _, w := range words {
		l.insert(w)
	}
	return l
}

func (l *Lexicon) insert(raw string) {
	word := strings.ToLower(strings.TrimSpace(raw))
	if word == "" {
		return
	}
	if l.ContainsWord(word) {
		return
	}

	n := l.root
	n.count++
	for i := 0; i < len(word); i++ {
		child, ok := n.children[word[i]]
		if !ok {
			child = newNode()
			n.children[word[i]] = child
		}
		child.count++
		n = child
	}
	n.terminal = true
}

func (l *Lexicon) find(s string) *node {
	n := l.root
	for i := 0; i < len(s); i++ {
		n = n.children[s[i]]
		if n == nil {
			return nil
		}
	}
	return n
}

// Len returns the number of distinct words.
func (l *Lexicon) Len() int {
	return l.root.count
}

// ContainsWord reports whether s is exactly one of the stored words. s must
// already be lower case.
func (l *Lexicon) ContainsWord(s string) bool {
	n := l.find(s)
	return n != nil && n.terminal
}

// PrefixCount returns how many stored words start with s, counting s itself
// when it is a word.
func (l *Lexicon) PrefixCount(s string) int {
	n := l.find(s)
	if n == nil {
		return 0
	}
	return n.count
}

// ContainsPrefix reports whether more than one stored word starts with s.
//
// A word that is not the prefix of any longer word returns false, and so does
// a non-word prefix shared by exactly one word.
func (l *Lexicon) ContainsPrefix(s string) bool {
	return l.PrefixCount(s) > 1
}

// CanExtend reports whether some stored word strictly longer than s starts
// with s.
func (l *Lexicon) CanExtend(s string) bool {
	n := l.find(s)
	if n == nil {
		return false
	}
	longer := n.count
	if n.terminal {
		longer--
	}
	return longer > 0
}
