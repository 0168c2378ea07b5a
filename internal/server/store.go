package server

import (
	"sync/atomic"

	"crosswarped.com/boggle/pkg/lexicon"
)

// Store holds the lexicon being served. Searches already running keep the
// lexicon they started with when it is replaced.
type Store struct {
	lex atomic.Pointer[lexicon.Lexicon]
}

func NewStore(lex *lexicon.Lexicon) *Store {
	s := &Store{}
	s.lex.Store(lex)
	return s
}

func (s *Store) Lexicon() *lexicon.Lexicon {
	return s.lex.Load()
}

// Replace swaps in lex and returns the previous lexicon.
func (s *Store) Replace(lex *lexicon.Lexicon) *lexicon.Lexicon {
	return s.lex.Swap(lex)
}
