// Package trie builds prefix trees and chunked document indexes as DFAs.
//
// A Trie is a dfa.DFA[string, byte] whose states are the prefixes of the
// inserted words, rooted at the empty string. A SuffixIndex is a Trie over
// every fixed-size window of a document, with the position of each window
// kept on the side. Both compress to dfa.DFA[int64, byte] for intersection
// with other automata and for storage with package codec.
package trie

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/coregx/fsa/dfa"
)

// Trie is a prefix tree over byte strings.
//
// The zero value is not usable; use New.
type Trie struct {
	fa    *dfa.DFA[string, byte]
	words int
}

// New returns an empty trie. It contains no words, not even the empty one.
func New() *Trie {
	fa := dfa.New[string, byte]()
	// A fresh automaton has no start yet.
	_ = fa.AddStart("")
	return &Trie{fa: fa}
}

// Insert adds word. Inserting a word twice is harmless.
func (t *Trie) Insert(word string) {
	for i := 0; i < len(word); i++ {
		t.fa.AddTransition(word[:i], word[i], word[:i+1])
	}
	if ok, _ := t.fa.IsAccept(word); !ok {
		t.words++
	}
	// Every prefix of word exists once the loop is done.
	_ = t.fa.AddFinalState(word)
}

// Contains reports whether word was inserted.
func (t *Trie) Contains(word string) bool {
	return t.fa.Run([]byte(word))
}

// Len returns the number of distinct words inserted.
func (t *Trie) Len() int {
	return t.words
}

// Alphabet returns the bytes used by the inserted words, in first-seen
// order.
func (t *Trie) Alphabet() []byte {
	return t.fa.Alphabet()
}

// DFA returns the underlying automaton. Callers must not modify it.
func (t *Trie) DFA() *dfa.DFA[string, byte] {
	return t.fa
}

// Compress returns the trie with dense int64 state ids.
func (t *Trie) Compress() (*dfa.DFA[int64, byte], error) {
	return t.fa.Compress()
}

// ReadWords builds a trie from a newline-separated word list. Surrounding
// white space is trimmed and blank lines are skipped.
func ReadWords(r io.Reader) (*Trie, error) {
	t := New()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" {
			continue
		}
		t.Insert(w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read words: %w", err)
	}
	return t, nil
}
