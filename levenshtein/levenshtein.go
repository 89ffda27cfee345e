// Package levenshtein builds automata accepting the strings within a bounded
// edit distance of a word, and uses them to search dictionaries and document
// indexes.
//
// The automaton is an NFA over positions in the word and the number of edits
// spent so far. It is layered: layer i holds the states that have used i
// edits. Within a layer, matching a byte of the word advances the position.
// An edit moves one layer down:
//
//	deletion      epsilon, skip one byte of the word
//	insertion     any byte, keep the position
//	substitution  any byte, skip one byte of the word
//
// The last layer only matches. A state is accepting when the whole word has
// been consumed, whatever layer it is in.
package levenshtein

import (
	"errors"
	"fmt"
	"slices"

	"github.com/coregx/fsa/dfa"
	"github.com/coregx/fsa/nfa"
)

// ErrNegativeDistance is returned for an edit distance below zero.
var ErrNegativeDistance = errors.New("edit distance must not be negative")

// Pos is a state of the automaton: the prefix of the word matched so far
// and the edits used to get there.
type Pos struct {
	Prefix string
	Errors int
}

func (p Pos) String() string {
	return fmt.Sprintf("(%q, %d)", p.Prefix, p.Errors)
}

// New returns the NFA accepting every string within edit distance k of
// word. Wildcard edges are resolved against the alphabet passed to
// ConvertToDFA, so strings using bytes outside it are never accepted
// through an edit.
//
// It panics if k is negative.
func New(word []byte, k int) *nfa.NFA[Pos, byte] {
	if k < 0 {
		panic(ErrNegativeDistance)
	}
	n := nfa.New[Pos, byte]()
	// The automaton is fresh.
	_ = n.AddStart(Pos{})

	w := string(word)
	for i := 0; i < k; i++ {
		for j := 0; j < len(w); j++ {
			acc, next := w[:j], w[:j+1]
			n.AddSymbol(Pos{acc, i}, w[j], Pos{next, i})
			n.AddEpsilon(Pos{acc, i}, Pos{next, i + 1})
			n.AddAny(Pos{acc, i}, Pos{acc, i + 1})
			n.AddAny(Pos{acc, i}, Pos{next, i + 1})
		}
		n.AddAny(Pos{w, i}, Pos{w, i + 1})
	}
	for j := 0; j < len(w); j++ {
		n.AddSymbol(Pos{w[:j], k}, w[j], Pos{w[:j+1], k})
	}
	for i := 0; i <= k; i++ {
		// Every (w, i) was created above.
		_ = n.AddFinalState(Pos{w, i})
	}
	return n
}

// Options tunes Search.
type Options struct {
	// Substring also accepts strings that merely start with a match, so a
	// document index whose windows are longer than the word can be searched.
	Substring bool

	// Config bounds the automata built during the search.
	Config dfa.Config
}

// Compile converts the automaton for word and k to a compressed DFA over
// alphabet.
func Compile(word []byte, k int, alphabet []byte, opts Options) (*dfa.DFA[int64, byte], error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeDistance, k)
	}
	n := New(word, k)
	if opts.Substring {
		n = n.AcceptAll()
	}
	d, err := n.ConvertToDFAWithConfig(alphabet, opts.Config)
	if err != nil {
		return nil, fmt.Errorf("compile %q within %d: %w", word, k, err)
	}
	return d.Compress()
}

// Search returns the strings accepted by dict that are within edit distance
// k of word, in ascending order. alphabet should be the alphabet of dict.
func Search(dict *dfa.DFA[int64, byte], alphabet []byte, word []byte, k int, opts Options) ([]string, error) {
	lev, err := Compile(word, k, alphabet, opts)
	if err != nil {
		return nil, err
	}
	return Match(dict, lev, opts.Config)
}

// Match returns the strings accepted by both dict and lev, in ascending
// order. lev is usually built by Compile. The accepting paths of dict must
// not loop, which holds for tries and document indexes.
func Match(dict, lev *dfa.DFA[int64, byte], cfg dfa.Config) ([]string, error) {
	both, err := dfa.IntersectionWithConfig(dict, lev, cfg)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}
	paths, err := both.AcceptPaths()
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, string(p))
	}
	slices.Sort(out)
	return out, nil
}
