package fsa

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/coregx/fsa/codec"
	"github.com/coregx/fsa/trie"
)

// ErrStaleIndex is returned by Document.Verify when an indexed position no
// longer holds the indexed text.
var ErrStaleIndex = errors.New("fsa: document index is stale")

// Position locates a match in a document: its byte offset and the 1-based
// line and column of its first byte.
type Position = codec.Position

// Match is one indexed window of a document that starts with a fuzzy match
// of the query, together with every place the window occurs.
type Match struct {
	Text      string
	Positions []Position
}

// Document is a searchable index of a text.
//
// Every window of Chunk bytes is indexed, so a query finds the windows
// that begin with a string within k edits of it.
type Document struct {
	index *trie.CompressedIndex
	cfg   Config
}

// NewDocument reads and indexes a document.
func NewDocument(r io.Reader, cfg Config) (*Document, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	idx, err := trie.Build(r, cfg.Chunk)
	if err != nil {
		return nil, err
	}
	cx, err := idx.Compress()
	if err != nil {
		return nil, err
	}
	cfg.logger().Debug("document indexed",
		"chunk", cfg.Chunk,
		"windows", idx.Trie().Len(),
		"states", cx.DFA().NumStates(),
		"elapsed", time.Since(start))
	return &Document{index: cx, cfg: cfg}, nil
}

// LoadDocument reads an index written by Document.Encode. The window size
// is not stored; cfg.Chunk should match the one used to build the index.
func LoadDocument(r io.Reader, cfg Config) (*Document, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cx, err := trie.ReadIndex(r)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	return &Document{index: cx, cfg: cfg}, nil
}

// Search returns the windows starting within k edits of word, in ascending
// order of their text. Positions of each match are in document order.
func (d *Document) Search(word string, k int) ([]Match, error) {
	found, err := search(d.cfg, d.index.DFA(), d.index.Alphabet(), word, k, true)
	if err != nil {
		return nil, err
	}
	out := make([]Match, 0, len(found))
	for _, s := range found {
		ps := slices.Clone(d.index.Positions(s))
		slices.SortFunc(ps, func(a, b Position) int {
			return cmp.Compare(a.Index, b.Index)
		})
		out = append(out, Match{Text: s, Positions: ps})
	}
	return out, nil
}

// Encode writes the index to rw.
func (d *Document) Encode(rw io.ReadWriteSeeker) error {
	return d.index.Encode(rw)
}

// Verify checks matches against the document text they were found in. It
// returns an error wrapping ErrStaleIndex if some position does not hold
// the matched text, as happens when a cached index outlives an edit of the
// document.
func (d *Document) Verify(text []byte, matches []Match) error {
	needles := make([]string, 0, len(matches))
	for _, m := range matches {
		needles = append(needles, m.Text)
	}
	occ, err := Occurrences(text, needles)
	if err != nil {
		return err
	}
	for _, m := range matches {
		for _, p := range m.Positions {
			if _, ok := slices.BinarySearch(occ[m.Text], int(p.Index)); !ok {
				return fmt.Errorf("%w: %q not at offset %d (line %d, column %d)",
					ErrStaleIndex, m.Text, p.Index, p.Line, p.Column)
			}
		}
	}
	return nil
}
