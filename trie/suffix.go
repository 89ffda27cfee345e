package trie

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/coregx/fsa/codec"
	"github.com/coregx/fsa/dfa"
)

// DefaultChunk is the window size used by the document search tools.
const DefaultChunk = 10

// ErrChunkSize is returned by Build for a window size below 1.
var ErrChunkSize = errors.New("chunk size must be at least 1")

// SuffixIndex indexes every window of a document.
//
// Each window of Chunk consecutive bytes is inserted into a trie and its
// Position recorded. The windows starting in the last Chunk-1 bytes are
// shorter and are indexed too, so text near the end of the document can
// still be found.
type SuffixIndex struct {
	trie      *Trie
	chunk     int
	positions map[string][]codec.Position
}

// Build reads the whole document from r and indexes it with windows of
// chunk bytes.
func Build(r io.Reader, chunk int) (*SuffixIndex, error) {
	if chunk < 1 {
		return nil, fmt.Errorf("%w: %d", ErrChunkSize, chunk)
	}
	idx := &SuffixIndex{
		trie:      New(),
		chunk:     chunk,
		positions: make(map[string][]codec.Position),
	}

	br := bufio.NewReader(r)
	window := make([]byte, 0, chunk)
	pos := codec.Position{Line: 1, Column: 1}
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("build suffix index: %w", err)
		}
		window = append(window, c)
		if len(window) == chunk {
			idx.add(window, pos)
			window, pos = shift(window, pos)
		}
	}
	for len(window) > 0 {
		idx.add(window, pos)
		window, pos = shift(window, pos)
	}
	return idx, nil
}

func (x *SuffixIndex) add(window []byte, pos codec.Position) {
	s := string(window)
	x.trie.Insert(s)
	x.positions[s] = append(x.positions[s], pos)
}

// shift drops the first byte of window and advances pos past it.
func shift(window []byte, pos codec.Position) ([]byte, codec.Position) {
	if window[0] == '\n' {
		pos.Line++
		pos.Column = 1
	} else {
		pos.Column++
	}
	pos.Index++
	n := copy(window, window[1:])
	return window[:n], pos
}

// Chunk returns the window size.
func (x *SuffixIndex) Chunk() int {
	return x.chunk
}

// Trie returns the trie of windows.
func (x *SuffixIndex) Trie() *Trie {
	return x.trie
}

// Alphabet returns the bytes occurring in the document.
func (x *SuffixIndex) Alphabet() []byte {
	return x.trie.Alphabet()
}

// Positions returns where window s occurs, in document order. s must be a
// whole window; prefixes of windows have no positions.
func (x *SuffixIndex) Positions(s string) []codec.Position {
	return x.positions[s]
}

// Compress relabels the index with dense state ids. Positions move to the
// compressed state each window leads to.
func (x *SuffixIndex) Compress() (*CompressedIndex, error) {
	d, ids, err := dfa.CompressWithMap(x.trie.DFA())
	if err != nil {
		return nil, err
	}
	table := make(map[int64][]codec.Position, len(x.positions))
	for s, ps := range x.positions {
		table[ids[s]] = append(table[ids[s]], ps...)
	}
	return &CompressedIndex{fa: d, positions: table}, nil
}
