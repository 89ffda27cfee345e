package trie

import (
	"bufio"
	"fmt"
	"io"

	"github.com/coregx/fsa/codec"
	"github.com/coregx/fsa/dfa"
)

// CompressedIndex is a SuffixIndex with int64 state ids. Positions are
// keyed by the state a window leads to.
type CompressedIndex struct {
	fa        *dfa.DFA[int64, byte]
	positions map[int64][]codec.Position
}

// DFA returns the index automaton. It accepts exactly the indexed windows.
func (x *CompressedIndex) DFA() *dfa.DFA[int64, byte] {
	return x.fa
}

// Alphabet returns the bytes occurring in the document.
func (x *CompressedIndex) Alphabet() []byte {
	return x.fa.Alphabet()
}

// Positions returns where window s occurs.
func (x *CompressedIndex) Positions(s string) []codec.Position {
	state, ok := x.fa.Follow([]byte(s))
	if !ok {
		return nil
	}
	return x.positions[state]
}

// Encode writes the index to rw as a normalized automaton followed by the
// position table. Writing starts at the current position of rw.
func (x *CompressedIndex) Encode(rw io.ReadWriteSeeker) error {
	ids, err := Encode(rw, x.fa)
	if err != nil {
		return err
	}
	table := make(map[int64][]codec.Position, len(x.positions))
	for state, ps := range x.positions {
		off, ok := ids[state]
		if !ok {
			return fmt.Errorf("%w: positions for unreachable state %d", codec.ErrCorrupt, state)
		}
		table[off] = ps
	}
	return codec.WritePositions(rw, table)
}

// ReadIndex reads an index written by CompressedIndex.Encode.
func ReadIndex(r io.Reader) (*CompressedIndex, error) {
	br := bufio.NewReader(r)
	d, err := codec.Deserialize[byte](br)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	table, err := codec.ReadPositions(br)
	if err != nil {
		return nil, fmt.Errorf("read index positions: %w", err)
	}
	return &CompressedIndex{fa: d, positions: table}, nil
}

// Encode serializes d to rw and normalizes it in place, so the result can
// be opened with package dfa/lazy. It returns the mapping from the ids of d
// to the offsets now used in the stream, and leaves rw positioned after the
// automaton.
func Encode(rw io.ReadWriteSeeker, d *dfa.DFA[int64, byte]) (map[int64]int64, error) {
	base, err := rw.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	if err := codec.Serialize(rw, d); err != nil {
		return nil, err
	}
	if _, err := rw.Seek(base, io.SeekStart); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return codec.Normalize[byte](rw)
}

// Decode reads an automaton written by Encode.
func Decode(r io.Reader) (*dfa.DFA[int64, byte], error) {
	d, err := codec.Deserialize[byte](r)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return d, nil
}
