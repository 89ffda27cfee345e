// Package lazy traverses a normalized serialized DFA without decoding it
// first.
//
// After codec.Normalize, every state id in a stream equals the byte offset
// of the state's record. A lazy DFA reads a record only when a traversal
// reaches it, through an io.ReaderAt, and keeps decoded records in a
// bounded Cache. OpenFile memory-maps the stream where the platform allows
// it, so lookups in a large on-disk dictionary only touch the pages they
// need.
//
// A DFA is safe for concurrent use by multiple goroutines until Close.
package lazy

import (
	"encoding/binary"
	"errors"
	"io"
	"sync/atomic"

	"github.com/coregx/fsa/codec"
	"github.com/coregx/fsa/dfa"
)

// Record layout, see package codec.
const (
	flagSize = 1
	idSize   = 8
)

// DFA is a read-only automaton backed by a normalized stream.
type DFA[V codec.Symbol] struct {
	r       io.ReaderAt
	size    int64
	symSize int
	start   int64
	cache   *Cache[V]
	closer  func() error
	closed  atomic.Bool
}

// Open validates the stream header of r and returns a DFA reading from it.
// size is the length of the stream in bytes.
//
// Returns an error wrapping codec.ErrNotNormalized if the stream was not
// normalized and codec.ErrUnsupportedVersion for unknown versions.
func Open[V codec.Symbol](r io.ReaderAt, size int64) (*DFA[V], error) {
	return OpenWithConfig[V](r, size, DefaultConfig())
}

// OpenWithConfig is like Open with an explicit cache configuration.
func OpenWithConfig[V codec.Symbol](r io.ReaderAt, size int64, cfg Config) (*DFA[V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var ver [1]byte
	if _, err := r.ReadAt(ver[:], 0); err != nil {
		return nil, formatError("read version byte", errors.Join(codec.ErrTruncated, err))
	}
	if ver[0]&^codec.Normalized != codec.Version1_1 {
		return nil, formatError("open", codec.ErrUnsupportedVersion)
	}
	if ver[0]&codec.Normalized == 0 {
		return nil, formatError("open", codec.ErrNotNormalized)
	}

	d := &DFA[V]{
		r:       r,
		size:    size,
		symSize: codec.SymbolSize[V](),
		start:   flagSize, // breadth-first order puts the start record first
		cache:   NewCache[V](cfg.MaxStates),
	}
	st, err := d.State(d.start)
	if err != nil {
		return nil, err
	}
	if !st.start {
		return nil, formatError("open", errors.New("first record is not the start state"))
	}
	return d, nil
}

// Start returns the offset of the start state.
func (d *DFA[V]) Start() int64 {
	return d.start
}

// State returns the decoded record at offset off.
func (d *DFA[V]) State(off int64) (*State[V], error) {
	if d.closed.Load() {
		return nil, ErrClosed
	}
	if st, ok := d.cache.Get(off); ok {
		return st, nil
	}
	st, err := d.decode(off)
	if err != nil {
		return nil, err
	}
	return d.cache.Insert(st), nil
}

// decode reads the record at off.
func (d *DFA[V]) decode(off int64) (*State[V], error) {
	if off < flagSize || off+flagSize+idSize > d.size {
		return nil, invalidOffset(off)
	}

	var hdr [flagSize + idSize]byte
	if _, err := d.r.ReadAt(hdr[:], off); err != nil {
		return nil, formatError("read record header", errors.Join(codec.ErrTruncated, err))
	}
	flag := hdr[0]
	if flag&^(codec.FlagAccept|codec.FlagStart) != 0 {
		return nil, invalidOffset(off)
	}
	if id := int64(binary.LittleEndian.Uint64(hdr[flagSize:])); id != off {
		return nil, invalidOffset(off)
	}

	st := &State[V]{
		offset: off,
		accept: flag&codec.FlagAccept != 0,
		start:  flag&codec.FlagStart != 0,
	}
	pair := make([]byte, idSize+d.symSize)
	pos := off + flagSize + idSize
	for {
		if _, err := d.r.ReadAt(pair[:idSize], pos); err != nil {
			return nil, formatError("read edge", errors.Join(codec.ErrTruncated, err))
		}
		to := int64(binary.LittleEndian.Uint64(pair[:idSize]))
		pos += idSize
		if to == codec.Sentinel {
			return st, nil
		}
		if _, err := d.r.ReadAt(pair[idSize:], pos); err != nil {
			return nil, formatError("read edge symbol", errors.Join(codec.ErrTruncated, err))
		}
		pos += int64(d.symSize)
		st.edges = append(st.edges, dfa.Edge[int64, V]{Symbol: codec.DecodeSymbol[V](pair[idSize:]), To: to})
	}
}

// Step follows the transition on sym from the state at off. The boolean is
// false if there is no such transition.
func (d *DFA[V]) Step(off int64, sym V) (int64, bool, error) {
	st, err := d.State(off)
	if err != nil {
		return 0, false, err
	}
	next, ok := st.Next(sym)
	return next, ok, nil
}

// IsAccept reports whether the state at off is accepting.
func (d *DFA[V]) IsAccept(off int64) (bool, error) {
	st, err := d.State(off)
	if err != nil {
		return false, err
	}
	return st.accept, nil
}

// Transitions returns the outgoing transitions of the state at off.
func (d *DFA[V]) Transitions(off int64) ([]dfa.Edge[int64, V], error) {
	st, err := d.State(off)
	if err != nil {
		return nil, err
	}
	return st.edges, nil
}

// Run executes the automaton on seq. As with dfa.DFA.Run, a missing
// transition rejects. Errors are returned only for unreadable streams.
func (d *DFA[V]) Run(seq []V) (bool, error) {
	cur := d.start
	for _, sym := range seq {
		next, ok, err := d.Step(cur, sym)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		cur = next
	}
	return d.IsAccept(cur)
}

// Load decodes the whole stream into an in-memory automaton whose state
// ids are the record offsets.
func (d *DFA[V]) Load() (*dfa.DFA[int64, V], error) {
	if d.closed.Load() {
		return nil, ErrClosed
	}
	return codec.Deserialize[V](io.NewSectionReader(d.r, 0, d.size))
}

// Cache returns the record cache, for statistics.
func (d *DFA[V]) Cache() *Cache[V] {
	return d.cache
}

// Close releases the backing storage if the DFA owns it (see OpenFile).
// Further lookups return ErrClosed.
func (d *DFA[V]) Close() error {
	if d.closed.Swap(true) {
		return nil
	}
	d.cache.Clear()
	if d.closer != nil {
		return d.closer()
	}
	return nil
}
