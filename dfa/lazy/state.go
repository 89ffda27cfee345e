package lazy

import (
	"github.com/coregx/fsa/codec"
	"github.com/coregx/fsa/dfa"
)

// State is one decoded record of a normalized stream.
//
// Its identity is its byte offset, which is also the id written in the
// record and the value every edge uses to point at it.
type State[V codec.Symbol] struct {
	offset int64
	accept bool
	start  bool
	edges  []dfa.Edge[int64, V]
}

// Offset returns the state's byte offset (its id).
func (s *State[V]) Offset() int64 {
	return s.offset
}

// IsMatch reports whether the state is accepting.
func (s *State[V]) IsMatch() bool {
	return s.accept
}

// IsStart reports whether the state is the start state.
func (s *State[V]) IsStart() bool {
	return s.start
}

// Edges returns the outgoing transitions in stream order.
// The returned slice must not be modified.
func (s *State[V]) Edges() []dfa.Edge[int64, V] {
	return s.edges
}

// Next returns the destination on sym.
// Adjacency lists are short, so a linear scan beats a map here.
func (s *State[V]) Next(sym V) (int64, bool) {
	for _, e := range s.edges {
		if e.Symbol == sym {
			return e.To, true
		}
	}
	return 0, false
}
