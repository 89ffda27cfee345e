package nfa

import (
	"encoding/binary"
	"strconv"
	"strings"
)

// Subset is a set of NFA states, used as the state type of the automaton
// produced by epsilon elimination.
//
// A Subset holds the dense indices of its members (see dfa.DFA.Index) sorted
// and packed into a string, so equal sets always compare equal and a Subset
// can key maps. Use NFA.Members to recover the state names.
type Subset string

// newSubset packs sorted, deduplicated indices.
func newSubset(sorted []uint32) Subset {
	buf := make([]byte, 4*len(sorted))
	for i, v := range sorted {
		binary.BigEndian.PutUint32(buf[4*i:], v)
	}
	return Subset(buf)
}

// Len returns the number of members.
func (s Subset) Len() int {
	return len(s) / 4
}

// Indices returns the dense member indices in ascending order.
func (s Subset) Indices() []uint32 {
	out := make([]uint32, s.Len())
	for i := range out {
		out[i] = binary.BigEndian.Uint32([]byte(s[4*i : 4*i+4]))
	}
	return out
}

// String returns the member indices, e.g. "{0 3 7}".
func (s Subset) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range s.Indices() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatUint(uint64(v), 10))
	}
	b.WriteByte('}')
	return b.String()
}
