package dfa

import "slices"

// Compress relabels the states of d as dense int64 identifiers.
//
// States are numbered 0..n-1 in creation order, so the result is
// deterministic for a given construction sequence. Transitions, accept flags
// and the start state are translated; the language is unchanged. Compression
// is not minimization: the state count stays the same.
//
// Returns ErrNoStart if d has no start state.
func Compress[N, V comparable](d *DFA[N, V]) (*DFA[int64, V], error) {
	out, _, err := CompressWithMap(d)
	return out, err
}

// CompressWithMap is like Compress and also returns the mapping from the
// original state names to their new identifiers.
func CompressWithMap[N, V comparable](d *DFA[N, V]) (*DFA[int64, V], map[N]int64, error) {
	if d.start == noStart {
		return nil, nil, ErrNoStart
	}

	ids := make(map[N]int64, len(d.states))
	out := New[int64, V]()
	// Keep the alphabet in first-seen order of d, not of the rebuild.
	out.alphabet = slices.Clone(d.alphabet)
	for _, v := range d.alphabet {
		out.symbols[v] = struct{}{}
	}
	for i := range d.states {
		id := int64(i)
		ids[d.states[i].name] = id
		out.AddState(id)
	}
	for i := range d.states {
		for _, e := range d.states[i].edges {
			out.AddTransition(int64(i), e.Symbol, ids[e.To])
		}
		if d.states[i].accept {
			out.markAccept(int64(i))
		}
	}
	if err := out.AddStart(int64(d.start)); err != nil {
		return nil, nil, err
	}
	return out, ids, nil
}

// Compress is the method form of Compress.
func (d *DFA[N, V]) Compress() (*DFA[int64, V], error) {
	return Compress(d)
}
