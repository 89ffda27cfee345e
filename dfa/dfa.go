// Package dfa provides a generic deterministic finite automaton (DFA) over
// arbitrary comparable state-name and symbol types.
//
// A DFA is built incrementally with AddStart, AddTransition and AddFinalState,
// executed with Run, and transformed into new, independent automata with
// Intersection and Compress. Transformations never mutate their inputs.
//
// The transition table holds at most one destination per (state, symbol)
// pair. Adding a second transition for the same pair silently overwrites the
// first (last write wins):
//
//	d := dfa.New[string, byte]()
//	d.AddTransition("a", 'x', "b")
//	d.AddTransition("a", 'x', "c") // "a" -x-> "c"; the edge to "b" is gone
//
// Callers that insert conflicting transitions must make sure this is what
// they want.
//
// Concurrency: read-only queries (Run, Transitions, IsAccept, ...) are safe
// to call from multiple goroutines on an automaton that is not being mutated.
// Mutation is not safe for concurrent use.
package dfa

import "slices"

// noStart marks an automaton without a start state.
const noStart = -1

// Edge is an outgoing transition: on Symbol, move to To.
type Edge[N, V comparable] struct {
	Symbol V
	To     N
}

// state holds the accept flag and the outgoing transitions of one state.
//
// Edges are kept in insertion order so that enumeration (and therefore
// compression and serialization) is deterministic; bySym indexes them for
// O(1) lookup and overwrite.
type state[N, V comparable] struct {
	name   N
	accept bool
	edges  []Edge[N, V]
	bySym  map[V]int
}

// DFA is a deterministic finite automaton with states of type N and symbols
// of type V.
//
// States are numbered densely in creation order. The dense index of a state
// (see Index and StateAt) is stable for the lifetime of the automaton.
type DFA[N, V comparable] struct {
	states   []state[N, V]
	index    map[N]int
	start    int
	alphabet []V
	symbols  map[V]struct{}
}

// New creates an empty DFA without a start state.
func New[N, V comparable]() *DFA[N, V] {
	return &DFA[N, V]{
		index:   make(map[N]int),
		start:   noStart,
		symbols: make(map[V]struct{}),
	}
}

// create returns the dense index of s, creating the state if absent.
func (d *DFA[N, V]) create(s N) int {
	if i, ok := d.index[s]; ok {
		return i
	}
	i := len(d.states)
	d.states = append(d.states, state[N, V]{name: s})
	d.index[s] = i
	return i
}

// AddState creates s as a rejecting state without transitions.
// It is a no-op if s already exists.
func (d *DFA[N, V]) AddState(s N) {
	d.create(s)
}

// AddStart sets s as the start state, creating it if absent.
// Returns ErrDuplicateStart if a start state is already set.
func (d *DFA[N, V]) AddStart(s N) error {
	if d.start != noStart {
		return ErrDuplicateStart
	}
	d.start = d.create(s)
	return nil
}

// AddTransition adds the transition src -sym-> dst, creating both states if
// absent and recording sym in the alphabet.
// Overwrites any existing transition for (src, sym).
func (d *DFA[N, V]) AddTransition(src N, sym V, dst N) {
	i := d.create(src)
	d.create(dst)

	if _, ok := d.symbols[sym]; !ok {
		d.symbols[sym] = struct{}{}
		d.alphabet = append(d.alphabet, sym)
	}

	st := &d.states[i]
	if j, ok := st.bySym[sym]; ok {
		st.edges[j].To = dst
		return
	}
	if st.bySym == nil {
		st.bySym = make(map[V]int, 4)
	}
	st.bySym[sym] = len(st.edges)
	st.edges = append(st.edges, Edge[N, V]{Symbol: sym, To: dst})
}

// markAccept marks s accepting, creating it if absent. It is used by
// constructions that have already created s.
func (d *DFA[N, V]) markAccept(s N) {
	d.states[d.create(s)].accept = true
}

// HasTransition reports whether s exists and has a transition on sym.
func (d *DFA[N, V]) HasTransition(s N, sym V) bool {
	i, ok := d.index[s]
	if !ok {
		return false
	}
	_, ok = d.states[i].bySym[sym]
	return ok
}

// AddFinalState marks s as accepting.
// Returns ErrUnknownState if s was never created.
func (d *DFA[N, V]) AddFinalState(s N) error {
	i, ok := d.index[s]
	if !ok {
		return unknownState(s)
	}
	d.states[i].accept = true
	return nil
}

// States returns all states in creation order.
func (d *DFA[N, V]) States() []N {
	out := make([]N, len(d.states))
	for i := range d.states {
		out[i] = d.states[i].name
	}
	return out
}

// NumStates returns the number of states.
func (d *DFA[N, V]) NumStates() int {
	return len(d.states)
}

// NumTransitions returns the total number of transitions.
func (d *DFA[N, V]) NumTransitions() int {
	n := 0
	for i := range d.states {
		n += len(d.states[i].edges)
	}
	return n
}

// Index returns the dense index of s.
func (d *DFA[N, V]) Index(s N) (int, bool) {
	i, ok := d.index[s]
	return i, ok
}

// StateAt returns the state with dense index i.
// Panics if i is out of range.
func (d *DFA[N, V]) StateAt(i int) N {
	return d.states[i].name
}

// EdgesAt returns the outgoing transitions of the state with dense index i.
// The returned slice is owned by the automaton and must not be modified.
func (d *DFA[N, V]) EdgesAt(i int) []Edge[N, V] {
	return d.states[i].edges
}

// IsAcceptAt reports whether the state with dense index i is accepting.
func (d *DFA[N, V]) IsAcceptAt(i int) bool {
	return d.states[i].accept
}

// Transitions returns the outgoing transitions of s in insertion order.
// Returns ErrNoStart if the automaton has no start state and
// ErrUnknownState if s was never created.
func (d *DFA[N, V]) Transitions(s N) ([]Edge[N, V], error) {
	if d.start == noStart {
		return nil, ErrNoStart
	}
	i, ok := d.index[s]
	if !ok {
		return nil, unknownState(s)
	}
	return slices.Clone(d.states[i].edges), nil
}

// NextState returns the destination of the transition (s, sym).
func (d *DFA[N, V]) NextState(s N, sym V) (N, error) {
	i, ok := d.index[s]
	if !ok {
		var zero N
		return zero, unknownState(s)
	}
	st := &d.states[i]
	j, ok := st.bySym[sym]
	if !ok {
		var zero N
		return zero, missingTransition(s, sym)
	}
	return st.edges[j].To, nil
}

// IsAccept reports whether s is accepting.
// Returns ErrUnknownState if s was never created.
func (d *DFA[N, V]) IsAccept(s N) (bool, error) {
	i, ok := d.index[s]
	if !ok {
		return false, unknownState(s)
	}
	return d.states[i].accept, nil
}

// Start returns the start state.
// Returns ErrNoStart if no start state is set.
func (d *DFA[N, V]) Start() (N, error) {
	if d.start == noStart {
		var zero N
		return zero, ErrNoStart
	}
	return d.states[d.start].name, nil
}

// HasStart reports whether a start state is set.
func (d *DFA[N, V]) HasStart() bool {
	return d.start != noStart
}

// StartIndex returns the dense index of the start state, or -1 if unset.
func (d *DFA[N, V]) StartIndex() int {
	return d.start
}

// Alphabet returns every symbol seen by AddTransition, in first-seen order.
func (d *DFA[N, V]) Alphabet() []V {
	return slices.Clone(d.alphabet)
}
