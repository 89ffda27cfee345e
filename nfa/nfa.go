// Package nfa provides a nondeterministic finite automaton built on top of
// the generic dfa.DFA, together with the pipeline that converts it to a DFA.
//
// An NFA is a DFA whose symbols are labels (see Label). A label is a
// concrete symbol, an epsilon (consumes nothing) or a wildcard (consumes any
// symbol of an alphabet supplied at conversion time). Because no two labels
// compare equal, a state may have several transitions on the same symbol,
// which is how nondeterministic choice is represented.
//
// Conversion runs three strictly ordered steps, each returning a new
// automaton:
//
//	RemoveAny(alphabet)  wildcard edges become one edge per alphabet symbol
//	RemoveEpsilon()      subset construction over epsilon closures
//	ResolveLabels()      labels are unwrapped into plain symbols
//
// ConvertToDFA runs all three.
package nfa

import (
	"github.com/coregx/fsa/dfa"
)

// NFA is a nondeterministic finite automaton with states of type N and
// symbols of type V.
type NFA[N, V comparable] struct {
	fa *dfa.DFA[N, Label[V]]
}

// New creates an empty NFA without a start state.
func New[N, V comparable]() *NFA[N, V] {
	return &NFA[N, V]{fa: dfa.New[N, Label[V]]()}
}

// AddStart sets s as the start state, creating it if absent.
// Returns dfa.ErrDuplicateStart if a start state is already set.
func (n *NFA[N, V]) AddStart(s N) error {
	return n.fa.AddStart(s)
}

// AddState creates s as a rejecting state without transitions.
func (n *NFA[N, V]) AddState(s N) {
	n.fa.AddState(s)
}

// AddTransition adds src -l-> dst, creating both states if absent.
// Labels never collide, so the transition is always added.
func (n *NFA[N, V]) AddTransition(src N, l Label[V], dst N) {
	n.fa.AddTransition(src, l, dst)
}

// AddSymbol adds a transition that consumes v.
func (n *NFA[N, V]) AddSymbol(src N, v V, dst N) {
	n.fa.AddTransition(src, Symbol(v), dst)
}

// AddEpsilon adds a transition that consumes no input.
func (n *NFA[N, V]) AddEpsilon(src, dst N) {
	n.fa.AddTransition(src, Epsilon[V](), dst)
}

// AddAny adds a transition that consumes any alphabet symbol.
func (n *NFA[N, V]) AddAny(src, dst N) {
	n.fa.AddTransition(src, Any[V](), dst)
}

// AddFinalState marks s as accepting.
// Returns dfa.ErrUnknownState if s was never created.
func (n *NFA[N, V]) AddFinalState(s N) error {
	return n.fa.AddFinalState(s)
}

// Start returns the start state.
func (n *NFA[N, V]) Start() (N, error) {
	return n.fa.Start()
}

// States returns all states in creation order.
func (n *NFA[N, V]) States() []N {
	return n.fa.States()
}

// NumStates returns the number of states.
func (n *NFA[N, V]) NumStates() int {
	return n.fa.NumStates()
}

// AcceptStates returns every accepting state in creation order.
func (n *NFA[N, V]) AcceptStates() []N {
	return n.fa.AcceptStates()
}

// IsAccept reports whether s is accepting.
func (n *NFA[N, V]) IsAccept(s N) (bool, error) {
	return n.fa.IsAccept(s)
}

// Transitions returns the outgoing transitions of s in insertion order.
func (n *NFA[N, V]) Transitions(s N) ([]dfa.Edge[N, Label[V]], error) {
	return n.fa.Transitions(s)
}

// FA returns the underlying labelled automaton. It is shared, not copied.
func (n *NFA[N, V]) FA() *dfa.DFA[N, Label[V]] {
	return n.fa
}

// Members returns the states of n that make up s, in index order.
//
// s must come from converting n (or an automaton produced from n by
// RemoveAny, which preserves state indices). Indices that n does not have
// are skipped.
func (n *NFA[N, V]) Members(s Subset) []N {
	idx := s.Indices()
	out := make([]N, 0, len(idx))
	for _, i := range idx {
		if int(i) < n.fa.NumStates() {
			out = append(out, n.fa.StateAt(int(i)))
		}
	}
	return out
}

// clone copies n state by state, preserving creation order.
func (n *NFA[N, V]) clone() *NFA[N, V] {
	out := New[N, V]()
	n.copyInto(out, func(src N, l Label[V], dst N) {
		out.fa.AddTransition(src, l, dst)
	})
	return out
}

// copyInto recreates the states, start and accept flags of n in out and
// hands every transition to edge.
func (n *NFA[N, V]) copyInto(out *NFA[N, V], edge func(src N, l Label[V], dst N)) {
	for _, s := range n.fa.States() {
		out.fa.AddState(s)
	}
	if start, err := n.fa.Start(); err == nil {
		_ = out.fa.AddStart(start)
	}
	for i := 0; i < n.fa.NumStates(); i++ {
		src := n.fa.StateAt(i)
		for _, e := range n.fa.EdgesAt(i) {
			edge(src, e.Symbol, e.To)
		}
		if n.fa.IsAcceptAt(i) {
			_ = out.fa.AddFinalState(src)
		}
	}
}

// AcceptAll returns a copy of n in which every accepting state also has a
// wildcard self-loop, so that once a match is reached any further input is
// still accepted. It is used to turn a whole-word matcher into a prefix
// matcher.
func (n *NFA[N, V]) AcceptAll() *NFA[N, V] {
	out := n.clone()
	for _, s := range out.fa.AcceptStates() {
		out.AddAny(s, s)
	}
	return out
}
