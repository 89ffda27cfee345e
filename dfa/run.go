package dfa

import (
	"iter"
	"slices"
)

// Run executes the automaton on seq and reports whether it ends in an
// accepting state.
//
// A missing transition along the way rejects immediately instead of
// returning an error. The empty sequence is accepted iff the start state is
// accepting. An automaton without a start state rejects everything.
func (d *DFA[N, V]) Run(seq []V) bool {
	return d.RunSeq(slices.Values(seq))
}

// RunSeq is like Run but consumes an iterator.
func (d *DFA[N, V]) RunSeq(seq iter.Seq[V]) bool {
	cur, ok := d.follow(seq)
	return ok && d.states[cur].accept
}

// Follow runs seq from the start state and returns the state reached.
// The boolean is false if a transition is missing or there is no start.
func (d *DFA[N, V]) Follow(seq []V) (N, bool) {
	i, ok := d.follow(slices.Values(seq))
	if !ok {
		var zero N
		return zero, false
	}
	return d.states[i].name, true
}

func (d *DFA[N, V]) follow(seq iter.Seq[V]) (int, bool) {
	if d.start == noStart {
		return noStart, false
	}
	cur := d.start
	for sym := range seq {
		st := &d.states[cur]
		j, ok := st.bySym[sym]
		if !ok {
			return noStart, false
		}
		cur = d.index[st.edges[j].To]
	}
	return cur, true
}

// AcceptStates returns every accepting state in creation order, whether or
// not it is reachable from the start state.
func (d *DFA[N, V]) AcceptStates() []N {
	var out []N
	for i := range d.states {
		if d.states[i].accept {
			out = append(out, d.states[i].name)
		}
	}
	return out
}

// parent records the transition through which a state was last reached
// during the parent scan.
type parent[V comparable] struct {
	from int
	sym  V
}

// AcceptPaths returns, for every accepting state reachable through the
// parent map, the symbol sequence leading from the start state to it.
//
// The parent map is built by a single scan over all transitions in creation
// order; when several edges lead to the same state the last scanned one wins,
// so for states with multiple predecessors the returned path is one valid
// path, not necessarily the shortest. Self-loops are never recorded as
// parents. Every returned path is accepted by Run.
//
// The reconstruction is meant for automata whose used edges form a DAG from
// the start (tries, intersections with tries). Accepting states whose parent
// chain never reaches the start are skipped; a parent chain that loops
// returns ErrCyclicPath.
func (d *DFA[N, V]) AcceptPaths() ([][]V, error) {
	if d.start == noStart {
		return nil, ErrNoStart
	}

	parents := make([]parent[V], len(d.states))
	has := make([]bool, len(d.states))
	for i := range d.states {
		for _, e := range d.states[i].edges {
			to := d.index[e.To]
			if to == i {
				continue
			}
			parents[to] = parent[V]{from: i, sym: e.Symbol}
			has[to] = true
		}
	}

	var paths [][]V
	for i := range d.states {
		if !d.states[i].accept {
			continue
		}
		path, ok, err := d.walkBack(i, parents, has)
		if err != nil {
			return nil, err
		}
		if ok {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// walkBack follows parent pointers from i to the start state.
func (d *DFA[N, V]) walkBack(i int, parents []parent[V], has []bool) ([]V, bool, error) {
	path := []V{}
	cur := i
	for steps := 0; cur != d.start; steps++ {
		if steps > len(d.states) {
			return nil, false, cyclicPath(d.states[i].name)
		}
		if !has[cur] {
			return nil, false, nil
		}
		p := parents[cur]
		path = append(path, p.sym)
		cur = p.from
	}
	slices.Reverse(path)
	return path, true, nil
}
