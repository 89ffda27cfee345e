package dfa

import (
	"errors"

	"github.com/coregx/fsa/internal/conv"
	"github.com/coregx/fsa/internal/sparse"
)

// Record describes one state as seen by Walk.
type Record[N, V comparable] struct {
	State  N
	Accept bool
	Start  bool
	Edges  []Edge[N, V]
}

// SkipAll can be returned by a Walk callback to stop the walk early without
// reporting an error.
var SkipAll = errors.New("skip remaining states")

// Walk visits every state reachable from the start in breadth-first order,
// calling fn once per state. Edges are reported in insertion order, and
// neighbors are enqueued in that order on their first discovery.
//
// States that are not reachable from the start are never reported. The
// Edges slice passed to fn is owned by the automaton and must not be
// modified. If fn returns SkipAll the walk stops and Walk returns nil; any
// other error stops the walk and is returned.
func (d *DFA[N, V]) Walk(fn func(Record[N, V]) error) error {
	if d.start == noStart {
		return ErrNoStart
	}

	seen := sparse.NewSparseSet(len(d.states))
	queue := []int{d.start}
	seen.Insert(conv.IntToUint32(d.start))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]

		st := &d.states[i]
		rec := Record[N, V]{
			State:  st.name,
			Accept: st.accept,
			Start:  i == d.start,
			Edges:  st.edges,
		}
		if err := fn(rec); err != nil {
			if errors.Is(err, SkipAll) {
				return nil
			}
			return err
		}

		for _, e := range st.edges {
			j := d.index[e.To]
			if seen.Insert(conv.IntToUint32(j)) {
				queue = append(queue, j)
			}
		}
	}
	return nil
}

// Reachable returns the number of states reachable from the start.
func (d *DFA[N, V]) Reachable() int {
	n := 0
	_ = d.Walk(func(Record[N, V]) error {
		n++
		return nil
	})
	return n
}
