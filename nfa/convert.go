package nfa

import (
	"fmt"

	"github.com/coregx/fsa/dfa"
	"github.com/coregx/fsa/internal/conv"
	"github.com/coregx/fsa/internal/sparse"
)

// RemoveAny returns a copy of n in which every wildcard transition is
// replaced by one concrete transition per symbol of alphabet. Epsilon and
// concrete transitions are copied unchanged, as are the start state and the
// accept flags.
//
// States keep their creation order, so dense indices (and therefore Subset
// members) refer to the same states in n and in the result.
func (n *NFA[N, V]) RemoveAny(alphabet []V) *NFA[N, V] {
	out := New[N, V]()
	n.copyInto(out, func(src N, l Label[V], dst N) {
		if l.kind != KindAny {
			out.fa.AddTransition(src, l, dst)
			return
		}
		for _, v := range alphabet {
			out.AddSymbol(src, v, dst)
		}
	})
	return out
}

// RemoveEpsilon performs subset construction over epsilon closures.
//
// The states of the result are Subsets of the states of n. The start state
// is the epsilon closure of the start of n. For every subset reached and
// every concrete symbol leaving one of its members, the destination is the
// union of the closures of all successors on that symbol. A subset is
// accepting iff one of its members accepts. The result has exactly one
// transition per (subset, symbol).
//
// n must not contain wildcard transitions; run RemoveAny first.
// Returns dfa.ErrNoStart if n has no start state.
func (n *NFA[N, V]) RemoveEpsilon() (*NFA[Subset, V], error) {
	return n.RemoveEpsilonWithConfig(dfa.DefaultConfig())
}

// RemoveEpsilonWithConfig is like RemoveEpsilon but stops with
// dfa.ErrStateLimitExceeded once more than cfg.MaxStates subsets exist.
func (n *NFA[N, V]) RemoveEpsilonWithConfig(cfg dfa.Config) (*NFA[Subset, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fa := n.fa
	if !fa.HasStart() {
		return nil, dfa.ErrNoStart
	}

	size := fa.NumStates()
	eps := make([][]int, size)
	for i := 0; i < size; i++ {
		for _, e := range fa.EdgesAt(i) {
			switch e.Symbol.kind {
			case KindAny:
				return nil, convertError(StageRemoveEpsilon, fa.StateAt(i), ErrAnySurvived)
			case KindEpsilon:
				j, _ := fa.Index(e.To)
				eps[i] = append(eps[i], j)
			}
		}
	}

	closures := make([][]uint32, size)
	set := sparse.NewSparseSet(size)
	for i := 0; i < size; i++ {
		set.Clear()
		stack := []int{i}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !set.Insert(conv.IntToUint32(cur)) {
				continue
			}
			for _, j := range eps[cur] {
				if !set.Contains(conv.IntToUint32(j)) {
					stack = append(stack, j)
				}
			}
		}
		closures[i] = set.Sorted()
	}

	accepting := func(members []uint32) bool {
		for _, m := range members {
			if fa.IsAcceptAt(int(m)) {
				return true
			}
		}
		return false
	}

	out := New[Subset, V]()
	startMembers := closures[fa.StartIndex()]
	start := newSubset(startMembers)
	if err := out.AddStart(start); err != nil {
		return nil, err
	}
	if accepting(startMembers) {
		_ = out.AddFinalState(start)
	}

	var (
		stack   = []Subset{start}
		seen    = make(map[Subset]struct{})
		symbols []V
		symSeen = make(map[V]struct{})
	)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[cur]; ok {
			continue
		}
		seen[cur] = struct{}{}
		members := cur.Indices()

		symbols = symbols[:0]
		clear(symSeen)
		for _, m := range members {
			for _, e := range fa.EdgesAt(int(m)) {
				if e.Symbol.kind != KindSymbol {
					continue
				}
				if _, ok := symSeen[e.Symbol.sym]; !ok {
					symSeen[e.Symbol.sym] = struct{}{}
					symbols = append(symbols, e.Symbol.sym)
				}
			}
		}

		for _, v := range symbols {
			set.Clear()
			for _, m := range members {
				for _, e := range fa.EdgesAt(int(m)) {
					if e.Symbol.kind != KindSymbol || e.Symbol.sym != v {
						continue
					}
					j, _ := fa.Index(e.To)
					for _, c := range closures[j] {
						set.Insert(c)
					}
				}
			}
			dstMembers := set.Sorted()
			dst := newSubset(dstMembers)
			out.AddSymbol(cur, v, dst)
			if accepting(dstMembers) {
				_ = out.AddFinalState(dst)
			}
			if cfg.Exceeded(out.NumStates()) {
				return nil, &dfa.Error{
					Kind:    dfa.StateLimitExceeded,
					Message: fmt.Sprintf("subset construction exceeded %d states", cfg.MaxStates),
				}
			}
			stack = append(stack, dst)
		}
	}
	return out, nil
}

// ResolveLabels unwraps every label into its symbol and returns the
// resulting DFA with the same states, start and accept flags.
//
// Returns ErrUnresolvedLabel (wrapped in a *ConvertError) if an epsilon or
// wildcard transition remains. If two concrete transitions leave a state on
// the same symbol the last one wins, as with dfa.DFA.AddTransition.
func (n *NFA[N, V]) ResolveLabels() (*dfa.DFA[N, V], error) {
	fa := n.fa
	out := dfa.New[N, V]()
	for _, s := range fa.States() {
		out.AddState(s)
	}
	if start, err := fa.Start(); err == nil {
		_ = out.AddStart(start)
	}
	for i := 0; i < fa.NumStates(); i++ {
		src := fa.StateAt(i)
		for _, e := range fa.EdgesAt(i) {
			v, ok := e.Symbol.Value()
			if !ok {
				return nil, convertError(StageResolveLabels, src, ErrUnresolvedLabel)
			}
			out.AddTransition(src, v, e.To)
		}
		if fa.IsAcceptAt(i) {
			_ = out.AddFinalState(src)
		}
	}
	return out, nil
}

// ConvertToDFA converts n into an equivalent DFA, expanding wildcard
// transitions over alphabet.
//
// The states of the result are Subsets of the states of n; use Members to
// map them back, or dfa.Compress to relabel them as integers.
func (n *NFA[N, V]) ConvertToDFA(alphabet []V) (*dfa.DFA[Subset, V], error) {
	return n.ConvertToDFAWithConfig(alphabet, dfa.DefaultConfig())
}

// ConvertToDFAWithConfig is like ConvertToDFA with a limit on the number of
// subsets created.
func (n *NFA[N, V]) ConvertToDFAWithConfig(alphabet []V, cfg dfa.Config) (*dfa.DFA[Subset, V], error) {
	expanded := n.RemoveAny(alphabet)
	noEps, err := expanded.RemoveEpsilonWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	return noEps.ResolveLabels()
}
