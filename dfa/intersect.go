package dfa

import "fmt"

// Pair is the state type of a product automaton: a state of the first
// operand paired with a state of the second.
type Pair[A, B comparable] struct {
	First  A
	Second B
}

// String returns a human-readable representation of the pair
func (p Pair[A, B]) String() string {
	return fmt.Sprintf("(%v, %v)", p.First, p.Second)
}

// pairIndex identifies a product state by the dense indices of its components.
type pairIndex struct {
	a, b int
}

// Intersection builds the product automaton of a and b, which accepts exactly
// the sequences accepted by both.
//
// Only pairs reachable from (start(a), start(b)) are created. A pair has an
// edge on a symbol iff both components have a transition on that symbol, and
// a pair is accepting iff both components are accepting.
func Intersection[N1, N2, V comparable](a *DFA[N1, V], b *DFA[N2, V]) (*DFA[Pair[N1, N2], V], error) {
	return IntersectionWithConfig(a, b, DefaultConfig())
}

// IntersectionWithConfig is like Intersection but stops with
// ErrStateLimitExceeded once the product grows beyond cfg.MaxStates.
func IntersectionWithConfig[N1, N2, V comparable](a *DFA[N1, V], b *DFA[N2, V], cfg Config) (*DFA[Pair[N1, N2], V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if a.start == noStart || b.start == noStart {
		return nil, ErrNoStart
	}

	name := func(p pairIndex) Pair[N1, N2] {
		return Pair[N1, N2]{First: a.states[p.a].name, Second: b.states[p.b].name}
	}
	accepting := func(p pairIndex) bool {
		return a.states[p.a].accept && b.states[p.b].accept
	}

	out := New[Pair[N1, N2], V]()
	start := pairIndex{a: a.start, b: b.start}
	if err := out.AddStart(name(start)); err != nil {
		return nil, err
	}

	stack := []pairIndex{start}
	seen := make(map[pairIndex]struct{})
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[cur]; ok {
			continue
		}
		seen[cur] = struct{}{}

		curName := name(cur)
		if accepting(cur) {
			out.markAccept(curName)
		}

		sb := &b.states[cur.b]
		for _, e := range a.states[cur.a].edges {
			j, ok := sb.bySym[e.Symbol]
			if !ok {
				continue
			}
			next := pairIndex{a: a.index[e.To], b: b.index[sb.edges[j].To]}
			nextName := name(next)
			out.AddTransition(curName, e.Symbol, nextName)
			if cfg.Exceeded(out.NumStates()) {
				return nil, stateLimit(cfg.MaxStates)
			}
			if accepting(next) {
				out.markAccept(nextName)
			}
			if _, ok := seen[next]; !ok {
				stack = append(stack, next)
			}
		}
	}
	return out, nil
}
