package nfa

import (
	"fmt"
	"sync/atomic"
)

// Kind identifies the type of an NFA transition label.
type Kind uint8

const (
	// KindSymbol labels a transition that consumes one concrete symbol
	KindSymbol Kind = iota

	// KindEpsilon labels a transition that consumes no input
	KindEpsilon

	// KindAny labels a transition that consumes any symbol of the alphabet
	// supplied at conversion time
	KindAny
)

// String returns a human-readable representation of the Kind
func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "Symbol"
	case KindEpsilon:
		return "Epsilon"
	case KindAny:
		return "Any"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// labelSeq numbers every label ever minted. It is process-wide because labels
// can be minted outside any NFA and copied between NFAs.
var labelSeq atomic.Uint64

// Label is the transition value of an NFA: a concrete symbol, an epsilon or
// an any-symbol wildcard.
//
// Every label carries a unique sequence number, so two labels never compare
// equal even when they were built from the same symbol. This is what lets
// several transitions leave one state on the "same" symbol: each is a
// distinct key in the underlying transition table.
type Label[V comparable] struct {
	kind Kind
	sym  V
	seq  uint64
}

func mint[V comparable](k Kind, sym V) Label[V] {
	return Label[V]{kind: k, sym: sym, seq: labelSeq.Add(1)}
}

// Symbol returns a fresh label that consumes v.
func Symbol[V comparable](v V) Label[V] {
	return mint(KindSymbol, v)
}

// Epsilon returns a fresh epsilon label.
func Epsilon[V comparable]() Label[V] {
	var zero V
	return mint(KindEpsilon, zero)
}

// Any returns a fresh wildcard label.
func Any[V comparable]() Label[V] {
	var zero V
	return mint(KindAny, zero)
}

// Kind returns the label kind.
func (l Label[V]) Kind() Kind {
	return l.kind
}

// Value returns the symbol of a KindSymbol label. The boolean is false for
// epsilon and wildcard labels.
func (l Label[V]) Value() (V, bool) {
	return l.sym, l.kind == KindSymbol
}

// String returns a human-readable representation of the label
func (l Label[V]) String() string {
	switch l.kind {
	case KindEpsilon:
		return "ε"
	case KindAny:
		return "*"
	default:
		return fmt.Sprintf("%v", l.sym)
	}
}
