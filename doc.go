// Package fsa provides fuzzy search over dictionaries and documents built on
// a generic finite-automata engine.
//
// The engine lives in subpackages:
//   - dfa: generic deterministic automata, intersection and compression
//   - nfa: nondeterministic automata with epsilon and wildcard transitions,
//     and their conversion to DFAs
//   - codec: a compact binary format for compressed DFAs
//   - dfa/lazy: traversal of a stored automaton without loading it
//   - trie, levenshtein: prefix trees, document indexes and edit-distance
//     automata
//
// This package ties them together. A Dictionary answers "which words are
// within k typos of this one"; a Document answers "where does something
// close to this word occur".
//
// Basic usage:
//
//	dict, err := fsa.NewDictionary(wordsFile, fsa.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	words, err := dict.Search("recieve", 2)
//
//	doc, err := fsa.NewDocument(textFile, fsa.DefaultConfig().WithChunk(12))
//	matches, err := doc.Search("adress", 1)
//	for _, m := range matches {
//	    for _, p := range m.Positions {
//	        fmt.Printf("%q at %d:%d\n", m.Text, p.Line, p.Column)
//	    }
//	}
//
// Search cost grows with the dictionary size and quickly with k; k of 1 or
// 2 is typical. Config.MaxStates bounds the automata a search may build.
package fsa
