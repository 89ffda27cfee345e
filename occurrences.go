package fsa

import (
	"fmt"
	"maps"
	"slices"

	"github.com/coregx/ahocorasick"
)

// Occurrences finds every (possibly overlapping) occurrence of each needle
// in text and returns the start offsets per needle, in ascending order.
// Empty needles and needles that never occur are absent from the result.
//
// Needles are scanned with one Aho-Corasick automaton per needle length,
// so two needles can never compete for the same start offset.
func Occurrences(text []byte, needles []string) (map[string][]int, error) {
	byLen := make(map[int][]string)
	for _, n := range needles {
		if n == "" || slices.Contains(byLen[len(n)], n) {
			continue
		}
		byLen[len(n)] = append(byLen[len(n)], n)
	}

	out := make(map[string][]int)
	for _, size := range slices.Sorted(maps.Keys(byLen)) {
		builder := ahocorasick.NewBuilder()
		for _, n := range byLen[size] {
			builder.AddPattern([]byte(n))
		}
		auto, err := builder.Build()
		if err != nil {
			return nil, fmt.Errorf("occurrences: %w", err)
		}
		for at := 0; at < len(text); {
			m := auto.Find(text, at)
			if m == nil {
				break
			}
			s := string(text[m.Start:m.End])
			out[s] = append(out[s], m.Start)
			at = m.Start + 1
		}
	}
	return out, nil
}
