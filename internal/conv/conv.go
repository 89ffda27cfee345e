// Package conv provides checked integer conversion helpers for the automata
// engine.
//
// These functions perform bounds checking before narrowing integer conversions
// to prevent silent overflow. They panic on overflow since this indicates a
// programming error (e.g., an automaton with more states than dense state
// indices can address).
package conv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// Int64ToInt safely converts an int64 to int.
// Panics if n does not fit into int on the current platform.
//
//go:inline
func Int64ToInt(n int64) int {
	if n < math.MinInt || n > math.MaxInt {
		panic("integer overflow: int64 value out of int range")
	}
	return int(n)
}
