package dfa

import (
	"errors"
	"math/rand/v2"
	"testing"
)

// randomDFA builds a DFA with n states over the given alphabet. Every
// (state, symbol) pair gets a transition with probability 2/3.
func randomDFA(r *rand.Rand, n int, alphabet []byte) *DFA[int, byte] {
	d := New[int, byte]()
	for i := 0; i < n; i++ {
		d.AddState(i)
	}
	_ = d.AddStart(0)
	for i := 0; i < n; i++ {
		for _, sym := range alphabet {
			if r.IntN(3) > 0 {
				d.AddTransition(i, sym, r.IntN(n))
			}
		}
		if r.IntN(3) == 0 {
			_ = d.AddFinalState(i)
		}
	}
	return d
}

// allStrings returns every string over alphabet of length <= maxLen.
func allStrings(alphabet []byte, maxLen int) [][]byte {
	out := [][]byte{{}}
	frontier := [][]byte{{}}
	for l := 0; l < maxLen; l++ {
		var next [][]byte
		for _, s := range frontier {
			for _, c := range alphabet {
				w := append(append([]byte{}, s...), c)
				next = append(next, w)
			}
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}

func TestIntersection_Law(t *testing.T) {
	alphabet := []byte("ab")
	inputs := allStrings(alphabet, 6)
	r := rand.New(rand.NewPCG(1, 2))

	for trial := 0; trial < 25; trial++ {
		d1 := randomDFA(r, 1+r.IntN(5), alphabet)
		d2 := randomDFA(r, 1+r.IntN(5), alphabet)
		inter, err := Intersection(d1, d2)
		if err != nil {
			t.Fatalf("trial %d: Intersection: %v", trial, err)
		}
		for _, s := range inputs {
			want := d1.Run(s) && d2.Run(s)
			if got := inter.Run(s); got != want {
				t.Fatalf("trial %d: intersection.Run(%q) = %v, want %v", trial, s, got, want)
			}
		}
	}
}

func TestIntersection_OnlyReachablePairs(t *testing.T) {
	d1 := New[string, byte]()
	_ = d1.AddStart("a0")
	d1.AddTransition("a0", 'x', "a1")
	d1.AddTransition("a0", 'y', "a2")
	d1.AddTransition("a9", 'x', "a9") // unreachable
	_ = d1.AddFinalState("a1")

	d2 := New[string, byte]()
	_ = d2.AddStart("b0")
	d2.AddTransition("b0", 'x', "b1")
	d2.AddTransition("b0", 'z', "b2")
	_ = d2.AddFinalState("b1")

	inter, err := Intersection(d1, d2)
	if err != nil {
		t.Fatal(err)
	}
	if inter.NumStates() != 2 {
		t.Errorf("NumStates() = %d, want 2: %v", inter.NumStates(), inter.States())
	}
	start, _ := inter.Start()
	if start != (Pair[string, string]{First: "a0", Second: "b0"}) {
		t.Errorf("Start() = %v", start)
	}
	accept := inter.AcceptStates()
	if len(accept) != 1 || accept[0].String() != "(a1, b1)" {
		t.Errorf("AcceptStates() = %v", accept)
	}
	if !inter.Run([]byte("x")) || inter.Run([]byte("y")) || inter.Run([]byte("z")) {
		t.Error("intersection language mismatch")
	}
}

func TestIntersection_MixedStateTypes(t *testing.T) {
	words := New[string, byte]()
	_ = words.AddStart("")
	words.AddTransition("", 'o', "o")
	words.AddTransition("o", 'k', "ok")
	_ = words.AddFinalState("ok")

	// Accepts every string of even length.
	even := New[int, byte]()
	_ = even.AddStart(0)
	for _, c := range []byte("ok") {
		even.AddTransition(0, c, 1)
		even.AddTransition(1, c, 0)
	}
	_ = even.AddFinalState(0)

	inter, err := Intersection(words, even)
	if err != nil {
		t.Fatal(err)
	}
	if !inter.Run([]byte("ok")) {
		t.Error("Run(ok) = false, want true")
	}
	paths, err := inter.AcceptPaths()
	if err != nil || len(paths) != 1 || string(paths[0]) != "ok" {
		t.Errorf("AcceptPaths() = %q, %v", paths, err)
	}
}

func TestIntersection_NoStart(t *testing.T) {
	d1 := New[int, byte]()
	d2 := New[int, byte]()
	_ = d2.AddStart(0)
	if _, err := Intersection(d1, d2); !errors.Is(err, ErrNoStart) {
		t.Errorf("Intersection error = %v, want ErrNoStart", err)
	}
	if _, err := Intersection(d2, d1); !errors.Is(err, ErrNoStart) {
		t.Errorf("Intersection (swapped) error = %v, want ErrNoStart", err)
	}
}

func TestIntersection_StateLimit(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	alphabet := []byte("abc")
	d1 := randomDFA(r, 8, alphabet)
	d2 := randomDFA(r, 8, alphabet)

	full, err := Intersection(d1, d2)
	if err != nil {
		t.Fatal(err)
	}
	if full.NumStates() < 2 {
		t.Skip("random product too small to exercise the limit")
	}

	_, err = IntersectionWithConfig(d1, d2, DefaultConfig().WithMaxStates(1))
	if !errors.Is(err, ErrStateLimitExceeded) {
		t.Errorf("error = %v, want ErrStateLimitExceeded", err)
	}

	_, err = IntersectionWithConfig(d1, d2, Config{MaxStates: -1})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}
