package levenshtein

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/coregx/fsa/dfa"
	"github.com/coregx/fsa/trie"
)

// distance is the textbook dynamic-programming edit distance.
func distance(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func dictionary(t *testing.T, words ...string) (*dfa.DFA[int64, byte], []byte) {
	t.Helper()
	tr := trie.New()
	for _, w := range words {
		tr.Insert(w)
	}
	d, err := tr.Compress()
	if err != nil {
		t.Fatal(err)
	}
	return d, tr.Alphabet()
}

func TestSearch(t *testing.T) {
	dict, alphabet := dictionary(t, "hell", "hello", "help", "world", "word", "he", "yellow")

	tests := []struct {
		word string
		k    int
		want []string
	}{
		{"hello", 0, []string{"hello"}},
		{"helo", 0, []string{}},
		{"helo", 1, []string{"hell", "hello", "help"}},
		{"wrld", 1, []string{"world"}},
		{"wrd", 1, []string{"word"}},
		{"wrd", 2, []string{"word", "world"}},
		{"hello", 2, []string{"hell", "hello", "help", "yellow"}},
		{"", 2, []string{"he"}},
		{"xyz", 1, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, err := Search(dict, alphabet, []byte(tt.word), tt.k, Options{})
			if err != nil {
				t.Fatalf("Search(%q, %d): %v", tt.word, tt.k, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search(%q, %d) = %q, want %q", tt.word, tt.k, got, tt.want)
			}
		})
	}
}

// Every dictionary word within distance k is found, and nothing else.
func TestSearch_MatchesEditDistance(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	randWord := func() string {
		var sb strings.Builder
		for n := r.IntN(6); n > 0; n-- {
			sb.WriteByte("abc"[r.IntN(3)])
		}
		return sb.String()
	}

	for round := 0; round < 20; round++ {
		var words []string
		for i := 0; i < 30; i++ {
			words = append(words, randWord())
		}
		dict, alphabet := dictionary(t, words...)
		query := randWord()
		k := r.IntN(3)

		var want []string
		for _, w := range words {
			if distance(w, query) <= k && !slices.Contains(want, w) {
				want = append(want, w)
			}
		}
		slices.Sort(want)
		if want == nil {
			want = []string{}
		}

		got, err := Search(dict, alphabet, []byte(query), k, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("round %d: Search(%q, %d) = %q, want %q", round, query, k, got, want)
		}
	}
}

func TestNew_Shape(t *testing.T) {
	n := New([]byte("ab"), 1)

	start, err := n.Start()
	if err != nil {
		t.Fatal(err)
	}
	if start != (Pos{}) {
		t.Errorf("Start() = %v, want %v", start, Pos{})
	}
	want := []Pos{{"ab", 0}, {"ab", 1}}
	if got := n.AcceptStates(); !reflect.DeepEqual(got, want) {
		t.Errorf("AcceptStates() = %v, want %v", got, want)
	}
	// Layer 0: three states with match, deletion, insertion and
	// substitution; layer 1: three states with matches only.
	if n.NumStates() != 6 {
		t.Errorf("NumStates() = %d, want 6", n.NumStates())
	}
	edges, err := n.Transitions(Pos{"", 0})
	if err != nil {
		t.Fatal(err)
	}
	if len(edges) != 4 {
		t.Errorf("Transitions(start) has %d edges, want 4", len(edges))
	}
}

func TestNew_ZeroDistance(t *testing.T) {
	n := New([]byte("abc"), 0)
	d, err := n.ConvertToDFA([]byte("abcd"))
	if err != nil {
		t.Fatal(err)
	}
	for _, tt := range []struct {
		in   string
		want bool
	}{
		{"abc", true},
		{"ab", false},
		{"abcd", false},
		{"abd", false},
	} {
		if got := d.Run([]byte(tt.in)); got != tt.want {
			t.Errorf("Run(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_NegativePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("New with k < 0 should panic")
		}
	}()
	New([]byte("a"), -1)
}

func TestCompile_Substring(t *testing.T) {
	d, err := Compile([]byte("cat"), 1, []byte("abcdgostu "), Options{Substring: true})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		in   string
		want bool
	}{
		{"cat", true},
		{"cat sat", true},
		{"cut dog", true},
		{"ct", true},
		{"dog", false},
		{"c", false},
	}
	for _, tt := range tests {
		if got := d.Run([]byte(tt.in)); got != tt.want {
			t.Errorf("Run(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := Compile([]byte("cat"), -2, nil, Options{}); !errors.Is(err, ErrNegativeDistance) {
		t.Errorf("Compile(k=-2) error = %v, want ErrNegativeDistance", err)
	}
}

func TestSearch_StateLimit(t *testing.T) {
	dict, alphabet := dictionary(t, "alphabet", "alphabetic")
	_, err := Search(dict, alphabet, []byte("alphabet"), 2, Options{Config: dfa.Config{MaxStates: 3}})
	if !errors.Is(err, dfa.ErrStateLimitExceeded) {
		t.Errorf("Search error = %v, want ErrStateLimitExceeded", err)
	}
}

func TestSearch_DocumentWindows(t *testing.T) {
	idx, err := trie.Build(strings.NewReader("the cat sat on the mat"), 5)
	if err != nil {
		t.Fatal(err)
	}
	cx, err := idx.Compress()
	if err != nil {
		t.Fatal(err)
	}
	got, err := Search(cx.DFA(), cx.Alphabet(), []byte("mat"), 0, Options{Substring: true})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"mat"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Search(mat, 0) = %q, want %q", got, want)
	}

	got, err = Search(cx.DFA(), cx.Alphabet(), []byte("mat"), 1, Options{Substring: true})
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range []string{"cat s", "sat o", "mat", "at sa", "at on", "at"} {
		if !slices.Contains(got, w) {
			t.Errorf("Search(mat, 1) = %q, missing %q", got, w)
		}
	}
	for _, w := range got {
		if len(idx.Positions(w)) == 0 {
			t.Errorf("result %q has no document position", w)
		}
	}
}
