package lazy

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/coregx/fsa/codec"
	"github.com/coregx/fsa/dfa"
)

var words = []string{"car", "cart", "care", "cat", "dog", "do", "dot"}

// wordDFA builds a compressed trie over words.
func wordDFA(t *testing.T) *dfa.DFA[int64, byte] {
	t.Helper()
	d := dfa.New[string, byte]()
	if err := d.AddStart(""); err != nil {
		t.Fatal(err)
	}
	for _, w := range words {
		for i := 0; i < len(w); i++ {
			d.AddTransition(w[:i], w[i], w[:i+1])
		}
		if err := d.AddFinalState(w); err != nil {
			t.Fatal(err)
		}
	}
	c, err := d.Compress()
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// normalizedFile writes d to a temporary file, normalizes it and returns
// the path.
func normalizedFile(t *testing.T, d *dfa.DFA[int64, byte]) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.dfa")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := codec.Serialize(f, d); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	if _, err := codec.Normalize[byte](f); err != nil {
		t.Fatal(err)
	}
	return path
}

var queries = []struct {
	input string
	want  bool
}{
	{"car", true},
	{"cart", true},
	{"care", true},
	{"ca", false},
	{"carts", false},
	{"do", true},
	{"dot", true},
	{"dog", true},
	{"d", false},
	{"", false},
	{"zebra", false},
}

func TestOpenFile_Run(t *testing.T) {
	d := wordDFA(t)
	lz, err := OpenFile[byte](normalizedFile(t, d), DefaultConfig())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer lz.Close()

	for _, tt := range queries {
		t.Run(tt.input, func(t *testing.T) {
			got, err := lz.Run([]byte(tt.input))
			if err != nil {
				t.Fatalf("Run(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Run(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if mem := d.Run([]byte(tt.input)); mem != got {
				t.Errorf("lazy and in-memory disagree on %q", tt.input)
			}
		})
	}
}

func TestOpen_ReaderAt(t *testing.T) {
	data, err := os.ReadFile(normalizedFile(t, wordDFA(t)))
	if err != nil {
		t.Fatal(err)
	}
	lz, err := OpenWithConfig[byte](bytes.NewReader(data), int64(len(data)), DefaultConfig().WithMaxStates(2))
	if err != nil {
		t.Fatal(err)
	}

	// A tiny cache forces re-reads but must not change results.
	for i := 0; i < 3; i++ {
		for _, tt := range queries {
			got, err := lz.Run([]byte(tt.input))
			if err != nil || got != tt.want {
				t.Fatalf("Run(%q) = %v, %v; want %v", tt.input, got, err, tt.want)
			}
		}
	}
	if lz.Cache().ClearCount() == 0 {
		t.Error("expected the cache to be cleared at least once")
	}
	if lz.Cache().Size() > 2 {
		t.Errorf("cache Size() = %d, exceeds limit 2", lz.Cache().Size())
	}
}

func TestDFA_StepAndTransitions(t *testing.T) {
	data, err := os.ReadFile(normalizedFile(t, wordDFA(t)))
	if err != nil {
		t.Fatal(err)
	}
	lz, err := Open[byte](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}

	start := lz.Start()
	if start != 1 {
		t.Errorf("Start() = %d, want 1", start)
	}
	edges, err := lz.Transitions(start)
	if err != nil {
		t.Fatal(err)
	}
	if len(edges) != 2 || edges[0].Symbol != 'c' || edges[1].Symbol != 'd' {
		t.Errorf("Transitions(start) = %v", edges)
	}

	c, ok, err := lz.Step(start, 'c')
	if err != nil || !ok {
		t.Fatalf("Step(start, c) = %d, %v, %v", c, ok, err)
	}
	if c != edges[0].To {
		t.Errorf("Step(start, c) = %d, want %d", c, edges[0].To)
	}
	if _, ok, _ := lz.Step(start, 'x'); ok {
		t.Error("Step(start, x) should not exist")
	}
	st, err := lz.State(c)
	if err != nil || st.Offset() != c || st.IsMatch() || st.IsStart() {
		t.Errorf("State(%d) = %+v, %v", c, st, err)
	}

	if _, err := lz.State(start + 1); !errors.Is(err, ErrInvalidOffset) {
		t.Errorf("State(mid-record) error = %v, want ErrInvalidOffset", err)
	}
	if _, err := lz.State(int64(len(data)) + 10); !errors.Is(err, ErrInvalidOffset) {
		t.Errorf("State(past end) error = %v, want ErrInvalidOffset", err)
	}
}

func TestDFA_Load(t *testing.T) {
	d := wordDFA(t)
	data, err := os.ReadFile(normalizedFile(t, d))
	if err != nil {
		t.Fatal(err)
	}
	lz, err := Open[byte](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	mem, err := lz.Load()
	if err != nil {
		t.Fatal(err)
	}
	if mem.NumStates() != d.NumStates() {
		t.Errorf("Load().NumStates() = %d, want %d", mem.NumStates(), d.NumStates())
	}
	for _, tt := range queries {
		if got := mem.Run([]byte(tt.input)); got != tt.want {
			t.Errorf("Load().Run(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestOpen_NotNormalized(t *testing.T) {
	var buf bytes.Buffer
	if err := codec.Serialize(&buf, wordDFA(t)); err != nil {
		t.Fatal(err)
	}
	_, err := Open[byte](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if !errors.Is(err, codec.ErrNotNormalized) {
		t.Errorf("Open error = %v, want ErrNotNormalized", err)
	}

	_, err = Open[byte](bytes.NewReader([]byte{9}), 1)
	if !errors.Is(err, codec.ErrUnsupportedVersion) {
		t.Errorf("Open error = %v, want ErrUnsupportedVersion", err)
	}

	_, err = Open[byte](bytes.NewReader(nil), 0)
	if !errors.Is(err, codec.ErrTruncated) {
		t.Errorf("Open(empty) error = %v, want ErrTruncated", err)
	}
}

func TestDFA_Close(t *testing.T) {
	lz, err := OpenFile[byte](normalizedFile(t, wordDFA(t)), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := lz.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := lz.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := lz.Run([]byte("car")); !errors.Is(err, ErrClosed) {
		t.Errorf("Run after Close error = %v, want ErrClosed", err)
	}
	if _, err := lz.Load(); !errors.Is(err, ErrClosed) {
		t.Errorf("Load after Close error = %v, want ErrClosed", err)
	}
}

func TestOpenFile_Missing(t *testing.T) {
	if _, err := OpenFile[byte](filepath.Join(t.TempDir(), "nope.dfa"), DefaultConfig()); err == nil {
		t.Error("OpenFile on a missing file should fail")
	}
	empty := filepath.Join(t.TempDir(), "empty.dfa")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFile[byte](empty, DefaultConfig()); !errors.Is(err, codec.ErrTruncated) {
		t.Errorf("OpenFile(empty) error = %v, want ErrTruncated", err)
	}
}
