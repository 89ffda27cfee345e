package fsa

import (
	"fmt"
	"io"
	"time"

	"github.com/coregx/fsa/dfa"
	"github.com/coregx/fsa/dfa/lazy"
	"github.com/coregx/fsa/levenshtein"
	"github.com/coregx/fsa/trie"
)

// Dictionary is a compressed word list that can be searched with a bounded
// number of typos.
//
// A Dictionary is safe for concurrent use by multiple goroutines.
type Dictionary struct {
	fa       *dfa.DFA[int64, byte]
	alphabet []byte
	cfg      Config
}

// NewDictionary builds a dictionary from a newline-separated word list.
//
// Example:
//
//	dict, err := fsa.NewDictionary(strings.NewReader("hello\nhelp\nworld\n"), fsa.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	words, _ := dict.Search("helo", 1) // [hello help]
func NewDictionary(r io.Reader, cfg Config) (*Dictionary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	t, err := trie.ReadWords(r)
	if err != nil {
		return nil, err
	}
	fa, err := t.Compress()
	if err != nil {
		return nil, err
	}
	cfg.logger().Debug("dictionary built",
		"words", t.Len(),
		"states", fa.NumStates(),
		"elapsed", time.Since(start))
	return &Dictionary{fa: fa, alphabet: fa.Alphabet(), cfg: cfg}, nil
}

// LoadDictionary reads a dictionary written by Dictionary.Encode.
func LoadDictionary(r io.Reader, cfg Config) (*Dictionary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fa, err := trie.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	return &Dictionary{fa: fa, alphabet: fa.Alphabet(), cfg: cfg}, nil
}

// Contains reports whether word is in the dictionary.
func (d *Dictionary) Contains(word string) bool {
	return d.fa.Run([]byte(word))
}

// Search returns the dictionary words within k edits (insertions, deletions
// or substitutions of single bytes) of word, in ascending order.
func (d *Dictionary) Search(word string, k int) ([]string, error) {
	return search(d.cfg, d.fa, d.alphabet, word, k, false)
}

// NumStates returns the number of states of the dictionary automaton.
func (d *Dictionary) NumStates() int {
	return d.fa.NumStates()
}

// Alphabet returns the bytes used by the dictionary words.
func (d *Dictionary) Alphabet() []byte {
	return append([]byte(nil), d.alphabet...)
}

// Encode writes the dictionary to rw in the normalized binary format, which
// both LoadDictionary and OpenDictionary read.
func (d *Dictionary) Encode(rw io.ReadWriteSeeker) error {
	_, err := trie.Encode(rw, d.fa)
	return err
}

// search runs one fuzzy lookup of word against fa and logs its cost.
func search(cfg Config, fa *dfa.DFA[int64, byte], alphabet []byte, word string, k int, substring bool) ([]string, error) {
	log := cfg.logger()
	opts := levenshtein.Options{Substring: substring, Config: cfg.dfaConfig()}

	start := time.Now()
	lev, err := levenshtein.Compile([]byte(word), k, alphabet, opts)
	if err != nil {
		return nil, err
	}
	log.Debug("levenshtein automaton",
		"word", word,
		"k", k,
		"states", lev.NumStates(),
		"elapsed", time.Since(start))

	start = time.Now()
	found, err := levenshtein.Match(fa, lev, opts.Config)
	if err != nil {
		return nil, err
	}
	log.Debug("intersection",
		"word", word,
		"results", len(found),
		"elapsed", time.Since(start))
	return found, nil
}

// Lookup is a dictionary read in place from disk. It answers exact
// membership queries without loading the whole automaton.
//
// A Lookup is safe for concurrent use until Close.
type Lookup struct {
	lz *lazy.DFA[byte]
}

// OpenDictionary opens a dictionary file written by Dictionary.Encode for
// exact lookups.
func OpenDictionary(path string, cfg Config) (*Lookup, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lz, err := lazy.OpenFile[byte](path, cfg.lazyConfig())
	if err != nil {
		return nil, err
	}
	return &Lookup{lz: lz}, nil
}

// Contains reports whether word is in the dictionary.
func (l *Lookup) Contains(word string) (bool, error) {
	return l.lz.Run([]byte(word))
}

// Load reads the whole dictionary into memory for fuzzy search.
func (l *Lookup) Load(cfg Config) (*Dictionary, error) {
	fa, err := l.lz.Load()
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	return &Dictionary{fa: fa, alphabet: fa.Alphabet(), cfg: cfg}, nil
}

// Close releases the file.
func (l *Lookup) Close() error {
	return l.lz.Close()
}
