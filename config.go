package fsa

import (
	"errors"
	"log/slog"

	"github.com/coregx/fsa/dfa"
	"github.com/coregx/fsa/dfa/lazy"
	"github.com/coregx/fsa/trie"
)

// Config controls how dictionaries and documents are built and searched.
//
// Example:
//
//	config := fsa.DefaultConfig()
//	config.Chunk = 16
//	doc, err := fsa.NewDocument(f, config)
type Config struct {
	// MaxStates bounds every automaton built while searching (the
	// Levenshtein DFA and its intersection with the index). A search that
	// needs more states fails with dfa.ErrStateLimitExceeded.
	//
	// Default: 0 (unlimited)
	MaxStates int

	// Chunk is the window size used to index documents. Matches longer
	// than Chunk bytes cannot be found.
	//
	// Default: 10
	Chunk int

	// CacheStates is the number of decoded states kept when a dictionary
	// is opened lazily with OpenDictionary.
	//
	// Default: 4,096
	CacheStates uint32

	// Logger receives debug output about automaton sizes and timings.
	// Nil discards it.
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxStates:   0,
		Chunk:       trie.DefaultChunk,
		CacheStates: lazy.DefaultConfig().MaxStates,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MaxStates < 0 {
		return errors.New("fsa: MaxStates must be >= 0")
	}
	if c.Chunk < 1 {
		return errors.New("fsa: Chunk must be >= 1")
	}
	if c.CacheStates == 0 {
		return errors.New("fsa: CacheStates must be > 0")
	}
	return nil
}

// WithMaxStates returns a new config with the specified state limit.
func (c Config) WithMaxStates(n int) Config {
	c.MaxStates = n
	return c
}

// WithChunk returns a new config with the specified window size.
func (c Config) WithChunk(n int) Config {
	c.Chunk = n
	return c
}

// WithCacheStates returns a new config with the specified lazy cache size.
func (c Config) WithCacheStates(n uint32) Config {
	c.CacheStates = n
	return c
}

// WithLogger returns a new config logging to l.
func (c Config) WithLogger(l *slog.Logger) Config {
	c.Logger = l
	return c
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func (c Config) dfaConfig() dfa.Config {
	return dfa.DefaultConfig().WithMaxStates(c.MaxStates)
}

func (c Config) lazyConfig() lazy.Config {
	return lazy.DefaultConfig().WithMaxStates(c.CacheStates)
}
