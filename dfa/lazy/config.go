package lazy

// Config configures the behavior of the lazy DFA.
//
// Records read from the stream are decoded once and kept in a bounded cache,
// trading memory for fewer reads.
type Config struct {
	// MaxStates is the maximum number of decoded state records to cache.
	// When the limit is reached the cache is cleared and refilled.
	//
	// Default: 4,096 states
	//
	// Tuning guidelines:
	//   - Dictionary lookups touch one record per input symbol, so a few
	//     hundred states cover the hot top levels of a trie
	//   - Memory-constrained: 256 states
	MaxStates uint32
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxStates: 4_096,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of acceptable range.
func (c *Config) Validate() error {
	if c.MaxStates == 0 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxStates must be > 0",
		}
	}
	return nil
}

// WithMaxStates returns a new config with the specified max states
func (c Config) WithMaxStates(maxStates uint32) Config {
	c.MaxStates = maxStates
	return c
}
