package dfa

// Config bounds the constructions that can grow the state space without
// limit: intersection (up to |states1|×|states2| pairs) and subset
// construction during NFA conversion (up to 2^|states|).
//
// The zero value imposes no limit.
type Config struct {
	// MaxStates is the maximum number of states a construction may create.
	// When the limit is reached the construction stops and returns
	// ErrStateLimitExceeded.
	//
	// Default: 0 (unlimited)
	MaxStates int
}

// DefaultConfig returns a configuration without limits.
func DefaultConfig() Config {
	return Config{
		MaxStates: 0,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of acceptable range.
func (c *Config) Validate() error {
	if c.MaxStates < 0 {
		return &Error{
			Kind:    InvalidConfig,
			Message: "MaxStates must be >= 0",
		}
	}
	return nil
}

// WithMaxStates returns a new config with the specified max states
func (c Config) WithMaxStates(maxStates int) Config {
	c.MaxStates = maxStates
	return c
}

// Exceeded reports whether n states exceed the configured limit.
func (c Config) Exceeded(n int) bool {
	return c.MaxStates > 0 && n > c.MaxStates
}
