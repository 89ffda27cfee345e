package lazy

import "fmt"

// Error types for lazy traversal

// ErrInvalidOffset indicates that a state offset does not point at a state
// record of the stream.
var ErrInvalidOffset = &DFAError{
	Kind:    InvalidOffset,
	Message: "offset is not a state record",
}

// ErrInvalidConfig indicates that the provided configuration is invalid.
var ErrInvalidConfig = &DFAError{
	Kind:    InvalidConfig,
	Message: "invalid lazy DFA configuration",
}

// ErrClosed indicates use of a DFA after Close.
var ErrClosed = &DFAError{
	Kind:    Closed,
	Message: "lazy DFA is closed",
}

// ErrorKind classifies lazy DFA errors into categories
type ErrorKind uint8

const (
	// InvalidOffset indicates a lookup at an offset without a state record
	InvalidOffset ErrorKind = iota

	// InvalidConfig indicates configuration validation failed
	InvalidConfig

	// Closed indicates the backing storage has been released
	Closed

	// Format indicates the stream is not a normalized automaton
	Format
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case InvalidOffset:
		return "InvalidOffset"
	case InvalidConfig:
		return "InvalidConfig"
	case Closed:
		return "Closed"
	case Format:
		return "Format"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// DFAError represents an error that occurred during lazy traversal
type DFAError struct {
	Kind    ErrorKind
	Message string
	Cause   error // Optional underlying error
}

// Error implements the error interface
func (e *DFAError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *DFAError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *DFAError) Is(target error) bool {
	t, ok := target.(*DFAError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func invalidOffset(off int64) error {
	return &DFAError{Kind: InvalidOffset, Message: fmt.Sprintf("offset %d is not a state record", off)}
}

func formatError(msg string, cause error) error {
	return &DFAError{Kind: Format, Message: msg, Cause: cause}
}
