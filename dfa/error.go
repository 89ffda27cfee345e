package dfa

import "fmt"

// Error types for DFA operations

// ErrDuplicateStart indicates that AddStart was called on an automaton that
// already has a start state. An automaton has exactly one start state.
var ErrDuplicateStart = &Error{
	Kind:    DuplicateStart,
	Message: "cannot set two start states",
}

// ErrUnknownState indicates that an operation referenced a state that was
// never created. States are created by AddStart, AddState and AddTransition
// only; no other operation creates a state implicitly.
var ErrUnknownState = &Error{
	Kind:    UnknownState,
	Message: "state was not created",
}

// ErrNoStart indicates that an operation requiring a start state was invoked
// on an automaton without one.
var ErrNoStart = &Error{
	Kind:    NoStart,
	Message: "start state not set",
}

// ErrMissingTransition indicates that NextState was asked for a transition
// that does not exist.
var ErrMissingTransition = &Error{
	Kind:    MissingTransition,
	Message: "transition does not exist",
}

// ErrStateLimitExceeded indicates that a construction (intersection or
// subset construction) produced more states than Config.MaxStates allows.
var ErrStateLimitExceeded = &Error{
	Kind:    StateLimitExceeded,
	Message: "DFA state limit exceeded",
}

// ErrCyclicPath indicates that AcceptPaths followed a parent chain that
// loops without reaching the start state.
var ErrCyclicPath = &Error{
	Kind:    CyclicPath,
	Message: "parent chain is cyclic",
}

// ErrInvalidConfig indicates that the provided configuration is invalid.
var ErrInvalidConfig = &Error{
	Kind:    InvalidConfig,
	Message: "invalid DFA configuration",
}

// ErrorKind classifies DFA errors into categories
type ErrorKind uint8

const (
	// DuplicateStart indicates a second start state was requested
	DuplicateStart ErrorKind = iota

	// UnknownState indicates a reference to a state that does not exist
	UnknownState

	// NoStart indicates the automaton has no start state
	NoStart

	// MissingTransition indicates a lookup of an absent transition
	MissingTransition

	// StateLimitExceeded indicates too many states were created
	StateLimitExceeded

	// CyclicPath indicates accept-path reconstruction hit a cycle
	CyclicPath

	// InvalidConfig indicates configuration validation failed
	InvalidConfig
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case DuplicateStart:
		return "DuplicateStart"
	case UnknownState:
		return "UnknownState"
	case NoStart:
		return "NoStart"
	case MissingTransition:
		return "MissingTransition"
	case StateLimitExceeded:
		return "StateLimitExceeded"
	case CyclicPath:
		return "CyclicPath"
	case InvalidConfig:
		return "InvalidConfig"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error represents an error that occurred during DFA operations.
//
// Errors compare by Kind, so errors.Is(err, ErrUnknownState) holds for every
// UnknownState error regardless of which state it names.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error // Optional underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func unknownState[N any](s N) error {
	return &Error{Kind: UnknownState, Message: fmt.Sprintf("state %v was not created", s)}
}

func missingTransition[N, V any](s N, sym V) error {
	return &Error{Kind: MissingTransition, Message: fmt.Sprintf("no transition from %v on %v", s, sym)}
}

func cyclicPath[N any](s N) error {
	return &Error{Kind: CyclicPath, Message: fmt.Sprintf("parent chain of state %v never reaches start", s)}
}

func stateLimit(limit int) error {
	return &Error{Kind: StateLimitExceeded, Message: fmt.Sprintf("DFA state limit of %d exceeded", limit)}
}
