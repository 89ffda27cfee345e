package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrAnySurvived indicates that epsilon elimination found a wildcard
	// transition. RemoveAny must run first.
	ErrAnySurvived = errors.New("wildcard transition survived into epsilon elimination")

	// ErrUnresolvedLabel indicates that label resolution found an epsilon or
	// wildcard transition. RemoveAny and RemoveEpsilon must run first.
	ErrUnresolvedLabel = errors.New("epsilon or wildcard transition cannot be resolved")
)

// Stage names a step of the NFA to DFA conversion pipeline.
type Stage uint8

const (
	// StageRemoveEpsilon is the epsilon elimination (subset construction)
	// step. Wildcard expansion cannot fail and has no stage.
	StageRemoveEpsilon Stage = iota + 1

	// StageResolveLabels is the label unwrapping step
	StageResolveLabels
)

// String returns a human-readable representation of the Stage
func (s Stage) String() string {
	switch s {
	case StageRemoveEpsilon:
		return "RemoveEpsilon"
	case StageResolveLabels:
		return "ResolveLabels"
	default:
		return fmt.Sprintf("Stage(%d)", s)
	}
}

// ConvertError wraps a conversion failure with the stage that produced it
// and, when known, the offending state.
type ConvertError struct {
	Stage Stage
	State string
	Err   error
}

// Error implements the error interface
func (e *ConvertError) Error() string {
	if e.State != "" {
		return fmt.Sprintf("NFA conversion failed in %s at state %s: %v", e.Stage, e.State, e.Err)
	}
	return fmt.Sprintf("NFA conversion failed in %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error
func (e *ConvertError) Unwrap() error {
	return e.Err
}

func convertError[N any](stage Stage, s N, err error) error {
	return &ConvertError{Stage: stage, State: fmt.Sprint(s), Err: err}
}
