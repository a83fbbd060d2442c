package selsort

import (
	"errors"
	"fmt"
)

var (
	// ErrCanceled indicates a run was interrupted by its context.
	ErrCanceled = errors.New("selsort: run canceled by context")

	// ErrStepLimit indicates a run exceeded the bound from MaxSteps.
	ErrStepLimit = errors.New("selsort: step limit exceeded")

	// ErrInvalidState indicates pointers or the finalized prefix are inconsistent.
	ErrInvalidState = errors.New("selsort: invalid state")
)

// StateError wraps ErrInvalidState with the violated invariant.
type StateError struct {
	Reason string
	State  State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%v: %s (current=%d compare=%d min=%d finalized=%d/%d)",
		ErrInvalidState, e.Reason, e.State.Current, e.State.Compare, e.State.Min, len(e.State.Finalized), len(e.State.Values))
}

func (e *StateError) Unwrap() error {
	return ErrInvalidState
}
