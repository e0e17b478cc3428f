package interview

import (
	"errors"
	"fmt"
)

// Operation names carried by ErrInvariant.
const (
	OpStart       = "start"
	OpSend        = "send"
	OpSkip        = "skip"
	OpPause       = "pause"
	OpStepBack    = "step-back"
	OpStepForward = "step-forward"
)

// ErrRejected is wrapped by every ErrInvariant.
var ErrRejected = errors.New("operation rejected")

// ErrInvariant reports a call the session's guards refused. Nothing was
// sent and no state changed.
type ErrInvariant struct {
	Op     string
	Phase  Phase
	Reason string
}

func (e *ErrInvariant) Error() string {
	return fmt.Sprintf("%s rejected while %s: %s", e.Op, e.Phase, e.Reason)
}

func (e *ErrInvariant) Unwrap() error { return ErrRejected }

// InitError is returned when a session could not reach the active phase.
// The session is left Failed and Start can be retried.
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("failed to start the interview: %v", e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// ErrIncompatibleSnapshot is returned when a snapshot was written by an
// incompatible format version.
var ErrIncompatibleSnapshot = errors.New("incompatible snapshot version")
