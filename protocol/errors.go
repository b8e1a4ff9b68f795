package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady is returned for a command sent before the engine is listening.
	// Such commands are dropped.
	ErrNotReady = errors.New("engine not ready")

	// ErrUnknownMessage is returned when decoding an unrecognized action or status tag.
	ErrUnknownMessage = errors.New("unknown message")

	// ErrMalformed is returned when a message lacks the payload its tag requires.
	ErrMalformed = errors.New("malformed message")
)

// BackendError reports a playback backend failure. The engine logs it and
// stays in its prior state.
type BackendError struct {
	Op      string
	Variant string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend: %s: %v", e.Variant, e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
