package browserid

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by [Session.Collect] and recorded in [DiagnosticInfo.Defaulted].
var (
	// ErrNoWindow is returned when the host exposes no window object.
	// Nothing can be collected without it.
	ErrNoWindow = errors.New("no window object")

	// ErrNoDocument is returned when the window exposes no document, so no
	// drawing surface can be created.
	ErrNoDocument = errors.New("no document object")

	// ErrCanvasUnavailable is returned when the document cannot create a
	// canvas element.
	ErrCanvasUnavailable = errors.New("canvas element unavailable")

	// ErrNoContext2D is returned when a canvas refuses to hand out a 2D
	// rendering context.
	ErrNoContext2D = errors.New("failed to get 2d context")

	// ErrUnsupported is returned by host adapters when a property, method or
	// context family is not exposed by the host.
	ErrUnsupported = errors.New("unsupported by host")

	// ErrWrongType is returned by the dynamic seam when a host value exists
	// but does not have the requested type.
	ErrWrongType = errors.New("unexpected value type")

	// ErrNotFunction is returned by [Dynamic.CallFunction] when the named
	// property is not callable.
	ErrNotFunction = errors.New("property is not a function")
)

// SignalError records a soft failure while reading one host signal. The
// signal falls back to its documented default and collection continues.
// These errors appear in [DiagnosticInfo.Defaulted].
type SignalError struct {
	Signal string // signal name, e.g. "user_agent", "timezone"
	Err    error  // underlying error
}

// Error returns a human-readable description of the signal failure.
func (e *SignalError) Error() string {
	return fmt.Sprintf("signal %q: %v", e.Signal, e.Err)
}

// Unwrap returns the underlying error.
func (e *SignalError) Unwrap() error {
	return e.Err
}

// CanvasError records a fatal failure while preparing or drawing on a
// canvas. Use [errors.As] to extract the failing stage from wrapped errors.
type CanvasError struct {
	Stage string // "create", "context", "draw", "encode"
	Err   error  // underlying error
}

// Error returns a human-readable description of the canvas failure.
func (e *CanvasError) Error() string {
	return fmt.Sprintf("canvas %s failed: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *CanvasError) Unwrap() error {
	return e.Err
}

// joinCause wraps cause so that it also matches sentinel.
func joinCause(sentinel, cause error) error {
	if errors.Is(cause, sentinel) {
		return cause
	}

	return fmt.Errorf("%w: %w", sentinel, cause)
}
