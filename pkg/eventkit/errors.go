package eventkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for dispatch.
var (
	// ErrNilContext indicates a dispatch method was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")
)

// HandlerError wraps an error from a handler with dispatch context.
// It reports which registry key failed for which event name.
type HandlerError struct {
	// Event is the dispatched event name.
	Event string
	// Key is the registry key whose handler failed.
	Key string
	// Err is the underlying error from the handler.
	Err error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %q for event %q: %v", e.Key, e.Event, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *HandlerError) Unwrap() error {
	return e.Err
}

// MiddlewareError wraps an error a middleware raised before releasing the
// dispatch. It aborts the dispatch: no handler runs.
type MiddlewareError struct {
	// Event is the dispatched event name.
	Event string
	// Index is the position of the failing middleware in registration order.
	Index int
	// Err is the underlying error from the middleware.
	Err error
}

// Error implements the error interface.
func (e *MiddlewareError) Error() string {
	return fmt.Sprintf("middleware %d for event %q: %v", e.Index, e.Event, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *MiddlewareError) Unwrap() error {
	return e.Err
}

// PanicError captures panic information from a handler or middleware.
// It includes the stack trace for debugging.
type PanicError struct {
	// Value is the value passed to panic().
	Value any
	// Stack is the full stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panicked: %v", e.Value)
}
