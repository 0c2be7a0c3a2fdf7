package eventkit

import (
	"context"
	"errors"
	"fmt"
)

// Event pairs an event name with its payload.
type Event struct {
	// Name is the concrete event name, e.g. "user.created".
	Name string
	// Payload is the opaque value delivered to handlers.
	Payload any
}

// Handler processes a dispatched event and optionally returns a value.
// The event carries the concrete name that triggered the handler, which
// namespace and wildcard handlers use to tell their matches apart.
type Handler func(ctx context.Context, evt Event) (any, error)

// Schema maps registry keys to handlers.
//
// Keys are matched against dispatched event names in three ways:
//   - exact: "user.created" matches only "user.created"
//   - namespace: "user.*" matches every name starting with "user."
//     (plain string prefix, so it also matches "user.profile.updated")
//   - wildcard: "*" matches every name
//
// Any string is a legal key; no syntax validation is performed.
type Schema map[string]Handler

// ErrPayloadType indicates a typed handler received a payload of the wrong type.
var ErrPayloadType = errors.New("payload type mismatch")

// Typed adapts a strongly typed function into a Handler.
// The returned handler fails with ErrPayloadType when the dispatched
// payload is not a T.
func Typed[T any](fn func(ctx context.Context, name string, payload T) (any, error)) Handler {
	return func(ctx context.Context, evt Event) (any, error) {
		payload, ok := evt.Payload.(T)
		if !ok {
			return nil, fmt.Errorf("%w: event %q carries %T", ErrPayloadType, evt.Name, evt.Payload)
		}
		return fn(ctx, evt.Name, payload)
	}
}
