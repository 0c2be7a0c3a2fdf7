package eventkit

import "context"

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const (
	// dispatchIDKey carries the unique ID assigned to each dispatch.
	dispatchIDKey contextKey = "eventkit:dispatch_id"

	// eventNameKey carries the concrete event name being dispatched.
	eventNameKey contextKey = "eventkit:event"
)

// withDispatch returns a context annotated with the dispatch ID and event name.
func withDispatch(ctx context.Context, dispatchID, event string) context.Context {
	ctx = context.WithValue(ctx, dispatchIDKey, dispatchID)
	return context.WithValue(ctx, eventNameKey, event)
}

// DispatchID extracts the dispatch ID from the context.
// Returns empty string if the context does not belong to a dispatch.
func DispatchID(ctx context.Context) string {
	if v := ctx.Value(dispatchIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// EventName extracts the concrete event name from the context.
// Returns empty string if the context does not belong to a dispatch.
func EventName(ctx context.Context) string {
	if v := ctx.Value(eventNameKey); v != nil {
		return v.(string)
	}
	return ""
}
