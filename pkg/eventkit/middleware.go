package eventkit

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
)

// Middleware intercepts every dispatch before any handler runs.
//
// Each middleware receives the event and a next continuation. The dispatch
// proceeds past the middleware only once next is called; a middleware that
// never calls next leaves the dispatch suspended indefinitely. Returning a
// non-nil error before calling next aborts the dispatch with a
// MiddlewareError. Errors returned after next has fired are dropped.
//
// next is idempotent and safe to call from any goroutine, so middleware
// may hand it to asynchronous work and return nil immediately.
type Middleware func(ctx context.Context, evt Event, next func()) error

// runMiddleware passes the event through the middleware chain in
// registration order. It returns nil once every middleware has called
// next, or the first error raised before a next fired.
func (d *Dispatcher) runMiddleware(ctx context.Context, evt Event) error {
	for i, mw := range d.middleware {
		done := make(chan struct{})
		var once sync.Once
		next := func() {
			once.Do(func() { close(done) })
		}

		errc := make(chan error, 1)
		go func(mw Middleware) {
			defer func() {
				if r := recover(); r != nil {
					errc <- &PanicError{Value: r, Stack: string(debug.Stack())}
				}
			}()
			errc <- mw(ctx, evt, next)
		}(mw)

		select {
		case <-done:
		case err := <-errc:
			if err == nil {
				// Returned without error and without releasing the
				// dispatch: wait for an asynchronous next.
				<-done
			} else {
				select {
				case <-done:
					// next fired before the error surfaced; too late to abort.
				default:
					return &MiddlewareError{Event: evt.Name, Index: i, Err: err}
				}
			}
		}
	}
	return nil
}

// LoggingMiddleware returns middleware that logs every dispatched event
// before releasing it to the handlers.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(ctx context.Context, evt Event, next func()) error {
		logger.Info("event dispatched",
			slog.String("event", evt.Name),
			slog.String("dispatch_id", DispatchID(ctx)),
		)
		next()
		return nil
	}
}
