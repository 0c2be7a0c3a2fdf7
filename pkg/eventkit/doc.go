/*
Package eventkit provides an in-process, typed event-dispatch engine.

# Overview

eventkit routes named events to handlers registered ahead of time.
Handlers are registered under exact names, namespace prefixes, or a
global wildcard, and every dispatch fans out concurrently to all of
them. A middleware chain intercepts each dispatch before any handler
runs.

The engine offers two invocation modes:
  - Broadcast (Emit, Group): fire-and-forget, handler failures are
    isolated and never reach the caller
  - Call: request/response, handler results come back in order and the
    first failure fails the whole dispatch

# Basic Usage

Register handlers via schemas, then dispatch:

	users := eventkit.Schema{
	    "user.created": func(ctx context.Context, evt eventkit.Event) (any, error) {
	        fmt.Printf("welcome %v\n", evt.Payload)
	        return nil, nil
	    },
	}

	audit := eventkit.Schema{
	    "*": func(ctx context.Context, evt eventkit.Event) (any, error) {
	        log.Printf("seen: %s", evt.Name)
	        return nil, nil
	    },
	}

	d := eventkit.New(eventkit.DefaultConfig, users, audit)

	if err := d.Emit(context.Background(), "user.created", "ada"); err != nil {
	    log.Fatal(err)
	}

Schemas merge in order; several schemas may register the same key and
every handler accumulates and runs.

# Matching

A dispatched name is matched against the registry in three phases, in
this order:

 1. Exact: handlers under the name verbatim.
 2. Namespace: handlers under every key ending in ".*" whose stripped
    prefix leads the name. The test is a plain string prefix, so
    "user.*" matches "user.created" and also "userland".
 3. Wildcard: handlers under the literal key "*".

Each phase starts all of its handlers before awaiting any, and joins
fully before the next phase begins. A name that matches nothing is a
no-op, not an error.

# Middleware

Middleware runs ahead of every dispatch and controls when handlers see
the event:

	d.Use(func(ctx context.Context, evt eventkit.Event, next func()) error {
	    if !authorized(evt) {
	        return fmt.Errorf("unauthorized")
	    }
	    next()
	    return nil
	})

Returning an error before calling next aborts the dispatch with a
MiddlewareError. next may be handed to asynchronous work; the dispatch
stays suspended until it fires.

# Typed Handlers

Use Typed to receive a concrete payload type:

	"order.placed": eventkit.Typed(func(ctx context.Context, name string, o Order) (any, error) {
	    return o.Total(), nil
	}),

A payload of the wrong type fails the handler with ErrPayloadType.

# Observability

Enable logging, metrics, and tracing via Config:

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	d := eventkit.New(eventkit.Config{
	    Logger:  logger,
	    Metrics: true,
	    Tracing: true,
	}, schemas...)

Logs include structured fields: dispatch_id, event, mode, duration_ms.
OpenTelemetry metrics: eventkit.dispatches, eventkit.handler.executions, etc.
OpenTelemetry tracing: eventkit.dispatch > eventkit.handler spans.

# Journaling

Persist an audit record per dispatch:

	rec, err := journal.NewSQLiteJournal("./journal.db")
	if err != nil {
	    log.Fatal(err)
	}
	defer rec.Close()

	d := eventkit.New(eventkit.Config{Journal: rec}, schemas...)

Journal failures are logged and never fail a dispatch.

# Error Handling

Errors carry dispatch context:

	_, err := d.Call(ctx, "order.placed", order)
	var handlerErr *eventkit.HandlerError
	if errors.As(err, &handlerErr) {
	    log.Printf("handler %s failed: %v", handlerErr.Key, handlerErr.Err)
	}

Panics in handlers and middleware are recovered and converted to
PanicError with a stack trace.

# Thread Safety

  - Dispatcher IS safe for concurrent dispatch (registry is immutable)
  - Use is NOT synchronized with dispatch; add middleware before emitting
  - Recorder implementations are safe for concurrent use

# Subpackages

  - journal: Dispatch audit records (memory, SQLite)
  - observability: Logging, metrics, and tracing helpers
  - config: File and environment configuration loading
*/
package eventkit
