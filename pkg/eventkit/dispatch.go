package eventkit

import (
	"context"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/randalmurphal/eventkit/pkg/eventkit/journal"
	"github.com/randalmurphal/eventkit/pkg/eventkit/observability"
)

// namespaceMarker suffixes registry keys that match by name prefix.
const namespaceMarker = ".*"

// wildcardKey matches every dispatched event name.
const wildcardKey = "*"

// Dispatch modes.
const (
	modeBroadcast = "broadcast"
	modeCall      = "call"
)

// Emit dispatches an event in broadcast mode: every matching handler runs,
// handler failures stay isolated, and nothing is returned to the caller.
// Emit fails only when a middleware aborts the dispatch.
func (d *Dispatcher) Emit(ctx context.Context, name string, payload any) error {
	if ctx == nil {
		return ErrNilContext
	}
	_, err := d.processEvent(ctx, Event{Name: name, Payload: payload}, false)
	return err
}

// Call dispatches an event in call mode and returns every handler result
// in dispatch order: exact handlers first, then namespace handlers, then
// wildcard handlers. The first handler failure fails the whole call and
// discards results from phases not yet joined.
func (d *Dispatcher) Call(ctx context.Context, name string, payload any) ([]any, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	return d.processEvent(ctx, Event{Name: name, Payload: payload}, true)
}

// Group dispatches several events concurrently, each in broadcast mode.
// Handler failures stay isolated per event; a middleware failure on any
// event fails the group after all dispatches finish.
func (d *Dispatcher) Group(ctx context.Context, events ...Event) error {
	if ctx == nil {
		return ErrNilContext
	}

	var g errgroup.Group
	for _, evt := range events {
		evt := evt
		g.Go(func() error {
			_, err := d.processEvent(ctx, evt, false)
			return err
		})
	}
	return g.Wait()
}

// binding pairs a registry key with one of its handlers for a single phase.
type binding struct {
	key     string
	handler Handler
}

// processEvent drives one dispatch: middleware first, then the exact,
// namespace, and wildcard phases in order. Each phase fans out
// concurrently and joins fully before the next phase starts. When collect
// is true the join is all-or-fail and results are returned; otherwise the
// join is best-effort and outcomes are only recorded.
func (d *Dispatcher) processEvent(ctx context.Context, evt Event, collect bool) (results []any, err error) {
	mode := modeBroadcast
	if collect {
		mode = modeCall
	}

	dispatchID := uuid.New().String()
	ctx = withDispatch(ctx, dispatchID, evt.Name)

	ctx, span := d.spans.StartDispatchSpan(ctx, evt.Name, mode, dispatchID)
	start := time.Now()
	rec := journal.New(dispatchID, evt.Name, mode)

	var matched int
	defer func() {
		durationMs := float64(time.Since(start).Milliseconds())
		d.metrics.RecordDispatch(ctx, evt.Name, mode, time.Since(start), err)
		d.spans.EndSpanWithError(span, err)
		if err != nil {
			observability.LogDispatchError(d.logger, dispatchID, evt.Name, mode, err, durationMs)
		} else {
			observability.LogDispatchComplete(d.logger, dispatchID, evt.Name, mode, durationMs, matched)
		}
		if d.journal != nil {
			rec.WithDuration(durationMs).WithError(err)
			if jerr := d.journal.Append(rec); jerr != nil {
				observability.LogJournalError(d.logger, dispatchID, jerr)
			}
		}
	}()

	observability.LogDispatchStart(d.logger, dispatchID, evt.Name, mode)

	if err = d.runMiddleware(ctx, evt); err != nil {
		return nil, err
	}

	phases := [][]binding{
		d.matchExact(evt.Name),
		d.matchNamespace(evt.Name),
		d.matchWildcard(),
	}

	for _, bindings := range phases {
		matched += len(bindings)
		if collect {
			values, perr := d.collectPhase(ctx, evt, bindings, rec)
			if perr != nil {
				return nil, perr
			}
			results = append(results, values...)
		} else {
			d.broadcastPhase(ctx, evt, bindings, rec)
		}
	}

	return results, nil
}

// matchExact gathers handlers registered under the event name verbatim.
func (d *Dispatcher) matchExact(name string) []binding {
	handlers, ok := d.registry[name]
	if !ok {
		return nil
	}
	bindings := make([]binding, 0, len(handlers))
	for _, h := range handlers {
		bindings = append(bindings, binding{key: name, handler: h})
	}
	return bindings
}

// matchNamespace gathers handlers under every namespace key whose
// marker-stripped prefix leads the event name. The prefix test is a plain
// string prefix, so "user.*" matches "userland" as well as "user.created".
// Key order follows registry iteration and is not guaranteed.
func (d *Dispatcher) matchNamespace(name string) []binding {
	var bindings []binding
	for key, handlers := range d.registry {
		if !strings.HasSuffix(key, namespaceMarker) {
			continue
		}
		prefix := strings.TrimSuffix(key, namespaceMarker)
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		for _, h := range handlers {
			bindings = append(bindings, binding{key: key, handler: h})
		}
	}
	return bindings
}

// matchWildcard gathers handlers registered under the global wildcard.
func (d *Dispatcher) matchWildcard() []binding {
	handlers, ok := d.registry[wildcardKey]
	if !ok {
		return nil
	}
	bindings := make([]binding, 0, len(handlers))
	for _, h := range handlers {
		bindings = append(bindings, binding{key: wildcardKey, handler: h})
	}
	return bindings
}

// collectPhase runs one phase's handlers concurrently and joins
// all-or-fail: every handler starts before any is awaited, and the first
// failure fails the phase. Results come back in binding order.
func (d *Dispatcher) collectPhase(ctx context.Context, evt Event, bindings []binding, rec *journal.Record) ([]any, error) {
	if len(bindings) == 0 {
		return nil, nil
	}

	results := make([]any, len(bindings))
	var g errgroup.Group
	for i, b := range bindings {
		i, b := i, b
		g.Go(func() error {
			value, err := d.invoke(ctx, evt, b)
			if err != nil {
				return err
			}
			results[i] = value
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, b := range bindings {
		rec.WithOutcome(b.key, nil)
	}
	return results, nil
}

// broadcastPhase runs one phase's handlers concurrently and joins
// best-effort: every outcome is captured and failures stay isolated from
// sibling handlers and from the caller.
func (d *Dispatcher) broadcastPhase(ctx context.Context, evt Event, bindings []binding, rec *journal.Record) {
	if len(bindings) == 0 {
		return
	}

	type outcome struct {
		key string
		err error
	}

	outcomes := make(chan outcome, len(bindings))
	var wg sync.WaitGroup

	for _, b := range bindings {
		wg.Add(1)
		go func(b binding) {
			defer wg.Done()
			_, err := d.invoke(ctx, evt, b)
			outcomes <- outcome{key: b.key, err: err}
		}(b)
	}

	wg.Wait()
	close(outcomes)

	for o := range outcomes {
		if o.err != nil {
			observability.LogHandlerError(d.logger, DispatchID(ctx), evt.Name, o.key, o.err)
			if d.onError != nil {
				d.onError(evt, o.err)
			}
		}
		rec.WithOutcome(o.key, o.err)
	}
}

// invoke runs a single handler, translating panics into errors and
// recording per-handler observability.
func (d *Dispatcher) invoke(ctx context.Context, evt Event, b binding) (value any, err error) {
	hctx, span := d.spans.StartHandlerSpan(ctx, evt.Name, b.key)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: string(debug.Stack())}
		}
		if err != nil {
			err = &HandlerError{Event: evt.Name, Key: b.key, Err: err}
		}
		d.metrics.RecordHandler(hctx, evt.Name, b.key, time.Since(start), err)
		d.spans.EndSpanWithError(span, err)
	}()

	value, err = b.handler(hctx, evt)
	return value, err
}
