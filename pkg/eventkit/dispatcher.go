package eventkit

import (
	"log/slog"
	"sort"

	"github.com/randalmurphal/eventkit/pkg/eventkit/journal"
	"github.com/randalmurphal/eventkit/pkg/eventkit/observability"
)

// Config controls dispatcher behavior.
type Config struct {
	// Logger receives structured dispatch logs. nil disables logging.
	Logger *slog.Logger

	// OnError is called for every handler failure that broadcast dispatch
	// absorbs. May be called concurrently when dispatches overlap.
	OnError func(evt Event, err error)

	// Metrics enables OpenTelemetry metrics recording.
	Metrics bool

	// Tracing enables OpenTelemetry span creation.
	Tracing bool

	// Journal receives an audit record per dispatch. nil disables journaling.
	Journal journal.Recorder
}

// DefaultConfig provides sensible defaults: no logging, no metrics,
// no tracing, no journaling.
var DefaultConfig = Config{}

// Dispatcher routes events to handlers registered under exact names,
// namespaces, and the global wildcard.
//
// The registry is fixed at construction. Middleware may be added with Use
// before dispatching begins; all other methods are safe for concurrent use.
type Dispatcher struct {
	registry   map[string][]Handler
	middleware []Middleware

	logger  *slog.Logger
	onError func(evt Event, err error)
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	journal journal.Recorder
}

// New creates a dispatcher from the given schemas.
//
// Schemas are merged in order: when several schemas register the same key,
// the handlers accumulate and run in schema order. Later schemas never
// replace earlier ones.
func New(config Config, schemas ...Schema) *Dispatcher {
	registry := make(map[string][]Handler)
	for _, schema := range schemas {
		for key, handler := range schema {
			registry[key] = append(registry[key], handler)
		}
	}

	d := &Dispatcher{
		registry: registry,
		logger:   config.Logger,
		onError:  config.OnError,
		journal:  config.Journal,
		metrics:  observability.NoopMetrics{},
		spans:    observability.NoopSpanManager{},
	}
	if config.Metrics {
		d.metrics = observability.NewMetricsRecorder()
	}
	if config.Tracing {
		d.spans = observability.NewSpanManager()
	}
	return d
}

// Use appends middleware to the chain. Middleware runs in registration
// order before any handler sees the event.
//
// Use is not synchronized with dispatch: do not call it concurrently with
// Emit, Call, or Group.
func (d *Dispatcher) Use(mw Middleware) {
	d.middleware = append(d.middleware, mw)
}

// Events returns every registry key in sorted order.
func (d *Dispatcher) Events() []string {
	keys := make([]string, 0, len(d.registry))
	for key := range d.registry {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// HandlerCount reports how many handlers a dispatch of name would invoke,
// across exact, namespace, and wildcard matches.
func (d *Dispatcher) HandlerCount(name string) int {
	return len(d.matchExact(name)) + len(d.matchNamespace(name)) + len(d.matchWildcard())
}
