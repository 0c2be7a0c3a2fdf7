package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records metrics for event dispatch.
type MetricsRecorder interface {
	// RecordDispatch records a completed dispatch with its duration and outcome.
	RecordDispatch(ctx context.Context, event, mode string, duration time.Duration, err error)

	// RecordHandler records a single handler execution with its duration and outcome.
	RecordHandler(ctx context.Context, event, key string, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	dispatches      metric.Int64Counter
	dispatchLatency metric.Float64Histogram
	handlerRuns     metric.Int64Counter
	handlerLatency  metric.Float64Histogram
	handlerFailures metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// newOtelMetrics creates instruments against the current global meter provider.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("eventkit")

	m := &otelMetrics{}
	var err error

	m.dispatches, err = meter.Int64Counter(
		"eventkit.dispatches",
		metric.WithDescription("Total number of event dispatches"),
	)
	if err != nil {
		return nil, err
	}

	m.dispatchLatency, err = meter.Float64Histogram(
		"eventkit.dispatch.latency_ms",
		metric.WithDescription("Event dispatch latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	m.handlerRuns, err = meter.Int64Counter(
		"eventkit.handler.executions",
		metric.WithDescription("Total number of handler executions"),
	)
	if err != nil {
		return nil, err
	}

	m.handlerLatency, err = meter.Float64Histogram(
		"eventkit.handler.latency_ms",
		metric.WithDescription("Handler execution latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	m.handlerFailures, err = meter.Int64Counter(
		"eventkit.handler.failures",
		metric.WithDescription("Total number of handler failures"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// getDefaultMetrics returns the shared otelMetrics instance, creating the
// instruments on first use.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// NewMetricsRecorder creates a MetricsRecorder backed by OpenTelemetry.
// If instrument creation fails, it logs a warning and returns NoopMetrics.
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("failed to create metrics instruments, using noop metrics", "error", err)
		return NoopMetrics{}
	}
	return m
}

// RecordDispatch records a completed dispatch.
func (m *otelMetrics) RecordDispatch(ctx context.Context, event, mode string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("event", event),
		attribute.String("mode", mode),
		attribute.Bool("success", err == nil),
	)
	m.dispatches.Add(ctx, 1, attrs)
	m.dispatchLatency.Record(ctx, float64(duration.Milliseconds()), attrs)
}

// RecordHandler records a single handler execution.
func (m *otelMetrics) RecordHandler(ctx context.Context, event, key string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("event", event),
		attribute.String("key", key),
	)
	m.handlerRuns.Add(ctx, 1, attrs)
	m.handlerLatency.Record(ctx, float64(duration.Milliseconds()), attrs)
	if err != nil {
		m.handlerFailures.Add(ctx, 1, attrs)
	}
}
