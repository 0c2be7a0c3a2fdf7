// Package observability provides production-grade observability features
// for eventkit: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds eventkit dispatch context to a logger.
// Returns a new logger with dispatch_id and event fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "d-123", "user.created")
//	enriched.Info("doing work") // includes dispatch_id, event
func EnrichLogger(logger *slog.Logger, dispatchID, event string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("dispatch_id", dispatchID),
		slog.String("event", event),
	)
}

// LogDispatchStart logs the start of an event dispatch.
func LogDispatchStart(logger *slog.Logger, dispatchID, event, mode string) {
	if logger == nil {
		return
	}
	logger.Debug("dispatch starting",
		slog.String("dispatch_id", dispatchID),
		slog.String("event", event),
		slog.String("mode", mode),
	)
}

// LogDispatchComplete logs successful dispatch completion.
func LogDispatchComplete(logger *slog.Logger, dispatchID, event, mode string, durationMs float64, matched int) {
	if logger == nil {
		return
	}
	logger.Info("dispatch completed",
		slog.String("dispatch_id", dispatchID),
		slog.String("event", event),
		slog.String("mode", mode),
		slog.Float64("duration_ms", durationMs),
		slog.Int("handlers_matched", matched),
	)
}

// LogDispatchError logs dispatch failure.
func LogDispatchError(logger *slog.Logger, dispatchID, event, mode string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("dispatch failed",
		slog.String("dispatch_id", dispatchID),
		slog.String("event", event),
		slog.String("mode", mode),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogHandlerError logs a handler failure that broadcast dispatch isolated.
func LogHandlerError(logger *slog.Logger, dispatchID, event, key string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("handler failed",
		slog.String("dispatch_id", dispatchID),
		slog.String("event", event),
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

// LogJournalError logs a journal append failure (non-fatal).
func LogJournalError(logger *slog.Logger, dispatchID string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("journal append failed",
		slog.String("dispatch_id", dispatchID),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
