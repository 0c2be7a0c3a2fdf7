package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLogger returns a debug-level JSON logger writing into the returned buffer.
func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, buf
}

// lastRecord decodes the most recent log line from the buffer.
func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var m map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &m))
	return m
}

func TestEnrichLogger(t *testing.T) {
	t.Run("adds dispatch_id and event", func(t *testing.T) {
		logger, buf := newTestLogger()

		enriched := EnrichLogger(logger, "d-123", "user.created")
		enriched.Info("test message")

		record := lastRecord(t, buf)
		assert.Equal(t, "d-123", record["dispatch_id"])
		assert.Equal(t, "user.created", record["event"])
		assert.Equal(t, "test message", record["msg"])
	})

	t.Run("nil logger returns nil", func(t *testing.T) {
		enriched := EnrichLogger(nil, "d-123", "user.created")
		assert.Nil(t, enriched)
	})

	t.Run("empty values are included", func(t *testing.T) {
		logger, buf := newTestLogger()

		enriched := EnrichLogger(logger, "", "")
		enriched.Info("test")

		record := lastRecord(t, buf)
		assert.Equal(t, "", record["dispatch_id"])
		assert.Equal(t, "", record["event"])
	})
}

func TestLogDispatchStart(t *testing.T) {
	t.Run("logs at DEBUG level", func(t *testing.T) {
		logger, buf := newTestLogger()

		LogDispatchStart(logger, "d-456", "order.placed", "broadcast")

		record := lastRecord(t, buf)
		assert.Equal(t, "DEBUG", record["level"])
		assert.Equal(t, "dispatch starting", record["msg"])
		assert.Equal(t, "d-456", record["dispatch_id"])
		assert.Equal(t, "order.placed", record["event"])
		assert.Equal(t, "broadcast", record["mode"])
	})

	t.Run("nil logger does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			LogDispatchStart(nil, "d-123", "event", "call")
		})
	})
}

func TestLogDispatchComplete(t *testing.T) {
	t.Run("logs completion with metrics", func(t *testing.T) {
		logger, buf := newTestLogger()

		LogDispatchComplete(logger, "d-789", "order.placed", "call", 123.5, 5)

		record := lastRecord(t, buf)
		assert.Equal(t, "INFO", record["level"])
		assert.Equal(t, "dispatch completed", record["msg"])
		assert.Equal(t, "d-789", record["dispatch_id"])
		assert.Equal(t, 123.5, record["duration_ms"])
		assert.Equal(t, float64(5), record["handlers_matched"]) // JSON decodes ints as float64
	})

	t.Run("nil logger does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			LogDispatchComplete(nil, "d-123", "event", "broadcast", 100.0, 3)
		})
	})
}

func TestLogDispatchError(t *testing.T) {
	t.Run("logs dispatch error with context", func(t *testing.T) {
		logger, buf := newTestLogger()
		testErr := errors.New("middleware rejected")

		LogDispatchError(logger, "d-err", "payment.charge", "call", testErr, 50.0)

		record := lastRecord(t, buf)
		assert.Equal(t, "ERROR", record["level"])
		assert.Equal(t, "dispatch failed", record["msg"])
		assert.Equal(t, "d-err", record["dispatch_id"])
		assert.Equal(t, "payment.charge", record["event"])
		assert.Equal(t, "middleware rejected", record["error"])
		assert.Equal(t, 50.0, record["duration_ms"])
	})

	t.Run("nil logger does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			LogDispatchError(nil, "d", "event", "call", errors.New("err"), 0)
		})
	})
}

func TestLogHandlerError(t *testing.T) {
	t.Run("logs at WARN level", func(t *testing.T) {
		logger, buf := newTestLogger()
		testErr := errors.New("validation failed")

		LogHandlerError(logger, "d-1", "user.created", "user.*", testErr)

		record := lastRecord(t, buf)
		assert.Equal(t, "WARN", record["level"])
		assert.Equal(t, "handler failed", record["msg"])
		assert.Equal(t, "d-1", record["dispatch_id"])
		assert.Equal(t, "user.created", record["event"])
		assert.Equal(t, "user.*", record["key"])
		assert.Equal(t, "validation failed", record["error"])
	})

	t.Run("nil logger does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			LogHandlerError(nil, "d", "event", "key", errors.New("err"))
		})
	})
}

func TestLogJournalError(t *testing.T) {
	t.Run("logs at WARN level", func(t *testing.T) {
		logger, buf := newTestLogger()
		testErr := errors.New("disk full")

		LogJournalError(logger, "d-1", testErr)

		record := lastRecord(t, buf)
		assert.Equal(t, "WARN", record["level"])
		assert.Equal(t, "journal append failed", record["msg"])
		assert.Equal(t, "d-1", record["dispatch_id"])
		assert.Equal(t, "disk full", record["error"])
	})

	t.Run("nil logger does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			LogJournalError(nil, "d", errors.New("err"))
		})
	})
}

func TestTimedOperation(t *testing.T) {
	t.Run("measures duration", func(t *testing.T) {
		done := TimedOperation()
		time.Sleep(10 * time.Millisecond)
		duration := done()

		// Should be at least 10ms
		assert.GreaterOrEqual(t, duration, 10.0)
		// Should be less than 100ms (reasonable upper bound)
		assert.Less(t, duration, 100.0)
	})

	t.Run("returns zero for immediate call", func(t *testing.T) {
		done := TimedOperation()
		duration := done()

		// Should be very small (less than 1ms)
		assert.Less(t, duration, 1.0)
	})

	t.Run("can be called multiple times", func(t *testing.T) {
		done := TimedOperation()
		time.Sleep(5 * time.Millisecond)
		d1 := done()
		time.Sleep(5 * time.Millisecond)
		d2 := done()

		// Second call should have larger duration
		assert.Greater(t, d2, d1)
	})
}
