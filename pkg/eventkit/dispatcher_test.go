package eventkit_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/randalmurphal/eventkit/pkg/eventkit"
)

func TestNewMergesSchemas(t *testing.T) {
	var called atomic.Int32

	count := func(ctx context.Context, evt eventkit.Event) (any, error) {
		called.Add(1)
		return nil, nil
	}

	d := eventkit.New(eventkit.DefaultConfig,
		eventkit.Schema{"user.created": count},
		eventkit.Schema{"user.created": count, "user.deleted": count},
	)

	if got := d.HandlerCount("user.created"); got != 2 {
		t.Fatalf("expected 2 handlers for user.created, got %d", got)
	}

	if err := d.Emit(context.Background(), "user.created", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called.Load() != 2 {
		t.Errorf("expected both accumulated handlers to run, got %d", called.Load())
	}
}

func TestNewEmptySchemas(t *testing.T) {
	d := eventkit.New(eventkit.DefaultConfig)

	if got := len(d.Events()); got != 0 {
		t.Errorf("expected no registry keys, got %d", got)
	}
	if err := d.Emit(context.Background(), "anything", nil); err != nil {
		t.Errorf("expected unmatched emit to be a no-op, got %v", err)
	}
}

func TestEvents(t *testing.T) {
	noop := func(ctx context.Context, evt eventkit.Event) (any, error) { return nil, nil }

	d := eventkit.New(eventkit.DefaultConfig, eventkit.Schema{
		"user.created": noop,
		"*":            noop,
		"order.*":      noop,
	})

	keys := d.Events()
	expected := []string{"*", "order.*", "user.created"}
	if len(keys) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, keys)
	}
	for i, v := range expected {
		if keys[i] != v {
			t.Errorf("at index %d: expected %s, got %s", i, v, keys[i])
		}
	}
}

func TestHandlerCountAcrossTiers(t *testing.T) {
	noop := func(ctx context.Context, evt eventkit.Event) (any, error) { return nil, nil }

	d := eventkit.New(eventkit.DefaultConfig, eventkit.Schema{
		"user.created": noop,
		"user.*":       noop,
		"*":            noop,
	})

	if got := d.HandlerCount("user.created"); got != 3 {
		t.Errorf("expected 3 matching handlers for user.created, got %d", got)
	}
	if got := d.HandlerCount("order.placed"); got != 1 {
		t.Errorf("expected only the wildcard to match order.placed, got %d", got)
	}
	if got := d.HandlerCount("userland"); got != 2 {
		t.Errorf("expected namespace and wildcard to match userland, got %d", got)
	}
}
