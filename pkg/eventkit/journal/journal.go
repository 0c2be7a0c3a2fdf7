package journal

import (
	"encoding/json"
	"time"
)

// Version is the current journal record format version.
// Increment when making breaking changes to record structure.
const Version = 1

// Record is the persisted audit entry for a single dispatch.
// It captures what was dispatched and how every matched handler fared.
type Record struct {
	// Metadata
	Version    int       `json:"version"`
	DispatchID string    `json:"dispatch_id"`
	Event      string    `json:"event"`
	Mode       string    `json:"mode"`
	Timestamp  time.Time `json:"timestamp"`

	// Outcome
	DurationMs float64          `json:"duration_ms"`
	Error      string           `json:"error,omitempty"`
	Handlers   []HandlerOutcome `json:"handlers,omitempty"`
}

// HandlerOutcome records the result of one handler execution.
type HandlerOutcome struct {
	Key   string `json:"key"`
	Error string `json:"error,omitempty"`
}

// Marshal serializes a record to JSON.
func (r *Record) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// Unmarshal deserializes a record from JSON.
func Unmarshal(data []byte) (*Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// New creates a new record for a dispatch.
func New(dispatchID, event, mode string) *Record {
	return &Record{
		Version:    Version,
		DispatchID: dispatchID,
		Event:      event,
		Mode:       mode,
		Timestamp:  time.Now().UTC(),
	}
}

// WithDuration sets the dispatch duration in milliseconds.
func (r *Record) WithDuration(ms float64) *Record {
	r.DurationMs = ms
	return r
}

// WithError sets the dispatch-level error, if any.
func (r *Record) WithError(err error) *Record {
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// WithOutcome appends the result of one handler execution.
func (r *Record) WithOutcome(key string, err error) *Record {
	outcome := HandlerOutcome{Key: key}
	if err != nil {
		outcome.Error = err.Error()
	}
	r.Handlers = append(r.Handlers, outcome)
	return r
}
