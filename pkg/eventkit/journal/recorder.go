// Package journal provides persistent dispatch journaling for audit trails.
package journal

import (
	"errors"
	"time"
)

// Recorder persists dispatch records for auditing.
// Implementations must be safe for concurrent use.
type Recorder interface {
	// Append stores a record for a completed dispatch.
	// Appending an existing dispatch ID overwrites the record.
	Append(rec *Record) error

	// Load retrieves a record by dispatch ID.
	// Returns ErrNotFound if the record doesn't exist.
	Load(dispatchID string) (*Record, error)

	// List returns metadata for all records of an event, ordered by sequence.
	// Returns empty slice (not error) if the event has no records.
	List(event string) ([]Info, error)

	// Delete removes a specific record.
	// Returns nil if the record doesn't exist.
	Delete(dispatchID string) error

	// Prune removes all records older than the cutoff.
	Prune(before time.Time) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides record metadata without loading full outcomes.
type Info struct {
	DispatchID string
	Event      string
	Mode       string
	Sequence   int
	Timestamp  time.Time
	Size       int64
}

// Sentinel errors for journal operations.
var (
	// ErrNotFound indicates a record doesn't exist.
	ErrNotFound = errors.New("journal record not found")

	// ErrJournalClosed indicates the recorder has been closed.
	ErrJournalClosed = errors.New("journal closed")
)
