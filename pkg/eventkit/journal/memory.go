package journal

import (
	"sort"
	"sync"
	"time"
)

// MemoryJournal is an in-memory recorder for testing.
// Data is lost when the process exits.
type MemoryJournal struct {
	mu      sync.RWMutex
	records map[string]storedRecord // dispatchID -> record
	nextSeq int
	closed  bool
}

// storedRecord holds serialized record data with metadata for List().
type storedRecord struct {
	data      []byte
	event     string
	mode      string
	sequence  int
	timestamp time.Time
}

// NewMemoryJournal creates a new in-memory recorder.
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{
		records: make(map[string]storedRecord),
		nextSeq: 1,
	}
}

// Append implements Recorder.
func (m *MemoryJournal) Append(rec *Record) error {
	data, err := rec.Marshal()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrJournalClosed
	}

	m.records[rec.DispatchID] = storedRecord{
		data:      data,
		event:     rec.Event,
		mode:      rec.Mode,
		sequence:  m.nextSeq,
		timestamp: rec.Timestamp,
	}
	m.nextSeq++

	return nil
}

// Load implements Recorder.
func (m *MemoryJournal) Load(dispatchID string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrJournalClosed
	}

	stored, ok := m.records[dispatchID]
	if !ok {
		return nil, ErrNotFound
	}

	return Unmarshal(stored.data)
}

// List implements Recorder.
func (m *MemoryJournal) List(event string) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrJournalClosed
	}

	infos := make([]Info, 0)
	for dispatchID, stored := range m.records {
		if stored.event != event {
			continue
		}
		infos = append(infos, Info{
			DispatchID: dispatchID,
			Event:      stored.event,
			Mode:       stored.mode,
			Sequence:   stored.sequence,
			Timestamp:  stored.timestamp,
			Size:       int64(len(stored.data)),
		})
	}

	// Sort by sequence
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Sequence < infos[j].Sequence
	})

	return infos, nil
}

// Delete implements Recorder.
func (m *MemoryJournal) Delete(dispatchID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrJournalClosed
	}

	delete(m.records, dispatchID)
	return nil
}

// Prune implements Recorder.
func (m *MemoryJournal) Prune(before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrJournalClosed
	}

	for dispatchID, stored := range m.records {
		if stored.timestamp.Before(before) {
			delete(m.records, dispatchID)
		}
	}
	return nil
}

// Close implements Recorder.
func (m *MemoryJournal) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.records = nil
	return nil
}

// Len returns the total number of records across all events.
// Useful for testing.
func (m *MemoryJournal) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.records)
}
