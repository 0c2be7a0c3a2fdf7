package journal

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// sqliteTimeLayout is RFC 3339 with a fixed-width fraction so that
// lexicographic order over stored timestamps is chronological (Prune
// compares them as strings).
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteJournal persists records to SQLite.
// It is suitable for single-process production use.
type SQLiteJournal struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteJournal creates a new SQLite recorder.
// The path should be a file path (e.g., "./journal.db") or ":memory:" for testing.
func NewSQLiteJournal(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Create table and index
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS journal (
			dispatch_id TEXT NOT NULL,
			event TEXT NOT NULL,
			mode TEXT NOT NULL,
			sequence INTEGER NOT NULL,
			timestamp TEXT NOT NULL,
			data BLOB NOT NULL,
			PRIMARY KEY (dispatch_id)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_journal_event
		ON journal(event)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteJournal{db: db}, nil
}

// Append implements Recorder.
func (s *SQLiteJournal) Append(rec *Record) error {
	data, err := rec.Marshal()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrJournalClosed
	}

	// Use INSERT OR REPLACE semantics to handle re-appends
	// Calculate sequence as max + 1 across the whole journal
	_, err = s.db.Exec(`
		INSERT INTO journal (dispatch_id, event, mode, sequence, timestamp, data)
		VALUES (
			?, ?, ?,
			COALESCE((SELECT MAX(sequence) FROM journal), 0) + 1,
			?, ?
		)
		ON CONFLICT(dispatch_id) DO UPDATE SET
			event = excluded.event,
			mode = excluded.mode,
			sequence = (SELECT MAX(sequence) FROM journal) + 1,
			timestamp = excluded.timestamp,
			data = excluded.data
	`, rec.DispatchID, rec.Event, rec.Mode, rec.Timestamp.UTC().Format(sqliteTimeLayout), data)

	if err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

// Load implements Recorder.
func (s *SQLiteJournal) Load(dispatchID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrJournalClosed
	}

	var data []byte
	err := s.db.QueryRow(`
		SELECT data FROM journal
		WHERE dispatch_id = ?
	`, dispatchID).Scan(&data)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load record: %w", err)
	}
	return Unmarshal(data)
}

// List implements Recorder.
func (s *SQLiteJournal) List(event string) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrJournalClosed
	}

	rows, err := s.db.Query(`
		SELECT dispatch_id, mode, sequence, timestamp, LENGTH(data)
		FROM journal
		WHERE event = ?
		ORDER BY sequence
	`, event)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	infos := make([]Info, 0)
	for rows.Next() {
		var info Info
		var timestamp string
		if err := rows.Scan(&info.DispatchID, &info.Mode, &info.Sequence, &timestamp, &info.Size); err != nil {
			return nil, fmt.Errorf("scan record info: %w", err)
		}
		info.Event = event
		info.Timestamp, _ = time.Parse(time.RFC3339Nano, timestamp)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return infos, nil
}

// Delete implements Recorder.
func (s *SQLiteJournal) Delete(dispatchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrJournalClosed
	}

	_, err := s.db.Exec(`
		DELETE FROM journal
		WHERE dispatch_id = ?
	`, dispatchID)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// Prune implements Recorder.
func (s *SQLiteJournal) Prune(before time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrJournalClosed
	}

	_, err := s.db.Exec(`
		DELETE FROM journal WHERE timestamp < ?
	`, before.UTC().Format(sqliteTimeLayout))
	if err != nil {
		return fmt.Errorf("prune records: %w", err)
	}
	return nil
}

// Close implements Recorder.
func (s *SQLiteJournal) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

// Compile-time checks.
var (
	_ Recorder = (*MemoryJournal)(nil)
	_ Recorder = (*SQLiteJournal)(nil)
)
