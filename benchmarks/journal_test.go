package benchmarks

import (
	"os"
	"strconv"
	"testing"

	"github.com/randalmurphal/eventkit/pkg/eventkit/journal"
)

// benchRecord builds a realistic record for journal benchmarks.
func benchRecord(dispatchID string) *journal.Record {
	return journal.New(dispatchID, "bench.event", "broadcast").
		WithDuration(1.5).
		WithOutcome("bench.event", nil).
		WithOutcome("bench.*", nil)
}

// BenchmarkMemoryJournal_Append appends records with unique dispatch IDs.
func BenchmarkMemoryJournal_Append(b *testing.B) {
	j := journal.NewMemoryJournal()
	defer j.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := benchRecord("bench-" + strconv.Itoa(i))
		if err := j.Append(rec); err != nil {
			b.Fatalf("append failed: %v", err)
		}
	}
}

// BenchmarkMemoryJournal_Load loads a single record by dispatch ID.
func BenchmarkMemoryJournal_Load(b *testing.B) {
	j := journal.NewMemoryJournal()
	defer j.Close()
	if err := j.Append(benchRecord("bench-load")); err != nil {
		b.Fatalf("append failed: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := j.Load("bench-load"); err != nil {
			b.Fatalf("load failed: %v", err)
		}
	}
}

// BenchmarkMemoryJournal_List lists 100 records of one event.
func BenchmarkMemoryJournal_List(b *testing.B) {
	j := journal.NewMemoryJournal()
	defer j.Close()
	for i := 0; i < 100; i++ {
		if err := j.Append(benchRecord("bench-" + strconv.Itoa(i))); err != nil {
			b.Fatalf("append failed: %v", err)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := j.List("bench.event"); err != nil {
			b.Fatalf("list failed: %v", err)
		}
	}
}

// BenchmarkSQLiteJournal_Append appends records with unique dispatch IDs.
func BenchmarkSQLiteJournal_Append(b *testing.B) {
	j, cleanup := createSQLiteJournal(b)
	defer cleanup()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := benchRecord("bench-" + strconv.Itoa(i))
		if err := j.Append(rec); err != nil {
			b.Fatalf("append failed: %v", err)
		}
	}
}

// BenchmarkSQLiteJournal_Load loads a single record by dispatch ID.
func BenchmarkSQLiteJournal_Load(b *testing.B) {
	j, cleanup := createSQLiteJournal(b)
	defer cleanup()
	if err := j.Append(benchRecord("bench-load")); err != nil {
		b.Fatalf("append failed: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := j.Load("bench-load"); err != nil {
			b.Fatalf("load failed: %v", err)
		}
	}
}

// BenchmarkRecord_Marshal serializes a record to JSON.
func BenchmarkRecord_Marshal(b *testing.B) {
	rec := benchRecord("bench-marshal")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := rec.Marshal(); err != nil {
			b.Fatalf("marshal failed: %v", err)
		}
	}
}

// Helper functions

// createSQLiteJournal creates a temp-file SQLite journal with cleanup.
func createSQLiteJournal(b *testing.B) (*journal.SQLiteJournal, func()) {
	b.Helper()
	tmpfile, err := os.CreateTemp("", "bench-*.db")
	if err != nil {
		b.Fatalf("failed to create temp file: %v", err)
	}
	tmpfile.Close()

	j, err := journal.NewSQLiteJournal(tmpfile.Name())
	if err != nil {
		os.Remove(tmpfile.Name())
		b.Fatalf("failed to open journal: %v", err)
	}

	cleanup := func() {
		j.Close()
		os.Remove(tmpfile.Name())
	}
	return j, cleanup
}
