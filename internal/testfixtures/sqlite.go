package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/committee-scheduler/internal/persistence"
	"github.com/example/committee-scheduler/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// database for integration-style persistence tests.
type SQLiteHarness struct {
	Divisions      persistence.DivisionRepository
	Routes         persistence.RouteRepository
	CommitteeTypes persistence.CommitteeTypeRepository
	ExceptionDates persistence.ExceptionDateRepository
	Meetings       persistence.MeetingRepository
	Events         persistence.EventRepository
	Settings       persistence.SettingsRepository
	Snapshots      persistence.SnapshotLoader

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary file that is
// migrated automatically. A cleanup callback is registered with the provided
// testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "scheduler.db")

	store, err := sqlite.Open(path)
	if err != nil {
		tb.Fatalf("failed to open store: %v", err)
	}
	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		tb.Fatalf("failed to migrate store: %v", err)
	}

	harness := &SQLiteHarness{
		Divisions:      store,
		Routes:         store,
		CommitteeTypes: store,
		ExceptionDates: store,
		Meetings:       store,
		Events:         store,
		Settings:       store,
		Snapshots:      store,
		cleanup: func() {
			_ = store.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
