package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/committee-scheduler/internal/domain"
	"github.com/example/committee-scheduler/internal/persistence"
)

// LoadSnapshot produces the engine's configuration snapshot from one
// read-only transaction, so the engine always sees a consistent view.
// Exception dates, meetings and events are limited to [from, to]; divisions,
// routes, committee types and settings are loaded in full.
func (s *Store) LoadSnapshot(ctx context.Context, from, to time.Time) (domain.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("sqlite: begin snapshot read: %w", err)
	}
	defer tx.Rollback()

	var snapshot domain.Snapshot

	if snapshot.Settings, err = scanSettings(tx.QueryRow(settingsQuery)); err != nil {
		return domain.Snapshot{}, err
	}

	err = queryInto(tx, &snapshot.ExceptionDates, scanExceptionDate,
		`SELECT id, date, description, kind, created_at
		 FROM exception_dates WHERE date >= ? AND date <= ? ORDER BY date ASC`,
		formatDate(from), formatDate(to))
	if err != nil {
		return domain.Snapshot{}, err
	}

	err = queryInto(tx, &snapshot.Divisions, scanDivision,
		`SELECT id, name, description, color, active, created_at FROM divisions ORDER BY name ASC`)
	if err != nil {
		return domain.Snapshot{}, err
	}

	err = queryInto(tx, &snapshot.Routes, scanRoute,
		`SELECT `+routeColumns+` FROM routes ORDER BY name ASC`)
	if err != nil {
		return domain.Snapshot{}, err
	}

	err = queryInto(tx, &snapshot.CommitteeTypes, scanCommitteeType,
		`SELECT id, division_id, name, description, scheduled_weekday, frequency, week_of_month, active, created_at
		 FROM committee_types ORDER BY name ASC`)
	if err != nil {
		return domain.Snapshot{}, err
	}

	err = queryInto(tx, &snapshot.Meetings, scanMeeting,
		`SELECT `+meetingColumns+` FROM meetings WHERE date >= ? AND date <= ? ORDER BY date ASC, id ASC`,
		formatDate(from), formatDate(to))
	if err != nil {
		return domain.Snapshot{}, err
	}

	meetingIDs := make(map[string]struct{}, len(snapshot.Meetings))
	for _, meeting := range snapshot.Meetings {
		meetingIDs[meeting.ID] = struct{}{}
	}

	var events []domain.Event
	err = queryInto(tx, &events, scanEvent,
		`SELECT `+eventColumns+` FROM events ORDER BY name ASC, id ASC`)
	if err != nil {
		return domain.Snapshot{}, err
	}
	for _, event := range events {
		if _, ok := meetingIDs[event.MeetingID]; ok {
			snapshot.Events = append(snapshot.Events, event)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("sqlite: commit snapshot read: %w", err)
	}
	return snapshot, nil
}

// queryInto runs a query in the transaction and appends every scanned row to
// dst.
func queryInto[T any](tx *sql.Tx, dst *[]T, scan func(rowScanner) (T, error), query string, args ...any) error {
	rows, err := tx.Query(query, args...)
	if err != nil {
		return mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return err
		}
		*dst = append(*dst, item)
	}
	return mapError(rows.Err())
}

var _ persistence.SnapshotLoader = (*Store)(nil)
