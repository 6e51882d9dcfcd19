package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/committee-scheduler/internal/domain"
	"github.com/example/committee-scheduler/internal/persistence"
)

// CreateEvent inserts a funding-request event with its computed deadlines.
func (s *Store) CreateEvent(ctx context.Context, event domain.Event) error {
	const query = `
		INSERT INTO events (id, meeting_id, route_id, name, expected_requests,
			call_publication_date, call_deadline, intake_deadline, review_deadline, response_deadline,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.MeetingID,
		event.RouteID,
		event.Name,
		event.ExpectedRequests,
		nullDate(event.CallPublicationDate),
		nullDate(event.CallDeadline),
		nullDate(event.IntakeDeadline),
		nullDate(event.ReviewDeadline),
		nullDate(event.ResponseDeadline),
		formatTime(event.CreatedAt),
		formatTime(event.UpdatedAt),
	)
	return mapError(err)
}

// UpdateEvent updates an existing event, replacing its deadline chain.
func (s *Store) UpdateEvent(ctx context.Context, event domain.Event) error {
	const query = `
		UPDATE events
		SET name = ?, expected_requests = ?, call_publication_date = ?,
			call_deadline = ?, intake_deadline = ?, review_deadline = ?, response_deadline = ?,
			updated_at = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		event.Name,
		event.ExpectedRequests,
		nullDate(event.CallPublicationDate),
		nullDate(event.CallDeadline),
		nullDate(event.IntakeDeadline),
		nullDate(event.ReviewDeadline),
		nullDate(event.ResponseDeadline),
		formatTime(event.UpdatedAt),
		event.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

const eventColumns = `
	id, meeting_id, route_id, name, expected_requests,
	call_publication_date, call_deadline, intake_deadline, review_deadline, response_deadline,
	created_at, updated_at
`

// GetEvent retrieves an event by ID.
func (s *Store) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	return scanEvent(s.db.QueryRowContext(ctx, query, id))
}

// ListEventsForMeeting returns the events attached to a meeting.
func (s *Store) ListEventsForMeeting(ctx context.Context, meetingID string) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE meeting_id = ? ORDER BY name ASC, id ASC`
	rows, err := s.db.QueryContext(ctx, query, meetingID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, mapError(rows.Err())
}

func scanEvent(row rowScanner) (domain.Event, error) {
	var event domain.Event
	var createdAt, updatedAt string
	var publication, call, intake, review, response sql.NullString
	err := row.Scan(
		&event.ID,
		&event.MeetingID,
		&event.RouteID,
		&event.Name,
		&event.ExpectedRequests,
		&publication,
		&call,
		&intake,
		&review,
		&response,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Event{}, mapError(err)
	}
	if event.CallPublicationDate, err = datePtr(publication); err != nil {
		return domain.Event{}, err
	}
	if event.CallDeadline, err = datePtr(call); err != nil {
		return domain.Event{}, err
	}
	if event.IntakeDeadline, err = datePtr(intake); err != nil {
		return domain.Event{}, err
	}
	if event.ReviewDeadline, err = datePtr(review); err != nil {
		return domain.Event{}, err
	}
	if event.ResponseDeadline, err = datePtr(response); err != nil {
		return domain.Event{}, err
	}
	if event.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Event{}, err
	}
	if event.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

var _ persistence.EventRepository = (*Store)(nil)
