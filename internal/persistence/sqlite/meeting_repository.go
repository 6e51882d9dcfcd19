package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/example/committee-scheduler/internal/domain"
	"github.com/example/committee-scheduler/internal/persistence"
)

// CreateMeeting inserts a meeting. The partial unique index on active
// meetings turns a second non-cancelled meeting for the same committee,
// division and date into ErrConflict.
func (s *Store) CreateMeeting(ctx context.Context, meeting domain.Meeting) error {
	const query = `
		INSERT INTO meetings (id, committee_type_id, division_id, date, status,
			exception_date_id, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		meeting.ID,
		meeting.CommitteeTypeID,
		meeting.DivisionID,
		formatDate(meeting.Date),
		string(meeting.Status),
		nullString(meeting.ExceptionDateID),
		meeting.Notes,
		formatTime(meeting.CreatedAt),
		formatTime(meeting.UpdatedAt),
	)
	return mapError(err)
}

// UpdateMeeting updates an existing meeting's date, status and annotations.
func (s *Store) UpdateMeeting(ctx context.Context, meeting domain.Meeting) error {
	const query = `
		UPDATE meetings
		SET date = ?, status = ?, exception_date_id = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		formatDate(meeting.Date),
		string(meeting.Status),
		nullString(meeting.ExceptionDateID),
		meeting.Notes,
		formatTime(meeting.UpdatedAt),
		meeting.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

const meetingColumns = `
	id, committee_type_id, division_id, date, status, exception_date_id, notes, created_at, updated_at
`

// GetMeeting retrieves a meeting by ID.
func (s *Store) GetMeeting(ctx context.Context, id string) (domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = ?`
	return scanMeeting(s.db.QueryRowContext(ctx, query, id))
}

// ListMeetings lists meetings matching the filter, ordered by date.
func (s *Store) ListMeetings(ctx context.Context, filter persistence.MeetingFilter) ([]domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings`

	var conditions []string
	var args []any
	if filter.CommitteeTypeID != "" {
		conditions = append(conditions, "committee_type_id = ?")
		args = append(args, filter.CommitteeTypeID)
	}
	if filter.DivisionID != "" {
		conditions = append(conditions, "division_id = ?")
		args = append(args, filter.DivisionID)
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			placeholders[i] = "?"
			args = append(args, string(status))
		}
		conditions = append(conditions, "status IN ("+strings.Join(placeholders, ",")+")")
	}
	if filter.From != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, formatDate(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, "date <= ?")
		args = append(args, formatDate(*filter.To))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var meetings []domain.Meeting
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, meeting)
	}
	return meetings, mapError(rows.Err())
}

func scanMeeting(row rowScanner) (domain.Meeting, error) {
	var meeting domain.Meeting
	var date, status, createdAt, updatedAt string
	var exceptionDateID sql.NullString
	err := row.Scan(
		&meeting.ID,
		&meeting.CommitteeTypeID,
		&meeting.DivisionID,
		&date,
		&status,
		&exceptionDateID,
		&meeting.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Meeting{}, mapError(err)
	}
	meeting.Status = domain.MeetingStatus(status)
	meeting.ExceptionDateID = stringPtr(exceptionDateID)
	if meeting.Date, err = parseDate(date); err != nil {
		return domain.Meeting{}, err
	}
	if meeting.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Meeting{}, err
	}
	if meeting.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Meeting{}, err
	}
	return meeting, nil
}

var _ persistence.MeetingRepository = (*Store)(nil)
