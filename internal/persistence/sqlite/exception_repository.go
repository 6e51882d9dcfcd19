package sqlite

import (
	"context"
	"time"

	"github.com/example/committee-scheduler/internal/domain"
	"github.com/example/committee-scheduler/internal/persistence"
)

// CreateExceptionDate inserts an exception date. Dates are unique; a second
// entry for the same date fails with ErrConflict.
func (s *Store) CreateExceptionDate(ctx context.Context, exception domain.ExceptionDate) error {
	const query = `
		INSERT INTO exception_dates (id, date, description, kind, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		exception.ID,
		formatDate(exception.Date),
		exception.Description,
		exception.Kind,
		formatTime(exception.CreatedAt),
	)
	return mapError(err)
}

// DeleteExceptionDate removes an exception date by ID.
func (s *Store) DeleteExceptionDate(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM exception_dates WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

// ListExceptionDates returns the exception dates in [from, to], inclusive,
// in date order.
func (s *Store) ListExceptionDates(ctx context.Context, from, to time.Time) ([]domain.ExceptionDate, error) {
	const query = `
		SELECT id, date, description, kind, created_at
		FROM exception_dates
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`
	rows, err := s.db.QueryContext(ctx, query, formatDate(from), formatDate(to))
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var exceptions []domain.ExceptionDate
	for rows.Next() {
		exception, err := scanExceptionDate(rows)
		if err != nil {
			return nil, err
		}
		exceptions = append(exceptions, exception)
	}
	return exceptions, mapError(rows.Err())
}

func scanExceptionDate(row rowScanner) (domain.ExceptionDate, error) {
	var exception domain.ExceptionDate
	var date, createdAt string
	err := row.Scan(
		&exception.ID,
		&date,
		&exception.Description,
		&exception.Kind,
		&createdAt,
	)
	if err != nil {
		return domain.ExceptionDate{}, mapError(err)
	}
	if exception.Date, err = parseDate(date); err != nil {
		return domain.ExceptionDate{}, err
	}
	if exception.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.ExceptionDate{}, err
	}
	return exception, nil
}

var _ persistence.ExceptionDateRepository = (*Store)(nil)
