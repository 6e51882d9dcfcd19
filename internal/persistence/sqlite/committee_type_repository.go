package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/committee-scheduler/internal/domain"
	"github.com/example/committee-scheduler/internal/persistence"
)

// CreateCommitteeType inserts a committee type.
func (s *Store) CreateCommitteeType(ctx context.Context, committeeType domain.CommitteeType) error {
	const query = `
		INSERT INTO committee_types (id, division_id, name, description,
			scheduled_weekday, frequency, week_of_month, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		committeeType.ID,
		committeeType.DivisionID,
		committeeType.Name,
		committeeType.Description,
		int(committeeType.ScheduledWeekday),
		string(committeeType.Frequency),
		nullInt(committeeType.WeekOfMonth),
		committeeType.Active,
		formatTime(committeeType.CreatedAt),
	)
	return mapError(err)
}

// UpdateCommitteeType updates an existing committee type. The owning division
// never changes.
func (s *Store) UpdateCommitteeType(ctx context.Context, committeeType domain.CommitteeType) error {
	const query = `
		UPDATE committee_types
		SET name = ?, description = ?, scheduled_weekday = ?, frequency = ?, week_of_month = ?, active = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		committeeType.Name,
		committeeType.Description,
		int(committeeType.ScheduledWeekday),
		string(committeeType.Frequency),
		nullInt(committeeType.WeekOfMonth),
		committeeType.Active,
		committeeType.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

// GetCommitteeType retrieves a committee type by ID.
func (s *Store) GetCommitteeType(ctx context.Context, id string) (domain.CommitteeType, error) {
	const query = `
		SELECT id, division_id, name, description, scheduled_weekday, frequency, week_of_month, active, created_at
		FROM committee_types WHERE id = ?
	`
	return scanCommitteeType(s.db.QueryRowContext(ctx, query, id))
}

// ListCommitteeTypes returns all committee types ordered by name.
func (s *Store) ListCommitteeTypes(ctx context.Context) ([]domain.CommitteeType, error) {
	const query = `
		SELECT id, division_id, name, description, scheduled_weekday, frequency, week_of_month, active, created_at
		FROM committee_types ORDER BY name ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var committeeTypes []domain.CommitteeType
	for rows.Next() {
		committeeType, err := scanCommitteeType(rows)
		if err != nil {
			return nil, err
		}
		committeeTypes = append(committeeTypes, committeeType)
	}
	return committeeTypes, mapError(rows.Err())
}

func scanCommitteeType(row rowScanner) (domain.CommitteeType, error) {
	var committeeType domain.CommitteeType
	var weekday int
	var frequency, createdAt string
	var weekOfMonth sql.NullInt64
	err := row.Scan(
		&committeeType.ID,
		&committeeType.DivisionID,
		&committeeType.Name,
		&committeeType.Description,
		&weekday,
		&frequency,
		&weekOfMonth,
		&committeeType.Active,
		&createdAt,
	)
	if err != nil {
		return domain.CommitteeType{}, mapError(err)
	}
	committeeType.ScheduledWeekday = time.Weekday(weekday)
	committeeType.Frequency = domain.Frequency(frequency)
	if weekOfMonth.Valid {
		week := int(weekOfMonth.Int64)
		committeeType.WeekOfMonth = &week
	}
	if committeeType.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.CommitteeType{}, err
	}
	return committeeType, nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

var _ persistence.CommitteeTypeRepository = (*Store)(nil)
