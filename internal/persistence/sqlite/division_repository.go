package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/committee-scheduler/internal/domain"
	"github.com/example/committee-scheduler/internal/persistence"
)

// CreateDivision inserts a division.
func (s *Store) CreateDivision(ctx context.Context, division domain.Division) error {
	const query = `
		INSERT INTO divisions (id, name, description, color, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		division.ID,
		division.Name,
		division.Description,
		division.Color,
		division.Active,
		formatTime(division.CreatedAt),
	)
	return mapError(err)
}

// UpdateDivision updates an existing division.
func (s *Store) UpdateDivision(ctx context.Context, division domain.Division) error {
	const query = `
		UPDATE divisions
		SET name = ?, description = ?, color = ?, active = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		division.Name,
		division.Description,
		division.Color,
		division.Active,
		division.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

// GetDivision retrieves a division by ID.
func (s *Store) GetDivision(ctx context.Context, id string) (domain.Division, error) {
	const query = `
		SELECT id, name, description, color, active, created_at
		FROM divisions WHERE id = ?
	`
	return scanDivision(s.db.QueryRowContext(ctx, query, id))
}

// ListDivisions returns all divisions ordered by name.
func (s *Store) ListDivisions(ctx context.Context) ([]domain.Division, error) {
	const query = `
		SELECT id, name, description, color, active, created_at
		FROM divisions ORDER BY name ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var divisions []domain.Division
	for rows.Next() {
		division, err := scanDivision(rows)
		if err != nil {
			return nil, err
		}
		divisions = append(divisions, division)
	}
	return divisions, mapError(rows.Err())
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDivision(row rowScanner) (domain.Division, error) {
	var division domain.Division
	var createdAt string
	err := row.Scan(
		&division.ID,
		&division.Name,
		&division.Description,
		&division.Color,
		&division.Active,
		&createdAt,
	)
	if err != nil {
		return domain.Division{}, mapError(err)
	}
	if division.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Division{}, err
	}
	return division, nil
}

func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

var _ persistence.DivisionRepository = (*Store)(nil)
