package sqlite

import (
	"context"

	"github.com/example/committee-scheduler/internal/domain"
	"github.com/example/committee-scheduler/internal/persistence"
)

// CreateRoute inserts a funding route.
func (s *Store) CreateRoute(ctx context.Context, route domain.Route) error {
	const query = `
		INSERT INTO routes (id, division_id, name, description, active,
			total_sla_days, stage_a_days, stage_b_days, stage_c_days, stage_d_days, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		route.ID,
		route.DivisionID,
		route.Name,
		route.Description,
		route.Active,
		route.TotalSLADays,
		route.StageADays,
		route.StageBDays,
		route.StageCDays,
		route.StageDDays,
		formatTime(route.CreatedAt),
	)
	return mapError(err)
}

// UpdateRoute updates an existing route. The owning division never changes.
func (s *Store) UpdateRoute(ctx context.Context, route domain.Route) error {
	const query = `
		UPDATE routes
		SET name = ?, description = ?, active = ?,
			total_sla_days = ?, stage_a_days = ?, stage_b_days = ?, stage_c_days = ?, stage_d_days = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		route.Name,
		route.Description,
		route.Active,
		route.TotalSLADays,
		route.StageADays,
		route.StageBDays,
		route.StageCDays,
		route.StageDDays,
		route.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return requireRowAffected(result)
}

const routeColumns = `
	id, division_id, name, description, active,
	total_sla_days, stage_a_days, stage_b_days, stage_c_days, stage_d_days, created_at
`

// GetRoute retrieves a route by ID.
func (s *Store) GetRoute(ctx context.Context, id string) (domain.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes WHERE id = ?`
	return scanRoute(s.db.QueryRowContext(ctx, query, id))
}

// ListRoutes returns all routes ordered by name.
func (s *Store) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes ORDER BY name ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var routes []domain.Route
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, mapError(rows.Err())
}

// ListRoutesForDivision returns the routes owned by one division.
func (s *Store) ListRoutesForDivision(ctx context.Context, divisionID string) ([]domain.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes WHERE division_id = ? ORDER BY name ASC`
	rows, err := s.db.QueryContext(ctx, query, divisionID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var routes []domain.Route
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, mapError(rows.Err())
}

func scanRoute(row rowScanner) (domain.Route, error) {
	var route domain.Route
	var createdAt string
	err := row.Scan(
		&route.ID,
		&route.DivisionID,
		&route.Name,
		&route.Description,
		&route.Active,
		&route.TotalSLADays,
		&route.StageADays,
		&route.StageBDays,
		&route.StageCDays,
		&route.StageDDays,
		&createdAt,
	)
	if err != nil {
		return domain.Route{}, mapError(err)
	}
	if route.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Route{}, err
	}
	return route, nil
}

var _ persistence.RouteRepository = (*Store)(nil)
