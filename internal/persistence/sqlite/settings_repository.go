package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/committee-scheduler/internal/domain"
	"github.com/example/committee-scheduler/internal/persistence"
)

const settingsQuery = `
	SELECT work_weekdays, week_start,
		max_meetings_per_day, max_meetings_per_standard_week, max_meetings_per_third_week, max_requests_per_day,
		default_sla_days, weights
	FROM settings WHERE id = 1
`

// GetSettings loads the system-wide configuration. A database without a
// settings row yields the stock defaults.
func (s *Store) GetSettings(ctx context.Context) (domain.Settings, error) {
	return scanSettings(s.db.QueryRowContext(ctx, settingsQuery))
}

// SaveSettings replaces the system-wide configuration.
func (s *Store) SaveSettings(ctx context.Context, settings domain.Settings) error {
	weights, err := json.Marshal(settings.Weights)
	if err != nil {
		return fmt.Errorf("sqlite: marshal recommendation weights: %w", err)
	}

	const query = `
		INSERT INTO settings (id, work_weekdays, week_start,
			max_meetings_per_day, max_meetings_per_standard_week, max_meetings_per_third_week, max_requests_per_day,
			default_sla_days, weights)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			work_weekdays = excluded.work_weekdays,
			week_start = excluded.week_start,
			max_meetings_per_day = excluded.max_meetings_per_day,
			max_meetings_per_standard_week = excluded.max_meetings_per_standard_week,
			max_meetings_per_third_week = excluded.max_meetings_per_third_week,
			max_requests_per_day = excluded.max_requests_per_day,
			default_sla_days = excluded.default_sla_days,
			weights = excluded.weights
	`
	_, err = s.db.ExecContext(ctx, query,
		formatWeekdays(settings.WorkWeekdays),
		int(settings.WeekStart),
		settings.Limits.MaxMeetingsPerDay,
		settings.Limits.MaxMeetingsPerStandardWeek,
		settings.Limits.MaxMeetingsPerThirdWeek,
		settings.Limits.MaxRequestsPerDay,
		settings.DefaultSLADays,
		string(weights),
	)
	return mapError(err)
}

func scanSettings(row rowScanner) (domain.Settings, error) {
	var weekdaysCSV, weightsJSON string
	var weekStart int
	settings := domain.Settings{}
	err := row.Scan(
		&weekdaysCSV,
		&weekStart,
		&settings.Limits.MaxMeetingsPerDay,
		&settings.Limits.MaxMeetingsPerStandardWeek,
		&settings.Limits.MaxMeetingsPerThirdWeek,
		&settings.Limits.MaxRequestsPerDay,
		&settings.DefaultSLADays,
		&weightsJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, mapError(err)
	}

	settings.WeekStart = time.Weekday(weekStart)
	if settings.WorkWeekdays, err = parseWeekdays(weekdaysCSV); err != nil {
		return domain.Settings{}, err
	}

	// Missing weights fall back to the defaults so older databases keep
	// working after the scoring configuration was added.
	settings.Weights = domain.DefaultRecommendationWeights()
	if weightsJSON != "" && weightsJSON != "{}" {
		if err := json.Unmarshal([]byte(weightsJSON), &settings.Weights); err != nil {
			return domain.Settings{}, fmt.Errorf("sqlite: parse recommendation weights: %w", err)
		}
	}
	return settings, nil
}

// formatWeekdays encodes weekdays as a comma-separated ordinal list, Sunday
// being 0.
func formatWeekdays(weekdays []time.Weekday) string {
	parts := make([]string, len(weekdays))
	for i, weekday := range weekdays {
		parts[i] = strconv.Itoa(int(weekday))
	}
	return strings.Join(parts, ",")
}

func parseWeekdays(csv string) ([]time.Weekday, error) {
	if csv == "" {
		return nil, nil
	}
	parts := strings.Split(csv, ",")
	weekdays := make([]time.Weekday, 0, len(parts))
	for _, part := range parts {
		ordinal, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || ordinal < 0 || ordinal > 6 {
			return nil, fmt.Errorf("sqlite: invalid weekday ordinal %q", part)
		}
		weekdays = append(weekdays, time.Weekday(ordinal))
	}
	return weekdays, nil
}

var _ persistence.SettingsRepository = (*Store)(nil)
