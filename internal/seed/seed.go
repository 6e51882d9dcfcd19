// Package seed loads reference data from a YAML document and applies it to
// the persistence layer. Seeding is idempotent: records that already exist
// are left untouched.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/example/committee-scheduler/internal/calendar"
	"github.com/example/committee-scheduler/internal/domain"
	"github.com/example/committee-scheduler/internal/logging"
	"github.com/example/committee-scheduler/internal/persistence"
)

// Document is the top level YAML seed structure.
type Document struct {
	Settings       *SettingsDoc       `yaml:"settings"`
	Divisions      []DivisionDoc      `yaml:"divisions"`
	Routes         []RouteDoc         `yaml:"routes"`
	CommitteeTypes []CommitteeTypeDoc `yaml:"committee_types"`
	ExceptionDates []ExceptionDateDoc `yaml:"exception_dates"`
}

// SettingsDoc overrides the system-wide scheduling configuration. Fields left
// at their zero value keep the stock defaults.
type SettingsDoc struct {
	WorkWeekdays               []string `yaml:"work_weekdays"`
	WeekStart                  string   `yaml:"week_start"`
	MaxMeetingsPerDay          int      `yaml:"max_meetings_per_day"`
	MaxMeetingsPerStandardWeek int      `yaml:"max_meetings_per_standard_week"`
	MaxMeetingsPerThirdWeek    int      `yaml:"max_meetings_per_third_week"`
	MaxRequestsPerDay          int      `yaml:"max_requests_per_day"`
	DefaultSLADays             int      `yaml:"default_sla_days"`
}

// DivisionDoc seeds one division.
type DivisionDoc struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Color       string `yaml:"color"`
	Inactive    bool   `yaml:"inactive"`
}

// RouteDoc seeds one funding route. Division references the division by name.
type RouteDoc struct {
	ID           string `yaml:"id"`
	Division     string `yaml:"division"`
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	TotalSLADays int    `yaml:"total_sla_days"`
	StageADays   int    `yaml:"stage_a_days"`
	StageBDays   int    `yaml:"stage_b_days"`
	StageCDays   int    `yaml:"stage_c_days"`
	StageDDays   int    `yaml:"stage_d_days"`
	Inactive     bool   `yaml:"inactive"`
}

// CommitteeTypeDoc seeds one committee type. Division references the division
// by name.
type CommitteeTypeDoc struct {
	ID          string `yaml:"id"`
	Division    string `yaml:"division"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Weekday     string `yaml:"weekday"`
	Frequency   string `yaml:"frequency"`
	WeekOfMonth *int   `yaml:"week_of_month"`
	Inactive    bool   `yaml:"inactive"`
}

// ExceptionDateDoc seeds one non-working date.
type ExceptionDateDoc struct {
	ID          string `yaml:"id"`
	Date        string `yaml:"date"`
	Description string `yaml:"description"`
	Kind        string `yaml:"kind"`
}

// Stores groups the repositories seeding writes to.
type Stores struct {
	Settings       persistence.SettingsRepository
	Divisions      persistence.DivisionRepository
	Routes         persistence.RouteRepository
	CommitteeTypes persistence.CommitteeTypeRepository
	ExceptionDates persistence.ExceptionDateRepository
}

// Applier applies seed documents to the persistence layer.
type Applier struct {
	stores      Stores
	idGenerator func() string
	now         func() time.Time
}

// NewApplier wires dependencies for seeding. A nil idGenerator falls back to
// random UUIDs, a nil now falls back to the wall clock.
func NewApplier(stores Stores, idGenerator func() string, now func() time.Time) *Applier {
	if idGenerator == nil {
		idGenerator = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	return &Applier{stores: stores, idGenerator: idGenerator, now: now}
}

// LoadFile reads and parses a YAML seed document from disk.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML seed document.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parse seed document: %w", err)
	}
	return doc, nil
}

// Apply validates the document and writes its records. Records that collide
// with existing rows are skipped, so applying the same document twice is
// safe.
func (a *Applier) Apply(ctx context.Context, doc Document) error {
	if err := a.applySettings(ctx, doc.Settings); err != nil {
		return err
	}

	divisionIDs, err := a.applyDivisions(ctx, doc.Divisions)
	if err != nil {
		return err
	}
	if err := a.applyRoutes(ctx, doc.Routes, divisionIDs); err != nil {
		return err
	}
	if err := a.applyCommitteeTypes(ctx, doc.CommitteeTypes, divisionIDs); err != nil {
		return err
	}
	if err := a.applyExceptionDates(ctx, doc.ExceptionDates); err != nil {
		return err
	}

	if logger := logging.FromContext(ctx); logger != nil {
		logger.Debug("seed document applied",
			"divisions", len(doc.Divisions),
			"routes", len(doc.Routes),
			"committee_types", len(doc.CommitteeTypes),
			"exception_dates", len(doc.ExceptionDates))
	}
	return nil
}

func (a *Applier) applySettings(ctx context.Context, doc *SettingsDoc) error {
	if doc == nil {
		return nil
	}

	settings := domain.DefaultSettings()
	if len(doc.WorkWeekdays) > 0 {
		weekdays := make([]time.Weekday, 0, len(doc.WorkWeekdays))
		for _, name := range doc.WorkWeekdays {
			weekday, err := parseWeekday(name)
			if err != nil {
				return fmt.Errorf("settings: %w", err)
			}
			weekdays = append(weekdays, weekday)
		}
		settings.WorkWeekdays = weekdays
	}
	if doc.WeekStart != "" {
		weekday, err := parseWeekday(doc.WeekStart)
		if err != nil {
			return fmt.Errorf("settings: %w", err)
		}
		settings.WeekStart = weekday
	}
	if doc.MaxMeetingsPerDay > 0 {
		settings.Limits.MaxMeetingsPerDay = doc.MaxMeetingsPerDay
	}
	if doc.MaxMeetingsPerStandardWeek > 0 {
		settings.Limits.MaxMeetingsPerStandardWeek = doc.MaxMeetingsPerStandardWeek
	}
	if doc.MaxMeetingsPerThirdWeek > 0 {
		settings.Limits.MaxMeetingsPerThirdWeek = doc.MaxMeetingsPerThirdWeek
	}
	if doc.MaxRequestsPerDay > 0 {
		settings.Limits.MaxRequestsPerDay = doc.MaxRequestsPerDay
	}
	if doc.DefaultSLADays > 0 {
		settings.DefaultSLADays = doc.DefaultSLADays
	}
	return a.stores.Settings.SaveSettings(ctx, settings)
}

func (a *Applier) applyDivisions(ctx context.Context, docs []DivisionDoc) (map[string]string, error) {
	ids := make(map[string]string, len(docs))
	now := a.now().UTC()

	for i, doc := range docs {
		name := strings.TrimSpace(doc.Name)
		if name == "" {
			return nil, fmt.Errorf("division %d: name is required", i)
		}

		division := domain.Division{
			ID:          doc.ID,
			Name:        name,
			Description: doc.Description,
			Color:       doc.Color,
			Active:      !doc.Inactive,
			CreatedAt:   now,
		}
		if division.ID == "" {
			division.ID = a.idGenerator()
		}

		if err := a.stores.Divisions.CreateDivision(ctx, division); err != nil {
			if !errors.Is(err, persistence.ErrConflict) {
				return nil, fmt.Errorf("division %q: %w", name, err)
			}
			existing, ok, lookupErr := a.findDivisionByName(ctx, name)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if ok {
				division.ID = existing.ID
			}
		}
		ids[name] = division.ID
	}
	return ids, nil
}

func (a *Applier) findDivisionByName(ctx context.Context, name string) (domain.Division, bool, error) {
	divisions, err := a.stores.Divisions.ListDivisions(ctx)
	if err != nil {
		return domain.Division{}, false, fmt.Errorf("list divisions: %w", err)
	}
	for _, division := range divisions {
		if division.Active && division.Name == name {
			return division, true, nil
		}
	}
	return domain.Division{}, false, nil
}

func (a *Applier) applyRoutes(ctx context.Context, docs []RouteDoc, divisionIDs map[string]string) error {
	now := a.now().UTC()

	for i, doc := range docs {
		name := strings.TrimSpace(doc.Name)
		if name == "" {
			return fmt.Errorf("route %d: name is required", i)
		}
		divisionID, ok := divisionIDs[doc.Division]
		if !ok {
			return fmt.Errorf("route %q: unknown division %q", name, doc.Division)
		}

		route := domain.Route{
			ID:           doc.ID,
			DivisionID:   divisionID,
			Name:         name,
			Description:  doc.Description,
			Active:       !doc.Inactive,
			TotalSLADays: doc.TotalSLADays,
			StageADays:   doc.StageADays,
			StageBDays:   doc.StageBDays,
			StageCDays:   doc.StageCDays,
			StageDDays:   doc.StageDDays,
			CreatedAt:    now,
		}
		if route.ID == "" {
			route.ID = a.idGenerator()
		}

		if err := a.stores.Routes.CreateRoute(ctx, route); err != nil && !errors.Is(err, persistence.ErrConflict) {
			return fmt.Errorf("route %q: %w", name, err)
		}
	}
	return nil
}

func (a *Applier) applyCommitteeTypes(ctx context.Context, docs []CommitteeTypeDoc, divisionIDs map[string]string) error {
	now := a.now().UTC()

	for i, doc := range docs {
		name := strings.TrimSpace(doc.Name)
		if name == "" {
			return fmt.Errorf("committee type %d: name is required", i)
		}
		divisionID, ok := divisionIDs[doc.Division]
		if !ok {
			return fmt.Errorf("committee type %q: unknown division %q", name, doc.Division)
		}
		weekday, err := parseWeekday(doc.Weekday)
		if err != nil {
			return fmt.Errorf("committee type %q: %w", name, err)
		}
		frequency, err := parseFrequency(doc.Frequency)
		if err != nil {
			return fmt.Errorf("committee type %q: %w", name, err)
		}
		if frequency == domain.FrequencyMonthly && doc.WeekOfMonth == nil {
			return fmt.Errorf("committee type %q: monthly cadence requires week_of_month", name)
		}
		if frequency == domain.FrequencyWeekly && doc.WeekOfMonth != nil {
			return fmt.Errorf("committee type %q: week_of_month only applies to monthly cadence", name)
		}

		committeeType := domain.CommitteeType{
			ID:               doc.ID,
			DivisionID:       divisionID,
			Name:             name,
			Description:      doc.Description,
			ScheduledWeekday: weekday,
			Frequency:        frequency,
			WeekOfMonth:      doc.WeekOfMonth,
			Active:           !doc.Inactive,
			CreatedAt:        now,
		}
		if committeeType.ID == "" {
			committeeType.ID = a.idGenerator()
		}

		if err := a.stores.CommitteeTypes.CreateCommitteeType(ctx, committeeType); err != nil && !errors.Is(err, persistence.ErrConflict) {
			return fmt.Errorf("committee type %q: %w", name, err)
		}
	}
	return nil
}

func (a *Applier) applyExceptionDates(ctx context.Context, docs []ExceptionDateDoc) error {
	now := a.now().UTC()

	for i, doc := range docs {
		date, err := time.ParseInLocation(time.DateOnly, doc.Date, time.UTC)
		if err != nil {
			return fmt.Errorf("exception date %d: invalid date %q", i, doc.Date)
		}

		exception := domain.ExceptionDate{
			ID:          doc.ID,
			Date:        calendar.DateOf(date),
			Description: doc.Description,
			Kind:        doc.Kind,
			CreatedAt:   now,
		}
		if exception.ID == "" {
			exception.ID = a.idGenerator()
		}

		if err := a.stores.ExceptionDates.CreateExceptionDate(ctx, exception); err != nil && !errors.Is(err, persistence.ErrConflict) {
			return fmt.Errorf("exception date %q: %w", doc.Date, err)
		}
	}
	return nil
}

func parseWeekday(name string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", name)
}

func parseFrequency(name string) (domain.Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case string(domain.FrequencyWeekly):
		return domain.FrequencyWeekly, nil
	case string(domain.FrequencyMonthly):
		return domain.FrequencyMonthly, nil
	}
	return "", fmt.Errorf("unknown frequency %q", name)
}
