package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/committee-scheduler/internal/calendar"
	"github.com/example/committee-scheduler/internal/domain"
	"github.com/example/committee-scheduler/internal/engine"
	"github.com/example/committee-scheduler/internal/persistence"
)

// SnapshotSource produces the engine's configuration snapshot for a date
// window.
type SnapshotSource interface {
	LoadSnapshot(ctx context.Context, from, to time.Time) (domain.Snapshot, error)
}

// MeetingStore captures the meeting persistence interactions needed by the
// services.
type MeetingStore interface {
	CreateMeeting(ctx context.Context, meeting domain.Meeting) error
	UpdateMeeting(ctx context.Context, meeting domain.Meeting) error
	GetMeeting(ctx context.Context, id string) (domain.Meeting, error)
}

// CommitteeTypeCatalog exposes committee type lookups.
type CommitteeTypeCatalog interface {
	GetCommitteeType(ctx context.Context, id string) (domain.CommitteeType, error)
}

// RouteCatalog exposes route lookups.
type RouteCatalog interface {
	GetRoute(ctx context.Context, id string) (domain.Route, error)
}

const (
	// defaultSuggestWindowDays is used when a search window is not supplied.
	defaultSuggestWindowDays = 90
	// defaultRecommendHorizonDays bounds how far ahead recommendations look.
	defaultRecommendHorizonDays = 180
	// snapshotMarginDays widens snapshot windows so week-bound capacity
	// counting near the edges sees complete weeks.
	snapshotMarginDays = 7
)

// SchedulingService orchestrates candidate-date suggestion, acceptance and
// the meeting lifecycle on top of the engine.
type SchedulingService struct {
	snapshots      SnapshotSource
	meetings       MeetingStore
	committeeTypes CommitteeTypeCatalog
	routes         RouteCatalog
	idGenerator    func() string
	now            func() time.Time
}

// NewSchedulingService wires dependencies for scheduling operations.
func NewSchedulingService(snapshots SnapshotSource, meetings MeetingStore, committeeTypes CommitteeTypeCatalog, routes RouteCatalog, idGenerator func() string, now func() time.Time) *SchedulingService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &SchedulingService{
		snapshots:      snapshots,
		meetings:       meetings,
		committeeTypes: committeeTypes,
		routes:         routes,
		idGenerator:    idGenerator,
		now:            now,
	}
}

// SuggestDates enumerates annotated candidate dates for a committee type.
func (s *SchedulingService) SuggestDates(ctx context.Context, params SuggestDatesParams) ([]engine.Candidate, error) {
	committeeType, err := s.committeeTypes.GetCommitteeType(ctx, params.CommitteeTypeID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	searchFrom := calendar.DateOf(params.SearchFrom)
	if params.SearchFrom.IsZero() {
		searchFrom = calendar.DateOf(s.now())
	}
	windowDays := params.WindowDays
	if windowDays <= 0 {
		windowDays = defaultSuggestWindowDays
	}

	eng, err := s.engineFor(ctx, searchFrom, searchFrom.AddDate(0, 0, windowDays))
	if err != nil {
		return nil, err
	}
	return eng.SuggestDates(committeeType, committeeType.DivisionID, searchFrom, windowDays)
}

// AcceptCandidate validates a candidate date, runs the advisory capacity
// check and persists the meeting. Violations block unless Force is set, in
// which case they are returned as warnings on the created meeting.
func (s *SchedulingService) AcceptCandidate(ctx context.Context, params AcceptCandidateParams) (AcceptCandidateResult, error) {
	committeeType, err := s.committeeTypes.GetCommitteeType(ctx, params.CommitteeTypeID)
	if err != nil {
		return AcceptCandidateResult{}, mapRepoError(err)
	}

	date := calendar.DateOf(params.Date)

	vErr := &ValidationError{}
	if date.IsZero() || params.Date.IsZero() {
		vErr.add("date", "date is required")
	} else if date.Weekday() != committeeType.ScheduledWeekday {
		vErr.add("date", fmt.Sprintf("date falls on %s, committee meets on %s",
			date.Weekday(), committeeType.ScheduledWeekday))
	}
	if vErr.HasErrors() {
		return AcceptCandidateResult{}, vErr
	}

	snapshot, err := s.loadWindow(ctx, date, date)
	if err != nil {
		return AcceptCandidateResult{}, err
	}
	eng, err := engine.New(snapshot)
	if err != nil {
		return AcceptCandidateResult{}, err
	}

	var exceptionDateID *string
	if !eng.Calendar().IsBusinessDay(date) {
		if !params.Force {
			vErr.add("date", "not a business day")
			return AcceptCandidateResult{}, vErr
		}
		// Record which exception was overridden, when there is one.
		for _, stored := range snapshot.ExceptionDates {
			if calendar.DateOf(stored.Date).Equal(date) {
				id := stored.ID
				exceptionDateID = &id
				break
			}
		}
	}

	decision := eng.CheckCapacity(date, 0)
	if !decision.OK && !params.Force {
		messages := make([]string, 0, len(decision.Violations))
		for _, violation := range decision.Violations {
			messages = append(messages, violation.Message)
		}
		return AcceptCandidateResult{Warnings: decision.Violations},
			fmt.Errorf("%w: %s", ErrCapacityExceeded, strings.Join(messages, "; "))
	}

	now := s.now().UTC()
	meeting := domain.Meeting{
		ID:              s.idGenerator(),
		CommitteeTypeID: committeeType.ID,
		DivisionID:      committeeType.DivisionID,
		Date:            date,
		Status:          domain.MeetingPlanned,
		ExceptionDateID: exceptionDateID,
		Notes:           strings.TrimSpace(params.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.meetings.CreateMeeting(ctx, meeting); err != nil {
		if errors.Is(err, persistence.ErrConflict) {
			return AcceptCandidateResult{}, ErrSlotTaken
		}
		return AcceptCandidateResult{}, err
	}

	var warnings []engine.Violation
	if !decision.OK {
		warnings = decision.Violations
	}
	return AcceptCandidateResult{Meeting: meeting, Warnings: warnings}, nil
}

// TransitionMeeting moves a meeting to the next lifecycle status.
func (s *SchedulingService) TransitionMeeting(ctx context.Context, params TransitionMeetingParams) (domain.Meeting, error) {
	meeting, err := s.meetings.GetMeeting(ctx, params.MeetingID)
	if err != nil {
		return domain.Meeting{}, mapRepoError(err)
	}

	vErr := &ValidationError{}
	if !params.Status.Valid() {
		vErr.add("status", fmt.Sprintf("unknown status %q", params.Status))
	} else if !meeting.Status.CanTransitionTo(params.Status) {
		vErr.add("status", fmt.Sprintf("cannot transition from %s to %s", meeting.Status, params.Status))
	}
	if vErr.HasErrors() {
		return domain.Meeting{}, vErr
	}

	meeting.Status = params.Status
	meeting.UpdatedAt = s.now().UTC()
	if err := s.meetings.UpdateMeeting(ctx, meeting); err != nil {
		return domain.Meeting{}, mapRepoError(err)
	}
	return meeting, nil
}

// MonthlyPlan builds candidate dates for every active committee type in one
// month.
func (s *SchedulingService) MonthlyPlan(ctx context.Context, params MonthlyPlanParams) ([]engine.CommitteePlan, error) {
	first := calendar.Date(params.Year, params.Month, 1)
	last := first.AddDate(0, 1, -1)

	eng, err := s.engineFor(ctx, first, last)
	if err != nil {
		return nil, err
	}
	return eng.PlanMonth(params.Year, params.Month)
}

// RecommendMeetings ranks upcoming meetings as slots for a new event on the
// given route.
func (s *SchedulingService) RecommendMeetings(ctx context.Context, params RecommendMeetingsParams) ([]engine.Recommendation, error) {
	route, err := s.routes.GetRoute(ctx, params.RouteID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	vErr := &ValidationError{}
	if params.ExpectedRequests < 0 {
		vErr.add("expected_requests", "must be non-negative")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	horizon := params.HorizonDays
	if horizon <= 0 {
		horizon = defaultRecommendHorizonDays
	}

	today := calendar.DateOf(s.now())
	eng, err := s.engineFor(ctx, today, today.AddDate(0, 0, horizon))
	if err != nil {
		return nil, err
	}
	return eng.RecommendMeetings(route, params.ExpectedRequests, today)
}

// loadWindow loads a snapshot covering [from, to] plus a margin wide enough
// for week-bound capacity counting.
func (s *SchedulingService) loadWindow(ctx context.Context, from, to time.Time) (domain.Snapshot, error) {
	return s.snapshots.LoadSnapshot(ctx,
		from.AddDate(0, 0, -snapshotMarginDays),
		to.AddDate(0, 0, snapshotMarginDays))
}

// engineFor builds an engine over the snapshot window.
func (s *SchedulingService) engineFor(ctx context.Context, from, to time.Time) (*engine.Engine, error) {
	snapshot, err := s.loadWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return engine.New(snapshot)
}

// mapRepoError converts persistence sentinels into application errors.
func mapRepoError(err error) error {
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
