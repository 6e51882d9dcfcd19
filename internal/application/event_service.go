package application

import (
	"context"
	"strings"
	"time"

	"github.com/example/committee-scheduler/internal/calendar"
	"github.com/example/committee-scheduler/internal/domain"
	"github.com/example/committee-scheduler/internal/engine"
)

// EventStore captures the event persistence interactions needed by the
// service.
type EventStore interface {
	CreateEvent(ctx context.Context, event domain.Event) error
	UpdateEvent(ctx context.Context, event domain.Event) error
	GetEvent(ctx context.Context, id string) (domain.Event, error)
}

// EventService creates funding-request events and maintains their computed
// SLA deadline chains.
type EventService struct {
	snapshots   SnapshotSource
	events      EventStore
	meetings    MeetingStore
	routes      RouteCatalog
	idGenerator func() string
	now         func() time.Time
}

// NewEventService wires dependencies for event operations.
func NewEventService(snapshots SnapshotSource, events EventStore, meetings MeetingStore, routes RouteCatalog, idGenerator func() string, now func() time.Time) *EventService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &EventService{
		snapshots:   snapshots,
		events:      events,
		meetings:    meetings,
		routes:      routes,
		idGenerator: idGenerator,
		now:         now,
	}
}

// CreateEvent validates the request, computes the event's deadline chain from
// the meeting date and the route's stage configuration, and persists it.
func (s *EventService) CreateEvent(ctx context.Context, params CreateEventParams) (domain.Event, error) {
	vErr := &ValidationError{}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		vErr.add("name", "name is required")
	}
	if params.ExpectedRequests < 0 {
		vErr.add("expected_requests", "must be non-negative")
	}
	if vErr.HasErrors() {
		return domain.Event{}, vErr
	}

	meeting, err := s.meetings.GetMeeting(ctx, params.MeetingID)
	if err != nil {
		return domain.Event{}, mapRepoError(err)
	}
	route, err := s.routes.GetRoute(ctx, params.RouteID)
	if err != nil {
		return domain.Event{}, mapRepoError(err)
	}
	if route.DivisionID != meeting.DivisionID {
		vErr.add("route_id", "route belongs to a different division than the meeting")
		return domain.Event{}, vErr
	}

	deadlines, err := s.computeDeadlines(ctx, meeting, route, params.CallPublicationDate)
	if err != nil {
		return domain.Event{}, err
	}

	now := s.now().UTC()
	event := domain.Event{
		ID:                  s.idGenerator(),
		MeetingID:           meeting.ID,
		RouteID:             route.ID,
		Name:                name,
		ExpectedRequests:    params.ExpectedRequests,
		CallPublicationDate: copyDatePtr(params.CallPublicationDate),
		CallDeadline:        &deadlines.CallDeadline,
		IntakeDeadline:      &deadlines.IntakeDeadline,
		ReviewDeadline:      &deadlines.ReviewDeadline,
		ResponseDeadline:    &deadlines.ResponseDeadline,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.events.CreateEvent(ctx, event); err != nil {
		return domain.Event{}, mapRepoError(err)
	}
	return event, nil
}

// RecomputeDeadlines rebuilds an event's deadline chain after its meeting
// date, route configuration or call publication date changed, and persists
// the result. The computation is deterministic, so recomputing an unchanged
// event is a no-op write.
func (s *EventService) RecomputeDeadlines(ctx context.Context, eventID string) (domain.Event, error) {
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return domain.Event{}, mapRepoError(err)
	}
	meeting, err := s.meetings.GetMeeting(ctx, event.MeetingID)
	if err != nil {
		return domain.Event{}, mapRepoError(err)
	}
	route, err := s.routes.GetRoute(ctx, event.RouteID)
	if err != nil {
		return domain.Event{}, mapRepoError(err)
	}

	deadlines, err := s.computeDeadlines(ctx, meeting, route, event.CallPublicationDate)
	if err != nil {
		return domain.Event{}, err
	}

	event.CallDeadline = &deadlines.CallDeadline
	event.IntakeDeadline = &deadlines.IntakeDeadline
	event.ReviewDeadline = &deadlines.ReviewDeadline
	event.ResponseDeadline = &deadlines.ResponseDeadline
	event.UpdatedAt = s.now().UTC()
	if err := s.events.UpdateEvent(ctx, event); err != nil {
		return domain.Event{}, mapRepoError(err)
	}
	return event, nil
}

// computeDeadlines loads a snapshot wide enough for the whole deadline chain
// and runs the calculator. The chain reaches at most the route's total SLA in
// business days before the meeting, so half a year of exception dates on each
// side is ample.
func (s *EventService) computeDeadlines(ctx context.Context, meeting domain.Meeting, route domain.Route, callPublication *time.Time) (engine.StageDeadlines, error) {
	date := calendar.DateOf(meeting.Date)
	snapshot, err := s.snapshots.LoadSnapshot(ctx, date.AddDate(0, -6, 0), date.AddDate(0, 6, 0))
	if err != nil {
		return engine.StageDeadlines{}, err
	}
	eng, err := engine.New(snapshot)
	if err != nil {
		return engine.StageDeadlines{}, err
	}
	return eng.ComputeStageDeadlines(date, route, callPublication)
}

func copyDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	date := calendar.DateOf(*t)
	return &date
}
