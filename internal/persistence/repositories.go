package persistence

import (
	"context"
	"time"

	"github.com/example/committee-scheduler/internal/domain"
)

// DivisionRepository exposes CRUD operations for divisions.
type DivisionRepository interface {
	CreateDivision(ctx context.Context, division domain.Division) error
	UpdateDivision(ctx context.Context, division domain.Division) error
	GetDivision(ctx context.Context, id string) (domain.Division, error)
	ListDivisions(ctx context.Context) ([]domain.Division, error)
}

// RouteRepository exposes CRUD operations for funding routes.
type RouteRepository interface {
	CreateRoute(ctx context.Context, route domain.Route) error
	UpdateRoute(ctx context.Context, route domain.Route) error
	GetRoute(ctx context.Context, id string) (domain.Route, error)
	ListRoutes(ctx context.Context) ([]domain.Route, error)
	ListRoutesForDivision(ctx context.Context, divisionID string) ([]domain.Route, error)
}

// CommitteeTypeRepository exposes CRUD operations for committee types.
type CommitteeTypeRepository interface {
	CreateCommitteeType(ctx context.Context, committeeType domain.CommitteeType) error
	UpdateCommitteeType(ctx context.Context, committeeType domain.CommitteeType) error
	GetCommitteeType(ctx context.Context, id string) (domain.CommitteeType, error)
	ListCommitteeTypes(ctx context.Context) ([]domain.CommitteeType, error)
}

// ExceptionDateRepository stores the non-working exception dates.
type ExceptionDateRepository interface {
	CreateExceptionDate(ctx context.Context, exception domain.ExceptionDate) error
	DeleteExceptionDate(ctx context.Context, id string) error
	ListExceptionDates(ctx context.Context, from, to time.Time) ([]domain.ExceptionDate, error)
}

// MeetingFilter narrows meeting queries.
type MeetingFilter struct {
	CommitteeTypeID string
	DivisionID      string
	Statuses        []domain.MeetingStatus
	From            *time.Time
	To              *time.Time
}

// MeetingRepository stores committee meetings. Meetings are never deleted;
// their lifecycle ends in a terminal status.
type MeetingRepository interface {
	CreateMeeting(ctx context.Context, meeting domain.Meeting) error
	UpdateMeeting(ctx context.Context, meeting domain.Meeting) error
	GetMeeting(ctx context.Context, id string) (domain.Meeting, error)
	ListMeetings(ctx context.Context, filter MeetingFilter) ([]domain.Meeting, error)
}

// EventRepository stores funding-request events and their computed stage
// deadlines.
type EventRepository interface {
	CreateEvent(ctx context.Context, event domain.Event) error
	UpdateEvent(ctx context.Context, event domain.Event) error
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	ListEventsForMeeting(ctx context.Context, meetingID string) ([]domain.Event, error)
}

// SettingsRepository stores the system-wide scheduling configuration.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (domain.Settings, error)
	SaveSettings(ctx context.Context, settings domain.Settings) error
}

// SnapshotLoader produces the immutable configuration snapshot the engine
// consumes, from a single consistent read covering [from, to].
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context, from, to time.Time) (domain.Snapshot, error)
}
