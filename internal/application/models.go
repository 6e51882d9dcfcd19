package application

import (
	"time"

	"github.com/example/committee-scheduler/internal/domain"
	"github.com/example/committee-scheduler/internal/engine"
)

// SuggestDatesParams carries the inputs for a candidate-date search.
type SuggestDatesParams struct {
	CommitteeTypeID string
	SearchFrom      time.Time
	WindowDays      int
}

// AcceptCandidateParams turns a suggested candidate date into a persisted
// meeting. Force accepts the date despite advisory capacity violations or an
// exception-date conflict; the created meeting then records the overridden
// exception.
type AcceptCandidateParams struct {
	CommitteeTypeID string
	Date            time.Time
	Notes           string
	Force           bool
}

// AcceptCandidateResult is the outcome of accepting a candidate date. The
// warnings list carries the capacity violations that were overridden when
// Force was set.
type AcceptCandidateResult struct {
	Meeting  domain.Meeting
	Warnings []engine.Violation
}

// TransitionMeetingParams moves a meeting through its lifecycle.
type TransitionMeetingParams struct {
	MeetingID string
	Status    domain.MeetingStatus
}

// MonthlyPlanParams selects the month to plan.
type MonthlyPlanParams struct {
	Year  int
	Month time.Month
}

// RecommendMeetingsParams asks for ranked meeting slots for a new event.
type RecommendMeetingsParams struct {
	RouteID          string
	ExpectedRequests int
	// HorizonDays bounds how far ahead meetings are considered. Zero selects
	// the default horizon.
	HorizonDays int
}

// CreateEventParams carries the inputs for creating a funding-request event.
// The deadline chain is computed from the meeting date and the route's stage
// configuration before the event is persisted.
type CreateEventParams struct {
	MeetingID           string
	RouteID             string
	Name                string
	ExpectedRequests    int
	CallPublicationDate *time.Time
}
