package domain

import (
	"time"
)

// Frequency identifies how often a committee type convenes.
type Frequency string

const (
	// FrequencyWeekly convenes every week on the scheduled weekday.
	FrequencyWeekly Frequency = "weekly"
	// FrequencyMonthly convenes once a month, on the configured occurrence of
	// the scheduled weekday.
	FrequencyMonthly Frequency = "monthly"
)

// Division represents an organisational unit (hativa) owning routes and
// committee types.
type Division struct {
	ID          string
	Name        string
	Description string
	Color       string
	Active      bool
	CreatedAt   time.Time
}

// Route represents a funding track (maslul) with its SLA stage-duration
// configuration. Stage durations are counts of business days; stages A-C fall
// before the committee meeting, stage D is the post-meeting response window.
type Route struct {
	ID          string
	DivisionID  string
	Name        string
	Description string
	Active      bool

	TotalSLADays int
	StageADays   int
	StageBDays   int
	StageCDays   int
	StageDDays   int

	CreatedAt time.Time
}

// CommitteeType defines the recurrence rule for a committee: a fixed weekday,
// weekly or monthly cadence, and for monthly committees the occurrence of
// that weekday within the month.
type CommitteeType struct {
	ID               string
	DivisionID       string
	Name             string
	Description      string
	ScheduledWeekday time.Weekday
	Frequency        Frequency
	WeekOfMonth      *int
	Active           bool
	CreatedAt        time.Time
}

// ExceptionDate marks a calendar date as non-working (holiday, sabbath,
// closure) in the reference data.
type ExceptionDate struct {
	ID          string
	Date        time.Time
	Description string
	Kind        string
	CreatedAt   time.Time
}

// Meeting is one concrete, dated occurrence (vaada) of a committee type.
type Meeting struct {
	ID              string
	CommitteeTypeID string
	DivisionID      string
	Date            time.Time
	Status          MeetingStatus
	ExceptionDateID *string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Active reports whether the meeting counts against capacity. Cancelled
// meetings never do.
func (m Meeting) Active() bool {
	return m.Status != MeetingCancelled
}

// Event is a funding-request item attached to a meeting and a route. The
// deadline dates are derived from the meeting date and the route's stage
// configuration; nil means not yet computed.
type Event struct {
	ID               string
	MeetingID        string
	RouteID          string
	Name             string
	ExpectedRequests int

	CallPublicationDate *time.Time
	CallDeadline        *time.Time
	IntakeDeadline      *time.Time
	ReviewDeadline      *time.Time
	ResponseDeadline    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CapacityLimits holds the configured scheduling ceilings. Zero means
// "nothing permitted", not "unlimited".
type CapacityLimits struct {
	MaxMeetingsPerDay          int
	MaxMeetingsPerStandardWeek int
	MaxMeetingsPerThirdWeek    int
	MaxRequestsPerDay          int
}
