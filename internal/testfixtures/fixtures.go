// Package testfixtures provides deterministic clocks, identifier generators
// and record builders shared by application and persistence tests.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/committee-scheduler/internal/domain"
)

var (
	divisionCounter  uint64
	routeCounter     uint64
	committeeCounter uint64
	meetingCounter   uint64
	eventCounter     uint64
)

var referenceTime = time.Date(2026, time.January, 4, 9, 30, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ---------------------------- Division fixtures ---------------------------

// DivisionOption configures a generated division.
type DivisionOption func(*domain.Division)

// NewDivision returns a deterministic division with optional overrides.
func NewDivision(opts ...DivisionOption) domain.Division {
	idx := atomic.AddUint64(&divisionCounter, 1)
	division := domain.Division{
		ID:        fmt.Sprintf("division-%03d", idx),
		Name:      fmt.Sprintf("Division %03d", idx),
		Color:     "#2b6cb0",
		Active:    true,
		CreatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&division)
	}
	return division
}

// WithDivisionID overrides the generated division ID.
func WithDivisionID(id string) DivisionOption {
	return func(d *domain.Division) { d.ID = id }
}

// WithDivisionName overrides the generated division name.
func WithDivisionName(name string) DivisionOption {
	return func(d *domain.Division) { d.Name = name }
}

// ------------------------------ Route fixtures ----------------------------

// RouteOption configures a generated route.
type RouteOption func(*domain.Route)

// NewRoute returns a deterministic route with a standard 45-day SLA split
// into 10/15/10/10 stage durations.
func NewRoute(divisionID string, opts ...RouteOption) domain.Route {
	idx := atomic.AddUint64(&routeCounter, 1)
	route := domain.Route{
		ID:           fmt.Sprintf("route-%03d", idx),
		DivisionID:   divisionID,
		Name:         fmt.Sprintf("Route %03d", idx),
		Active:       true,
		TotalSLADays: 45,
		StageADays:   10,
		StageBDays:   15,
		StageCDays:   10,
		StageDDays:   10,
		CreatedAt:    referenceTime,
	}
	for _, opt := range opts {
		opt(&route)
	}
	return route
}

// WithRouteID overrides the generated route ID.
func WithRouteID(id string) RouteOption {
	return func(r *domain.Route) { r.ID = id }
}

// WithRouteSLA sets the total SLA and the four stage durations.
func WithRouteSLA(total, stageA, stageB, stageC, stageD int) RouteOption {
	return func(r *domain.Route) {
		r.TotalSLADays = total
		r.StageADays = stageA
		r.StageBDays = stageB
		r.StageCDays = stageC
		r.StageDDays = stageD
	}
}

// -------------------------- CommitteeType fixtures ------------------------

// CommitteeTypeOption configures a generated committee type.
type CommitteeTypeOption func(*domain.CommitteeType)

// NewCommitteeType returns a deterministic weekly committee type meeting on
// Tuesdays.
func NewCommitteeType(divisionID string, opts ...CommitteeTypeOption) domain.CommitteeType {
	idx := atomic.AddUint64(&committeeCounter, 1)
	committeeType := domain.CommitteeType{
		ID:               fmt.Sprintf("committee-%03d", idx),
		DivisionID:       divisionID,
		Name:             fmt.Sprintf("Committee %03d", idx),
		ScheduledWeekday: time.Tuesday,
		Frequency:        domain.FrequencyWeekly,
		Active:           true,
		CreatedAt:        referenceTime,
	}
	for _, opt := range opts {
		opt(&committeeType)
	}
	return committeeType
}

// WithCommitteeTypeID overrides the generated committee type ID.
func WithCommitteeTypeID(id string) CommitteeTypeOption {
	return func(c *domain.CommitteeType) { c.ID = id }
}

// WithMonthlyRecurrence switches the committee to a monthly cadence on the
// given week of the month.
func WithMonthlyRecurrence(weekOfMonth int) CommitteeTypeOption {
	return func(c *domain.CommitteeType) {
		week := weekOfMonth
		c.Frequency = domain.FrequencyMonthly
		c.WeekOfMonth = &week
	}
}

// WithScheduledWeekday sets the committee's fixed weekday.
func WithScheduledWeekday(weekday time.Weekday) CommitteeTypeOption {
	return func(c *domain.CommitteeType) { c.ScheduledWeekday = weekday }
}

// ----------------------------- Meeting fixtures ---------------------------

// MeetingOption configures a generated meeting.
type MeetingOption func(*domain.Meeting)

// NewMeeting returns a deterministic planned meeting on the given date.
func NewMeeting(committeeTypeID, divisionID string, date time.Time, opts ...MeetingOption) domain.Meeting {
	idx := atomic.AddUint64(&meetingCounter, 1)
	meeting := domain.Meeting{
		ID:              fmt.Sprintf("meeting-%03d", idx),
		CommitteeTypeID: committeeTypeID,
		DivisionID:      divisionID,
		Date:            date,
		Status:          domain.MeetingPlanned,
		CreatedAt:       referenceTime,
		UpdatedAt:       referenceTime,
	}
	for _, opt := range opts {
		opt(&meeting)
	}
	return meeting
}

// WithMeetingID overrides the generated meeting ID.
func WithMeetingID(id string) MeetingOption {
	return func(m *domain.Meeting) { m.ID = id }
}

// WithMeetingStatus sets the lifecycle status.
func WithMeetingStatus(status domain.MeetingStatus) MeetingOption {
	return func(m *domain.Meeting) { m.Status = status }
}

// ------------------------------ Event fixtures ----------------------------

// EventOption configures a generated event.
type EventOption func(*domain.Event)

// NewEvent returns a deterministic event attached to the given meeting and
// route.
func NewEvent(meetingID, routeID string, opts ...EventOption) domain.Event {
	idx := atomic.AddUint64(&eventCounter, 1)
	event := domain.Event{
		ID:               fmt.Sprintf("event-%03d", idx),
		MeetingID:        meetingID,
		RouteID:          routeID,
		Name:             fmt.Sprintf("Event %03d", idx),
		ExpectedRequests: 10,
		CreatedAt:        referenceTime,
		UpdatedAt:        referenceTime,
	}
	for _, opt := range opts {
		opt(&event)
	}
	return event
}

// WithEventID overrides the generated event ID.
func WithEventID(id string) EventOption {
	return func(e *domain.Event) { e.ID = id }
}

// WithExpectedRequests sets the expected request count.
func WithExpectedRequests(count int) EventOption {
	return func(e *domain.Event) { e.ExpectedRequests = count }
}
