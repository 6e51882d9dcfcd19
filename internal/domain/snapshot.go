package domain

import (
	"time"

	"github.com/example/committee-scheduler/internal/calendar"
)

// RecommendationWeights tunes the committee recommendation scoring. All
// values are expressed in score points except the range fields, which are
// day counts relative to a route's SLA.
type RecommendationWeights struct {
	BaseScore          float64
	BestBonus          float64
	SpaceBonus         float64
	SLABonus           float64
	OptimalRangeBonus  float64
	NoEventsBonus      float64
	HighLoadPenalty    float64
	MediumLoadPenalty  float64
	NoSpacePenalty     float64
	NoSLAPenalty       float64
	TightSLAPenalty    float64
	FarFuturePenalty   float64
	WeekFullPenalty    float64
	OptimalRangeStart  int
	OptimalRangeEnd    int
	FarFutureThreshold int
}

// DefaultRecommendationWeights returns the stock scoring configuration.
func DefaultRecommendationWeights() RecommendationWeights {
	return RecommendationWeights{
		BaseScore:          100,
		BestBonus:          25,
		SpaceBonus:         10,
		SLABonus:           20,
		OptimalRangeBonus:  15,
		NoEventsBonus:      5,
		HighLoadPenalty:    15,
		MediumLoadPenalty:  5,
		NoSpacePenalty:     50,
		NoSLAPenalty:       30,
		TightSLAPenalty:    10,
		FarFuturePenalty:   10,
		WeekFullPenalty:    20,
		OptimalRangeStart:  0,
		OptimalRangeEnd:    30,
		FarFutureThreshold: 60,
	}
}

// Settings is the system-wide configuration portion of a snapshot.
type Settings struct {
	WorkWeekdays   []time.Weekday
	WeekStart      time.Weekday
	Limits         CapacityLimits
	DefaultSLADays int
	Weights        RecommendationWeights
}

// DefaultSettings returns the stock configuration: a Sunday-Thursday work
// week and the standard capacity ceilings.
func DefaultSettings() Settings {
	return Settings{
		WorkWeekdays: []time.Weekday{
			time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		},
		WeekStart: time.Sunday,
		Limits: CapacityLimits{
			MaxMeetingsPerDay:          2,
			MaxMeetingsPerStandardWeek: 5,
			MaxMeetingsPerThirdWeek:    3,
			MaxRequestsPerDay:          40,
		},
		DefaultSLADays: 45,
		Weights:        DefaultRecommendationWeights(),
	}
}

// Snapshot is the immutable view of configuration and reference data every
// engine call consumes. The caller (typically the persistence layer) produces
// it from a single consistent read; the engine never mutates it.
type Snapshot struct {
	Settings Settings

	ExceptionDates []ExceptionDate
	Divisions      []Division
	Routes         []Route
	CommitteeTypes []CommitteeType
	Meetings       []Meeting
	Events         []Event
}

// Calendar materialises the snapshot's work week and exception dates into a
// WorkCalendar.
func (s Snapshot) Calendar() (*calendar.WorkCalendar, error) {
	exceptions := make([]calendar.ExceptionDate, 0, len(s.ExceptionDates))
	for _, exception := range s.ExceptionDates {
		exceptions = append(exceptions, calendar.ExceptionDate{
			Date:        exception.Date,
			Description: exception.Description,
			Kind:        calendar.ExceptionKind(exception.Kind),
		})
	}

	// The zero value of time.Weekday is Sunday, which is also the calendar
	// default, so the week start can be passed through unconditionally.
	return calendar.New(s.Settings.WorkWeekdays, exceptions, calendar.WithWeekStart(s.Settings.WeekStart))
}

// RouteByID looks up a route in the snapshot.
func (s Snapshot) RouteByID(id string) (Route, bool) {
	for _, route := range s.Routes {
		if route.ID == id {
			return route, true
		}
	}
	return Route{}, false
}

// CommitteeTypeByID looks up a committee type in the snapshot.
func (s Snapshot) CommitteeTypeByID(id string) (CommitteeType, bool) {
	for _, committeeType := range s.CommitteeTypes {
		if committeeType.ID == id {
			return committeeType, true
		}
	}
	return CommitteeType{}, false
}

// MeetingByID looks up a meeting in the snapshot.
func (s Snapshot) MeetingByID(id string) (Meeting, bool) {
	for _, meeting := range s.Meetings {
		if meeting.ID == id {
			return meeting, true
		}
	}
	return Meeting{}, false
}

// ActiveMeetingsOn returns the non-cancelled meetings on the given civil
// date, across all divisions.
func (s Snapshot) ActiveMeetingsOn(date time.Time) []Meeting {
	day := calendar.DateOf(date)
	meetings := make([]Meeting, 0)
	for _, meeting := range s.Meetings {
		if meeting.Active() && calendar.DateOf(meeting.Date).Equal(day) {
			meetings = append(meetings, meeting)
		}
	}
	return meetings
}

// ActiveMeetingsBetween returns the non-cancelled meetings whose dates fall
// in [from, to], inclusive.
func (s Snapshot) ActiveMeetingsBetween(from, to time.Time) []Meeting {
	start := calendar.DateOf(from)
	end := calendar.DateOf(to)
	meetings := make([]Meeting, 0)
	for _, meeting := range s.Meetings {
		day := calendar.DateOf(meeting.Date)
		if meeting.Active() && !day.Before(start) && !day.After(end) {
			meetings = append(meetings, meeting)
		}
	}
	return meetings
}

// EventsForMeeting returns the events attached to a meeting.
func (s Snapshot) EventsForMeeting(meetingID string) []Event {
	events := make([]Event, 0)
	for _, event := range s.Events {
		if event.MeetingID == meetingID {
			events = append(events, event)
		}
	}
	return events
}

// RequestLoadOn sums the expected requests of all events attached to
// non-cancelled meetings on the given date.
func (s Snapshot) RequestLoadOn(date time.Time) int {
	total := 0
	for _, meeting := range s.ActiveMeetingsOn(date) {
		for _, event := range s.EventsForMeeting(meeting.ID) {
			total += event.ExpectedRequests
		}
	}
	return total
}
