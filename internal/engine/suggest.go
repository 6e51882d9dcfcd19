package engine

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/example/committee-scheduler/internal/calendar"
	"github.com/example/committee-scheduler/internal/domain"
)

// Candidate is one potential meeting date produced by SuggestDates.
type Candidate struct {
	Date time.Time
	// Available reports whether the date can be scheduled without any
	// advisory objection. Unavailable candidates stay in the result so
	// callers can show why each date was rejected.
	Available bool
	Reasons   []string
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// SuggestDates enumerates the committee type's recurrence rule over a search
// window of windowDays calendar days starting at searchFrom and annotates
// every occurrence.
//
// Occurrences on non-business days are kept in the result, marked
// unavailable with the exception's description or the non-working-day reason.
// Business-day occurrences additionally carry any capacity violations and a
// duplicate-meeting objection when the committee already has an active
// meeting for the division on that date. A window with no occurrences yields
// an empty slice, not an error.
func (e *Engine) SuggestDates(committeeType domain.CommitteeType, divisionID string, searchFrom time.Time, windowDays int) ([]Candidate, error) {
	option, err := e.recurrenceOption(committeeType, searchFrom)
	if err != nil {
		return nil, err
	}
	if windowDays <= 0 {
		return []Candidate{}, nil
	}

	rule, err := rrule.NewRRule(option)
	if err != nil {
		return nil, fmt.Errorf("%w: committee type %q: %v", ErrInvalidCommitteeTypeConfig, committeeType.Name, err)
	}

	from := calendar.DateOf(searchFrom)
	until := from.AddDate(0, 0, windowDays-1)

	candidates := make([]Candidate, 0)
	for _, occurrence := range rule.Between(from, until, true) {
		candidates = append(candidates, e.annotate(committeeType, divisionID, calendar.DateOf(occurrence)))
	}
	return candidates, nil
}

func (e *Engine) recurrenceOption(committeeType domain.CommitteeType, searchFrom time.Time) (rrule.ROption, error) {
	weekday, ok := rruleWeekdays[committeeType.ScheduledWeekday]
	if !ok {
		return rrule.ROption{}, fmt.Errorf("%w: committee type %q has unknown weekday %d",
			ErrInvalidCommitteeTypeConfig, committeeType.Name, committeeType.ScheduledWeekday)
	}

	option := rrule.ROption{Dtstart: calendar.DateOf(searchFrom)}
	switch committeeType.Frequency {
	case domain.FrequencyWeekly:
		option.Freq = rrule.WEEKLY
		option.Byweekday = []rrule.Weekday{weekday}
	case domain.FrequencyMonthly:
		if committeeType.WeekOfMonth == nil {
			return rrule.ROption{}, fmt.Errorf("%w: monthly committee type %q has no week of month",
				ErrInvalidCommitteeTypeConfig, committeeType.Name)
		}
		week := *committeeType.WeekOfMonth
		if week < 1 || week > 5 {
			return rrule.ROption{}, fmt.Errorf("%w: committee type %q week of month %d is out of range",
				ErrInvalidCommitteeTypeConfig, committeeType.Name, week)
		}
		option.Freq = rrule.MONTHLY
		option.Byweekday = []rrule.Weekday{weekday.Nth(week)}
	default:
		return rrule.ROption{}, fmt.Errorf("%w: committee type %q has unknown frequency %q",
			ErrInvalidCommitteeTypeConfig, committeeType.Name, committeeType.Frequency)
	}
	return option, nil
}

func (e *Engine) annotate(committeeType domain.CommitteeType, divisionID string, date time.Time) Candidate {
	candidate := Candidate{Date: date}

	if !e.cal.IsBusinessDay(date) {
		if exception, ok := e.cal.ExceptionOn(date); ok {
			candidate.Reasons = append(candidate.Reasons,
				fmt.Sprintf("falls on exception date: %s", exception.Description))
		} else {
			candidate.Reasons = append(candidate.Reasons, "not a working day")
		}
		return candidate
	}

	for _, meeting := range e.snapshot.ActiveMeetingsOn(date) {
		if meeting.CommitteeTypeID == committeeType.ID && meeting.DivisionID == divisionID {
			candidate.Reasons = append(candidate.Reasons, "committee already meets on this date")
			break
		}
	}

	decision := e.CheckCapacity(date, 0)
	for _, violation := range decision.Violations {
		candidate.Reasons = append(candidate.Reasons, violation.Message)
	}

	candidate.Available = len(candidate.Reasons) == 0
	return candidate
}
