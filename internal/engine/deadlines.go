package engine

import (
	"fmt"
	"time"

	"github.com/example/committee-scheduler/internal/calendar"
	"github.com/example/committee-scheduler/internal/domain"
)

// StageDeadlines is the computed deadline chain for one funding-request
// event. All fields are UTC-midnight civil dates and all of them fall on
// business days.
type StageDeadlines struct {
	// CallStart is the date the call for proposals is published.
	CallStart time.Time
	// CallDeadline closes the call-for-proposals stage.
	CallDeadline time.Time
	// IntakeDeadline closes the submission intake stage.
	IntakeDeadline time.Time
	// ReviewDeadline closes the professional review stage; the committee
	// meeting is expected on or after it.
	ReviewDeadline time.Time
	// ResponseDeadline is when applicants must be answered, counted forward
	// from the meeting.
	ResponseDeadline time.Time
}

// ComputeStageDeadlines derives the full deadline chain for an event handled
// by the given route and decided at the given meeting date.
//
// When callPublication is nil the call start is back-calculated from the
// meeting date by the route's total SLA in business days; otherwise the
// supplied date anchors the chain and must not fall after the meeting. Each
// stage deadline is the previous one advanced by that stage's duration in
// business days, except the response deadline, which runs forward from the
// meeting itself.
func (e *Engine) ComputeStageDeadlines(meetingDate time.Time, route domain.Route, callPublication *time.Time) (StageDeadlines, error) {
	if err := validateRouteStages(route); err != nil {
		return StageDeadlines{}, err
	}

	meeting := calendar.DateOf(meetingDate)

	var callStart time.Time
	if callPublication != nil {
		callStart = calendar.DateOf(*callPublication)
		if callStart.After(meeting) {
			return StageDeadlines{}, fmt.Errorf("%w: call publication %s falls after meeting %s",
				ErrDateOrderingViolation, callStart.Format(time.DateOnly), meeting.Format(time.DateOnly))
		}
	} else {
		callStart = e.cal.StepBusinessDays(meeting, -e.routeSLADays(route))
	}

	deadlines := StageDeadlines{CallStart: callStart}
	deadlines.CallDeadline = e.cal.StepBusinessDays(callStart, route.StageADays)
	deadlines.IntakeDeadline = e.cal.StepBusinessDays(deadlines.CallDeadline, route.StageBDays)
	deadlines.ReviewDeadline = e.cal.StepBusinessDays(deadlines.IntakeDeadline, route.StageCDays)
	deadlines.ResponseDeadline = e.cal.StepBusinessDays(meeting, route.StageDDays)

	if deadlines.ReviewDeadline.After(meeting) {
		if callPublication != nil {
			return StageDeadlines{}, fmt.Errorf("%w: review deadline %s falls after meeting %s",
				ErrDateOrderingViolation, deadlines.ReviewDeadline.Format(time.DateOnly), meeting.Format(time.DateOnly))
		}
		return StageDeadlines{}, fmt.Errorf("%w: route %q stage durations exceed its total SLA",
			ErrInvalidRouteConfig, route.Name)
	}

	return deadlines, nil
}

// routeSLADays resolves a route's total SLA, falling back to the system
// default when the route does not set one.
func (e *Engine) routeSLADays(route domain.Route) int {
	if route.TotalSLADays > 0 {
		return route.TotalSLADays
	}
	return e.snapshot.Settings.DefaultSLADays
}

func validateRouteStages(route domain.Route) error {
	stages := []struct {
		name string
		days int
	}{
		{"total SLA", route.TotalSLADays},
		{"call", route.StageADays},
		{"intake", route.StageBDays},
		{"review", route.StageCDays},
		{"response", route.StageDDays},
	}
	for _, stage := range stages {
		if stage.days < 0 {
			return fmt.Errorf("%w: route %q has negative %s duration %d",
				ErrInvalidRouteConfig, route.Name, stage.name, stage.days)
		}
	}
	return nil
}
