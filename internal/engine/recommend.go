package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/example/committee-scheduler/internal/calendar"
	"github.com/example/committee-scheduler/internal/domain"
)

// Recommendation scores one upcoming meeting as a decision slot for a new
// funding-request event on a given route.
type Recommendation struct {
	MeetingID        string
	CommitteeTypeID  string
	CommitteeName    string
	Date             time.Time
	DaysUntilMeeting int
	Score            float64
	// Available reports whether the meeting can host the event without
	// breaking a hard constraint (request capacity, SLA window, full week).
	Available bool
	Reasons   []string
	Warnings  []string

	CurrentRequests int
	AvailableSpace  int
	EventCount      int
}

// RecommendMeetings ranks the snapshot's upcoming meetings in the route's
// division by suitability for an event expecting expectedRequests funding
// requests. Meetings are scored on remaining request capacity, SLA slack
// relative to the route's total SLA, existing event load, distance from
// today and week fullness, then returned best first (ties broken by earlier
// date).
func (e *Engine) RecommendMeetings(route domain.Route, expectedRequests int, today time.Time) ([]Recommendation, error) {
	if err := validateRouteStages(route); err != nil {
		return nil, err
	}
	if expectedRequests < 0 {
		return nil, fmt.Errorf("%w: negative expected requests %d", ErrInvalidRouteConfig, expectedRequests)
	}

	now := calendar.DateOf(today)
	slaDays := e.routeSLADays(route)
	weights := e.snapshot.Settings.Weights
	limits := e.snapshot.Settings.Limits

	recommendations := make([]Recommendation, 0)
	for _, meeting := range e.snapshot.Meetings {
		if !meeting.Active() || meeting.DivisionID != route.DivisionID {
			continue
		}
		date := calendar.DateOf(meeting.Date)
		if date.Before(now) {
			continue
		}
		recommendations = append(recommendations, e.scoreMeeting(meeting, date, now, slaDays, expectedRequests, weights, limits))
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].Score != recommendations[j].Score {
			return recommendations[i].Score > recommendations[j].Score
		}
		return recommendations[i].Date.Before(recommendations[j].Date)
	})
	return recommendations, nil
}

func (e *Engine) scoreMeeting(meeting domain.Meeting, date, now time.Time, slaDays, expectedRequests int, weights domain.RecommendationWeights, limits domain.CapacityLimits) Recommendation {
	rec := Recommendation{
		MeetingID:        meeting.ID,
		CommitteeTypeID:  meeting.CommitteeTypeID,
		Date:             date,
		DaysUntilMeeting: int(date.Sub(now).Hours() / 24),
		Score:            weights.BaseScore,
		Available:        true,
	}
	if committeeType, ok := e.snapshot.CommitteeTypeByID(meeting.CommitteeTypeID); ok {
		rec.CommitteeName = committeeType.Name
	}

	rec.CurrentRequests = e.snapshot.RequestLoadOn(date)
	rec.AvailableSpace = limits.MaxRequestsPerDay - rec.CurrentRequests
	if rec.AvailableSpace >= expectedRequests {
		rec.Score += weights.SpaceBonus
		rec.Reasons = append(rec.Reasons,
			fmt.Sprintf("request capacity available: %d of %d free", rec.AvailableSpace, limits.MaxRequestsPerDay))
	} else {
		rec.Score -= weights.NoSpacePenalty
		rec.Available = false
		rec.Warnings = append(rec.Warnings,
			fmt.Sprintf("insufficient request capacity: %d free, %d needed", rec.AvailableSpace, expectedRequests))
	}

	days := rec.DaysUntilMeeting
	switch {
	case days >= slaDays:
		slack := days - slaDays
		rec.Score += min(float64(slack)*0.5, weights.SLABonus)
		rec.Reasons = append(rec.Reasons, fmt.Sprintf("meets SLA with %d days to spare", slack))
	case float64(days) >= 0.8*float64(slaDays):
		rec.Score -= weights.TightSLAPenalty
		rec.Warnings = append(rec.Warnings, fmt.Sprintf("tight SLA window: %d of %d days", days, slaDays))
	default:
		rec.Score -= weights.NoSLAPenalty
		rec.Available = false
		rec.Warnings = append(rec.Warnings, fmt.Sprintf("insufficient SLA window: need %d days, have %d", slaDays, days))
	}

	rec.EventCount = len(e.snapshot.EventsForMeeting(meeting.ID))
	switch {
	case rec.EventCount == 0:
		rec.Score += weights.NoEventsBonus
		rec.Reasons = append(rec.Reasons, "no events scheduled yet")
	case rec.EventCount <= 3:
		rec.Reasons = append(rec.Reasons, fmt.Sprintf("low event load: %d", rec.EventCount))
	case rec.EventCount <= 6:
		rec.Score -= weights.MediumLoadPenalty
		rec.Warnings = append(rec.Warnings, fmt.Sprintf("moderate event load: %d", rec.EventCount))
	default:
		rec.Score -= weights.HighLoadPenalty
		rec.Warnings = append(rec.Warnings, fmt.Sprintf("high event load: %d", rec.EventCount))
	}

	optimalEnd := slaDays + weights.OptimalRangeEnd
	if days >= slaDays+weights.OptimalRangeStart && days <= optimalEnd {
		rec.Score += weights.OptimalRangeBonus
		rec.Reasons = append(rec.Reasons, "within optimal scheduling range")
	} else if days > optimalEnd+weights.FarFutureThreshold {
		rec.Score -= weights.FarFuturePenalty
		rec.Warnings = append(rec.Warnings, fmt.Sprintf("far in the future: %d days", days))
	}

	weekStart, weekEnd := e.cal.WeekBounds(date)
	weekCount := len(e.snapshot.ActiveMeetingsBetween(weekStart, weekEnd))
	weekLimit := limits.MaxMeetingsPerStandardWeek
	if calendar.IsThirdWeek(date) {
		weekLimit = limits.MaxMeetingsPerThirdWeek
	}
	if weekCount >= weekLimit {
		rec.Score -= weights.WeekFullPenalty
		rec.Available = false
		rec.Warnings = append(rec.Warnings, fmt.Sprintf("week is full: %d of %d meetings", weekCount, weekLimit))
	}

	if rec.Available && len(rec.Warnings) == 0 {
		rec.Score += weights.BestBonus
	}
	if rec.Score < 0 {
		rec.Score = 0
	}
	return rec
}
