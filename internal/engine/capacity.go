package engine

import (
	"fmt"
	"time"

	"github.com/example/committee-scheduler/internal/calendar"
)

// ViolationRule identifies which capacity ceiling a violation refers to.
type ViolationRule string

const (
	// RuleDailyMeetingCap limits active meetings per calendar day.
	RuleDailyMeetingCap ViolationRule = "daily_meeting_cap"
	// RuleWeeklyMeetingCap limits active meetings per standard week.
	RuleWeeklyMeetingCap ViolationRule = "weekly_meeting_cap"
	// RuleThirdWeekMeetingCap limits active meetings in a third week of the
	// month, which typically carries a different ceiling.
	RuleThirdWeekMeetingCap ViolationRule = "third_week_meeting_cap"
	// RuleDailyRequestLoad limits the total expected funding requests per day.
	RuleDailyRequestLoad ViolationRule = "daily_request_load"
)

// Violation describes one exceeded capacity ceiling.
type Violation struct {
	Rule    ViolationRule
	Message string
	Count   int
	Limit   int
}

// Decision is the advisory outcome of a capacity check. Violations are data,
// not errors: callers decide whether to honour or override them.
type Decision struct {
	OK         bool
	Violations []Violation
}

// CheckCapacity evaluates every capacity rule for scheduling one additional
// meeting on the candidate date, carrying proposedRequests expected funding
// requests. All rules are evaluated even after the first one fails, so the
// decision always lists the complete set of violations.
func (e *Engine) CheckCapacity(candidate time.Time, proposedRequests int) Decision {
	day := calendar.DateOf(candidate)
	limits := e.snapshot.Settings.Limits

	var violations []Violation

	daily := len(e.snapshot.ActiveMeetingsOn(day))
	if daily >= limits.MaxMeetingsPerDay {
		violations = append(violations, Violation{
			Rule:    RuleDailyMeetingCap,
			Message: fmt.Sprintf("daily meeting cap exceeded: %d/%d", daily, limits.MaxMeetingsPerDay),
			Count:   daily,
			Limit:   limits.MaxMeetingsPerDay,
		})
	}

	weekStart, weekEnd := e.cal.WeekBounds(day)
	weekly := len(e.snapshot.ActiveMeetingsBetween(weekStart, weekEnd))
	rule, label, weeklyLimit := RuleWeeklyMeetingCap, "weekly", limits.MaxMeetingsPerStandardWeek
	if calendar.IsThirdWeek(day) {
		rule, label, weeklyLimit = RuleThirdWeekMeetingCap, "third-week", limits.MaxMeetingsPerThirdWeek
	}
	if weekly >= weeklyLimit {
		violations = append(violations, Violation{
			Rule:    rule,
			Message: fmt.Sprintf("%s meeting cap exceeded: %d/%d", label, weekly, weeklyLimit),
			Count:   weekly,
			Limit:   weeklyLimit,
		})
	}

	load := e.snapshot.RequestLoadOn(day) + proposedRequests
	if load > limits.MaxRequestsPerDay {
		violations = append(violations, Violation{
			Rule:    RuleDailyRequestLoad,
			Message: fmt.Sprintf("daily request load exceeded: %d/%d", load, limits.MaxRequestsPerDay),
			Count:   load,
			Limit:   limits.MaxRequestsPerDay,
		})
	}

	return Decision{OK: len(violations) == 0, Violations: violations}
}
