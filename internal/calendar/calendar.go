package calendar

import (
	"errors"
	"sort"
	"time"
)

// ExceptionKind classifies why a specific date is non-working.
type ExceptionKind string

const (
	// ExceptionHoliday marks a public or religious holiday.
	ExceptionHoliday ExceptionKind = "holiday"
	// ExceptionSabbath marks a special sabbath observance.
	ExceptionSabbath ExceptionKind = "sabbath"
	// ExceptionClosure marks an organisation-specific closure day.
	ExceptionClosure ExceptionKind = "closure"
)

// ExceptionDate marks a specific calendar date as non-working regardless of
// its weekday.
type ExceptionDate struct {
	Date        time.Time
	Description string
	Kind        ExceptionKind
}

// ErrEmptyCalendar indicates the working-weekday set is empty, leaving no
// business days at all.
var ErrEmptyCalendar = errors.New("calendar: no working weekdays configured")

// WorkCalendar answers business-day membership and performs business-day
// stepping over a configured work week and a set of exception dates. It is
// immutable after construction and safe for concurrent use.
type WorkCalendar struct {
	weekdays   map[time.Weekday]struct{}
	exceptions map[time.Time]ExceptionDate
	weekStart  time.Weekday
}

// Option configures optional calendar behaviour.
type Option func(*WorkCalendar)

// WithWeekStart sets the weekday on which capacity weeks begin. The default
// is Sunday, matching a Sunday-Thursday work week.
func WithWeekStart(weekday time.Weekday) Option {
	return func(c *WorkCalendar) {
		c.weekStart = weekday
	}
}

// New builds a WorkCalendar from the supplied working weekdays and exception
// dates. Duplicate weekdays are collapsed; for duplicate exception dates the
// first entry wins, preserving the uniqueness invariant. New fails with
// ErrEmptyCalendar when no working weekday is given.
func New(weekdays []time.Weekday, exceptions []ExceptionDate, opts ...Option) (*WorkCalendar, error) {
	if len(weekdays) == 0 {
		return nil, ErrEmptyCalendar
	}

	c := &WorkCalendar{
		weekdays:   make(map[time.Weekday]struct{}, len(weekdays)),
		exceptions: make(map[time.Time]ExceptionDate, len(exceptions)),
		weekStart:  time.Sunday,
	}

	for _, weekday := range weekdays {
		c.weekdays[weekday] = struct{}{}
	}

	for _, exception := range exceptions {
		key := DateOf(exception.Date)
		if _, exists := c.exceptions[key]; exists {
			continue
		}
		exception.Date = key
		c.exceptions[key] = exception
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Date returns the civil date at UTC midnight.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf truncates an instant to its civil date at UTC midnight. The date
// components are taken in the instant's own location, so a local-time
// midnight maps to the same civil day.
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Weekdays returns the configured working weekdays in ascending order.
func (c *WorkCalendar) Weekdays() []time.Weekday {
	out := make([]time.Weekday, 0, len(c.weekdays))
	for weekday := range c.weekdays {
		out = append(out, weekday)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// WeekStart returns the weekday on which capacity weeks begin.
func (c *WorkCalendar) WeekStart() time.Weekday {
	return c.weekStart
}

// IsBusinessDay reports whether the date falls on a working weekday and is
// not an exception date.
func (c *WorkCalendar) IsBusinessDay(t time.Time) bool {
	day := DateOf(t)
	if _, ok := c.weekdays[day.Weekday()]; !ok {
		return false
	}
	_, excepted := c.exceptions[day]
	return !excepted
}

// ExceptionOn returns the exception entry covering the date, if any.
func (c *WorkCalendar) ExceptionOn(t time.Time) (ExceptionDate, bool) {
	exception, ok := c.exceptions[DateOf(t)]
	return exception, ok
}

// StepBusinessDays moves forward (n > 0) or backward (n < 0) exactly |n|
// business days, skipping non-business days entirely. A non-business start
// date is itself skipped before counting begins. With n == 0 the nearest
// business day at or after t is returned, giving callers a deterministic
// anchor when they pass a non-business date.
func (c *WorkCalendar) StepBusinessDays(t time.Time, n int) time.Time {
	current := DateOf(t)

	if n == 0 {
		for !c.IsBusinessDay(current) {
			current = current.AddDate(0, 0, 1)
		}
		return current
	}

	step := 1
	if n < 0 {
		step = -1
		n = -n
	}

	for taken := 0; taken < n; {
		current = current.AddDate(0, 0, step)
		if c.IsBusinessDay(current) {
			taken++
		}
	}

	return current
}

// BusinessDaysInRange returns every business day in [from, to], inclusive,
// in chronological order.
func (c *WorkCalendar) BusinessDaysInRange(from, to time.Time) []time.Time {
	start := DateOf(from)
	end := DateOf(to)

	days := make([]time.Time, 0)
	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		if c.IsBusinessDay(current) {
			days = append(days, current)
		}
	}
	return days
}

// WeekBounds returns the 7-day window containing t, starting on the
// configured week-start weekday. Both bounds are inclusive civil dates.
func (c *WorkCalendar) WeekBounds(t time.Time) (time.Time, time.Time) {
	day := DateOf(t)
	offset := (int(day.Weekday()) - int(c.weekStart) + 7) % 7
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// WeekOfMonth returns the 1-based week bucket of the month containing t,
// counting 7-day buckets from the 1st: days 1-7 are week 1, days 15-21 are
// week 3. For any weekday this coincides with "nth occurrence of that
// weekday within the month", which is why both the suggester's week-of-month
// matching and the capacity validator's third-week rule share it.
func WeekOfMonth(t time.Time) int {
	return (DateOf(t).Day()-1)/7 + 1
}

// IsThirdWeek reports whether t falls in the month's third week bucket
// (days 15-21).
func IsThirdWeek(t time.Time) bool {
	return WeekOfMonth(t) == 3
}
