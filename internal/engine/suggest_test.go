package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/example/committee-scheduler/internal/calendar"
	"github.com/example/committee-scheduler/internal/domain"
)

func monthlyCommittee() domain.CommitteeType {
	return domain.CommitteeType{
		ID:               "committee-1",
		DivisionID:       "division-1",
		Name:             "Growth Committee",
		ScheduledWeekday: time.Tuesday,
		Frequency:        domain.FrequencyMonthly,
		WeekOfMonth:      intPtr(3),
		Active:           true,
	}
}

func weeklyCommittee() domain.CommitteeType {
	return domain.CommitteeType{
		ID:               "committee-2",
		DivisionID:       "division-1",
		Name:             "Intake Committee",
		ScheduledWeekday: time.Tuesday,
		Frequency:        domain.FrequencyWeekly,
		Active:           true,
	}
}

func TestSuggestDates_MonthlyThirdTuesday(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, testSnapshot())

	// A 60-day window from 2026-03-01 spans March and April; each month
	// contributes its third Tuesday.
	candidates, err := e.SuggestDates(monthlyCommittee(), "division-1", calendar.Date(2026, time.March, 1), 60)
	if err != nil {
		t.Fatalf("SuggestDates returned error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(candidates), candidates)
	}

	expected := []time.Time{
		calendar.Date(2026, time.March, 17),
		calendar.Date(2026, time.April, 21),
	}
	for i, candidate := range candidates {
		if !candidate.Date.Equal(expected[i]) {
			t.Fatalf("expected candidate %d on %s, got %s",
				i, expected[i].Format(time.DateOnly), candidate.Date.Format(time.DateOnly))
		}
		if candidate.Date.Weekday() != time.Tuesday {
			t.Fatalf("expected Tuesday, got %s", candidate.Date.Weekday())
		}
		if !candidate.Available {
			t.Fatalf("expected candidate %s available, reasons %v",
				candidate.Date.Format(time.DateOnly), candidate.Reasons)
		}
	}
}

func TestSuggestDates_WeeklyEnumeration(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, testSnapshot())

	candidates, err := e.SuggestDates(weeklyCommittee(), "division-1", calendar.Date(2026, time.March, 1), 14)
	if err != nil {
		t.Fatalf("SuggestDates returned error: %v", err)
	}

	expected := []time.Time{
		calendar.Date(2026, time.March, 3),
		calendar.Date(2026, time.March, 10),
	}
	if len(candidates) != len(expected) {
		t.Fatalf("expected %d candidates, got %d: %+v", len(expected), len(candidates), candidates)
	}
	for i, candidate := range candidates {
		if !candidate.Date.Equal(expected[i]) {
			t.Fatalf("expected candidate %d on %s, got %s",
				i, expected[i].Format(time.DateOnly), candidate.Date.Format(time.DateOnly))
		}
	}
}

func TestSuggestDates_ExceptionDateReported(t *testing.T) {
	t.Parallel()

	snapshot := testSnapshot()
	snapshot.ExceptionDates = []domain.ExceptionDate{
		{ID: "exc-1", Date: calendar.Date(2026, time.March, 3), Description: "Purim", Kind: "holiday"},
	}
	e := newTestEngine(t, snapshot)

	candidates, err := e.SuggestDates(weeklyCommittee(), "division-1", calendar.Date(2026, time.March, 1), 14)
	if err != nil {
		t.Fatalf("SuggestDates returned error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}

	blocked := candidates[0]
	if blocked.Available {
		t.Fatalf("expected exception-date candidate to be unavailable")
	}
	if want := "falls on exception date: Purim"; len(blocked.Reasons) != 1 || blocked.Reasons[0] != want {
		t.Fatalf("expected reason %q, got %v", want, blocked.Reasons)
	}
	if !candidates[1].Available {
		t.Fatalf("expected following week to stay available, reasons %v", candidates[1].Reasons)
	}
}

func TestSuggestDates_NonWorkingWeekday(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, testSnapshot())
	committee := weeklyCommittee()
	committee.ScheduledWeekday = time.Friday

	candidates, err := e.SuggestDates(committee, "division-1", calendar.Date(2026, time.March, 1), 7)
	if err != nil {
		t.Fatalf("SuggestDates returned error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Available {
		t.Fatalf("expected Friday candidate to be unavailable")
	}
	if want := "not a working day"; candidates[0].Reasons[0] != want {
		t.Fatalf("expected reason %q, got %v", want, candidates[0].Reasons)
	}
}

func TestSuggestDates_DuplicateMeetingReported(t *testing.T) {
	t.Parallel()

	committee := weeklyCommittee()
	snapshot := testSnapshot()
	snapshot.Meetings = []domain.Meeting{
		{
			ID:              "meeting-1",
			CommitteeTypeID: committee.ID,
			DivisionID:      "division-1",
			Date:            calendar.Date(2026, time.March, 10),
			Status:          domain.MeetingPlanned,
		},
	}
	e := newTestEngine(t, snapshot)

	candidates, err := e.SuggestDates(committee, "division-1", calendar.Date(2026, time.March, 1), 14)
	if err != nil {
		t.Fatalf("SuggestDates returned error: %v", err)
	}

	taken := candidates[1]
	if taken.Available {
		t.Fatalf("expected duplicate date to be unavailable")
	}
	if want := "committee already meets on this date"; taken.Reasons[0] != want {
		t.Fatalf("expected reason %q, got %v", want, taken.Reasons)
	}
}

func TestSuggestDates_CapacityViolationsCopied(t *testing.T) {
	t.Parallel()

	snapshot := testSnapshot()
	snapshot.Settings.Limits.MaxMeetingsPerDay = 1
	snapshot.Meetings = []domain.Meeting{
		{
			ID:              "meeting-1",
			CommitteeTypeID: "committee-other",
			DivisionID:      "division-2",
			Date:            calendar.Date(2026, time.March, 10),
			Status:          domain.MeetingScheduled,
		},
	}
	e := newTestEngine(t, snapshot)

	candidates, err := e.SuggestDates(weeklyCommittee(), "division-1", calendar.Date(2026, time.March, 1), 14)
	if err != nil {
		t.Fatalf("SuggestDates returned error: %v", err)
	}

	busy := candidates[1]
	if busy.Available {
		t.Fatalf("expected capacity-limited date to be unavailable")
	}
	if want := "daily meeting cap exceeded: 1/1"; busy.Reasons[0] != want {
		t.Fatalf("expected reason %q, got %v", want, busy.Reasons)
	}
}

func TestSuggestDates_EmptyWindow(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, testSnapshot())

	// April 2026 has only four Tuesdays, so a fifth-Tuesday rule matches
	// nothing inside an April-only window.
	committee := monthlyCommittee()
	committee.WeekOfMonth = intPtr(5)

	candidates, err := e.SuggestDates(committee, "division-1", calendar.Date(2026, time.April, 1), 28)
	if err != nil {
		t.Fatalf("SuggestDates returned error: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates, got %+v", candidates)
	}
}

func TestSuggestDates_ZeroWindow(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, testSnapshot())
	candidates, err := e.SuggestDates(weeklyCommittee(), "division-1", calendar.Date(2026, time.March, 1), 0)
	if err != nil {
		t.Fatalf("SuggestDates returned error: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates, got %+v", candidates)
	}
}

func TestSuggestDates_InvalidConfig(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, testSnapshot())
	from := calendar.Date(2026, time.March, 1)

	cases := []struct {
		name   string
		mutate func(*domain.CommitteeType)
	}{
		{"monthly without week of month", func(c *domain.CommitteeType) {
			c.Frequency = domain.FrequencyMonthly
			c.WeekOfMonth = nil
		}},
		{"week of month out of range", func(c *domain.CommitteeType) {
			c.Frequency = domain.FrequencyMonthly
			c.WeekOfMonth = intPtr(6)
		}},
		{"unknown frequency", func(c *domain.CommitteeType) {
			c.Frequency = domain.Frequency("daily")
		}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			committee := weeklyCommittee()
			tc.mutate(&committee)
			if _, err := e.SuggestDates(committee, "division-1", from, 30); !errors.Is(err, ErrInvalidCommitteeTypeConfig) {
				t.Fatalf("expected ErrInvalidCommitteeTypeConfig, got %v", err)
			}
		})
	}
}
