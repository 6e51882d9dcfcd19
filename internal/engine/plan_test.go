package engine

import (
	"testing"
	"time"

	"github.com/example/committee-scheduler/internal/calendar"
	"github.com/example/committee-scheduler/internal/domain"
)

func TestPlanMonth(t *testing.T) {
	t.Parallel()

	snapshot := testSnapshot()
	snapshot.CommitteeTypes = []domain.CommitteeType{
		weeklyCommittee(),
		monthlyCommittee(),
		{
			ID:               "committee-retired",
			DivisionID:       "division-1",
			Name:             "Retired Committee",
			ScheduledWeekday: time.Monday,
			Frequency:        domain.FrequencyWeekly,
			Active:           false,
		},
	}
	e := newTestEngine(t, snapshot)

	plans, err := e.PlanMonth(2026, time.March)
	if err != nil {
		t.Fatalf("PlanMonth returned error: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(plans))
	}

	// Sorted by committee name: Growth before Intake.
	growth, intake := plans[0], plans[1]
	if growth.CommitteeType.ID != "committee-1" || intake.CommitteeType.ID != "committee-2" {
		t.Fatalf("unexpected plan order: %s, %s", growth.CommitteeType.ID, intake.CommitteeType.ID)
	}

	// March 2026 has five Tuesdays; the monthly committee keeps only the
	// third one.
	if len(intake.Candidates) != 5 {
		t.Fatalf("expected 5 weekly candidates, got %d", len(intake.Candidates))
	}
	if len(growth.Candidates) != 1 {
		t.Fatalf("expected 1 monthly candidate, got %d", len(growth.Candidates))
	}
	if want := calendar.Date(2026, time.March, 17); !growth.Candidates[0].Date.Equal(want) {
		t.Fatalf("expected %s, got %s",
			want.Format(time.DateOnly), growth.Candidates[0].Date.Format(time.DateOnly))
	}
}

func TestPlanMonth_InvalidCommitteeType(t *testing.T) {
	t.Parallel()

	committee := monthlyCommittee()
	committee.WeekOfMonth = nil

	snapshot := testSnapshot()
	snapshot.CommitteeTypes = []domain.CommitteeType{committee}
	e := newTestEngine(t, snapshot)

	if _, err := e.PlanMonth(2026, time.March); err == nil {
		t.Fatalf("expected error for malformed committee type")
	}
}
