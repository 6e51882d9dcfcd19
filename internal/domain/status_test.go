package domain

import "testing"

func TestMeetingStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from MeetingStatus
		to   MeetingStatus
		want bool
	}{
		{MeetingPlanned, MeetingScheduled, true},
		{MeetingPlanned, MeetingCancelled, true},
		{MeetingPlanned, MeetingCompleted, false},
		{MeetingScheduled, MeetingCompleted, true},
		{MeetingScheduled, MeetingCancelled, true},
		{MeetingScheduled, MeetingPlanned, false},
		{MeetingCompleted, MeetingCancelled, false},
		{MeetingCancelled, MeetingPlanned, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Fatalf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestMeetingStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, status := range []MeetingStatus{MeetingPlanned, MeetingScheduled, MeetingCompleted, MeetingCancelled} {
		if !status.Valid() {
			t.Fatalf("expected %s to be valid", status)
		}
	}
	if MeetingStatus("archived").Valid() {
		t.Fatalf("expected unknown status to be invalid")
	}
}

func TestMeeting_Active(t *testing.T) {
	t.Parallel()

	if (Meeting{Status: MeetingCancelled}).Active() {
		t.Fatalf("cancelled meetings must not count as active")
	}
	for _, status := range []MeetingStatus{MeetingPlanned, MeetingScheduled, MeetingCompleted} {
		if !(Meeting{Status: status}).Active() {
			t.Fatalf("expected %s meeting to be active", status)
		}
	}
}
