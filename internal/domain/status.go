package domain

// MeetingStatus models the meeting lifecycle. Meetings are never physically
// deleted; cancellation is a terminal status.
type MeetingStatus string

const (
	// MeetingPlanned is the initial status of an accepted candidate date.
	MeetingPlanned MeetingStatus = "planned"
	// MeetingScheduled marks a meeting that has been confirmed and published.
	MeetingScheduled MeetingStatus = "scheduled"
	// MeetingCompleted marks a meeting that has taken place.
	MeetingCompleted MeetingStatus = "completed"
	// MeetingCancelled marks a meeting that will not take place.
	MeetingCancelled MeetingStatus = "cancelled"
)

var meetingTransitions = map[MeetingStatus][]MeetingStatus{
	MeetingPlanned:   {MeetingScheduled, MeetingCancelled},
	MeetingScheduled: {MeetingCompleted, MeetingCancelled},
	MeetingCompleted: {},
	MeetingCancelled: {},
}

// Valid reports whether the status is one of the known lifecycle states.
func (s MeetingStatus) Valid() bool {
	_, ok := meetingTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is a permitted
// lifecycle transition (planned -> scheduled -> completed | cancelled).
func (s MeetingStatus) CanTransitionTo(next MeetingStatus) bool {
	for _, allowed := range meetingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
