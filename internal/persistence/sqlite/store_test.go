package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/committee-scheduler/internal/calendar"
	"github.com/example/committee-scheduler/internal/domain"
	"github.com/example/committee-scheduler/internal/persistence"
)

var testCreatedAt = time.Date(2026, time.January, 4, 9, 30, 0, 0, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "scheduler.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return store
}

func seedDivision(t *testing.T, store *Store, id string) {
	t.Helper()
	err := store.CreateDivision(context.Background(), domain.Division{
		ID:        id,
		Name:      "Division " + id,
		Active:    true,
		CreatedAt: testCreatedAt,
	})
	if err != nil {
		t.Fatalf("CreateDivision failed: %v", err)
	}
}

func seedCommitteeType(t *testing.T, store *Store, id, divisionID string) {
	t.Helper()
	err := store.CreateCommitteeType(context.Background(), domain.CommitteeType{
		ID:               id,
		DivisionID:       divisionID,
		Name:             "Committee " + id,
		ScheduledWeekday: time.Tuesday,
		Frequency:        domain.FrequencyWeekly,
		Active:           true,
		CreatedAt:        testCreatedAt,
	})
	if err != nil {
		t.Fatalf("CreateCommitteeType failed: %v", err)
	}
}

func TestStore_Ping(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
}

func TestStore_DivisionRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	division := domain.Division{
		ID:          "division-1",
		Name:        "Industry",
		Description: "Industrial funding",
		Color:       "#2b6cb0",
		Active:      true,
		CreatedAt:   testCreatedAt,
	}
	if err := store.CreateDivision(ctx, division); err != nil {
		t.Fatalf("CreateDivision failed: %v", err)
	}

	got, err := store.GetDivision(ctx, "division-1")
	if err != nil {
		t.Fatalf("GetDivision failed: %v", err)
	}
	if got != division {
		t.Fatalf("expected %+v, got %+v", division, got)
	}

	division.Name = "Industry & Trade"
	if err := store.UpdateDivision(ctx, division); err != nil {
		t.Fatalf("UpdateDivision failed: %v", err)
	}
	divisions, err := store.ListDivisions(ctx)
	if err != nil {
		t.Fatalf("ListDivisions failed: %v", err)
	}
	if len(divisions) != 1 || divisions[0].Name != "Industry & Trade" {
		t.Fatalf("unexpected list result: %+v", divisions)
	}

	if _, err := store.GetDivision(ctx, "missing"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ActiveDivisionNameUnique(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	first := domain.Division{ID: "division-1", Name: "Industry", Active: true, CreatedAt: testCreatedAt}
	if err := store.CreateDivision(ctx, first); err != nil {
		t.Fatalf("CreateDivision failed: %v", err)
	}

	duplicate := domain.Division{ID: "division-2", Name: "Industry", Active: true, CreatedAt: testCreatedAt}
	if err := store.CreateDivision(ctx, duplicate); !errors.Is(err, persistence.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// An inactive namesake is allowed.
	retired := domain.Division{ID: "division-3", Name: "Industry", Active: false, CreatedAt: testCreatedAt}
	if err := store.CreateDivision(ctx, retired); err != nil {
		t.Fatalf("expected inactive duplicate to be accepted, got %v", err)
	}
}

func TestStore_RouteRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()
	seedDivision(t, store, "division-1")

	route := domain.Route{
		ID:           "route-1",
		DivisionID:   "division-1",
		Name:         "Industrial R&D",
		Active:       true,
		TotalSLADays: 45,
		StageADays:   10,
		StageBDays:   15,
		StageCDays:   10,
		StageDDays:   10,
		CreatedAt:    testCreatedAt,
	}
	if err := store.CreateRoute(ctx, route); err != nil {
		t.Fatalf("CreateRoute failed: %v", err)
	}

	got, err := store.GetRoute(ctx, "route-1")
	if err != nil {
		t.Fatalf("GetRoute failed: %v", err)
	}
	if got != route {
		t.Fatalf("expected %+v, got %+v", route, got)
	}

	routes, err := store.ListRoutesForDivision(ctx, "division-1")
	if err != nil {
		t.Fatalf("ListRoutesForDivision failed: %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(routes))
	}
}

func TestStore_CommitteeTypeRecurrenceConstraint(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()
	seedDivision(t, store, "division-1")

	// Monthly without a week of month violates the schema check.
	malformed := domain.CommitteeType{
		ID:               "committee-bad",
		DivisionID:       "division-1",
		Name:             "Broken",
		ScheduledWeekday: time.Tuesday,
		Frequency:        domain.FrequencyMonthly,
		Active:           true,
		CreatedAt:        testCreatedAt,
	}
	if err := store.CreateCommitteeType(ctx, malformed); !errors.Is(err, persistence.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	week := 3
	monthly := malformed
	monthly.ID = "committee-1"
	monthly.Name = "Growth"
	monthly.WeekOfMonth = &week
	if err := store.CreateCommitteeType(ctx, monthly); err != nil {
		t.Fatalf("CreateCommitteeType failed: %v", err)
	}

	got, err := store.GetCommitteeType(ctx, "committee-1")
	if err != nil {
		t.Fatalf("GetCommitteeType failed: %v", err)
	}
	if got.WeekOfMonth == nil || *got.WeekOfMonth != 3 {
		t.Fatalf("expected week of month 3, got %+v", got.WeekOfMonth)
	}
}

func TestStore_MeetingUniqueActiveSlot(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()
	seedDivision(t, store, "division-1")
	seedCommitteeType(t, store, "committee-1", "division-1")

	date := calendar.Date(2026, time.March, 10)
	meeting := domain.Meeting{
		ID:              "meeting-1",
		CommitteeTypeID: "committee-1",
		DivisionID:      "division-1",
		Date:            date,
		Status:          domain.MeetingPlanned,
		CreatedAt:       testCreatedAt,
		UpdatedAt:       testCreatedAt,
	}
	if err := store.CreateMeeting(ctx, meeting); err != nil {
		t.Fatalf("CreateMeeting failed: %v", err)
	}

	duplicate := meeting
	duplicate.ID = "meeting-2"
	if err := store.CreateMeeting(ctx, duplicate); !errors.Is(err, persistence.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate active slot, got %v", err)
	}

	// Cancelling the first meeting frees the slot.
	meeting.Status = domain.MeetingCancelled
	if err := store.UpdateMeeting(ctx, meeting); err != nil {
		t.Fatalf("UpdateMeeting failed: %v", err)
	}
	if err := store.CreateMeeting(ctx, duplicate); err != nil {
		t.Fatalf("expected slot to be free after cancellation, got %v", err)
	}
}

func TestStore_ListMeetingsFilter(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()
	seedDivision(t, store, "division-1")
	seedCommitteeType(t, store, "committee-1", "division-1")

	dates := []time.Time{
		calendar.Date(2026, time.March, 3),
		calendar.Date(2026, time.March, 10),
		calendar.Date(2026, time.April, 7),
	}
	for i, date := range dates {
		meeting := domain.Meeting{
			ID:              "meeting-" + string(rune('a'+i)),
			CommitteeTypeID: "committee-1",
			DivisionID:      "division-1",
			Date:            date,
			Status:          domain.MeetingPlanned,
			CreatedAt:       testCreatedAt,
			UpdatedAt:       testCreatedAt,
		}
		if err := store.CreateMeeting(ctx, meeting); err != nil {
			t.Fatalf("CreateMeeting failed: %v", err)
		}
	}

	from := calendar.Date(2026, time.March, 1)
	to := calendar.Date(2026, time.March, 31)
	meetings, err := store.ListMeetings(ctx, persistence.MeetingFilter{
		DivisionID: "division-1",
		Statuses:   []domain.MeetingStatus{domain.MeetingPlanned},
		From:       &from,
		To:         &to,
	})
	if err != nil {
		t.Fatalf("ListMeetings failed: %v", err)
	}
	if len(meetings) != 2 {
		t.Fatalf("expected 2 meetings in March, got %d", len(meetings))
	}
	if !meetings[0].Date.Before(meetings[1].Date) {
		t.Fatalf("expected meetings ordered by date, got %+v", meetings)
	}
}

func TestStore_EventRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()
	seedDivision(t, store, "division-1")
	seedCommitteeType(t, store, "committee-1", "division-1")

	route := domain.Route{
		ID: "route-1", DivisionID: "division-1", Name: "Industrial R&D",
		Active: true, TotalSLADays: 45, StageADays: 10, StageBDays: 15, StageCDays: 10, StageDDays: 10,
		CreatedAt: testCreatedAt,
	}
	if err := store.CreateRoute(ctx, route); err != nil {
		t.Fatalf("CreateRoute failed: %v", err)
	}
	meeting := domain.Meeting{
		ID: "meeting-1", CommitteeTypeID: "committee-1", DivisionID: "division-1",
		Date: calendar.Date(2026, time.June, 18), Status: domain.MeetingPlanned,
		CreatedAt: testCreatedAt, UpdatedAt: testCreatedAt,
	}
	if err := store.CreateMeeting(ctx, meeting); err != nil {
		t.Fatalf("CreateMeeting failed: %v", err)
	}

	call := calendar.Date(2026, time.April, 30)
	response := calendar.Date(2026, time.July, 2)
	event := domain.Event{
		ID:               "event-1",
		MeetingID:        "meeting-1",
		RouteID:          "route-1",
		Name:             "Spring call",
		ExpectedRequests: 12,
		CallDeadline:     &call,
		ResponseDeadline: &response,
		CreatedAt:        testCreatedAt,
		UpdatedAt:        testCreatedAt,
	}
	if err := store.CreateEvent(ctx, event); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	got, err := store.GetEvent(ctx, "event-1")
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if got.CallDeadline == nil || !got.CallDeadline.Equal(call) {
		t.Fatalf("expected call deadline %s, got %+v", call.Format(time.DateOnly), got.CallDeadline)
	}
	if got.IntakeDeadline != nil {
		t.Fatalf("expected nil intake deadline, got %v", got.IntakeDeadline)
	}

	events, err := store.ListEventsForMeeting(ctx, "meeting-1")
	if err != nil {
		t.Fatalf("ListEventsForMeeting failed: %v", err)
	}
	if len(events) != 1 || events[0].ExpectedRequests != 12 {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestStore_SettingsDefaultsAndSave(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	// A fresh database serves the stock defaults.
	settings, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.DefaultSLADays != 45 || len(settings.WorkWeekdays) != 5 {
		t.Fatalf("unexpected default settings: %+v", settings)
	}

	settings.Limits.MaxMeetingsPerDay = 3
	settings.WorkWeekdays = []time.Weekday{time.Monday, time.Tuesday}
	settings.WeekStart = time.Monday
	if err := store.SaveSettings(ctx, settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	reloaded, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings after save failed: %v", err)
	}
	if reloaded.Limits.MaxMeetingsPerDay != 3 || reloaded.WeekStart != time.Monday {
		t.Fatalf("unexpected reloaded settings: %+v", reloaded)
	}
	if len(reloaded.WorkWeekdays) != 2 || reloaded.WorkWeekdays[0] != time.Monday {
		t.Fatalf("unexpected work weekdays: %v", reloaded.WorkWeekdays)
	}
}

func TestStore_LoadSnapshot(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()
	seedDivision(t, store, "division-1")
	seedCommitteeType(t, store, "committee-1", "division-1")

	exceptions := []domain.ExceptionDate{
		{ID: "exc-1", Date: calendar.Date(2026, time.March, 3), Description: "Purim", Kind: "holiday", CreatedAt: testCreatedAt},
		{ID: "exc-2", Date: calendar.Date(2026, time.September, 12), Description: "Autumn closure", Kind: "closure", CreatedAt: testCreatedAt},
	}
	for _, exception := range exceptions {
		if err := store.CreateExceptionDate(ctx, exception); err != nil {
			t.Fatalf("CreateExceptionDate failed: %v", err)
		}
	}

	inWindow := domain.Meeting{
		ID: "meeting-in", CommitteeTypeID: "committee-1", DivisionID: "division-1",
		Date: calendar.Date(2026, time.March, 10), Status: domain.MeetingPlanned,
		CreatedAt: testCreatedAt, UpdatedAt: testCreatedAt,
	}
	outOfWindow := domain.Meeting{
		ID: "meeting-out", CommitteeTypeID: "committee-1", DivisionID: "division-1",
		Date: calendar.Date(2026, time.September, 15), Status: domain.MeetingPlanned,
		CreatedAt: testCreatedAt, UpdatedAt: testCreatedAt,
	}
	for _, meeting := range []domain.Meeting{inWindow, outOfWindow} {
		if err := store.CreateMeeting(ctx, meeting); err != nil {
			t.Fatalf("CreateMeeting failed: %v", err)
		}
	}

	route := domain.Route{
		ID: "route-1", DivisionID: "division-1", Name: "Industrial R&D", Active: true,
		TotalSLADays: 45, StageADays: 10, StageBDays: 15, StageCDays: 10, StageDDays: 10,
		CreatedAt: testCreatedAt,
	}
	if err := store.CreateRoute(ctx, route); err != nil {
		t.Fatalf("CreateRoute failed: %v", err)
	}
	for _, event := range []domain.Event{
		{ID: "event-in", MeetingID: "meeting-in", RouteID: "route-1", Name: "In", ExpectedRequests: 5,
			CreatedAt: testCreatedAt, UpdatedAt: testCreatedAt},
		{ID: "event-out", MeetingID: "meeting-out", RouteID: "route-1", Name: "Out", ExpectedRequests: 5,
			CreatedAt: testCreatedAt, UpdatedAt: testCreatedAt},
	} {
		if err := store.CreateEvent(ctx, event); err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
	}

	snapshot, err := store.LoadSnapshot(ctx, calendar.Date(2026, time.March, 1), calendar.Date(2026, time.April, 30))
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if len(snapshot.ExceptionDates) != 1 || snapshot.ExceptionDates[0].ID != "exc-1" {
		t.Fatalf("unexpected exception dates: %+v", snapshot.ExceptionDates)
	}
	if len(snapshot.Meetings) != 1 || snapshot.Meetings[0].ID != "meeting-in" {
		t.Fatalf("unexpected meetings: %+v", snapshot.Meetings)
	}
	if len(snapshot.Events) != 1 || snapshot.Events[0].ID != "event-in" {
		t.Fatalf("unexpected events: %+v", snapshot.Events)
	}
	if len(snapshot.Divisions) != 1 || len(snapshot.CommitteeTypes) != 1 || len(snapshot.Routes) != 1 {
		t.Fatalf("expected reference data loaded in full: %+v", snapshot)
	}
	if snapshot.Settings.DefaultSLADays != 45 {
		t.Fatalf("expected default settings in snapshot, got %+v", snapshot.Settings)
	}
}
