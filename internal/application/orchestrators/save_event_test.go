package orchestrators

import (
	"context"
	"testing"
	"time"

	"parish/internal/domain/event"
	"parish/internal/domain/faults"
)

// TestExecuteSaveEvent_Create tests creating a new event.
func TestExecuteSaveEvent_Create(t *testing.T) {
	store := newMockEventStore()
	got, err := ExecuteSaveEvent(context.Background(), SaveEventInput{
		Session: adminSession,
		Event: event.Event{
			Name:     "Christmas Vigil",
			Date:     "2024-12-24",
			Times:    []string{"21:00", "23:30"},
			Category: "liturgy",
		},
	}, SaveEventDeps{EventStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID == "" {
		t.Error("created event has no ID")
	}
	if got.CreatedBy != "admin-001" {
		t.Errorf("CreatedBy = %q", got.CreatedBy)
	}
	if got.Visibility != event.VisibilityPublic {
		t.Errorf("default visibility = %q, want public", got.Visibility)
	}
	if _, ok := store.events[got.ID]; !ok {
		t.Error("event not persisted")
	}
}

// TestExecuteSaveEvent_Update tests that updates keep creator and creation time.
func TestExecuteSaveEvent_Update(t *testing.T) {
	orig := sundayMass()
	orig.CreatedBy = "admin-000"
	orig.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := newMockEventStore(orig)

	updated := orig
	updated.Name = "Sunday Mass (St Mary's)"
	updated.Times = []string{"09:00"}
	got, err := ExecuteSaveEvent(context.Background(), SaveEventInput{
		Session: adminSession, Event: updated,
	}, SaveEventDeps{EventStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CreatedBy != "admin-000" || !got.CreatedAt.Equal(orig.CreatedAt) {
		t.Errorf("update changed provenance: %+v", got)
	}
	if store.events[orig.ID].Name != "Sunday Mass (St Mary's)" {
		t.Error("update not persisted")
	}
}

// TestExecuteSaveEvent_Rejections tests the role gate and validation.
func TestExecuteSaveEvent_Rejections(t *testing.T) {
	store := newMockEventStore()

	_, err := ExecuteSaveEvent(context.Background(), SaveEventInput{
		Session: volunteerSession, Event: sundayMass(),
	}, SaveEventDeps{EventStore: store})
	if !faults.IsValidation(err) {
		t.Fatalf("expected validation error for non-admin, got %v", err)
	}

	bad := sundayMass()
	bad.ID = ""
	bad.Times = nil
	_, err = ExecuteSaveEvent(context.Background(), SaveEventInput{
		Session: adminSession, Event: bad,
	}, SaveEventDeps{EventStore: store})
	if !faults.IsValidation(err) {
		t.Fatalf("expected validation error for no time slots, got %v", err)
	}
	if len(store.events) != 0 {
		t.Error("rejected event still persisted")
	}
}

// TestExecuteDeleteEvent tests deletion and its gates.
func TestExecuteDeleteEvent(t *testing.T) {
	store := newMockEventStore(sundayMass())

	err := ExecuteDeleteEvent(context.Background(), DeleteEventInput{
		Session: volunteerSession, EventID: "ev-mass",
	}, SaveEventDeps{EventStore: store})
	if !faults.IsValidation(err) {
		t.Fatalf("expected validation error for non-admin, got %v", err)
	}

	err = ExecuteDeleteEvent(context.Background(), DeleteEventInput{
		Session: adminSession, EventID: "ev-ghost",
	}, SaveEventDeps{EventStore: store})
	if !faults.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}

	if err := ExecuteDeleteEvent(context.Background(), DeleteEventInput{
		Session: adminSession, EventID: "ev-mass",
	}, SaveEventDeps{EventStore: store}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.events) != 0 {
		t.Error("event not deleted")
	}
}
