package orchestrators

import (
	"context"
	"testing"
	"time"

	"parish/internal/domain/faults"
	"parish/internal/domain/registration"
)

func existingBatchRows(code int, attendees ...string) []registration.Registration {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	rows := make([]registration.Registration, len(attendees))
	for i, name := range attendees {
		rows[i] = registration.Registration{
			ID:                "row-" + name,
			Code:              code,
			Kind:              registration.KindFamily,
			MainFirstName:     "Jane",
			MainLastName:      "Doe",
			Telephone:         "07123456789",
			AttendeeFirstName: name,
			AttendeeLastName:  "Doe",
			PreferredTime:     "11:00",
			ScheduleDate:      "2024-06-02",
			EventID:           "ev-mass",
			EventName:         "Sunday Mass",
			CreatedAt:         now,
		}
	}
	return rows
}

// TestExecuteUpdateRegistration_SameSize tests in-place edits: IDs, creation
// times and attended flags survive, names and slot change.
func TestExecuteUpdateRegistration_SameSize(t *testing.T) {
	rows := existingBatchRows(123456, "Tom", "Amy")
	rows[1].HasAttended = true
	attendance := newMockAttendanceStore(rows...)

	b := validBatch(
		registration.Attendee{FirstName: "Thomas", LastName: "Doe"},
		registration.Attendee{FirstName: "Amelia", LastName: "Doe"},
	)
	b.Time = "09:00"
	got, err := ExecuteUpdateRegistration(context.Background(), UpdateRegistrationInput{Code: 123456, Batch: b},
		UpdateRegistrationDeps{EventStore: newMockEventStore(sundayMass()), AttendanceStore: attendance})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].ID != "row-Tom" || got[1].ID != "row-Amy" {
		t.Errorf("row IDs changed: %+v", got)
	}
	if got[0].AttendeeFirstName != "Thomas" || got[1].AttendeeFirstName != "Amelia" {
		t.Errorf("names not updated: %+v", got)
	}
	if got[0].PreferredTime != "09:00" || got[1].PreferredTime != "09:00" {
		t.Errorf("slot not updated: %+v", got)
	}
	if got[0].HasAttended || !got[1].HasAttended {
		t.Errorf("attended flags not preserved: %+v", got)
	}
}

// TestExecuteUpdateRegistration_Grow tests that extra attendees become fresh
// rows under the same code.
func TestExecuteUpdateRegistration_Grow(t *testing.T) {
	attendance := newMockAttendanceStore(existingBatchRows(123456, "Tom")...)

	b := validBatch(
		registration.Attendee{FirstName: "Tom", LastName: "Doe"},
		registration.Attendee{FirstName: "Amy", LastName: "Doe"},
	)
	got, err := ExecuteUpdateRegistration(context.Background(), UpdateRegistrationInput{Code: 123456, Batch: b},
		UpdateRegistrationDeps{EventStore: newMockEventStore(sundayMass()), AttendanceStore: attendance})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].ID != "row-Tom" {
		t.Errorf("existing row lost its ID: %+v", got[0])
	}
	if got[1].ID == "" || got[1].ID == "row-Tom" {
		t.Errorf("added row has no fresh ID: %+v", got[1])
	}
	if got[1].Code != 123456 {
		t.Errorf("added row code = %d, want 123456", got[1].Code)
	}
	if got[1].HasAttended {
		t.Error("added row marked attended")
	}
}

// TestExecuteUpdateRegistration_Shrink tests that surplus rows are removed
// from the tail.
func TestExecuteUpdateRegistration_Shrink(t *testing.T) {
	attendance := newMockAttendanceStore(existingBatchRows(123456, "Tom", "Amy", "Ben")...)

	got, err := ExecuteUpdateRegistration(context.Background(), UpdateRegistrationInput{
		Code:  123456,
		Batch: validBatch(registration.Attendee{FirstName: "Tom", LastName: "Doe"}),
	}, UpdateRegistrationDeps{EventStore: newMockEventStore(sundayMass()), AttendanceStore: attendance})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	left, _ := attendance.ListByCode(context.Background(), 123456)
	if len(left) != 1 || left[0].ID != "row-Tom" {
		t.Errorf("surplus rows not removed: %+v", left)
	}
}

// TestExecuteUpdateRegistration_UnknownCode tests the not-found path.
func TestExecuteUpdateRegistration_UnknownCode(t *testing.T) {
	_, err := ExecuteUpdateRegistration(context.Background(), UpdateRegistrationInput{
		Code:  999999,
		Batch: validBatch(),
	}, UpdateRegistrationDeps{EventStore: newMockEventStore(sundayMass()), AttendanceStore: newMockAttendanceStore()})
	if !faults.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

// TestExecuteUpdateRegistration_InvalidBatch tests that a bad resubmission
// leaves the existing rows untouched.
func TestExecuteUpdateRegistration_InvalidBatch(t *testing.T) {
	attendance := newMockAttendanceStore(existingBatchRows(123456, "Tom")...)

	b := validBatch()
	b.Guardian.Telephone = "not a number"
	_, err := ExecuteUpdateRegistration(context.Background(), UpdateRegistrationInput{Code: 123456, Batch: b},
		UpdateRegistrationDeps{EventStore: newMockEventStore(sundayMass()), AttendanceStore: attendance})
	if !faults.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	left, _ := attendance.ListByCode(context.Background(), 123456)
	if len(left) != 1 || left[0].AttendeeFirstName != "Tom" {
		t.Errorf("rows changed despite rejected batch: %+v", left)
	}
}
