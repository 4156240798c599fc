package orchestrators

import (
	"context"
	"strings"
	"testing"

	"parish/internal/domain/faults"
	"parish/internal/domain/registration"
)

// TestExecuteSubmitRegistration_Valid tests the happy path: one row per
// attendee, one shared code, nothing marked attended.
func TestExecuteSubmitRegistration_Valid(t *testing.T) {
	events := newMockEventStore(sundayMass())
	attendance := newMockAttendanceStore()

	res, err := ExecuteSubmitRegistration(context.Background(), SubmitRegistrationInput{
		Batch: validBatch(
			registration.Attendee{FirstName: "Tom", LastName: "Doe"},
			registration.Attendee{FirstName: "Amy", LastName: "Doe"},
			registration.Attendee{FirstName: "Ben", LastName: "Doe"},
		),
	}, SubmitRegistrationDeps{EventStore: events, AttendanceStore: attendance})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Code < registration.CodeMin || res.Code > registration.CodeMax {
		t.Errorf("code %d outside six-digit range", res.Code)
	}
	if len(res.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(res.Rows))
	}
	for i, r := range res.Rows {
		if r.Code != res.Code {
			t.Errorf("row %d has code %d, want %d", i, r.Code, res.Code)
		}
		if r.HasAttended {
			t.Errorf("row %d marked attended at submission", i)
		}
		if r.EventName != "Sunday Mass" {
			t.Errorf("row %d event name = %q", i, r.EventName)
		}
	}
	if res.Rows[0].AttendeeFirstName != "Tom" || res.Rows[2].AttendeeFirstName != "Ben" {
		t.Errorf("attendee order not preserved: %+v", res.Rows)
	}
	if len(attendance.rows) != 3 {
		t.Errorf("expected 3 persisted rows, got %d", len(attendance.rows))
	}
}

// TestExecuteSubmitRegistration_InvalidBatch tests that validation failures
// write nothing.
func TestExecuteSubmitRegistration_InvalidBatch(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*registration.Batch)
	}{
		{"no attendees", func(b *registration.Batch) { b.Attendees = nil }},
		{"blank guardian", func(b *registration.Batch) { b.Guardian.FirstName = "  " }},
		{"bad telephone", func(b *registration.Batch) { b.Guardian.Telephone = "call me" }},
		{"bad kind", func(b *registration.Batch) { b.Kind = "group" }},
		{"no time", func(b *registration.Batch) { b.Time = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			attendance := newMockAttendanceStore()
			b := validBatch()
			tc.mutate(&b)
			_, err := ExecuteSubmitRegistration(context.Background(), SubmitRegistrationInput{Batch: b},
				SubmitRegistrationDeps{EventStore: newMockEventStore(sundayMass()), AttendanceStore: attendance})
			if !faults.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(attendance.rows) != 0 {
				t.Errorf("rejected batch still wrote %d rows", len(attendance.rows))
			}
		})
	}
}

// TestExecuteSubmitRegistration_SlotMismatch tests date and time verification
// against the stored event.
func TestExecuteSubmitRegistration_SlotMismatch(t *testing.T) {
	events := newMockEventStore(sundayMass())

	b := validBatch()
	b.Time = "13:00"
	_, err := ExecuteSubmitRegistration(context.Background(), SubmitRegistrationInput{Batch: b},
		SubmitRegistrationDeps{EventStore: events, AttendanceStore: newMockAttendanceStore()})
	if !faults.IsValidation(err) || !strings.Contains(err.Error(), "time") {
		t.Fatalf("expected time validation error, got %v", err)
	}

	b = validBatch()
	b.Date = "2024-06-09"
	_, err = ExecuteSubmitRegistration(context.Background(), SubmitRegistrationInput{Batch: b},
		SubmitRegistrationDeps{EventStore: events, AttendanceStore: newMockAttendanceStore()})
	if !faults.IsValidation(err) || !strings.Contains(err.Error(), "date") {
		t.Fatalf("expected date validation error, got %v", err)
	}

	b = validBatch()
	b.EventID = "ev-ghost"
	_, err = ExecuteSubmitRegistration(context.Background(), SubmitRegistrationInput{Batch: b},
		SubmitRegistrationDeps{EventStore: events, AttendanceStore: newMockAttendanceStore()})
	if !faults.IsValidation(err) {
		t.Fatalf("expected validation error for missing event, got %v", err)
	}
}

// TestExecuteSubmitRegistration_CodeCollision tests that a code already in
// use is re-drawn rather than reused.
func TestExecuteSubmitRegistration_CodeCollision(t *testing.T) {
	// Pre-fill every row lookup except a single free code by seeding many
	// batches is impractical; instead verify two submissions get distinct codes.
	events := newMockEventStore(sundayMass())
	attendance := newMockAttendanceStore()

	first, err := ExecuteSubmitRegistration(context.Background(), SubmitRegistrationInput{Batch: validBatch()},
		SubmitRegistrationDeps{EventStore: events, AttendanceStore: attendance})
	if err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	second, err := ExecuteSubmitRegistration(context.Background(), SubmitRegistrationInput{Batch: validBatch()},
		SubmitRegistrationDeps{EventStore: events, AttendanceStore: attendance})
	if err != nil {
		t.Fatalf("second submission failed: %v", err)
	}
	if first.Code == second.Code {
		t.Errorf("two batches share code %d", first.Code)
	}
}

// TestExecuteSubmitRegistration_ConfirmationEmail tests the optional
// confirmation send, including that a provider failure does not fail the
// already-committed registration.
func TestExecuteSubmitRegistration_ConfirmationEmail(t *testing.T) {
	events := newMockEventStore(sundayMass())
	sender := &mockSender{}

	_, err := ExecuteSubmitRegistration(context.Background(), SubmitRegistrationInput{
		Batch:       validBatch(),
		NotifyEmail: "jane@example.com",
	}, SubmitRegistrationDeps{EventStore: events, AttendanceStore: newMockAttendanceStore(), EmailSender: sender})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 confirmation email, got %d", len(sender.sent))
	}
	if sender.sent[0].To[0] != "jane@example.com" {
		t.Errorf("confirmation sent to %v", sender.sent[0].To)
	}
	if !strings.Contains(sender.sent[0].HTML, "Sunday Mass") {
		t.Errorf("confirmation body missing event name: %q", sender.sent[0].HTML)
	}

	failing := &mockSender{fail: true}
	_, err = ExecuteSubmitRegistration(context.Background(), SubmitRegistrationInput{
		Batch:       validBatch(),
		NotifyEmail: "jane@example.com",
	}, SubmitRegistrationDeps{EventStore: events, AttendanceStore: newMockAttendanceStore(), EmailSender: failing})
	if err != nil {
		t.Fatalf("email failure should not fail the registration: %v", err)
	}
}
