package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	emailAdapter "parish/internal/adapters/email"
	"parish/internal/domain/event"
	"parish/internal/domain/registration"
)

// maxCodeAttempts bounds the collision retry loop for attendance codes.
const maxCodeAttempts = 5

// SubmitEventStore defines the event store interface needed by SubmitRegistration.
type SubmitEventStore interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
}

// SubmitAttendanceStore defines the attendance store interface needed by SubmitRegistration.
type SubmitAttendanceStore interface {
	InsertBatch(ctx context.Context, rows []registration.Registration) error
	ListByCode(ctx context.Context, code int) ([]registration.Registration, error)
}

// SubmitRegistrationInput carries the registration form payload.
type SubmitRegistrationInput struct {
	Batch registration.Batch
	// NotifyEmail, when set, receives a confirmation carrying the code.
	NotifyEmail string
}

// SubmitRegistrationDeps holds dependencies for SubmitRegistration.
type SubmitRegistrationDeps struct {
	EventStore      SubmitEventStore
	AttendanceStore SubmitAttendanceStore
	EmailSender     emailAdapter.Sender // optional: nil skips confirmation email
}

// SubmitRegistrationResult holds the output of the registration flow.
type SubmitRegistrationResult struct {
	Code int
	Rows []registration.Registration
}

// ExecuteSubmitRegistration validates a batch, allocates a fresh attendance
// code, and inserts one row per attendee. Validation happens entirely before
// the insert, so a rejected batch writes nothing. The generated code is
// checked against existing batches and re-drawn on collision.
// PRE: none
// POST: exactly len(Batch.Attendees) rows share one new code, hasAttended=false
func ExecuteSubmitRegistration(ctx context.Context, input SubmitRegistrationInput, deps SubmitRegistrationDeps) (SubmitRegistrationResult, error) {
	b := input.Batch
	if err := b.Validate(); err != nil {
		return SubmitRegistrationResult{}, err
	}

	ev, err := verifyEventSlot(ctx, deps.EventStore, b)
	if err != nil {
		return SubmitRegistrationResult{}, err
	}

	code, err := allocateCode(ctx, deps.AttendanceStore)
	if err != nil {
		return SubmitRegistrationResult{}, err
	}

	rows := b.Rows(code, ev.Name, func() string { return uuid.New().String() }, time.Now())
	if err := deps.AttendanceStore.InsertBatch(ctx, rows); err != nil {
		return SubmitRegistrationResult{}, err
	}

	slog.Info("registration_submitted", "code", code, "kind", b.Kind,
		"event_id", b.EventID, "attendees", len(rows))

	if deps.EmailSender != nil && input.NotifyEmail != "" {
		sendConfirmation(ctx, deps.EmailSender, input.NotifyEmail, ev.Name, b.Date, b.Time, code)
	}

	return SubmitRegistrationResult{Code: code, Rows: rows}, nil
}

// allocateCode draws codes until one is unused. Generation itself does not
// guarantee uniqueness; this is where uniqueness is enforced.
func allocateCode(ctx context.Context, store SubmitAttendanceStore) (int, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := registration.GenerateCode()
		if err != nil {
			return 0, err
		}
		existing, err := store.ListByCode(ctx, code)
		if err != nil {
			return 0, err
		}
		if len(existing) == 0 {
			return code, nil
		}
		slog.Warn("attendance_code_collision", "code", code, "attempt", attempt+1)
	}
	return 0, errors.New("could not allocate an unused attendance code")
}

// sendConfirmation emails the attendance code. Delivery is best effort: a
// failure is logged and never fails the registration that already committed.
func sendConfirmation(ctx context.Context, sender emailAdapter.Sender, to, eventName, date, slot string, code int) {
	body := fmt.Sprintf(
		"<p>Your registration for <strong>%s</strong> on %s at %s is confirmed.</p>"+
			"<p>Your attendance code is <strong>%06d</strong>. Keep it to review or change your registration.</p>",
		eventName, date, slot, code)
	_, err := sender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{to},
		Subject: fmt.Sprintf("Registration confirmed: %s", eventName),
		HTML:    body,
	})
	if err != nil {
		slog.Error("confirmation_email_failed", "error", err, "to", to)
	}
}
