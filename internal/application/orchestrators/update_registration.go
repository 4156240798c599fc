package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"parish/internal/domain/event"
	"parish/internal/domain/faults"
	"parish/internal/domain/registration"
)

// UpdateAttendanceStore defines the attendance store interface needed by UpdateRegistration.
type UpdateAttendanceStore interface {
	ListByCode(ctx context.Context, code int) ([]registration.Registration, error)
	Update(ctx context.Context, value registration.Registration) error
	InsertBatch(ctx context.Context, rows []registration.Registration) error
	Delete(ctx context.Context, id string) error
}

// UpdateRegistrationInput carries the edit-by-code payload.
type UpdateRegistrationInput struct {
	Code  int
	Batch registration.Batch
}

// UpdateRegistrationDeps holds dependencies for UpdateRegistration.
type UpdateRegistrationDeps struct {
	EventStore      SubmitEventStore
	AttendanceStore UpdateAttendanceStore
}

// ExecuteUpdateRegistration replaces the batch behind an attendance code with
// a resubmitted form. Existing rows are matched to new attendees by position:
// row i keeps its ID, code, creation time and attended flag while taking the
// new names and slot. Extra attendees become fresh rows under the same code;
// surplus rows are removed from the tail.
//
// TODO: match edited attendees by row ID instead of position once the edit
// form carries row IDs; positional matching silently reassigns attended
// flags when the attendee order changes.
// PRE: none
// POST: rows under Code mirror Batch.Attendees in order
func ExecuteUpdateRegistration(ctx context.Context, input UpdateRegistrationInput, deps UpdateRegistrationDeps) ([]registration.Registration, error) {
	existing, err := deps.AttendanceStore.ListByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, faults.NotFound("no registration found for this code")
	}

	b := input.Batch
	if err := b.Validate(); err != nil {
		return nil, err
	}
	ev, err := verifyEventSlot(ctx, deps.EventStore, b)
	if err != nil {
		return nil, err
	}

	var result []registration.Registration
	shared := min(len(existing), len(b.Attendees))
	for i := 0; i < shared; i++ {
		row := existing[i]
		row.Kind = b.Kind
		row.MainFirstName = b.Guardian.FirstName
		row.MainLastName = b.Guardian.LastName
		row.Telephone = b.Guardian.Telephone
		row.AttendeeFirstName = b.Attendees[i].FirstName
		row.AttendeeLastName = b.Attendees[i].LastName
		row.PreferredTime = b.Time
		row.ScheduleDate = b.Date
		row.EventID = b.EventID
		row.EventName = ev.Name
		if err := deps.AttendanceStore.Update(ctx, row); err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	if len(b.Attendees) > shared {
		grown := b
		grown.Attendees = b.Attendees[shared:]
		added := grown.Rows(input.Code, ev.Name, func() string { return uuid.New().String() }, time.Now())
		if err := deps.AttendanceStore.InsertBatch(ctx, added); err != nil {
			return nil, err
		}
		result = append(result, added...)
	}

	for _, row := range existing[shared:] {
		if err := deps.AttendanceStore.Delete(ctx, row.ID); err != nil {
			return nil, err
		}
	}

	slog.Info("registration_updated", "code", input.Code,
		"rows_before", len(existing), "rows_after", len(result))
	return result, nil
}

// verifyEventSlot checks the chosen date and time against the stored event.
func verifyEventSlot(ctx context.Context, store SubmitEventStore, b registration.Batch) (event.Event, error) {
	ev, err := store.GetByID(ctx, b.EventID)
	if err != nil {
		if faults.IsNotFound(err) {
			return event.Event{}, faults.Validation("selected event no longer exists")
		}
		return event.Event{}, err
	}
	if ev.Date != b.Date {
		return event.Event{}, faults.Validation("selected date does not match the event")
	}
	if !ev.HasTime(b.Time) {
		return event.Event{}, faults.Validation("selected time is not offered for this event")
	}
	return ev, nil
}
