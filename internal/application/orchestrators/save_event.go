package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"parish/internal/domain/account"
	"parish/internal/domain/event"
	"parish/internal/domain/faults"
)

// SaveEventStore defines the event store interface needed by SaveEvent.
type SaveEventStore interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
	Save(ctx context.Context, value event.Event) error
	Delete(ctx context.Context, id string) error
}

// SaveEventInput carries the event form payload. An empty ID creates a new
// event; a set ID updates the existing one.
type SaveEventInput struct {
	Session account.Session
	Event   event.Event
}

// SaveEventDeps holds dependencies for SaveEvent.
type SaveEventDeps struct {
	EventStore SaveEventStore
}

// ExecuteSaveEvent creates or updates a parish event. Creation stamps the
// acting admin and the current time; an update keeps the original creator
// and creation time.
// PRE: Session belongs to an admin
// POST: event is persisted and valid
func ExecuteSaveEvent(ctx context.Context, input SaveEventInput, deps SaveEventDeps) (event.Event, error) {
	if !input.Session.IsAdmin() {
		return event.Event{}, faults.Validation("only administrators can manage events")
	}

	ev := input.Event
	creating := ev.ID == ""
	if creating {
		ev.ID = uuid.New().String()
		ev.CreatedBy = input.Session.AccountID
		ev.CreatedAt = time.Now()
	} else {
		prev, err := deps.EventStore.GetByID(ctx, ev.ID)
		if err != nil {
			return event.Event{}, err
		}
		ev.CreatedBy = prev.CreatedBy
		ev.CreatedAt = prev.CreatedAt
	}
	if ev.Visibility == "" {
		ev.Visibility = event.VisibilityPublic
	}

	if err := ev.Validate(); err != nil {
		return event.Event{}, faults.Validation(err.Error())
	}
	if err := deps.EventStore.Save(ctx, ev); err != nil {
		return event.Event{}, err
	}

	slog.Info("event_saved", "event_id", ev.ID, "name", ev.Name,
		"date", ev.Date, "created", creating, "by", input.Session.AccountID)
	return ev, nil
}

// DeleteEventInput identifies the event to remove.
type DeleteEventInput struct {
	Session account.Session
	EventID string
}

// ExecuteDeleteEvent removes an event. Attendance rows registered against it
// survive; they keep the event name as recorded at registration time.
// PRE: Session belongs to an admin
// POST: event no longer exists
func ExecuteDeleteEvent(ctx context.Context, input DeleteEventInput, deps SaveEventDeps) error {
	if !input.Session.IsAdmin() {
		return faults.Validation("only administrators can manage events")
	}
	if _, err := deps.EventStore.GetByID(ctx, input.EventID); err != nil {
		return err
	}
	if err := deps.EventStore.Delete(ctx, input.EventID); err != nil {
		return err
	}
	slog.Info("event_deleted", "event_id", input.EventID, "by", input.Session.AccountID)
	return nil
}
