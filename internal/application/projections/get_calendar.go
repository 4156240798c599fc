package projections

import (
	"context"
	"log/slog"
	"time"

	"parish/internal/domain/account"
	"parish/internal/domain/event"
	"parish/internal/domain/faults"
	"parish/internal/domain/occurrence"
)

// CalendarEventStore defines the event store interface needed by the
// calendar projection.
type CalendarEventStore interface {
	ListByDateRange(ctx context.Context, startDate, endDate string) ([]event.Event, error)
}

// CalendarInput selects a date window in the parish's local calendar.
type CalendarInput struct {
	Session account.Session
	From    string // YYYY-MM-DD inclusive
	To      string // YYYY-MM-DD inclusive
}

// CalendarDeps holds dependencies for the calendar projection.
type CalendarDeps struct {
	EventStore CalendarEventStore
	Location   *time.Location
	Now        func() time.Time // nil means time.Now
}

// CalendarResult carries the projected occurrences. Skipped counts slot or
// date entries that failed to parse; a non-zero value means the calendar is
// incomplete and the caller should say so rather than render silence.
type CalendarResult struct {
	Occurrences []occurrence.Occurrence
	Skipped     int
}

// QueryCalendar projects catalog events in [From, To] into concrete
// occurrences. Private events appear only for authenticated sessions.
// PRE: From and To are YYYY-MM-DD
// POST: every returned occurrence derives from a visible event in range
func QueryCalendar(ctx context.Context, input CalendarInput, deps CalendarDeps) (CalendarResult, error) {
	if _, err := time.Parse("2006-01-02", input.From); err != nil {
		return CalendarResult{}, faults.Validation("from date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("2006-01-02", input.To); err != nil {
		return CalendarResult{}, faults.Validation("to date must be YYYY-MM-DD")
	}
	if input.To < input.From {
		return CalendarResult{}, faults.Validation("date range is reversed")
	}

	events, err := deps.EventStore.ListByDateRange(ctx, input.From, input.To)
	if err != nil {
		return CalendarResult{}, err
	}
	if !input.Session.IsAuthenticated() {
		visible := events[:0]
		for _, e := range events {
			if e.IsPublic() {
				visible = append(visible, e)
			}
		}
		events = visible
	}

	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}
	occs, skipped := occurrence.FromEvents(events, deps.Location, now)
	if skipped > 0 {
		slog.Warn("calendar_slots_skipped", "skipped", skipped,
			"from", input.From, "to", input.To)
	}
	return CalendarResult{Occurrences: occs, Skipped: skipped}, nil
}
