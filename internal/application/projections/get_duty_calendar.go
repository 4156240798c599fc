package projections

import (
	"context"
	"log/slog"
	"time"

	"parish/internal/domain/account"
	"parish/internal/domain/duty"
	"parish/internal/domain/faults"
	"parish/internal/domain/occurrence"
)

// DutyCalendarStore defines the duty store interface needed by the duty
// calendar projection.
type DutyCalendarStore interface {
	List(ctx context.Context) ([]duty.Duty, error)
	ListByAssignee(ctx context.Context, accountID string) ([]duty.Duty, error)
}

// DutyCalendarInput selects a month of duty occurrences.
type DutyCalendarInput struct {
	Session account.Session
	Month   string // YYYY-MM
}

// DutyCalendarDeps holds dependencies for the duty calendar projection.
type DutyCalendarDeps struct {
	DutyStore DutyCalendarStore
	Location  *time.Location
	Now       func() time.Time // nil means time.Now
}

// DutyCalendarResult carries the month's duty occurrences alongside the
// duties themselves so callers can show status and assignees.
type DutyCalendarResult struct {
	Duties      []duty.Duty
	Occurrences []occurrence.Occurrence
	Skipped     int
}

// QueryDutyCalendar projects weekday recurrence rules onto the named month.
// Admins see every duty; everyone else only duties assigned to them.
// PRE: Session is authenticated; Month is YYYY-MM
// POST: occurrences fall only on weekdays in each duty's recurrence set
func QueryDutyCalendar(ctx context.Context, input DutyCalendarInput, deps DutyCalendarDeps) (DutyCalendarResult, error) {
	if !input.Session.IsAuthenticated() {
		return DutyCalendarResult{}, faults.Validation("sign in to view duties")
	}
	anchor, err := time.ParseInLocation("2006-01", input.Month, deps.Location)
	if err != nil {
		return DutyCalendarResult{}, faults.Validation("month must be YYYY-MM")
	}

	var duties []duty.Duty
	if input.Session.IsAdmin() {
		duties, err = deps.DutyStore.List(ctx)
	} else {
		duties, err = deps.DutyStore.ListByAssignee(ctx, input.Session.AccountID)
	}
	if err != nil {
		return DutyCalendarResult{}, err
	}

	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}
	occs, skipped := occurrence.FromDuties(duties, anchor, deps.Location, now)
	if skipped > 0 {
		slog.Warn("duty_slots_skipped", "skipped", skipped, "month", input.Month)
	}
	return DutyCalendarResult{Duties: duties, Occurrences: occs, Skipped: skipped}, nil
}
