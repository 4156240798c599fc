package projections

import (
	"context"
	"time"

	"parish/internal/adapters/storage/attendance"
	"parish/internal/application/listutil"
	"parish/internal/domain/account"
	"parish/internal/domain/faults"
	"parish/internal/domain/registration"
)

// Attendance status filter values.
const (
	StatusAny      = ""
	StatusAttended = "attended"
	StatusPending  = "pending"
)

// LedgerStore defines the attendance store interface needed by the ledger
// projection.
type LedgerStore interface {
	List(ctx context.Context, filter attendance.ListFilter) ([]registration.Registration, error)
	Count(ctx context.Context, filter attendance.ListFilter) (int, error)
	HasDate(ctx context.Context, date string) (bool, error)
	DistinctEvents(ctx context.Context, date string) ([]string, error)
	DistinctTimes(ctx context.Context, date, eventName string) ([]string, error)
}

// ListAttendanceInput carries the ledger filters. Date is mandatory; the
// event, time and status facets narrow within it.
type ListAttendanceInput struct {
	Session   account.Session
	Date      string // YYYY-MM-DD, required
	EventName string
	Time      string
	Status    string // "", "attended" or "pending"
	Page      listutil.PageParams
}

// ListAttendanceDeps holds dependencies for the ledger projection.
type ListAttendanceDeps struct {
	AttendanceStore LedgerStore
}

// ListAttendanceResult carries one page of rows plus the facet values the
// filters may take. Facets come from status-unfiltered rows of the date so
// narrowing by status never makes filter options vanish.
type ListAttendanceResult struct {
	Rows            []registration.Registration
	PageInfo        listutil.PageInfo
	AvailableEvents []string
	AvailableTimes  []string
	// Effective selections after stale values are dropped.
	EventName string
	Time      string
}

// QueryListAttendance returns the admin check-in ledger for one date. A date
// with no registrations fails fast: empty rows and empty facets, never a
// fallback to other dates. A selected event or time that no longer exists on
// the date is dropped before the row query so the facets and the filter can
// not disagree.
// PRE: Session belongs to an admin
// POST: rows ordered newest first, paginated per input.Page
func QueryListAttendance(ctx context.Context, input ListAttendanceInput, deps ListAttendanceDeps) (ListAttendanceResult, error) {
	if !input.Session.IsAdmin() {
		return ListAttendanceResult{}, faults.Validation("only administrators can view the attendance ledger")
	}
	if input.Date == "" {
		return ListAttendanceResult{}, faults.Validation("a date is required")
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return ListAttendanceResult{}, faults.Validation("date must be YYYY-MM-DD")
	}

	has, err := deps.AttendanceStore.HasDate(ctx, input.Date)
	if err != nil {
		return ListAttendanceResult{}, err
	}
	if !has {
		return ListAttendanceResult{
			PageInfo: listutil.NewPageInfo(1, input.Page.PerPage, 0),
		}, nil
	}

	events, err := deps.AttendanceStore.DistinctEvents(ctx, input.Date)
	if err != nil {
		return ListAttendanceResult{}, err
	}
	eventName := input.EventName
	if eventName != "" && !contains(events, eventName) {
		eventName = ""
	}

	times, err := deps.AttendanceStore.DistinctTimes(ctx, input.Date, eventName)
	if err != nil {
		return ListAttendanceResult{}, err
	}
	slot := input.Time
	if slot != "" && !contains(times, slot) {
		slot = ""
	}

	filter := attendance.ListFilter{
		Date:      input.Date,
		EventName: eventName,
		Time:      slot,
	}
	switch input.Status {
	case StatusAttended:
		v := true
		filter.Attended = &v
	case StatusPending:
		v := false
		filter.Attended = &v
	}

	total, err := deps.AttendanceStore.Count(ctx, filter)
	if err != nil {
		return ListAttendanceResult{}, err
	}
	pageInfo := listutil.NewPageInfo(input.Page.Page, input.Page.PerPage, total)
	filter.Limit = pageInfo.PerPage
	filter.Offset = pageInfo.Offset()

	rows, err := deps.AttendanceStore.List(ctx, filter)
	if err != nil {
		return ListAttendanceResult{}, err
	}

	return ListAttendanceResult{
		Rows:            rows,
		PageInfo:        pageInfo,
		AvailableEvents: events,
		AvailableTimes:  times,
		EventName:       eventName,
		Time:            slot,
	}, nil
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
