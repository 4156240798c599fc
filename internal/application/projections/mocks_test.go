package projections

import (
	"context"
	"sort"

	"parish/internal/adapters/storage/attendance"
	"parish/internal/domain/account"
	"parish/internal/domain/duty"
	"parish/internal/domain/event"
	"parish/internal/domain/registration"
)

var adminSession = account.Session{AccountID: "admin-001", Role: account.RoleAdmin}
var volunteerSession = account.Session{AccountID: "vol-001", Role: account.RoleVolunteer}

// mockEventStore serves the calendar projection from a fixed slice.
type mockEventStore struct {
	events []event.Event
}

func (m *mockEventStore) ListByDateRange(_ context.Context, startDate, endDate string) ([]event.Event, error) {
	var out []event.Event
	for _, e := range m.events {
		if e.Date >= startDate && e.Date <= endDate {
			out = append(out, e)
		}
	}
	return out, nil
}

// mockDutyStore serves the duty calendar projection.
type mockDutyStore struct {
	duties []duty.Duty
}

func (m *mockDutyStore) List(_ context.Context) ([]duty.Duty, error) {
	return m.duties, nil
}

func (m *mockDutyStore) ListByAssignee(_ context.Context, accountID string) ([]duty.Duty, error) {
	var out []duty.Duty
	for _, d := range m.duties {
		if d.IsAssignedTo(accountID) {
			out = append(out, d)
		}
	}
	return out, nil
}

// mockLedgerStore mirrors the real attendance store's read semantics: newest
// first ordering, sorted distinct facets.
type mockLedgerStore struct {
	rows []registration.Registration
}

func (m *mockLedgerStore) matching(filter attendance.ListFilter) []registration.Registration {
	var out []registration.Registration
	for _, r := range m.rows {
		if r.ScheduleDate != filter.Date {
			continue
		}
		if filter.EventName != "" && r.EventName != filter.EventName {
			continue
		}
		if filter.Time != "" && r.PreferredTime != filter.Time {
			continue
		}
		if filter.Attended != nil && r.HasAttended != *filter.Attended {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *mockLedgerStore) List(_ context.Context, filter attendance.ListFilter) ([]registration.Registration, error) {
	out := m.matching(filter)
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *mockLedgerStore) Count(_ context.Context, filter attendance.ListFilter) (int, error) {
	return len(m.matching(filter)), nil
}

func (m *mockLedgerStore) HasDate(_ context.Context, date string) (bool, error) {
	for _, r := range m.rows {
		if r.ScheduleDate == date {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLedgerStore) DistinctEvents(_ context.Context, date string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, r := range m.rows {
		if r.ScheduleDate == date && !seen[r.EventName] {
			seen[r.EventName] = true
			out = append(out, r.EventName)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *mockLedgerStore) DistinctTimes(_ context.Context, date, eventName string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, r := range m.rows {
		if r.ScheduleDate != date {
			continue
		}
		if eventName != "" && r.EventName != eventName {
			continue
		}
		if !seen[r.PreferredTime] {
			seen[r.PreferredTime] = true
			out = append(out, r.PreferredTime)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *mockLedgerStore) ListByCode(_ context.Context, code int) ([]registration.Registration, error) {
	var out []registration.Registration
	for _, r := range m.rows {
		if r.Code == code {
			out = append(out, r)
		}
	}
	return out, nil
}
