package orchestrators

import (
	"context"
	"errors"

	emailAdapter "parish/internal/adapters/email"
	"parish/internal/domain/account"
	"parish/internal/domain/duty"
	"parish/internal/domain/event"
	"parish/internal/domain/faults"
	"parish/internal/domain/registration"
)

// mockEventStore implements the event store interfaces for testing.
type mockEventStore struct {
	events map[string]event.Event
}

func newMockEventStore(events ...event.Event) *mockEventStore {
	m := &mockEventStore{events: make(map[string]event.Event)}
	for _, ev := range events {
		m.events[ev.ID] = ev
	}
	return m
}

func (m *mockEventStore) GetByID(_ context.Context, id string) (event.Event, error) {
	ev, ok := m.events[id]
	if !ok {
		return event.Event{}, faults.NotFound("event not found")
	}
	return ev, nil
}

func (m *mockEventStore) Save(_ context.Context, ev event.Event) error {
	m.events[ev.ID] = ev
	return nil
}

func (m *mockEventStore) Delete(_ context.Context, id string) error {
	delete(m.events, id)
	return nil
}

// mockAttendanceStore is slice-backed so insertion order survives, matching
// the real store's ordered ListByCode.
type mockAttendanceStore struct {
	rows      []registration.Registration
	insertErr error
}

func newMockAttendanceStore(rows ...registration.Registration) *mockAttendanceStore {
	return &mockAttendanceStore{rows: rows}
}

func (m *mockAttendanceStore) GetByID(_ context.Context, id string) (registration.Registration, error) {
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return registration.Registration{}, faults.NotFound("attendance row not found")
}

func (m *mockAttendanceStore) InsertBatch(_ context.Context, rows []registration.Registration) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.rows = append(m.rows, rows...)
	return nil
}

func (m *mockAttendanceStore) Update(_ context.Context, value registration.Registration) error {
	for i, r := range m.rows {
		if r.ID == value.ID {
			m.rows[i] = value
			return nil
		}
	}
	return faults.NotFound("attendance row not found")
}

func (m *mockAttendanceStore) Delete(_ context.Context, id string) error {
	for i, r := range m.rows {
		if r.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return faults.NotFound("attendance row not found")
}

func (m *mockAttendanceStore) SetAttended(_ context.Context, id string, attended bool) error {
	for i, r := range m.rows {
		if r.ID == id {
			m.rows[i].HasAttended = attended
			return nil
		}
	}
	return faults.NotFound("attendance row not found")
}

func (m *mockAttendanceStore) ListByCode(_ context.Context, code int) ([]registration.Registration, error) {
	var out []registration.Registration
	for _, r := range m.rows {
		if r.Code == code {
			out = append(out, r)
		}
	}
	return out, nil
}

// mockDutyStore implements the duty store interfaces for testing.
type mockDutyStore struct {
	duties map[string]duty.Duty
}

func newMockDutyStore(duties ...duty.Duty) *mockDutyStore {
	m := &mockDutyStore{duties: make(map[string]duty.Duty)}
	for _, d := range duties {
		m.duties[d.ID] = d
	}
	return m
}

func (m *mockDutyStore) GetByID(_ context.Context, id string) (duty.Duty, error) {
	d, ok := m.duties[id]
	if !ok {
		return duty.Duty{}, faults.NotFound("duty not found")
	}
	return d, nil
}

func (m *mockDutyStore) Save(_ context.Context, d duty.Duty) error {
	m.duties[d.ID] = d
	return nil
}

func (m *mockDutyStore) Delete(_ context.Context, id string) error {
	delete(m.duties, id)
	return nil
}

func (m *mockDutyStore) UpdateStatus(_ context.Context, id, status string) error {
	d, ok := m.duties[id]
	if !ok {
		return faults.NotFound("duty not found")
	}
	d.Status = status
	m.duties[id] = d
	return nil
}

// mockAccountStore implements the account store interfaces for testing.
type mockAccountStore struct {
	byEmail map[string]account.Account
}

func newMockAccountStore(accounts ...account.Account) *mockAccountStore {
	m := &mockAccountStore{byEmail: make(map[string]account.Account)}
	for _, a := range accounts {
		m.byEmail[a.Email] = a
	}
	return m
}

func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	a, ok := m.byEmail[email]
	if !ok {
		return account.Account{}, faults.NotFound("account not found")
	}
	return a, nil
}

func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	m.byEmail[a.Email] = a
	return nil
}

// mockSender records sends for assertion.
type mockSender struct {
	sent []emailAdapter.SendRequest
	fail bool
}

func (m *mockSender) Send(_ context.Context, req emailAdapter.SendRequest) (emailAdapter.SendResult, error) {
	if m.fail {
		return emailAdapter.SendResult{}, errors.New("provider unavailable")
	}
	m.sent = append(m.sent, req)
	return emailAdapter.SendResult{MessageID: "mock-1"}, nil
}

var adminSession = account.Session{AccountID: "admin-001", Role: account.RoleAdmin}
var volunteerSession = account.Session{AccountID: "vol-001", Role: account.RoleVolunteer}

// sundayMass is a fixture event matching the registration fixtures below.
func sundayMass() event.Event {
	return event.Event{
		ID:         "ev-mass",
		Name:       "Sunday Mass",
		Date:       "2024-06-02",
		Times:      []string{"09:00", "11:00"},
		Visibility: event.VisibilityPublic,
	}
}

func validBatch(attendees ...registration.Attendee) registration.Batch {
	if len(attendees) == 0 {
		attendees = []registration.Attendee{{FirstName: "Tom", LastName: "Doe"}}
	}
	return registration.Batch{
		Kind:      registration.KindFamily,
		Guardian:  registration.Guardian{FirstName: "Jane", LastName: "Doe", Telephone: "07123456789"},
		Attendees: attendees,
		EventID:   "ev-mass",
		Date:      "2024-06-02",
		Time:      "11:00",
	}
}
