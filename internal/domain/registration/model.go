package registration

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"parish/internal/domain/faults"
)

// Batch kind constants. The kind only affects display labels; every variant
// funnels through the same validation and insert path.
const (
	KindSingle    = "single"
	KindFamily    = "family"
	KindColleague = "colleague"
)

// Attendance code bounds: six digits, shared by every row of one batch.
const (
	CodeMin = 100000
	CodeMax = 999999
)

// Registration is one attendee row. Rows sharing a Code form one batch and
// carry identical guardian, event, date and time fields.
type Registration struct {
	ID                string
	Code              int
	Kind              string
	MainFirstName     string
	MainLastName      string
	Telephone         string
	AttendeeFirstName string
	AttendeeLastName  string
	HasAttended       bool
	PreferredTime     string // HH:MM
	ScheduleDate      string // YYYY-MM-DD
	EventID           string
	EventName         string
	CreatedAt         time.Time
}

// Attendee is one person within a batch.
type Attendee struct {
	FirstName string
	LastName  string
}

// Guardian is the main applicant for a batch.
type Guardian struct {
	FirstName string
	LastName  string
	Telephone string
}

// Batch is the registration form payload: one guardian and N attendees for
// a chosen event slot.
type Batch struct {
	Kind      string
	Guardian  Guardian
	Attendees []Attendee
	EventID   string
	Date      string // YYYY-MM-DD
	Time      string // HH:MM
}

// Validate checks the batch before any write occurs. The first violated
// constraint is returned as a user-facing validation error.
// PRE: none
// POST: returns nil only if every row built from the batch would be valid
func (b *Batch) Validate() error {
	if strings.TrimSpace(b.Guardian.FirstName) == "" {
		return faults.Validation("main applicant first name is required")
	}
	if strings.TrimSpace(b.Guardian.LastName) == "" {
		return faults.Validation("main applicant last name is required")
	}
	if !isTelephone(b.Guardian.Telephone) {
		return faults.Validation("telephone must be a number")
	}
	if b.EventID == "" {
		return faults.Validation("an event must be selected")
	}
	if b.Date == "" {
		return faults.Validation("a date must be selected")
	}
	if strings.TrimSpace(b.Time) == "" {
		return faults.Validation("a time slot must be selected")
	}
	if len(b.Attendees) == 0 {
		return faults.Validation("at least one attendee is required")
	}
	for _, a := range b.Attendees {
		if strings.TrimSpace(a.FirstName) == "" || strings.TrimSpace(a.LastName) == "" {
			return faults.Validation("every attendee needs a first and last name")
		}
	}
	if b.Kind != KindSingle && b.Kind != KindFamily && b.Kind != KindColleague {
		return faults.Validation("registration kind must be single, family or colleague")
	}
	return nil
}

// Rows materialises one Registration per attendee, all sharing code and the
// batch's guardian/event/date/time fields.
// PRE: Validate returned nil; newID yields unique IDs
// POST: len(result) == len(b.Attendees), attendee order preserved
func (b *Batch) Rows(code int, eventName string, newID func() string, now time.Time) []Registration {
	rows := make([]Registration, len(b.Attendees))
	for i, a := range b.Attendees {
		rows[i] = Registration{
			ID:                newID(),
			Code:              code,
			Kind:              b.Kind,
			MainFirstName:     b.Guardian.FirstName,
			MainLastName:      b.Guardian.LastName,
			Telephone:         b.Guardian.Telephone,
			AttendeeFirstName: a.FirstName,
			AttendeeLastName:  a.LastName,
			HasAttended:       false,
			PreferredTime:     b.Time,
			ScheduleDate:      b.Date,
			EventID:           b.EventID,
			EventName:         eventName,
			CreatedAt:         now,
		}
	}
	return rows
}

// GenerateCode draws a code uniformly from [CodeMin, CodeMax]. Callers must
// still treat collision with an existing batch as possible and re-draw.
// PRE: none
// POST: CodeMin <= code <= CodeMax
func GenerateCode() (int, error) {
	span := big.NewInt(int64(CodeMax - CodeMin + 1))
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return 0, err
	}
	return CodeMin + int(n.Int64()), nil
}

// isTelephone reports whether s parses as a non-negative integer. Leading
// zeroes are fine; spaces around the number are tolerated.
func isTelephone(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
