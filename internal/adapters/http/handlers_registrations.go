package web

import (
	"net/http"
	"strconv"

	"parish/internal/application/orchestrators"
	"parish/internal/application/projections"
	"parish/internal/domain/registration"
)

// registrationPayload is the public registration form body.
type registrationPayload struct {
	Kind     string `json:"kind"`
	Guardian struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Telephone string `json:"telephone"`
	} `json:"guardian"`
	Attendees []struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"attendees"`
	EventID string `json:"eventId"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Email   string `json:"email"` // optional, for the confirmation
}

func (p registrationPayload) toBatch() registration.Batch {
	b := registration.Batch{
		Kind: p.Kind,
		Guardian: registration.Guardian{
			FirstName: p.Guardian.FirstName,
			LastName:  p.Guardian.LastName,
			Telephone: p.Guardian.Telephone,
		},
		EventID: p.EventID,
		Date:    p.Date,
		Time:    p.Time,
	}
	for _, a := range p.Attendees {
		b.Attendees = append(b.Attendees, registration.Attendee{
			FirstName: a.FirstName,
			LastName:  a.LastName,
		})
	}
	return b
}

// registrationRowJSON is the wire shape of one attendee row.
type registrationRowJSON struct {
	ID                string `json:"id"`
	Code              int    `json:"code"`
	Kind              string `json:"kind"`
	MainFirstName     string `json:"mainFirstName"`
	MainLastName      string `json:"mainLastName"`
	Telephone         string `json:"telephone"`
	AttendeeFirstName string `json:"attendeeFirstName"`
	AttendeeLastName  string `json:"attendeeLastName"`
	HasAttended       bool   `json:"hasAttended"`
	Time              string `json:"time"`
	Date              string `json:"date"`
	EventID           string `json:"eventId"`
	EventName         string `json:"eventName"`
}

func toRowJSON(rows []registration.Registration) []registrationRowJSON {
	out := make([]registrationRowJSON, len(rows))
	for i, r := range rows {
		out[i] = registrationRowJSON{
			ID:                r.ID,
			Code:              r.Code,
			Kind:              r.Kind,
			MainFirstName:     r.MainFirstName,
			MainLastName:      r.MainLastName,
			Telephone:         r.Telephone,
			AttendeeFirstName: r.AttendeeFirstName,
			AttendeeLastName:  r.AttendeeLastName,
			HasAttended:       r.HasAttended,
			Time:              r.PreferredTime,
			Date:              r.ScheduleDate,
			EventID:           r.EventID,
			EventName:         r.EventName,
		}
	}
	return out
}

// handleSubmitRegistration accepts the public registration form.
func handleSubmitRegistration(w http.ResponseWriter, r *http.Request) {
	var payload registrationPayload
	if err := strictDecode(r, &payload); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteSubmitRegistration(r.Context(), orchestrators.SubmitRegistrationInput{
		Batch:       payload.toBatch(),
		NotifyEmail: payload.Email,
	}, orchestrators.SubmitRegistrationDeps{
		EventStore:      stores.EventStore,
		AttendanceStore: stores.AttendanceStore,
		EmailSender:     emailSender,
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, map[string]any{
		"code": result.Code,
		"rows": toRowJSON(result.Rows),
	})
}

// parseCode turns the path segment into an attendance code. Non-numeric input
// maps to 0, which the lookup rejects as out of range.
func parseCode(r *http.Request) int {
	code, _ := strconv.Atoi(r.PathValue("code"))
	return code
}

// handleRetrieveRegistration returns the batch behind a code.
func handleRetrieveRegistration(w http.ResponseWriter, r *http.Request) {
	rows, err := projections.QueryRetrieveByCode(r.Context(), parseCode(r),
		projections.RetrieveByCodeDeps{AttendanceStore: stores.AttendanceStore})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, toRowJSON(rows))
}

// handleUpdateRegistration resubmits the form for an existing code.
func handleUpdateRegistration(w http.ResponseWriter, r *http.Request) {
	var payload registrationPayload
	if err := strictDecode(r, &payload); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	rows, err := orchestrators.ExecuteUpdateRegistration(r.Context(), orchestrators.UpdateRegistrationInput{
		Code:  parseCode(r),
		Batch: payload.toBatch(),
	}, orchestrators.UpdateRegistrationDeps{
		EventStore:      stores.EventStore,
		AttendanceStore: stores.AttendanceStore,
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, toRowJSON(rows))
}
