package web

import (
	"net/http"

	"parish/internal/adapters/http/middleware"
	"parish/internal/application/orchestrators"
	"parish/internal/application/projections"
	"parish/internal/domain/duty"
)

// dutyPayload is the admin duty form body.
type dutyPayload struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	DueDate        string   `json:"dueDate"`
	RecurrenceDays []string `json:"recurrenceDays"`
	StartTime      string   `json:"startTime"`
	EndTime        string   `json:"endTime"`
	AssignedUsers  []string `json:"assignedUsers"`
}

func (p dutyPayload) toDomain() duty.Duty {
	return duty.Duty{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		DueDate:        p.DueDate,
		RecurrenceDays: p.RecurrenceDays,
		StartTime:      p.StartTime,
		EndTime:        p.EndTime,
		AssignedUsers:  p.AssignedUsers,
	}
}

// handleDutyCalendar serves a month of duty occurrences for the session user.
func handleDutyCalendar(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = timeNow().In(location).Format("2006-01")
	}

	result, err := projections.QueryDutyCalendar(r.Context(), projections.DutyCalendarInput{
		Session: middleware.SessionAccount(r.Context()),
		Month:   month,
	}, projections.DutyCalendarDeps{
		DutyStore: stores.DutyStore,
		Location:  location,
		Now:       timeNow,
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"duties":      result.Duties,
		"occurrences": toOccurrenceJSON(result.Occurrences),
		"skipped":     result.Skipped,
	})
}

// handleSaveDuty creates or updates a duty.
func handleSaveDuty(w http.ResponseWriter, r *http.Request) {
	var payload dutyPayload
	if err := strictDecode(r, &payload); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	saved, err := orchestrators.ExecuteSaveDuty(r.Context(), orchestrators.SaveDutyInput{
		Session: middleware.SessionAccount(r.Context()),
		Duty:    payload.toDomain(),
	}, orchestrators.SaveDutyDeps{DutyStore: stores.DutyStore})
	if err != nil {
		fail(w, err)
		return
	}
	if payload.ID == "" {
		writeJSONStatus(w, http.StatusCreated, saved)
		return
	}
	writeJSON(w, saved)
}

// handleDeleteDuty removes a duty and its assignments.
func handleDeleteDuty(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteDuty(r.Context(), orchestrators.DeleteDutyInput{
		Session: middleware.SessionAccount(r.Context()),
		DutyID:  r.PathValue("id"),
	}, orchestrators.SaveDutyDeps{DutyStore: stores.DutyStore})
	if err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleConfirmDuty advances a duty's status for an assignee.
func handleConfirmDuty(w http.ResponseWriter, r *http.Request) {
	confirmed, err := orchestrators.ExecuteConfirmDuty(r.Context(), orchestrators.ConfirmDutyInput{
		Session: middleware.SessionAccount(r.Context()),
		DutyID:  r.PathValue("id"),
	}, orchestrators.ConfirmDutyDeps{DutyStore: stores.DutyStore})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, map[string]string{"status": confirmed.Status})
}
