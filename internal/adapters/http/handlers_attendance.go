package web

import (
	"fmt"
	"net/http"

	"parish/internal/adapters/http/middleware"
	"parish/internal/application/listutil"
	"parish/internal/application/orchestrators"
	"parish/internal/application/projections"
	"parish/internal/domain/registration"
)

// handleListAttendance serves the admin check-in ledger with facets.
func handleListAttendance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := projections.QueryListAttendance(r.Context(), projections.ListAttendanceInput{
		Session:   middleware.SessionAccount(r.Context()),
		Date:      q.Get("date"),
		EventName: q.Get("event"),
		Time:      q.Get("time"),
		Status:    q.Get("status"),
		Page:      listutil.ParsePageParams(q),
	}, projections.ListAttendanceDeps{AttendanceStore: stores.AttendanceStore})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"rows":            toRowJSON(result.Rows),
		"pageInfo":        result.PageInfo,
		"availableEvents": result.AvailableEvents,
		"availableTimes":  result.AvailableTimes,
		"event":           result.EventName,
		"time":            result.Time,
	})
}

// handleExportAttendance streams the attended rows as a CSV download.
func handleExportAttendance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := projections.ExportAttendedInput{
		Session:   middleware.SessionAccount(r.Context()),
		Date:      q.Get("date"),
		EventName: q.Get("event"),
		Time:      q.Get("time"),
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "attendance-"+input.Date+".csv"))
	if _, err := projections.QueryExportAttended(r.Context(), input,
		projections.ExportAttendedDeps{AttendanceStore: stores.AttendanceStore}, w); err != nil {
		// Validation errors happen before the first write, so the status
		// line is still ours to set.
		w.Header().Del("Content-Disposition")
		fail(w, err)
		return
	}
}

// handleToggleAttendance flips the attended flag on one row.
func handleToggleAttendance(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Attended bool `json:"attended"`
	}
	if err := strictDecode(r, &payload); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteToggleAttendance(r.Context(), orchestrators.ToggleAttendanceInput{
		Session:  middleware.SessionAccount(r.Context()),
		RowID:    r.PathValue("id"),
		Attended: payload.Attended,
	}, orchestrators.ToggleAttendanceDeps{AttendanceStore: stores.AttendanceStore})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, map[string]bool{
		"attended": result.Attended,
		"previous": result.Previous,
	})
}

// handleEditAttendance corrects the names on one row.
func handleEditAttendance(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		MainFirstName     string `json:"mainFirstName"`
		MainLastName      string `json:"mainLastName"`
		Telephone         string `json:"telephone"`
		AttendeeFirstName string `json:"attendeeFirstName"`
		AttendeeLastName  string `json:"attendeeLastName"`
	}
	if err := strictDecode(r, &payload); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	row, err := orchestrators.ExecuteEditAttendance(r.Context(), orchestrators.EditAttendanceInput{
		Session:           middleware.SessionAccount(r.Context()),
		RowID:             r.PathValue("id"),
		MainFirstName:     payload.MainFirstName,
		MainLastName:      payload.MainLastName,
		Telephone:         payload.Telephone,
		AttendeeFirstName: payload.AttendeeFirstName,
		AttendeeLastName:  payload.AttendeeLastName,
	}, orchestrators.EditAttendanceDeps{AttendanceStore: stores.AttendanceStore})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, toRowJSON([]registration.Registration{row})[0])
}

// handleDeleteAttendance removes one ledger row.
func handleDeleteAttendance(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteAttendance(r.Context(), orchestrators.DeleteAttendanceInput{
		Session: middleware.SessionAccount(r.Context()),
		RowID:   r.PathValue("id"),
	}, orchestrators.EditAttendanceDeps{AttendanceStore: stores.AttendanceStore})
	if err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
