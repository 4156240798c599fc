package web

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"parish/internal/adapters/http/middleware"
	"parish/internal/adapters/ical"
	"parish/internal/application/orchestrators"
	"parish/internal/application/projections"
	"parish/internal/domain/faults"
	"parish/internal/domain/occurrence"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// renderMarkdown converts a markdown description to HTML, falling back to
// the raw text on converter failure.
func renderMarkdown(md string) string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return md
	}
	return buf.String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// fail maps domain faults onto HTTP statuses: validation 400, not-found 404,
// everything else a logged 500.
func fail(w http.ResponseWriter, err error) {
	switch {
	case faults.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case faults.IsNotFound(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		internalError(w, err)
	}
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// handleLogin validates credentials and issues a session cookie.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.LoginInput
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
	})
	if err != nil {
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := sessions.Create(result.AccountID, result.Email, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	writeJSON(w, map[string]string{
		"name": result.Name,
		"role": result.Role,
	})
}

// handleLogout drops the session server-side and clears the cookie.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// occurrenceJSON is the wire shape of a projected occurrence. The markdown
// description is rendered to HTML here, at the edge.
type occurrenceJSON struct {
	SourceID        string `json:"sourceId"`
	Title           string `json:"title"`
	Date            string `json:"date"`
	Start           string `json:"start"`
	End             string `json:"end,omitempty"`
	DescriptionHTML string `json:"descriptionHtml,omitempty"`
	Past            bool   `json:"past"`
}

func toOccurrenceJSON(occs []occurrence.Occurrence) []occurrenceJSON {
	out := make([]occurrenceJSON, len(occs))
	for i, o := range occs {
		out[i] = occurrenceJSON{
			SourceID: o.SourceID,
			Title:    o.Title,
			Date:     o.LocalDate(location),
			Start:    o.Start.Format(time.RFC3339),
			Past:     o.Past,
		}
		if !o.End.IsZero() {
			out[i].End = o.End.Format(time.RFC3339)
		}
		if o.Description != "" {
			out[i].DescriptionHTML = renderMarkdown(o.Description)
		}
	}
	return out
}

// handleOccurrences serves the event calendar for a date window.
func handleOccurrences(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := projections.QueryCalendar(r.Context(), projections.CalendarInput{
		Session: middleware.SessionAccount(r.Context()),
		From:    q.Get("from"),
		To:      q.Get("to"),
	}, projections.CalendarDeps{
		EventStore: stores.EventStore,
		Location:   location,
		Now:        timeNow,
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"occurrences": toOccurrenceJSON(result.Occurrences),
		"skipped":     result.Skipped,
	})
}

// handleCalendarFeed serves the public calendar as ICS for subscription.
// The window is fixed: a month back, six months ahead.
func handleCalendarFeed(w http.ResponseWriter, r *http.Request) {
	now := timeNow()
	result, err := projections.QueryCalendar(r.Context(), projections.CalendarInput{
		From: now.In(location).AddDate(0, -1, 0).Format("2006-01-02"),
		To:   now.In(location).AddDate(0, 6, 0).Format("2006-01-02"),
	}, projections.CalendarDeps{
		EventStore: stores.EventStore,
		Location:   location,
		Now:        timeNow,
	})
	if err != nil {
		fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Write([]byte(ical.Feed("Parish Calendar", result.Occurrences, now)))
}
