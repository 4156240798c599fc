package web

import (
	"net/http"
	"strconv"

	"parish/internal/adapters/http/middleware"
	eventStore "parish/internal/adapters/storage/event"
	"parish/internal/application/orchestrators"
	"parish/internal/domain/event"
)

// eventPayload is the admin event form body.
type eventPayload struct {
	Name        string   `json:"name"`
	Date        string   `json:"date"`
	Times       []string `json:"times"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	SubCategory string   `json:"subCategory"`
	Visibility  string   `json:"visibility"`
}

func (p eventPayload) toDomain(id string) event.Event {
	return event.Event{
		ID:          id,
		Name:        p.Name,
		Date:        p.Date,
		Times:       p.Times,
		Description: p.Description,
		Category:    p.Category,
		SubCategory: p.SubCategory,
		Visibility:  p.Visibility,
	}
}

// handleListEvents serves the admin catalog, newest first.
func handleListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset, _ := strconv.Atoi(q.Get("offset"))
	if offset < 0 {
		offset = 0
	}

	events, err := stores.EventStore.List(r.Context(), eventStore.ListFilter{Limit: limit, Offset: offset})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, events)
}

func handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	saveEvent(w, r, "")
}

func handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	saveEvent(w, r, r.PathValue("id"))
}

func saveEvent(w http.ResponseWriter, r *http.Request, id string) {
	var payload eventPayload
	if err := strictDecode(r, &payload); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	saved, err := orchestrators.ExecuteSaveEvent(r.Context(), orchestrators.SaveEventInput{
		Session: middleware.SessionAccount(r.Context()),
		Event:   payload.toDomain(id),
	}, orchestrators.SaveEventDeps{EventStore: stores.EventStore})
	if err != nil {
		fail(w, err)
		return
	}
	if id == "" {
		writeJSONStatus(w, http.StatusCreated, saved)
		return
	}
	writeJSON(w, saved)
}

func handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteEvent(r.Context(), orchestrators.DeleteEventInput{
		Session: middleware.SessionAccount(r.Context()),
		EventID: r.PathValue("id"),
	}, orchestrators.SaveEventDeps{EventStore: stores.EventStore})
	if err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
