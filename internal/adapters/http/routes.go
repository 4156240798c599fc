package web

import (
	"net/http"

	"parish/internal/adapters/http/middleware"
	"parish/internal/domain/account"
)

// registerRoutes maps the API surface onto the mux. Role gates live here, at
// the edge; the orchestrators re-check the session they are handed so a
// wiring mistake fails closed rather than open.
func registerRoutes(mux *http.ServeMux) {
	admin := middleware.RequireRole(account.RoleAdmin)

	// Auth
	mux.HandleFunc("POST /api/login", handleLogin)
	mux.HandleFunc("POST /api/logout", handleLogout)

	// Calendar
	mux.HandleFunc("GET /api/occurrences", handleOccurrences)
	mux.HandleFunc("GET /calendar.ics", handleCalendarFeed)

	// Event catalog (admin)
	mux.Handle("GET /api/events", admin(http.HandlerFunc(handleListEvents)))
	mux.Handle("POST /api/events", admin(http.HandlerFunc(handleCreateEvent)))
	mux.Handle("PUT /api/events/{id}", admin(http.HandlerFunc(handleUpdateEvent)))
	mux.Handle("DELETE /api/events/{id}", admin(http.HandlerFunc(handleDeleteEvent)))

	// Registration (public: parishioners register without accounts)
	mux.HandleFunc("POST /api/registrations", handleSubmitRegistration)
	mux.HandleFunc("GET /api/registrations/{code}", handleRetrieveRegistration)
	mux.HandleFunc("PUT /api/registrations/{code}", handleUpdateRegistration)

	// Attendance ledger (admin)
	mux.Handle("GET /api/attendance", admin(http.HandlerFunc(handleListAttendance)))
	mux.Handle("GET /api/attendance/export.csv", admin(http.HandlerFunc(handleExportAttendance)))
	mux.Handle("POST /api/attendance/{id}/toggle", admin(http.HandlerFunc(handleToggleAttendance)))
	mux.Handle("PATCH /api/attendance/{id}", admin(http.HandlerFunc(handleEditAttendance)))
	mux.Handle("DELETE /api/attendance/{id}", admin(http.HandlerFunc(handleDeleteAttendance)))

	// Duties
	mux.Handle("GET /api/duties", middleware.RequireAuth(http.HandlerFunc(handleDutyCalendar)))
	mux.Handle("POST /api/duties", admin(http.HandlerFunc(handleSaveDuty)))
	mux.Handle("DELETE /api/duties/{id}", admin(http.HandlerFunc(handleDeleteDuty)))
	mux.Handle("POST /api/duties/{id}/confirm", middleware.RequireAuth(http.HandlerFunc(handleConfirmDuty)))
}
