package orchestrators

import (
	"context"
	"log/slog"

	"parish/internal/domain/account"
	"parish/internal/domain/faults"
	"parish/internal/domain/registration"
)

// ToggleAttendanceStore defines the attendance store interface needed by ToggleAttendance.
type ToggleAttendanceStore interface {
	GetByID(ctx context.Context, id string) (registration.Registration, error)
	SetAttended(ctx context.Context, id string, attended bool) error
}

// ToggleAttendanceInput identifies the row and the desired attended state.
type ToggleAttendanceInput struct {
	Session  account.Session
	RowID    string
	Attended bool
}

// ToggleAttendanceDeps holds dependencies for ToggleAttendance.
type ToggleAttendanceDeps struct {
	AttendanceStore ToggleAttendanceStore
}

// ToggleAttendanceResult reports the state before the toggle so a caller can
// offer an undo.
type ToggleAttendanceResult struct {
	RowID    string
	Previous bool
	Attended bool
}

// ExecuteToggleAttendance sets the attended flag on a single row. Only the
// flag changes; names, slot and code are untouched, so toggling twice
// restores the original row exactly.
// PRE: Session belongs to an admin
// POST: row's attended flag equals input.Attended
func ExecuteToggleAttendance(ctx context.Context, input ToggleAttendanceInput, deps ToggleAttendanceDeps) (ToggleAttendanceResult, error) {
	if !input.Session.IsAdmin() {
		return ToggleAttendanceResult{}, faults.Validation("only administrators can record attendance")
	}

	row, err := deps.AttendanceStore.GetByID(ctx, input.RowID)
	if err != nil {
		return ToggleAttendanceResult{}, err
	}
	if err := deps.AttendanceStore.SetAttended(ctx, input.RowID, input.Attended); err != nil {
		return ToggleAttendanceResult{}, err
	}

	slog.Info("attendance_toggled", "row_id", input.RowID,
		"attended", input.Attended, "was", row.HasAttended, "by", input.Session.AccountID)
	return ToggleAttendanceResult{
		RowID:    input.RowID,
		Previous: row.HasAttended,
		Attended: input.Attended,
	}, nil
}
