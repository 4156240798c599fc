package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"parish/internal/domain/account"
	"parish/internal/domain/faults"
	"parish/internal/domain/registration"
)

// EditAttendanceStore defines the attendance store interface needed by the
// admin row edit and delete flows.
type EditAttendanceStore interface {
	GetByID(ctx context.Context, id string) (registration.Registration, error)
	Update(ctx context.Context, value registration.Registration) error
	Delete(ctx context.Context, id string) error
}

// EditAttendanceInput carries the admin correction for one ledger row.
type EditAttendanceInput struct {
	Session           account.Session
	RowID             string
	MainFirstName     string
	MainLastName      string
	Telephone         string
	AttendeeFirstName string
	AttendeeLastName  string
}

// EditAttendanceDeps holds dependencies for EditAttendance.
type EditAttendanceDeps struct {
	AttendanceStore EditAttendanceStore
}

// ExecuteEditAttendance corrects the names and telephone on a single ledger
// row. Code, slot and attended flag are deliberately out of reach here; admins
// move people between slots by editing the batch through its code.
// PRE: Session belongs to an admin
// POST: row carries the corrected names, everything else unchanged
func ExecuteEditAttendance(ctx context.Context, input EditAttendanceInput, deps EditAttendanceDeps) (registration.Registration, error) {
	if !input.Session.IsAdmin() {
		return registration.Registration{}, faults.Validation("only administrators can edit attendance rows")
	}
	if strings.TrimSpace(input.AttendeeFirstName) == "" || strings.TrimSpace(input.AttendeeLastName) == "" {
		return registration.Registration{}, faults.Validation("attendee needs a first and last name")
	}

	row, err := deps.AttendanceStore.GetByID(ctx, input.RowID)
	if err != nil {
		return registration.Registration{}, err
	}
	row.MainFirstName = input.MainFirstName
	row.MainLastName = input.MainLastName
	row.Telephone = input.Telephone
	row.AttendeeFirstName = input.AttendeeFirstName
	row.AttendeeLastName = input.AttendeeLastName
	if err := deps.AttendanceStore.Update(ctx, row); err != nil {
		return registration.Registration{}, err
	}

	slog.Info("attendance_row_edited", "row_id", input.RowID, "by", input.Session.AccountID)
	return row, nil
}

// DeleteAttendanceInput identifies the row to remove.
type DeleteAttendanceInput struct {
	Session account.Session
	RowID   string
}

// ExecuteDeleteAttendance removes one ledger row. Rows sharing the same code
// are untouched; removing the last row of a batch retires its code.
// PRE: Session belongs to an admin
// POST: row no longer exists
func ExecuteDeleteAttendance(ctx context.Context, input DeleteAttendanceInput, deps EditAttendanceDeps) error {
	if !input.Session.IsAdmin() {
		return faults.Validation("only administrators can delete attendance rows")
	}
	row, err := deps.AttendanceStore.GetByID(ctx, input.RowID)
	if err != nil {
		return err
	}
	if err := deps.AttendanceStore.Delete(ctx, input.RowID); err != nil {
		return err
	}
	slog.Info("attendance_row_deleted", "row_id", input.RowID, "code", row.Code, "by", input.Session.AccountID)
	return nil
}
