package projections

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"strconv"
	"time"

	"parish/internal/adapters/storage/attendance"
	"parish/internal/domain/account"
	"parish/internal/domain/faults"
	"parish/internal/domain/registration"
)

// exportHeader is the fixed CSV column layout of the attendance export.
var exportHeader = []string{"#", "Attendee", "Main Applicant", "Telephone", "Status"}

// ExportStore defines the attendance store interface needed by the export.
type ExportStore interface {
	List(ctx context.Context, filter attendance.ListFilter) ([]registration.Registration, error)
}

// ExportAttendedInput selects the date (and optionally event and time) to
// export.
type ExportAttendedInput struct {
	Session   account.Session
	Date      string // YYYY-MM-DD, required
	EventName string
	Time      string
}

// ExportAttendedDeps holds dependencies for ExportAttended.
type ExportAttendedDeps struct {
	AttendanceStore ExportStore
}

// QueryExportAttended writes the checked-in rows for a date as CSV. Only
// rows with the attended flag set are exported; a date with none still
// produces a valid document containing just the header. Returns the number
// of data rows written.
// PRE: Session belongs to an admin
// POST: w holds a header line plus one line per attended row
func QueryExportAttended(ctx context.Context, input ExportAttendedInput, deps ExportAttendedDeps, w io.Writer) (int, error) {
	if !input.Session.IsAdmin() {
		return 0, faults.Validation("only administrators can export attendance")
	}
	if input.Date == "" {
		return 0, faults.Validation("a date is required")
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return 0, faults.Validation("date must be YYYY-MM-DD")
	}

	attended := true
	rows, err := deps.AttendanceStore.List(ctx, attendance.ListFilter{
		Date:      input.Date,
		EventName: input.EventName,
		Time:      input.Time,
		Attended:  &attended,
	})
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return 0, err
	}
	for i, r := range rows {
		record := []string{
			strconv.Itoa(i + 1),
			r.AttendeeFirstName + " " + r.AttendeeLastName,
			r.MainFirstName + " " + r.MainLastName,
			r.Telephone,
			"Attended",
		}
		if err := cw.Write(record); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}

	slog.Info("attendance_exported", "date", input.Date, "rows", len(rows), "by", input.Session.AccountID)
	return len(rows), nil
}
