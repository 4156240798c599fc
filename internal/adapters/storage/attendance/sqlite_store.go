package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"parish/internal/adapters/storage"
	"parish/internal/domain/faults"
	domain "parish/internal/domain/registration"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new attendance Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const registrationColumns = `id, code, kind, main_first_name, main_last_name, telephone,
	attendee_first_name, attendee_last_name, has_attended, preferred_time,
	schedule_date, event_id, event_name, created_at`

// GetByID retrieves a Registration by its ID.
// PRE: id is non-empty
// POST: Returns the entity or a not-found error
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Registration, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+registrationColumns+" FROM attendance_registration WHERE id = ?", id)
	return scanRegistration(row.Scan)
}

// InsertBatch inserts every row in one transaction so a batch is never
// half-written.
// PRE: rows share one code and have been validated
// POST: All rows are persisted, or none are
func (s *SQLiteStore) InsertBatch(ctx context.Context, rows []domain.Registration) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const insert = `INSERT INTO attendance_registration
		(id, code, kind, main_first_name, main_last_name, telephone,
		 attendee_first_name, attendee_last_name, has_attended, preferred_time,
		 schedule_date, event_id, event_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, r := range rows {
		if _, err := tx.ExecContext(ctx, insert,
			r.ID, r.Code, r.Kind, r.MainFirstName, r.MainLastName, r.Telephone,
			r.AttendeeFirstName, r.AttendeeLastName, boolToInt(r.HasAttended),
			r.PreferredTime, r.ScheduleDate, nullable(r.EventID), r.EventName,
			r.CreatedAt.Format(time.RFC3339Nano),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Update overwrites a single row in place.
// PRE: value.ID exists
// POST: The row is replaced with value's fields
func (s *SQLiteStore) Update(ctx context.Context, value domain.Registration) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE attendance_registration SET
			code=?, kind=?, main_first_name=?, main_last_name=?, telephone=?,
			attendee_first_name=?, attendee_last_name=?, has_attended=?,
			preferred_time=?, schedule_date=?, event_id=?, event_name=?
		 WHERE id=?`,
		value.Code, value.Kind, value.MainFirstName, value.MainLastName, value.Telephone,
		value.AttendeeFirstName, value.AttendeeLastName, boolToInt(value.HasAttended),
		value.PreferredTime, value.ScheduleDate, nullable(value.EventID), value.EventName,
		value.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return faults.NotFound("registration not found")
	}
	return nil
}

// Delete removes a single row. Sibling rows sharing the code are untouched.
// PRE: id is non-empty
// POST: Row with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM attendance_registration WHERE id = ?", id)
	return err
}

// SetAttended flips the check-in flag on one row.
// PRE: id is non-empty
// POST: has_attended reflects attended; not-found if the row is gone
func (s *SQLiteStore) SetAttended(ctx context.Context, id string, attended bool) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE attendance_registration SET has_attended = ? WHERE id = ?",
		boolToInt(attended), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return faults.NotFound("registration not found")
	}
	return nil
}

// ListByCode retrieves a batch in its original attendee order.
// PRE: code is a six-digit attendance code
// POST: Returns rows sharing code, insertion ascending; empty slice if none
func (s *SQLiteStore) ListByCode(ctx context.Context, code int) ([]domain.Registration, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+registrationColumns+" FROM attendance_registration WHERE code = ? ORDER BY created_at, rowid",
		code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

// List retrieves ledger rows matching the compound filter, most recent
// insertion first for pagination stability. A non-positive Limit returns
// every matching row.
// PRE: filter.Date is non-empty
// POST: Returns at most filter.Limit rows from filter.Offset
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Registration, error) {
	where, args := filterClauses(filter)
	query := fmt.Sprintf(
		"SELECT "+registrationColumns+" FROM attendance_registration WHERE %s ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?",
		strings.Join(where, " AND "))
	limit := filter.Limit
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

// Count returns the number of rows matching the filter, ignoring pagination.
// PRE: filter.Date is non-empty
// POST: Count of all matching rows
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := filterClauses(filter)
	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM attendance_registration WHERE %s",
		strings.Join(where, " AND "))
	var n int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

// HasDate reports whether any registration exists for the given date.
// PRE: date is YYYY-MM-DD
// POST: true only if at least one row has schedule_date = date
func (s *SQLiteStore) HasDate(ctx context.Context, date string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM attendance_registration WHERE schedule_date = ?", date).Scan(&n)
	return n > 0, err
}

// DistinctEvents returns the event names present on a date, regardless of
// check-in status.
// PRE: date is YYYY-MM-DD
// POST: Sorted distinct event names
func (s *SQLiteStore) DistinctEvents(ctx context.Context, date string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT event_name FROM attendance_registration WHERE schedule_date = ? ORDER BY event_name",
		date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

// DistinctTimes returns the time slots present on a date, optionally
// narrowed to one event, regardless of check-in status.
// PRE: date is YYYY-MM-DD
// POST: Sorted distinct preferred times
func (s *SQLiteStore) DistinctTimes(ctx context.Context, date, eventName string) ([]string, error) {
	query := "SELECT DISTINCT preferred_time FROM attendance_registration WHERE schedule_date = ?"
	args := []any{date}
	if eventName != "" {
		query += " AND event_name = ?"
		args = append(args, eventName)
	}
	query += " ORDER BY preferred_time"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

func filterClauses(filter ListFilter) ([]string, []any) {
	where := []string{"schedule_date = ?"}
	args := []any{filter.Date}
	if filter.EventName != "" {
		where = append(where, "event_name = ?")
		args = append(args, filter.EventName)
	}
	if filter.Time != "" {
		where = append(where, "preferred_time = ?")
		args = append(args, filter.Time)
	}
	if filter.Attended != nil {
		where = append(where, "has_attended = ?")
		args = append(args, boolToInt(*filter.Attended))
	}
	return where, args
}

func scanRegistrations(rows *sql.Rows) ([]domain.Registration, error) {
	var results []domain.Registration
	for rows.Next() {
		entity, err := scanRegistration(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanRegistration(scan func(dest ...any) error) (domain.Registration, error) {
	var entity domain.Registration
	var attended int
	var eventID sql.NullString
	var createdStr string
	err := scan(
		&entity.ID,
		&entity.Code,
		&entity.Kind,
		&entity.MainFirstName,
		&entity.MainLastName,
		&entity.Telephone,
		&entity.AttendeeFirstName,
		&entity.AttendeeLastName,
		&attended,
		&entity.PreferredTime,
		&entity.ScheduleDate,
		&eventID,
		&entity.EventName,
		&createdStr,
	)
	if err == sql.ErrNoRows {
		return domain.Registration{}, faults.NotFound("registration not found")
	}
	if err != nil {
		return domain.Registration{}, err
	}
	entity.HasAttended = attended != 0
	if eventID.Valid {
		entity.EventID = eventID.String
	}
	entity.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return entity, nil
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
