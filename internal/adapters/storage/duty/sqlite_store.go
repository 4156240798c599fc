package duty

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"parish/internal/adapters/storage"
	domain "parish/internal/domain/duty"
	"parish/internal/domain/faults"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new DutyStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const dutyColumns = "id, name, description, due_date, recurrence_days, start_time, end_time, status, created_by, created_at"

// GetByID retrieves a Duty with its assignees.
// PRE: id is non-empty
// POST: Returns the entity or a not-found error
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Duty, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+dutyColumns+" FROM duty WHERE id = ?", id)
	entity, err := scanDuty(row.Scan)
	if err != nil {
		return domain.Duty{}, err
	}
	entity.AssignedUsers, err = s.listAssignees(ctx, id)
	return entity, err
}

// Save persists a Duty and replaces its assignment rows.
// PRE: entity has been validated
// POST: Duty and assignments are persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Duty) error {
	daysJSON, err := json.Marshal(entity.RecurrenceDays)
	if err != nil {
		return fmt.Errorf("failed to encode recurrence days: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var dueDate, createdBy any
	if entity.DueDate != "" {
		dueDate = entity.DueDate
	}
	if entity.CreatedBy != "" {
		createdBy = entity.CreatedBy
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO duty (id, name, description, due_date, recurrence_days, start_time, end_time, status, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			description=excluded.description,
			due_date=excluded.due_date,
			recurrence_days=excluded.recurrence_days,
			start_time=excluded.start_time,
			end_time=excluded.end_time,
			status=excluded.status`,
		entity.ID, entity.Name, entity.Description, dueDate, string(daysJSON),
		entity.StartTime, entity.EndTime, entity.Status, createdBy,
		entity.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM duty_assignment WHERE duty_id = ?", entity.ID); err != nil {
		return err
	}
	for _, accountID := range entity.AssignedUsers {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO duty_assignment (duty_id, account_id) VALUES (?, ?)",
			entity.ID, accountID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete removes a Duty and its assignments.
// PRE: id is non-empty
// POST: Duty and assignment rows are removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, "DELETE FROM duty_assignment WHERE duty_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM duty WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// List retrieves every duty, newest first, with assignees loaded.
// PRE: none
// POST: Returns all duties ordered by created_at descending
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Duty, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+dutyColumns+" FROM duty ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Duty
	for rows.Next() {
		entity, err := scanDuty(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range results {
		results[i].AssignedUsers, err = s.listAssignees(ctx, results[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// ListByAssignee retrieves the duties assigned to an account.
// PRE: accountID is non-empty
// POST: Returns duties joined through duty_assignment, with assignees loaded
func (s *SQLiteStore) ListByAssignee(ctx context.Context, accountID string) ([]domain.Duty, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+prefixedDutyColumns("d")+`
		 FROM duty d
		 JOIN duty_assignment da ON da.duty_id = d.id
		 WHERE da.account_id = ?
		 ORDER BY d.created_at DESC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Duty
	for rows.Next() {
		entity, err := scanDuty(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range results {
		results[i].AssignedUsers, err = s.listAssignees(ctx, results[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// UpdateStatus sets only the status field.
// PRE: status is a valid lifecycle status
// POST: Status updated; not-found if no such duty
func (s *SQLiteStore) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE duty SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return faults.NotFound("duty not found")
	}
	return nil
}

func (s *SQLiteStore) listAssignees(ctx context.Context, dutyID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT account_id FROM duty_assignment WHERE duty_id = ? ORDER BY account_id", dutyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func prefixedDutyColumns(alias string) string {
	return alias + ".id, " + alias + ".name, " + alias + ".description, " + alias + ".due_date, " +
		alias + ".recurrence_days, " + alias + ".start_time, " + alias + ".end_time, " +
		alias + ".status, " + alias + ".created_by, " + alias + ".created_at"
}

func scanDuty(scan func(dest ...any) error) (domain.Duty, error) {
	var entity domain.Duty
	var dueDate, createdBy sql.NullString
	var daysJSON, createdStr string
	err := scan(
		&entity.ID,
		&entity.Name,
		&entity.Description,
		&dueDate,
		&daysJSON,
		&entity.StartTime,
		&entity.EndTime,
		&entity.Status,
		&createdBy,
		&createdStr,
	)
	if err == sql.ErrNoRows {
		return domain.Duty{}, faults.NotFound("duty not found")
	}
	if err != nil {
		return domain.Duty{}, err
	}
	if dueDate.Valid {
		entity.DueDate = dueDate.String
	}
	if createdBy.Valid {
		entity.CreatedBy = createdBy.String
	}
	if err := json.Unmarshal([]byte(daysJSON), &entity.RecurrenceDays); err != nil {
		return domain.Duty{}, fmt.Errorf("failed to decode recurrence days: %w", err)
	}
	entity.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr)
	if err != nil {
		return domain.Duty{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return entity, nil
}
