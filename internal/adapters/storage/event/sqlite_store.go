package event

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"parish/internal/adapters/storage"
	domain "parish/internal/domain/event"
	"parish/internal/domain/faults"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new EventStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const eventColumns = "id, name, date, times, description, category, sub_category, visibility, created_by, created_at"

// GetByID retrieves an Event by its ID.
// PRE: id is non-empty
// POST: Returns the entity or a not-found error
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Event, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+eventColumns+" FROM event WHERE id = ?", id)
	return scanEvent(row.Scan)
}

// Save persists an Event to the database. Time slots are stored as a JSON
// array in a TEXT column.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Event) error {
	timesJSON, err := json.Marshal(entity.Times)
	if err != nil {
		return fmt.Errorf("failed to encode times: %w", err)
	}

	var createdBy any
	if entity.CreatedBy != "" {
		createdBy = entity.CreatedBy
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO event (id, name, date, times, description, category, sub_category, visibility, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			date=excluded.date,
			times=excluded.times,
			description=excluded.description,
			category=excluded.category,
			sub_category=excluded.sub_category,
			visibility=excluded.visibility`,
		entity.ID,
		entity.Name,
		entity.Date,
		string(timesJSON),
		entity.Description,
		entity.Category,
		entity.SubCategory,
		entity.Visibility,
		createdBy,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// Delete removes an Event from the database. No referencing attendance rows
// are touched; they keep their denormalised event name.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM event WHERE id = ?", id)
	return err
}

// List retrieves events with range pagination, newest first by id.
// PRE: filter has valid parameters
// POST: Returns matching entities ordered by id descending
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM event ORDER BY id DESC LIMIT ? OFFSET ?",
		filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListByDateRange retrieves events whose date falls within [startDate, endDate].
// PRE: dates are YYYY-MM-DD
// POST: Returns matching entities ordered by date then id
func (s *SQLiteStore) ListByDateRange(ctx context.Context, startDate, endDate string) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM event WHERE date >= ? AND date <= ? ORDER BY date, id",
		startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]domain.Event, error) {
	var results []domain.Event
	for rows.Next() {
		entity, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func scanEvent(scan func(dest ...any) error) (domain.Event, error) {
	var entity domain.Event
	var timesJSON, createdStr string
	var createdBy sql.NullString
	err := scan(
		&entity.ID,
		&entity.Name,
		&entity.Date,
		&timesJSON,
		&entity.Description,
		&entity.Category,
		&entity.SubCategory,
		&entity.Visibility,
		&createdBy,
		&createdStr,
	)
	if err == sql.ErrNoRows {
		return domain.Event{}, faults.NotFound("event not found")
	}
	if err != nil {
		return domain.Event{}, err
	}
	if createdBy.Valid {
		entity.CreatedBy = createdBy.String
	}
	if err := json.Unmarshal([]byte(timesJSON), &entity.Times); err != nil {
		return domain.Event{}, fmt.Errorf("failed to decode times: %w", err)
	}
	entity.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr)
	if err != nil {
		return domain.Event{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return entity, nil
}
