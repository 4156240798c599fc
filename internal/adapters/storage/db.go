package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables. Dates are TEXT YYYY-MM-DD, time slots TEXT HH:MM,
	// instants TEXT RFC3339.
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS event (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		date TEXT NOT NULL,
		times TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		sub_category TEXT NOT NULL DEFAULT '',
		visibility TEXT NOT NULL DEFAULT 'public',
		created_by TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS attendance_registration (
		id TEXT PRIMARY KEY,
		code INTEGER NOT NULL,
		kind TEXT NOT NULL DEFAULT 'single',
		main_first_name TEXT NOT NULL,
		main_last_name TEXT NOT NULL,
		telephone TEXT NOT NULL,
		attendee_first_name TEXT NOT NULL,
		attendee_last_name TEXT NOT NULL,
		has_attended INTEGER NOT NULL DEFAULT 0,
		preferred_time TEXT NOT NULL,
		schedule_date TEXT NOT NULL,
		event_id TEXT,
		event_name TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_attendance_registration_code
		ON attendance_registration(code);
	CREATE INDEX IF NOT EXISTS idx_attendance_registration_date
		ON attendance_registration(schedule_date);

	CREATE TABLE IF NOT EXISTS duty (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		due_date TEXT,
		recurrence_days TEXT NOT NULL DEFAULT '[]',
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'not_started',
		created_by TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS duty_assignment (
		duty_id TEXT NOT NULL,
		account_id TEXT NOT NULL,
		PRIMARY KEY (duty_id, account_id),
		FOREIGN KEY (duty_id) REFERENCES duty(id)
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
