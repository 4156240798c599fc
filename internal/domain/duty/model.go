package duty

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Day of week constants
const (
	Monday    = "monday"
	Tuesday   = "tuesday"
	Wednesday = "wednesday"
	Thursday  = "thursday"
	Friday    = "friday"
	Saturday  = "saturday"
	Sunday    = "sunday"
)

// ValidDays contains all valid recurrence day values.
var ValidDays = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Status constants for the duty lifecycle.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Domain errors
var (
	ErrEmptyName         = errors.New("duty name cannot be empty")
	ErrInvalidDay        = errors.New("recurrence days must be valid days of the week")
	ErrEmptyStartTime    = errors.New("start time cannot be empty")
	ErrEmptyEndTime      = errors.New("end time cannot be empty")
	ErrInvalidStatus     = errors.New("status must be one of: not_started, in_progress, completed")
	ErrInvalidTransition = errors.New("duty status can only advance to the next stage")
)

// Duty represents a recurring volunteer duty: a weekday recurrence rule plus
// a daily time range, assigned to one or more accounts. Calendar occurrences
// are projected per month and never persisted.
type Duty struct {
	ID             string
	Name           string
	Description    string
	DueDate        string   // YYYY-MM-DD, optional
	RecurrenceDays []string // lowercase weekday names
	StartTime      string   // HH:MM
	EndTime        string   // HH:MM
	Status         string
	CreatedBy      string // coordinator account ID
	AssignedUsers  []string
	CreatedAt      time.Time
}

// Validate checks if the Duty has valid data.
// PRE: Duty struct is populated
// POST: Returns nil if valid, error otherwise
func (d *Duty) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	for _, day := range d.RecurrenceDays {
		if !isValidDay(day) {
			return fmt.Errorf("%w: %q", ErrInvalidDay, day)
		}
	}
	if strings.TrimSpace(d.StartTime) == "" {
		return ErrEmptyStartTime
	}
	if strings.TrimSpace(d.EndTime) == "" {
		return ErrEmptyEndTime
	}
	if d.DueDate != "" {
		if _, err := time.Parse("2006-01-02", d.DueDate); err != nil {
			return errors.New("due date must be in YYYY-MM-DD format")
		}
	}
	if !isValidStatus(d.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// RecursOn reports whether the duty recurs on the given weekday.
// PRE: none
// POST: returns true if the weekday's lowercase name is in RecurrenceDays
func (d *Duty) RecursOn(weekday time.Weekday) bool {
	name := strings.ToLower(weekday.String())
	for _, day := range d.RecurrenceDays {
		if day == name {
			return true
		}
	}
	return false
}

// IsAssignedTo reports whether the given account is an assignee.
func (d *Duty) IsAssignedTo(accountID string) bool {
	for _, id := range d.AssignedUsers {
		if id == accountID {
			return true
		}
	}
	return false
}

// Advance moves the duty to the next lifecycle stage. The confirmation step
// is strictly forward: not_started -> in_progress -> completed.
// PRE: Status is a valid status
// POST: Status is advanced, or ErrInvalidTransition if already completed
func (d *Duty) Advance() error {
	switch d.Status {
	case StatusNotStarted:
		d.Status = StatusInProgress
	case StatusInProgress:
		d.Status = StatusCompleted
	default:
		return ErrInvalidTransition
	}
	return nil
}

func isValidDay(day string) bool {
	for _, d := range ValidDays {
		if d == day {
			return true
		}
	}
	return false
}

func isValidStatus(status string) bool {
	return status == StatusNotStarted || status == StatusInProgress || status == StatusCompleted
}
