package event

import (
	"errors"
	"time"
)

// Visibility constants.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Max length constants.
const (
	MaxNameLength        = 200
	MaxDescriptionLength = 2000
	MaxCategoryLength    = 100
)

// Domain errors
var (
	ErrEmptyName         = errors.New("event name cannot be empty")
	ErrEmptyDate         = errors.New("event date is required")
	ErrInvalidDate       = errors.New("event date must be in YYYY-MM-DD format")
	ErrNoTimes           = errors.New("event must have at least one time slot")
	ErrInvalidVisibility = errors.New("visibility must be 'public' or 'private'")
)

// Event represents a parish event on a single calendar date with one or more
// time-of-day slots. The date carries no time component; combining it with a
// slot is the occurrence projector's job.
// INVARIANT: Times is non-empty once the event is published.
type Event struct {
	ID          string
	Name        string
	Date        string   // YYYY-MM-DD
	Times       []string // HH:MM or HH:MM:SS, ordered
	Description string   // markdown, rendered safely at the edge
	Category    string
	SubCategory string
	Visibility  string // public or private
	CreatedBy   string // account ID
	CreatedAt   time.Time
}

// Validate checks the event's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (e *Event) Validate() error {
	if e.Name == "" {
		return ErrEmptyName
	}
	if len(e.Name) > MaxNameLength {
		return errors.New("event name cannot exceed 200 characters")
	}
	if e.Date == "" {
		return ErrEmptyDate
	}
	if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		return ErrInvalidDate
	}
	if len(e.Times) == 0 {
		return ErrNoTimes
	}
	if len(e.Description) > MaxDescriptionLength {
		return errors.New("event description cannot exceed 2000 characters")
	}
	if len(e.Category) > MaxCategoryLength || len(e.SubCategory) > MaxCategoryLength {
		return errors.New("category cannot exceed 100 characters")
	}
	if e.Visibility != VisibilityPublic && e.Visibility != VisibilityPrivate {
		return ErrInvalidVisibility
	}
	return nil
}

// IsPublic returns true if the event is visible to unauthenticated visitors.
func (e *Event) IsPublic() bool {
	return e.Visibility == VisibilityPublic
}

// HasTime reports whether the given time slot is one of the event's slots.
// PRE: none
// POST: returns true only for an exact slot match
func (e *Event) HasTime(slot string) bool {
	for _, t := range e.Times {
		if t == slot {
			return true
		}
	}
	return false
}
