package event

import (
	"context"

	domain "parish/internal/domain/event"
)

// Store persists Event state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Event, error)
	Save(ctx context.Context, value domain.Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Event, error)
	ListByDateRange(ctx context.Context, startDate, endDate string) ([]domain.Event, error)
}

// ListFilter carries filtering parameters for List operations. Results are
// ordered by id descending.
type ListFilter struct {
	Limit  int
	Offset int
}
