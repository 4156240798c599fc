package duty

import (
	"context"

	domain "parish/internal/domain/duty"
)

// Store persists Duty state and assignments.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Duty, error)
	Save(ctx context.Context, value domain.Duty) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Duty, error)
	ListByAssignee(ctx context.Context, accountID string) ([]domain.Duty, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
