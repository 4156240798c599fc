package attendance

import (
	"context"

	domain "parish/internal/domain/registration"
)

// Store persists AttendanceRegistration rows.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Registration, error)
	InsertBatch(ctx context.Context, rows []domain.Registration) error
	Update(ctx context.Context, value domain.Registration) error
	Delete(ctx context.Context, id string) error
	SetAttended(ctx context.Context, id string, attended bool) error
	ListByCode(ctx context.Context, code int) ([]domain.Registration, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Registration, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	HasDate(ctx context.Context, date string) (bool, error)
	DistinctEvents(ctx context.Context, date string) ([]string, error)
	DistinctTimes(ctx context.Context, date, eventName string) ([]string, error)
}

// ListFilter carries the compound ledger filters. Date is mandatory; the
// optional facets narrow within that date. Attended=nil means either status.
type ListFilter struct {
	Date      string
	EventName string
	Time      string
	Attended  *bool
	Limit     int
	Offset    int
}
