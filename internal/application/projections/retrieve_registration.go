package projections

import (
	"context"

	"parish/internal/domain/faults"
	"parish/internal/domain/registration"
)

// RetrievalStore defines the attendance store interface needed by the
// code lookup.
type RetrievalStore interface {
	ListByCode(ctx context.Context, code int) ([]registration.Registration, error)
}

// RetrieveByCodeDeps holds dependencies for RetrieveByCode.
type RetrieveByCodeDeps struct {
	AttendanceStore RetrievalStore
}

// QueryRetrieveByCode returns the batch behind an attendance code, in the
// order the attendees were registered. An unknown code is a not-found
// condition, distinct from a malformed one.
// PRE: none
// POST: returns at least one row, or a not-found error
func QueryRetrieveByCode(ctx context.Context, code int, deps RetrieveByCodeDeps) ([]registration.Registration, error) {
	if code < registration.CodeMin || code > registration.CodeMax {
		return nil, faults.Validation("attendance codes are six digits")
	}
	rows, err := deps.AttendanceStore.ListByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, faults.NotFound("no registration found for this code")
	}
	return rows, nil
}
