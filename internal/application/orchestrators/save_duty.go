package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"parish/internal/domain/account"
	"parish/internal/domain/duty"
	"parish/internal/domain/faults"
)

// SaveDutyStore defines the duty store interface needed by SaveDuty.
type SaveDutyStore interface {
	GetByID(ctx context.Context, id string) (duty.Duty, error)
	Save(ctx context.Context, value duty.Duty) error
	Delete(ctx context.Context, id string) error
}

// SaveDutyInput carries the duty form payload. An empty ID creates a new
// duty; a set ID updates the existing one.
type SaveDutyInput struct {
	Session account.Session
	Duty    duty.Duty
}

// SaveDutyDeps holds dependencies for SaveDuty.
type SaveDutyDeps struct {
	DutyStore SaveDutyStore
}

// ExecuteSaveDuty creates or updates a recurring duty with its assignees.
// A new duty always starts at not_started regardless of the submitted
// status; status only moves through the confirmation flow.
// PRE: Session belongs to an admin
// POST: duty and its assignment rows are persisted
func ExecuteSaveDuty(ctx context.Context, input SaveDutyInput, deps SaveDutyDeps) (duty.Duty, error) {
	if !input.Session.IsAdmin() {
		return duty.Duty{}, faults.Validation("only administrators can manage duties")
	}

	d := input.Duty
	creating := d.ID == ""
	if creating {
		d.ID = uuid.New().String()
		d.CreatedBy = input.Session.AccountID
		d.CreatedAt = time.Now()
		d.Status = duty.StatusNotStarted
	} else {
		prev, err := deps.DutyStore.GetByID(ctx, d.ID)
		if err != nil {
			return duty.Duty{}, err
		}
		d.CreatedBy = prev.CreatedBy
		d.CreatedAt = prev.CreatedAt
		d.Status = prev.Status
	}

	if err := d.Validate(); err != nil {
		return duty.Duty{}, faults.Validation(err.Error())
	}
	if err := deps.DutyStore.Save(ctx, d); err != nil {
		return duty.Duty{}, err
	}

	slog.Info("duty_saved", "duty_id", d.ID, "name", d.Name,
		"assignees", len(d.AssignedUsers), "created", creating, "by", input.Session.AccountID)
	return d, nil
}

// DeleteDutyInput identifies the duty to remove.
type DeleteDutyInput struct {
	Session account.Session
	DutyID  string
}

// ExecuteDeleteDuty removes a duty and its assignment rows.
// PRE: Session belongs to an admin
// POST: duty no longer exists
func ExecuteDeleteDuty(ctx context.Context, input DeleteDutyInput, deps SaveDutyDeps) error {
	if !input.Session.IsAdmin() {
		return faults.Validation("only administrators can manage duties")
	}
	if _, err := deps.DutyStore.GetByID(ctx, input.DutyID); err != nil {
		return err
	}
	if err := deps.DutyStore.Delete(ctx, input.DutyID); err != nil {
		return err
	}
	slog.Info("duty_deleted", "duty_id", input.DutyID, "by", input.Session.AccountID)
	return nil
}
