package orchestrators

import (
	"context"
	"log/slog"

	"parish/internal/domain/account"
	"parish/internal/domain/duty"
	"parish/internal/domain/faults"
)

// ConfirmDutyStore defines the duty store interface needed by ConfirmDuty.
type ConfirmDutyStore interface {
	GetByID(ctx context.Context, id string) (duty.Duty, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// ConfirmDutyInput identifies the duty the volunteer is confirming.
type ConfirmDutyInput struct {
	Session account.Session
	DutyID  string
}

// ConfirmDutyDeps holds dependencies for ConfirmDuty.
type ConfirmDutyDeps struct {
	DutyStore ConfirmDutyStore
}

// ExecuteConfirmDuty advances a duty one lifecycle stage on behalf of an
// assigned volunteer. Admins may confirm any duty; volunteers only their
// own. Confirming a completed duty is an error, not a no-op, so the caller
// can tell the volunteer their click changed nothing.
// PRE: Session is authenticated
// POST: duty status advanced one stage
func ExecuteConfirmDuty(ctx context.Context, input ConfirmDutyInput, deps ConfirmDutyDeps) (duty.Duty, error) {
	if !input.Session.IsAuthenticated() {
		return duty.Duty{}, faults.Validation("sign in to confirm a duty")
	}

	d, err := deps.DutyStore.GetByID(ctx, input.DutyID)
	if err != nil {
		return duty.Duty{}, err
	}
	if !input.Session.IsAdmin() && !d.IsAssignedTo(input.Session.AccountID) {
		return duty.Duty{}, faults.Validation("this duty is not assigned to you")
	}

	prev := d.Status
	if err := d.Advance(); err != nil {
		return duty.Duty{}, faults.Validation(err.Error())
	}
	if err := deps.DutyStore.UpdateStatus(ctx, d.ID, d.Status); err != nil {
		return duty.Duty{}, err
	}

	slog.Info("duty_confirmed", "duty_id", d.ID, "from", prev,
		"to", d.Status, "by", input.Session.AccountID)
	return d, nil
}
