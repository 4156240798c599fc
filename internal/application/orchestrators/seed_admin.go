package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"parish/internal/domain/account"
	"parish/internal/domain/faults"
)

// SeedAccountStore defines the account store interface needed by SeedAdmin.
type SeedAccountStore interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// SeedAdminInput carries the bootstrap admin credentials, typically read
// from the environment at startup.
type SeedAdminInput struct {
	Email    string
	Password string
	Name     string
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	AccountStore SeedAccountStore
}

// ExecuteSeedAdmin ensures the bootstrap admin account exists. An existing
// account with the same email is left untouched, including its password, so
// the seed is safe to run on every startup.
// PRE: none
// POST: an admin account with Email exists
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) error {
	if input.Email == "" || input.Password == "" {
		slog.Info("admin_seed_skipped", "reason", "no credentials configured")
		return nil
	}

	existing, err := deps.AccountStore.GetByEmail(ctx, input.Email)
	if err != nil && !faults.IsNotFound(err) {
		return err
	}
	if err == nil {
		slog.Info("admin_seed_skipped", "reason", "account exists", "account_id", existing.ID)
		return nil
	}

	acct := account.Account{
		ID:        uuid.New().String(),
		Email:     input.Email,
		Name:      input.Name,
		Role:      account.RoleAdmin,
		CreatedAt: time.Now(),
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return err
	}
	if err := acct.Validate(); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}

	slog.Info("admin_seeded", "account_id", acct.ID, "email", acct.Email)
	return nil
}
