package orchestrators

import (
	"context"
	"testing"

	"parish/internal/domain/account"
)

// TestExecuteSeedAdmin_Creates tests bootstrap admin creation.
func TestExecuteSeedAdmin_Creates(t *testing.T) {
	store := newMockAccountStore()
	err := ExecuteSeedAdmin(context.Background(), SeedAdminInput{
		Email:    "admin@parish.test",
		Password: "correct-horse-battery",
		Name:     "Parish Admin",
	}, SeedAdminDeps{AccountStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, err := store.GetByEmail(context.Background(), "admin@parish.test")
	if err != nil {
		t.Fatalf("seeded account missing: %v", err)
	}
	if a.Role != account.RoleAdmin {
		t.Errorf("role = %q, want admin", a.Role)
	}
	if err := a.CheckPassword("correct-horse-battery"); err != nil {
		t.Errorf("seeded password does not verify: %v", err)
	}
}

// TestExecuteSeedAdmin_Idempotent tests that reseeding never overwrites.
func TestExecuteSeedAdmin_Idempotent(t *testing.T) {
	store := newMockAccountStore(seedAccount(t, "admin@parish.test", "original-passphrase", account.RoleAdmin))

	err := ExecuteSeedAdmin(context.Background(), SeedAdminInput{
		Email:    "admin@parish.test",
		Password: "different-passphrase",
	}, SeedAdminDeps{AccountStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, _ := store.GetByEmail(context.Background(), "admin@parish.test")
	if err := a.CheckPassword("original-passphrase"); err != nil {
		t.Error("reseed replaced the existing password")
	}
}

// TestExecuteSeedAdmin_NoCredentials tests the skip when nothing is configured.
func TestExecuteSeedAdmin_NoCredentials(t *testing.T) {
	store := newMockAccountStore()
	if err := ExecuteSeedAdmin(context.Background(), SeedAdminInput{}, SeedAdminDeps{AccountStore: store}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.byEmail) != 0 {
		t.Error("seed without credentials created an account")
	}
}

// TestExecuteSeedAdmin_WeakPassword tests that a short password fails loudly
// instead of seeding an admin nobody can trust.
func TestExecuteSeedAdmin_WeakPassword(t *testing.T) {
	store := newMockAccountStore()
	err := ExecuteSeedAdmin(context.Background(), SeedAdminInput{
		Email:    "admin@parish.test",
		Password: "short",
	}, SeedAdminDeps{AccountStore: store})
	if err == nil {
		t.Fatal("expected error for weak password")
	}
	if len(store.byEmail) != 0 {
		t.Error("weak-password seed still created an account")
	}
}
