package orchestrators

import (
	"context"
	"testing"

	"parish/internal/domain/account"
)

func seedAccount(t *testing.T, email, password, role string) account.Account {
	t.Helper()
	a := account.Account{ID: "acc-001", Email: email, Name: "Test User", Role: role}
	if err := a.SetPassword(password); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	return a
}

// TestExecuteLogin_Success tests a valid sign-in.
func TestExecuteLogin_Success(t *testing.T) {
	store := newMockAccountStore(seedAccount(t, "admin@parish.test", "correct-horse-battery", account.RoleAdmin))

	res, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "  Admin@parish.test ", // normalised before lookup
		Password: "correct-horse-battery",
	}, LoginDeps{AccountStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AccountID != "acc-001" || res.Role != account.RoleAdmin {
		t.Errorf("unexpected result: %+v", res)
	}
}

// TestExecuteLogin_Failures tests that every failure collapses to one error.
func TestExecuteLogin_Failures(t *testing.T) {
	store := newMockAccountStore(seedAccount(t, "admin@parish.test", "correct-horse-battery", account.RoleAdmin))

	tests := []struct {
		name  string
		input LoginInput
	}{
		{"unknown email", LoginInput{Email: "ghost@parish.test", Password: "correct-horse-battery"}},
		{"wrong password", LoginInput{Email: "admin@parish.test", Password: "wrong-horse-battery"}},
		{"empty email", LoginInput{Password: "correct-horse-battery"}},
		{"empty password", LoginInput{Email: "admin@parish.test"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ExecuteLogin(context.Background(), tc.input, LoginDeps{AccountStore: store})
			if err != ErrInvalidCredentials {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}
