package account

import (
	"strings"
	"testing"
)

// TestAccount_Validate tests account validation rules.
func TestAccount_Validate(t *testing.T) {
	valid := Account{
		ID:    "a1",
		Email: "admin@stmarys.org.nz",
		Name:  "Parish Admin",
		Role:  RoleAdmin,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid account, got: %v", err)
	}

	// 254 characters is the limit itself, not past it.
	atLimit := valid
	atLimit.Email = strings.Repeat("x", 250) + "@a.b"
	if err := atLimit.Validate(); err != nil {
		t.Fatalf("expected email at the length limit to validate, got: %v", err)
	}

	tests := []struct {
		name   string
		modify func(a *Account)
		want   string
	}{
		{"empty email", func(a *Account) { a.Email = "" }, "email cannot be empty"},
		{"email without at", func(a *Account) { a.Email = "not-an-email" }, "must contain"},
		{"email too long", func(a *Account) { a.Email = strings.Repeat("x", 251) + "@a.b" }, "cannot exceed"},
		{"invalid role", func(a *Account) { a.Role = "deacon" }, "role must be one of"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := valid
			tc.modify(&a)
			err := a.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got: %v", tc.want, err)
			}
		})
	}
}

// TestAccount_Password tests the hash/check round trip.
func TestAccount_Password(t *testing.T) {
	var a Account
	if err := a.SetPassword(""); err != ErrEmptyPassword {
		t.Fatalf("expected ErrEmptyPassword, got: %v", err)
	}
	if err := a.SetPassword("short"); err != ErrPasswordTooShort {
		t.Fatalf("expected ErrPasswordTooShort, got: %v", err)
	}
	if err := a.SetPassword("correct horse battery"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	if a.PasswordHash == "" || a.PasswordHash == "correct horse battery" {
		t.Fatal("password hash not set or stored in plaintext")
	}
	if err := a.CheckPassword("correct horse battery"); err != nil {
		t.Fatalf("expected password to match, got: %v", err)
	}
	if err := a.CheckPassword("wrong password!"); err != ErrWrongPassword {
		t.Fatalf("expected ErrWrongPassword, got: %v", err)
	}
}

// TestSession_Roles tests session role helpers.
func TestSession_Roles(t *testing.T) {
	if (Session{}).IsAuthenticated() {
		t.Fatal("zero session should not be authenticated")
	}
	s := Session{AccountID: "a1", Role: RoleVolunteer}
	if !s.IsAuthenticated() || s.IsAdmin() {
		t.Fatal("volunteer session misclassified")
	}
	if !(Session{AccountID: "a2", Role: RoleAdmin}).IsAdmin() {
		t.Fatal("admin session not recognised")
	}
}
