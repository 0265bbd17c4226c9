package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("sara", "sara@example.com", "plaintext-secret", "Sara Lim", "member")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Username != "sara" {
		t.Errorf("Expected username sara, got %s", user.Username)
	}

	if user.Password != "plaintext-secret" {
		t.Error("Expected plaintext password to be carried for hashing")
	}

	if user.HashedPassword != "" {
		t.Error("Expected no hashed password before hashing")
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Email is optional (seeded accounts may not have one).
	if _, err := NewUser("admin", "", "secret", "Project Manager", "project_manager"); err != nil {
		t.Errorf("Expected no error for empty email, got %v", err)
	}

	// Username and password are not.
	if _, err := NewUser("", "a@b.c", "secret", "", ""); err != ErrEmptyUsername {
		t.Errorf("Expected error %v, got %v", ErrEmptyUsername, err)
	}

	if _, err := NewUser("sara", "a@b.c", "", "", ""); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
}

func TestUserValidate(t *testing.T) {
	validUser := User{
		ID:             uuid.New(),
		Username:       "sara",
		HashedPassword: "hashedpassword123",
	}

	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalidUser := validUser
	invalidUser.ID = uuid.Nil
	if err := invalidUser.Validate(); err != ErrEmptyUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserID, err)
	}

	invalidUser = validUser
	invalidUser.Username = ""
	if err := invalidUser.Validate(); err != ErrEmptyUsername {
		t.Errorf("Expected error %v, got %v", ErrEmptyUsername, err)
	}

	invalidUser = validUser
	invalidUser.HashedPassword = ""
	if err := invalidUser.Validate(); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
}
