package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sevendays/diary-core/internal/model"
)

func TestIdentityService_RegisterAndAuthenticate(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.identity.Register(context.Background(), RegisterParams{
		Email:     "Anna@Example.com",
		Username:  "anna",
		FirstName: "Anna",
		LastName:  "Orlova",
		Password:  "correct-horse",
		Role:      model.UserRoleOwner,
	}, earlyNow())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if user.Email != "anna@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "correct-horse" || user.PasswordHash == "" {
		t.Fatalf("expected password to be hashed")
	}

	got, err := env.identity.Authenticate(context.Background(), "ANNA@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected the registered user back")
	}

	if _, err := env.identity.Authenticate(context.Background(), "anna@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := env.identity.Authenticate(context.Background(), "nobody@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestIdentityService_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.identity.Register(context.Background(), RegisterParams{
		Email:     "client@example.com", // уже занят посевом
		Username:  "client2",
		FirstName: "Pavel",
		LastName:  "Petrov",
		Password:  "correct-horse",
	}, earlyNow())
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestIdentityService_WeakPasswordRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.identity.Register(context.Background(), RegisterParams{
		Email:     "new@example.com",
		Username:  "newbie",
		FirstName: "Ivan",
		LastName:  "Ivanov",
		Password:  "short",
	}, earlyNow())

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields.On("password")) == 0 {
		t.Fatalf("expected password error, got %v", verr.Fields)
	}
}
