package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-bookstore-api/internal/core/auth"
	"go-bookstore-api/internal/domain"
	"go-bookstore-api/internal/repo"
)

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()
	db := openTestDB(t)
	jwter := &auth.JWTer{Secret: []byte("s3cret"), Issuer: "bookstore-test", TTL: time.Minute}
	return NewAuthService(repo.NewUserRepo(db), jwter)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "carol", "pw123456")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Role != domain.RoleUser {
		t.Errorf("role = %q, want User", u.Role)
	}
	if u.PasswordHash == "pw123456" {
		t.Error("password stored in plaintext")
	}

	tok, err := svc.Login(ctx, "carol", "pw123456")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok == "" {
		t.Error("empty token")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "carol", "pw123456"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, "carol", "other"); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Errorf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "carol", "pw123456"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Login(ctx, "carol", "wrong"); !errors.Is(err, domain.ErrUnknownUser) {
		t.Errorf("wrong password: err = %v, want ErrUnknownUser", err)
	}
	if _, err := svc.Login(ctx, "nobody", "pw123456"); !errors.Is(err, domain.ErrUnknownUser) {
		t.Errorf("unknown user: err = %v, want ErrUnknownUser", err)
	}
}
