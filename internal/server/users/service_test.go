package users

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/dmitrijs2005/notekeeper/internal/server/config"
)

type testLogger struct{}

func (testLogger) Debug(context.Context, string, ...any) {}
func (testLogger) Info(context.Context, string, ...any)  {}
func (testLogger) Warn(context.Context, string, ...any)  {}
func (testLogger) Error(context.Context, string, ...any) {}
func (l testLogger) With(...any) logging.Logger          { return l }

func newTestService(t *testing.T, username, password string) *Service {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.AccessTokenValidityDuration = time.Hour

	repo := NewSeededRepository(&User{Username: username, PasswordHash: hash})
	return NewService(repo, cfg, testLogger{})
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	s := newTestService(t, "testuser", "testpassword")

	token, err := s.Login(context.Background(), "testuser", "testpassword")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	user, err := s.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if user.Username != "testuser" {
		t.Fatalf("resolved username mismatch: got %q", user.Username)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	s := newTestService(t, "testuser", "testpassword")

	_, err := s.Login(context.Background(), "testuser", "wrongpassword")
	if err != common.ErrUnauthorized {
		t.Fatalf("expected common.ErrUnauthorized, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Parallel()

	s := newTestService(t, "testuser", "testpassword")

	_, err := s.Login(context.Background(), "nobody", "testpassword")
	if err != common.ErrUnauthorized {
		t.Fatalf("expected common.ErrUnauthorized, got %v", err)
	}
}

func TestResolve_GarbageToken(t *testing.T) {
	t.Parallel()

	s := newTestService(t, "testuser", "testpassword")

	_, err := s.Resolve(context.Background(), "not-a-token")
	if err != common.ErrUnauthorized {
		t.Fatalf("expected common.ErrUnauthorized, got %v", err)
	}
}

func TestResolve_UnknownSubject(t *testing.T) {
	t.Parallel()

	s := newTestService(t, "testuser", "testpassword")

	// A structurally valid token whose subject was never seeded must be
	// indistinguishable from a forged one.
	token, err := auth.GenerateToken("ghost", []byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = s.Resolve(context.Background(), token)
	if err != common.ErrUnauthorized {
		t.Fatalf("expected common.ErrUnauthorized, got %v", err)
	}
}

func TestResolve_ExpiredToken(t *testing.T) {
	t.Parallel()

	s := newTestService(t, "testuser", "testpassword")

	token, err := auth.GenerateToken("testuser", []byte("test-secret"), -1*time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = s.Resolve(context.Background(), token)
	if err != common.ErrUnauthorized {
		t.Fatalf("expected common.ErrUnauthorized, got %v", err)
	}
}

func TestSeededRepository_Find(t *testing.T) {
	t.Parallel()

	repo := NewSeededRepository(&User{Username: "a", PasswordHash: "h"})

	u, err := repo.Find(context.Background(), "a")
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if u.PasswordHash != "h" {
		t.Fatalf("unexpected record: %+v", u)
	}

	if _, err := repo.Find(context.Background(), "b"); err != common.ErrNotFound {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}
