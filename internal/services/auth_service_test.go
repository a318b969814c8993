package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/NH-Portal/portal-service/internal/models"
	"github.com/NH-Portal/portal-service/internal/session"
)

func newAuthService(env *testEnv) AuthService {
	return NewAuthService(env.deps.Repo, env.deps.Sessions, env.identity, env.deps.Logger, env.deps.Validator)
}

func TestAuthService_Register(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	account, err := svc.Register(ctx, &models.RegisterRequest{
		ID:          "2101",
		Name:        "Eka",
		Password:    "rahasia1",
		GradeTier:   "SMP",
		ClassNumber: 8,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Self-registration always yields a student account.
	if account.Role != models.RoleStudent {
		t.Errorf("role = %s, want %s", account.Role, models.RoleStudent)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("rahasia1")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
	if !env.identity.Registered("2101") {
		t.Error("identity not mirrored")
	}

	t.Run("duplicate id", func(t *testing.T) {
		_, err := svc.Register(ctx, &models.RegisterRequest{
			ID:          "2101",
			Name:        "Eka",
			Password:    "rahasia1",
			GradeTier:   "SMP",
			ClassNumber: 8,
		})
		if !errors.Is(err, ErrDuplicateAccount) {
			t.Errorf("got %v, want ErrDuplicateAccount", err)
		}
	})
}

func TestAuthService_LoginLogout(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &models.RegisterRequest{
		ID:          "2201",
		Name:        "Fajar",
		Password:    "rahasia1",
		GradeTier:   "SMA",
		ClassNumber: 12,
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	resp, err := svc.Login(ctx, &models.LoginRequest{ID: "2201", Password: "rahasia1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("empty session token")
	}
	if resp.Session.AccountID != "2201" || resp.Session.Role != models.RoleStudent {
		t.Errorf("session = %+v", resp.Session)
	}

	sess, err := env.deps.Sessions.Load(ctx, resp.Token)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sess.AccountID != "2201" {
		t.Errorf("persisted session account = %s", sess.AccountID)
	}

	if err := svc.Logout(ctx, resp.Token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := env.deps.Sessions.Load(ctx, resp.Token); !errors.Is(err, session.ErrNoSession) {
		t.Errorf("session survived logout: %v", err)
	}
}

func TestAuthService_LoginRejections(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &models.RegisterRequest{
		ID:          "2301",
		Name:        "Gita",
		Password:    "rahasia1",
		GradeTier:   "SMK",
		ClassNumber: 10,
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &models.LoginRequest{ID: "2301", Password: "salah"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("got %v, want ErrInvalidCredentials", err)
		}
	})

	// An unknown id and a wrong password are indistinguishable to the caller.
	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Login(ctx, &models.LoginRequest{ID: "9999", Password: "rahasia1"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("got %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		if _, err := svc.Login(ctx, &models.LoginRequest{ID: "2301"}); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestAuthService_SessionExpiry(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &models.RegisterRequest{
		ID:          "2401",
		Name:        "Hana",
		Password:    "rahasia1",
		GradeTier:   "SMA",
		ClassNumber: 11,
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	resp, err := svc.Login(ctx, &models.LoginRequest{ID: "2401", Password: "rahasia1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	env.redis.FastForward(2 * testSessionTTL)

	if _, err := env.deps.Sessions.Load(ctx, resp.Token); !errors.Is(err, session.ErrNoSession) {
		t.Errorf("session survived its ttl: %v", err)
	}
}
