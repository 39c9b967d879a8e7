package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/mshakhov/discstore/internal/models"
	"github.com/mshakhov/discstore/internal/repositories"
	"github.com/mshakhov/discstore/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

func setupAuth(t *testing.T) (*Authenticator, *repositories.UserRepository) {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	users := repositories.NewUserRepository(db)
	return NewAuthenticator(users, bcrypt.MinCost, shared.NewLogger(nil)), users
}

func defaultAccounts() shared.AuthConfig {
	return shared.AuthConfig{
		DefaultAdmin:    "admin",
		DefaultAdminPwd: "admin",
		DefaultUser:     "user",
		DefaultUserPwd:  "user",
	}
}

func TestLogin(t *testing.T) {
	authn, _ := setupAuth(t)
	if err := authn.SeedDefaults(defaultAccounts()); err != nil {
		t.Fatalf("failed to seed defaults: %v", err)
	}

	t.Run("AdminCredentials", func(t *testing.T) {
		session, err := authn.Login("admin", "admin")
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if !session.IsAdmin() {
			t.Error("admin session should report IsAdmin")
		}
		if session.ID == "" {
			t.Error("session ID should be set")
		}
	})

	t.Run("UserCredentials", func(t *testing.T) {
		session, err := authn.Login("user", "user")
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if session.IsAdmin() {
			t.Error("user session should not report IsAdmin")
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := authn.Login("admin", "wrong")
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
	})

	t.Run("UnknownUsername", func(t *testing.T) {
		_, err := authn.Login("ghost", "whatever")
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
	})

	t.Run("EmptyCredentials", func(t *testing.T) {
		if _, err := authn.Login("", "admin"); !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed for empty username, got %v", err)
		}
		if _, err := authn.Login("admin", ""); !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed for empty password, got %v", err)
		}
	})

	t.Run("UsernameIsTrimmed", func(t *testing.T) {
		if _, err := authn.Login("  admin  ", "admin"); err != nil {
			t.Errorf("trimmed login failed: %v", err)
		}
	})
}

func TestLegacyPasswordUpgrade(t *testing.T) {
	authn, users := setupAuth(t)

	legacy := &models.User{Username: "olduser", PasswordHash: "secret", Role: models.RoleUser}
	if err := users.Create(legacy); err != nil {
		t.Fatalf("failed to create legacy user: %v", err)
	}

	if _, err := authn.Login("olduser", "secret"); err != nil {
		t.Fatalf("legacy login failed: %v", err)
	}

	upgraded, err := users.GetByUsername("olduser")
	if err != nil {
		t.Fatalf("failed to get user: %v", err)
	}
	if !strings.HasPrefix(upgraded.PasswordHash, "$2") {
		t.Errorf("expected password upgraded to bcrypt, got %q", upgraded.PasswordHash)
	}

	// The upgraded hash must keep working, and the old wrong value must not.
	if _, err := authn.Login("olduser", "secret"); err != nil {
		t.Errorf("login after upgrade failed: %v", err)
	}
	if _, err := authn.Login("olduser", upgraded.PasswordHash); !errors.Is(err, shared.ErrAuthFailed) {
		t.Errorf("hash itself must not be a valid password, got %v", err)
	}
}

func TestSeedDefaults(t *testing.T) {
	t.Run("CreatesBothRoles", func(t *testing.T) {
		authn, users := setupAuth(t)
		if err := authn.SeedDefaults(defaultAccounts()); err != nil {
			t.Fatalf("failed to seed defaults: %v", err)
		}

		for _, role := range []models.Role{models.RoleAdmin, models.RoleUser} {
			count, err := users.CountByRole(role)
			if err != nil {
				t.Fatalf("failed to count %s: %v", role, err)
			}
			if count != 1 {
				t.Errorf("expected 1 %s account, got %d", role, count)
			}
		}
	})

	t.Run("SkipsOccupiedRole", func(t *testing.T) {
		authn, users := setupAuth(t)

		existing := &models.User{Username: "boss", PasswordHash: "h", Role: models.RoleAdmin}
		if err := users.Create(existing); err != nil {
			t.Fatalf("failed to create admin: %v", err)
		}

		if err := authn.SeedDefaults(defaultAccounts()); err != nil {
			t.Fatalf("failed to seed defaults: %v", err)
		}

		if _, err := users.GetByUsername("admin"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("default admin should not be created when one exists, got %v", err)
		}
		if _, err := users.GetByUsername("user"); err != nil {
			t.Errorf("default user should still be created: %v", err)
		}
	})

	t.Run("Rerun", func(t *testing.T) {
		authn, users := setupAuth(t)
		if err := authn.SeedDefaults(defaultAccounts()); err != nil {
			t.Fatalf("first seed failed: %v", err)
		}
		if err := authn.SeedDefaults(defaultAccounts()); err != nil {
			t.Fatalf("second seed failed: %v", err)
		}

		count, err := users.CountByRole(models.RoleAdmin)
		if err != nil {
			t.Fatalf("failed to count admins: %v", err)
		}
		if count != 1 {
			t.Errorf("expected seeding to stay idempotent, got %d admins", count)
		}
	})
}
