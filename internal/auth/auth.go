// Package auth provides local credential verification for the store console.
//
// Passwords are stored as bcrypt hashes. Rows holding a legacy plaintext
// password are still accepted once and upgraded to a hash on successful
// login, so an old database file keeps working.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mshakhov/discstore/internal/models"
	"github.com/mshakhov/discstore/internal/repositories"
	"github.com/mshakhov/discstore/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// Session is the authenticated identity of the running console. One session
// is active at a time.
type Session struct {
	ID       string
	UserID   int64
	Username string
	Role     models.Role
}

// IsAdmin reports whether the session belongs to an administrator.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

// Authenticator verifies credentials against the user repository.
type Authenticator struct {
	users  *repositories.UserRepository
	cost   int
	logger *log.Logger
}

// NewAuthenticator creates an [Authenticator]. A non-positive cost selects
// the bcrypt default.
func NewAuthenticator(users *repositories.UserRepository, cost int, logger *log.Logger) *Authenticator {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Authenticator{users: users, cost: cost, logger: logger}
}

// Login verifies the given credentials and returns a new [Session].
// Unknown usernames and wrong passwords both yield [shared.ErrAuthFailed].
func (a *Authenticator) Login(username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, shared.ErrAuthFailed
	}

	user, err := a.users.GetByUsername(username)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.ErrAuthFailed
	}
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if !a.verify(user, password) {
		return nil, shared.ErrAuthFailed
	}

	return &Session{
		ID:       shared.GenerateID(),
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// verify checks the password against the stored hash. A legacy plaintext row
// is compared in constant time and upgraded to a bcrypt hash on success.
func (a *Authenticator) verify(user *models.User, password string) bool {
	stored := user.PasswordHash

	if isPasswordHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return false
	}

	hash, err := a.HashPassword(password)
	if err == nil {
		if err := a.users.UpdatePasswordHash(user.ID, hash); err != nil {
			a.logger.Warn("could not upgrade legacy password", "user", user.Username, "err", err)
		}
	}
	return true
}

// HashPassword hashes a plaintext password with the configured cost.
func (a *Authenticator) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// SeedDefaults creates the default admin and user accounts for any role that
// has no account yet. The checks are independent, so a store that lost only
// one of the two gets just that one back.
func (a *Authenticator) SeedDefaults(cfg shared.AuthConfig) error {
	seeds := []struct {
		role     models.Role
		username string
		password string
	}{
		{models.RoleAdmin, cfg.DefaultAdmin, cfg.DefaultAdminPwd},
		{models.RoleUser, cfg.DefaultUser, cfg.DefaultUserPwd},
	}

	for _, seed := range seeds {
		count, err := a.users.CountByRole(seed.role)
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		hash, err := a.HashPassword(seed.password)
		if err != nil {
			return fmt.Errorf("failed to hash default password: %w", err)
		}

		user := &models.User{Username: seed.username, PasswordHash: hash, Role: seed.role}
		if err := a.users.Create(user); err != nil {
			return err
		}
		a.logger.Info("created default account", "username", seed.username, "role", seed.role)
	}

	return nil
}

func isPasswordHash(value string) bool {
	return strings.HasPrefix(value, "$2a$") || strings.HasPrefix(value, "$2b$") || strings.HasPrefix(value, "$2y$")
}
