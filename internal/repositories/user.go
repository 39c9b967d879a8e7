package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mshakhov/discstore/internal/models"
	"github.com/mshakhov/discstore/internal/shared"
)

// UserRepository handles [models.User] persistence.
//
// Accounts are created at store initialization and never exposed to the menu,
// so there are no update or delete operations besides the password upgrade
// hook used by the authentication layer.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new [UserRepository] with the given database connection
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets its generated id.
func (r *UserRepository) Create(user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO users (username, password_hash, role, created_at) VALUES (?, ?, ?, ?)
	`

	result, err := r.db.Exec(query, user.Username, user.PasswordHash, string(user.Role), time.Now())
	if err != nil {
		return wrapExecError(err, "insert user")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetByUsername retrieves a user by its unique username.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	query := `
		SELECT user_id, username, password_hash, role, created_at
		FROM users
		WHERE username = ?
	`

	var (
		user models.User
		role string
	)

	err := r.db.QueryRow(query, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &role, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %q", shared.ErrNotFound, username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	user.Role = models.Role(role)
	return &user, nil
}

// CountByRole returns how many accounts exist with the given role.
func (r *UserRepository) CountByRole(role models.Role) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM users WHERE role = ?", string(role)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// UpdatePasswordHash replaces the stored hash for one account. Used by the
// authentication layer to upgrade legacy plaintext rows.
func (r *UserRepository) UpdatePasswordHash(id int64, hash string) error {
	result, err := r.db.Exec("UPDATE users SET password_hash = ? WHERE user_id = ?", hash, id)
	if err != nil {
		return wrapExecError(err, "update password hash")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: user %d", shared.ErrNotFound, id)
	}

	return nil
}
