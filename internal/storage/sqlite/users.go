package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ethan-wit/moving-items/internal/models"
)

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (USERNAME, PASSWORD)
		VALUES (?, ?)
	`

	return s.withCommit(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, user.Username, user.PasswordHash); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
}

// GetUser retrieves a user by username.
func (s *SQLiteStore) GetUser(ctx context.Context, username int64) (*models.User, error) {
	query := `
		SELECT USERNAME, PASSWORD
		FROM users
		WHERE USERNAME = ?
	`

	user := &models.User{}
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&user.Username,
		&user.PasswordHash,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// UsernameExists reports whether a user with the given username is stored.
// It reads the live table on every call so generated candidates are always
// checked against the full current set.
func (s *SQLiteStore) UsernameExists(ctx context.Context, username int64) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM users WHERE USERNAME = ?", username).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}
	return true, nil
}
