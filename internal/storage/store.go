// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/ethan-wit/moving-items/internal/models"
)

// ErrItemNotFound is returned when an item name does not resolve to a stored item,
// or when the user has no row for that item.
var ErrItemNotFound = errors.New("item not found")

// UserStore defines the user credential operations used during signup and login.
type UserStore interface {
	// CreateUser persists a new user. The username must not already exist.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by username.
	// Returns nil and no error if the user does not exist.
	GetUser(ctx context.Context, username int64) (*models.User, error)

	// UsernameExists reports whether username is already taken.
	UsernameExists(ctx context.Context, username int64) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}

// ItemStore defines the item bookkeeping operations, each scoped to one user.
// This abstraction allows swapping storage backends without changing the service layer.
type ItemStore interface {
	// GetItem resolves an item name to its items row.
	// Returns ErrItemNotFound if no item has that name.
	GetItem(ctx context.Context, name string) (*models.Item, error)

	// CreateUserItem records name for the user with both quantities.
	// The item row is reused if the name already exists, and an existing
	// row for the same (user, item) pair is overwritten.
	CreateUserItem(ctx context.Context, userID int64, name string, desired, quantity int) (*models.UserItem, error)

	// ListUserItems returns every item the user has recorded.
	ListUserItems(ctx context.Context, userID int64) ([]*models.UserItem, error)

	// GetUserItem returns the user's row for one item.
	GetUserItem(ctx context.Context, userID int64, name string) (*models.UserItem, error)

	// UpdateDesiredQuantity sets DESIRED_QUANTITY on the user's row for name.
	UpdateDesiredQuantity(ctx context.Context, userID int64, name string, desired int) error

	// UpdateQuantity sets QUANTITY on the user's row for name.
	UpdateQuantity(ctx context.Context, userID int64, name string, quantity int) error

	// ClearQuantities sets QUANTITY to zero on every row the user owns
	// and returns the number of rows touched.
	ClearQuantities(ctx context.Context, userID int64) (int64, error)

	// DeleteUserItem removes the user's row for name. The shared item row is kept.
	DeleteUserItem(ctx context.Context, userID int64, name string) error

	// Close releases any resources held by the store.
	Close() error
}
