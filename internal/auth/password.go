package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ethan-wit/moving-items/internal/models"
)

var (
	ErrWeakPassword     = errors.New("password must be 8-10 characters and include an upper-case letter, a lower-case letter, a number, and one of " + SpecialCharacters)
	ErrUserNotFound     = errors.New("matching username not found")
	ErrPasswordMismatch = errors.New("matching password not found")
)

// SpecialCharacters is the set a password must draw at least one character from.
const SpecialCharacters = "@$!%*?&"

const (
	minPasswordLength = 8
	maxPasswordLength = 10
)

// UserStorage defines the interface for user persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, username int64) (*models.User, error)
	UsernameExists(ctx context.Context, username int64) (bool, error)
}

var _ Authenticator = (*PasswordAuthenticator)(nil)

// PasswordAuthenticator implements password-based authentication.
type PasswordAuthenticator struct {
	storage      UserStorage
	hasher       Hasher
	nextUsername func() int64
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage, hasher Hasher) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage:      storage,
		hasher:       hasher,
		nextUsername: randomUsername,
	}
}

// ValidateCredential checks the password policy: 8-10 characters drawn only
// from letters, digits and SpecialCharacters, with at least one of each of
// upper-case, lower-case, digit and special.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < minPasswordLength || len(credential) > maxPasswordLength {
		return ErrWeakPassword
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range credential {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(SpecialCharacters, r):
			hasSpecial = true
		default:
			return ErrWeakPassword
		}
	}

	if !hasLower || !hasUpper || !hasDigit || !hasSpecial {
		return ErrWeakPassword
	}
	return nil
}

// Signup creates a user with a generated username and the digest of credential.
func (a *PasswordAuthenticator) Signup(ctx context.Context, credential string) (*Credentials, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	username, err := a.uniqueUsername(ctx)
	if err != nil {
		return nil, err
	}

	digest, err := a.hasher.Hash(credential)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: digest,
	}
	if err := a.storage.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &Credentials{Username: username, Password: credential}, nil
}

// Login looks the username up once and compares the password against that row only.
func (a *PasswordAuthenticator) Login(ctx context.Context, username, credential string) (*Session, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(username), 10, 64)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user, err := a.storage.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if !a.hasher.Verify(user.PasswordHash, credential) {
		return nil, ErrPasswordMismatch
	}

	return &Session{
		ID:     uuid.New().String(),
		UserID: user.Username,
	}, nil
}
