package auth

import (
	"context"
	"strconv"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping the credential scheme without changing
// the service or CLI code.
type Authenticator interface {
	// Signup creates a new account with a generated username and returns the
	// credentials needed to log in to it.
	Signup(ctx context.Context, credential string) (*Credentials, error)

	// Login verifies the username and credential and opens a session.
	Login(ctx context.Context, username, credential string) (*Session, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}

// Credentials is what signup hands back so the operator can log in straight away.
// The plaintext password lives only in this value; it is never stored.
type Credentials struct {
	Username int64
	Password string
}

// UsernameString returns the username as the operator types it.
func (c *Credentials) UsernameString() string {
	return strconv.FormatInt(c.Username, 10)
}

// Session is a verified login. Every item operation is scoped to UserID.
type Session struct {
	// ID identifies this login in logs.
	ID string

	// UserID is the verified username.
	UserID int64
}
