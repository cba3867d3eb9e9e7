package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher names accepted by NewHasher.
const (
	HasherSHA256 = "sha256"
	HasherBcrypt = "bcrypt"
)

// Hasher turns a password into the digest kept in the users table.
type Hasher interface {
	// Hash returns the digest to store for password.
	Hash(password string) (string, error)

	// Verify reports whether password produces the stored digest.
	Verify(digest, password string) bool
}

// NewHasher returns the hasher registered under name.
func NewHasher(name string) (Hasher, error) {
	switch name {
	case "", HasherSHA256:
		return SHA256Hasher{}, nil
	case HasherBcrypt:
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher: %q", name)
	}
}

// SHA256Hasher stores the lowercase hex SHA-256 of the password with no salt.
// The same password always yields the same digest.
type SHA256Hasher struct{}

// Hash implements Hasher.
func (SHA256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

// Verify implements Hasher.
func (h SHA256Hasher) Verify(digest, password string) bool {
	got, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(got), []byte(digest)) == 1
}

// BcryptHasher stores salted bcrypt hashes.
type BcryptHasher struct {
	Cost int
}

// Hash implements Hasher.
func (h BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify implements Hasher.
func (BcryptHasher) Verify(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
