package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/ethan-wit/moving-items/internal/models"
)

// memoryStorage is an in-memory UserStorage.
type memoryStorage struct {
	users       map[int64]*models.User
	existsCalls int
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{users: make(map[int64]*models.User)}
}

func (m *memoryStorage) CreateUser(_ context.Context, user *models.User) error {
	if _, ok := m.users[user.Username]; ok {
		return errors.New("duplicate username")
	}
	m.users[user.Username] = user
	return nil
}

func (m *memoryStorage) GetUser(_ context.Context, username int64) (*models.User, error) {
	return m.users[username], nil
}

func (m *memoryStorage) UsernameExists(_ context.Context, username int64) (bool, error) {
	m.existsCalls++
	_, ok := m.users[username]
	return ok, nil
}

// sequence returns a username source yielding values in order.
func sequence(values ...int64) func() int64 {
	i := 0
	return func() int64 {
		v := values[i]
		i++
		return v
	}
}

func TestValidateCredential(t *testing.T) {
	a := NewPasswordAuthenticator(newMemoryStorage(), SHA256Hasher{})

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Abc123!@", false},
		{"valid at max length", "Abcdef12$%", false},
		{"too short", "Ab1!xyz", true},
		{"too long", "Abcdefg12!x", true},
		{"no upper-case", "abc123!@", true},
		{"no lower-case", "ABC123!@", true},
		{"no digit", "Abcdef!@", true},
		{"no special", "Abc12345", true},
		{"special outside the set", "Abc123#@", true},
		{"space", "Abc 123!@", true},
		{"non-ASCII letter", "Äbc123!@", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.ValidateCredential(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCredential(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrWeakPassword) {
				t.Errorf("Expected ErrWeakPassword, got %v", err)
			}
		})
	}
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns an eight-digit username and stores the digest", func(t *testing.T) {
		store := newMemoryStorage()
		a := NewPasswordAuthenticator(store, SHA256Hasher{})

		creds, err := a.Signup(ctx, "Abc123!@")
		if err != nil {
			t.Fatalf("Signup failed: %v", err)
		}
		if creds.Username < minUsername || creds.Username > maxUsername {
			t.Errorf("Username %d is not eight digits", creds.Username)
		}
		if len(creds.UsernameString()) != 8 {
			t.Errorf("UsernameString() = %q", creds.UsernameString())
		}

		user := store.users[creds.Username]
		if user == nil {
			t.Fatal("Expected user to be stored")
		}
		want, _ := SHA256Hasher{}.Hash("Abc123!@")
		if user.PasswordHash != want {
			t.Errorf("PasswordHash = %s, want %s", user.PasswordHash, want)
		}
	})

	t.Run("re-rolls until the username is free", func(t *testing.T) {
		store := newMemoryStorage()
		store.users[12345678] = &models.User{Username: 12345678}
		store.users[23456789] = &models.User{Username: 23456789}

		a := NewPasswordAuthenticator(store, SHA256Hasher{})
		a.nextUsername = sequence(12345678, 23456789, 12345678, 34567890)

		creds, err := a.Signup(ctx, "Abc123!@")
		if err != nil {
			t.Fatalf("Signup failed: %v", err)
		}
		if creds.Username != 34567890 {
			t.Errorf("Username = %d, want 34567890", creds.Username)
		}
		if store.existsCalls != 4 {
			t.Errorf("UsernameExists called %d times, want 4", store.existsCalls)
		}
	})

	t.Run("many signups never share a username", func(t *testing.T) {
		store := newMemoryStorage()
		a := NewPasswordAuthenticator(store, SHA256Hasher{})

		seen := make(map[int64]bool)
		for i := 0; i < 200; i++ {
			creds, err := a.Signup(ctx, "Abc123!@")
			if err != nil {
				t.Fatalf("Signup %d failed: %v", i, err)
			}
			if seen[creds.Username] {
				t.Fatalf("Username %d assigned twice", creds.Username)
			}
			seen[creds.Username] = true
		}
	})

	t.Run("weak password stores nothing", func(t *testing.T) {
		store := newMemoryStorage()
		a := NewPasswordAuthenticator(store, SHA256Hasher{})

		_, err := a.Signup(ctx, "password")
		if !errors.Is(err, ErrWeakPassword) {
			t.Errorf("Expected ErrWeakPassword, got %v", err)
		}
		if len(store.users) != 0 {
			t.Errorf("Expected no users, got %d", len(store.users))
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	for _, hasherName := range []string{HasherSHA256, HasherBcrypt} {
		t.Run(hasherName, func(t *testing.T) {
			hasher, err := NewHasher(hasherName)
			if err != nil {
				t.Fatalf("NewHasher failed: %v", err)
			}
			store := newMemoryStorage()
			a := NewPasswordAuthenticator(store, hasher)

			creds, err := a.Signup(ctx, "Abc123!@")
			if err != nil {
				t.Fatalf("Signup failed: %v", err)
			}

			session, err := a.Login(ctx, creds.UsernameString(), creds.Password)
			if err != nil {
				t.Fatalf("Login failed: %v", err)
			}
			if session.UserID != creds.Username {
				t.Errorf("UserID = %d, want %d", session.UserID, creds.Username)
			}
			if session.ID == "" {
				t.Error("Expected session ID")
			}

			if _, err := a.Login(ctx, creds.UsernameString(), "Abc123!#"); !errors.Is(err, ErrPasswordMismatch) {
				t.Errorf("Expected ErrPasswordMismatch, got %v", err)
			}
			if _, err := a.Login(ctx, "87654321", creds.Password); !errors.Is(err, ErrUserNotFound) {
				t.Errorf("Expected ErrUserNotFound, got %v", err)
			}
			if _, err := a.Login(ctx, "not-a-number", creds.Password); !errors.Is(err, ErrUserNotFound) {
				t.Errorf("Expected ErrUserNotFound for non-numeric username, got %v", err)
			}
		})
	}

	t.Run("another account's password does not open this account", func(t *testing.T) {
		store := newMemoryStorage()
		a := NewPasswordAuthenticator(store, SHA256Hasher{})
		a.nextUsername = sequence(11111111, 22222222)

		first, err := a.Signup(ctx, "Abc123!@")
		if err != nil {
			t.Fatalf("Signup failed: %v", err)
		}
		second, err := a.Signup(ctx, "Xyz789$%")
		if err != nil {
			t.Fatalf("Signup failed: %v", err)
		}

		if _, err := a.Login(ctx, first.UsernameString(), second.Password); !errors.Is(err, ErrPasswordMismatch) {
			t.Errorf("Expected ErrPasswordMismatch, got %v", err)
		}
	})
}
