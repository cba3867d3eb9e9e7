package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ethan-wit/moving-items/internal/auth"
	"github.com/ethan-wit/moving-items/internal/metrics"
)

// AuthService runs signup and login with logging and metrics around the authenticator.
type AuthService struct {
	authenticator auth.Authenticator
	metrics       *metrics.Recorder
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, recorder *metrics.Recorder, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		metrics:       recorder,
		logger:        logger,
	}
}

// ValidatePassword checks a candidate password against the password policy.
func (s *AuthService) ValidatePassword(password string) error {
	return s.authenticator.ValidateCredential(password)
}

// Signup creates a new account and returns its credentials.
func (s *AuthService) Signup(ctx context.Context, password string) (*auth.Credentials, error) {
	s.logger.Debug("Signup request")

	creds, err := s.authenticator.Signup(ctx, password)
	s.metrics.ObserveAuth("signup", err)
	if err != nil {
		if errors.Is(err, auth.ErrWeakPassword) {
			s.logger.Warn("Signup rejected", "error", err)
		} else {
			s.logger.Error("Signup failed", "error", err)
		}
		return nil, err
	}

	s.logger.Info("User signed up", "user_id", creds.Username)
	return creds, nil
}

// Login authenticates a user and opens a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*auth.Session, error) {
	s.logger.Debug("Login request", "username", username)

	session, err := s.authenticator.Login(ctx, username, password)
	s.metrics.ObserveAuth("login", err)
	if err != nil {
		s.logger.Warn("Login failed", "username", username, "error", err)
		return nil, err
	}

	s.logger.Info("User logged in", "user_id", session.UserID, "session_id", session.ID)
	return session, nil
}
