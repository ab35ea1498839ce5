package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pashadev/cadvault/cmd/catalog/models"
	"github.com/pashadev/cadvault/common/errs"
	"github.com/pashadev/cadvault/common/logger"
)

// TokenStore maps opaque session tokens to user ids with expiry.
// Satisfied by the Redis client.
type TokenStore interface {
	StoreToken(ctx context.Context, token string, userID int64, ttl time.Duration) error
	LookupToken(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
}

// AuthService issues and resolves session tokens
type AuthService struct {
	users  UserRepository
	tokens TokenStore
	ttl    time.Duration
	log    *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users UserRepository, tokens TokenStore, ttl time.Duration, log *logger.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		ttl:    ttl,
		log:    log,
	}
}

// IssueToken verifies credentials and returns a fresh session token.
// Invalid credentials produce a field-keyed validation error so the caller
// cannot distinguish a missing account from a wrong password.
func (s *AuthService) IssueToken(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", invalidCredentials()
		}
		return "", fmt.Errorf("load account: %w", err)
	}

	if !user.IsActive || !user.CheckPassword(password) {
		return "", invalidCredentials()
	}

	token := uuid.NewString()
	if err := s.tokens.StoreToken(ctx, token, user.ID, s.ttl); err != nil {
		return "", fmt.Errorf("store session token: %w", err)
	}

	s.log.Info("session token issued", "user_id", user.ID)
	return token, nil
}

// Authenticate resolves a session token to its user
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.LookupToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			// Account deleted while the token was still live
			return nil, errs.ErrUnauthorized
		}
		return nil, fmt.Errorf("load account: %w", err)
	}

	if !user.IsActive {
		return nil, errs.ErrUnauthorized
	}

	return user, nil
}

// Revoke invalidates a session token
func (s *AuthService) Revoke(ctx context.Context, token string) error {
	return s.tokens.RevokeToken(ctx, token)
}

func invalidCredentials() error {
	return errs.NewValidation("non_field_errors", "unable to authenticate with provided credentials")
}
