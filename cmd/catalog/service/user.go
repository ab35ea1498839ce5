package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pashadev/cadvault/cmd/catalog/models"
	"github.com/pashadev/cadvault/common/errs"
	"github.com/pashadev/cadvault/common/logger"
)

// UserRepository is what UserService needs from the persistence layer
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserService handles account creation and lookup
type UserService struct {
	repo UserRepository
	log  *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(repo UserRepository, log *logger.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// Register creates a regular account
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	user, err := models.NewUser(email, password)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user registered", "user_id", user.ID)
	return user, nil
}

// GetByID loads an account by id
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// EnsureAdmin creates the bootstrap superuser once. Safe to call on every
// startup; an existing account with the same email is left untouched.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return fmt.Errorf("check admin account: %w", err)
	}

	admin, err := models.NewSuperuser(email, password)
	if err != nil {
		return fmt.Errorf("invalid admin credentials: %w", err)
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}

	s.log.Info("bootstrap superuser created", "user_id", admin.ID)
	return nil
}
