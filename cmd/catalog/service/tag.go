package service

import (
	"context"
	"strings"

	"github.com/pashadev/cadvault/cmd/catalog/models"
	"github.com/pashadev/cadvault/common/errs"
	"github.com/pashadev/cadvault/common/logger"
)

// TagRepository is what TagService needs from the persistence layer
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	ListForOwner(ctx context.Context, ownerID int64, assignedOnly bool) ([]models.Tag, error)
}

// TagService manages a user's tags
type TagService struct {
	repo TagRepository
	log  *logger.Logger
}

// NewTagService creates a new tag service
func NewTagService(repo TagRepository, log *logger.Logger) *TagService {
	return &TagService{repo: repo, log: log}
}

// List returns the caller's tags, newest label first
func (s *TagService) List(ctx context.Context, ownerID int64, assignedOnly bool) ([]models.Tag, error) {
	tags, err := s.repo.ListForOwner(ctx, ownerID, assignedOnly)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	return tags, nil
}

// Create stamps the caller as owner and persists the tag
func (s *TagService) Create(ctx context.Context, ownerID int64, name string) (*models.Tag, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewValidation("name", "must not be empty")
	}

	tag := &models.Tag{OwnerID: ownerID, Name: name}
	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, err
	}

	s.log.Info("tag created", "tag_id", tag.ID, "user_id", ownerID)
	return tag, nil
}
