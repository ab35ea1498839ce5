package service

import (
	"context"
	"strings"

	"github.com/pashadev/cadvault/cmd/catalog/models"
	"github.com/pashadev/cadvault/common/errs"
	"github.com/pashadev/cadvault/common/logger"
)

// FileTypeRepository is what FileTypeService needs from the persistence layer
type FileTypeRepository interface {
	Create(ctx context.Context, fileType *models.FileType) error
	ListForOwner(ctx context.Context, ownerID int64, assignedOnly bool) ([]models.FileType, error)
}

// FileTypeService manages a user's file types
type FileTypeService struct {
	repo FileTypeRepository
	log  *logger.Logger
}

// NewFileTypeService creates a new file type service
func NewFileTypeService(repo FileTypeRepository, log *logger.Logger) *FileTypeService {
	return &FileTypeService{repo: repo, log: log}
}

// List returns the caller's file types, label descending
func (s *FileTypeService) List(ctx context.Context, ownerID int64, assignedOnly bool) ([]models.FileType, error) {
	fileTypes, err := s.repo.ListForOwner(ctx, ownerID, assignedOnly)
	if err != nil {
		return nil, err
	}
	if fileTypes == nil {
		fileTypes = []models.FileType{}
	}
	return fileTypes, nil
}

// Create stamps the caller as owner and persists the file type
func (s *FileTypeService) Create(ctx context.Context, ownerID int64, label string) (*models.FileType, error) {
	if strings.TrimSpace(label) == "" {
		return nil, errs.NewValidation("type", "must not be empty")
	}

	fileType := &models.FileType{OwnerID: ownerID, Type: label}
	if err := s.repo.Create(ctx, fileType); err != nil {
		return nil, err
	}

	s.log.Info("file type created", "file_type_id", fileType.ID, "user_id", ownerID)
	return fileType, nil
}
