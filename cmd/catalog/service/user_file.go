package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/pashadev/cadvault/cmd/catalog/models"
	"github.com/pashadev/cadvault/common/errs"
	"github.com/pashadev/cadvault/common/logger"
	"github.com/pashadev/cadvault/common/storage"
)

// UserFileRepository is what UserFileService needs from the persistence layer
type UserFileRepository interface {
	Create(ctx context.Context, file *models.UserFile) error
	ListForOwner(ctx context.Context, ownerID int64, tagIDs, fileTypeIDs []int64) ([]*models.UserFile, error)
	GetForOwner(ctx context.Context, ownerID, id int64) (*models.UserFile, error)
	Update(ctx context.Context, file *models.UserFile) error
	SetFile(ctx context.Context, ownerID, id int64, key string) (*string, error)
	Delete(ctx context.Context, ownerID, id int64) (*string, error)
}

// UserFileInput is the flat write payload for create and update operations.
// Tag and file type links are bare id lists, matching the flat shape.
type UserFileInput struct {
	Title     string      `json:"title"`
	CreatedOn models.Date `json:"created_on"`
	Link      *string     `json:"link"`
	Tags      []int64     `json:"tags"`
	FileTypes []int64     `json:"file_types"`
}

// ListFilter restricts a user file list. A nil id set means "no filter";
// within each set the semantics are OR, between the two sets AND.
type ListFilter struct {
	TagIDs      []int64
	FileTypeIDs []int64
}

// UserFileService manages the catalogued drawings
type UserFileService struct {
	repo  UserFileRepository
	blobs storage.Store
	log   *logger.Logger
}

// NewUserFileService creates a new user file service
func NewUserFileService(repo UserFileRepository, blobs storage.Store, log *logger.Logger) *UserFileService {
	return &UserFileService{
		repo:  repo,
		blobs: blobs,
		log:   log,
	}
}

// List returns the caller's user files, newest first
func (s *UserFileService) List(ctx context.Context, ownerID int64, filter ListFilter) ([]*models.UserFile, error) {
	return s.repo.ListForOwner(ctx, ownerID, filter.TagIDs, filter.FileTypeIDs)
}

// Get returns one of the caller's user files with links loaded
func (s *UserFileService) Get(ctx context.Context, ownerID, id int64) (*models.UserFile, error) {
	return s.repo.GetForOwner(ctx, ownerID, id)
}

// Create persists a new user file owned by the caller. Linked tag and file
// type ids are stored as given; created_on defaults to today.
func (s *UserFileService) Create(ctx context.Context, ownerID int64, input UserFileInput) (*models.UserFile, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	file := fileFromInput(ownerID, 0, input)
	if err := s.repo.Create(ctx, file); err != nil {
		return nil, err
	}

	s.log.Info("user file created", "user_file_id", file.ID, "user_id", ownerID)

	// Re-read so links come back as full objects
	return s.repo.GetForOwner(ctx, ownerID, file.ID)
}

// Replace is the full-update (PUT) path: every field is taken from the
// payload, and link lists absent from it come back empty.
func (s *UserFileService) Replace(ctx context.Context, ownerID, id int64, input UserFileInput) (*models.UserFile, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	file := fileFromInput(ownerID, id, input)
	if err := s.repo.Update(ctx, file); err != nil {
		return nil, err
	}

	return s.repo.GetForOwner(ctx, ownerID, id)
}

// Patch is the partial-update path. The payload is an RFC 7386 merge patch
// applied to the current flat representation, so fields the caller omits -
// link lists included - keep their current values.
func (s *UserFileService) Patch(ctx context.Context, ownerID, id int64, patch []byte) (*models.UserFile, error) {
	current, err := s.repo.GetForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	currentJSON, err := json.Marshal(UserFileInput{
		Title:     current.Title,
		CreatedOn: current.CreatedOn,
		Link:      current.Link,
		Tags:      current.TagIDs(),
		FileTypes: current.FileTypeIDs(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal current state: %w", err)
	}

	merged, err := jsonpatch.MergePatch(currentJSON, patch)
	if err != nil {
		return nil, errs.NewValidation("non_field_errors", "malformed patch document")
	}

	var input UserFileInput
	if err := json.Unmarshal(merged, &input); err != nil {
		return nil, errs.NewValidation("non_field_errors", "malformed patch document")
	}

	return s.Replace(ctx, ownerID, id, input)
}

// Download returns the stored attachment payload and its storage key.
// A file with no attachment behaves like a missing resource.
func (s *UserFileService) Download(ctx context.Context, ownerID, id int64) ([]byte, string, error) {
	file, err := s.repo.GetForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, "", err
	}

	if file.File == nil {
		return nil, "", errs.ErrNotFound
	}

	payload, err := s.blobs.Open(ctx, *file.File)
	if err != nil {
		return nil, "", fmt.Errorf("read attachment %s: %w", *file.File, err)
	}

	return payload, *file.File, nil
}

// Delete removes the user file and releases its stored attachment. A blob
// that cannot be deleted is logged and left orphaned rather than failing
// the request.
func (s *UserFileService) Delete(ctx context.Context, ownerID, id int64) error {
	filePath, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if filePath != nil {
		if err := s.blobs.Delete(ctx, *filePath); err != nil {
			s.log.Warn("orphaned attachment blob", "key", *filePath, "error", err)
		}
	}

	s.log.Info("user file deleted", "user_file_id", id, "user_id", ownerID)
	return nil
}

func validateInput(input UserFileInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return errs.NewValidation("title", "must not be empty")
	}
	return nil
}

func fileFromInput(ownerID, id int64, input UserFileInput) *models.UserFile {
	createdOn := input.CreatedOn
	if createdOn.IsZero() {
		createdOn = models.Today()
	}

	file := &models.UserFile{
		ID:        id,
		OwnerID:   ownerID,
		Title:     input.Title,
		CreatedOn: createdOn,
		Link:      input.Link,
	}
	for _, tagID := range input.Tags {
		file.Tags = append(file.Tags, models.Tag{ID: tagID})
	}
	for _, fileTypeID := range input.FileTypes {
		file.FileTypes = append(file.FileTypes, models.FileType{ID: fileTypeID})
	}
	return file
}
