package repository

import (
	"context"
	"fmt"

	"github.com/pashadev/cadvault/cmd/catalog/models"
	"github.com/pashadev/cadvault/common/db"
)

// FileTypeRepository handles database operations for file types
type FileTypeRepository struct {
	db *db.DB
}

// NewFileTypeRepository creates a new file type repository
func NewFileTypeRepository(db *db.DB) *FileTypeRepository {
	return &FileTypeRepository{db: db}
}

// Create inserts a new file type for its owner
func (r *FileTypeRepository) Create(ctx context.Context, fileType *models.FileType) error {
	query := `
		INSERT INTO file_type (owner_id, type)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, fileType.OwnerID, fileType.Type).Scan(&fileType.ID)
	if err != nil {
		return fmt.Errorf("failed to create file type: %w", err)
	}

	return nil
}

// ListForOwner retrieves the owner's file types ordered by type descending,
// optionally restricted to ones assigned to at least one user file.
func (r *FileTypeRepository) ListForOwner(ctx context.Context, ownerID int64, assignedOnly bool) ([]models.FileType, error) {
	query := `
		SELECT DISTINCT ft.id, ft.owner_id, ft.type
		FROM file_type ft
		WHERE ft.owner_id = $1
		ORDER BY ft.type DESC
	`
	if assignedOnly {
		query = `
			SELECT DISTINCT ft.id, ft.owner_id, ft.type
			FROM file_type ft
			WHERE ft.owner_id = $1
			  AND EXISTS (
				SELECT 1
				FROM user_file_file_type uft
				JOIN user_file uf ON uf.id = uft.user_file_id
				WHERE uft.file_type_id = ft.id AND uf.owner_id = $1
			  )
			ORDER BY ft.type DESC
		`
	}

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list file types: %w", err)
	}
	defer rows.Close()

	var fileTypes []models.FileType
	for rows.Next() {
		var ft models.FileType
		if err := rows.Scan(&ft.ID, &ft.OwnerID, &ft.Type); err != nil {
			return nil, fmt.Errorf("failed to scan file type: %w", err)
		}
		fileTypes = append(fileTypes, ft)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating file types: %w", err)
	}

	return fileTypes, nil
}
