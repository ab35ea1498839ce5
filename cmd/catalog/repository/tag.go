package repository

import (
	"context"
	"fmt"

	"github.com/pashadev/cadvault/cmd/catalog/models"
	"github.com/pashadev/cadvault/common/db"
)

// TagRepository handles database operations for tags.
// Every query is scoped to an owner so tenancy filtering lives in one place.
type TagRepository struct {
	db *db.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *db.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create inserts a new tag for its owner
func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	query := `
		INSERT INTO tag (owner_id, name)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, tag.OwnerID, tag.Name).Scan(&tag.ID)
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return nil
}

// ListForOwner retrieves the owner's tags ordered by name descending.
// With assignedOnly, only tags referenced by at least one of the owner's
// user files are returned.
func (r *TagRepository) ListForOwner(ctx context.Context, ownerID int64, assignedOnly bool) ([]models.Tag, error) {
	query := `
		SELECT DISTINCT t.id, t.owner_id, t.name
		FROM tag t
		WHERE t.owner_id = $1
		ORDER BY t.name DESC
	`
	if assignedOnly {
		query = `
			SELECT DISTINCT t.id, t.owner_id, t.name
			FROM tag t
			WHERE t.owner_id = $1
			  AND EXISTS (
				SELECT 1
				FROM user_file_tag ut
				JOIN user_file uf ON uf.id = ut.user_file_id
				WHERE ut.tag_id = t.id AND uf.owner_id = $1
			  )
			ORDER BY t.name DESC
		`
	}

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.OwnerID, &tag.Name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	return tags, nil
}
