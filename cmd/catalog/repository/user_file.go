package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pashadev/cadvault/cmd/catalog/models"
	"github.com/pashadev/cadvault/common/db"
	"github.com/pashadev/cadvault/common/errs"
)

const foreignKeyViolation = "23503"

// UserFileRepository handles database operations for user files and their
// tag/file-type links. Multi-statement writes run in a single transaction.
type UserFileRepository struct {
	db *db.DB
}

// NewUserFileRepository creates a new user file repository
func NewUserFileRepository(db *db.DB) *UserFileRepository {
	return &UserFileRepository{db: db}
}

// Create inserts a user file and its links in one transaction
func (r *UserFileRepository) Create(ctx context.Context, file *models.UserFile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO user_file (owner_id, title, created_on, link)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query,
		file.OwnerID,
		file.Title,
		file.CreatedOn.Time,
		file.Link,
	).Scan(&file.ID)

	if err != nil {
		return fmt.Errorf("failed to create user file: %w", err)
	}

	if err := replaceLinks(ctx, tx, file.ID, file.TagIDs(), file.FileTypeIDs()); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// ListForOwner retrieves the owner's user files ordered newest-first.
// A non-nil tagIDs restricts to files linked to at least one of those tags;
// fileTypeIDs works the same way; both together must both match.
func (r *UserFileRepository) ListForOwner(ctx context.Context, ownerID int64, tagIDs, fileTypeIDs []int64) ([]*models.UserFile, error) {
	query := `
		SELECT uf.id, uf.owner_id, uf.title, uf.created_on, uf.link, uf.file_path
		FROM user_file uf
		WHERE uf.owner_id = $1
		  AND ($2::bigint[] IS NULL OR EXISTS (
			SELECT 1 FROM user_file_tag ut
			WHERE ut.user_file_id = uf.id AND ut.tag_id = ANY($2)
		  ))
		  AND ($3::bigint[] IS NULL OR EXISTS (
			SELECT 1 FROM user_file_file_type uft
			WHERE uft.user_file_id = uf.id AND uft.file_type_id = ANY($3)
		  ))
		ORDER BY uf.id DESC
	`

	rows, err := r.db.Query(ctx, query, ownerID, tagIDs, fileTypeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list user files: %w", err)
	}
	defer rows.Close()

	var files []*models.UserFile
	for rows.Next() {
		file := &models.UserFile{}
		err := rows.Scan(
			&file.ID,
			&file.OwnerID,
			&file.Title,
			&file.CreatedOn.Time,
			&file.Link,
			&file.File,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user file: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user files: %w", err)
	}

	if err := r.loadLinks(ctx, files); err != nil {
		return nil, err
	}

	return files, nil
}

// GetForOwner retrieves one user file scoped to its owner, links loaded.
// A foreign or missing id is errs.ErrNotFound either way.
func (r *UserFileRepository) GetForOwner(ctx context.Context, ownerID, id int64) (*models.UserFile, error) {
	query := `
		SELECT id, owner_id, title, created_on, link, file_path
		FROM user_file
		WHERE id = $1 AND owner_id = $2
	`

	file := &models.UserFile{}
	err := r.db.QueryRow(ctx, query, id, ownerID).Scan(
		&file.ID,
		&file.OwnerID,
		&file.Title,
		&file.CreatedOn.Time,
		&file.Link,
		&file.File,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user file: %w", err)
	}

	if err := r.loadLinks(ctx, []*models.UserFile{file}); err != nil {
		return nil, err
	}

	return file, nil
}

// Update rewrites the row and replaces all links in one transaction.
// Merge vs replace semantics are decided above this layer; the repository
// always persists exactly the state it is handed.
func (r *UserFileRepository) Update(ctx context.Context, file *models.UserFile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE user_file
		SET title = $3, created_on = $4, link = $5
		WHERE id = $1 AND owner_id = $2
	`

	result, err := tx.Exec(ctx, query,
		file.ID,
		file.OwnerID,
		file.Title,
		file.CreatedOn.Time,
		file.Link,
	)
	if err != nil {
		return fmt.Errorf("failed to update user file: %w", err)
	}
	if result.RowsAffected() == 0 {
		return errs.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM user_file_tag WHERE user_file_id = $1`, file.ID); err != nil {
		return fmt.Errorf("failed to clear tag links: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM user_file_file_type WHERE user_file_id = $1`, file.ID); err != nil {
		return fmt.Errorf("failed to clear file type links: %w", err)
	}

	if err := replaceLinks(ctx, tx, file.ID, file.TagIDs(), file.FileTypeIDs()); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// SetFile points the attachment reference at a new storage key and returns
// the previous key so the caller can release the old blob.
func (r *UserFileRepository) SetFile(ctx context.Context, ownerID, id int64, key string) (*string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var previous *string
	err = tx.QueryRow(ctx,
		`SELECT file_path FROM user_file WHERE id = $1 AND owner_id = $2 FOR UPDATE`,
		id, ownerID,
	).Scan(&previous)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock user file: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE user_file SET file_path = $2 WHERE id = $1`, id, key,
	); err != nil {
		return nil, fmt.Errorf("failed to set attachment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return previous, nil
}

// Delete removes the row and returns the stored attachment key, if any,
// so the caller can release the blob.
func (r *UserFileRepository) Delete(ctx context.Context, ownerID, id int64) (*string, error) {
	query := `
		DELETE FROM user_file
		WHERE id = $1 AND owner_id = $2
		RETURNING file_path
	`

	var filePath *string
	err := r.db.QueryRow(ctx, query, id, ownerID).Scan(&filePath)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete user file: %w", err)
	}

	return filePath, nil
}

// replaceLinks inserts link rows for a user file. Duplicate ids in the
// payload collapse via ON CONFLICT; an id with no matching row surfaces as
// a field-keyed validation error, not a 500.
func replaceLinks(ctx context.Context, tx pgx.Tx, fileID int64, tagIDs, fileTypeIDs []int64) error {
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_file_tag (user_file_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			fileID, tagID,
		); err != nil {
			return linkError(err, "tags", tagID)
		}
	}

	for _, fileTypeID := range fileTypeIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_file_file_type (user_file_id, file_type_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			fileID, fileTypeID,
		); err != nil {
			return linkError(err, "file_types", fileTypeID)
		}
	}

	return nil
}

// linkError translates a failed link insert. A foreign key violation means
// the payload referenced an id that does not exist, which is the caller's
// mistake.
func linkError(err error, field string, id int64) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return errs.NewValidation(field, fmt.Sprintf("id %d does not exist", id))
	}
	return fmt.Errorf("failed to link %s id %d: %w", field, id, err)
}

// loadLinks populates Tags and FileTypes for the given files
func (r *UserFileRepository) loadLinks(ctx context.Context, files []*models.UserFile) error {
	if len(files) == 0 {
		return nil
	}

	byID := make(map[int64]*models.UserFile, len(files))
	ids := make([]int64, 0, len(files))
	for _, f := range files {
		f.Tags = []models.Tag{}
		f.FileTypes = []models.FileType{}
		byID[f.ID] = f
		ids = append(ids, f.ID)
	}

	tagRows, err := r.db.Query(ctx, `
		SELECT ut.user_file_id, t.id, t.owner_id, t.name
		FROM user_file_tag ut
		JOIN tag t ON t.id = ut.tag_id
		WHERE ut.user_file_id = ANY($1)
		ORDER BY t.id
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load tag links: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var fileID int64
		var tag models.Tag
		if err := tagRows.Scan(&fileID, &tag.ID, &tag.OwnerID, &tag.Name); err != nil {
			return fmt.Errorf("failed to scan tag link: %w", err)
		}
		byID[fileID].Tags = append(byID[fileID].Tags, tag)
	}
	if err := tagRows.Err(); err != nil {
		return fmt.Errorf("error iterating tag links: %w", err)
	}

	ftRows, err := r.db.Query(ctx, `
		SELECT uft.user_file_id, ft.id, ft.owner_id, ft.type
		FROM user_file_file_type uft
		JOIN file_type ft ON ft.id = uft.file_type_id
		WHERE uft.user_file_id = ANY($1)
		ORDER BY ft.id
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load file type links: %w", err)
	}
	defer ftRows.Close()

	for ftRows.Next() {
		var fileID int64
		var ft models.FileType
		if err := ftRows.Scan(&fileID, &ft.ID, &ft.OwnerID, &ft.Type); err != nil {
			return fmt.Errorf("failed to scan file type link: %w", err)
		}
		byID[fileID].FileTypes = append(byID[fileID].FileTypes, ft)
	}
	if err := ftRows.Err(); err != nil {
		return fmt.Errorf("error iterating file type links: %w", err)
	}

	return nil
}
