package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pashadev/cadvault/common/errs"
)

func TestLinkErrorUnknownTagID(t *testing.T) {
	fkErr := &pgconn.PgError{Code: "23503", ConstraintName: "user_file_tag_tag_id_fkey"}

	err := linkError(fkErr, "tags", 99)

	ve, ok := errs.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, []string{"id 99 does not exist"}, ve.Fields["tags"])
}

func TestLinkErrorUnknownFileTypeID(t *testing.T) {
	fkErr := &pgconn.PgError{Code: "23503"}

	err := linkError(fkErr, "file_types", 7)

	ve, ok := errs.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "file_types")
}

func TestLinkErrorWrappedForeignKeyViolation(t *testing.T) {
	wrapped := fmt.Errorf("exec insert: %w", &pgconn.PgError{Code: "23503"})

	_, ok := errs.AsValidation(linkError(wrapped, "tags", 3))
	assert.True(t, ok)
}

func TestLinkErrorOtherFailuresStayInternal(t *testing.T) {
	err := linkError(errors.New("connection reset"), "tags", 3)

	_, ok := errs.AsValidation(err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "tags id 3")
}
