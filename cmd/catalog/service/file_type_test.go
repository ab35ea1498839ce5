package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pashadev/cadvault/common/errs"
)

func TestFileTypeCreate(t *testing.T) {
	repo := &fakeFileTypeRepo{}
	svc := NewFileTypeService(repo, testLogger())

	ft, err := svc.Create(context.Background(), 4, "DWG")
	require.NoError(t, err)

	assert.Equal(t, int64(4), ft.OwnerID)
	assert.Equal(t, "DWG", ft.Type)
}

func TestFileTypeCreateEmptyLabel(t *testing.T) {
	repo := &fakeFileTypeRepo{}
	svc := NewFileTypeService(repo, testLogger())

	_, err := svc.Create(context.Background(), 4, "")

	ve, ok := errs.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "type")
	assert.Empty(t, repo.fileTypes)
}

func TestFileTypeListScopedToOwner(t *testing.T) {
	repo := &fakeFileTypeRepo{}
	svc := NewFileTypeService(repo, testLogger())

	_, err := svc.Create(context.Background(), 1, "DWG")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 2, "DXF")
	require.NoError(t, err)

	fileTypes, err := svc.List(context.Background(), 1, false)
	require.NoError(t, err)

	require.Len(t, fileTypes, 1)
	assert.Equal(t, "DWG", fileTypes[0].Type)
}

func TestFileTypeListAssignedOnly(t *testing.T) {
	repo := &fakeFileTypeRepo{assigned: make(map[int64]bool)}
	svc := NewFileTypeService(repo, testLogger())

	dwg, err := svc.Create(context.Background(), 1, "DWG")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 1, "DXF")
	require.NoError(t, err)
	repo.assigned[dwg.ID] = true

	assigned, err := svc.List(context.Background(), 1, true)
	require.NoError(t, err)

	require.Len(t, assigned, 1)
	assert.Equal(t, "DWG", assigned[0].Type)
}

func TestFileTypeListOrderedByLabelDescending(t *testing.T) {
	repo := &fakeFileTypeRepo{}
	svc := NewFileTypeService(repo, testLogger())

	for _, label := range []string{"DWG", "STP", "DXF"} {
		_, err := svc.Create(context.Background(), 1, label)
		require.NoError(t, err)
	}

	fileTypes, err := svc.List(context.Background(), 1, false)
	require.NoError(t, err)

	require.Len(t, fileTypes, 3)
	assert.Equal(t, "STP", fileTypes[0].Type)
	assert.Equal(t, "DXF", fileTypes[1].Type)
	assert.Equal(t, "DWG", fileTypes[2].Type)
}
