package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"regexp"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pashadev/cadvault/common/errs"
)

var uploadKeyPattern = regexp.MustCompile(`^uploads/user_files/[0-9a-f-]{36}\.[a-z0-9]+$`)

func pngPayload(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadValidImage(t *testing.T) {
	svc, _, fs := newUserFileFixture()
	ctx := context.Background()

	file, err := svc.Create(ctx, 1, UserFileInput{Title: "plan"})
	require.NoError(t, err)

	updated, err := svc.Upload(ctx, 1, file.ID, "drawing.png", pngPayload(t))
	require.NoError(t, err)

	require.NotNil(t, updated.File)
	assert.Regexp(t, uploadKeyPattern, *updated.File)

	stored, err := afero.ReadFile(fs, *updated.File)
	require.NoError(t, err)
	assert.Equal(t, pngPayload(t), stored)
}

func TestUploadTokenFreshPerUpload(t *testing.T) {
	svc, _, _ := newUserFileFixture()
	ctx := context.Background()

	file, err := svc.Create(ctx, 1, UserFileInput{Title: "plan"})
	require.NoError(t, err)

	payload := pngPayload(t)

	first, err := svc.Upload(ctx, 1, file.ID, "drawing.png", payload)
	require.NoError(t, err)
	second, err := svc.Upload(ctx, 1, file.ID, "drawing.png", payload)
	require.NoError(t, err)

	// Identical bytes must still land under distinct keys
	assert.NotEqual(t, *first.File, *second.File)
}

func TestUploadReleasesPreviousBlob(t *testing.T) {
	svc, _, fs := newUserFileFixture()
	ctx := context.Background()

	file, err := svc.Create(ctx, 1, UserFileInput{Title: "plan"})
	require.NoError(t, err)

	first, err := svc.Upload(ctx, 1, file.ID, "drawing.png", pngPayload(t))
	require.NoError(t, err)
	firstKey := *first.File

	_, err = svc.Upload(ctx, 1, file.ID, "drawing.png", pngPayload(t))
	require.NoError(t, err)

	exists, err := afero.Exists(fs, firstKey)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUploadInvalidPayload(t *testing.T) {
	svc, _, _ := newUserFileFixture()
	ctx := context.Background()

	file, err := svc.Create(ctx, 1, UserFileInput{Title: "plan"})
	require.NoError(t, err)

	_, err = svc.Upload(ctx, 1, file.ID, "notes.txt", []byte("not an image"))

	ve, ok := errs.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "file")

	// The attachment stays untouched
	got, err := svc.Get(ctx, 1, file.ID)
	require.NoError(t, err)
	assert.Nil(t, got.File)
}

func TestUploadOtherTenant(t *testing.T) {
	svc, _, _ := newUserFileFixture()
	ctx := context.Background()

	file, err := svc.Create(ctx, 1, UserFileInput{Title: "plan"})
	require.NoError(t, err)

	_, err = svc.Upload(ctx, 2, file.ID, "drawing.png", pngPayload(t))
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUploadDXF(t *testing.T) {
	svc, _, _ := newUserFileFixture()
	ctx := context.Background()

	file, err := svc.Create(ctx, 1, UserFileInput{Title: "plan"})
	require.NoError(t, err)

	payload := []byte("0\r\nSECTION\r\n2\r\nHEADER\r\n0\r\nENDSEC\r\n0\r\nEOF\r\n")
	updated, err := svc.Upload(ctx, 1, file.ID, "drawing.dxf", payload)
	require.NoError(t, err)

	require.NotNil(t, updated.File)
	assert.Regexp(t, `\.dxf$`, *updated.File)
}

func TestUploadExtensionFallsBackToFormat(t *testing.T) {
	svc, _, _ := newUserFileFixture()
	ctx := context.Background()

	file, err := svc.Create(ctx, 1, UserFileInput{Title: "plan"})
	require.NoError(t, err)

	updated, err := svc.Upload(ctx, 1, file.ID, "drawing", pngPayload(t))
	require.NoError(t, err)

	assert.Regexp(t, `\.png$`, *updated.File)
}

func TestDetectFormat(t *testing.T) {
	format, err := detectFormat(pngPayload(t))
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	_, err = detectFormat([]byte("garbage"))
	assert.Error(t, err)
}

func TestDownloadRoundTrip(t *testing.T) {
	svc, _, _ := newUserFileFixture()
	ctx := context.Background()

	file, err := svc.Create(ctx, 1, UserFileInput{Title: "plan"})
	require.NoError(t, err)

	payload := pngPayload(t)
	uploaded, err := svc.Upload(ctx, 1, file.ID, "drawing.png", payload)
	require.NoError(t, err)

	data, key, err := svc.Download(ctx, 1, file.ID)
	require.NoError(t, err)

	assert.Equal(t, payload, data)
	assert.Equal(t, *uploaded.File, key)
}

func TestDownloadWithoutAttachment(t *testing.T) {
	svc, _, _ := newUserFileFixture()
	ctx := context.Background()

	file, err := svc.Create(ctx, 1, UserFileInput{Title: "plan"})
	require.NoError(t, err)

	_, _, err = svc.Download(ctx, 1, file.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDownloadCrossTenant(t *testing.T) {
	svc, _, _ := newUserFileFixture()
	ctx := context.Background()

	file, err := svc.Create(ctx, 1, UserFileInput{Title: "plan"})
	require.NoError(t, err)
	_, err = svc.Upload(ctx, 1, file.ID, "drawing.png", pngPayload(t))
	require.NoError(t, err)

	_, _, err = svc.Download(ctx, 2, file.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
