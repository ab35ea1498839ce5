package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pashadev/cadvault/cmd/catalog/models"
	"github.com/pashadev/cadvault/common/errs"
)

const uploadPrefix = "uploads/user_files"

// Upload validates and stores an attachment for one of the caller's user
// files. The storage key carries a token generated fresh per upload, so
// re-uploading identical bytes never collides with an earlier blob. The
// blob is written before the row update; if the update then fails the blob
// is orphaned, which is logged, not fatal.
func (s *UserFileService) Upload(ctx context.Context, ownerID, id int64, filename string, payload []byte) (*models.UserFile, error) {
	if _, err := s.repo.GetForOwner(ctx, ownerID, id); err != nil {
		return nil, err
	}

	format, err := detectFormat(payload)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		ext = format
	}

	key := fmt.Sprintf("%s/%s.%s", uploadPrefix, uuid.NewString(), ext)

	if err := s.blobs.Save(ctx, key, payload); err != nil {
		return nil, fmt.Errorf("store attachment: %w", err)
	}

	previous, err := s.repo.SetFile(ctx, ownerID, id, key)
	if err != nil {
		// The freshly written blob is now orphaned
		s.log.Warn("orphaned attachment blob after failed row update", "key", key)
		return nil, err
	}

	if previous != nil && *previous != key {
		if delErr := s.blobs.Delete(ctx, *previous); delErr != nil {
			s.log.Warn("orphaned attachment blob", "key", *previous, "error", delErr)
		}
	}

	s.log.Info("attachment uploaded", "user_file_id", id, "user_id", ownerID, "key", key)

	return s.repo.GetForOwner(ctx, ownerID, id)
}

// detectFormat sniffs the payload as a raster image (PNG, JPEG, GIF) or an
// ASCII DXF drawing and returns the detected format name.
func detectFormat(payload []byte) (string, error) {
	if _, format, err := image.DecodeConfig(bytes.NewReader(payload)); err == nil {
		return format, nil
	}

	if looksLikeDXF(payload) {
		return "dxf", nil
	}

	return "", errs.NewValidation("file", "upload a valid image or DXF drawing")
}

// looksLikeDXF checks for the leading group code of an ASCII DXF file:
// a "0" (or a "999" comment) line followed by "SECTION".
func looksLikeDXF(payload []byte) bool {
	head := payload
	if len(head) > 256 {
		head = head[:256]
	}

	var lines []string
	for _, line := range strings.Split(string(head), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	for i := 0; i+1 < len(lines); i++ {
		if lines[i] == "0" && lines[i+1] == "SECTION" {
			return true
		}
	}
	return false
}
