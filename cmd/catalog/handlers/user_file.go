package handlers

import (
	"context"
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"

	"github.com/pashadev/cadvault/cmd/catalog/middleware"
	"github.com/pashadev/cadvault/cmd/catalog/models"
	"github.com/pashadev/cadvault/cmd/catalog/serializer"
	"github.com/pashadev/cadvault/cmd/catalog/service"
	"github.com/pashadev/cadvault/common/errs"
	"github.com/pashadev/cadvault/common/logger"
)

type userFileService interface {
	List(ctx context.Context, ownerID int64, filter service.ListFilter) ([]*models.UserFile, error)
	Get(ctx context.Context, ownerID, id int64) (*models.UserFile, error)
	Create(ctx context.Context, ownerID int64, input service.UserFileInput) (*models.UserFile, error)
	Replace(ctx context.Context, ownerID, id int64, input service.UserFileInput) (*models.UserFile, error)
	Patch(ctx context.Context, ownerID, id int64, patch []byte) (*models.UserFile, error)
	Delete(ctx context.Context, ownerID, id int64) error
	Upload(ctx context.Context, ownerID, id int64, filename string, payload []byte) (*models.UserFile, error)
	Download(ctx context.Context, ownerID, id int64) ([]byte, string, error)
}

// UserFileHandler handles the user file collection and attachment uploads
type UserFileHandler struct {
	svc userFileService
	log *logger.Logger
}

// NewUserFileHandler creates a new user file handler
func NewUserFileHandler(svc userFileService, log *logger.Logger) *UserFileHandler {
	return &UserFileHandler{svc: svc, log: log}
}

// List returns the caller's user files in the flat shape
// GET /api/v1/user_file?tags=1,2&file_types=3
func (h *UserFileHandler) List(c echo.Context) error {
	owner := middleware.CurrentUser(c)

	tagIDs, err := parseIDList(c.QueryParam("tags"), "tags")
	if err != nil {
		return respondError(c, h.log, err)
	}

	fileTypeIDs, err := parseIDList(c.QueryParam("file_types"), "file_types")
	if err != nil {
		return respondError(c, h.log, err)
	}

	files, err := h.svc.List(c.Request().Context(), owner.ID, service.ListFilter{
		TagIDs:      tagIDs,
		FileTypeIDs: fileTypeIDs,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, serializer.UserFileList(serializer.ActionList, files))
}

// Create adds a user file owned by the caller
// POST /api/v1/user_file
func (h *UserFileHandler) Create(c echo.Context) error {
	owner := middleware.CurrentUser(c)

	var input service.UserFileInput
	if err := c.Bind(&input); err != nil {
		return respondError(c, h.log, malformedBody())
	}

	file, err := h.svc.Create(c.Request().Context(), owner.ID, input)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusCreated, serializer.UserFile(serializer.ActionCreate, file))
}

// Retrieve returns a single user file in the detail shape
// GET /api/v1/user_file/:id
func (h *UserFileHandler) Retrieve(c echo.Context) error {
	owner := middleware.CurrentUser(c)

	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	file, err := h.svc.Get(c.Request().Context(), owner.ID, id)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, serializer.UserFile(serializer.ActionRetrieve, file))
}

// Update replaces a user file; link lists absent from the payload are cleared
// PUT /api/v1/user_file/:id
func (h *UserFileHandler) Update(c echo.Context) error {
	owner := middleware.CurrentUser(c)

	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	var input service.UserFileInput
	if err := c.Bind(&input); err != nil {
		return respondError(c, h.log, malformedBody())
	}

	file, err := h.svc.Replace(c.Request().Context(), owner.ID, id, input)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, serializer.UserFile(serializer.ActionUpdate, file))
}

// PartialUpdate merges a patch into a user file; omitted fields, link lists
// included, keep their current values
// PATCH /api/v1/user_file/:id
func (h *UserFileHandler) PartialUpdate(c echo.Context) error {
	owner := middleware.CurrentUser(c)

	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	patch, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return respondError(c, h.log, malformedBody())
	}

	file, err := h.svc.Patch(c.Request().Context(), owner.ID, id, patch)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, serializer.UserFile(serializer.ActionUpdate, file))
}

// Delete removes a user file and releases its attachment
// DELETE /api/v1/user_file/:id
func (h *UserFileHandler) Delete(c echo.Context) error {
	owner := middleware.CurrentUser(c)

	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	if err := h.svc.Delete(c.Request().Context(), owner.ID, id); err != nil {
		return respondError(c, h.log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Upload stores an attachment for a user file
// POST /api/v1/user_file/:id/upload-file (multipart field "file")
func (h *UserFileHandler) Upload(c echo.Context) error {
	owner := middleware.CurrentUser(c)

	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return respondError(c, h.log, errs.NewValidation("file", "no file was submitted"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return respondError(c, h.log, errs.NewValidation("file", "no file was submitted"))
	}
	defer src.Close()

	payload, err := io.ReadAll(src)
	if err != nil {
		return respondError(c, h.log, errs.NewValidation("file", "no file was submitted"))
	}

	file, err := h.svc.Upload(c.Request().Context(), owner.ID, id, fileHeader.Filename, payload)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, serializer.UserFile(serializer.ActionUpload, file))
}

// Download streams the stored attachment bytes
// GET /api/v1/user_file/:id/download
func (h *UserFileHandler) Download(c echo.Context) error {
	owner := middleware.CurrentUser(c)

	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	payload, key, err := h.svc.Download(c.Request().Context(), owner.ID, id)
	if err != nil {
		return respondError(c, h.log, err)
	}

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return c.Blob(http.StatusOK, contentType, payload)
}

// UploadInfo reports the current attachment without mutating anything
// GET /api/v1/user_file/:id/upload-file
func (h *UserFileHandler) UploadInfo(c echo.Context) error {
	owner := middleware.CurrentUser(c)

	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	file, err := h.svc.Get(c.Request().Context(), owner.ID, id)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, serializer.UserFile(serializer.ActionUpload, file))
}
