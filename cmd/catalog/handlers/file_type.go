package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pashadev/cadvault/cmd/catalog/middleware"
	"github.com/pashadev/cadvault/cmd/catalog/models"
	"github.com/pashadev/cadvault/common/logger"
)

type fileTypeService interface {
	List(ctx context.Context, ownerID int64, assignedOnly bool) ([]models.FileType, error)
	Create(ctx context.Context, ownerID int64, label string) (*models.FileType, error)
}

// FileTypeHandler handles file type collection requests
type FileTypeHandler struct {
	svc fileTypeService
	log *logger.Logger
}

// NewFileTypeHandler creates a new file type handler
func NewFileTypeHandler(svc fileTypeService, log *logger.Logger) *FileTypeHandler {
	return &FileTypeHandler{svc: svc, log: log}
}

type fileTypeInput struct {
	Type string `json:"type"`
}

// List returns the caller's file types
// GET /api/v1/file_type?assigned_only=1
func (h *FileTypeHandler) List(c echo.Context) error {
	owner := middleware.CurrentUser(c)

	assignedOnly, err := parseAssignedOnly(c.QueryParam("assigned_only"))
	if err != nil {
		return respondError(c, h.log, err)
	}

	fileTypes, err := h.svc.List(c.Request().Context(), owner.ID, assignedOnly)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, fileTypes)
}

// Create adds a file type owned by the caller
// POST /api/v1/file_type
func (h *FileTypeHandler) Create(c echo.Context) error {
	owner := middleware.CurrentUser(c)

	var input fileTypeInput
	if err := c.Bind(&input); err != nil {
		return respondError(c, h.log, malformedBody())
	}

	fileType, err := h.svc.Create(c.Request().Context(), owner.ID, input.Type)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusCreated, fileType)
}
