package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pashadev/cadvault/cmd/catalog/middleware"
	"github.com/pashadev/cadvault/cmd/catalog/models"
	"github.com/pashadev/cadvault/common/logger"
)

type tagService interface {
	List(ctx context.Context, ownerID int64, assignedOnly bool) ([]models.Tag, error)
	Create(ctx context.Context, ownerID int64, name string) (*models.Tag, error)
}

// TagHandler handles tag collection requests
type TagHandler struct {
	svc tagService
	log *logger.Logger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(svc tagService, log *logger.Logger) *TagHandler {
	return &TagHandler{svc: svc, log: log}
}

type tagInput struct {
	Name string `json:"name"`
}

// List returns the caller's tags
// GET /api/v1/tags?assigned_only=1
func (h *TagHandler) List(c echo.Context) error {
	owner := middleware.CurrentUser(c)

	assignedOnly, err := parseAssignedOnly(c.QueryParam("assigned_only"))
	if err != nil {
		return respondError(c, h.log, err)
	}

	tags, err := h.svc.List(c.Request().Context(), owner.ID, assignedOnly)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, tags)
}

// Create adds a tag owned by the caller
// POST /api/v1/tags
func (h *TagHandler) Create(c echo.Context) error {
	owner := middleware.CurrentUser(c)

	var input tagInput
	if err := c.Bind(&input); err != nil {
		return respondError(c, h.log, malformedBody())
	}

	tag, err := h.svc.Create(c.Request().Context(), owner.ID, input.Name)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusCreated, tag)
}
