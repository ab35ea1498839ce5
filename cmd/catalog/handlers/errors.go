package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pashadev/cadvault/common/errs"
	"github.com/pashadev/cadvault/common/logger"
)

// respondError maps the service error taxonomy onto HTTP responses:
// validation failures become field-keyed 400 bodies, not-found (including
// another tenant's ids) a 404, anything unexpected a logged 500.
func respondError(c echo.Context, log *logger.Logger, err error) error {
	if ve, ok := errs.AsValidation(err); ok {
		return c.JSON(http.StatusBadRequest, ve.Fields)
	}

	if errors.Is(err, errs.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"detail": "not found"})
	}

	if errors.Is(err, errs.ErrUnauthorized) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "authentication required"})
	}

	log.Error("request failed", "path", c.Path(), "error", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"detail": "internal server error"})
}

// parseIDParam reads the :id path parameter. A non-numeric id behaves like
// a missing resource, not a validation failure.
func parseIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errs.ErrNotFound
	}
	return id, nil
}

// parseIDList parses a comma-separated id list query parameter.
// Empty means no filter (nil).
func parseIDList(raw, field string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, errs.NewValidation(field, "must be a comma-separated list of integer ids")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseAssignedOnly parses the assigned_only query parameter (0 or 1)
func parseAssignedOnly(raw string) (bool, error) {
	switch raw {
	case "", "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, errs.NewValidation("assigned_only", "must be 0 or 1")
	}
}

func malformedBody() error {
	return errs.NewValidation("non_field_errors", "malformed request body")
}
