package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pashadev/cadvault/cmd/catalog/middleware"
	"github.com/pashadev/cadvault/cmd/catalog/models"
	"github.com/pashadev/cadvault/common/logger"
)

type userService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
}

type authService interface {
	IssueToken(ctx context.Context, email, password string) (string, error)
}

// UserHandler handles account registration and token issuance
type UserHandler struct {
	users userService
	auth  authService
	log   *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users userService, auth authService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		users: users,
		auth:  auth,
		log:   log,
	}
}

// credentialsInput is a JSON body; the API speaks JSON only, matching the
// user file payloads whose dates and id lists have no form encoding.
type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account
// POST /api/v1/users
func (h *UserHandler) Register(c echo.Context) error {
	var input credentialsInput
	if err := c.Bind(&input); err != nil {
		return respondError(c, h.log, malformedBody())
	}

	user, err := h.users.Register(c.Request().Context(), input.Email, input.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusCreated, user)
}

// Token issues a session token for valid credentials
// POST /api/v1/users/token
func (h *UserHandler) Token(c echo.Context) error {
	var input credentialsInput
	if err := c.Bind(&input); err != nil {
		return respondError(c, h.log, malformedBody())
	}

	token, err := h.auth.IssueToken(c.Request().Context(), input.Email, input.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

// Me returns the authenticated account
// GET /api/v1/users/me
func (h *UserHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.CurrentUser(c))
}
