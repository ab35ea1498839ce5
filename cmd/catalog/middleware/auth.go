package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pashadev/cadvault/cmd/catalog/models"
	"github.com/pashadev/cadvault/common/errs"
)

// Authenticator resolves a session token to a user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// UserKey is the context key for the authenticated user
const UserKey ContextKey = "auth_user"

// TokenAuth enforces token authentication on a route group. The credential
// comes from the Authorization header as "Token <key>"; "Bearer <key>" is
// accepted as well. Requests with no or an unknown token get a 401.
func TokenAuth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c.Request().Header.Get("Authorization"))
			if token == "" {
				return unauthorized(c)
			}

			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, errs.ErrUnauthorized) {
					return unauthorized(c)
				}
				return c.JSON(http.StatusInternalServerError, map[string]string{
					"detail": "internal server error",
				})
			}

			c.Set(string(UserKey), user)
			return next(c)
		}
	}
}

// CurrentUser retrieves the authenticated user from the request context.
// Returns nil outside an authenticated route.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(string(UserKey)).(*models.User)
	return user
}

func extractToken(header string) string {
	for _, scheme := range []string{"Token ", "Bearer "} {
		if strings.HasPrefix(header, scheme) {
			return strings.TrimSpace(header[len(scheme):])
		}
	}
	return ""
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{
		"detail": "authentication required",
	})
}
