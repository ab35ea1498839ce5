package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/pashadev/cadvault/cmd/catalog/container"
	"github.com/pashadev/cadvault/cmd/catalog/handlers"
)

// RegisterUserRoutes registers account and token routes. Registration and
// token issuance are the only unauthenticated endpoints in the API.
func RegisterUserRoutes(e *echo.Echo, ctn *container.Container) {
	h := handlers.NewUserHandler(ctn.UserService, ctn.AuthService, ctn.Components.Logger)

	users := e.Group("/api/v1/users")
	{
		users.POST("", h.Register)      // POST /api/v1/users
		users.POST("/token", h.Token)   // POST /api/v1/users/token
		users.GET("/me", h.Me, ctn.Authed()...)
	}
}
