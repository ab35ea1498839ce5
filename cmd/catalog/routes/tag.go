package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/pashadev/cadvault/cmd/catalog/container"
	"github.com/pashadev/cadvault/cmd/catalog/handlers"
)

// RegisterTagRoutes registers the tag collection routes
func RegisterTagRoutes(e *echo.Echo, ctn *container.Container) {
	h := handlers.NewTagHandler(ctn.TagService, ctn.Components.Logger)

	tags := e.Group("/api/v1/tags", ctn.Authed()...)
	{
		tags.GET("", h.List)    // GET /api/v1/tags?assigned_only=1
		tags.POST("", h.Create) // POST /api/v1/tags
	}
}
