package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/pashadev/cadvault/cmd/catalog/container"
	"github.com/pashadev/cadvault/cmd/catalog/handlers"
)

// RegisterFileTypeRoutes registers the file type collection routes
func RegisterFileTypeRoutes(e *echo.Echo, ctn *container.Container) {
	h := handlers.NewFileTypeHandler(ctn.FileTypeService, ctn.Components.Logger)

	fileTypes := e.Group("/api/v1/file_type", ctn.Authed()...)
	{
		fileTypes.GET("", h.List)    // GET /api/v1/file_type?assigned_only=1
		fileTypes.POST("", h.Create) // POST /api/v1/file_type
	}
}
