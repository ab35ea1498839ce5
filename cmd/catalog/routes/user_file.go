package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/pashadev/cadvault/cmd/catalog/container"
	"github.com/pashadev/cadvault/cmd/catalog/handlers"
)

// RegisterUserFileRoutes registers the user file collection and upload routes
func RegisterUserFileRoutes(e *echo.Echo, ctn *container.Container) {
	h := handlers.NewUserFileHandler(ctn.UserFileService, ctn.Components.Logger)

	files := e.Group("/api/v1/user_file", ctn.Authed()...)
	{
		files.GET("", h.List)                       // GET /api/v1/user_file?tags=1,2
		files.POST("", h.Create)                    // POST /api/v1/user_file
		files.GET("/:id", h.Retrieve)               // GET /api/v1/user_file/42
		files.PUT("/:id", h.Update)                 // PUT /api/v1/user_file/42
		files.PATCH("/:id", h.PartialUpdate)        // PATCH /api/v1/user_file/42
		files.DELETE("/:id", h.Delete)              // DELETE /api/v1/user_file/42
		files.POST("/:id/upload-file", h.Upload)    // POST /api/v1/user_file/42/upload-file
		files.GET("/:id/upload-file", h.UploadInfo) // GET /api/v1/user_file/42/upload-file
		files.GET("/:id/download", h.Download)      // GET /api/v1/user_file/42/download
	}
}
