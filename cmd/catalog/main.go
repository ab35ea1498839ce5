package main

import (
	"context"
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/pashadev/cadvault/cmd/catalog/container"
	"github.com/pashadev/cadvault/cmd/catalog/routes"
	"github.com/pashadev/cadvault/common/bootstrap"
	"github.com/pashadev/cadvault/common/db"
	"github.com/pashadev/cadvault/common/server"
)

func main() {
	ctx := context.Background()

	// Bootstrap common components (config, logger, DB, redis, storage)
	components, err := bootstrap.Setup(ctx, "catalog")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap catalog: %v\n", err)
		os.Exit(1)
	}
	defer components.Shutdown(ctx)

	// Apply schema migrations before serving traffic
	if err := db.Migrate(ctx, components.Config, components.Logger); err != nil {
		components.Logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	// Initialize service container (all services created once)
	ctn := container.NewContainer(components)

	// Create the bootstrap superuser if configured
	if err := ctn.UserService.EnsureAdmin(ctx,
		components.Config.Auth.AdminEmail,
		components.Config.Auth.AdminPassword,
	); err != nil {
		components.Logger.Error("admin bootstrap failed", "error", err)
		os.Exit(1)
	}

	e := setupEcho()
	setupMiddleware(e)
	setupHealthCheck(e, components)
	registerRoutes(e, ctn)

	// Serve with graceful shutdown
	srv := server.New("catalog", components.Config.Service.Port, e, components.Logger)
	if err := srv.Start(); err != nil {
		components.Logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// setupEcho initializes the Echo server with basic configuration
func setupEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	return e
}

// setupMiddleware configures all middleware for the Echo server
func setupMiddleware(e *echo.Echo) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestID())
}

// setupHealthCheck registers the health check endpoint
func setupHealthCheck(e *echo.Echo, components *bootstrap.Components) {
	e.GET("/health", func(c echo.Context) error {
		if err := components.Health(c.Request().Context()); err != nil {
			return c.JSON(503, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
		return c.JSON(200, map[string]string{
			"status":  "ok",
			"service": "catalog",
		})
	})
}

// registerRoutes registers all application routes using the service container
func registerRoutes(e *echo.Echo, ctn *container.Container) {
	routes.RegisterUserRoutes(e, ctn)
	routes.RegisterTagRoutes(e, ctn)
	routes.RegisterFileTypeRoutes(e, ctn)
	routes.RegisterUserFileRoutes(e, ctn)
}
