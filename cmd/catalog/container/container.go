package container

import (
	"github.com/labstack/echo/v4"

	"github.com/pashadev/cadvault/cmd/catalog/middleware"
	"github.com/pashadev/cadvault/cmd/catalog/repository"
	"github.com/pashadev/cadvault/cmd/catalog/service"
	"github.com/pashadev/cadvault/common/bootstrap"
	"github.com/pashadev/cadvault/common/ratelimit"
)

// Container holds all initialized services and repositories (singleton pattern)
type Container struct {
	// Components
	Components *bootstrap.Components

	// Repositories
	UserRepo     *repository.UserRepository
	TagRepo      *repository.TagRepository
	FileTypeRepo *repository.FileTypeRepository
	UserFileRepo *repository.UserFileRepository

	// Services
	UserService     *service.UserService
	AuthService     *service.AuthService
	TagService      *service.TagService
	FileTypeService *service.FileTypeService
	UserFileService *service.UserFileService

	// RateLimiter backs the per-user throttle on authenticated routes
	RateLimiter *ratelimit.Limiter
}

// NewContainer initializes all services and repositories once
func NewContainer(components *bootstrap.Components) *Container {
	// Initialize repositories
	userRepo := repository.NewUserRepository(components.DB)
	tagRepo := repository.NewTagRepository(components.DB)
	fileTypeRepo := repository.NewFileTypeRepository(components.DB)
	userFileRepo := repository.NewUserFileRepository(components.DB)

	// Initialize services (bottom-up: dependencies first)
	userService := service.NewUserService(userRepo, components.Logger)
	authService := service.NewAuthService(
		userRepo,
		components.Redis,
		components.Config.Auth.TokenTTL,
		components.Logger,
	)
	tagService := service.NewTagService(tagRepo, components.Logger)
	fileTypeService := service.NewFileTypeService(fileTypeRepo, components.Logger)
	userFileService := service.NewUserFileService(
		userFileRepo,
		components.Storage,
		components.Logger,
	)

	return &Container{
		Components:      components,
		UserRepo:        userRepo,
		TagRepo:         tagRepo,
		FileTypeRepo:    fileTypeRepo,
		UserFileRepo:    userFileRepo,
		UserService:     userService,
		AuthService:     authService,
		TagService:      tagService,
		FileTypeService: fileTypeService,
		UserFileService: userFileService,
		RateLimiter:     ratelimit.New(components.Redis.GetUnderlying(), components.Logger),
	}
}

// Authed is the middleware chain for token-protected routes
func (c *Container) Authed() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		middleware.TokenAuth(c.AuthService),
		middleware.Throttle(
			c.RateLimiter,
			c.Components.Config.Throttle.UserLimit,
			c.Components.Config.Throttle.Window,
		),
	}
}
