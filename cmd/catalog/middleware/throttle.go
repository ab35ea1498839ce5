package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pashadev/cadvault/common/ratelimit"
)

// UserLimiter checks a per-user request budget
type UserLimiter interface {
	CheckUser(ctx context.Context, userID int64, limit int64, windowSec int) (*ratelimit.Result, error)
}

// Throttle caps requests per authenticated user. It runs after TokenAuth so
// the user is already resolved; unauthenticated routes are not throttled.
// A zero limit disables the check.
func Throttle(limiter UserLimiter, limit int64, window time.Duration) echo.MiddlewareFunc {
	windowSec := int(window / time.Second)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if limit <= 0 {
				return next(c)
			}

			user := CurrentUser(c)
			if user == nil {
				return next(c)
			}

			result, err := limiter.CheckUser(c.Request().Context(), user.ID, limit, windowSec)
			if err != nil {
				// A counter outage should not take the API down
				return next(c)
			}

			if !result.Allowed {
				c.Response().Header().Set("Retry-After", strconv.FormatInt(result.RetryAfterSeconds, 10))
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"detail": "request was throttled",
				})
			}

			return next(c)
		}
	}
}
