package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pashadev/cadvault/cmd/catalog/models"
	"github.com/pashadev/cadvault/common/ratelimit"
)

type fakeLimiter struct {
	result    *ratelimit.Result
	err       error
	gotUserID int64
	calls     int
}

func (f *fakeLimiter) CheckUser(ctx context.Context, userID int64, limit int64, windowSec int) (*ratelimit.Result, error) {
	f.gotUserID = userID
	f.calls++
	return f.result, f.err
}

func runThrottle(t *testing.T, limiter UserLimiter, limit int64, user *models.User) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tags", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(string(UserKey), user)
	}

	handler := Throttle(limiter, limit, time.Minute)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec
}

func TestThrottleAllows(t *testing.T) {
	limiter := &fakeLimiter{result: &ratelimit.Result{Allowed: true, CurrentCount: 1, Limit: 120}}

	rec := runThrottle(t, limiter, 120, &models.User{ID: 7})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), limiter.gotUserID)
}

func TestThrottleRejectsOverBudget(t *testing.T) {
	limiter := &fakeLimiter{result: &ratelimit.Result{Allowed: false, CurrentCount: 121, Limit: 120, RetryAfterSeconds: 42}}

	rec := runThrottle(t, limiter, 120, &models.User{ID: 7})

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "42", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "throttled")
}

func TestThrottleDisabledByZeroLimit(t *testing.T) {
	limiter := &fakeLimiter{}

	rec := runThrottle(t, limiter, 0, &models.User{ID: 7})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, limiter.calls)
}

func TestThrottleSkipsAnonymous(t *testing.T) {
	limiter := &fakeLimiter{}

	rec := runThrottle(t, limiter, 120, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, limiter.calls)
}

func TestThrottleFailsOpen(t *testing.T) {
	limiter := &fakeLimiter{err: errors.New("connection refused")}

	rec := runThrottle(t, limiter, 120, &models.User{ID: 7})

	assert.Equal(t, http.StatusOK, rec.Code)
}
