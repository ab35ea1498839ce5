package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pashadev/cadvault/cmd/catalog/models"
	"github.com/pashadev/cadvault/common/errs"
)

type fakeUserSvc struct {
	user *models.User
	err  error
}

func (f *fakeUserSvc) Register(ctx context.Context, email, password string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type fakeAuthSvc struct {
	token string
	err   error
}

func (f *fakeAuthSvc) IssueToken(ctx context.Context, email, password string) (string, error) {
	return f.token, f.err
}

func TestUserRegister(t *testing.T) {
	e := echo.New()
	users := &fakeUserSvc{user: &models.User{ID: 1, Email: "bob@example.com", IsActive: true}}
	h := NewUserHandler(users, &fakeAuthSvc{}, testLogger())

	payload := `{"email": "bob@example.com", "password": "hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Register(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "bob@example.com", body["email"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")
}

func TestUserRegisterValidationError(t *testing.T) {
	e := echo.New()
	users := &fakeUserSvc{err: errs.NewValidation("password", "must be at least 5 characters")}
	h := NewUserHandler(users, &fakeAuthSvc{}, testLogger())

	payload := `{"email": "bob@example.com", "password": "ab"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Register(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "password")
}

func TestUserToken(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&fakeUserSvc{}, &fakeAuthSvc{token: "abc-123"}, testLogger())

	payload := `{"email": "bob@example.com", "password": "hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/token", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Token(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"token": "abc-123"}`, rec.Body.String())
}

func TestUserTokenBadCredentials(t *testing.T) {
	e := echo.New()
	auth := &fakeAuthSvc{err: errs.NewValidation("non_field_errors", "unable to authenticate with provided credentials")}
	h := NewUserHandler(&fakeUserSvc{}, auth, testLogger())

	payload := `{"email": "bob@example.com", "password": "wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/token", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Token(e.NewContext(req, rec)))

	// Bad credentials are a validation failure, not a 401
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "non_field_errors")
}

func TestUserMe(t *testing.T) {
	e := echo.New()
	h := NewUserHandler(&fakeUserSvc{}, &fakeAuthSvc{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Me(authedContext(e, req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "test@pashadev.com", body["email"])
}
