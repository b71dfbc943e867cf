package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"castle-admin/core/config"
	"castle-admin/core/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func runAdmin(t *testing.T, authHeader string) (*httptest.ResponseRecorder, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := NewMiddleware(config.AdminConfig{Emails: "owner@example.com", JWTSecret: secret})
	err := mw.AdminMiddleware()(func(c echo.Context) error {
		called = true
		assert.Equal(t, "owner@example.com", AdminEmail(c))
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, called, err
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	return he.Code
}

func TestAdminMiddlewareMissingHeader(t *testing.T) {
	_, called, err := runAdmin(t, "")
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestAdminMiddlewareBadScheme(t *testing.T) {
	_, called, err := runAdmin(t, "Basic abc")
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestAdminMiddlewareNonAdmin(t *testing.T) {
	token, err := utils.GenerateAdminToken(secret, "intruder@example.com", time.Hour)
	require.NoError(t, err)

	_, called, err := runAdmin(t, "Bearer "+token)
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))
}

func TestAdminMiddlewareExpired(t *testing.T) {
	token, err := utils.GenerateAdminToken(secret, "owner@example.com", -time.Minute)
	require.NoError(t, err)

	_, called, err := runAdmin(t, "Bearer "+token)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestAdminMiddlewareAllowsAdmin(t *testing.T) {
	token, err := utils.GenerateAdminToken(secret, "Owner@Example.com", time.Hour)
	require.NoError(t, err)

	rec, called, err := runAdmin(t, "Bearer "+token)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}
