package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runJWT(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := JWT(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return c, rec, called
}

func TestJWTSetsIdentity(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token := issueToken(t, "test-secret", jwt.MapClaims{
		"user_id":  "user-1",
		"is_admin": true,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	c, rec, called := runJWT(t, "Bearer "+token)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", c.Get("user_id"))
	assert.Equal(t, true, c.Get("is_admin"))
}

func TestJWTRejectsMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, rec, called := runJWT(t, "")
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token := issueToken(t, "other-secret", jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	_, rec, called := runJWT(t, "Bearer "+token)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token := issueToken(t, "test-secret", jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})
	_, rec, called := runJWT(t, "Bearer "+token)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminGuard(t *testing.T) {
	e := echo.New()

	run := func(isAdmin any) (*httptest.ResponseRecorder, bool) {
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if isAdmin != nil {
			c.Set("is_admin", isAdmin)
		}
		called := false
		handler := AdminGuard(func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, handler(c))
		return rec, called
	}

	rec, called := run(true)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, called = run(false)
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, called = run(nil)
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
