package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunewave/tunewave/internal/authz"
	"github.com/tunewave/tunewave/internal/models"
	"github.com/tunewave/tunewave/internal/service"
)

func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, *authz.Principal) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *authz.Principal
	handler := mw(func(c echo.Context) error {
		if p, ok := GetPrincipal(c); ok {
			seen = &p
		}
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, seen
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	tokens := service.NewTokenManager("secret", time.Minute)
	rec, seen := runMiddleware(t, RequireAuth(tokens), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	tokens := service.NewTokenManager("secret", time.Minute)
	rec, seen := runMiddleware(t, RequireAuth(tokens), "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	tokens := service.NewTokenManager("secret", time.Minute)
	token, err := tokens.CreateToken(authz.Principal{UserID: 5, Role: models.RoleUser})
	require.NoError(t, err)

	rec, seen := runMiddleware(t, RequireAuth(tokens), "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, int64(5), seen.UserID)
	assert.Equal(t, models.RoleUser, seen.Role)
}

func TestOptionalAuthPassesAnonymous(t *testing.T) {
	tokens := service.NewTokenManager("secret", time.Minute)
	rec, seen := runMiddleware(t, OptionalAuth(tokens), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, seen)
}

func TestRequireAdminRejectsPlainUser(t *testing.T) {
	tokens := service.NewTokenManager("secret", time.Minute)
	token, err := tokens.CreateToken(authz.Principal{UserID: 5, Role: models.RoleUser})
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireAuth(tokens)(RequireAdmin()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}))
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
