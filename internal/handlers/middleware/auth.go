package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tunewave/tunewave/internal/authz"
	"github.com/tunewave/tunewave/internal/models"
	"github.com/tunewave/tunewave/internal/service"
)

// principalKey stores the decoded token claims on the echo context.
const principalKey = "auth_principal"

// RequireAuth rejects requests without a valid bearer token and stores the
// decoded principal for the handlers.
func RequireAuth(tokens *service.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := principalFromRequest(c, tokens)
			if principal == nil {
				return c.JSON(http.StatusUnauthorized, models.NewErrorResponse(models.ErrInvalidToken))
			}
			c.Set(principalKey, *principal)
			return next(c)
		}
	}
}

// OptionalAuth decodes the token when present but lets anonymous requests
// through; used by the public-read endpoints.
func OptionalAuth(tokens *service.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if principal := principalFromRequest(c, tokens); principal != nil {
				c.Set(principalKey, *principal)
			}
			return next(c)
		}
	}
}

// RequireAdmin rejects every caller without the admin role. It must run
// after RequireAuth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := GetPrincipal(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, models.NewErrorResponse(models.ErrUnauthorized))
			}
			if err := authz.RequireAdmin(principal); err != nil {
				return c.JSON(http.StatusForbidden, models.NewErrorResponse(models.ErrForbidden))
			}
			return next(c)
		}
	}
}

// GetPrincipal returns the authenticated caller stored by the auth
// middleware.
func GetPrincipal(c echo.Context) (authz.Principal, bool) {
	principal, ok := c.Get(principalKey).(authz.Principal)
	return principal, ok
}

func principalFromRequest(c echo.Context, tokens *service.TokenManager) *authz.Principal {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return nil
	}
	return tokens.VerifyToken(token)
}
