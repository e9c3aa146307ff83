package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tunewave/tunewave/internal/models"
)

// bootstrapAdminRequest carries the credentials of the first admin account.
type bootstrapAdminRequest struct {
	Name     string `json:"name" form:"name"`
	Username string `json:"username" form:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" form:"password" validate:"required,min=1"`
}

// BootstrapAdmin creates the first admin account. The endpoint is guarded
// by basic auth against the bootstrap key and refuses to run once any admin
// exists.
func (h *Handlers) BootstrapAdmin(c echo.Context) error {
	username, password, ok := c.Request().BasicAuth()
	if !ok || username != "bootstrap" ||
		subtle.ConstantTimeCompare([]byte(password), []byte(h.bootstrapKey)) != 1 {
		return c.JSON(http.StatusUnauthorized, models.NewErrorResponse(models.ErrUnauthorized))
	}

	var req bootstrapAdminRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	if req.Name == "" {
		req.Name = req.Username
	}

	hasAdmin, err := h.services.Account.HasAdmin(c.Request().Context())
	if err != nil {
		return handleError(c, err)
	}
	if hasAdmin {
		return handleError(c, models.NewAPIError("BAD_REQUEST", "an admin already exists", http.StatusBadRequest))
	}

	user, err := h.services.Account.CreateUser(c.Request().Context(), models.CreateUserRequest{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
	}, models.RoleAdmin, nil, "")
	if err != nil {
		return handleError(c, err)
	}
	return created(c, user)
}
