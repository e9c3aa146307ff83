package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/tunewave/tunewave/internal/authz"
	"github.com/tunewave/tunewave/internal/models"
)

// idQuery is the id-by-query-parameter shape shared by the singular GET,
// PUT, and DELETE endpoints.
type idQuery struct {
	ID *int64 `query:"id" json:"id,omitempty"`
}

// loginNext is where clients are sent after register or login.
const loginNext = "/home"

// Register creates an account with the user role, stores the optional
// profile image, and returns a session token.
func (h *Handlers) Register(c echo.Context) error {
	var req models.CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	cover, coverType, err := readOptionalFormFile(c, "cover_file")
	if err != nil {
		return handleError(c, err)
	}

	user, err := h.services.Account.CreateUser(c.Request().Context(), req, models.RoleUser, cover, coverType)
	if err != nil {
		return handleError(c, err)
	}

	token, err := h.services.Tokens.CreateToken(authz.Principal{UserID: user.ID, Role: user.Role})
	if err != nil {
		return handleError(c, err)
	}
	return created(c, models.LoginRegisterResponse{Token: token, Next: loginNext})
}

// Login verifies credentials and returns a session token.
func (h *Handlers) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}

	user, err := h.services.Account.Login(c.Request().Context(), req)
	if err != nil {
		return handleError(c, err)
	}

	token, err := h.services.Tokens.CreateToken(authz.Principal{UserID: user.ID, Role: user.Role})
	if err != nil {
		return handleError(c, err)
	}
	return success(c, models.LoginRegisterResponse{Token: token, Next: loginNext})
}

// GetUser returns the caller's account, or any account for admins.
func (h *Handlers) GetUser(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	var q idQuery
	if err := bindAndValidate(c, &q); err != nil {
		return handleError(c, err)
	}
	id, err := authz.ResolveOwner(p, q.ID)
	if err != nil {
		return handleError(c, err)
	}

	user, err := h.services.Account.GetUser(c.Request().Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, user)
}

// SearchUsers lists accounts; admin only.
func (h *Handlers) SearchUsers(c echo.Context) error {
	var params models.UserSearchParams
	if err := bindAndValidate(c, &params); err != nil {
		return handleError(c, err)
	}
	users, err := h.services.Account.SearchUsers(c.Request().Context(), params)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, users)
}

// GetArtist returns the public artist profile of a user.
func (h *Handlers) GetArtist(c echo.Context) error {
	var q idQuery
	if err := bindAndValidate(c, &q); err != nil {
		return handleError(c, err)
	}
	id, err := h.publicTargetID(c, q.ID)
	if err != nil {
		return handleError(c, err)
	}

	artist, err := h.services.Account.GetArtist(c.Request().Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, artist)
}

// SearchArtists lists public artist profiles.
func (h *Handlers) SearchArtists(c echo.Context) error {
	var params models.ArtistSearchParams
	if err := bindAndValidate(c, &params); err != nil {
		return handleError(c, err)
	}
	artists, err := h.services.Account.SearchArtists(c.Request().Context(), params)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, artists)
}

// GetUserImage serves a user's profile image.
func (h *Handlers) GetUserImage(c echo.Context) error {
	var q idQuery
	if err := bindAndValidate(c, &q); err != nil {
		return handleError(c, err)
	}
	id, err := h.publicTargetID(c, q.ID)
	if err != nil {
		return handleError(c, err)
	}

	data, err := h.services.Account.GetUserImage(c.Request().Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return pngResponse(c, data)
}

// UpdateUser merges the set fields into the caller's account, or any
// account for admins.
func (h *Handlers) UpdateUser(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	var req models.UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	id, err := authz.ResolveOwner(p, req.ID)
	if err != nil {
		return handleError(c, err)
	}

	user, err := h.services.Account.UpdateUser(c.Request().Context(), id,
		models.UpdateUserRoleRequest{UpdateUserRequest: req})
	if err != nil {
		return handleError(c, err)
	}
	return success(c, user)
}

// UpdateUserRole also changes the role; admin only.
func (h *Handlers) UpdateUserRole(c echo.Context) error {
	var req models.UpdateUserRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	if req.Role != nil && !req.Role.Valid() {
		return handleError(c, models.NewValidationError("unknown role"))
	}
	id, err := requireID(req.ID)
	if err != nil {
		return handleError(c, err)
	}

	user, err := h.services.Account.UpdateUser(c.Request().Context(), id, req)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, user)
}

// UpdateUserImage replaces a user's profile image.
func (h *Handlers) UpdateUserImage(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	var q idQuery
	if err := bindAndValidate(c, &q); err != nil {
		return handleError(c, err)
	}
	id, err := authz.ResolveOwner(p, q.ID)
	if err != nil {
		return handleError(c, err)
	}
	data, contentType, err := readFormFile(c, "cover_file")
	if err != nil {
		return handleError(c, err)
	}

	if err := h.services.Account.UpdateUserImage(c.Request().Context(), id, data, contentType); err != nil {
		return handleError(c, err)
	}
	return success(c, nil)
}

// DeleteUser removes an account and everything it owns.
func (h *Handlers) DeleteUser(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	var q idQuery
	if err := bindAndValidate(c, &q); err != nil {
		return handleError(c, err)
	}
	id, err := authz.ResolveOwner(p, q.ID)
	if err != nil {
		return handleError(c, err)
	}

	if err := h.services.Account.DeleteUser(c.Request().Context(), id); err != nil {
		return handleError(c, err)
	}
	return noContent(c)
}

// DeleteUserImage removes a user's profile image.
func (h *Handlers) DeleteUserImage(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	var q idQuery
	if err := bindAndValidate(c, &q); err != nil {
		return handleError(c, err)
	}
	id, err := authz.ResolveOwner(p, q.ID)
	if err != nil {
		return handleError(c, err)
	}

	if err := h.services.Account.DeleteUserImage(c.Request().Context(), id); err != nil {
		return handleError(c, err)
	}
	return noContent(c)
}

// publicTargetID resolves an optional target id on a public-read endpoint:
// a set id may be anyone's; an unset id means the caller and therefore
// requires authentication.
func (h *Handlers) publicTargetID(c echo.Context, id *int64) (int64, error) {
	if id != nil {
		return *id, nil
	}
	p, err := principal(c)
	if err != nil {
		return 0, err
	}
	return authz.ResolveUserOrPublic(p, nil), nil
}
