package handlers

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/tunewave/tunewave/internal/authz"
	"github.com/tunewave/tunewave/internal/models"
)

// playlistOwner adapts the account service getter for the ownership
// resolver.
func (h *Handlers) playlistOwner(ctx context.Context, id int64) (authz.OwnedResource, error) {
	return h.services.Account.GetPlaylist(ctx, id)
}

// CreatePlaylist creates a playlist with an optional cover image.
func (h *Handlers) CreatePlaylist(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	var req models.CreatePlaylistRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	authorID, err := authz.ResolveOwner(p, req.AuthorID)
	if err != nil {
		return handleError(c, err)
	}
	image, imageType, err := readOptionalFormFile(c, "image_file")
	if err != nil {
		return handleError(c, err)
	}

	playlist, err := h.services.Account.CreatePlaylist(c.Request().Context(),
		models.NewPlaylist{AuthorID: authorID, Name: req.Name}, image, imageType)
	if err != nil {
		return handleError(c, err)
	}
	return created(c, playlist)
}

// GetPlaylist fetches playlist metadata.
func (h *Handlers) GetPlaylist(c echo.Context) error {
	var q idQuery
	if err := bindAndValidate(c, &q); err != nil {
		return handleError(c, err)
	}
	id, err := requireID(q.ID)
	if err != nil {
		return handleError(c, err)
	}

	playlist, err := h.services.Account.GetPlaylist(c.Request().Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, playlist)
}

// SearchPlaylists lists playlists by the given filters.
func (h *Handlers) SearchPlaylists(c echo.Context) error {
	var params models.PlaylistSearchParams
	if err := bindAndValidate(c, &params); err != nil {
		return handleError(c, err)
	}
	playlists, err := h.services.Account.SearchPlaylists(c.Request().Context(), params)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, playlists)
}

// GetPlaylistImage serves the playlist cover.
func (h *Handlers) GetPlaylistImage(c echo.Context) error {
	var q idQuery
	if err := bindAndValidate(c, &q); err != nil {
		return handleError(c, err)
	}
	id, err := requireID(q.ID)
	if err != nil {
		return handleError(c, err)
	}

	data, err := h.services.Account.GetPlaylistImage(c.Request().Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return pngResponse(c, data)
}

// UpdatePlaylist merges the set fields into the playlist; author or admin
// only.
func (h *Handlers) UpdatePlaylist(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	var req models.UpdatePlaylistRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	if err := authz.ResolveOwnedResource(c.Request().Context(), p, req.ID, h.playlistOwner); err != nil {
		return handleError(c, err)
	}
	id, err := requireID(req.ID)
	if err != nil {
		return handleError(c, err)
	}

	playlist, err := h.services.Account.UpdatePlaylist(c.Request().Context(), id, req)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, playlist)
}

// UpdatePlaylistImage replaces the playlist cover; author or admin only.
func (h *Handlers) UpdatePlaylistImage(c echo.Context) error {
	id, err := h.resolveOwnedPlaylist(c)
	if err != nil {
		return handleError(c, err)
	}
	data, contentType, err := readFormFile(c, "image_file")
	if err != nil {
		return handleError(c, err)
	}

	if err := h.services.Account.UpdatePlaylistImage(c.Request().Context(), id, data, contentType); err != nil {
		return handleError(c, err)
	}
	return success(c, nil)
}

// DeletePlaylist removes the playlist and its cover; author or admin only.
func (h *Handlers) DeletePlaylist(c echo.Context) error {
	id, err := h.resolveOwnedPlaylist(c)
	if err != nil {
		return handleError(c, err)
	}
	if err := h.services.Account.DeletePlaylist(c.Request().Context(), id); err != nil {
		return handleError(c, err)
	}
	return noContent(c)
}

// DeletePlaylistImage removes the playlist cover; author or admin only.
func (h *Handlers) DeletePlaylistImage(c echo.Context) error {
	id, err := h.resolveOwnedPlaylist(c)
	if err != nil {
		return handleError(c, err)
	}
	if err := h.services.Account.DeletePlaylistImage(c.Request().Context(), id); err != nil {
		return handleError(c, err)
	}
	return noContent(c)
}

// AddTrackToPlaylist records a playlist membership; author or admin only.
func (h *Handlers) AddTrackToPlaylist(c echo.Context) error {
	pt, err := h.resolveOwnedMembership(c)
	if err != nil {
		return handleError(c, err)
	}
	added, err := h.services.Account.AddTrackToPlaylist(c.Request().Context(), *pt)
	if err != nil {
		return handleError(c, err)
	}
	return created(c, added)
}

// RemoveTrackFromPlaylist removes a playlist membership; author or admin
// only.
func (h *Handlers) RemoveTrackFromPlaylist(c echo.Context) error {
	pt, err := h.resolveOwnedMembership(c)
	if err != nil {
		return handleError(c, err)
	}
	if err := h.services.Account.RemoveTrackFromPlaylist(c.Request().Context(), *pt); err != nil {
		return handleError(c, err)
	}
	return noContent(c)
}

func (h *Handlers) resolveOwnedPlaylist(c echo.Context) (int64, error) {
	p, err := principal(c)
	if err != nil {
		return 0, err
	}
	var q idQuery
	if err := bindAndValidate(c, &q); err != nil {
		return 0, err
	}
	if err := authz.ResolveOwnedResource(c.Request().Context(), p, q.ID, h.playlistOwner); err != nil {
		return 0, err
	}
	return requireID(q.ID)
}

func (h *Handlers) resolveOwnedMembership(c echo.Context) (*models.PlaylistTrack, error) {
	p, err := principal(c)
	if err != nil {
		return nil, err
	}
	var pt models.PlaylistTrack
	if err := bindAndValidate(c, &pt); err != nil {
		return nil, err
	}
	if err := authz.ResolveOwnedResource(c.Request().Context(), p, &pt.PlaylistID, h.playlistOwner); err != nil {
		return nil, err
	}
	return &pt, nil
}
