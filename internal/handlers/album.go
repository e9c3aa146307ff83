package handlers

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/tunewave/tunewave/internal/authz"
	"github.com/tunewave/tunewave/internal/models"
)

// albumOwner adapts the music service getter for the ownership resolver.
func (h *Handlers) albumOwner(ctx context.Context, id int64) (authz.OwnedResource, error) {
	return h.services.Music.GetAlbum(ctx, id)
}

// CreateAlbum creates an empty album, with an optional cover image.
func (h *Handlers) CreateAlbum(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	var req models.CreateAlbumRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	artistID, err := authz.ResolveOwner(p, req.ArtistID)
	if err != nil {
		return handleError(c, err)
	}
	cover, coverType, err := readOptionalFormFile(c, "cover_file")
	if err != nil {
		return handleError(c, err)
	}

	album, err := h.services.Music.CreateAlbum(c.Request().Context(), models.NewAlbum{
		Name:        req.Name,
		ArtistID:    artistID,
		ReleaseDate: req.ReleaseDate,
	})
	if err != nil {
		return handleError(c, err)
	}
	if len(cover) > 0 {
		if err := h.services.Music.UpdateAlbumImage(c.Request().Context(), album.ID, cover, coverType); err != nil {
			return handleError(c, err)
		}
	}
	return created(c, album)
}

// GetAlbum fetches album metadata.
func (h *Handlers) GetAlbum(c echo.Context) error {
	var q idQuery
	if err := bindAndValidate(c, &q); err != nil {
		return handleError(c, err)
	}
	id, err := requireID(q.ID)
	if err != nil {
		return handleError(c, err)
	}

	album, err := h.services.Music.GetAlbum(c.Request().Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, album)
}

// SearchAlbums lists albums by the given filters.
func (h *Handlers) SearchAlbums(c echo.Context) error {
	var params models.AlbumSearchParams
	if err := bindAndValidate(c, &params); err != nil {
		return handleError(c, err)
	}
	albums, err := h.services.Music.SearchAlbums(c.Request().Context(), params)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, albums)
}

// GetAlbumImage serves the album cover.
func (h *Handlers) GetAlbumImage(c echo.Context) error {
	var q idQuery
	if err := bindAndValidate(c, &q); err != nil {
		return handleError(c, err)
	}
	id, err := requireID(q.ID)
	if err != nil {
		return handleError(c, err)
	}

	data, err := h.services.Music.GetAlbumImage(c.Request().Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return pngResponse(c, data)
}

// UpdateAlbum merges the set fields into the album; owner or admin only.
func (h *Handlers) UpdateAlbum(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	var req models.UpdateAlbumRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	if err := authz.ResolveOwnedResource(c.Request().Context(), p, req.ID, h.albumOwner); err != nil {
		return handleError(c, err)
	}
	id, err := requireID(req.ID)
	if err != nil {
		return handleError(c, err)
	}

	album, err := h.services.Music.UpdateAlbum(c.Request().Context(), id, req)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, album)
}

// UpdateAlbumImage replaces the album cover; owner or admin only.
func (h *Handlers) UpdateAlbumImage(c echo.Context) error {
	id, err := h.resolveOwnedAlbum(c)
	if err != nil {
		return handleError(c, err)
	}
	data, contentType, err := readFormFile(c, "cover_file")
	if err != nil {
		return handleError(c, err)
	}

	if err := h.services.Music.UpdateAlbumImage(c.Request().Context(), id, data, contentType); err != nil {
		return handleError(c, err)
	}
	return success(c, nil)
}

// DeleteAlbum removes the album, all its tracks, and their blobs; owner or
// admin only.
func (h *Handlers) DeleteAlbum(c echo.Context) error {
	id, err := h.resolveOwnedAlbum(c)
	if err != nil {
		return handleError(c, err)
	}
	if err := h.services.Music.DeleteAlbum(c.Request().Context(), id); err != nil {
		return handleError(c, err)
	}
	return noContent(c)
}

// DeleteAlbumImage removes the album cover; owner or admin only.
func (h *Handlers) DeleteAlbumImage(c echo.Context) error {
	id, err := h.resolveOwnedAlbum(c)
	if err != nil {
		return handleError(c, err)
	}
	if err := h.services.Music.DeleteAlbumImage(c.Request().Context(), id); err != nil {
		return handleError(c, err)
	}
	return noContent(c)
}

func (h *Handlers) resolveOwnedAlbum(c echo.Context) (int64, error) {
	p, err := principal(c)
	if err != nil {
		return 0, err
	}
	var q idQuery
	if err := bindAndValidate(c, &q); err != nil {
		return 0, err
	}
	if err := authz.ResolveOwnedResource(c.Request().Context(), p, q.ID, h.albumOwner); err != nil {
		return 0, err
	}
	return requireID(q.ID)
}
