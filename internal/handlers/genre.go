package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/tunewave/tunewave/internal/models"
)

// CreateGenre creates a genre; any authenticated user may add one.
func (h *Handlers) CreateGenre(c echo.Context) error {
	var req models.CreateGenreRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	genre, err := h.services.Music.CreateGenre(c.Request().Context(), req)
	if err != nil {
		return handleError(c, err)
	}
	return created(c, genre)
}

// GetGenre fetches a genre by id.
func (h *Handlers) GetGenre(c echo.Context) error {
	var q idQuery
	if err := bindAndValidate(c, &q); err != nil {
		return handleError(c, err)
	}
	id, err := requireID(q.ID)
	if err != nil {
		return handleError(c, err)
	}

	genre, err := h.services.Music.GetGenre(c.Request().Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, genre)
}

// SearchGenres lists genres by fuzzy name match.
func (h *Handlers) SearchGenres(c echo.Context) error {
	var params models.GenreSearchParams
	if err := bindAndValidate(c, &params); err != nil {
		return handleError(c, err)
	}
	genres, err := h.services.Music.SearchGenres(c.Request().Context(), params)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, genres)
}

// UpdateGenre renames a genre.
func (h *Handlers) UpdateGenre(c echo.Context) error {
	var req models.UpdateGenreRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	id, err := requireID(req.ID)
	if err != nil {
		return handleError(c, err)
	}

	genre, err := h.services.Music.UpdateGenre(c.Request().Context(), id, req)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, genre)
}

// DeleteGenre removes a genre; referencing tracks keep a null genre.
func (h *Handlers) DeleteGenre(c echo.Context) error {
	var q idQuery
	if err := bindAndValidate(c, &q); err != nil {
		return handleError(c, err)
	}
	id, err := requireID(q.ID)
	if err != nil {
		return handleError(c, err)
	}

	if err := h.services.Music.DeleteGenre(c.Request().Context(), id); err != nil {
		return handleError(c, err)
	}
	return noContent(c)
}
