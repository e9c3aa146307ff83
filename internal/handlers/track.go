package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tunewave/tunewave/internal/authz"
	"github.com/tunewave/tunewave/internal/models"
)

// trackOwner adapts the music service getter for the ownership resolver.
func (h *Handlers) trackOwner(ctx context.Context, id int64) (authz.OwnedResource, error) {
	return h.services.Music.GetTrack(ctx, id)
}

// CreateSingle uploads a track together with its auto-created album.
func (h *Handlers) CreateSingle(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	var req models.CreateSingleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	artistID, err := authz.ResolveOwner(p, req.ArtistID)
	if err != nil {
		return handleError(c, err)
	}
	audio, audioType, err := readFormFile(c, "track_file")
	if err != nil {
		return handleError(c, err)
	}
	cover, coverType, err := readOptionalFormFile(c, "cover_file")
	if err != nil {
		return handleError(c, err)
	}

	track, err := h.services.Music.CreateSingle(c.Request().Context(), req, artistID, audio, audioType, cover, coverType)
	if err != nil {
		return handleError(c, err)
	}
	return created(c, track)
}

// CreateTrack uploads a track into an existing album.
func (h *Handlers) CreateTrack(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	var req models.CreateTrackRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	artistID, err := authz.ResolveOwner(p, req.ArtistID)
	if err != nil {
		return handleError(c, err)
	}
	audio, audioType, err := readFormFile(c, "track_file")
	if err != nil {
		return handleError(c, err)
	}

	track, err := h.services.Music.CreateTrack(c.Request().Context(), req, artistID, audio, audioType)
	if err != nil {
		return handleError(c, err)
	}
	return created(c, track)
}

// GetTrack fetches track metadata.
func (h *Handlers) GetTrack(c echo.Context) error {
	var q idQuery
	if err := bindAndValidate(c, &q); err != nil {
		return handleError(c, err)
	}
	id, err := requireID(q.ID)
	if err != nil {
		return handleError(c, err)
	}

	track, err := h.services.Music.GetTrack(c.Request().Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, track)
}

// SearchTracks lists tracks by the given filters.
func (h *Handlers) SearchTracks(c echo.Context) error {
	var params models.TrackSearchParams
	if err := bindAndValidate(c, &params); err != nil {
		return handleError(c, err)
	}
	tracks, err := h.services.Music.SearchTracks(c.Request().Context(), params)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, tracks)
}

// StreamTrack serves a byte range of the track's audio as a 206 response.
func (h *Handlers) StreamTrack(c echo.Context) error {
	var q idQuery
	if err := bindAndValidate(c, &q); err != nil {
		return handleError(c, err)
	}
	id, err := requireID(q.ID)
	if err != nil {
		return handleError(c, err)
	}
	start, end, err := parseRangeHeader(c.Request().Header.Get("Range"))
	if err != nil {
		return handleError(c, err)
	}

	stream, err := h.services.Music.StreamTrack(c.Request().Context(), id, start, end)
	if err != nil {
		return handleError(c, err)
	}
	defer stream.Stream.Close()

	header := c.Response().Header()
	header.Set("Accept-Ranges", "bytes")
	header.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", stream.Start, stream.End, stream.Size))
	header.Set(echo.HeaderContentLength, strconv.FormatInt(stream.ContentLength, 10))
	return c.Stream(http.StatusPartialContent, "audio/mpeg", stream.Stream)
}

// GetTrackImage serves the cover of the track's album.
func (h *Handlers) GetTrackImage(c echo.Context) error {
	var q idQuery
	if err := bindAndValidate(c, &q); err != nil {
		return handleError(c, err)
	}
	id, err := requireID(q.ID)
	if err != nil {
		return handleError(c, err)
	}

	data, err := h.services.Music.GetTrackImage(c.Request().Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return pngResponse(c, data)
}

// UpdateTrack merges the set fields into the track; owner or admin only.
func (h *Handlers) UpdateTrack(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	var req models.UpdateTrackRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	if err := authz.ResolveOwnedResource(c.Request().Context(), p, req.ID, h.trackOwner); err != nil {
		return handleError(c, err)
	}
	id, err := requireID(req.ID)
	if err != nil {
		return handleError(c, err)
	}

	track, err := h.services.Music.UpdateTrack(c.Request().Context(), id, req)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, track)
}

// UpdateTrackFile replaces the track's audio; owner or admin only.
func (h *Handlers) UpdateTrackFile(c echo.Context) error {
	id, err := h.resolveOwnedTrack(c)
	if err != nil {
		return handleError(c, err)
	}
	audio, audioType, err := readFormFile(c, "track_file")
	if err != nil {
		return handleError(c, err)
	}

	if err := h.services.Music.UpdateTrackFile(c.Request().Context(), id, audio, audioType); err != nil {
		return handleError(c, err)
	}
	return success(c, nil)
}

// UpdateTrackImage replaces the cover of the track's album; owner or admin
// only.
func (h *Handlers) UpdateTrackImage(c echo.Context) error {
	id, err := h.resolveOwnedTrack(c)
	if err != nil {
		return handleError(c, err)
	}
	data, contentType, err := readFormFile(c, "cover_file")
	if err != nil {
		return handleError(c, err)
	}

	if err := h.services.Music.UpdateTrackImage(c.Request().Context(), id, data, contentType); err != nil {
		return handleError(c, err)
	}
	return success(c, nil)
}

// DeleteTrack removes the track, its audio, and possibly its emptied album;
// owner or admin only.
func (h *Handlers) DeleteTrack(c echo.Context) error {
	id, err := h.resolveOwnedTrack(c)
	if err != nil {
		return handleError(c, err)
	}
	if err := h.services.Music.DeleteTrack(c.Request().Context(), id); err != nil {
		return handleError(c, err)
	}
	return noContent(c)
}

// DeleteTrackImage removes the cover of the track's album; owner or admin
// only.
func (h *Handlers) DeleteTrackImage(c echo.Context) error {
	id, err := h.resolveOwnedTrack(c)
	if err != nil {
		return handleError(c, err)
	}
	if err := h.services.Music.DeleteTrackImage(c.Request().Context(), id); err != nil {
		return handleError(c, err)
	}
	return noContent(c)
}

// resolveOwnedTrack binds the id parameter and applies the owner-or-admin
// rule against the referenced track.
func (h *Handlers) resolveOwnedTrack(c echo.Context) (int64, error) {
	p, err := principal(c)
	if err != nil {
		return 0, err
	}
	var q idQuery
	if err := bindAndValidate(c, &q); err != nil {
		return 0, err
	}
	if err := authz.ResolveOwnedResource(c.Request().Context(), p, q.ID, h.trackOwner); err != nil {
		return 0, err
	}
	return requireID(q.ID)
}

// parseRangeHeader parses "bytes=<start?>-<end?>". An absent header means
// full-object semantics; a non-bytes unit or a malformed byte window is a
// client error.
func parseRangeHeader(header string) (*int64, *int64, error) {
	if header == "" {
		return nil, nil, nil
	}
	unit, window, found := strings.Cut(header, "=")
	if !found {
		return nil, nil, models.ErrMalformedRange
	}
	if strings.TrimSpace(unit) != "bytes" {
		return nil, nil, models.ErrInvalidRangeUnit
	}
	rawStart, rawEnd, found := strings.Cut(window, "-")
	if !found {
		return nil, nil, models.ErrMalformedRange
	}
	rawStart = strings.TrimSpace(rawStart)
	rawEnd = strings.TrimSpace(rawEnd)
	if rawStart == "" && rawEnd == "" {
		// "bytes=-" carries no bounds at all; treat it like an absent
		// header rather than rejecting it.
		return nil, nil, nil
	}

	var start, end *int64
	if rawStart != "" {
		v, err := strconv.ParseInt(rawStart, 10, 64)
		if err != nil || v < 0 {
			return nil, nil, models.ErrMalformedRange
		}
		start = &v
	}
	if rawEnd != "" {
		v, err := strconv.ParseInt(rawEnd, 10, 64)
		if err != nil || v < 0 {
			return nil, nil, models.ErrMalformedRange
		}
		end = &v
	}
	return start, end, nil
}
