package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tunewave/tunewave/internal/authz"
	"github.com/tunewave/tunewave/internal/models"
)

// activityListRequest pairs a filter with its pagination.
type activityListRequest struct {
	models.ActivityFilter
	models.ActivityPage
}

// AddActivity appends one telemetry event.
func (h *Handlers) AddActivity(c echo.Context) error {
	var req models.CreateActivityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	activity, err := h.services.Activity.Add(c.Request().Context(), req)
	if err != nil {
		return handleError(c, err)
	}
	return created(c, activity)
}

// GetActivity fetches one telemetry record by id.
func (h *Handlers) GetActivity(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return handleError(c, models.ErrBadRequest)
	}
	activity, err := h.services.Activity.Get(c.Request().Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, activity)
}

// ListActivities lists telemetry records matching the filter.
func (h *Handlers) ListActivities(c echo.Context) error {
	var req activityListRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	activities, err := h.services.Activity.List(c.Request().Context(), req.ActivityFilter, req.ActivityPage)
	if err != nil {
		return handleError(c, err)
	}
	if activities == nil {
		activities = []models.UserActivity{}
	}
	return success(c, activities)
}

// DeleteActivities removes telemetry records matching the filter.
func (h *Handlers) DeleteActivities(c echo.Context) error {
	var filter models.ActivityFilter
	if err := bindAndValidate(c, &filter); err != nil {
		return handleError(c, err)
	}
	if err := h.services.Activity.Delete(c.Request().Context(), filter); err != nil {
		return handleError(c, err)
	}
	return success(c, nil)
}

// MostPlayedTracks ranks tracks by play count; analysts and admins only.
func (h *Handlers) MostPlayedTracks(c echo.Context) error {
	page, err := h.analystPage(c)
	if err != nil {
		return handleError(c, err)
	}
	result, err := h.services.Activity.MostPlayedTracks(c.Request().Context(), *page)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, result)
}

// DailyActiveUsers counts distinct active users per day; analysts and
// admins only.
func (h *Handlers) DailyActiveUsers(c echo.Context) error {
	page, err := h.analystPage(c)
	if err != nil {
		return handleError(c, err)
	}
	result, err := h.services.Activity.DailyActiveUsers(c.Request().Context(), *page)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, result)
}

// TracksCompletionRate reports skips over plays per track; analysts and
// admins only.
func (h *Handlers) TracksCompletionRate(c echo.Context) error {
	page, err := h.analystPage(c)
	if err != nil {
		return handleError(c, err)
	}
	result, err := h.services.Activity.TracksCompletionRate(c.Request().Context(), *page)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, result)
}

// analystPage gates the aggregation endpoints on the analyst (or admin)
// role and binds their pagination.
func (h *Handlers) analystPage(c echo.Context) (*models.ActivityPage, error) {
	p, err := principal(c)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireAnalyst(p); err != nil {
		return nil, err
	}
	var page models.ActivityPage
	if err := bindAndValidate(c, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
