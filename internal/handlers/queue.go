package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/tunewave/tunewave/internal/models"
)

// QueuePushLeft adds a track to the front of the caller's queue (play next).
func (h *Handlers) QueuePushLeft(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	var req models.QueueTrackRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	if err := h.services.Queue.PushLeft(c.Request().Context(), p.UserID, req.ID); err != nil {
		return handleError(c, err)
	}
	return success(c, nil)
}

// QueuePushRight adds a track to the end of the caller's queue.
func (h *Handlers) QueuePushRight(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	var req models.QueueTrackRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	if err := h.services.Queue.PushRight(c.Request().Context(), p.UserID, req.ID); err != nil {
		return handleError(c, err)
	}
	return success(c, nil)
}

// QueueList reads a slice of the caller's queue.
func (h *Handlers) QueueList(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	var params models.QueueListParams
	if err := bindAndValidate(c, &params); err != nil {
		return handleError(c, err)
	}
	queue, err := h.services.Queue.List(c.Request().Context(), p.UserID, params)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, queue)
}

// QueueDelete drops the caller's queue.
func (h *Handlers) QueueDelete(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	if err := h.services.Queue.Delete(c.Request().Context(), p.UserID); err != nil {
		return handleError(c, err)
	}
	return success(c, nil)
}

// QueueInsert inserts a track before the given queue position.
func (h *Handlers) QueueInsert(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	var req models.QueueInsertRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	if err := h.services.Queue.Insert(c.Request().Context(), p.UserID, req); err != nil {
		return handleError(c, err)
	}
	return success(c, nil)
}

// QueueMove moves a queue element from one position to another.
func (h *Handlers) QueueMove(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	var req models.QueueMoveRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	if err := h.services.Queue.Move(c.Request().Context(), p.UserID, req); err != nil {
		return handleError(c, err)
	}
	return success(c, nil)
}

// QueueRemove drops a queue element by position.
func (h *Handlers) QueueRemove(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	var req models.QueueRemoveRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	if err := h.services.Queue.Remove(c.Request().Context(), p.UserID, req); err != nil {
		return handleError(c, err)
	}
	return success(c, nil)
}
