package handlers

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/tunewave/tunewave/internal/authz"
	"github.com/tunewave/tunewave/internal/models"
)

// Subscribe subscribes the caller (or, for admins, any user) to an artist.
func (h *Handlers) Subscribe(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	var req models.SubscribeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	subscriberID, err := authz.ResolveOwner(p, req.SubscriberID)
	if err != nil {
		return handleError(c, err)
	}

	err = h.services.Account.Subscribe(c.Request().Context(), models.Subscription{
		SubscriberID: subscriberID,
		ArtistID:     req.ArtistID,
	})
	if err != nil {
		return handleError(c, err)
	}
	return created(c, nil)
}

// Unsubscribe removes a subscription.
func (h *Handlers) Unsubscribe(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	var req models.SubscribeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, err)
	}
	subscriberID, err := authz.ResolveOwner(p, req.SubscriberID)
	if err != nil {
		return handleError(c, err)
	}

	err = h.services.Account.Unsubscribe(c.Request().Context(), models.Subscription{
		SubscriberID: subscriberID,
		ArtistID:     req.ArtistID,
	})
	if err != nil {
		return handleError(c, err)
	}
	return noContent(c)
}

// GetSubscriptions lists the artists the user follows.
func (h *Handlers) GetSubscriptions(c echo.Context) error {
	return h.listSubscriptionSide(c, h.services.Account.ListSubscriptions)
}

// GetSubscribers lists the users following the artist.
func (h *Handlers) GetSubscribers(c echo.Context) error {
	return h.listSubscriptionSide(c, h.services.Account.ListSubscribers)
}

func (h *Handlers) listSubscriptionSide(
	c echo.Context,
	list func(ctx context.Context, userID int64, skip, limit int) ([]models.Artist, error),
) error {
	p, err := principal(c)
	if err != nil {
		return handleError(c, err)
	}
	var params models.SubscriptionListParams
	if err := bindAndValidate(c, &params); err != nil {
		return handleError(c, err)
	}
	id, err := authz.ResolveOwner(p, params.ID)
	if err != nil {
		return handleError(c, err)
	}

	artists, err := list(c.Request().Context(), id, params.Skip, params.Limit)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, artists)
}

// GetSubscriberCount reports how many users follow the artist.
func (h *Handlers) GetSubscriberCount(c echo.Context) error {
	var q idQuery
	if err := bindAndValidate(c, &q); err != nil {
		return handleError(c, err)
	}
	id, err := h.publicTargetID(c, q.ID)
	if err != nil {
		return handleError(c, err)
	}

	count, err := h.services.Account.SubscriberCount(c.Request().Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	return success(c, count)
}
