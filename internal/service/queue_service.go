package service

import (
	"context"

	"github.com/tunewave/tunewave/internal/models"
	"github.com/tunewave/tunewave/internal/repository"
)

// QueueServiceImpl implements QueueService.
type QueueServiceImpl struct {
	queue repository.QueueRepository
}

// NewQueueServiceImpl creates a new QueueServiceImpl.
func NewQueueServiceImpl(queue repository.QueueRepository) *QueueServiceImpl {
	return &QueueServiceImpl{queue: queue}
}

// PushLeft prepends a track to the caller's queue (play next).
func (s *QueueServiceImpl) PushLeft(ctx context.Context, userID, trackID int64) error {
	if trackID <= 0 {
		return models.ErrBadRequest
	}
	return s.queue.PushLeft(ctx, userID, trackID)
}

// PushRight appends a track to the caller's queue.
func (s *QueueServiceImpl) PushRight(ctx context.Context, userID, trackID int64) error {
	if trackID <= 0 {
		return models.ErrBadRequest
	}
	return s.queue.PushRight(ctx, userID, trackID)
}

// List reads a slice of the caller's queue.
func (s *QueueServiceImpl) List(ctx context.Context, userID int64, params models.QueueListParams) (*models.TrackQueue, error) {
	if params.Offset < 0 || params.Limit < 0 {
		return nil, models.ErrBadRequest
	}
	return s.queue.List(ctx, userID, params)
}

// Delete drops the caller's queue.
func (s *QueueServiceImpl) Delete(ctx context.Context, userID int64) error {
	return s.queue.Delete(ctx, userID)
}

// Insert places a track before a queue position.
func (s *QueueServiceImpl) Insert(ctx context.Context, userID int64, req models.QueueInsertRequest) error {
	if req.TrackID <= 0 || req.QueueID < 0 {
		return models.ErrBadRequest
	}
	return s.queue.Insert(ctx, userID, req.TrackID, req.QueueID)
}

// Move relocates a queue element.
func (s *QueueServiceImpl) Move(ctx context.Context, userID int64, req models.QueueMoveRequest) error {
	if req.SrcID < 0 || req.DestID < 0 {
		return models.ErrBadRequest
	}
	return s.queue.Move(ctx, userID, req.SrcID, req.DestID)
}

// Remove drops a queue element by position.
func (s *QueueServiceImpl) Remove(ctx context.Context, userID int64, req models.QueueRemoveRequest) error {
	if req.ID < 0 {
		return models.ErrBadRequest
	}
	return s.queue.Remove(ctx, userID, req.ID)
}
