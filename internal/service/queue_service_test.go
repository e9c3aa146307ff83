package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tunewave/tunewave/internal/models"
)

func TestQueuePushValidatesTrackID(t *testing.T) {
	repo := new(MockQueueRepository)
	svc := NewQueueServiceImpl(repo)

	assert.Error(t, svc.PushLeft(context.Background(), 1, 0))
	assert.Error(t, svc.PushRight(context.Background(), 1, -5))
	repo.AssertNotCalled(t, "PushLeft", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "PushRight", mock.Anything, mock.Anything, mock.Anything)
}

func TestQueuePushDelegates(t *testing.T) {
	repo := new(MockQueueRepository)
	svc := NewQueueServiceImpl(repo)

	repo.On("PushLeft", mock.Anything, int64(1), int64(101)).Return(nil)
	repo.On("PushRight", mock.Anything, int64(1), int64(102)).Return(nil)

	require.NoError(t, svc.PushLeft(context.Background(), 1, 101))
	require.NoError(t, svc.PushRight(context.Background(), 1, 102))
	repo.AssertExpectations(t)
}

func TestQueueListDelegates(t *testing.T) {
	repo := new(MockQueueRepository)
	svc := NewQueueServiceImpl(repo)

	want := &models.TrackQueue{TrackIDs: []int64{103, 101, 102}}
	repo.On("List", mock.Anything, int64(1), models.QueueListParams{}).Return(want, nil)

	got, err := svc.List(context.Background(), 1, models.QueueListParams{})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestQueueInsertValidates(t *testing.T) {
	repo := new(MockQueueRepository)
	svc := NewQueueServiceImpl(repo)

	assert.Error(t, svc.Insert(context.Background(), 1, models.QueueInsertRequest{TrackID: 0, QueueID: 1}))
	assert.Error(t, svc.Insert(context.Background(), 1, models.QueueInsertRequest{TrackID: 5, QueueID: -1}))
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	repo.On("Insert", mock.Anything, int64(1), int64(104), 1).Return(nil)
	require.NoError(t, svc.Insert(context.Background(), 1, models.QueueInsertRequest{TrackID: 104, QueueID: 1}))
}

func TestQueueMoveAndRemoveDelegate(t *testing.T) {
	repo := new(MockQueueRepository)
	svc := NewQueueServiceImpl(repo)

	repo.On("Move", mock.Anything, int64(1), 0, 3).Return(nil)
	repo.On("Remove", mock.Anything, int64(1), 1).Return(nil)

	require.NoError(t, svc.Move(context.Background(), 1, models.QueueMoveRequest{SrcID: 0, DestID: 3}))
	require.NoError(t, svc.Remove(context.Background(), 1, models.QueueRemoveRequest{ID: 1}))
	repo.AssertExpectations(t)
}

func TestQueueNotFoundPropagates(t *testing.T) {
	repo := new(MockQueueRepository)
	svc := NewQueueServiceImpl(repo)

	notFound := models.NewNotFoundErrorWithCode(models.CodeQueueNotFound, "queue for user", 1)
	repo.On("Delete", mock.Anything, int64(1)).Return(notFound)

	err := svc.Delete(context.Background(), 1)
	assert.True(t, models.HasCode(err, models.CodeQueueNotFound))
}
