package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tunewave/tunewave/internal/models"
)

func TestActivityAddRejectsUnknownEvent(t *testing.T) {
	repo := new(MockActivityRepository)
	svc := NewActivityServiceImpl(repo)

	_, err := svc.Add(context.Background(), models.CreateActivityRequest{
		UserID: 1, TrackID: 2, Event: "shuffle",
	})
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
	repo.AssertNotCalled(t, "AddActivity", mock.Anything, mock.Anything)
}

func TestActivityAddDelegatesKnownEvents(t *testing.T) {
	repo := new(MockActivityRepository)
	svc := NewActivityServiceImpl(repo)

	for _, event := range models.KnownEvents {
		req := models.CreateActivityRequest{UserID: 1, TrackID: 2, Event: event}
		repo.On("AddActivity", mock.Anything, req).
			Return(&models.UserActivity{ID: 1, UserID: 1, TrackID: 2, Event: event}, nil).Once()

		activity, err := svc.Add(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, event, activity.Event)
	}
	repo.AssertExpectations(t)
}

func TestActivityListRejectsUnknownEventFilter(t *testing.T) {
	repo := new(MockActivityRepository)
	svc := NewActivityServiceImpl(repo)

	_, err := svc.List(context.Background(),
		models.ActivityFilter{Events: []models.ActivityEvent{"play", "scrub"}},
		models.ActivityPage{})
	require.Error(t, err)
	repo.AssertNotCalled(t, "ListActivities", mock.Anything, mock.Anything, mock.Anything)
}

func TestActivityDeletePropagatesNotFound(t *testing.T) {
	repo := new(MockActivityRepository)
	svc := NewActivityServiceImpl(repo)

	repo.On("DeleteActivities", mock.Anything, mock.Anything).
		Return(models.NewAPIError(models.CodeNotFound, "no user activity matched the filter", 404))

	err := svc.Delete(context.Background(), models.ActivityFilter{})
	assert.True(t, models.IsNotFound(err))
}

func TestActivityAggregationsDelegate(t *testing.T) {
	repo := new(MockActivityRepository)
	svc := NewActivityServiceImpl(repo)
	page := models.ActivityPage{}

	repo.On("MostPlayedTracks", mock.Anything, page).
		Return(&models.MostPlayedTracks{Tracks: []models.TrackPlayCount{{TrackID: 7, PlayCount: 3}}}, nil)
	repo.On("DailyActiveUsers", mock.Anything, page).
		Return(&models.DailyActiveUsers{}, nil)
	repo.On("TracksCompletionRate", mock.Anything, page).
		Return(&models.TracksCompletionRate{}, nil)

	most, err := svc.MostPlayedTracks(context.Background(), page)
	require.NoError(t, err)
	assert.Equal(t, int64(7), most.Tracks[0].TrackID)

	_, err = svc.DailyActiveUsers(context.Background(), page)
	require.NoError(t, err)
	_, err = svc.TracksCompletionRate(context.Background(), page)
	require.NoError(t, err)
}
