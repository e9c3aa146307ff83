package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tunewave/tunewave/internal/models"
	"github.com/tunewave/tunewave/internal/repository"
)

// ActivityServiceImpl implements ActivityService.
type ActivityServiceImpl struct {
	activity repository.ActivityRepository
}

// NewActivityServiceImpl creates a new ActivityServiceImpl.
func NewActivityServiceImpl(activity repository.ActivityRepository) *ActivityServiceImpl {
	return &ActivityServiceImpl{activity: activity}
}

// Add appends one telemetry record after checking the event name.
func (s *ActivityServiceImpl) Add(ctx context.Context, req models.CreateActivityRequest) (*models.UserActivity, error) {
	if !req.Event.Valid() {
		return nil, models.NewAPIError(models.CodeNotFound,
			fmt.Sprintf("event '%s' was not found", req.Event), http.StatusNotFound)
	}
	return s.activity.AddActivity(ctx, req)
}

// Get fetches one record by id.
func (s *ActivityServiceImpl) Get(ctx context.Context, id int64) (*models.UserActivity, error) {
	return s.activity.GetActivity(ctx, id)
}

// List lists records matching the filter.
func (s *ActivityServiceImpl) List(ctx context.Context, filter models.ActivityFilter, page models.ActivityPage) ([]models.UserActivity, error) {
	if err := validateEvents(filter.Events); err != nil {
		return nil, err
	}
	return s.activity.ListActivities(ctx, filter, page)
}

// Delete removes records matching the filter.
func (s *ActivityServiceImpl) Delete(ctx context.Context, filter models.ActivityFilter) error {
	if err := validateEvents(filter.Events); err != nil {
		return err
	}
	return s.activity.DeleteActivities(ctx, filter)
}

// MostPlayedTracks ranks tracks by play count.
func (s *ActivityServiceImpl) MostPlayedTracks(ctx context.Context, page models.ActivityPage) (*models.MostPlayedTracks, error) {
	return s.activity.MostPlayedTracks(ctx, page)
}

// DailyActiveUsers counts distinct active users per day.
func (s *ActivityServiceImpl) DailyActiveUsers(ctx context.Context, page models.ActivityPage) (*models.DailyActiveUsers, error) {
	return s.activity.DailyActiveUsers(ctx, page)
}

// TracksCompletionRate reports skips over plays per track.
func (s *ActivityServiceImpl) TracksCompletionRate(ctx context.Context, page models.ActivityPage) (*models.TracksCompletionRate, error) {
	return s.activity.TracksCompletionRate(ctx, page)
}

func validateEvents(events []models.ActivityEvent) error {
	for _, e := range events {
		if !e.Valid() {
			return models.NewAPIError(models.CodeNotFound,
				fmt.Sprintf("event '%s' was not found", e), http.StatusNotFound)
		}
	}
	return nil
}
