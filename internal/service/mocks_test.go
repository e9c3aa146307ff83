package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tunewave/tunewave/internal/models"
)

// MockTrackRepository implements repository.TrackRepository for testing
type MockTrackRepository struct {
	mock.Mock
}

func (m *MockTrackRepository) CreateTrack(ctx context.Context, track models.NewTrack) (*models.Track, error) {
	args := m.Called(ctx, track)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Track), args.Error(1)
}

func (m *MockTrackRepository) GetTrack(ctx context.Context, id int64) (*models.Track, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Track), args.Error(1)
}

func (m *MockTrackRepository) SearchTracks(ctx context.Context, params models.TrackSearchParams) ([]models.Track, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Track), args.Error(1)
}

func (m *MockTrackRepository) UpdateTrack(ctx context.Context, id int64, req models.UpdateTrackRequest) (*models.Track, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Track), args.Error(1)
}

func (m *MockTrackRepository) UpdateTrackDuration(ctx context.Context, id int64, duration *int) error {
	args := m.Called(ctx, id, duration)
	return args.Error(0)
}

func (m *MockTrackRepository) DeleteTrack(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTrackRepository) CountTracksInAlbum(ctx context.Context, albumID int64) (int64, error) {
	args := m.Called(ctx, albumID)
	return args.Get(0).(int64), args.Error(1)
}

// MockAlbumRepository implements repository.AlbumRepository for testing
type MockAlbumRepository struct {
	mock.Mock
}

func (m *MockAlbumRepository) CreateAlbum(ctx context.Context, album models.NewAlbum) (*models.Album, error) {
	args := m.Called(ctx, album)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Album), args.Error(1)
}

func (m *MockAlbumRepository) GetAlbum(ctx context.Context, id int64) (*models.Album, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Album), args.Error(1)
}

func (m *MockAlbumRepository) SearchAlbums(ctx context.Context, params models.AlbumSearchParams) ([]models.Album, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Album), args.Error(1)
}

func (m *MockAlbumRepository) UpdateAlbum(ctx context.Context, id int64, req models.UpdateAlbumRequest) (*models.Album, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Album), args.Error(1)
}

func (m *MockAlbumRepository) DeleteAlbum(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGenreRepository implements repository.GenreRepository for testing
type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) CreateGenre(ctx context.Context, name string) (*models.Genre, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *MockGenreRepository) GetGenre(ctx context.Context, id int64) (*models.Genre, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *MockGenreRepository) SearchGenres(ctx context.Context, params models.GenreSearchParams) ([]models.Genre, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockGenreRepository) UpdateGenre(ctx context.Context, id int64, req models.UpdateGenreRequest) (*models.Genre, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *MockGenreRepository) DeleteGenre(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBlobRepository implements repository.BlobRepository for testing
type MockBlobRepository struct {
	mock.Mock
}

func (m *MockBlobRepository) PutTrack(ctx context.Context, track *models.Track, data []byte, contentType string) error {
	args := m.Called(ctx, track, data, contentType)
	return args.Error(0)
}

func (m *MockBlobRepository) StreamTrack(ctx context.Context, track *models.Track, start, end int64) (*models.TrackStream, error) {
	args := m.Called(ctx, track, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrackStream), args.Error(1)
}

func (m *MockBlobRepository) StatTrack(ctx context.Context, track *models.Track) (*models.MusicFileStats, error) {
	args := m.Called(ctx, track)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MusicFileStats), args.Error(1)
}

func (m *MockBlobRepository) DeleteTrack(ctx context.Context, track *models.Track) error {
	args := m.Called(ctx, track)
	return args.Error(0)
}

func (m *MockBlobRepository) PutImage(ctx context.Context, target models.ImageTarget, data []byte, contentType string) error {
	args := m.Called(ctx, target, data, contentType)
	return args.Error(0)
}

func (m *MockBlobRepository) GetImage(ctx context.Context, target models.ImageTarget) ([]byte, error) {
	args := m.Called(ctx, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockBlobRepository) DeleteImage(ctx context.Context, target models.ImageTarget) error {
	args := m.Called(ctx, target)
	return args.Error(0)
}

// MockUserRepository implements repository.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user models.NewRoleUser) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.FullUser, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FullUser), args.Error(1)
}

func (m *MockUserRepository) SearchUsers(ctx context.Context, params models.UserSearchParams) ([]models.User, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, id int64, req models.UpdateUserRoleRequest) (*models.User, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) HasAdmin(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Subscribe(ctx context.Context, sub models.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockUserRepository) Unsubscribe(ctx context.Context, sub models.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockUserRepository) ListSubscriptions(ctx context.Context, userID int64, skip, limit int) ([]models.User, error) {
	args := m.Called(ctx, userID, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) ListSubscribers(ctx context.Context, userID int64, skip, limit int) ([]models.User, error) {
	args := m.Called(ctx, userID, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) SubscriberCount(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPlaylistRepository implements repository.PlaylistRepository for testing
type MockPlaylistRepository struct {
	mock.Mock
}

func (m *MockPlaylistRepository) CreatePlaylist(ctx context.Context, playlist models.NewPlaylist) (*models.Playlist, error) {
	args := m.Called(ctx, playlist)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) GetPlaylist(ctx context.Context, id int64) (*models.Playlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) SearchPlaylists(ctx context.Context, params models.PlaylistSearchParams) ([]models.Playlist, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) UpdatePlaylist(ctx context.Context, id int64, req models.UpdatePlaylistRequest) (*models.Playlist, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Playlist), args.Error(1)
}

func (m *MockPlaylistRepository) DeletePlaylist(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlaylistRepository) AddTrackToPlaylist(ctx context.Context, pt models.PlaylistTrack) (*models.PlaylistTrack, error) {
	args := m.Called(ctx, pt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlaylistTrack), args.Error(1)
}

func (m *MockPlaylistRepository) RemoveTrackFromPlaylist(ctx context.Context, pt models.PlaylistTrack) error {
	args := m.Called(ctx, pt)
	return args.Error(0)
}

// MockQueueRepository implements repository.QueueRepository for testing
type MockQueueRepository struct {
	mock.Mock
}

func (m *MockQueueRepository) PushLeft(ctx context.Context, userID, trackID int64) error {
	args := m.Called(ctx, userID, trackID)
	return args.Error(0)
}

func (m *MockQueueRepository) PushRight(ctx context.Context, userID, trackID int64) error {
	args := m.Called(ctx, userID, trackID)
	return args.Error(0)
}

func (m *MockQueueRepository) List(ctx context.Context, userID int64, params models.QueueListParams) (*models.TrackQueue, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrackQueue), args.Error(1)
}

func (m *MockQueueRepository) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockQueueRepository) Insert(ctx context.Context, userID, trackID int64, position int) error {
	args := m.Called(ctx, userID, trackID, position)
	return args.Error(0)
}

func (m *MockQueueRepository) Move(ctx context.Context, userID int64, src, dest int) error {
	args := m.Called(ctx, userID, src, dest)
	return args.Error(0)
}

func (m *MockQueueRepository) Remove(ctx context.Context, userID int64, position int) error {
	args := m.Called(ctx, userID, position)
	return args.Error(0)
}

// MockActivityRepository implements repository.ActivityRepository for testing
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) AddActivity(ctx context.Context, req models.CreateActivityRequest) (*models.UserActivity, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserActivity), args.Error(1)
}

func (m *MockActivityRepository) GetActivity(ctx context.Context, id int64) (*models.UserActivity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserActivity), args.Error(1)
}

func (m *MockActivityRepository) ListActivities(ctx context.Context, filter models.ActivityFilter, page models.ActivityPage) ([]models.UserActivity, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserActivity), args.Error(1)
}

func (m *MockActivityRepository) DeleteActivities(ctx context.Context, filter models.ActivityFilter) error {
	args := m.Called(ctx, filter)
	return args.Error(0)
}

func (m *MockActivityRepository) MostPlayedTracks(ctx context.Context, page models.ActivityPage) (*models.MostPlayedTracks, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MostPlayedTracks), args.Error(1)
}

func (m *MockActivityRepository) DailyActiveUsers(ctx context.Context, page models.ActivityPage) (*models.DailyActiveUsers, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyActiveUsers), args.Error(1)
}

func (m *MockActivityRepository) TracksCompletionRate(ctx context.Context, page models.ActivityPage) (*models.TracksCompletionRate, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TracksCompletionRate), args.Error(1)
}
