package repository

import (
	"context"

	"github.com/tunewave/tunewave/internal/models"
)

// UserRepository is the storage contract for accounts and subscriptions.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.NewRoleUser) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.FullUser, error)
	SearchUsers(ctx context.Context, params models.UserSearchParams) ([]models.User, error)
	UpdateUser(ctx context.Context, id int64, req models.UpdateUserRoleRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	HasAdmin(ctx context.Context) (bool, error)

	Subscribe(ctx context.Context, sub models.Subscription) error
	Unsubscribe(ctx context.Context, sub models.Subscription) error
	ListSubscriptions(ctx context.Context, userID int64, skip, limit int) ([]models.User, error)
	ListSubscribers(ctx context.Context, userID int64, skip, limit int) ([]models.User, error)
	SubscriberCount(ctx context.Context, userID int64) (int64, error)
}

// AlbumRepository is the storage contract for albums.
type AlbumRepository interface {
	CreateAlbum(ctx context.Context, album models.NewAlbum) (*models.Album, error)
	GetAlbum(ctx context.Context, id int64) (*models.Album, error)
	SearchAlbums(ctx context.Context, params models.AlbumSearchParams) ([]models.Album, error)
	UpdateAlbum(ctx context.Context, id int64, req models.UpdateAlbumRequest) (*models.Album, error)
	DeleteAlbum(ctx context.Context, id int64) error
}

// TrackRepository is the storage contract for track metadata.
type TrackRepository interface {
	CreateTrack(ctx context.Context, track models.NewTrack) (*models.Track, error)
	GetTrack(ctx context.Context, id int64) (*models.Track, error)
	SearchTracks(ctx context.Context, params models.TrackSearchParams) ([]models.Track, error)
	UpdateTrack(ctx context.Context, id int64, req models.UpdateTrackRequest) (*models.Track, error)
	UpdateTrackDuration(ctx context.Context, id int64, duration *int) error
	DeleteTrack(ctx context.Context, id int64) error
	CountTracksInAlbum(ctx context.Context, albumID int64) (int64, error)
}

// GenreRepository is the storage contract for genres.
type GenreRepository interface {
	CreateGenre(ctx context.Context, name string) (*models.Genre, error)
	GetGenre(ctx context.Context, id int64) (*models.Genre, error)
	SearchGenres(ctx context.Context, params models.GenreSearchParams) ([]models.Genre, error)
	UpdateGenre(ctx context.Context, id int64, req models.UpdateGenreRequest) (*models.Genre, error)
	DeleteGenre(ctx context.Context, id int64) error
}

// PlaylistRepository is the storage contract for playlists and memberships.
type PlaylistRepository interface {
	CreatePlaylist(ctx context.Context, playlist models.NewPlaylist) (*models.Playlist, error)
	GetPlaylist(ctx context.Context, id int64) (*models.Playlist, error)
	SearchPlaylists(ctx context.Context, params models.PlaylistSearchParams) ([]models.Playlist, error)
	UpdatePlaylist(ctx context.Context, id int64, req models.UpdatePlaylistRequest) (*models.Playlist, error)
	DeletePlaylist(ctx context.Context, id int64) error
	AddTrackToPlaylist(ctx context.Context, pt models.PlaylistTrack) (*models.PlaylistTrack, error)
	RemoveTrackFromPlaylist(ctx context.Context, pt models.PlaylistTrack) error
}

// ActivityRepository is the append-only telemetry log.
type ActivityRepository interface {
	AddActivity(ctx context.Context, req models.CreateActivityRequest) (*models.UserActivity, error)
	GetActivity(ctx context.Context, id int64) (*models.UserActivity, error)
	ListActivities(ctx context.Context, filter models.ActivityFilter, page models.ActivityPage) ([]models.UserActivity, error)
	DeleteActivities(ctx context.Context, filter models.ActivityFilter) error
	MostPlayedTracks(ctx context.Context, page models.ActivityPage) (*models.MostPlayedTracks, error)
	DailyActiveUsers(ctx context.Context, page models.ActivityPage) (*models.DailyActiveUsers, error)
	TracksCompletionRate(ctx context.Context, page models.ActivityPage) (*models.TracksCompletionRate, error)
}

// QueueRepository is the per-user playback queue. Insert, Move, and Remove
// are atomic with respect to concurrent observers; every operation refreshes
// the key's TTL.
type QueueRepository interface {
	PushLeft(ctx context.Context, userID, trackID int64) error
	PushRight(ctx context.Context, userID, trackID int64) error
	List(ctx context.Context, userID int64, params models.QueueListParams) (*models.TrackQueue, error)
	Delete(ctx context.Context, userID int64) error
	Insert(ctx context.Context, userID, trackID int64, position int) error
	Move(ctx context.Context, userID int64, src, dest int) error
	Remove(ctx context.Context, userID int64, position int) error
}

// BlobRepository stores audio and cover objects. Absent objects surface as
// domain not-found errors; backend failures surface unchanged.
type BlobRepository interface {
	PutTrack(ctx context.Context, track *models.Track, data []byte, contentType string) error
	StreamTrack(ctx context.Context, track *models.Track, start, end int64) (*models.TrackStream, error)
	StatTrack(ctx context.Context, track *models.Track) (*models.MusicFileStats, error)
	DeleteTrack(ctx context.Context, track *models.Track) error
	PutImage(ctx context.Context, target models.ImageTarget, data []byte, contentType string) error
	GetImage(ctx context.Context, target models.ImageTarget) ([]byte, error)
	DeleteImage(ctx context.Context, target models.ImageTarget) error
}
