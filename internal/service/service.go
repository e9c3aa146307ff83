package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tunewave/tunewave/internal/models"
	"github.com/tunewave/tunewave/internal/repository"
)

// AccountService orchestrates user, playlist, and subscription lifecycles.
type AccountService interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest, role models.UserRole, cover []byte, coverType string) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	SearchUsers(ctx context.Context, params models.UserSearchParams) ([]models.User, error)
	UpdateUser(ctx context.Context, id int64, req models.UpdateUserRoleRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	HasAdmin(ctx context.Context) (bool, error)

	GetArtist(ctx context.Context, id int64) (*models.Artist, error)
	SearchArtists(ctx context.Context, params models.ArtistSearchParams) ([]models.Artist, error)

	GetUserImage(ctx context.Context, id int64) ([]byte, error)
	UpdateUserImage(ctx context.Context, id int64, data []byte, contentType string) error
	DeleteUserImage(ctx context.Context, id int64) error

	Subscribe(ctx context.Context, sub models.Subscription) error
	Unsubscribe(ctx context.Context, sub models.Subscription) error
	ListSubscriptions(ctx context.Context, userID int64, skip, limit int) ([]models.Artist, error)
	ListSubscribers(ctx context.Context, userID int64, skip, limit int) ([]models.Artist, error)
	SubscriberCount(ctx context.Context, userID int64) (*models.SubscriberCount, error)

	CreatePlaylist(ctx context.Context, playlist models.NewPlaylist, image []byte, imageType string) (*models.Playlist, error)
	GetPlaylist(ctx context.Context, id int64) (*models.Playlist, error)
	SearchPlaylists(ctx context.Context, params models.PlaylistSearchParams) ([]models.Playlist, error)
	UpdatePlaylist(ctx context.Context, id int64, req models.UpdatePlaylistRequest) (*models.Playlist, error)
	DeletePlaylist(ctx context.Context, id int64) error
	GetPlaylistImage(ctx context.Context, id int64) ([]byte, error)
	UpdatePlaylistImage(ctx context.Context, id int64, data []byte, contentType string) error
	DeletePlaylistImage(ctx context.Context, id int64) error
	AddTrackToPlaylist(ctx context.Context, pt models.PlaylistTrack) (*models.PlaylistTrack, error)
	RemoveTrackFromPlaylist(ctx context.Context, pt models.PlaylistTrack) error
}

// MusicService orchestrates track, album, and genre lifecycles, range
// planning, and cascading deletion.
type MusicService interface {
	CreateSingle(ctx context.Context, req models.CreateSingleRequest, artistID int64, audio []byte, audioType string, cover []byte, coverType string) (*models.Track, error)
	CreateTrack(ctx context.Context, req models.CreateTrackRequest, artistID int64, audio []byte, audioType string) (*models.Track, error)
	GetTrack(ctx context.Context, id int64) (*models.Track, error)
	SearchTracks(ctx context.Context, params models.TrackSearchParams) ([]models.Track, error)
	UpdateTrack(ctx context.Context, id int64, req models.UpdateTrackRequest) (*models.Track, error)
	UpdateTrackFile(ctx context.Context, id int64, audio []byte, audioType string) error
	DeleteTrack(ctx context.Context, id int64) error
	StreamTrack(ctx context.Context, id int64, start, end *int64) (*models.TrackStream, error)
	GetTrackImage(ctx context.Context, id int64) ([]byte, error)
	UpdateTrackImage(ctx context.Context, id int64, data []byte, contentType string) error
	DeleteTrackImage(ctx context.Context, id int64) error

	CreateAlbum(ctx context.Context, album models.NewAlbum) (*models.Album, error)
	GetAlbum(ctx context.Context, id int64) (*models.Album, error)
	SearchAlbums(ctx context.Context, params models.AlbumSearchParams) ([]models.Album, error)
	UpdateAlbum(ctx context.Context, id int64, req models.UpdateAlbumRequest) (*models.Album, error)
	DeleteAlbum(ctx context.Context, id int64) error
	GetAlbumImage(ctx context.Context, id int64) ([]byte, error)
	UpdateAlbumImage(ctx context.Context, id int64, data []byte, contentType string) error
	DeleteAlbumImage(ctx context.Context, id int64) error

	CreateGenre(ctx context.Context, req models.CreateGenreRequest) (*models.Genre, error)
	GetGenre(ctx context.Context, id int64) (*models.Genre, error)
	SearchGenres(ctx context.Context, params models.GenreSearchParams) ([]models.Genre, error)
	UpdateGenre(ctx context.Context, id int64, req models.UpdateGenreRequest) (*models.Genre, error)
	DeleteGenre(ctx context.Context, id int64) error
}

// QueueService is a thin orchestrator over the queue repository.
type QueueService interface {
	PushLeft(ctx context.Context, userID, trackID int64) error
	PushRight(ctx context.Context, userID, trackID int64) error
	List(ctx context.Context, userID int64, params models.QueueListParams) (*models.TrackQueue, error)
	Delete(ctx context.Context, userID int64) error
	Insert(ctx context.Context, userID int64, req models.QueueInsertRequest) error
	Move(ctx context.Context, userID int64, req models.QueueMoveRequest) error
	Remove(ctx context.Context, userID int64, req models.QueueRemoveRequest) error
}

// ActivityService is a thin orchestrator over the telemetry log.
type ActivityService interface {
	Add(ctx context.Context, req models.CreateActivityRequest) (*models.UserActivity, error)
	Get(ctx context.Context, id int64) (*models.UserActivity, error)
	List(ctx context.Context, filter models.ActivityFilter, page models.ActivityPage) ([]models.UserActivity, error)
	Delete(ctx context.Context, filter models.ActivityFilter) error
	MostPlayedTracks(ctx context.Context, page models.ActivityPage) (*models.MostPlayedTracks, error)
	DailyActiveUsers(ctx context.Context, page models.ActivityPage) (*models.DailyActiveUsers, error)
	TracksCompletionRate(ctx context.Context, page models.ActivityPage) (*models.TracksCompletionRate, error)
}

// Services holds all service implementations
type Services struct {
	Account  AccountService
	Music    MusicService
	Queue    QueueService
	Activity ActivityService
	Tokens   *TokenManager
}

// Deps bundles the storage dependencies the services are built from.
type Deps struct {
	Users     repository.UserRepository
	Albums    repository.AlbumRepository
	Tracks    repository.TrackRepository
	Genres    repository.GenreRepository
	Playlists repository.PlaylistRepository
	Activity  repository.ActivityRepository
	Queue     repository.QueueRepository
	Blobs     repository.BlobRepository
}

// NewServices creates a new Services instance with all dependencies
func NewServices(deps Deps, tokenSecret string, tokenExpiry time.Duration, logger zerolog.Logger) *Services {
	tokens := NewTokenManager(tokenSecret, tokenExpiry)
	music := NewMusicServiceImpl(deps.Tracks, deps.Albums, deps.Genres, deps.Blobs, logger)
	return &Services{
		Account:  NewAccountServiceImpl(deps.Users, deps.Playlists, deps.Albums, deps.Tracks, deps.Blobs, music, tokens, logger),
		Music:    music,
		Queue:    NewQueueServiceImpl(deps.Queue),
		Activity: NewActivityServiceImpl(deps.Activity),
		Tokens:   tokens,
	}
}
