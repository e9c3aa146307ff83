package service

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tunewave/tunewave/internal/models"
	"github.com/tunewave/tunewave/internal/repository"
)

// AccountServiceImpl implements AccountService.
type AccountServiceImpl struct {
	users     repository.UserRepository
	playlists repository.PlaylistRepository
	albums    repository.AlbumRepository
	tracks    repository.TrackRepository
	blobs     repository.BlobRepository
	music     MusicService
	tokens    *TokenManager
	logger    zerolog.Logger
}

// NewAccountServiceImpl creates a new AccountServiceImpl. The music service
// is used for the track-deletion path of the user cascade.
func NewAccountServiceImpl(
	users repository.UserRepository,
	playlists repository.PlaylistRepository,
	albums repository.AlbumRepository,
	tracks repository.TrackRepository,
	blobs repository.BlobRepository,
	music MusicService,
	tokens *TokenManager,
	logger zerolog.Logger,
) *AccountServiceImpl {
	return &AccountServiceImpl{
		users:     users,
		playlists: playlists,
		albums:    albums,
		tracks:    tracks,
		blobs:     blobs,
		music:     music,
		tokens:    tokens,
		logger:    logger.With().Str("service", "account").Logger(),
	}
}

// CreateUser registers an account, stores the optional profile image, and
// creates the default "fav" playlist. A fav-creation failure surfaces as an
// internal error while the user row persists.
func (s *AccountServiceImpl) CreateUser(ctx context.Context, req models.CreateUserRequest, role models.UserRole, cover []byte, coverType string) (*models.User, error) {
	hash, err := s.tokens.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, models.NewRoleUser{
		Name:        req.Name,
		Description: req.Description,
		Username:    req.Username,
		Password:    hash,
		Role:        role,
	})
	if err != nil {
		return nil, err
	}

	if len(cover) > 0 {
		if err := s.blobs.PutImage(ctx, models.UserImage(user.ID), cover, coverType); err != nil {
			s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to store profile image at registration")
		}
	}

	if _, err := s.playlists.CreatePlaylist(ctx, models.NewPlaylist{
		AuthorID: user.ID,
		Name:     models.FavPlaylistName,
	}); err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to create fav playlist")
		return nil, models.NewAPIError("INTERNAL_ERROR",
			"something went wrong while creating the 'fav' playlist", http.StatusInternalServerError)
	}
	return user, nil
}

// Login verifies the credentials and returns the account.
func (s *AccountServiceImpl) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	full, err := s.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.tokens.VerifyPassword(req.Password, full.Password) {
		return nil, models.ErrInvalidCredentials
	}
	return &full.User, nil
}

// GetUser fetches an account by id.
func (s *AccountServiceImpl) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetUser(ctx, id)
}

// SearchUsers lists accounts by the given filters.
func (s *AccountServiceImpl) SearchUsers(ctx context.Context, params models.UserSearchParams) ([]models.User, error) {
	return s.users.SearchUsers(ctx, params)
}

// UpdateUser merges the set fields into the account row.
func (s *AccountServiceImpl) UpdateUser(ctx context.Context, id int64, req models.UpdateUserRoleRequest) (*models.User, error) {
	return s.users.UpdateUser(ctx, id, req)
}

// DeleteUser removes the account and everything it owns: playlists first,
// then albums with their tracks and blobs, then the user row, and finally
// the profile image. Best-effort steps log and continue.
func (s *AccountServiceImpl) DeleteUser(ctx context.Context, id int64) error {
	ownerID := id

	playlists, err := s.playlists.SearchPlaylists(ctx, models.PlaylistSearchParams{
		SearchParams: models.SearchParams{Limit: cascadeListLimit},
		AuthorID:     &ownerID,
	})
	if err != nil {
		return err
	}
	for _, playlist := range playlists {
		if err := s.DeletePlaylist(ctx, playlist.ID); err != nil && !models.IsNotFound(err) {
			return err
		}
	}

	albums, err := s.albums.SearchAlbums(ctx, models.AlbumSearchParams{
		SearchParams: models.SearchParams{Limit: cascadeListLimit},
		ArtistID:     &ownerID,
	})
	if err != nil {
		return err
	}
	for _, album := range albums {
		albumID := album.ID
		tracks, err := s.tracks.SearchTracks(ctx, models.TrackSearchParams{
			SearchParams: models.SearchParams{Limit: cascadeListLimit},
			AlbumID:      &albumID,
		})
		if err != nil {
			if models.IsNotFound(err) {
				continue
			}
			return err
		}
		for _, track := range tracks {
			if err := s.music.DeleteTrack(ctx, track.ID); err != nil && !models.IsNotFound(err) {
				return err
			}
		}
		if err := s.blobs.DeleteImage(ctx, models.AlbumImage(album.ID)); err != nil {
			if !models.HasCode(err, models.CodeImageFileMissing) {
				s.logger.Warn().Err(err).Int64("album_id", album.ID).Msg("failed to delete album image during user cascade")
			}
		}
	}

	if err := s.users.DeleteUser(ctx, id); err != nil {
		return err
	}

	if err := s.blobs.DeleteImage(ctx, models.UserImage(id)); err != nil {
		if !models.HasCode(err, models.CodeImageFileMissing) {
			s.logger.Warn().Err(err).Int64("user_id", id).Msg("failed to delete profile image during user cascade")
		}
	}
	return nil
}

// HasAdmin reports whether any admin account exists.
func (s *AccountServiceImpl) HasAdmin(ctx context.Context) (bool, error) {
	return s.users.HasAdmin(ctx)
}

// GetArtist fetches the artist view of a user.
func (s *AccountServiceImpl) GetArtist(ctx context.Context, id int64) (*models.Artist, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	artist := user.ArtistView()
	return &artist, nil
}

// SearchArtists lists the artist views of matching users.
func (s *AccountServiceImpl) SearchArtists(ctx context.Context, params models.ArtistSearchParams) ([]models.Artist, error) {
	users, err := s.users.SearchUsers(ctx, models.UserSearchParams{SearchParams: params.SearchParams})
	if err != nil {
		return nil, err
	}
	return artistViews(users), nil
}

// GetUserImage reads the user's profile image.
func (s *AccountServiceImpl) GetUserImage(ctx context.Context, id int64) ([]byte, error) {
	if _, err := s.users.GetUser(ctx, id); err != nil {
		return nil, err
	}
	return s.blobs.GetImage(ctx, models.UserImage(id))
}

// UpdateUserImage replaces the user's profile image.
func (s *AccountServiceImpl) UpdateUserImage(ctx context.Context, id int64, data []byte, contentType string) error {
	if _, err := s.users.GetUser(ctx, id); err != nil {
		return err
	}
	return s.blobs.PutImage(ctx, models.UserImage(id), data, contentType)
}

// DeleteUserImage removes the user's profile image.
func (s *AccountServiceImpl) DeleteUserImage(ctx context.Context, id int64) error {
	if _, err := s.users.GetUser(ctx, id); err != nil {
		return err
	}
	return s.blobs.DeleteImage(ctx, models.UserImage(id))
}

// Subscribe subscribes a user to an artist.
func (s *AccountServiceImpl) Subscribe(ctx context.Context, sub models.Subscription) error {
	if sub.SubscriberID == sub.ArtistID {
		return models.NewAPIError("FORBIDDEN", "cannot subscribe to self", http.StatusForbidden)
	}
	return s.users.Subscribe(ctx, sub)
}

// Unsubscribe removes a subscription.
func (s *AccountServiceImpl) Unsubscribe(ctx context.Context, sub models.Subscription) error {
	return s.users.Unsubscribe(ctx, sub)
}

// ListSubscriptions lists the artists the user follows.
func (s *AccountServiceImpl) ListSubscriptions(ctx context.Context, userID int64, skip, limit int) ([]models.Artist, error) {
	users, err := s.users.ListSubscriptions(ctx, userID, skip, limit)
	if err != nil {
		return nil, err
	}
	return artistViews(users), nil
}

// ListSubscribers lists the users following the artist.
func (s *AccountServiceImpl) ListSubscribers(ctx context.Context, userID int64, skip, limit int) ([]models.Artist, error) {
	users, err := s.users.ListSubscribers(ctx, userID, skip, limit)
	if err != nil {
		return nil, err
	}
	return artistViews(users), nil
}

// SubscriberCount counts the artist's subscribers.
func (s *AccountServiceImpl) SubscriberCount(ctx context.Context, userID int64) (*models.SubscriberCount, error) {
	count, err := s.users.SubscriberCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.SubscriberCount{Count: count}, nil
}

// CreatePlaylist creates a playlist and stores the optional cover image.
func (s *AccountServiceImpl) CreatePlaylist(ctx context.Context, playlist models.NewPlaylist, image []byte, imageType string) (*models.Playlist, error) {
	created, err := s.playlists.CreatePlaylist(ctx, playlist)
	if err != nil {
		return nil, err
	}
	if len(image) > 0 {
		if err := s.blobs.PutImage(ctx, models.PlaylistImage(created.ID), image, imageType); err != nil {
			s.logger.Warn().Err(err).Int64("playlist_id", created.ID).Msg("failed to store playlist image")
		}
	}
	return created, nil
}

// GetPlaylist fetches a playlist by id.
func (s *AccountServiceImpl) GetPlaylist(ctx context.Context, id int64) (*models.Playlist, error) {
	return s.playlists.GetPlaylist(ctx, id)
}

// SearchPlaylists lists playlists by the given filters.
func (s *AccountServiceImpl) SearchPlaylists(ctx context.Context, params models.PlaylistSearchParams) ([]models.Playlist, error) {
	return s.playlists.SearchPlaylists(ctx, params)
}

// UpdatePlaylist merges the set fields into the playlist row.
func (s *AccountServiceImpl) UpdatePlaylist(ctx context.Context, id int64, req models.UpdatePlaylistRequest) (*models.Playlist, error) {
	return s.playlists.UpdatePlaylist(ctx, id, req)
}

// DeletePlaylist removes the playlist cover (best effort) and the row;
// memberships cascade with the row.
func (s *AccountServiceImpl) DeletePlaylist(ctx context.Context, id int64) error {
	if _, err := s.playlists.GetPlaylist(ctx, id); err != nil {
		return err
	}
	if err := s.blobs.DeleteImage(ctx, models.PlaylistImage(id)); err != nil {
		if !models.HasCode(err, models.CodeImageFileMissing) {
			s.logger.Warn().Err(err).Int64("playlist_id", id).Msg("failed to delete playlist image")
		}
	}
	return s.playlists.DeletePlaylist(ctx, id)
}

// GetPlaylistImage reads the playlist cover.
func (s *AccountServiceImpl) GetPlaylistImage(ctx context.Context, id int64) ([]byte, error) {
	if _, err := s.playlists.GetPlaylist(ctx, id); err != nil {
		return nil, err
	}
	return s.blobs.GetImage(ctx, models.PlaylistImage(id))
}

// UpdatePlaylistImage replaces the playlist cover.
func (s *AccountServiceImpl) UpdatePlaylistImage(ctx context.Context, id int64, data []byte, contentType string) error {
	if _, err := s.playlists.GetPlaylist(ctx, id); err != nil {
		return err
	}
	return s.blobs.PutImage(ctx, models.PlaylistImage(id), data, contentType)
}

// DeletePlaylistImage removes the playlist cover.
func (s *AccountServiceImpl) DeletePlaylistImage(ctx context.Context, id int64) error {
	if _, err := s.playlists.GetPlaylist(ctx, id); err != nil {
		return err
	}
	return s.blobs.DeleteImage(ctx, models.PlaylistImage(id))
}

// AddTrackToPlaylist records a playlist membership.
func (s *AccountServiceImpl) AddTrackToPlaylist(ctx context.Context, pt models.PlaylistTrack) (*models.PlaylistTrack, error) {
	return s.playlists.AddTrackToPlaylist(ctx, pt)
}

// RemoveTrackFromPlaylist removes a playlist membership.
func (s *AccountServiceImpl) RemoveTrackFromPlaylist(ctx context.Context, pt models.PlaylistTrack) error {
	return s.playlists.RemoveTrackFromPlaylist(ctx, pt)
}

func artistViews(users []models.User) []models.Artist {
	artists := make([]models.Artist, len(users))
	for i := range users {
		artists[i] = users[i].ArtistView()
	}
	return artists
}
