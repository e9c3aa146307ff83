package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tunewave/tunewave/internal/metadata"
	"github.com/tunewave/tunewave/internal/models"
	"github.com/tunewave/tunewave/internal/repository"
)

// maxStreamWindow caps a single stream response at 1 MiB so one request
// cannot saturate the connection and players can scrub.
const maxStreamWindow = 1 << 20

// cascadeListLimit bounds the child listings walked by cascading deletes.
const cascadeListLimit = 10000

// defaultAudioContentType is assumed when neither the upload nor its tags
// identify the payload.
const defaultAudioContentType = "audio/mpeg"

// MusicServiceImpl implements MusicService.
type MusicServiceImpl struct {
	tracks    repository.TrackRepository
	albums    repository.AlbumRepository
	genres    repository.GenreRepository
	blobs     repository.BlobRepository
	extractor *metadata.Extractor
	logger    zerolog.Logger
}

// NewMusicServiceImpl creates a new MusicServiceImpl.
func NewMusicServiceImpl(
	tracks repository.TrackRepository,
	albums repository.AlbumRepository,
	genres repository.GenreRepository,
	blobs repository.BlobRepository,
	logger zerolog.Logger,
) *MusicServiceImpl {
	return &MusicServiceImpl{
		tracks:    tracks,
		albums:    albums,
		genres:    genres,
		blobs:     blobs,
		extractor: metadata.NewExtractor(),
		logger:    logger.With().Str("service", "music").Logger(),
	}
}

// StreamTrack plans a ranged read over the track's audio object.
func (s *MusicServiceImpl) StreamTrack(ctx context.Context, id int64, start, end *int64) (*models.TrackStream, error) {
	track, err := s.tracks.GetTrack(ctx, id)
	if err != nil {
		return nil, err
	}
	stats, err := s.blobs.StatTrack(ctx, track)
	if err != nil {
		return nil, err
	}
	size := stats.Size

	from := int64(0)
	if start != nil {
		from = *start
	}
	if from >= size {
		return nil, models.NewInvalidStartError(from, size)
	}

	to := size - 1
	if end != nil && *end < to {
		to = *end
	}
	if to < from {
		return nil, models.ErrMalformedRange
	}
	if capped := from + maxStreamWindow - 1; to > capped {
		to = capped
	}

	stream, err := s.blobs.StreamTrack(ctx, track, from, to)
	if err != nil {
		return nil, err
	}
	stream.Size = size
	return stream, nil
}

// CreateSingle creates an album and its only track in one logical operation,
// then stores the audio and the optional cover. Rows persisted before a
// later failure stay; cleanup is compensating, not transactional.
func (s *MusicServiceImpl) CreateSingle(ctx context.Context, req models.CreateSingleRequest, artistID int64, audio []byte, audioType string, cover []byte, coverType string) (*models.Track, error) {
	info := s.extractor.Extract(audio)

	album, err := s.albums.CreateAlbum(ctx, models.NewAlbum{
		Name:        req.Name,
		ArtistID:    artistID,
		ReleaseDate: req.ReleaseDate,
	})
	if err != nil {
		return nil, err
	}

	track, err := s.tracks.CreateTrack(ctx, models.NewTrack{
		Name:        req.Name,
		AlbumID:     album.ID,
		ArtistID:    artistID,
		GenreID:     req.GenreID,
		ReleaseDate: req.ReleaseDate,
		Duration:    info.Duration,
	})
	if err != nil {
		return nil, err
	}

	if err := s.blobs.PutTrack(ctx, track, audio, pickContentType(audioType, info)); err != nil {
		return nil, err
	}

	if len(cover) > 0 {
		if err := s.blobs.PutImage(ctx, models.AlbumImage(album.ID), cover, coverType); err != nil {
			return nil, err
		}
	}
	return track, nil
}

// CreateTrack adds a track to an existing album and stores its audio.
func (s *MusicServiceImpl) CreateTrack(ctx context.Context, req models.CreateTrackRequest, artistID int64, audio []byte, audioType string) (*models.Track, error) {
	info := s.extractor.Extract(audio)

	track, err := s.tracks.CreateTrack(ctx, models.NewTrack{
		Name:        req.Name,
		AlbumID:     req.AlbumID,
		ArtistID:    artistID,
		GenreID:     req.GenreID,
		ReleaseDate: req.ReleaseDate,
		Duration:    info.Duration,
	})
	if err != nil {
		return nil, err
	}

	if err := s.blobs.PutTrack(ctx, track, audio, pickContentType(audioType, info)); err != nil {
		return nil, err
	}
	return track, nil
}

// GetTrack fetches a track by id.
func (s *MusicServiceImpl) GetTrack(ctx context.Context, id int64) (*models.Track, error) {
	return s.tracks.GetTrack(ctx, id)
}

// SearchTracks lists tracks by the given filters.
func (s *MusicServiceImpl) SearchTracks(ctx context.Context, params models.TrackSearchParams) ([]models.Track, error) {
	return s.tracks.SearchTracks(ctx, params)
}

// UpdateTrack merges the set fields into the track row.
func (s *MusicServiceImpl) UpdateTrack(ctx context.Context, id int64, req models.UpdateTrackRequest) (*models.Track, error) {
	return s.tracks.UpdateTrack(ctx, id, req)
}

// UpdateTrackFile replaces the track's audio object and refreshes the stored
// duration from the new payload.
func (s *MusicServiceImpl) UpdateTrackFile(ctx context.Context, id int64, audio []byte, audioType string) error {
	track, err := s.tracks.GetTrack(ctx, id)
	if err != nil {
		return err
	}
	info := s.extractor.Extract(audio)
	if err := s.blobs.PutTrack(ctx, track, audio, pickContentType(audioType, info)); err != nil {
		return err
	}
	if err := s.tracks.UpdateTrackDuration(ctx, id, info.Duration); err != nil {
		return err
	}
	return nil
}

// DeleteTrack removes the audio object and the track row. Deleting the last
// track of an album removes the album and its cover too; both removals
// tolerate the target being gone already.
func (s *MusicServiceImpl) DeleteTrack(ctx context.Context, id int64) error {
	track, err := s.tracks.GetTrack(ctx, id)
	if err != nil {
		return err
	}

	if err := s.blobs.DeleteTrack(ctx, track); err != nil {
		if !models.HasCode(err, models.CodeMusicFileMissing) {
			return err
		}
		s.logger.Warn().Int64("track_id", id).Msg("audio object already absent during track delete")
	}

	remaining, err := s.tracks.CountTracksInAlbum(ctx, track.AlbumID)
	if err != nil {
		return err
	}
	lastTrack := remaining <= 1

	if lastTrack {
		if err := s.blobs.DeleteImage(ctx, models.AlbumImage(track.AlbumID)); err != nil {
			if !models.HasCode(err, models.CodeImageFileMissing) {
				return err
			}
		}
	}

	if err := s.tracks.DeleteTrack(ctx, id); err != nil {
		return err
	}

	if lastTrack {
		if err := s.albums.DeleteAlbum(ctx, track.AlbumID); err != nil {
			if !models.HasCode(err, models.CodeAlbumNotFound) {
				return err
			}
		}
	}
	return nil
}

// GetTrackImage resolves the track and serves its album's cover; tracks do
// not own a distinct image.
func (s *MusicServiceImpl) GetTrackImage(ctx context.Context, id int64) ([]byte, error) {
	track, err := s.tracks.GetTrack(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.blobs.GetImage(ctx, models.AlbumImage(track.AlbumID))
}

// UpdateTrackImage replaces the cover of the track's album.
func (s *MusicServiceImpl) UpdateTrackImage(ctx context.Context, id int64, data []byte, contentType string) error {
	track, err := s.tracks.GetTrack(ctx, id)
	if err != nil {
		return err
	}
	return s.blobs.PutImage(ctx, models.AlbumImage(track.AlbumID), data, contentType)
}

// DeleteTrackImage removes the cover of the track's album.
func (s *MusicServiceImpl) DeleteTrackImage(ctx context.Context, id int64) error {
	track, err := s.tracks.GetTrack(ctx, id)
	if err != nil {
		return err
	}
	return s.blobs.DeleteImage(ctx, models.AlbumImage(track.AlbumID))
}

// CreateAlbum creates an empty album.
func (s *MusicServiceImpl) CreateAlbum(ctx context.Context, album models.NewAlbum) (*models.Album, error) {
	return s.albums.CreateAlbum(ctx, album)
}

// GetAlbum fetches an album by id.
func (s *MusicServiceImpl) GetAlbum(ctx context.Context, id int64) (*models.Album, error) {
	return s.albums.GetAlbum(ctx, id)
}

// SearchAlbums lists albums by the given filters.
func (s *MusicServiceImpl) SearchAlbums(ctx context.Context, params models.AlbumSearchParams) ([]models.Album, error) {
	return s.albums.SearchAlbums(ctx, params)
}

// UpdateAlbum merges the set fields into the album row.
func (s *MusicServiceImpl) UpdateAlbum(ctx context.Context, id int64, req models.UpdateAlbumRequest) (*models.Album, error) {
	return s.albums.UpdateAlbum(ctx, id, req)
}

// DeleteAlbum deletes every track under the album through the track-deletion
// path, then clears the cover and the row, tolerating removals the track
// cascade already performed.
func (s *MusicServiceImpl) DeleteAlbum(ctx context.Context, id int64) error {
	if _, err := s.albums.GetAlbum(ctx, id); err != nil {
		return err
	}

	albumID := id
	tracks, err := s.tracks.SearchTracks(ctx, models.TrackSearchParams{
		SearchParams: models.SearchParams{Limit: cascadeListLimit},
		AlbumID:      &albumID,
	})
	if err != nil {
		return err
	}
	for _, track := range tracks {
		if err := s.DeleteTrack(ctx, track.ID); err != nil && !models.IsNotFound(err) {
			return err
		}
	}

	if err := s.blobs.DeleteImage(ctx, models.AlbumImage(id)); err != nil {
		if !models.HasCode(err, models.CodeImageFileMissing) {
			return err
		}
	}

	if err := s.albums.DeleteAlbum(ctx, id); err != nil {
		// The last track-deletion may have reaped the album already.
		if !models.HasCode(err, models.CodeAlbumNotFound) {
			return err
		}
	}
	return nil
}

// GetAlbumImage reads the album cover.
func (s *MusicServiceImpl) GetAlbumImage(ctx context.Context, id int64) ([]byte, error) {
	if _, err := s.albums.GetAlbum(ctx, id); err != nil {
		return nil, err
	}
	return s.blobs.GetImage(ctx, models.AlbumImage(id))
}

// UpdateAlbumImage replaces the album cover.
func (s *MusicServiceImpl) UpdateAlbumImage(ctx context.Context, id int64, data []byte, contentType string) error {
	if _, err := s.albums.GetAlbum(ctx, id); err != nil {
		return err
	}
	return s.blobs.PutImage(ctx, models.AlbumImage(id), data, contentType)
}

// DeleteAlbumImage removes the album cover.
func (s *MusicServiceImpl) DeleteAlbumImage(ctx context.Context, id int64) error {
	if _, err := s.albums.GetAlbum(ctx, id); err != nil {
		return err
	}
	return s.blobs.DeleteImage(ctx, models.AlbumImage(id))
}

// CreateGenre creates a genre.
func (s *MusicServiceImpl) CreateGenre(ctx context.Context, req models.CreateGenreRequest) (*models.Genre, error) {
	return s.genres.CreateGenre(ctx, req.Name)
}

// GetGenre fetches a genre by id.
func (s *MusicServiceImpl) GetGenre(ctx context.Context, id int64) (*models.Genre, error) {
	return s.genres.GetGenre(ctx, id)
}

// SearchGenres lists genres by fuzzy name match.
func (s *MusicServiceImpl) SearchGenres(ctx context.Context, params models.GenreSearchParams) ([]models.Genre, error) {
	return s.genres.SearchGenres(ctx, params)
}

// UpdateGenre renames a genre.
func (s *MusicServiceImpl) UpdateGenre(ctx context.Context, id int64, req models.UpdateGenreRequest) (*models.Genre, error) {
	return s.genres.UpdateGenre(ctx, id, req)
}

// DeleteGenre removes a genre; tracks keep a null genre reference.
func (s *MusicServiceImpl) DeleteGenre(ctx context.Context, id int64) error {
	return s.genres.DeleteGenre(ctx, id)
}

// pickContentType prefers the client-declared content type, then the sniffed
// one, then the default.
func pickContentType(declared string, info metadata.AudioInfo) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if info.ContentType != "" {
		return info.ContentType
	}
	return defaultAudioContentType
}
