package models

import (
	"io"
	"time"
)

// Track is a single piece of audio. Its blob lives in the music bucket at
// {artist_id}/{track_id}; its cover is the owning album's cover.
type Track struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	AlbumID     int64      `json:"albumId"`
	ArtistID    int64      `json:"artistId"`
	GenreID     *int64     `json:"genreId,omitempty"`
	ReleaseDate *time.Time `json:"releaseDate,omitempty"`
	// Duration in seconds, when it could be read from the uploaded audio.
	Duration *int `json:"duration,omitempty"`
	Timestamps
}

// OwnerID implements authz.OwnedResource.
func (t *Track) OwnerID() int64 { return t.ArtistID }

// CreateTrackRequest adds a track to an existing album.
type CreateTrackRequest struct {
	Name        string     `json:"name" form:"name" query:"name" validate:"required,min=1,max=500"`
	AlbumID     int64      `json:"album_id" form:"album_id" query:"album_id" validate:"required"`
	ArtistID    *int64     `json:"artist_id,omitempty" form:"artist_id" query:"artist_id"`
	GenreID     *int64     `json:"genre_id,omitempty" form:"genre_id" query:"genre_id"`
	ReleaseDate *time.Time `json:"release_date,omitempty" form:"release_date" query:"release_date"`
}

// CreateSingleRequest creates an album and its only track in one operation.
// The album takes the single's name and release date.
type CreateSingleRequest struct {
	Name        string     `json:"name" form:"name" query:"name" validate:"required,min=1,max=500"`
	ArtistID    *int64     `json:"artist_id,omitempty" form:"artist_id" query:"artist_id"`
	GenreID     *int64     `json:"genre_id,omitempty" form:"genre_id" query:"genre_id"`
	ReleaseDate *time.Time `json:"release_date,omitempty" form:"release_date" query:"release_date"`
}

// NewTrack is the repository-facing create payload with the owner resolved.
type NewTrack struct {
	Name        string
	AlbumID     int64
	ArtistID    int64
	GenreID     *int64
	ReleaseDate *time.Time
	Duration    *int
}

// UpdateTrackRequest is a field-level merge over an existing track.
type UpdateTrackRequest struct {
	ID          *int64     `json:"id,omitempty" query:"id"`
	Name        *string    `json:"name,omitempty" query:"name" validate:"omitempty,min=1,max=500"`
	AlbumID     *int64     `json:"album_id,omitempty" query:"album_id"`
	ArtistID    *int64     `json:"artist_id,omitempty" query:"artist_id"`
	GenreID     *int64     `json:"genre_id,omitempty" query:"genre_id"`
	ReleaseDate *time.Time `json:"release_date,omitempty" query:"release_date"`
}

// TrackSearchParams filters the track listing.
type TrackSearchParams struct {
	SearchParams
	ArtistID           *int64     `query:"artist_id"`
	AlbumID            *int64     `query:"album_id"`
	GenreID            *int64     `query:"genre_id"`
	ReleaseSearchStart *time.Time `query:"release_search_start"`
	ReleaseSearchEnd   *time.Time `query:"release_search_end"`
}

// MusicFileStats describes a stored audio object.
type MusicFileStats struct {
	Size int64
}

// TrackStream is a planned ranged read: the byte window [Start, End] of a
// file of Size bytes, and the reader yielding exactly ContentLength bytes.
// The reader owns the underlying connection; callers must Close it.
type TrackStream struct {
	Stream        io.ReadCloser
	Start         int64
	End           int64
	Size          int64
	ContentLength int64
}
