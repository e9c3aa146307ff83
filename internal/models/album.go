package models

import "time"

// Album groups tracks under an artist. A single is an album created
// atomically with its only track.
type Album struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	ArtistID    int64      `json:"artistId"`
	ReleaseDate *time.Time `json:"releaseDate,omitempty"`
	Timestamps
}

// OwnerID implements authz.OwnedResource.
func (a *Album) OwnerID() int64 { return a.ArtistID }

// CreateAlbumRequest creates an empty album for an artist.
type CreateAlbumRequest struct {
	Name        string     `json:"name" form:"name" query:"name" validate:"required,min=1,max=500"`
	ArtistID    *int64     `json:"artist_id,omitempty" form:"artist_id" query:"artist_id"`
	ReleaseDate *time.Time `json:"release_date,omitempty" form:"release_date" query:"release_date"`
}

// NewAlbum is the repository-facing create payload with the owner resolved.
type NewAlbum struct {
	Name        string
	ArtistID    int64
	ReleaseDate *time.Time
}

// UpdateAlbumRequest is a field-level merge over an existing album.
type UpdateAlbumRequest struct {
	ID          *int64     `json:"id,omitempty" query:"id"`
	Name        *string    `json:"name,omitempty" query:"name" validate:"omitempty,min=1,max=500"`
	ArtistID    *int64     `json:"artist_id,omitempty" query:"artist_id"`
	ReleaseDate *time.Time `json:"release_date,omitempty" query:"release_date"`
}

// AlbumSearchParams filters the album listing.
type AlbumSearchParams struct {
	SearchParams
	ArtistID           *int64     `query:"artist_id"`
	ReleaseSearchStart *time.Time `query:"release_search_start"`
	ReleaseSearchEnd   *time.Time `query:"release_search_end"`
}
