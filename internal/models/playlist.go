package models

// Playlist is a user-curated track collection. Every user gets a playlist
// named "fav" at registration.
type Playlist struct {
	ID       int64  `json:"id"`
	AuthorID int64  `json:"authorId"`
	Name     string `json:"name"`
	Timestamps
}

// OwnerID implements authz.OwnedResource.
func (p *Playlist) OwnerID() int64 { return p.AuthorID }

// FavPlaylistName is the playlist created as a registration side-effect.
const FavPlaylistName = "fav"

// CreatePlaylistRequest creates a playlist; the author defaults to the caller.
type CreatePlaylistRequest struct {
	AuthorID *int64 `json:"author_id,omitempty" form:"author_id" query:"author_id"`
	Name     string `json:"name" form:"name" query:"name" validate:"required,min=1,max=500"`
}

// NewPlaylist is the repository-facing create payload with the author resolved.
type NewPlaylist struct {
	AuthorID int64
	Name     string
}

// UpdatePlaylistRequest is a field-level merge over an existing playlist.
type UpdatePlaylistRequest struct {
	ID       *int64  `json:"id,omitempty" query:"id"`
	AuthorID *int64  `json:"author_id,omitempty" query:"author_id"`
	Name     *string `json:"name,omitempty" query:"name" validate:"omitempty,min=1,max=500"`
}

// PlaylistSearchParams filters the playlist listing.
type PlaylistSearchParams struct {
	SearchParams
	AuthorID *int64 `query:"author_id"`
}

// PlaylistTrack is a playlist membership row; the pair is the primary key.
type PlaylistTrack struct {
	PlaylistID int64 `json:"playlist_id" query:"playlist_id" validate:"required"`
	TrackID    int64 `json:"track_id" query:"track_id" validate:"required"`
}
