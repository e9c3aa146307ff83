package models

import (
	"fmt"
	"time"
)

// Timestamps provides common timestamp fields
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SearchParams carries the filter fields shared by every name-searchable
// entity: fuzzy name match with a similarity threshold, creation/update
// windows, and offset pagination.
type SearchParams struct {
	Name               string     `query:"name"`
	Threshold          float64    `query:"threshold" validate:"gte=0,lte=1"`
	Skip               int        `query:"skip" validate:"gte=0"`
	Limit              int        `query:"limit" validate:"gte=0,lte=1000"`
	CreatedSearchStart *time.Time `query:"created_search_start"`
	CreatedSearchEnd   *time.Time `query:"created_search_end"`
	UpdatedSearchStart *time.Time `query:"updated_search_start"`
	UpdatedSearchEnd   *time.Time `query:"updated_search_end"`
}

const (
	// DefaultSimilarityThreshold is applied when a fuzzy search request
	// leaves threshold unset.
	DefaultSimilarityThreshold = 0.3

	// DefaultSearchLimit is applied when a search request leaves limit
	// unset.
	DefaultSearchLimit = 100
)

// Normalize fills zero-valued threshold and limit with their defaults.
func (p *SearchParams) Normalize() {
	if p.Threshold == 0 {
		p.Threshold = DefaultSimilarityThreshold
	}
	if p.Limit == 0 {
		p.Limit = DefaultSearchLimit
	}
}

// ImageTargetKind tags the owner type of a cover image.
type ImageTargetKind string

const (
	ImageTargetAlbum    ImageTargetKind = "album"
	ImageTargetUser     ImageTargetKind = "user"
	ImageTargetPlaylist ImageTargetKind = "playlist"
)

// ImageTarget identifies the object a cover image belongs to. Object keys in
// the cover bucket are derived from the tag, so the mapping is total: there
// is no image without an owning album, user, or playlist.
type ImageTarget struct {
	Kind ImageTargetKind
	ID   int64
}

// AlbumImage targets the cover of an album.
func AlbumImage(id int64) ImageTarget { return ImageTarget{Kind: ImageTargetAlbum, ID: id} }

// UserImage targets the profile image of a user.
func UserImage(id int64) ImageTarget { return ImageTarget{Kind: ImageTargetUser, ID: id} }

// PlaylistImage targets the cover of a playlist.
func PlaylistImage(id int64) ImageTarget { return ImageTarget{Kind: ImageTargetPlaylist, ID: id} }

// ObjectKey derives the cover-bucket key for the target.
func (t ImageTarget) ObjectKey() string {
	switch t.Kind {
	case ImageTargetAlbum:
		return fmt.Sprintf("albums/%d", t.ID)
	case ImageTargetUser:
		return fmt.Sprintf("user/%d", t.ID)
	default:
		return fmt.Sprintf("playlist/%d", t.ID)
	}
}
