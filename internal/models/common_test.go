package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageTargetObjectKey(t *testing.T) {
	assert.Equal(t, "albums/3", AlbumImage(3).ObjectKey())
	assert.Equal(t, "user/7", UserImage(7).ObjectKey())
	assert.Equal(t, "playlist/11", PlaylistImage(11).ObjectKey())
}

func TestSearchParamsNormalize(t *testing.T) {
	var p SearchParams
	p.Normalize()
	assert.Equal(t, DefaultSimilarityThreshold, p.Threshold)
	assert.Equal(t, DefaultSearchLimit, p.Limit)

	p = SearchParams{Threshold: 0.7, Limit: 5}
	p.Normalize()
	assert.Equal(t, 0.7, p.Threshold)
	assert.Equal(t, 5, p.Limit)
}

func TestActivityEventValid(t *testing.T) {
	for _, e := range KnownEvents {
		assert.True(t, e.Valid())
	}
	assert.False(t, ActivityEvent("shuffle").Valid())
	assert.False(t, ActivityEvent("").Valid())
}

func TestUserRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleAnalyst.Valid())
	assert.False(t, UserRole("root").Valid())
}

func TestHasCodeAndIsNotFound(t *testing.T) {
	err := NewNotFoundErrorWithCode(CodeQueueNotFound, "queue for user", 1)
	assert.True(t, HasCode(err, CodeQueueNotFound))
	assert.False(t, HasCode(err, CodeAlbumNotFound))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(ErrForbidden))
}

func TestOwnerProjections(t *testing.T) {
	u := &User{ID: 4, Name: "A"}
	assert.Equal(t, int64(4), u.OwnerID())

	track := &Track{ID: 1, ArtistID: 9}
	assert.Equal(t, int64(9), track.OwnerID())

	album := &Album{ID: 1, ArtistID: 8}
	assert.Equal(t, int64(8), album.OwnerID())

	playlist := &Playlist{ID: 1, AuthorID: 6}
	assert.Equal(t, int64(6), playlist.OwnerID())
}
