package service

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tunewave/tunewave/internal/models"
)

func newMusicFixture() (*MusicServiceImpl, *MockTrackRepository, *MockAlbumRepository, *MockGenreRepository, *MockBlobRepository) {
	tracks := new(MockTrackRepository)
	albums := new(MockAlbumRepository)
	genres := new(MockGenreRepository)
	blobs := new(MockBlobRepository)
	svc := NewMusicServiceImpl(tracks, albums, genres, blobs, zerolog.Nop())
	return svc, tracks, albums, genres, blobs
}

func stubStream(start, end int64) *models.TrackStream {
	return &models.TrackStream{
		Stream:        io.NopCloser(bytes.NewReader(nil)),
		Start:         start,
		End:           end,
		ContentLength: end - start + 1,
	}
}

func int64Ptr(v int64) *int64 { return &v }

func TestStreamTrackFullObject(t *testing.T) {
	svc, tracks, _, _, blobs := newMusicFixture()
	track := &models.Track{ID: 1, ArtistID: 2, AlbumID: 3}

	tracks.On("GetTrack", mock.Anything, int64(1)).Return(track, nil)
	blobs.On("StatTrack", mock.Anything, track).Return(&models.MusicFileStats{Size: 10}, nil)
	blobs.On("StreamTrack", mock.Anything, track, int64(0), int64(9)).Return(stubStream(0, 9), nil)

	stream, err := svc.StreamTrack(context.Background(), 1, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stream.Start)
	assert.Equal(t, int64(9), stream.End)
	assert.Equal(t, int64(10), stream.Size)
	assert.Equal(t, int64(10), stream.ContentLength)
}

func TestStreamTrackWindow(t *testing.T) {
	svc, tracks, _, _, blobs := newMusicFixture()
	track := &models.Track{ID: 1, ArtistID: 2, AlbumID: 3}

	tracks.On("GetTrack", mock.Anything, int64(1)).Return(track, nil)
	blobs.On("StatTrack", mock.Anything, track).Return(&models.MusicFileStats{Size: 10}, nil)
	blobs.On("StreamTrack", mock.Anything, track, int64(2), int64(5)).Return(stubStream(2, 5), nil)

	stream, err := svc.StreamTrack(context.Background(), 1, int64Ptr(2), int64Ptr(5))
	require.NoError(t, err)
	assert.Equal(t, int64(4), stream.ContentLength)
	assert.Equal(t, int64(10), stream.Size)
}

func TestStreamTrackClampsEndToSize(t *testing.T) {
	svc, tracks, _, _, blobs := newMusicFixture()
	track := &models.Track{ID: 1, ArtistID: 2, AlbumID: 3}

	tracks.On("GetTrack", mock.Anything, int64(1)).Return(track, nil)
	blobs.On("StatTrack", mock.Anything, track).Return(&models.MusicFileStats{Size: 10}, nil)
	blobs.On("StreamTrack", mock.Anything, track, int64(2), int64(9)).Return(stubStream(2, 9), nil)

	stream, err := svc.StreamTrack(context.Background(), 1, int64Ptr(2), int64Ptr(100))
	require.NoError(t, err)
	assert.Equal(t, int64(9), stream.End)
}

func TestStreamTrackCapsWindowAtOneMiB(t *testing.T) {
	svc, tracks, _, _, blobs := newMusicFixture()
	track := &models.Track{ID: 1, ArtistID: 2, AlbumID: 3}
	size := int64(3 * 1024 * 1024)

	tracks.On("GetTrack", mock.Anything, int64(1)).Return(track, nil)
	blobs.On("StatTrack", mock.Anything, track).Return(&models.MusicFileStats{Size: size}, nil)
	wantEnd := int64(maxStreamWindow - 1)
	blobs.On("StreamTrack", mock.Anything, track, int64(0), wantEnd).Return(stubStream(0, wantEnd), nil)

	stream, err := svc.StreamTrack(context.Background(), 1, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(maxStreamWindow), stream.ContentLength)
	assert.LessOrEqual(t, stream.End-stream.Start+1, int64(maxStreamWindow))
}

func TestStreamTrackInvalidStart(t *testing.T) {
	svc, tracks, _, _, blobs := newMusicFixture()
	track := &models.Track{ID: 1, ArtistID: 2, AlbumID: 3}

	tracks.On("GetTrack", mock.Anything, int64(1)).Return(track, nil)
	blobs.On("StatTrack", mock.Anything, track).Return(&models.MusicFileStats{Size: 10}, nil)

	_, err := svc.StreamTrack(context.Background(), 1, int64Ptr(10), nil)
	require.Error(t, err)
	assert.True(t, models.HasCode(err, models.CodeInvalidStart))
	blobs.AssertNotCalled(t, "StreamTrack", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStreamTrackRejectsInvertedRange(t *testing.T) {
	svc, tracks, _, _, blobs := newMusicFixture()
	track := &models.Track{ID: 1, ArtistID: 2, AlbumID: 3}

	tracks.On("GetTrack", mock.Anything, int64(1)).Return(track, nil)
	blobs.On("StatTrack", mock.Anything, track).Return(&models.MusicFileStats{Size: 10}, nil)

	_, err := svc.StreamTrack(context.Background(), 1, int64Ptr(5), int64Ptr(2))
	require.Error(t, err)
}

func TestStreamTrackMissingTrack(t *testing.T) {
	svc, tracks, _, _, _ := newMusicFixture()
	tracks.On("GetTrack", mock.Anything, int64(9)).Return(nil, models.NewNotFoundError("track", 9))

	_, err := svc.StreamTrack(context.Background(), 9, nil, nil)
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestCreateSingleCreatesAlbumTrackAndBlobs(t *testing.T) {
	svc, tracks, albums, _, blobs := newMusicFixture()
	audio := []byte("not really audio")
	cover := []byte("png bytes")

	albums.On("CreateAlbum", mock.Anything, models.NewAlbum{Name: "One", ArtistID: 2}).
		Return(&models.Album{ID: 5, Name: "One", ArtistID: 2}, nil)
	tracks.On("CreateTrack", mock.Anything, mock.MatchedBy(func(nt models.NewTrack) bool {
		return nt.Name == "One" && nt.AlbumID == 5 && nt.ArtistID == 2
	})).Return(&models.Track{ID: 7, Name: "One", AlbumID: 5, ArtistID: 2}, nil)
	blobs.On("PutTrack", mock.Anything, mock.Anything, audio, "audio/mpeg").Return(nil)
	blobs.On("PutImage", mock.Anything, models.AlbumImage(5), cover, "image/png").Return(nil)

	track, err := svc.CreateSingle(context.Background(),
		models.CreateSingleRequest{Name: "One"}, 2, audio, "audio/mpeg", cover, "image/png")
	require.NoError(t, err)
	assert.Equal(t, int64(7), track.ID)
	blobs.AssertExpectations(t)
}

func TestCreateSingleWithoutCoverSkipsImage(t *testing.T) {
	svc, tracks, albums, _, blobs := newMusicFixture()

	albums.On("CreateAlbum", mock.Anything, mock.Anything).
		Return(&models.Album{ID: 5, ArtistID: 2}, nil)
	tracks.On("CreateTrack", mock.Anything, mock.Anything).
		Return(&models.Track{ID: 7, AlbumID: 5, ArtistID: 2}, nil)
	blobs.On("PutTrack", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.CreateSingle(context.Background(),
		models.CreateSingleRequest{Name: "One"}, 2, []byte("x"), "audio/mpeg", nil, "")
	require.NoError(t, err)
	blobs.AssertNotCalled(t, "PutImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteTrackReapsEmptyAlbum(t *testing.T) {
	svc, tracks, albums, _, blobs := newMusicFixture()
	track := &models.Track{ID: 7, AlbumID: 3, ArtistID: 2}

	tracks.On("GetTrack", mock.Anything, int64(7)).Return(track, nil)
	blobs.On("DeleteTrack", mock.Anything, track).Return(nil)
	tracks.On("CountTracksInAlbum", mock.Anything, int64(3)).Return(int64(1), nil)
	blobs.On("DeleteImage", mock.Anything, models.AlbumImage(3)).
		Return(models.NewNotFoundErrorWithCode(models.CodeImageFileMissing, "image for album", 3))
	tracks.On("DeleteTrack", mock.Anything, int64(7)).Return(nil)
	albums.On("DeleteAlbum", mock.Anything, int64(3)).Return(nil)

	require.NoError(t, svc.DeleteTrack(context.Background(), 7))
	albums.AssertCalled(t, "DeleteAlbum", mock.Anything, int64(3))
}

func TestDeleteTrackKeepsPopulatedAlbum(t *testing.T) {
	svc, tracks, albums, _, blobs := newMusicFixture()
	track := &models.Track{ID: 7, AlbumID: 3, ArtistID: 2}

	tracks.On("GetTrack", mock.Anything, int64(7)).Return(track, nil)
	blobs.On("DeleteTrack", mock.Anything, track).Return(nil)
	tracks.On("CountTracksInAlbum", mock.Anything, int64(3)).Return(int64(4), nil)
	tracks.On("DeleteTrack", mock.Anything, int64(7)).Return(nil)

	require.NoError(t, svc.DeleteTrack(context.Background(), 7))
	albums.AssertNotCalled(t, "DeleteAlbum", mock.Anything, mock.Anything)
	blobs.AssertNotCalled(t, "DeleteImage", mock.Anything, mock.Anything)
}

func TestDeleteTrackToleratesMissingBlob(t *testing.T) {
	svc, tracks, albums, _, blobs := newMusicFixture()
	track := &models.Track{ID: 7, AlbumID: 3, ArtistID: 2}

	tracks.On("GetTrack", mock.Anything, int64(7)).Return(track, nil)
	blobs.On("DeleteTrack", mock.Anything, track).
		Return(models.NewNotFoundErrorWithCode(models.CodeMusicFileMissing, "audio for track", 7))
	tracks.On("CountTracksInAlbum", mock.Anything, int64(3)).Return(int64(2), nil)
	tracks.On("DeleteTrack", mock.Anything, int64(7)).Return(nil)

	require.NoError(t, svc.DeleteTrack(context.Background(), 7))
	_ = albums
}

func TestDeleteAlbumCascadesOverTracks(t *testing.T) {
	svc, tracks, albums, _, blobs := newMusicFixture()
	album := &models.Album{ID: 3, ArtistID: 2}
	track := &models.Track{ID: 7, AlbumID: 3, ArtistID: 2}

	albums.On("GetAlbum", mock.Anything, int64(3)).Return(album, nil)
	tracks.On("SearchTracks", mock.Anything, mock.Anything).Return([]models.Track{*track}, nil)

	// Track-deletion path: the only track, so the album is reaped with it.
	tracks.On("GetTrack", mock.Anything, int64(7)).Return(track, nil)
	blobs.On("DeleteTrack", mock.Anything, mock.Anything).Return(nil)
	tracks.On("CountTracksInAlbum", mock.Anything, int64(3)).Return(int64(1), nil)
	blobs.On("DeleteImage", mock.Anything, models.AlbumImage(3)).
		Return(models.NewNotFoundErrorWithCode(models.CodeImageFileMissing, "image for album", 3))
	tracks.On("DeleteTrack", mock.Anything, int64(7)).Return(nil)
	albums.On("DeleteAlbum", mock.Anything, int64(3)).Return(nil).Once()

	// The final album delete tolerates the row being gone already.
	albums.On("DeleteAlbum", mock.Anything, int64(3)).
		Return(models.NewNotFoundErrorWithCode(models.CodeAlbumNotFound, "album", 3))

	require.NoError(t, svc.DeleteAlbum(context.Background(), 3))
}

func TestGetTrackImageUsesAlbumCover(t *testing.T) {
	svc, tracks, _, _, blobs := newMusicFixture()
	track := &models.Track{ID: 7, AlbumID: 3, ArtistID: 2}

	tracks.On("GetTrack", mock.Anything, int64(7)).Return(track, nil)
	blobs.On("GetImage", mock.Anything, models.AlbumImage(3)).Return([]byte("png"), nil)

	data, err := svc.GetTrackImage(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)
}
