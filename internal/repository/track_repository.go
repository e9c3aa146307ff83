package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tunewave/tunewave/internal/models"
)

const trackColumns = "id, name, album_id, artist_id, genre_id, release_date, duration, created_at, updated_at"

// PostgresTrackRepository implements TrackRepository on the shared pool.
type PostgresTrackRepository struct {
	pool *pgxpool.Pool
}

// NewTrackRepository creates a new PostgresTrackRepository.
func NewTrackRepository(pool *pgxpool.Pool) *PostgresTrackRepository {
	return &PostgresTrackRepository{pool: pool}
}

func scanTrack(row pgx.Row) (*models.Track, error) {
	var t models.Track
	err := row.Scan(&t.ID, &t.Name, &t.AlbumID, &t.ArtistID, &t.GenreID,
		&t.ReleaseDate, &t.Duration, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTrack inserts a track after verifying the album, artist, and (when
// set) genre all exist.
func (r *PostgresTrackRepository) CreateTrack(ctx context.Context, track models.NewTrack) (*models.Track, error) {
	if err := ensureExists(ctx, r.pool, "albums", "album", track.AlbumID); err != nil {
		return nil, err
	}
	if err := ensureExists(ctx, r.pool, "users", "user", track.ArtistID); err != nil {
		return nil, err
	}
	if track.GenreID != nil {
		if err := ensureExists(ctx, r.pool, "genres", "genre", *track.GenreID); err != nil {
			return nil, err
		}
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO tracks (name, album_id, artist_id, genre_id, release_date, duration)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+trackColumns,
		track.Name, track.AlbumID, track.ArtistID, track.GenreID, track.ReleaseDate, track.Duration)
	created, err := scanTrack(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert track: %w", err)
	}
	return created, nil
}

// GetTrack fetches a track by id.
func (r *PostgresTrackRepository) GetTrack(ctx context.Context, id int64) (*models.Track, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+trackColumns+" FROM tracks WHERE id = $1", id)
	t, err := scanTrack(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFoundError("track", id)
		}
		return nil, fmt.Errorf("failed to get track: %w", err)
	}
	return t, nil
}

// SearchTracks lists tracks matching the conjunction of the set filters.
func (r *PostgresTrackRepository) SearchTracks(ctx context.Context, params models.TrackSearchParams) ([]models.Track, error) {
	params.Normalize()

	var b queryBuilder
	if params.Name != "" {
		b.similarTo("name", params.Name, params.Threshold)
	}
	if params.ArtistID != nil {
		if err := ensureExists(ctx, r.pool, "users", "user", *params.ArtistID); err != nil {
			return nil, err
		}
		b.where("artist_id = %s", *params.ArtistID)
	}
	if params.AlbumID != nil {
		if err := ensureExists(ctx, r.pool, "albums", "album", *params.AlbumID); err != nil {
			return nil, err
		}
		b.where("album_id = %s", *params.AlbumID)
	}
	if params.GenreID != nil {
		if err := ensureExists(ctx, r.pool, "genres", "genre", *params.GenreID); err != nil {
			return nil, err
		}
		b.where("genre_id = %s", *params.GenreID)
	}
	if params.ReleaseSearchStart != nil {
		b.where("release_date >= %s", *params.ReleaseSearchStart)
	}
	if params.ReleaseSearchEnd != nil {
		b.where("release_date <= %s", *params.ReleaseSearchEnd)
	}
	applyTimeWindows(&b, params.SearchParams)

	rows, err := r.pool.Query(ctx, b.build("SELECT "+trackColumns+" FROM tracks", params.Skip, params.Limit), b.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search tracks: %w", err)
	}
	defer rows.Close()

	var tracks []models.Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, *t)
	}
	return tracks, rows.Err()
}

// UpdateTrack applies only the set fields and refreshes updated_at. Changed
// references are verified first.
func (r *PostgresTrackRepository) UpdateTrack(ctx context.Context, id int64, req models.UpdateTrackRequest) (*models.Track, error) {
	if req.AlbumID != nil {
		if err := ensureExists(ctx, r.pool, "albums", "album", *req.AlbumID); err != nil {
			return nil, err
		}
	}
	if req.ArtistID != nil {
		if err := ensureExists(ctx, r.pool, "users", "user", *req.ArtistID); err != nil {
			return nil, err
		}
	}
	if req.GenreID != nil {
		if err := ensureExists(ctx, r.pool, "genres", "genre", *req.GenreID); err != nil {
			return nil, err
		}
	}

	sets := []string{"updated_at = now()"}
	args := []any{id}
	set := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if req.Name != nil {
		set("name", *req.Name)
	}
	if req.AlbumID != nil {
		set("album_id", *req.AlbumID)
	}
	if req.ArtistID != nil {
		set("artist_id", *req.ArtistID)
	}
	if req.GenreID != nil {
		set("genre_id", *req.GenreID)
	}
	if req.ReleaseDate != nil {
		set("release_date", *req.ReleaseDate)
	}

	row := r.pool.QueryRow(ctx,
		"UPDATE tracks SET "+strings.Join(sets, ", ")+" WHERE id = $1 RETURNING "+trackColumns,
		args...)
	t, err := scanTrack(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFoundError("track", id)
		}
		return nil, fmt.Errorf("failed to update track: %w", err)
	}
	return t, nil
}

// UpdateTrackDuration records the duration read from a replaced audio file.
func (r *PostgresTrackRepository) UpdateTrackDuration(ctx context.Context, id int64, duration *int) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE tracks SET duration = $2, updated_at = now() WHERE id = $1", id, duration)
	if err != nil {
		return fmt.Errorf("failed to update track duration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NewNotFoundError("track", id)
	}
	return nil
}

// DeleteTrack removes the track row; playlist memberships cascade.
func (r *PostgresTrackRepository) DeleteTrack(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tracks WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete track: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NewNotFoundError("track", id)
	}
	return nil
}

// CountTracksInAlbum counts the tracks still referencing the album.
func (r *PostgresTrackRepository) CountTracksInAlbum(ctx context.Context, albumID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		"SELECT count(*) FROM tracks WHERE album_id = $1", albumID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count album tracks: %w", err)
	}
	return count, nil
}
