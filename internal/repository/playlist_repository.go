package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tunewave/tunewave/internal/models"
)

const playlistColumns = "id, author_id, name, created_at, updated_at"

// PostgresPlaylistRepository implements PlaylistRepository on the shared pool.
type PostgresPlaylistRepository struct {
	pool *pgxpool.Pool
}

// NewPlaylistRepository creates a new PostgresPlaylistRepository.
func NewPlaylistRepository(pool *pgxpool.Pool) *PostgresPlaylistRepository {
	return &PostgresPlaylistRepository{pool: pool}
}

func scanPlaylist(row pgx.Row) (*models.Playlist, error) {
	var p models.Playlist
	err := row.Scan(&p.ID, &p.AuthorID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePlaylist inserts a playlist after verifying the author exists.
func (r *PostgresPlaylistRepository) CreatePlaylist(ctx context.Context, playlist models.NewPlaylist) (*models.Playlist, error) {
	if err := ensureExists(ctx, r.pool, "users", "user", playlist.AuthorID); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx,
		"INSERT INTO playlists (author_id, name) VALUES ($1, $2) RETURNING "+playlistColumns,
		playlist.AuthorID, playlist.Name)
	created, err := scanPlaylist(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert playlist: %w", err)
	}
	return created, nil
}

// GetPlaylist fetches a playlist by id.
func (r *PostgresPlaylistRepository) GetPlaylist(ctx context.Context, id int64) (*models.Playlist, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+playlistColumns+" FROM playlists WHERE id = $1", id)
	p, err := scanPlaylist(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFoundError("playlist", id)
		}
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}
	return p, nil
}

// SearchPlaylists lists playlists matching the conjunction of the set filters.
func (r *PostgresPlaylistRepository) SearchPlaylists(ctx context.Context, params models.PlaylistSearchParams) ([]models.Playlist, error) {
	params.Normalize()

	var b queryBuilder
	if params.Name != "" {
		b.similarTo("name", params.Name, params.Threshold)
	}
	if params.AuthorID != nil {
		if err := ensureExists(ctx, r.pool, "users", "user", *params.AuthorID); err != nil {
			return nil, err
		}
		b.where("author_id = %s", *params.AuthorID)
	}
	applyTimeWindows(&b, params.SearchParams)

	rows, err := r.pool.Query(ctx, b.build("SELECT "+playlistColumns+" FROM playlists", params.Skip, params.Limit), b.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search playlists: %w", err)
	}
	defer rows.Close()

	var playlists []models.Playlist
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, *p)
	}
	return playlists, rows.Err()
}

// UpdatePlaylist applies only the set fields and refreshes updated_at.
func (r *PostgresPlaylistRepository) UpdatePlaylist(ctx context.Context, id int64, req models.UpdatePlaylistRequest) (*models.Playlist, error) {
	if req.AuthorID != nil {
		if err := ensureExists(ctx, r.pool, "users", "user", *req.AuthorID); err != nil {
			return nil, err
		}
	}

	sets := []string{"updated_at = now()"}
	args := []any{id}
	set := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if req.AuthorID != nil {
		set("author_id", *req.AuthorID)
	}
	if req.Name != nil {
		set("name", *req.Name)
	}

	row := r.pool.QueryRow(ctx,
		"UPDATE playlists SET "+strings.Join(sets, ", ")+" WHERE id = $1 RETURNING "+playlistColumns,
		args...)
	p, err := scanPlaylist(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFoundError("playlist", id)
		}
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}
	return p, nil
}

// DeletePlaylist removes the playlist row; memberships cascade.
func (r *PostgresPlaylistRepository) DeletePlaylist(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM playlists WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NewNotFoundError("playlist", id)
	}
	return nil
}

// AddTrackToPlaylist records a membership after verifying both sides exist
// and the pair is new.
func (r *PostgresPlaylistRepository) AddTrackToPlaylist(ctx context.Context, pt models.PlaylistTrack) (*models.PlaylistTrack, error) {
	if err := ensureExists(ctx, r.pool, "playlists", "playlist", pt.PlaylistID); err != nil {
		return nil, err
	}
	if err := ensureExists(ctx, r.pool, "tracks", "track", pt.TrackID); err != nil {
		return nil, err
	}
	_, err := r.pool.Exec(ctx,
		"INSERT INTO playlist_tracks (playlist_id, track_id) VALUES ($1, $2)",
		pt.PlaylistID, pt.TrackID)
	if err != nil {
		if isUniqueViolation(err, "") {
			return nil, models.NewAlreadyExistsError("playlist track",
				fmt.Sprintf("%d/%d", pt.PlaylistID, pt.TrackID))
		}
		return nil, fmt.Errorf("failed to add track to playlist: %w", err)
	}
	return &pt, nil
}

// RemoveTrackFromPlaylist removes a membership.
func (r *PostgresPlaylistRepository) RemoveTrackFromPlaylist(ctx context.Context, pt models.PlaylistTrack) error {
	if err := ensureExists(ctx, r.pool, "playlists", "playlist", pt.PlaylistID); err != nil {
		return err
	}
	if err := ensureExists(ctx, r.pool, "tracks", "track", pt.TrackID); err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM playlist_tracks WHERE playlist_id = $1 AND track_id = $2",
		pt.PlaylistID, pt.TrackID)
	if err != nil {
		return fmt.Errorf("failed to remove track from playlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NewAPIError(models.CodeNotFound,
			fmt.Sprintf("playlist '%d' does not contain track '%d'", pt.PlaylistID, pt.TrackID),
			http.StatusNotFound)
	}
	return nil
}
