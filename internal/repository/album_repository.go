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

const albumColumns = "id, name, artist_id, release_date, created_at, updated_at"

// PostgresAlbumRepository implements AlbumRepository on the shared pool.
type PostgresAlbumRepository struct {
	pool *pgxpool.Pool
}

// NewAlbumRepository creates a new PostgresAlbumRepository.
func NewAlbumRepository(pool *pgxpool.Pool) *PostgresAlbumRepository {
	return &PostgresAlbumRepository{pool: pool}
}

func scanAlbum(row pgx.Row) (*models.Album, error) {
	var a models.Album
	err := row.Scan(&a.ID, &a.Name, &a.ArtistID, &a.ReleaseDate, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAlbum inserts an album after verifying the artist exists.
func (r *PostgresAlbumRepository) CreateAlbum(ctx context.Context, album models.NewAlbum) (*models.Album, error) {
	if err := ensureExists(ctx, r.pool, "users", "user", album.ArtistID); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO albums (name, artist_id, release_date)
		 VALUES ($1, $2, $3)
		 RETURNING `+albumColumns,
		album.Name, album.ArtistID, album.ReleaseDate)
	created, err := scanAlbum(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert album: %w", err)
	}
	return created, nil
}

// GetAlbum fetches an album by id.
func (r *PostgresAlbumRepository) GetAlbum(ctx context.Context, id int64) (*models.Album, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+albumColumns+" FROM albums WHERE id = $1", id)
	a, err := scanAlbum(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFoundErrorWithCode(models.CodeAlbumNotFound, "album", id)
		}
		return nil, fmt.Errorf("failed to get album: %w", err)
	}
	return a, nil
}

// SearchAlbums lists albums matching the conjunction of the set filters.
func (r *PostgresAlbumRepository) SearchAlbums(ctx context.Context, params models.AlbumSearchParams) ([]models.Album, error) {
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
	if params.ReleaseSearchStart != nil {
		b.where("release_date >= %s", *params.ReleaseSearchStart)
	}
	if params.ReleaseSearchEnd != nil {
		b.where("release_date <= %s", *params.ReleaseSearchEnd)
	}
	applyTimeWindows(&b, params.SearchParams)

	rows, err := r.pool.Query(ctx, b.build("SELECT "+albumColumns+" FROM albums", params.Skip, params.Limit), b.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search albums: %w", err)
	}
	defer rows.Close()

	var albums []models.Album
	for rows.Next() {
		a, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan album: %w", err)
		}
		albums = append(albums, *a)
	}
	return albums, rows.Err()
}

// UpdateAlbum applies only the set fields and refreshes updated_at.
func (r *PostgresAlbumRepository) UpdateAlbum(ctx context.Context, id int64, req models.UpdateAlbumRequest) (*models.Album, error) {
	if req.ArtistID != nil {
		if err := ensureExists(ctx, r.pool, "users", "user", *req.ArtistID); err != nil {
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
	if req.ArtistID != nil {
		set("artist_id", *req.ArtistID)
	}
	if req.ReleaseDate != nil {
		set("release_date", *req.ReleaseDate)
	}

	row := r.pool.QueryRow(ctx,
		"UPDATE albums SET "+strings.Join(sets, ", ")+" WHERE id = $1 RETURNING "+albumColumns,
		args...)
	a, err := scanAlbum(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFoundErrorWithCode(models.CodeAlbumNotFound, "album", id)
		}
		return nil, fmt.Errorf("failed to update album: %w", err)
	}
	return a, nil
}

// DeleteAlbum removes the album row; its tracks cascade.
func (r *PostgresAlbumRepository) DeleteAlbum(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM albums WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete album: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NewNotFoundErrorWithCode(models.CodeAlbumNotFound, "album", id)
	}
	return nil
}

// ensureExists verifies a referenced id before it is used in a filter or an
// insert, so a dangling reference surfaces as the entity's own not-found.
func ensureExists(ctx context.Context, pool *pgxpool.Pool, table, resource string, id int64) error {
	var exists bool
	err := pool.QueryRow(ctx,
		fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)", table), id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", resource, err)
	}
	if !exists {
		code := models.CodeNotFound
		if resource == "album" {
			code = models.CodeAlbumNotFound
		}
		return models.NewNotFoundErrorWithCode(code, resource, id)
	}
	return nil
}
