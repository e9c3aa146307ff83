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

const genreColumns = "id, name, created_at, updated_at"

// PostgresGenreRepository implements GenreRepository on the shared pool.
type PostgresGenreRepository struct {
	pool *pgxpool.Pool
}

// NewGenreRepository creates a new PostgresGenreRepository.
func NewGenreRepository(pool *pgxpool.Pool) *PostgresGenreRepository {
	return &PostgresGenreRepository{pool: pool}
}

func scanGenre(row pgx.Row) (*models.Genre, error) {
	var g models.Genre
	err := row.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// CreateGenre inserts a genre. The name must be unused; the match is
// case-sensitive.
func (r *PostgresGenreRepository) CreateGenre(ctx context.Context, name string) (*models.Genre, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM genres WHERE name = $1)", name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check genre name: %w", err)
	}
	if exists {
		return nil, models.NewAlreadyExistsError("genre", name)
	}

	row := r.pool.QueryRow(ctx,
		"INSERT INTO genres (name) VALUES ($1) RETURNING "+genreColumns, name)
	g, err := scanGenre(row)
	if err != nil {
		if isUniqueViolation(err, "genres_name_key") {
			return nil, models.NewAlreadyExistsError("genre", name)
		}
		return nil, fmt.Errorf("failed to insert genre: %w", err)
	}
	return g, nil
}

// GetGenre fetches a genre by id.
func (r *PostgresGenreRepository) GetGenre(ctx context.Context, id int64) (*models.Genre, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+genreColumns+" FROM genres WHERE id = $1", id)
	g, err := scanGenre(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFoundError("genre", id)
		}
		return nil, fmt.Errorf("failed to get genre: %w", err)
	}
	return g, nil
}

// SearchGenres lists genres by fuzzy name match.
func (r *PostgresGenreRepository) SearchGenres(ctx context.Context, params models.GenreSearchParams) ([]models.Genre, error) {
	params.Normalize()

	var b queryBuilder
	if params.Name != "" {
		b.similarTo("name", params.Name, params.Threshold)
	}
	applyTimeWindows(&b, params.SearchParams)

	rows, err := r.pool.Query(ctx, b.build("SELECT "+genreColumns+" FROM genres", params.Skip, params.Limit), b.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search genres: %w", err)
	}
	defer rows.Close()

	var genres []models.Genre
	for rows.Next() {
		g, err := scanGenre(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, *g)
	}
	return genres, rows.Err()
}

// UpdateGenre renames a genre, re-checking name uniqueness.
func (r *PostgresGenreRepository) UpdateGenre(ctx context.Context, id int64, req models.UpdateGenreRequest) (*models.Genre, error) {
	if req.Name != nil {
		var taken bool
		err := r.pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM genres WHERE name = $1 AND id <> $2)",
			*req.Name, id).Scan(&taken)
		if err != nil {
			return nil, fmt.Errorf("failed to check genre name: %w", err)
		}
		if taken {
			return nil, models.NewAlreadyExistsError("genre", *req.Name)
		}
	}

	sets := []string{"updated_at = now()"}
	args := []any{id}
	if req.Name != nil {
		args = append(args, *req.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}

	row := r.pool.QueryRow(ctx,
		"UPDATE genres SET "+strings.Join(sets, ", ")+" WHERE id = $1 RETURNING "+genreColumns,
		args...)
	g, err := scanGenre(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFoundError("genre", id)
		}
		if req.Name != nil && isUniqueViolation(err, "genres_name_key") {
			return nil, models.NewAlreadyExistsError("genre", *req.Name)
		}
		return nil, fmt.Errorf("failed to update genre: %w", err)
	}
	return g, nil
}

// DeleteGenre removes the genre; referencing tracks keep a null genre.
func (r *PostgresGenreRepository) DeleteGenre(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM genres WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete genre: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NewNotFoundError("genre", id)
	}
	return nil
}
