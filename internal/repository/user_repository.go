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

const userColumns = "id, name, description, username, role, created_at, updated_at"

// PostgresUserRepository implements UserRepository on the shared pool.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgresUserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Description, &u.Username, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new account. The username must be unused.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user models.NewRoleUser) (*models.User, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)", user.Username).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, models.NewAlreadyExistsError("user", user.Username)
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, description, username, password, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		user.Name, user.Description, user.Username, user.Password, user.Role)
	created, err := scanUser(row)
	if err != nil {
		// The pre-check races with concurrent registration; the unique
		// constraint is the authority.
		if isUniqueViolation(err, "users_username_key") {
			return nil, models.NewAlreadyExistsError("user", user.Username)
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return created, nil
}

// GetUser fetches a user by id.
func (r *PostgresUserRepository) GetUser(ctx context.Context, id int64) (*models.User, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFoundError("user", id)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetUserByUsername fetches a user with its password hash for login checks.
func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.FullUser, error) {
	var u models.FullUser
	err := r.pool.QueryRow(ctx,
		"SELECT "+userColumns+", password FROM users WHERE username = $1", username).
		Scan(&u.ID, &u.Name, &u.Description, &u.Username, &u.Role, &u.CreatedAt, &u.UpdatedAt, &u.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewAPIError(models.CodeNotFound,
				fmt.Sprintf("user '%s' was not found", username), http.StatusNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &u, nil
}

// SearchUsers lists users matching the conjunction of the set filters,
// ordered by name similarity when a fuzzy name query is present.
func (r *PostgresUserRepository) SearchUsers(ctx context.Context, params models.UserSearchParams) ([]models.User, error) {
	params.Normalize()

	var b queryBuilder
	if params.Name != "" {
		b.similarTo("name", params.Name, params.Threshold)
	}
	if params.Username != "" {
		b.where("username = %s", params.Username)
	}
	applyTimeWindows(&b, params.SearchParams)

	rows, err := r.pool.Query(ctx, b.build("SELECT "+userColumns+" FROM users", params.Skip, params.Limit), b.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateUser applies only the set fields and refreshes updated_at. Changing
// the username re-checks uniqueness.
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, id int64, req models.UpdateUserRoleRequest) (*models.User, error) {
	if req.Username != nil {
		var taken bool
		err := r.pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND id <> $2)",
			*req.Username, id).Scan(&taken)
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if taken {
			return nil, models.NewAlreadyExistsError("user", *req.Username)
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
	if req.Description != nil {
		set("description", *req.Description)
	}
	if req.Username != nil {
		set("username", *req.Username)
	}
	if req.Role != nil {
		set("role", *req.Role)
	}

	row := r.pool.QueryRow(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = $1 RETURNING "+userColumns,
		args...)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFoundError("user", id)
		}
		if isUniqueViolation(err, "users_username_key") {
			return nil, models.NewAlreadyExistsError("user", *req.Username)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return u, nil
}

// DeleteUser removes the user row. Albums, tracks, playlists, memberships,
// and subscriptions go with it through the foreign-key cascade.
func (r *PostgresUserRepository) DeleteUser(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NewNotFoundError("user", id)
	}
	return nil
}

// HasAdmin reports whether any admin account exists; used by the bootstrap
// endpoint.
func (r *PostgresUserRepository) HasAdmin(ctx context.Context) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM users WHERE role = 'admin')").Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check for admin: %w", err)
	}
	return exists, nil
}

// Subscribe records a subscription after verifying both sides exist.
func (r *PostgresUserRepository) Subscribe(ctx context.Context, sub models.Subscription) error {
	if err := r.ensureUserExists(ctx, sub.SubscriberID); err != nil {
		return err
	}
	if err := r.ensureUserExists(ctx, sub.ArtistID); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx,
		"INSERT INTO subscriptions (subscriber_id, artist_id) VALUES ($1, $2)",
		sub.SubscriberID, sub.ArtistID)
	if err != nil {
		if isUniqueViolation(err, "") {
			return models.NewAlreadyExistsError("subscription",
				fmt.Sprintf("%d->%d", sub.SubscriberID, sub.ArtistID))
		}
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	return nil
}

// Unsubscribe removes a subscription.
func (r *PostgresUserRepository) Unsubscribe(ctx context.Context, sub models.Subscription) error {
	if err := r.ensureUserExists(ctx, sub.SubscriberID); err != nil {
		return err
	}
	if err := r.ensureUserExists(ctx, sub.ArtistID); err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM subscriptions WHERE subscriber_id = $1 AND artist_id = $2",
		sub.SubscriberID, sub.ArtistID)
	if err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NewAPIError(models.CodeNotFound,
			fmt.Sprintf("subscription from '%d' to '%d' was not found", sub.SubscriberID, sub.ArtistID), http.StatusNotFound)
	}
	return nil
}

// ListSubscriptions lists the artists the user subscribes to.
func (r *PostgresUserRepository) ListSubscriptions(ctx context.Context, userID int64, skip, limit int) ([]models.User, error) {
	return r.listSubscriptionSide(ctx, userID,
		"JOIN subscriptions s ON s.artist_id = u.id WHERE s.subscriber_id = $1", skip, limit)
}

// ListSubscribers lists the users subscribed to the artist.
func (r *PostgresUserRepository) ListSubscribers(ctx context.Context, userID int64, skip, limit int) ([]models.User, error) {
	return r.listSubscriptionSide(ctx, userID,
		"JOIN subscriptions s ON s.subscriber_id = u.id WHERE s.artist_id = $1", skip, limit)
}

func (r *PostgresUserRepository) listSubscriptionSide(ctx context.Context, userID int64, join string, skip, limit int) ([]models.User, error) {
	if err := r.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = models.DefaultSearchLimit
	}
	query := fmt.Sprintf(
		"SELECT u.id, u.name, u.description, u.username, u.role, u.created_at, u.updated_at FROM users u %s OFFSET $2 LIMIT $3",
		join)
	rows, err := r.pool.Query(ctx, query, userID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// SubscriberCount counts the artist's subscribers.
func (r *PostgresUserRepository) SubscriberCount(ctx context.Context, userID int64) (int64, error) {
	if err := r.ensureUserExists(ctx, userID); err != nil {
		return 0, err
	}
	var count int64
	err := r.pool.QueryRow(ctx,
		"SELECT count(*) FROM subscriptions WHERE artist_id = $1", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return count, nil
}

func (r *PostgresUserRepository) ensureUserExists(ctx context.Context, id int64) error {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return models.NewNotFoundError("user", id)
	}
	return nil
}

// applyTimeWindows adds the created/updated range filters shared by every
// searchable entity.
func applyTimeWindows(b *queryBuilder, params models.SearchParams) {
	if params.CreatedSearchStart != nil {
		b.where("created_at >= %s", *params.CreatedSearchStart)
	}
	if params.CreatedSearchEnd != nil {
		b.where("created_at <= %s", *params.CreatedSearchEnd)
	}
	if params.UpdatedSearchStart != nil {
		b.where("updated_at >= %s", *params.UpdatedSearchStart)
	}
	if params.UpdatedSearchEnd != nil {
		b.where("updated_at <= %s", *params.UpdatedSearchEnd)
	}
}
