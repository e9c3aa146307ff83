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

// PostgresActivityRepository implements ActivityRepository on the shared pool.
type PostgresActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a new PostgresActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) *PostgresActivityRepository {
	return &PostgresActivityRepository{pool: pool}
}

const activitySelect = `SELECT a.id, a.user_id, a.track_id, e.name, a.time
	FROM user_activities a JOIN events e ON e.id = a.event_type_id`

func scanActivity(row pgx.Row) (*models.UserActivity, error) {
	var a models.UserActivity
	err := row.Scan(&a.ID, &a.UserID, &a.TrackID, &a.Event, &a.Time)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// AddActivity appends one event record. Unknown event names are rejected.
func (r *PostgresActivityRepository) AddActivity(ctx context.Context, req models.CreateActivityRequest) (*models.UserActivity, error) {
	var eventID int64
	err := r.pool.QueryRow(ctx,
		"SELECT id FROM events WHERE name = $1", string(req.Event)).Scan(&eventID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewAPIError(models.CodeNotFound,
				fmt.Sprintf("event '%s' was not found", req.Event), http.StatusNotFound)
		}
		return nil, fmt.Errorf("failed to resolve event: %w", err)
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO user_activities (user_id, track_id, event_type_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, track_id, $4::text, time`,
		req.UserID, req.TrackID, eventID, string(req.Event))
	a, err := scanActivity(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert activity: %w", err)
	}
	return a, nil
}

// GetActivity fetches one record by id.
func (r *PostgresActivityRepository) GetActivity(ctx context.Context, id int64) (*models.UserActivity, error) {
	row := r.pool.QueryRow(ctx, activitySelect+" WHERE a.id = $1", id)
	a, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFoundError("user activity", id)
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return a, nil
}

// activityConds renders the conjunction of the set filter branches.
func activityConds(filter models.ActivityFilter, args *[]any) []string {
	var conds []string
	add := func(cond string, v any) {
		*args = append(*args, v)
		conds = append(conds, fmt.Sprintf(cond, len(*args)))
	}
	if len(filter.IDs) > 0 {
		add("a.id = ANY($%d)", filter.IDs)
	}
	if len(filter.UserIDs) > 0 {
		add("a.user_id = ANY($%d)", filter.UserIDs)
	}
	if len(filter.TrackIDs) > 0 {
		add("a.track_id = ANY($%d)", filter.TrackIDs)
	}
	if len(filter.Events) > 0 {
		names := make([]string, len(filter.Events))
		for i, e := range filter.Events {
			names[i] = string(e)
		}
		add("a.event_type_id IN (SELECT id FROM events WHERE name = ANY($%d))", names)
	}
	if filter.StartTime != nil {
		add("a.time >= $%d", *filter.StartTime)
	}
	if filter.EndTime != nil {
		add("a.time <= $%d", *filter.EndTime)
	}
	return conds
}

// ListActivities lists records matching the filter, oldest first.
func (r *PostgresActivityRepository) ListActivities(ctx context.Context, filter models.ActivityFilter, page models.ActivityPage) ([]models.UserActivity, error) {
	var args []any
	query := activitySelect
	if conds := activityConds(filter, &args); len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY a.id"
	query += pageClause(page, &args)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []models.UserActivity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

// DeleteActivities removes every record matching the filter; matching
// nothing is reported as not-found.
func (r *PostgresActivityRepository) DeleteActivities(ctx context.Context, filter models.ActivityFilter) error {
	var args []any
	query := "DELETE FROM user_activities a USING events e WHERE e.id = a.event_type_id"
	if conds := activityConds(filter, &args); len(conds) > 0 {
		query += " AND " + strings.Join(conds, " AND ")
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete activities: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.NewAPIError(models.CodeNotFound, "no user activity matched the filter", http.StatusNotFound)
	}
	return nil
}

// MostPlayedTracks groups play events by track and orders by play count.
func (r *PostgresActivityRepository) MostPlayedTracks(ctx context.Context, page models.ActivityPage) (*models.MostPlayedTracks, error) {
	var args []any
	query := `SELECT a.track_id, count(*) AS play_count
		FROM user_activities a JOIN events e ON e.id = a.event_type_id
		WHERE e.name = 'play'
		GROUP BY a.track_id
		ORDER BY play_count DESC` + pageClause(page, &args)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate plays: %w", err)
	}
	defer rows.Close()

	out := &models.MostPlayedTracks{Tracks: []models.TrackPlayCount{}}
	for rows.Next() {
		var row models.TrackPlayCount
		if err := rows.Scan(&row.TrackID, &row.PlayCount); err != nil {
			return nil, fmt.Errorf("failed to scan play count: %w", err)
		}
		out.Tracks = append(out.Tracks, row)
	}
	return out, rows.Err()
}

// DailyActiveUsers counts distinct users per day, ascending by date.
func (r *PostgresActivityRepository) DailyActiveUsers(ctx context.Context, page models.ActivityPage) (*models.DailyActiveUsers, error) {
	var args []any
	query := `SELECT time::date AS date, count(DISTINCT user_id) AS user_count
		FROM user_activities
		GROUP BY date
		ORDER BY date` + pageClause(page, &args)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate active users: %w", err)
	}
	defer rows.Close()

	out := &models.DailyActiveUsers{Entries: []models.ActiveUsersOnDate{}}
	for rows.Next() {
		var row models.ActiveUsersOnDate
		if err := rows.Scan(&row.Date, &row.UserCount); err != nil {
			return nil, fmt.Errorf("failed to scan active users: %w", err)
		}
		out.Entries = append(out.Entries, row)
	}
	return out, rows.Err()
}

// TracksCompletionRate reports skips over plays for every track that has
// both.
func (r *PostgresActivityRepository) TracksCompletionRate(ctx context.Context, page models.ActivityPage) (*models.TracksCompletionRate, error) {
	var args []any
	query := `WITH plays AS (
			SELECT a.track_id, count(*) AS plays
			FROM user_activities a JOIN events e ON e.id = a.event_type_id
			WHERE e.name = 'play' GROUP BY a.track_id
		), skips AS (
			SELECT a.track_id, count(*) AS skips
			FROM user_activities a JOIN events e ON e.id = a.event_type_id
			WHERE e.name = 'skip' GROUP BY a.track_id
		)
		SELECT plays.track_id, skips.skips::float / plays.plays AS completion_rate
		FROM plays JOIN skips ON skips.track_id = plays.track_id
		ORDER BY plays.track_id` + pageClause(page, &args)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate completion rate: %w", err)
	}
	defer rows.Close()

	out := &models.TracksCompletionRate{Entries: []models.TrackCompletionRate{}}
	for rows.Next() {
		var row models.TrackCompletionRate
		if err := rows.Scan(&row.TrackID, &row.CompletionRate); err != nil {
			return nil, fmt.Errorf("failed to scan completion rate: %w", err)
		}
		out.Entries = append(out.Entries, row)
	}
	return out, rows.Err()
}

func pageClause(page models.ActivityPage, args *[]any) string {
	var sb strings.Builder
	if page.Offset != nil {
		*args = append(*args, *page.Offset)
		sb.WriteString(fmt.Sprintf(" OFFSET $%d", len(*args)))
	}
	if page.Limit != nil {
		*args = append(*args, *page.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(*args)))
	}
	return sb.String()
}
