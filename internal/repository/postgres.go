package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// NewPool opens the shared connection pool used by every SQL-backed
// repository. The pool holds at most 50 connections (20 steady plus 30
// overflow) and keeps at least 2 open. Opening a new connection gives up
// after 60 seconds; acquiring a connection from the pool has no timeout of
// its own and waits as long as the caller's context allows.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	cfg.MaxConns = 50
	cfg.MinConns = 2
	cfg.ConnConfig.ConnectTimeout = 60 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// Migrate applies the embedded schema. Every statement is idempotent, so
// running it on an already-migrated database is a no-op.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a unique-constraint violation,
// optionally on a specific constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// queryBuilder accumulates WHERE clauses and positional arguments for the
// filtered search queries.
type queryBuilder struct {
	conds []string
	order []string
	args  []any
}

func (b *queryBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *queryBuilder) where(cond string, v any) {
	b.conds = append(b.conds, fmt.Sprintf(cond, b.arg(v)))
}

// similarTo adds a trigram-similarity filter on column and orders the result
// by descending similarity.
func (b *queryBuilder) similarTo(column, query string, threshold float64) {
	q := b.arg(query)
	t := b.arg(threshold)
	b.conds = append(b.conds, fmt.Sprintf("similarity(%s, %s) >= %s", column, q, t))
	b.order = append(b.order, fmt.Sprintf("similarity(%s, %s) DESC", column, q))
}

// build assembles the final statement with pagination appended.
func (b *queryBuilder) build(base string, skip, limit int) string {
	var sb strings.Builder
	sb.WriteString(base)
	if len(b.conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.conds, " AND "))
	}
	if len(b.order) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.order, ", "))
	}
	sb.WriteString(fmt.Sprintf(" OFFSET %s LIMIT %s", b.arg(skip), b.arg(limit)))
	return sb.String()
}
