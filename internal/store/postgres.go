package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rebeliceyang/lazymovies/internal/models"
)

// PostgresSource reads the movie list from a database table with columns
// title, release_date, length, director, certification, rating, "cast",
// genre and plot. cast and genre are text arrays.
type PostgresSource struct {
	DSN   string
	Table string
}

// NewPostgresSource creates a Postgres source. An empty table defaults to "movies".
func NewPostgresSource(dsn, table string) *PostgresSource {
	if table == "" {
		table = "movies"
	}
	return &PostgresSource{DSN: dsn, Table: table}
}

// Query returns the SELECT statement used by Fetch
func (s *PostgresSource) Query() string {
	return fmt.Sprintf(`SELECT
		COALESCE(title, ''),
		COALESCE(release_date::text, ''),
		COALESCE(length::text, ''),
		COALESCE(director, ''),
		COALESCE(certification, ''),
		COALESCE(rating, 0)::float8,
		COALESCE("cast", '{}')::text[],
		COALESCE(genre, '{}')::text[],
		COALESCE(plot, '')
	FROM %s`, pgx.Identifier{s.Table}.Sanitize())
}

// Fetch opens a short-lived pool, reads every row and closes the pool
func (s *PostgresSource) Fetch(ctx context.Context) ([]models.MovieRecord, error) {
	poolConfig, err := pgxpool.ParseConfig(s.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}
	poolConfig.MaxConns = 1
	poolConfig.MaxConnIdleTime = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	rows, err := pool.Query(ctx, s.Query())
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	records := []models.MovieRecord{}
	for rows.Next() {
		var r models.MovieRecord
		if err := rows.Scan(
			&r.Title,
			&r.ReleaseDate,
			&r.Length,
			&r.Director,
			&r.Certification,
			&r.Rating,
			&r.Cast,
			&r.Genre,
			&r.Plot,
		); err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read movies: %w", err)
	}

	return records, nil
}

func (s *PostgresSource) String() string {
	return redact(s.DSN) + "#" + s.Table
}
