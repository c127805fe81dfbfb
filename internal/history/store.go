package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rebeliceyang/lazymovies/internal/models"
)

//go:embed schema.sql
var schemaSQL string

const timeLayout = "2006-01-02 15:04:05.000"

// Entry is one opening of the detail overlay
type Entry struct {
	ID          int64
	Title       string
	Director    string
	ReleaseDate string
	ViewedAt    time.Time
}

// Store persists detail-view history in SQLite
type Store struct {
	db *sql.DB
}

// NewStore opens (and if needed creates) the history database at path
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Add records that movie was opened at the given time
func (s *Store) Add(movie models.MovieRecord, at time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO detail_views (title, director, release_date, viewed_at)
		VALUES (?, ?, ?, ?)`,
		movie.Title,
		movie.Director,
		movie.ReleaseDate,
		at.UTC().Format(timeLayout),
	)
	return err
}

// GetRecent returns the most recent views, newest first
func (s *Store) GetRecent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, title, director, release_date, viewed_at
		FROM detail_views
		ORDER BY viewed_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var viewedAt string
		if err := rows.Scan(&e.ID, &e.Title, &e.Director, &e.ReleaseDate, &viewedAt); err != nil {
			return nil, err
		}
		e.ViewedAt, err = time.Parse(timeLayout, viewedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid viewed_at %q for entry %d: %w", viewedAt, e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune keeps only the newest maxEntries rows. A non-positive maxEntries
// keeps everything.
func (s *Store) Prune(maxEntries int) error {
	if maxEntries <= 0 {
		return nil
	}
	_, err := s.db.Exec(`
		DELETE FROM detail_views
		WHERE id NOT IN (
			SELECT id FROM detail_views ORDER BY viewed_at DESC, id DESC LIMIT ?
		)`, maxEntries)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
