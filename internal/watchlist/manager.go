package watchlist

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rebeliceyang/lazymovies/internal/models"
	"gopkg.in/yaml.v3"
)

// Manager manages the movie watchlist
type Manager struct {
	path    string
	entries []models.WatchlistEntry
	now     func() time.Time
}

// NewManager loads the watchlist stored at path, if it exists
func NewManager(path string) (*Manager, error) {
	m := &Manager{
		path:    path,
		entries: []models.WatchlistEntry{},
		now:     time.Now,
	}

	if _, err := os.Stat(path); err == nil {
		if err := m.Load(); err != nil {
			return nil, fmt.Errorf("failed to load watchlist: %w", err)
		}
	}

	return m, nil
}

// Load loads the watchlist from its YAML file
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("failed to read watchlist file: %w", err)
	}

	var entries []models.WatchlistEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse watchlist: %w", err)
	}
	if entries == nil {
		entries = []models.WatchlistEntry{}
	}
	m.entries = entries
	return nil
}

// Save writes the watchlist to its YAML file
func (m *Manager) Save() error {
	data, err := yaml.Marshal(m.entries)
	if err != nil {
		return fmt.Errorf("failed to marshal watchlist: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write watchlist file: %w", err)
	}
	return nil
}

// Add saves movie to the watchlist. A movie with the same title, director
// and release date is rejected.
func (m *Manager) Add(movie models.MovieRecord) (*models.WatchlistEntry, error) {
	if movie.Title == "" {
		return nil, fmt.Errorf("watchlist entry title cannot be empty")
	}
	if m.indexOf(movie) >= 0 {
		return nil, fmt.Errorf("'%s' is already on the watchlist", movie.Title)
	}

	entry := models.WatchlistEntry{
		ID:          uuid.New().String(),
		Title:       movie.Title,
		Director:    movie.Director,
		ReleaseDate: movie.ReleaseDate,
		AddedAt:     m.now().UTC(),
	}
	prev := m.entries
	m.entries = append(slices.Clip(prev), entry)

	if err := m.Save(); err != nil {
		m.entries = prev
		return nil, fmt.Errorf("failed to save watchlist: %w", err)
	}
	return &entry, nil
}

// Remove deletes an entry by ID. The in-memory list is left untouched when
// the file cannot be written.
func (m *Manager) Remove(id string) error {
	for i, e := range m.entries {
		if e.ID == id {
			prev := m.entries
			m.entries = slices.Delete(slices.Clone(prev), i, i+1)
			if err := m.Save(); err != nil {
				m.entries = prev
				return fmt.Errorf("failed to save watchlist after removal: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("watchlist entry with ID '%s' was not found", id)
}

// Toggle adds movie if absent and removes it if present. It reports whether
// the movie is on the watchlist afterwards.
func (m *Manager) Toggle(movie models.MovieRecord) (bool, error) {
	if i := m.indexOf(movie); i >= 0 {
		return false, m.Remove(m.entries[i].ID)
	}
	if _, err := m.Add(movie); err != nil {
		return false, err
	}
	return true, nil
}

// Contains reports whether movie is on the watchlist
func (m *Manager) Contains(movie models.MovieRecord) bool {
	return m.indexOf(movie) >= 0
}

// All returns a copy of every entry in insertion order
func (m *Manager) All() []models.WatchlistEntry {
	out := make([]models.WatchlistEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *Manager) indexOf(movie models.MovieRecord) int {
	for i, e := range m.entries {
		saved := models.MovieRecord{Title: e.Title, Director: e.Director, ReleaseDate: e.ReleaseDate}
		if saved.SameMovie(movie) {
			return i
		}
	}
	return -1
}
