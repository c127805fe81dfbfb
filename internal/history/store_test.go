package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rebeliceyang/lazymovies/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "sub", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_AddAndGetRecent(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.Add(models.MovieRecord{Title: "Lucy", Director: "Luc Besson", ReleaseDate: "2014"}, base))
	require.NoError(t, s.Add(models.MovieRecord{Title: "Toy Story", Director: "John Lasseter", ReleaseDate: "1995"}, base.Add(time.Minute)))
	require.NoError(t, s.Add(models.MovieRecord{Title: "The Matrix", Director: "Lana Wachowski", ReleaseDate: "1999"}, base.Add(2*time.Minute)))

	entries, err := s.GetRecent(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "The Matrix", entries[0].Title)
	assert.Equal(t, "Toy Story", entries[1].Title)
	assert.Equal(t, "Lucy", entries[2].Title)
	assert.Equal(t, "Luc Besson", entries[2].Director)
	assert.Equal(t, "2014", entries[2].ReleaseDate)
	assert.True(t, entries[2].ViewedAt.Equal(base))

	entries, err = s.GetRecent(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestStore_GetRecentEmpty(t *testing.T) {
	s := newTestStore(t)

	entries, err := s.GetRecent(5)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_Prune(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		movie := models.MovieRecord{Title: string(rune('A' + i))}
		require.NoError(t, s.Add(movie, base.Add(time.Duration(i)*time.Second)))
	}

	require.NoError(t, s.Prune(0))
	entries, err := s.GetRecent(10)
	require.NoError(t, err)
	assert.Len(t, entries, 5)

	require.NoError(t, s.Prune(2))
	entries, err = s.GetRecent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "E", entries[0].Title)
	assert.Equal(t, "D", entries[1].Title)
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Add(models.MovieRecord{Title: "Lucy"}, time.Now()))
	require.NoError(t, s.Close())

	s, err = NewStore(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	entries, err := s.GetRecent(10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_GetRecentRejectsBadTimestamp(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Add(models.MovieRecord{Title: "Lucy"}, time.Now()))

	_, err := s.db.Exec(`INSERT INTO detail_views (title, viewed_at) VALUES (?, ?)`, "Toy Story", "yesterday")
	require.NoError(t, err)

	_, err = s.GetRecent(10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yesterday")
}
