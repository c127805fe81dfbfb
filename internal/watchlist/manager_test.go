package watchlist

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rebeliceyang/lazymovies/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	lucy      = models.MovieRecord{Title: "Lucy", Director: "Luc Besson", ReleaseDate: "2014"}
	toyStory  = models.MovieRecord{Title: "Toy Story", Director: "John Lasseter", ReleaseDate: "1995"}
	fixedTime = time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config", "watchlist.yaml")
	m, err := NewManager(path)
	require.NoError(t, err)
	m.now = func() time.Time { return fixedTime }
	return m, path
}

func TestManager_AddAndPersist(t *testing.T) {
	m, path := newTestManager(t)

	entry, err := m.Add(lucy)
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "Lucy", entry.Title)
	assert.Equal(t, fixedTime, entry.AddedAt)

	_, err = os.Stat(path)
	require.NoError(t, err)

	reloaded, err := NewManager(path)
	require.NoError(t, err)
	all := reloaded.All()
	require.Len(t, all, 1)
	assert.Equal(t, entry.ID, all[0].ID)
	assert.True(t, reloaded.Contains(lucy))
}

func TestManager_AddRejects(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Add(models.MovieRecord{Director: "Nobody"})
	assert.Error(t, err)

	_, err = m.Add(lucy)
	require.NoError(t, err)
	_, err = m.Add(lucy)
	assert.Error(t, err)
	assert.Len(t, m.All(), 1)
}

func TestManager_Remove(t *testing.T) {
	m, _ := newTestManager(t)

	a, err := m.Add(lucy)
	require.NoError(t, err)
	_, err = m.Add(toyStory)
	require.NoError(t, err)

	require.NoError(t, m.Remove(a.ID))
	assert.False(t, m.Contains(lucy))
	assert.True(t, m.Contains(toyStory))

	assert.Error(t, m.Remove("missing"))
}

// blockPath returns a watchlist path whose parent directory is a regular
// file, so every Save fails
func blockPath(t *testing.T) string {
	t.Helper()
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	return filepath.Join(blocker, "watchlist.yaml")
}

func TestManager_AddRollsBackOnSaveError(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Add(toyStory)
	require.NoError(t, err)

	m.path = blockPath(t)
	_, err = m.Add(lucy)
	require.Error(t, err)

	assert.False(t, m.Contains(lucy))
	assert.Len(t, m.All(), 1)
}

func TestManager_RemoveRollsBackOnSaveError(t *testing.T) {
	m, _ := newTestManager(t)
	a, err := m.Add(lucy)
	require.NoError(t, err)
	_, err = m.Add(toyStory)
	require.NoError(t, err)

	m.path = blockPath(t)
	require.Error(t, m.Remove(a.ID))

	all := m.All()
	require.Len(t, all, 2)
	assert.Equal(t, "Lucy", all[0].Title)
	assert.Equal(t, "Toy Story", all[1].Title)
}

func TestManager_Toggle(t *testing.T) {
	m, _ := newTestManager(t)

	on, err := m.Toggle(lucy)
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, m.Contains(lucy))

	on, err = m.Toggle(lucy)
	require.NoError(t, err)
	assert.False(t, on)
	assert.False(t, m.Contains(lucy))
}

func TestManager_SameTitleDifferentMovie(t *testing.T) {
	m, _ := newTestManager(t)
	remake := lucy
	remake.ReleaseDate = "2030"

	_, err := m.Add(lucy)
	require.NoError(t, err)
	_, err = m.Add(remake)
	require.NoError(t, err)
	assert.Len(t, m.All(), 2)
}

func TestManager_AllReturnsCopy(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Add(lucy)
	require.NoError(t, err)

	all := m.All()
	all[0].Title = "changed"
	assert.Equal(t, "Lucy", m.All()[0].Title)
}

func TestNewManager_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- id: [broken"), 0644))

	_, err := NewManager(path)
	assert.Error(t, err)
}
