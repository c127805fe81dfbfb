package components

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rebeliceyang/lazymovies/internal/ui/theme"
)

func init() {
	// Initialize bubblezone for tests that call View() methods
	zone.NewGlobal()
}

// lineOf returns the index of the first line of view containing text
func lineOf(view, text string) int {
	for i, line := range strings.Split(view, "\n") {
		if strings.Contains(line, text) {
			return i
		}
	}
	return -1
}

// waitForRow polls RowAt until the scanned zones are registered
func waitForRow(tv *TableView, msg tea.MouseMsg) (int, bool) {
	deadline := time.Now().Add(2 * time.Second)
	for {
		if idx, ok := tv.RowAt(msg); ok || time.Now().After(deadline) {
			return idx, ok
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func makeRows(n int) [][]string {
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{fmt.Sprintf("Movie %02d", i+1), "1999"}
	}
	return rows
}

func TestNewTableView(t *testing.T) {
	tv := NewTableView(theme.DefaultTheme(), 0)

	if tv.PageSize != 10 {
		t.Errorf("Expected default page size 10, got %d", tv.PageSize)
	}
	if tv.Cursor != -1 {
		t.Errorf("Expected cursor -1 on an empty table, got %d", tv.Cursor)
	}
}

func TestTableView_EmptyState(t *testing.T) {
	tv := NewTableView(theme.DefaultTheme(), 10)
	tv.SetData([]string{"Title", "Year"}, nil)

	view := tv.View()
	if !strings.Contains(view, "No Movies Found") {
		t.Error("Expected empty message")
	}
	if !strings.Contains(view, "Showing 0 of 0 movies") {
		t.Error("Expected zero count in status line")
	}

	tv.Loading = true
	if !strings.Contains(tv.View(), "Loading movies...") {
		t.Error("Expected loading message while loading")
	}
}

func TestTableView_Paging(t *testing.T) {
	tv := NewTableView(theme.DefaultTheme(), 10)
	tv.SetData([]string{"Title", "Year"}, makeRows(25))

	if tv.Cursor != 0 {
		t.Fatalf("Expected cursor at first row, got %d", tv.Cursor)
	}
	if tv.PageCount() != 3 {
		t.Errorf("Expected 3 pages, got %d", tv.PageCount())
	}

	view := tv.View()
	if !strings.Contains(view, "Showing 1-10 of 25 movies") {
		t.Errorf("Unexpected status line:\n%s", view)
	}
	if !strings.Contains(view, "Movie 10") || strings.Contains(view, "Movie 11") {
		t.Error("First page should show rows 1-10 only")
	}

	tv.NextPage()
	tv.NextPage()
	if tv.Page() != 2 || tv.Cursor != 20 {
		t.Errorf("Expected page 2 cursor 20, got page %d cursor %d", tv.Page(), tv.Cursor)
	}
	if !strings.Contains(tv.View(), "Showing 21-25 of 25 movies │ Page 3/3") {
		t.Error("Expected last page status")
	}

	// No page after the last one
	tv.NextPage()
	if tv.Page() != 2 {
		t.Errorf("Expected to stay on last page, got %d", tv.Page())
	}

	tv.PrevPage()
	if tv.Cursor != 10 {
		t.Errorf("Expected cursor 10 after PrevPage, got %d", tv.Cursor)
	}
}

func TestTableView_MoveSelectionCrossesPages(t *testing.T) {
	tv := NewTableView(theme.DefaultTheme(), 10)
	tv.SetData([]string{"Title"}, makeRows(12))

	tv.MoveSelection(9)
	if tv.Page() != 0 {
		t.Errorf("Expected page 0, got %d", tv.Page())
	}
	tv.MoveSelection(1)
	if tv.Page() != 1 {
		t.Errorf("Expected page 1 after moving past the page end, got %d", tv.Page())
	}

	tv.MoveSelection(100)
	if tv.Cursor != 11 {
		t.Errorf("Expected cursor clamped to 11, got %d", tv.Cursor)
	}
	tv.MoveSelection(-100)
	if tv.Cursor != 0 {
		t.Errorf("Expected cursor clamped to 0, got %d", tv.Cursor)
	}
}

func TestTableView_SetDataClampsCursor(t *testing.T) {
	tv := NewTableView(theme.DefaultTheme(), 10)
	tv.SetData([]string{"Title"}, makeRows(20))
	tv.MoveSelection(15)

	tv.SetData([]string{"Title"}, makeRows(18))
	if tv.Cursor != 15 {
		t.Errorf("Expected cursor kept at 15, got %d", tv.Cursor)
	}

	tv.SetData([]string{"Title"}, makeRows(3))
	if tv.Cursor != 0 {
		t.Errorf("Expected cursor reset to 0, got %d", tv.Cursor)
	}

	tv.SetData([]string{"Title"}, nil)
	if tv.Cursor != -1 {
		t.Errorf("Expected cursor -1, got %d", tv.Cursor)
	}
	tv.MoveSelection(1)
	if tv.Cursor != -1 {
		t.Errorf("Moving on an empty table should do nothing, got %d", tv.Cursor)
	}
}

func TestTableView_ColumnWidths(t *testing.T) {
	tv := NewTableView(theme.DefaultTheme(), 10)
	tv.SetData([]string{"T", "Plot"}, [][]string{{"A", strings.Repeat("x", 100)}})

	if tv.ColumnWidths[0] != minColumnWidth {
		t.Errorf("Expected min width %d, got %d", minColumnWidth, tv.ColumnWidths[0])
	}
	if tv.ColumnWidths[1] != maxColumnWidth {
		t.Errorf("Expected max width %d, got %d", maxColumnWidth, tv.ColumnWidths[1])
	}
}

func TestTableView_SetCursor(t *testing.T) {
	tv := NewTableView(theme.DefaultTheme(), 10)
	tv.SetData([]string{"Title"}, makeRows(5))

	tv.SetCursor(3)
	if tv.Cursor != 3 {
		t.Errorf("Expected cursor 3, got %d", tv.Cursor)
	}
	tv.SetCursor(99)
	if tv.Cursor != 4 {
		t.Errorf("Expected cursor clamped to 4, got %d", tv.Cursor)
	}
}

func TestTableView_RowAt(t *testing.T) {
	tv := NewTableView(theme.DefaultTheme(), 10)
	tv.SetData([]string{"Title", "Year"}, makeRows(12))

	view := zone.Scan(tv.View())
	y := lineOf(view, "Movie 03")
	if y < 0 {
		t.Fatalf("Row not rendered:\n%s", view)
	}

	click := tea.MouseMsg{X: 5, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	idx, ok := waitForRow(tv, click)
	if !ok {
		t.Fatal("Expected the click to hit a row")
	}
	if idx != 2 {
		t.Errorf("Expected row 2, got %d", idx)
	}

	// The header is not a row
	if _, ok := tv.RowAt(tea.MouseMsg{X: 5, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}); ok {
		t.Error("Did not expect the header to hit a row")
	}
}
