package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rebeliceyang/lazymovies/internal/format"
	"github.com/rebeliceyang/lazymovies/internal/ui/theme"
)

const (
	minColumnWidth = 6
	maxColumnWidth = 40
)

// TableView displays rows one page at a time with a cursor row
type TableView struct {
	Columns []string
	Rows    [][]string
	Width   int
	Theme   theme.Theme

	PageSize     int
	EmptyMessage string
	Loading      bool

	// Cursor is an index into Rows, -1 when there are no rows
	Cursor int
	// Marked rows get a marker in the gutter
	Marked map[int]bool
	// CellColor optionally colors a cell; a zero color leaves it unstyled
	CellColor func(col int, cell string) lipgloss.Color

	// Column widths (calculated)
	ColumnWidths []int

	// zonePrefix namespaces this table's mouse zones
	zonePrefix string
}

// NewTableView creates a new table view
func NewTableView(th theme.Theme, pageSize int) *TableView {
	if pageSize < 1 {
		pageSize = 10
	}
	return &TableView{
		Columns:      []string{},
		Rows:         [][]string{},
		Theme:        th,
		PageSize:     pageSize,
		EmptyMessage: "No Movies Found",
		Cursor:       -1,
		ColumnWidths: []int{},
		zonePrefix:   zone.NewPrefix(),
	}
}

// SetData replaces the table rows. The cursor is kept when still in range,
// otherwise it moves to the first row.
func (tv *TableView) SetData(columns []string, rows [][]string) {
	tv.Columns = columns
	tv.Rows = rows
	switch {
	case len(rows) == 0:
		tv.Cursor = -1
	case tv.Cursor < 0 || tv.Cursor >= len(rows):
		tv.Cursor = 0
	}
	tv.calculateColumnWidths()
}

// calculateColumnWidths calculates optimal column widths
func (tv *TableView) calculateColumnWidths() {
	tv.ColumnWidths = make([]int, len(tv.Columns))

	// Start with column header lengths
	for i, col := range tv.Columns {
		tv.ColumnWidths[i] = lipgloss.Width(col)
	}

	// Check row data
	for _, row := range tv.Rows {
		for i, cell := range row {
			if i < len(tv.ColumnWidths) {
				if w := lipgloss.Width(cell); w > tv.ColumnWidths[i] {
					tv.ColumnWidths[i] = w
				}
			}
		}
	}

	for i := range tv.ColumnWidths {
		tv.ColumnWidths[i] = max(minColumnWidth, min(maxColumnWidth, tv.ColumnWidths[i]))
	}
}

// Page returns the zero-based page holding the cursor
func (tv *TableView) Page() int {
	if tv.Cursor < 0 {
		return 0
	}
	return tv.Cursor / tv.PageSize
}

// PageCount returns the number of pages, at least 1
func (tv *TableView) PageCount() int {
	if len(tv.Rows) == 0 {
		return 1
	}
	return (len(tv.Rows) + tv.PageSize - 1) / tv.PageSize
}

// MoveSelection moves the cursor up or down, crossing pages as needed
func (tv *TableView) MoveSelection(delta int) {
	if len(tv.Rows) == 0 {
		return
	}
	tv.Cursor = max(0, min(len(tv.Rows)-1, tv.Cursor+delta))
}

// NextPage moves the cursor to the first row of the next page
func (tv *TableView) NextPage() {
	if tv.Page()+1 < tv.PageCount() {
		tv.Cursor = (tv.Page() + 1) * tv.PageSize
	}
}

// PrevPage moves the cursor to the first row of the previous page
func (tv *TableView) PrevPage() {
	if tv.Page() > 0 {
		tv.Cursor = (tv.Page() - 1) * tv.PageSize
	}
}

// SetCursor moves the cursor to row idx, clamped to the rows
func (tv *TableView) SetCursor(idx int) {
	if len(tv.Rows) == 0 {
		return
	}
	tv.Cursor = max(0, min(len(tv.Rows)-1, idx))
}

// RowAt returns the row of the current page under a mouse event. It only
// sees rows whose zones were registered by a zone.Scan of the last frame.
func (tv *TableView) RowAt(msg tea.MouseMsg) (int, bool) {
	start, end := tv.pageBounds()
	for i := start; i < end; i++ {
		if z := zone.Get(tv.rowZoneID(i)); z != nil && z.InBounds(msg) {
			return i, true
		}
	}
	return -1, false
}

func (tv *TableView) rowZoneID(idx int) string {
	return fmt.Sprintf("%srow-%d", tv.zonePrefix, idx)
}

// pageBounds returns the half-open row range of the current page
func (tv *TableView) pageBounds() (int, int) {
	start := tv.Page() * tv.PageSize
	end := min(start+tv.PageSize, len(tv.Rows))
	return start, end
}

// View renders the table
func (tv *TableView) View() string {
	var b strings.Builder

	b.WriteString(tv.renderHeader())
	b.WriteString("\n")
	b.WriteString(tv.renderSeparator())
	b.WriteString("\n")

	if len(tv.Rows) == 0 {
		msg := tv.EmptyMessage
		if tv.Loading {
			msg = "Loading movies..."
		}
		b.WriteString(lipgloss.NewStyle().Foreground(tv.Theme.Muted).Italic(true).Render(" " + msg))
	} else {
		start, end := tv.pageBounds()
		for i := start; i < end; i++ {
			b.WriteString(tv.renderRow(i))
			if i < end-1 {
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(tv.renderStatus())

	style := lipgloss.NewStyle()
	if tv.Width > 0 {
		style = style.Width(tv.Width)
	}
	return style.Render(b.String())
}

func (tv *TableView) renderHeader() string {
	parts := make([]string, len(tv.Columns))
	for i, col := range tv.Columns {
		parts[i] = format.Pad(col, tv.ColumnWidths[i])
	}
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tv.Theme.TableHeader).
		Background(tv.Theme.Selection)
	return headerStyle.Render("   " + strings.Join(parts, " │ ") + " ")
}

func (tv *TableView) renderSeparator() string {
	parts := make([]string, len(tv.ColumnWidths))
	for i, width := range tv.ColumnWidths {
		parts[i] = strings.Repeat("─", width)
	}
	return lipgloss.NewStyle().
		Foreground(tv.Theme.Border).
		Render("───" + strings.Join(parts, "─┼─") + "─")
}

func (tv *TableView) renderRow(idx int) string {
	row := tv.Rows[idx]
	selected := idx == tv.Cursor

	parts := make([]string, 0, len(tv.ColumnWidths))
	for i, width := range tv.ColumnWidths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		text := format.Pad(cell, width)
		if tv.CellColor != nil && !selected {
			if c := tv.CellColor(i, cell); c != "" {
				text = lipgloss.NewStyle().Foreground(c).Render(text)
			}
		}
		parts = append(parts, text)
	}

	gutter := "   "
	if tv.Marked[idx] {
		gutter = lipgloss.NewStyle().Foreground(tv.Theme.Watchlisted).Render(" ★ ")
	}
	if selected {
		gutter = " ▶ "
	}

	line := gutter + strings.Join(parts, " │ ") + " "
	if selected {
		line = lipgloss.NewStyle().
			Background(tv.Theme.TableRowSelected).
			Foreground(lipgloss.Color("15")).
			Bold(true).
			Render(line)
	}
	// Wrap with zone mark for mouse click
	return zone.Mark(tv.rowZoneID(idx), line)
}

func (tv *TableView) renderStatus() string {
	var showing string
	if len(tv.Rows) == 0 {
		showing = " Showing 0 of 0 movies"
	} else {
		start, end := tv.pageBounds()
		showing = fmt.Sprintf(" Showing %d-%d of %d movies │ Page %d/%d", start+1, end, len(tv.Rows), tv.Page()+1, tv.PageCount())
	}
	return lipgloss.NewStyle().
		Foreground(tv.Theme.Muted).
		Italic(true).
		Render(showing)
}
