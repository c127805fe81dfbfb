package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/lazymovies/internal/filter"
	"github.com/rebeliceyang/lazymovies/internal/models"
	"github.com/rebeliceyang/lazymovies/internal/ui/theme"
)

// FilterChangedMsg is sent when a column filter value changes.
// A nil Value clears the column's constraint.
type FilterChangedMsg struct {
	Column models.ColumnKey
	Value  any
}

// FiltersClearedMsg is sent when every filter should be cleared
type FiltersClearedMsg struct{}

// CloseFilterBarMsg is sent when focus should return to the table
type CloseFilterBarMsg struct{}

type fieldKind int

const (
	fieldInput    fieldKind = iota // free text
	fieldDropdown                  // one of a fixed option list
	fieldMulti                     // any subset of an option list
)

type filterField struct {
	def  models.ColumnDef
	kind fieldKind

	input textinput.Model

	options []string
	cursor  int             // option under the cursor (multi) or chosen option, -1 = none (dropdown)
	chosen  map[string]bool // multi only
}

// value returns the filter value the field currently represents
func (f *filterField) value() any {
	switch f.kind {
	case fieldDropdown:
		if f.cursor < 0 || f.cursor >= len(f.options) {
			return nil
		}
		return f.options[f.cursor]
	case fieldMulti:
		var set []string
		for _, opt := range f.options {
			if f.chosen[opt] {
				set = append(set, opt)
			}
		}
		if len(set) == 0 {
			return nil
		}
		return set
	default:
		if f.input.Value() == "" {
			return nil
		}
		return f.input.Value()
	}
}

func (f *filterField) clear() {
	switch f.kind {
	case fieldDropdown:
		f.cursor = -1
	case fieldMulti:
		f.chosen = map[string]bool{}
	default:
		f.input.SetValue("")
	}
}

// FilterBar renders one filter control per column
type FilterBar struct {
	Width   int
	Theme   theme.Theme
	Focused bool

	fields []*filterField
	active int
}

// NewFilterBar creates a filter bar for the given columns
func NewFilterBar(th theme.Theme, defs []models.ColumnDef) *FilterBar {
	fb := &FilterBar{Theme: th}
	for _, def := range defs {
		f := &filterField{def: def, cursor: -1, chosen: map[string]bool{}}
		switch {
		case def.Kind == models.KindSet:
			f.kind = fieldMulti
			f.cursor = 0
		case def.Key == models.ColumnCertification:
			f.kind = fieldDropdown
			f.options = filter.CertificationOptions()
		default:
			ti := textinput.New()
			ti.Placeholder = placeholderFor(def)
			ti.CharLimit = 64
			ti.Width = 14
			ti.Prompt = ""
			f.input = ti
		}
		fb.fields = append(fb.fields, f)
	}
	return fb
}

func placeholderFor(def models.ColumnDef) string {
	switch def.Key {
	case models.ColumnTitle:
		return "Search by title"
	case models.ColumnReleaseDate:
		return "Search by year"
	case models.ColumnLength:
		return "Search by time"
	case models.ColumnRating:
		return "Select rating"
	default:
		return "Search"
	}
}

// SetOptions replaces the option list of a multi-select column. Chosen
// values that are no longer offered are dropped, and the result reports
// whether any were, so the caller can resync the column's filter value.
func (fb *FilterBar) SetOptions(column models.ColumnKey, options []string) bool {
	dropped := false
	for _, f := range fb.fields {
		if f.def.Key != column || f.kind != fieldMulti {
			continue
		}
		f.options = options
		kept := map[string]bool{}
		for _, opt := range options {
			if f.chosen[opt] {
				kept[opt] = true
			}
		}
		dropped = dropped || len(kept) != len(f.chosen)
		f.chosen = kept
		if f.cursor >= len(options) {
			f.cursor = max(0, len(options)-1)
		}
	}
	return dropped
}

// Value returns the filter value the bar currently shows for column, nil
// when the column is unconstrained or unknown
func (fb *FilterBar) Value(column models.ColumnKey) any {
	for _, f := range fb.fields {
		if f.def.Key == column {
			return f.value()
		}
	}
	return nil
}

// Focus gives keyboard focus to the active field
func (fb *FilterBar) Focus() tea.Cmd {
	fb.Focused = true
	return fb.focusActive()
}

// Blur removes keyboard focus
func (fb *FilterBar) Blur() {
	fb.Focused = false
	for _, f := range fb.fields {
		if f.kind == fieldInput {
			f.input.Blur()
		}
	}
}

// Reset clears every field without emitting messages
func (fb *FilterBar) Reset() {
	for _, f := range fb.fields {
		f.clear()
	}
}

// ActiveColumn returns the column of the focused field
func (fb *FilterBar) ActiveColumn() models.ColumnKey {
	if len(fb.fields) == 0 {
		return ""
	}
	return fb.fields[fb.active].def.Key
}

func (fb *FilterBar) focusActive() tea.Cmd {
	var cmd tea.Cmd
	for i, f := range fb.fields {
		if f.kind != fieldInput {
			continue
		}
		if i == fb.active && fb.Focused {
			cmd = f.input.Focus()
		} else {
			f.input.Blur()
		}
	}
	return cmd
}

// Update handles keyboard input while the bar is focused
func (fb *FilterBar) Update(msg tea.KeyMsg) (*FilterBar, tea.Cmd) {
	if len(fb.fields) == 0 {
		return fb, nil
	}
	f := fb.fields[fb.active]

	switch msg.String() {
	case "esc":
		return fb, func() tea.Msg { return CloseFilterBarMsg{} }
	case "tab":
		fb.active = (fb.active + 1) % len(fb.fields)
		return fb, fb.focusActive()
	case "shift+tab":
		fb.active = (fb.active - 1 + len(fb.fields)) % len(fb.fields)
		return fb, fb.focusActive()
	case "ctrl+r":
		fb.Reset()
		return fb, func() tea.Msg { return FiltersClearedMsg{} }
	case "ctrl+u":
		f.clear()
		return fb, changed(f)
	}

	switch f.kind {
	case fieldDropdown:
		switch msg.String() {
		case "right", "l", " ":
			f.cursor++
			if f.cursor >= len(f.options) {
				f.cursor = -1
			}
			return fb, changed(f)
		case "left", "h":
			f.cursor--
			if f.cursor < -1 {
				f.cursor = len(f.options) - 1
			}
			return fb, changed(f)
		}
		return fb, nil

	case fieldMulti:
		switch msg.String() {
		case "right", "l":
			if f.cursor < len(f.options)-1 {
				f.cursor++
			}
		case "left", "h":
			if f.cursor > 0 {
				f.cursor--
			}
		case " ", "enter":
			if f.cursor < len(f.options) {
				opt := f.options[f.cursor]
				f.chosen[opt] = !f.chosen[opt]
				if !f.chosen[opt] {
					delete(f.chosen, opt)
				}
				return fb, changed(f)
			}
		}
		return fb, nil

	default:
		before := f.input.Value()
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		if f.input.Value() != before {
			return fb, tea.Batch(cmd, changed(f))
		}
		return fb, cmd
	}
}

func changed(f *filterField) tea.Cmd {
	column, value := f.def.Key, f.value()
	return func() tea.Msg {
		return FilterChangedMsg{Column: column, Value: value}
	}
}

// View renders the filter bar
func (fb *FilterBar) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(fb.Theme.Muted)
	activeLabelStyle := lipgloss.NewStyle().Foreground(fb.Theme.BorderFocused).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(fb.Theme.Foreground)
	placeholderStyle := lipgloss.NewStyle().Foreground(fb.Theme.Muted).Italic(true)

	var cells []string
	for i, f := range fb.fields {
		active := fb.Focused && i == fb.active
		label := labelStyle.Render(f.def.Header + ":")
		if active {
			label = activeLabelStyle.Render(f.def.Header + ":")
		}

		var value string
		switch f.kind {
		case fieldDropdown:
			if v, ok := f.value().(string); ok {
				value = lipgloss.NewStyle().Foreground(fb.Theme.CertificationColor(v)).Render(v)
			} else {
				value = placeholderStyle.Render("Select a Status")
			}
			if active {
				value = "‹ " + value + " ›"
			}
		case fieldMulti:
			value = placeholderStyle.Render("All")
			if set, ok := f.value().([]string); ok {
				value = valueStyle.Render(summarize(set, 3))
			}
		default:
			value = f.input.View()
		}

		cells = append(cells, label+" "+value)
	}

	content := strings.Join(cells, "   ")

	if fb.Focused && fb.fields[fb.active].kind == fieldMulti {
		content += "\n" + fb.renderOptions(fb.fields[fb.active])
	}

	border := fb.Theme.Border
	if fb.Focused {
		border = fb.Theme.BorderFocused
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	if fb.Width > 2 {
		style = style.Width(fb.Width - 2)
	}
	return style.Render(content)
}

// renderOptions renders a window of the option list around the cursor
func (fb *FilterBar) renderOptions(f *filterField) string {
	if len(f.options) == 0 {
		return lipgloss.NewStyle().Foreground(fb.Theme.Muted).Italic(true).Render("  No options")
	}

	const window = 5
	start := max(0, f.cursor-window/2)
	end := min(len(f.options), start+window)
	start = max(0, end-window)

	var parts []string
	for i := start; i < end; i++ {
		opt := f.options[i]
		mark := "[ ]"
		if f.chosen[opt] {
			mark = "[x]"
		}
		text := mark + " " + opt
		if i == f.cursor {
			text = lipgloss.NewStyle().Background(fb.Theme.Selection).Bold(true).Render(text)
		}
		parts = append(parts, text)
	}

	more := ""
	if len(f.options) > window {
		more = lipgloss.NewStyle().Foreground(fb.Theme.Muted).Render(fmt.Sprintf("  (%d/%d)", f.cursor+1, len(f.options)))
	}
	return "  " + strings.Join(parts, "  ") + more
}

// summarize joins up to limit values and counts the rest
func summarize(values []string, limit int) string {
	if len(values) <= limit {
		return strings.Join(values, ", ")
	}
	return fmt.Sprintf("%s +%d", strings.Join(values[:limit], ", "), len(values)-limit)
}
