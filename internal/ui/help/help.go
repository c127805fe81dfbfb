package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/lazymovies/internal/ui/theme"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key         string
	Description string
}

// GetGlobalKeys returns global key bindings
func GetGlobalKeys() []KeyBinding {
	return []KeyBinding{
		{"?", "Toggle help"},
		{"q, Ctrl+C", "Quit application"},
		{"Tab", "Switch between table and filters"},
		{"r", "Reload movies"},
	}
}

// GetTableKeys returns table key bindings
func GetTableKeys() []KeyBinding {
	return []KeyBinding{
		{"↑/k", "Move up"},
		{"↓/j", "Move down"},
		{"←/h, PgUp", "Previous page"},
		{"→/l, PgDn", "Next page"},
		{"Enter", "Show movie details"},
		{"Esc", "Close details"},
		{"y", "Copy details to clipboard"},
		{"w", "Toggle watchlist"},
		{"x", "Export visible rows to CSV"},
		{"Shift+X", "Export visible rows to JSON"},
	}
}

// GetFilterKeys returns filter bar key bindings
func GetFilterKeys() []KeyBinding {
	return []KeyBinding{
		{"/", "Focus filters"},
		{"Tab, Shift+Tab", "Next / previous filter"},
		{"Space, ←/→", "Pick director / certification"},
		{"Ctrl+U", "Clear current filter"},
		{"Ctrl+R", "Clear all filters"},
		{"Esc", "Back to table"},
	}
}

// Render creates the help view
func Render(width, height int, th theme.Theme) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.BorderFocused).
		Padding(1, 0)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Info).
		Padding(0, 0, 0, 2)

	keyStyle := lipgloss.NewStyle().
		Foreground(th.Warning).
		Width(20)

	descStyle := lipgloss.NewStyle().
		Foreground(th.Foreground)

	var b strings.Builder

	// Title
	b.WriteString(titleStyle.Render("lazymovies - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title string
		keys  []KeyBinding
	}{
		{"Global", GetGlobalKeys()},
		{"Table", GetTableKeys()},
		{"Filters", GetFilterKeys()},
	}

	for _, section := range sections {
		b.WriteString(sectionStyle.Render(section.title))
		b.WriteString("\n")
		for _, kb := range section.keys {
			b.WriteString("  ")
			b.WriteString(keyStyle.Render(kb.Key))
			b.WriteString(descStyle.Render(kb.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Press '?' or Esc to close help"))

	// Wrap in a box
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.BorderFocused).
		Padding(1, 2).
		Width(width - 4).
		Height(height - 4)

	return boxStyle.Render(b.String())
}
