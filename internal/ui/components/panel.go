package components

import (
	"github.com/charmbracelet/lipgloss"
)

// Panel is a bordered, optionally titled box
type Panel struct {
	Title       string
	Content     string
	Width       int
	Height      int
	BorderColor lipgloss.Color
}

// View renders the panel
func (p *Panel) View() string {
	if p.Width <= 0 || p.Height <= 0 {
		return ""
	}

	style := lipgloss.NewStyle().
		Width(p.Width).
		Height(p.Height).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.BorderColor)

	content := p.Content
	if p.Title != "" {
		titleStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(p.BorderColor)
		content = titleStyle.Render(p.Title) + "\n" + content
	}

	return style.Render(content)
}
