package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/lazymovies/internal/format"
	"github.com/rebeliceyang/lazymovies/internal/models"
	"github.com/rebeliceyang/lazymovies/internal/selection"
	"github.com/rebeliceyang/lazymovies/internal/ui/theme"
)

// DetailView renders the full attributes of one movie
type DetailView struct {
	Width       int
	Theme       theme.Theme
	Watchlisted bool
}

// NewDetailView creates a detail view
func NewDetailView(th theme.Theme) *DetailView {
	return &DetailView{Width: 60, Theme: th}
}

// View renders movie as a bordered card
func (dv *DetailView) View(movie models.MovieRecord) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(dv.Theme.Foreground).
		Background(dv.Theme.BorderFocused).
		Padding(0, 1).
		Bold(true)
	labelStyle := lipgloss.NewStyle().
		Foreground(dv.Theme.DetailLabel).
		Bold(true).
		Width(15)

	inner := dv.Width - 4
	valueStyle := lipgloss.NewStyle().Width(max(10, inner-15))

	title := movie.Title
	if dv.Watchlisted {
		title += " ★"
	}

	rows := []struct {
		label string
		value string
		style lipgloss.Style
	}{
		{"Year", movie.ReleaseDate, valueStyle},
		{"Running Time", movie.Length, valueStyle},
		{"Director", movie.Director, valueStyle},
		{"Certification", movie.Certification, valueStyle.Foreground(dv.Theme.CertificationColor(movie.Certification))},
		{"Rating", format.Rating(movie.Rating), valueStyle.Foreground(dv.Theme.Rating)},
		{"Cast", format.List(movie.Cast), valueStyle},
		{"Genre", format.List(movie.Genre), valueStyle},
	}

	var sections []string
	sections = append(sections, titleStyle.Render(title), "")
	for _, r := range rows {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(r.label), r.style.Render(r.value)))
	}

	if movie.Plot != "" {
		sections = append(sections, "", labelStyle.Render("Plot"), lipgloss.NewStyle().Width(inner).Render(movie.Plot))
	}

	sections = append(sections, "", lipgloss.NewStyle().Foreground(dv.Theme.Muted).Italic(true).Render("Esc: close │ w: watchlist │ y: copy"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dv.Theme.BorderFocused).
		Padding(0, 1).
		Width(dv.Width).
		Render(strings.Join(sections, "\n"))
}

// PlaceOverlay positions content inside a width x height area according to
// position
func PlaceOverlay(width, height int, position selection.Position, content string) string {
	h, v := lipgloss.Center, lipgloss.Center
	switch position {
	case selection.PositionTop:
		v = lipgloss.Top
	case selection.PositionBottom:
		v = lipgloss.Bottom
	case selection.PositionLeft:
		h = lipgloss.Left
	case selection.PositionRight:
		h = lipgloss.Right
	case selection.PositionTopLeft:
		h, v = lipgloss.Left, lipgloss.Top
	case selection.PositionTopRight:
		h, v = lipgloss.Right, lipgloss.Top
	case selection.PositionBottomLeft:
		h, v = lipgloss.Left, lipgloss.Bottom
	case selection.PositionBottomRight:
		h, v = lipgloss.Right, lipgloss.Bottom
	}
	return lipgloss.Place(width, height, h, v, content)
}
