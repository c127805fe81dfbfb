package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme and styling
type Theme struct {
	Name string

	// Background colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color

	// UI elements
	Border        lipgloss.Color
	BorderFocused lipgloss.Color
	Selection     lipgloss.Color
	Cursor        lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// Table colors
	TableHeader      lipgloss.Color
	TableRowEven     lipgloss.Color
	TableRowOdd      lipgloss.Color
	TableRowSelected lipgloss.Color

	// Certification badges
	CertGeneral         lipgloss.Color
	Cert14Accompaniment lipgloss.Color
	CertCAPG            lipgloss.Color

	// Detail overlay
	DetailLabel lipgloss.Color
	Rating      lipgloss.Color
	Watchlisted lipgloss.Color
}

// CertificationColor returns the badge color for a certification value
func (t Theme) CertificationColor(cert string) lipgloss.Color {
	switch cert {
	case "General":
		return t.CertGeneral
	case "14 Accompaniment":
		return t.Cert14Accompaniment
	case "CA-PG":
		return t.CertCAPG
	default:
		return t.Foreground
	}
}

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMochaTheme()
	default:
		return DefaultTheme()
	}
}
