package theme

import "github.com/charmbracelet/lipgloss"

// DefaultTheme returns the default dark theme
func DefaultTheme() Theme {
	return Theme{
		Name: "default",

		// Background colors
		Background: lipgloss.Color("235"),
		Foreground: lipgloss.Color("252"),
		Muted:      lipgloss.Color("245"),

		// UI elements
		Border:        lipgloss.Color("240"),
		BorderFocused: lipgloss.Color("62"),
		Selection:     lipgloss.Color("237"),
		Cursor:        lipgloss.Color("248"),

		// Status colors
		Success: lipgloss.Color("42"),
		Warning: lipgloss.Color("220"),
		Error:   lipgloss.Color("196"),
		Info:    lipgloss.Color("75"),

		// Table colors
		TableHeader:      lipgloss.Color("105"),
		TableRowEven:     lipgloss.Color("235"),
		TableRowOdd:      lipgloss.Color("236"),
		TableRowSelected: lipgloss.Color("25"),

		// Certification badges
		CertGeneral:         lipgloss.Color("42"),
		Cert14Accompaniment: lipgloss.Color("214"),
		CertCAPG:            lipgloss.Color("75"),

		// Detail overlay
		DetailLabel: lipgloss.Color("105"),
		Rating:      lipgloss.Color("220"),
		Watchlisted: lipgloss.Color("205"),
	}
}
