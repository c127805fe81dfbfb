package models

import "time"

// AppState holds the application state
type AppState struct {
	Width  int
	Height int

	FocusedPanel PanelType
	ViewMode     ViewMode
}

// PanelType identifies which panel is focused
type PanelType int

const (
	TablePanel PanelType = iota
	FilterPanel
)

// ViewMode identifies the current view
type ViewMode int

const (
	NormalMode ViewMode = iota
	HelpMode
)

// NewAppState creates a new AppState with defaults
func NewAppState() AppState {
	return AppState{
		Width:        80,
		Height:       24,
		FocusedPanel: TablePanel,
		ViewMode:     NormalMode,
	}
}

// WatchlistEntry is a movie saved to the watchlist
type WatchlistEntry struct {
	ID          string    `yaml:"id" json:"id"`
	Title       string    `yaml:"title" json:"title"`
	Director    string    `yaml:"director" json:"director"`
	ReleaseDate string    `yaml:"release_date" json:"releaseDate"`
	AddedAt     time.Time `yaml:"added_at" json:"addedAt"`
}
