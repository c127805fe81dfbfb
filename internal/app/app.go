package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rebeliceyang/lazymovies/internal/config"
	"github.com/rebeliceyang/lazymovies/internal/export"
	"github.com/rebeliceyang/lazymovies/internal/filter"
	"github.com/rebeliceyang/lazymovies/internal/format"
	"github.com/rebeliceyang/lazymovies/internal/history"
	"github.com/rebeliceyang/lazymovies/internal/logger"
	"github.com/rebeliceyang/lazymovies/internal/models"
	"github.com/rebeliceyang/lazymovies/internal/selection"
	"github.com/rebeliceyang/lazymovies/internal/store"
	"github.com/rebeliceyang/lazymovies/internal/ui/components"
	"github.com/rebeliceyang/lazymovies/internal/ui/help"
	"github.com/rebeliceyang/lazymovies/internal/ui/theme"
	"github.com/rebeliceyang/lazymovies/internal/watchlist"
)

// certificationColumn is the index of the certification cell in a table row
const certificationColumn = 4

// writeClipboard is swapped out in tests
var writeClipboard = clipboard.WriteAll

// App is the main application model
type App struct {
	state  models.AppState
	config *config.Config
	theme  theme.Theme

	store     *store.Store
	engine    *filter.Engine
	selection *selection.Controller
	position  selection.Position
	visible   []models.MovieRecord

	watchlist *watchlist.Manager
	history   *history.Store

	panel      components.Panel
	tableView  *components.TableView
	filterBar  *components.FilterBar
	detailView *components.DetailView

	statusMsg   string
	statusIsErr bool

	now func() time.Time
}

// Deps are the collaborators the App drives. Watchlist and History are
// optional.
type Deps struct {
	Store     *store.Store
	Watchlist *watchlist.Manager
	History   *history.Store
}

// RecordsLoadedMsg is sent when a fetch of the movie list finishes
type RecordsLoadedMsg struct {
	Err error
}

// New creates a new App instance with config
func New(cfg *config.Config, deps Deps) *App {
	if cfg == nil {
		cfg = config.GetDefaults()
	}
	th := theme.GetTheme(cfg.UI.Theme)

	ratingMode, ok := filter.ParseMatchMode(cfg.Filter.RatingMode)
	if !ok {
		ratingMode = models.MatchEquals
	}
	position, _ := selection.ParsePosition(cfg.UI.DetailPosition)

	engine := filter.NewEngine(filter.Options{
		IgnoreCase: cfg.Filter.IgnoreCase,
		RatingMode: ratingMode,
	})

	a := &App{
		state:      models.NewAppState(),
		config:     cfg,
		theme:      th,
		store:      deps.Store,
		engine:     engine,
		selection:  selection.NewController(),
		position:   position,
		watchlist:  deps.Watchlist,
		history:    deps.History,
		tableView:  components.NewTableView(th, cfg.UI.PageSize),
		filterBar:  components.NewFilterBar(th, engine.Spec().Columns()),
		detailView: components.NewDetailView(th),
		panel:      components.Panel{Title: "Movies", BorderColor: th.BorderFocused},
		now:        time.Now,
	}
	a.tableView.CellColor = func(col int, cell string) lipgloss.Color {
		if col == certificationColumn {
			return th.CertificationColor(cell)
		}
		return ""
	}

	a.refresh()
	return a
}

// columnHeaders returns the column titles in filter order
func columnHeaders(spec models.FilterSpec) []string {
	defs := spec.Columns()
	headers := make([]string, len(defs))
	for i, def := range defs {
		headers[i] = def.Header
	}
	return headers
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.loadRecords()
}

// loadRecords starts the one-shot fetch in the background
func (a *App) loadRecords() tea.Cmd {
	if a.store == nil {
		return nil
	}
	a.tableView.Loading = true
	s := a.store
	return func() tea.Msg {
		return RecordsLoadedMsg{Err: s.Load(context.Background())}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RecordsLoadedMsg:
		a.tableView.Loading = false
		if msg.Err != nil {
			// The store stays as it was; the table shows its empty message
			logger.Err(msg.Err, "movie list unavailable")
		}
		if a.filterBar.SetOptions(models.ColumnDirector, filter.DirectorOptions(a.records())) {
			// Choices the new list no longer offers must stop filtering too
			if err := a.engine.SetFilterValue(models.ColumnDirector, a.filterBar.Value(models.ColumnDirector)); err != nil {
				logger.Err(err, "failed to resync director filter")
			}
		}
		a.refresh()
		return a, nil

	case components.FilterChangedMsg:
		if err := a.engine.SetFilterValue(msg.Column, msg.Value); err != nil {
			a.setStatus(err.Error(), true)
			return a, nil
		}
		a.refresh()
		return a, nil

	case components.FiltersClearedMsg:
		a.engine.Reset()
		a.refresh()
		return a, nil

	case components.CloseFilterBarMsg:
		a.focusTable()
		return a, nil

	case tea.WindowSizeMsg:
		a.state.Width = msg.Width
		a.state.Height = msg.Height
		a.updateDimensions()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)
	}
	return a, nil
}

// handleMouse activates a clicked row and scrolls the cursor with the wheel.
// Clicks are ignored while help or a detail overlay covers the table.
func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.state.ViewMode == models.HelpMode || a.selection.State() == selection.DetailOpen {
		return a, nil
	}
	if msg.Action != tea.MouseActionPress {
		return a, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.tableView.MoveSelection(-1)
	case tea.MouseButtonWheelDown:
		a.tableView.MoveSelection(1)
	case tea.MouseButtonLeft:
		idx, ok := a.tableView.RowAt(msg)
		if !ok {
			return a, nil
		}
		if a.state.FocusedPanel == models.FilterPanel {
			a.focusTable()
		}
		a.tableView.SetCursor(idx)
		a.activateRow()
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if a.state.ViewMode == models.HelpMode {
		switch key {
		case "?", "esc", "q":
			a.state.ViewMode = models.NormalMode
		}
		return a, nil
	}

	if a.selection.State() == selection.DetailOpen {
		switch key {
		case "esc", "enter", "q":
			a.selection.CloseDetail()
		case "w":
			if movie, ok := a.selection.Selected(); ok {
				a.toggleWatchlist(movie)
			}
		case "y":
			if movie, ok := a.selection.Selected(); ok {
				a.copyMovie(movie)
			}
		}
		return a, nil
	}

	if a.state.FocusedPanel == models.FilterPanel {
		var cmd tea.Cmd
		a.filterBar, cmd = a.filterBar.Update(msg)
		return a, cmd
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "?":
		a.state.ViewMode = models.HelpMode
	case "/", "f", "tab":
		return a, a.focusFilters()
	case "up", "k":
		a.tableView.MoveSelection(-1)
	case "down", "j":
		a.tableView.MoveSelection(1)
	case "left", "h", "pgup":
		a.tableView.PrevPage()
	case "right", "l", "pgdown":
		a.tableView.NextPage()
	case "enter":
		a.activateRow()
	case "w":
		if movie, ok := a.cursorRecord(); ok {
			a.toggleWatchlist(movie)
		}
	case "x":
		a.exportVisible(export.FormatCSV)
	case "X":
		a.exportVisible(export.FormatJSON)
	case "ctrl+r":
		a.filterBar.Reset()
		a.engine.Reset()
		a.refresh()
	case "r":
		return a, a.loadRecords()
	}
	return a, nil
}

// records returns the store contents, or nothing when no store is wired
func (a *App) records() []models.MovieRecord {
	if a.store == nil {
		return nil
	}
	return a.store.AllRecords()
}

// refresh re-evaluates the filters and rebuilds the table rows
func (a *App) refresh() {
	a.visible = a.engine.Evaluate(a.records())

	rows := make([][]string, len(a.visible))
	marked := map[int]bool{}
	for i, m := range a.visible {
		rows[i] = []string{
			m.Title,
			m.ReleaseDate,
			m.Length,
			m.Director,
			m.Certification,
			format.Rating(m.Rating),
		}
		if a.watchlist != nil && a.watchlist.Contains(m) {
			marked[i] = true
		}
	}

	a.tableView.Marked = marked
	a.tableView.SetData(columnHeaders(a.engine.Spec()), rows)
}

// cursorRecord returns the record under the table cursor
func (a *App) cursorRecord() (models.MovieRecord, bool) {
	idx := a.tableView.Cursor
	if idx < 0 || idx >= len(a.visible) {
		return models.MovieRecord{}, false
	}
	return a.visible[idx], true
}

// activateRow selects the cursor row and opens its detail in one gesture
func (a *App) activateRow() {
	movie, ok := a.cursorRecord()
	if !ok {
		return
	}
	a.selection.Activate(movie, a.position)

	if a.history != nil {
		if err := a.history.Add(movie, a.now()); err != nil {
			logger.Err(err, "failed to record detail view")
		}
	}
}

func (a *App) toggleWatchlist(movie models.MovieRecord) {
	if a.watchlist == nil {
		a.setStatus("Watchlist is not available", true)
		return
	}
	on, err := a.watchlist.Toggle(movie)
	if err != nil {
		logger.Err(err, "failed to update watchlist")
		a.setStatus(err.Error(), true)
		return
	}
	if on {
		a.setStatus(fmt.Sprintf("Added '%s' to watchlist", movie.Title), false)
	} else {
		a.setStatus(fmt.Sprintf("Removed '%s' from watchlist", movie.Title), false)
	}
	a.refresh()
}

// copyMovie puts a plain-text summary of movie on the system clipboard
func (a *App) copyMovie(movie models.MovieRecord) {
	lines := []string{
		movie.Title,
		"Year: " + movie.ReleaseDate,
		"Running Time: " + movie.Length,
		"Director: " + movie.Director,
		"Certification: " + movie.Certification,
		"Rating: " + format.Rating(movie.Rating),
	}
	if len(movie.Cast) > 0 {
		lines = append(lines, "Cast: "+format.List(movie.Cast))
	}
	if len(movie.Genre) > 0 {
		lines = append(lines, "Genre: "+format.List(movie.Genre))
	}
	if movie.Plot != "" {
		lines = append(lines, "", movie.Plot)
	}

	if err := writeClipboard(strings.Join(lines, "\n")); err != nil {
		logger.Err(err, "clipboard unavailable")
		a.setStatus("Clipboard unavailable: "+err.Error(), true)
		return
	}
	a.setStatus(fmt.Sprintf("Copied '%s' to clipboard", movie.Title), false)
}

func (a *App) exportVisible(f export.Format) {
	path, err := export.ExportToDir(a.visible, f, a.config.Export.Dir, a.now())
	if err != nil {
		logger.Err(err, "export failed")
		a.setStatus(err.Error(), true)
		return
	}
	logger.Infof("[export] wrote %d movies to %s", len(a.visible), path)
	a.setStatus(fmt.Sprintf("Exported %d movies to %s", len(a.visible), path), false)
}

func (a *App) focusFilters() tea.Cmd {
	a.state.FocusedPanel = models.FilterPanel
	a.panel.BorderColor = a.theme.Border
	return a.filterBar.Focus()
}

func (a *App) focusTable() {
	a.state.FocusedPanel = models.TablePanel
	a.panel.BorderColor = a.theme.BorderFocused
	a.filterBar.Blur()
}

func (a *App) setStatus(msg string, isErr bool) {
	a.statusMsg = msg
	a.statusIsErr = isErr
}

// updateDimensions sizes the panels to the window
func (a *App) updateDimensions() {
	if a.state.Width <= 0 || a.state.Height <= 0 {
		return
	}
	a.filterBar.Width = a.state.Width
	a.panel.Width = max(20, a.state.Width-2)
	// top bar, bottom bar, filter bar (3 lines), panel border (2 lines)
	a.panel.Height = max(5, a.state.Height-7)
	a.tableView.Width = a.panel.Width
	a.detailView.Width = min(80, max(40, a.state.Width-10))
}

// View implements tea.Model. The frame is scanned for mouse zones before it
// is returned.
func (a *App) View() string {
	return zone.Scan(a.render())
}

func (a *App) render() string {
	if a.state.ViewMode == models.HelpMode {
		return help.Render(a.state.Width, a.state.Height, a.theme)
	}

	snap := a.selection.Snapshot()
	if snap.DetailVisible {
		a.detailView.Watchlisted = a.watchlist != nil && a.watchlist.Contains(snap.Record)
		return components.PlaceOverlay(a.state.Width, a.state.Height, snap.Position, a.detailView.View(snap.Record))
	}

	return a.renderNormalView()
}

// renderNormalView renders the filter bar, the table and the status bars
func (a *App) renderNormalView() string {
	active := len(a.engine.Spec().Active())
	topBarRight := "no filters"
	if active > 0 {
		topBarRight = fmt.Sprintf("%d filter(s) active", active)
	}
	topBar := lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.BorderFocused).
		Foreground(lipgloss.Color("230")).
		Padding(0, 2).
		Render(a.formatStatusBar(a.title(), topBarRight))

	bottomLeft := "[enter] Details | [/] Filter | [?] Help | [q] Quit"
	bottomStyle := lipgloss.NewStyle().
		Width(a.state.Width).
		Background(a.theme.Selection).
		Foreground(a.theme.Foreground).
		Padding(0, 2)
	if a.statusMsg != "" {
		bottomLeft = a.statusMsg
		if a.statusIsErr {
			bottomStyle = bottomStyle.Foreground(a.theme.Error)
		}
	}
	bottomRight := ""
	if a.store != nil {
		bottomRight = a.store.Status().String()
	}
	bottomBar := bottomStyle.Render(a.formatStatusBar(bottomLeft, bottomRight))

	a.panel.Content = a.tableView.View()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		topBar,
		a.filterBar.View(),
		a.panel.View(),
		bottomBar,
	)
}

// title names the app and the source the movies come from
func (a *App) title() string {
	if a.store == nil {
		return "lazymovies"
	}
	return "lazymovies │ " + a.store.Source().String()
}

// formatStatusBar formats a status bar with left and right aligned content
func (a *App) formatStatusBar(left, right string) string {
	// Account for padding (2 chars on each side = 4 total)
	availableWidth := max(0, a.state.Width-4)

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)

	if leftLen+rightLen > availableWidth {
		if availableWidth > rightLen {
			return format.Truncate(left, availableWidth-rightLen) + right
		}
		return format.Truncate(left, availableWidth)
	}

	spacing := availableWidth - leftLen - rightLen
	return left + lipgloss.NewStyle().Width(spacing).Render("") + right
}
