package components

import (
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rebeliceyang/lazymovies/internal/filter"
	"github.com/rebeliceyang/lazymovies/internal/models"
	"github.com/rebeliceyang/lazymovies/internal/ui/theme"
)

const (
	titleField    = 0
	directorField = 3
	certField     = 4
)

func newTestFilterBar() *FilterBar {
	fb := NewFilterBar(theme.DefaultTheme(), filter.ColumnDefs(models.MatchEquals))
	fb.SetOptions(models.ColumnDirector, []string{"Luc Besson", "Lana Wachowski", "John Lasseter"})
	fb.Focus()
	return fb
}

// collect runs cmd and returns every message it produces, unpacking batches
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// lastChange returns the last FilterChangedMsg produced by cmd
func lastChange(t *testing.T, cmd tea.Cmd) FilterChangedMsg {
	t.Helper()
	var found *FilterChangedMsg
	for _, msg := range collect(cmd) {
		if m, ok := msg.(FilterChangedMsg); ok {
			found = &m
		}
	}
	if found == nil {
		t.Fatal("Expected a FilterChangedMsg")
	}
	return *found
}

func press(fb *FilterBar, key tea.KeyType) tea.Cmd {
	_, cmd := fb.Update(tea.KeyMsg{Type: key})
	return cmd
}

func typeText(fb *FilterBar, s string) tea.Cmd {
	_, cmd := fb.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return cmd
}

func focusField(fb *FilterBar, idx int) {
	for fb.active != idx {
		press(fb, tea.KeyTab)
	}
}

func TestFilterBar_TextInput(t *testing.T) {
	fb := newTestFilterBar()

	if fb.ActiveColumn() != models.ColumnTitle {
		t.Fatalf("Expected title to be focused first, got %s", fb.ActiveColumn())
	}

	msg := lastChange(t, typeText(fb, "The"))
	if msg.Column != models.ColumnTitle || msg.Value != "The" {
		t.Errorf("Unexpected change %+v", msg)
	}

	press(fb, tea.KeyBackspace)
	press(fb, tea.KeyBackspace)
	msg = lastChange(t, press(fb, tea.KeyBackspace))
	if msg.Value != nil {
		t.Errorf("Emptying the input should clear the filter, got %#v", msg.Value)
	}
}

func TestFilterBar_ClearField(t *testing.T) {
	fb := newTestFilterBar()
	typeText(fb, "Lucy")

	msg := lastChange(t, press(fb, tea.KeyCtrlU))
	if msg.Column != models.ColumnTitle || msg.Value != nil {
		t.Errorf("Unexpected change %+v", msg)
	}
}

func TestFilterBar_Tabbing(t *testing.T) {
	fb := newTestFilterBar()

	press(fb, tea.KeyShiftTab)
	if fb.ActiveColumn() != models.ColumnRating {
		t.Errorf("Expected shift+tab to wrap to rating, got %s", fb.ActiveColumn())
	}
	press(fb, tea.KeyTab)
	if fb.ActiveColumn() != models.ColumnTitle {
		t.Errorf("Expected tab to wrap to title, got %s", fb.ActiveColumn())
	}
}

func TestFilterBar_CertificationDropdown(t *testing.T) {
	fb := newTestFilterBar()
	focusField(fb, certField)

	want := []any{"General", "14 Accompaniment", "CA-PG", nil}
	for i, w := range want {
		msg := lastChange(t, press(fb, tea.KeyRight))
		if msg.Column != models.ColumnCertification || msg.Value != w {
			t.Errorf("Step %d: expected %v, got %+v", i, w, msg)
		}
	}

	msg := lastChange(t, press(fb, tea.KeyLeft))
	if msg.Value != "CA-PG" {
		t.Errorf("Expected left from none to wrap to CA-PG, got %v", msg.Value)
	}
}

func TestFilterBar_DirectorMultiSelect(t *testing.T) {
	fb := newTestFilterBar()
	focusField(fb, directorField)

	msg := lastChange(t, press(fb, tea.KeySpace))
	if set, ok := msg.Value.([]string); !ok || !slices.Equal(set, []string{"Luc Besson"}) {
		t.Fatalf("Expected [Luc Besson], got %#v", msg.Value)
	}

	press(fb, tea.KeyRight)
	press(fb, tea.KeyRight)
	msg = lastChange(t, press(fb, tea.KeyEnter))
	if set, _ := msg.Value.([]string); !slices.Equal(set, []string{"Luc Besson", "John Lasseter"}) {
		t.Errorf("Expected option order to be kept, got %#v", msg.Value)
	}

	press(fb, tea.KeySpace)
	press(fb, tea.KeyLeft)
	press(fb, tea.KeyLeft)
	msg = lastChange(t, press(fb, tea.KeySpace))
	if msg.Value != nil {
		t.Errorf("Deselecting everything should clear the filter, got %#v", msg.Value)
	}
}

func TestFilterBar_SetOptionsDropsStaleChoices(t *testing.T) {
	fb := newTestFilterBar()
	focusField(fb, directorField)
	press(fb, tea.KeySpace)

	if !fb.SetOptions(models.ColumnDirector, []string{"Lana Wachowski"}) {
		t.Error("Expected SetOptions to report the dropped choice")
	}
	if v := fb.Value(models.ColumnDirector); v != nil {
		t.Errorf("Expected stale choice to be dropped, got %#v", v)
	}
}

func TestFilterBar_SetOptionsKeepsOfferedChoices(t *testing.T) {
	fb := newTestFilterBar()
	focusField(fb, directorField)
	press(fb, tea.KeySpace)

	if fb.SetOptions(models.ColumnDirector, []string{"Luc Besson", "Tommy Wiseau"}) {
		t.Error("Nothing was dropped")
	}
	if v, _ := fb.Value(models.ColumnDirector).([]string); !slices.Equal(v, []string{"Luc Besson"}) {
		t.Errorf("Expected [Luc Besson], got %#v", v)
	}
}

func TestFilterBar_ResetAll(t *testing.T) {
	fb := newTestFilterBar()
	typeText(fb, "The")
	focusField(fb, certField)
	press(fb, tea.KeyRight)

	msgs := collect(press(fb, tea.KeyCtrlR))
	if len(msgs) != 1 {
		t.Fatalf("Expected one message, got %d", len(msgs))
	}
	if _, ok := msgs[0].(FiltersClearedMsg); !ok {
		t.Errorf("Expected FiltersClearedMsg, got %T", msgs[0])
	}
	for i, f := range fb.fields {
		if f.value() != nil {
			t.Errorf("Field %d not cleared", i)
		}
	}
}

func TestFilterBar_Escape(t *testing.T) {
	fb := newTestFilterBar()

	msgs := collect(press(fb, tea.KeyEsc))
	if len(msgs) != 1 {
		t.Fatalf("Expected one message, got %d", len(msgs))
	}
	if _, ok := msgs[0].(CloseFilterBarMsg); !ok {
		t.Errorf("Expected CloseFilterBarMsg, got %T", msgs[0])
	}
}

func TestFilterBar_View(t *testing.T) {
	fb := newTestFilterBar()
	fb.Width = 400

	view := fb.View()
	for _, label := range []string{"Title:", "Director:", "Certification:", "Select a Status"} {
		if !containsText(view, label) {
			t.Errorf("Expected %q in view", label)
		}
	}
}
