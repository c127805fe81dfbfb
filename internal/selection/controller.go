// Package selection tracks the single selected movie and the visibility of
// its detail overlay.
package selection

import (
	"github.com/rebeliceyang/lazymovies/internal/models"
)

// State is the phase of the selection state machine
type State int

const (
	Idle       State = iota // nothing selected, detail hidden
	Selected                // record held, detail hidden
	DetailOpen              // record held, detail visible
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selected:
		return "selected"
	case DetailOpen:
		return "detail-open"
	default:
		return "unknown"
	}
}

// Position is where the detail overlay is placed on screen
type Position int

const (
	PositionCenter Position = iota
	PositionTop
	PositionBottom
	PositionLeft
	PositionRight
	PositionTopLeft
	PositionTopRight
	PositionBottomLeft
	PositionBottomRight
)

var positionNames = map[Position]string{
	PositionCenter:      "center",
	PositionTop:         "top",
	PositionBottom:      "bottom",
	PositionLeft:        "left",
	PositionRight:       "right",
	PositionTopLeft:     "top-left",
	PositionTopRight:    "top-right",
	PositionBottomLeft:  "bottom-left",
	PositionBottomRight: "bottom-right",
}

func (p Position) String() string {
	if name, ok := positionNames[p]; ok {
		return name
	}
	return "center"
}

// ParsePosition maps a name such as "top-right" to a Position
func ParsePosition(name string) (Position, bool) {
	for p, n := range positionNames {
		if n == name {
			return p, true
		}
	}
	return PositionCenter, false
}

// Snapshot is a read-only view of the controller state
type Snapshot struct {
	State         State
	Record        models.MovieRecord
	HasRecord     bool
	DetailVisible bool
	Position      Position
}

// Controller is the selection state machine.
// Invariant: the detail overlay is only visible while a record is held.
type Controller struct {
	state    State
	record   models.MovieRecord
	position Position
}

// NewController returns a controller in the Idle state
func NewController() *Controller {
	return &Controller{state: Idle}
}

// State returns the current state
func (c *Controller) State() State {
	return c.state
}

// Snapshot returns the current selection
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		State:         c.state,
		Record:        c.record,
		HasRecord:     c.state != Idle,
		DetailVisible: c.state == DetailOpen,
		Position:      c.position,
	}
}

// Selected returns the held record, if any
func (c *Controller) Selected() (models.MovieRecord, bool) {
	if c.state == Idle {
		return models.MovieRecord{}, false
	}
	return c.record, true
}

// Select holds record, replacing any prior selection, and hides the detail
func (c *Controller) Select(record models.MovieRecord) {
	c.record = record
	c.state = Selected
}

// OpenDetail shows the detail overlay at position. It is a no-op returning
// false when nothing is selected.
func (c *Controller) OpenDetail(position Position) bool {
	if c.state == Idle {
		return false
	}
	c.position = position
	c.state = DetailOpen
	return true
}

// CloseDetail hides the detail overlay and clears the selection together
func (c *Controller) CloseDetail() {
	c.record = models.MovieRecord{}
	c.state = Idle
}

// Activate selects record and opens its detail in one step, as a row
// activation does. The controller never passes through Idle.
func (c *Controller) Activate(record models.MovieRecord, position Position) {
	c.Select(record)
	c.OpenDetail(position)
}
