// Package format renders movie fields for display
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// MaxRating is the top of the rating scale
const MaxRating = 5.0

// Rating renders a 0-5 rating as a percentage with exactly two decimals,
// e.g. 4.5 -> "90.00%".
func Rating(value float64) string {
	pct := value / MaxRating * 100
	pct = math.Round(pct*100) / 100
	return strconv.FormatFloat(pct, 'f', 2, 64) + "%"
}

// List joins list fields such as cast and genre
func List(items []string) string {
	return strings.Join(items, ", ")
}

// Truncate shortens s to width display cells, ending with "..." when cut
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// Pad truncates or right-pads s to exactly width display cells
func Pad(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}
