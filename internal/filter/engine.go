package filter

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rebeliceyang/lazymovies/internal/logger"
	"github.com/rebeliceyang/lazymovies/internal/models"
)

// ErrUnknownColumn is returned when a filter value targets a column that is
// not part of the FilterSpec
var ErrUnknownColumn = errors.New("unknown filter column")

// Options configures an Engine
type Options struct {
	// IgnoreCase makes text comparisons case-insensitive. Matching is
	// case-sensitive by default.
	IgnoreCase bool
	// RatingMode is MatchEquals (numeric) or MatchContains (text)
	RatingMode models.MatchMode
}

// Engine holds the current FilterSpec and evaluates it against records.
// It is owned by a single UI session and is not safe for concurrent use.
type Engine struct {
	spec       models.FilterSpec
	ignoreCase bool
	cache      evalCache
}

// evalCache memoizes the last Evaluate call
type evalCache struct {
	valid   bool
	first   *models.MovieRecord
	n       int
	version uint64
	result  []models.MovieRecord
}

// NewEngine creates an engine with every column unfiltered
func NewEngine(opts Options) *Engine {
	return &Engine{
		spec:       models.NewFilterSpec(ColumnDefs(opts.RatingMode)),
		ignoreCase: opts.IgnoreCase,
	}
}

// Spec returns the current FilterSpec
func (e *Engine) Spec() models.FilterSpec {
	return e.spec
}

// SetFilterValue replaces the value of one column, coercing it to the
// column's value kind. Values that cannot be coerced are kept as given.
// A nil value removes the column's constraint.
func (e *Engine) SetFilterValue(column models.ColumnKey, value any) error {
	current, ok := e.spec.Get(column)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}

	coerced := Coerce(current.Kind, value)
	next, _ := e.spec.WithValue(column, coerced)
	e.spec = next

	logger.Debugf("[filter] %s %s %v (%T)", column, current.Mode, coerced, coerced)
	return nil
}

// Reset clears every column's value
func (e *Engine) Reset() {
	e.spec = e.spec.Cleared()
}

// Evaluate returns the records matching every active column filter, in
// their original order. The result must be treated as read-only.
//
// The last result is reused while records has the same first element
// address and length and the FilterSpec version is unchanged. Callers must
// not modify records in place after passing them in; hand over a new slice
// instead.
func (e *Engine) Evaluate(records []models.MovieRecord) []models.MovieRecord {
	var first *models.MovieRecord
	if len(records) > 0 {
		first = &records[0]
	}

	c := &e.cache
	if c.valid && c.first == first && c.n == len(records) && c.version == e.spec.Version() {
		return c.result
	}

	result := Apply(records, e.spec, e.ignoreCase)
	*c = evalCache{
		valid:   true,
		first:   first,
		n:       len(records),
		version: e.spec.Version(),
		result:  result,
	}

	logger.Debugf("[filter] evaluate: input=%d output=%d active=%d", len(records), len(result), len(e.spec.Active()))
	return result
}

// Apply filters records against spec. Columns with a nil value contribute no
// constraint; the remaining predicates are combined with AND.
func Apply(records []models.MovieRecord, spec models.FilterSpec, ignoreCase bool) []models.MovieRecord {
	active := spec.Active()
	if len(active) == 0 {
		return slices.Clip(records)
	}

	filtered := make([]models.MovieRecord, 0, len(records))
	for _, r := range records {
		if matchesAll(r, active, ignoreCase) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func matchesAll(record models.MovieRecord, active []models.ColumnFilter, ignoreCase bool) bool {
	for _, f := range active {
		if !match(f, record.Field(f.Key), ignoreCase) {
			return false
		}
	}
	return true
}

// match evaluates one column filter against a field value
func match(f models.ColumnFilter, field any, ignoreCase bool) bool {
	switch f.Mode {
	case models.MatchStartsWith:
		return strings.HasPrefix(fold(toText(field), ignoreCase), fold(toText(f.Value), ignoreCase))

	case models.MatchEquals:
		if fv, ok := field.(float64); ok {
			if v, ok := f.Value.(float64); ok {
				return fv == v
			}
		}
		return fold(toText(field), ignoreCase) == fold(toText(f.Value), ignoreCase)

	case models.MatchContains:
		return strings.Contains(fold(toText(field), ignoreCase), fold(toText(f.Value), ignoreCase))

	case models.MatchIn:
		set, ok := f.Value.([]string)
		if !ok {
			set = []string{toText(f.Value)}
		}
		text := fold(toText(field), ignoreCase)
		for _, member := range set {
			if fold(member, ignoreCase) == text {
				return true
			}
		}
		return false

	default:
		logger.Warnf("[filter] unsupported match mode %q on column %s", f.Mode, f.Key)
		return false
	}
}

// Coerce converts a raw input value to the Go type of kind. Inputs that
// cannot be converted are returned unchanged.
func Coerce(kind models.ValueKind, value any) any {
	if value == nil {
		return nil
	}

	switch kind {
	case models.KindText:
		return toText(value)

	case models.KindNumber:
		switch v := value.(type) {
		case float64:
			return v
		case float32:
			return float64(v)
		case int:
			return float64(v)
		case int64:
			return float64(v)
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f
			}
		}
		return value

	case models.KindSet:
		switch v := value.(type) {
		case []string:
			return slices.Clone(v)
		case []any:
			set := make([]string, len(v))
			for i, item := range v {
				set[i] = toText(item)
			}
			return set
		default:
			return []string{toText(v)}
		}
	}
	return value
}

// toText stringifies a field or filter value the way the table displays it
func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func fold(s string, ignoreCase bool) string {
	if ignoreCase {
		return strings.ToLower(s)
	}
	return s
}
