package models

import "fmt"

// ColumnKey identifies a filterable column of the movie table
type ColumnKey string

const (
	ColumnTitle         ColumnKey = "title"
	ColumnReleaseDate   ColumnKey = "releaseDate"
	ColumnLength        ColumnKey = "length"
	ColumnDirector      ColumnKey = "director"
	ColumnCertification ColumnKey = "certification"
	ColumnRating        ColumnKey = "rating"
)

// MatchMode is the comparison applied between a filter value and a record field
type MatchMode string

const (
	MatchStartsWith MatchMode = "STARTS_WITH"
	MatchEquals     MatchMode = "EQUALS"
	MatchContains   MatchMode = "CONTAINS"
	MatchIn         MatchMode = "IN"
)

// ValueKind is the Go type a column's filter value is coerced to
type ValueKind int

const (
	KindText   ValueKind = iota // string
	KindNumber                  // float64
	KindSet                     // []string
)

func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindSet:
		return "set"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// ColumnDef declares a filterable column. Mode and Kind are fixed for the
// lifetime of a FilterSpec.
type ColumnDef struct {
	Key    ColumnKey
	Header string
	Mode   MatchMode
	Kind   ValueKind
}

// ColumnFilter is the constraint currently held for one column.
// A nil Value means the column contributes no constraint.
type ColumnFilter struct {
	ColumnDef
	Value any
}

// Active reports whether the filter constrains anything
func (f ColumnFilter) Active() bool {
	return f.Value != nil
}

// FilterSpec is an immutable set of per-column filters. Updates return a new
// FilterSpec; the receiver is never modified.
type FilterSpec struct {
	filters []ColumnFilter
	version uint64
}

// NewFilterSpec creates a FilterSpec with every value unset
func NewFilterSpec(defs []ColumnDef) FilterSpec {
	filters := make([]ColumnFilter, len(defs))
	for i, def := range defs {
		filters[i] = ColumnFilter{ColumnDef: def}
	}
	return FilterSpec{filters: filters}
}

// Get returns the filter for a column
func (s FilterSpec) Get(column ColumnKey) (ColumnFilter, bool) {
	for _, f := range s.filters {
		if f.Key == column {
			return f, true
		}
	}
	return ColumnFilter{}, false
}

// Filters returns a copy of all column filters in declaration order
func (s FilterSpec) Filters() []ColumnFilter {
	out := make([]ColumnFilter, len(s.filters))
	copy(out, s.filters)
	return out
}

// Columns returns the column definitions in declaration order
func (s FilterSpec) Columns() []ColumnDef {
	defs := make([]ColumnDef, len(s.filters))
	for i, f := range s.filters {
		defs[i] = f.ColumnDef
	}
	return defs
}

// Active returns the filters whose value is set
func (s FilterSpec) Active() []ColumnFilter {
	var out []ColumnFilter
	for _, f := range s.filters {
		if f.Active() {
			out = append(out, f)
		}
	}
	return out
}

// Version increases with every derived FilterSpec
func (s FilterSpec) Version() uint64 {
	return s.version
}

// WithValue returns a copy of s with the value of column replaced. The
// column's MatchMode is untouched. The value is stored as given; coercion is
// the caller's concern.
func (s FilterSpec) WithValue(column ColumnKey, value any) (FilterSpec, bool) {
	idx := -1
	for i, f := range s.filters {
		if f.Key == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, false
	}

	next := FilterSpec{filters: s.Filters(), version: s.version + 1}
	next.filters[idx].Value = value
	return next, true
}

// Cleared returns a copy of s with every value unset
func (s FilterSpec) Cleared() FilterSpec {
	next := FilterSpec{filters: s.Filters(), version: s.version + 1}
	for i := range next.filters {
		next.filters[i].Value = nil
	}
	return next
}
