package parser

import (
	"errors"
	"fmt"
)

// ErrInvalidLayout indicates a column mapping that cannot be used for parsing.
var ErrInvalidLayout = errors.New("invalid layout")

// NoColumn marks an optional field absent from the sheet.
const NoColumn = -1

// Layout maps semantic instrument fields to 0-based column positions.
// Headers are not trusted at parse time, so every field is addressed by index.
type Layout struct {
	// Sheet is the sheet to parse. Empty selects the first sheet.
	Sheet string
	// HeaderRows is the number of leading rows skipped before classification.
	HeaderRows int
	// UsePrintArea restricts parsing to the sheet's print area when one is defined.
	// Column positions are then relative to the area's first column.
	UsePrintArea bool

	Name              int
	Ticker            int
	Currency          int
	BenchmarkSpecific int
	BenchmarkGeneral  int
	Nominal           int
	Price             int

	// Group classifies group marker rows.
	Group GroupRule
}

// DefaultLayout returns the layout of the reference catalog:
// Activo | Ticker | Moneda | Benchmark Específico | Benchmark General,
// with a header line and group rows carrying only the Activo cell.
func DefaultLayout() Layout {
	return Layout{
		HeaderRows:        1,
		Name:              0,
		Ticker:            1,
		Currency:          2,
		BenchmarkSpecific: 3,
		BenchmarkGeneral:  4,
		Nominal:           NoColumn,
		Price:             NoColumn,
		Group:             GroupRule{Label: 0},
	}
}

// Validate checks the mapping once, before any row is parsed.
func (l Layout) Validate() error {
	if l.Name < 0 {
		return fmt.Errorf("%w: name column is required", ErrInvalidLayout)
	}
	if l.Currency < 0 {
		return fmt.Errorf("%w: currency column is required", ErrInvalidLayout)
	}
	if l.HeaderRows < 0 {
		return fmt.Errorf("%w: negative header rows", ErrInvalidLayout)
	}

	used := make(map[int]string)
	for _, fc := range l.fields() {
		if fc.col == NoColumn {
			continue
		}
		if fc.col < 0 {
			return fmt.Errorf("%w: %s column %d out of range", ErrInvalidLayout, fc.name, fc.col)
		}
		if other, ok := used[fc.col]; ok {
			return fmt.Errorf("%w: column %d mapped to both %s and %s", ErrInvalidLayout, fc.col, other, fc.name)
		}
		used[fc.col] = fc.name
	}
	return l.Group.validate()
}

type fieldColumn struct {
	name string
	col  int
}

func (l Layout) fields() []fieldColumn {
	return []fieldColumn{
		{"name", l.Name},
		{"ticker", l.Ticker},
		{"currency", l.Currency},
		{"benchmark_specific", l.BenchmarkSpecific},
		{"benchmark_general", l.BenchmarkGeneral},
		{"nominal", l.Nominal},
		{"price", l.Price},
	}
}

// GroupRule is the predicate deciding whether a row is a group marker.
// It looks only at the row's emptiness vector.
type GroupRule struct {
	// Label is the column holding the group name. It must be populated.
	Label int
	// Empty lists the columns that must be blank. When it lists none, every
	// column other than Label and the ones in Allow must be blank.
	Empty []int
	// Allow lists extra columns that may be populated when Empty is empty,
	// e.g. a second leading cell with a note.
	Allow []int
}

// Match reports whether a row with the given emptiness vector is a group marker.
// Columns beyond the end of the vector count as empty.
func (g GroupRule) Match(populated []bool) bool {
	at := func(col int) bool {
		return col >= 0 && col < len(populated) && populated[col]
	}
	if !at(g.Label) {
		return false
	}

	if len(g.Empty) > 0 {
		for _, col := range g.Empty {
			if at(col) {
				return false
			}
		}
		return true
	}

	for col, set := range populated {
		if !set || col == g.Label || contains(g.Allow, col) {
			continue
		}
		return false
	}
	return true
}

func (g GroupRule) validate() error {
	if g.Label < 0 {
		return fmt.Errorf("%w: group label column %d out of range", ErrInvalidLayout, g.Label)
	}
	if contains(g.Empty, g.Label) {
		return fmt.Errorf("%w: group label column %d cannot also be required empty", ErrInvalidLayout, g.Label)
	}
	return nil
}

func contains(cols []int, col int) bool {
	for _, c := range cols {
		if c == col {
			return true
		}
	}
	return false
}
