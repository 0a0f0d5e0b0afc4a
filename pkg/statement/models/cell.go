// Package models defines data structures for catalog parsing, valuation and reporting.
package models

import "strconv"

// CellKind tells which field of a Cell holds its value.
type CellKind int

const (
	// CellEmpty marks an absent value. It is never represented by "".
	CellEmpty CellKind = iota
	// CellText is a non-numeric value.
	CellText
	// CellNumber is a value that parsed as a number.
	CellNumber
)

// Cell represents a single spreadsheet cell value.
type Cell struct {
	// Kind is the value kind.
	Kind CellKind `json:"kind"`
	// Text is the raw cell text (set for text and number cells).
	Text string `json:"text,omitempty"`
	// Number is the numeric value when Kind is CellNumber.
	Number float64 `json:"number,omitempty"`
}

// Empty returns an empty cell.
func Empty() Cell { return Cell{} }

// Text returns a text cell.
func Text(s string) Cell { return Cell{Kind: CellText, Text: s} }

// Number returns a numeric cell.
func Number(v float64) Cell {
	return Cell{Kind: CellNumber, Number: v, Text: strconv.FormatFloat(v, 'f', -1, 64)}
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }

// String returns the cell text, or "" for empty cells.
func (c Cell) String() string { return c.Text }

// RawRow represents one spreadsheet line. It carries no semantics until
// classified by the parser.
type RawRow struct {
	// Index is the row index in the sheet (1-based).
	Index int `json:"r"`
	// Cells holds the row values in column order.
	Cells []Cell `json:"c"`
}

// At returns the cell at the 0-based column, or an empty cell when the row is shorter.
func (r RawRow) At(col int) Cell {
	if col < 0 || col >= len(r.Cells) {
		return Empty()
	}
	return r.Cells[col]
}

// Populated returns the emptiness vector of the row: true where a cell holds a value.
func (r RawRow) Populated() []bool {
	mask := make([]bool, len(r.Cells))
	for i, c := range r.Cells {
		mask[i] = !c.IsEmpty()
	}
	return mask
}

// IsBlank reports whether every cell of the row is empty.
func (r RawRow) IsBlank() bool {
	for _, c := range r.Cells {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
