package extract

import (
	"strconv"
	"strings"
)

// CellKind discriminates the cell value union.
type CellKind int

const (
	// CellEmpty marks a cell with no stored value.
	CellEmpty CellKind = iota
	// CellText marks a cell whose value is a string.
	CellText
	// CellNumber marks a cell whose value is numeric.
	CellNumber
)

// Cell is a single spreadsheet cell value. The zero value is an empty
// cell. Rules never inspect Kind directly; they work on Norm output so
// text and numeric cells are interchangeable.
type Cell struct {
	Kind  CellKind
	Text  string
	Value float64
}

// TextCell returns a text cell holding s.
func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// NumberCell returns a numeric cell holding v.
func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Value: v}
}

// Norm returns the uniform trimmed string form of the cell. Numeric
// values render with the minimal number of digits, so integral floats
// carry no decimal point.
func (c Cell) Norm() string {
	switch c.Kind {
	case CellText:
		return strings.TrimSpace(c.Text)
	case CellNumber:
		return strconv.FormatFloat(c.Value, 'f', -1, 64)
	default:
		return ""
	}
}

// IsEmpty reports whether the cell normalizes to nothing. Whitespace-only
// text counts as empty.
func (c Cell) IsEmpty() bool {
	return c.Norm() == ""
}

// Grid is the cell matrix of one sheet, row-major. Rows may be ragged;
// a column index past the end of a row reads as an empty cell.
type Grid [][]Cell

// Columns returns the width of the widest row.
func (g Grid) Columns() int {
	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// At returns the cell at (row, col), tolerating ragged rows.
func (g Grid) At(row, col int) Cell {
	if row < 0 || row >= len(g) {
		return Cell{}
	}
	if col < 0 || col >= len(g[row]) {
		return Cell{}
	}
	return g[row][col]
}

// GridFromStrings builds a grid of text cells. Empty strings become
// empty cells. Intended for callers that already hold string data, and
// for table-driven tests.
func GridFromStrings(rows [][]string) Grid {
	grid := make(Grid, len(rows))
	for r, row := range rows {
		cells := make([]Cell, len(row))
		for c, s := range row {
			if s != "" {
				cells[c] = TextCell(s)
			}
		}
		grid[r] = cells
	}
	return grid
}
