// Package sheet reads and writes the tabular files handled by examkit:
// spreadsheets (.xlsx, .xls, .ods), semicolon separated CSV and multi-sheet
// workbooks.
package sheet

import "strings"

// Grid is a raw, headerless view of a sheet. Rows may be ragged.
type Grid [][]string

// Cell returns the value at row r, column c or "" when out of range.
func (g Grid) Cell(r, c int) string {
	if r < 0 || r >= len(g) || c < 0 || c >= len(g[r]) {
		return ""
	}
	return g[r][c]
}

// Width returns the length of the widest row.
func (g Grid) Width() int {
	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Blank reports whether every cell of row r is empty after trimming.
func (g Grid) Blank(r int) bool {
	if r < 0 || r >= len(g) {
		return true
	}
	for _, cell := range g[r] {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// trimTrailing drops empty rows at the end of the grid.
func trimTrailing(g Grid) Grid {
	end := len(g)
	for end > 0 && g.Blank(end-1) {
		end--
	}
	return g[:end]
}
