package sheet

import (
	"fmt"
	"strings"
)

// Table is a grid whose first row names the columns.
type Table struct {
	Header []string
	Rows   [][]string
}

// NewTable splits grid into a header and data rows. Header names are trimmed.
func NewTable(grid Grid) Table {
	if len(grid) == 0 {
		return Table{}
	}
	header := make([]string, len(grid[0]))
	for i, name := range grid[0] {
		header[i] = strings.TrimSpace(name)
	}
	return Table{Header: header, Rows: grid[1:]}
}

// Index returns the position of the named column or -1.
func (t Table) Index(name string) int {
	for i, column := range t.Header {
		if column == name {
			return i
		}
	}
	return -1
}

// Require checks that every named column exists.
func (t Table) Require(names ...string) error {
	var missing []string
	for _, name := range names {
		if t.Index(name) < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &MissingColumnsError{Missing: missing, Found: append([]string(nil), t.Header...)}
}

// Value returns the trimmed cell of data row r at column c.
func (t Table) Value(r, c int) string {
	if r < 0 || r >= len(t.Rows) || c < 0 || c >= len(t.Rows[r]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[r][c])
}

// MissingColumnsError reports required columns absent from a header.
type MissingColumnsError struct {
	Missing []string
	Found   []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing column(s) %s (found: %s)", quoteList(e.Missing), quoteList(e.Found))
}

func quoteList(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	quoted := make([]string, len(values))
	for i, value := range values {
		quoted[i] = "'" + value + "'"
	}
	return strings.Join(quoted, ", ")
}
