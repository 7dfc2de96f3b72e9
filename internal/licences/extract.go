// Package licences builds the anonymat/licence rosters from one spreadsheet
// per licence, split by the leading digit of the anonymat number.
package licences

import (
	"fmt"
	"path/filepath"
	"strings"

	"examkit/internal/anonymat"
	"examkit/internal/sheet"
)

// ClientColumn returns the index of the first header that mentions "client"
// but not "nom" (the latter holds the student name, not the number).
func ClientColumn(header []string) (int, bool) {
	for i, name := range header {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "client") && !strings.Contains(lower, "nom") {
			return i, true
		}
	}
	return -1, false
}

// Diagnostic describes a cell that could not be used.
type Diagnostic struct {
	File   string
	Line   int
	Value  string
	Reason string
}

// FileResult holds the identifiers found in one licence file.
type FileResult struct {
	Path        string
	Licence     string
	Numbers     []int64
	Diagnostics []Diagnostic
}

// LicenceName derives the licence from the file name stem, upper-cased.
func LicenceName(path string) string {
	base := filepath.Base(path)
	return strings.ToUpper(strings.TrimSuffix(base, filepath.Ext(base)))
}

// ExtractIdentifiers reads the client column of path. Blank cells are dropped
// and repeated numbers are kept once, in first-seen order.
func ExtractIdentifiers(path string) (FileResult, error) {
	result := FileResult{Path: path, Licence: LicenceName(path)}
	table, err := sheet.ReadTable(path, sheet.Spreadsheets...)
	if err != nil {
		return result, err
	}
	col, ok := ClientColumn(table.Header)
	if !ok {
		return result, &sheet.MissingColumnsError{Missing: []string{"Client"}, Found: table.Header}
	}
	seen := map[int64]struct{}{}
	for r := range table.Rows {
		raw := table.Value(r, col)
		if raw == "" {
			continue
		}
		n, err := anonymat.Integer(raw)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				File:   filepath.Base(path),
				Line:   r + 2,
				Value:  raw,
				Reason: err.Error(),
			})
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		result.Numbers = append(result.Numbers, n)
	}
	return result, nil
}

func describe(path string, err error) error {
	return fmt.Errorf("%s: %w", filepath.Base(path), err)
}
