package scores

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"examkit/internal/anonymat"
	"examkit/internal/sheet"
)

// CSV export columns.
const (
	ColumnMark       = "Mark"
	ColumnIdentifier = "etu"
)

// IsQuestionColumn reports whether a CSV header names a question, such as Q07.
func IsQuestionColumn(name string) bool {
	return strings.HasPrefix(name, "Q") && utf8.RuneCountInString(name) == 3
}

func readCSVNotes(path string, digits int) (*Notes, error) {
	table, err := sheet.ReadTable(path, sheet.FormatCSV)
	if err != nil {
		return nil, err
	}
	if err := table.Require(ColumnMark, ColumnIdentifier); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	notes := newNotes()
	notes.Rows = len(table.Rows)
	notes.Columns = len(table.Header)

	for c, name := range table.Header {
		if !IsQuestionColumn(name) {
			continue
		}
		var sum float64
		var count int
		for r := range table.Rows {
			raw := table.Value(r, c)
			if raw == "" {
				continue
			}
			value, err := sheet.ParseNumber(raw)
			if err != nil {
				continue
			}
			sum += value
			count++
		}
		if count > 0 {
			notes.Rates = append(notes.Rates, Rate{Question: name, Value: sum / float64(count)})
		}
	}
	sortRates(notes.Rates)

	markCol := table.Index(ColumnMark)
	idCol := table.Index(ColumnIdentifier)
	for r := range table.Rows {
		rawID := table.Value(r, idCol)
		rawMark := table.Value(r, markCol)
		if rawID == "" || rawMark == "" {
			notes.Skipped++
			continue
		}
		mark, err := sheet.ParseNumber(rawMark)
		if err != nil {
			notes.Skipped++
			continue
		}
		id, _ := anonymat.Canonical(rawID)
		if !anonymat.Valid(id, digits) {
			notes.reject(r+2, id, mark, digits)
			continue
		}
		notes.put(id, mark)
	}
	return notes, nil
}
