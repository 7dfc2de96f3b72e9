// Package scores merges exam score exports with licence rosters and builds
// the results workbook.
package scores

import (
	"fmt"
	"sort"

	"examkit/internal/anonymat"
	"examkit/internal/sheet"
)

// Record is one student mark.
type Record struct {
	ID   string
	Mark float64
}

// Rate is the success rate of one question, as a ratio.
type Rate struct {
	Question string
	Value    float64
}

// Diagnostic reports a row rejected because of a malformed identifier.
type Diagnostic struct {
	Line   int
	ID     string
	Mark   float64
	Reason string
}

// Notes is the parsed content of a score export. Records keep the order in
// which identifiers were first seen; a repeated identifier keeps its last mark.
type Notes struct {
	Records     []Record
	Rates       []Rate
	Diagnostics []Diagnostic
	// Skipped counts rows with a missing or unparseable identifier or mark.
	Skipped int
	// Rows and Columns describe the source grid.
	Rows    int
	Columns int
	// Padded is set when a legacy export was narrower than its layout.
	Padded bool

	index map[string]int
}

func newNotes() *Notes {
	return &Notes{index: map[string]int{}}
}

func (n *Notes) put(id string, mark float64) {
	if n.index == nil {
		n.index = map[string]int{}
	}
	if i, ok := n.index[id]; ok {
		n.Records[i].Mark = mark
		return
	}
	n.index[id] = len(n.Records)
	n.Records = append(n.Records, Record{ID: id, Mark: mark})
}

func (n *Notes) reject(line int, id string, mark float64, digits int) {
	n.Diagnostics = append(n.Diagnostics, Diagnostic{
		Line:   line,
		ID:     id,
		Mark:   mark,
		Reason: fmt.Sprintf("identifier must have exactly %d digits (found: %s)", digits, id),
	})
}

// Mark returns the mark recorded for id.
func (n *Notes) Mark(id string) (float64, bool) {
	i, ok := n.index[id]
	if !ok {
		return 0, false
	}
	return n.Records[i].Mark, true
}

// Len returns the number of distinct identifiers.
func (n *Notes) Len() int {
	return len(n.Records)
}

func sortRates(rates []Rate) {
	sort.SliceStable(rates, func(i, j int) bool {
		return rates[i].Question < rates[j].Question
	})
}

// ReadNotes reads a score export. CSV files use the named-column format and
// spreadsheets use the legacy fixed layout.
func ReadNotes(path string, layout LegacyLayout, digits int) (*Notes, error) {
	if digits <= 0 {
		digits = anonymat.DefaultDigits
	}
	format, err := sheet.CheckFormat(path, sheet.FormatCSV, sheet.FormatXLSX, sheet.FormatXLS)
	if err != nil {
		return nil, err
	}
	if format == sheet.FormatCSV {
		return readCSVNotes(path, digits)
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return readLegacyNotes(path, layout, digits)
}
