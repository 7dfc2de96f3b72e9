package licences

import (
	"fmt"

	"go.uber.org/multierr"

	"examkit/internal/sheet"
)

// Roster column names, shared with the score merger.
const (
	ColumnNumber  = "Numéro Anonymat"
	ColumnLicence = "Licence"
)

const rosterSheet = "Sheet1"

// Write saves entries sorted by licence then number. Numbers are stored as
// integer cells.
func Write(path string, entries []Entry) (err error) {
	sorted := Sorted(entries)
	rows := make([][]any, 0, len(sorted))
	for _, entry := range sorted {
		rows = append(rows, []any{entry.Number, entry.Licence})
	}
	wb := sheet.NewWorkbook()
	defer func() {
		if err != nil {
			err = multierr.Append(err, wb.Close())
		}
	}()
	if _, err := wb.AddSheet(rosterSheet, []string{ColumnNumber, ColumnLicence}, rows); err != nil {
		return fmt.Errorf("build roster: %w", err)
	}
	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("write roster: %w", err)
	}
	return nil
}
