package sheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
)

const defaultSheet = "Sheet1"

// Workbook accumulates sheets before being saved as a single .xlsx file.
type Workbook struct {
	file   *excelize.File
	used   map[string]struct{}
	sheets []string
	closed bool
}

// NewWorkbook returns an empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{
		file: excelize.NewFile(),
		used: map[string]struct{}{},
	}
}

// Sheets returns the final sheet names in creation order.
func (w *Workbook) Sheets() []string {
	return append([]string(nil), w.sheets...)
}

// AddSheet writes header on the first row followed by rows and returns the
// sheet name actually used.
func (w *Workbook) AddSheet(name string, header []string, rows [][]any) (string, error) {
	grid := make([][]any, 0, len(rows)+1)
	head := make([]any, len(header))
	for i, column := range header {
		head[i] = column
	}
	grid = append(grid, head)
	grid = append(grid, rows...)
	return w.AddGrid(name, grid)
}

// AddGrid writes rows starting at A1 without a header. Nil cells stay empty.
func (w *Workbook) AddGrid(name string, rows [][]any) (string, error) {
	sheetName, err := w.newSheet(name)
	if err != nil {
		return "", err
	}
	for r, row := range rows {
		for c, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return "", err
			}
			if err := w.file.SetCellValue(sheetName, cell, value); err != nil {
				return "", fmt.Errorf("write %s!%s: %w", sheetName, cell, err)
			}
		}
	}
	return sheetName, nil
}

// SetProperties stamps document metadata on the workbook.
func (w *Workbook) SetProperties(title, identifier string) error {
	return w.file.SetDocProps(&excelize.DocProperties{
		Title:      title,
		Identifier: identifier,
		Creator:    "examkit",
	})
}

// Close releases the workbook. It is safe to call after SaveAs or twice, so
// builders can defer it on their error paths.
func (w *Workbook) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}

// SaveAs writes the workbook to path and releases it.
func (w *Workbook) SaveAs(path string) (err error) {
	if w.closed {
		return fmt.Errorf("save %s: workbook already closed", path)
	}
	defer func() {
		err = multierr.Append(err, w.Close())
	}()
	if len(w.sheets) == 0 {
		if _, err := w.newSheet(defaultSheet); err != nil {
			return err
		}
	}
	w.file.SetActiveSheet(0)
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func (w *Workbook) newSheet(name string) (string, error) {
	sheetName := SheetName(name, w.used)
	if len(w.sheets) == 0 {
		// The first sheet reuses the default one created by excelize.
		if sheetName != defaultSheet {
			if err := w.file.SetSheetName(defaultSheet, sheetName); err != nil {
				return "", fmt.Errorf("create sheet %q: %w", sheetName, err)
			}
		}
	} else if _, err := w.file.NewSheet(sheetName); err != nil {
		return "", fmt.Errorf("create sheet %q: %w", sheetName, err)
	}
	w.used[strings.ToLower(sheetName)] = struct{}{}
	w.sheets = append(w.sheets, sheetName)
	return sheetName, nil
}

// WriteXLSX saves rows as a single-sheet workbook.
func WriteXLSX(path, sheetName string, rows [][]any) error {
	wb := NewWorkbook()
	if _, err := wb.AddGrid(sheetName, rows); err != nil {
		return multierr.Append(err, wb.Close())
	}
	return wb.SaveAs(path)
}
