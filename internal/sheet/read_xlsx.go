package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
)

// readXLSX returns the raw cell values of the first sheet.
func readXLSX(path string) (grid Grid, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Grid{}, nil
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheets[0], path, err)
	}
	return Grid(rows), nil
}
