package sheet

import (
	"encoding/csv"
	"fmt"
	"os"

	"go.uber.org/multierr"
)

// WriteCSV writes header and rows as UTF-8 delimited text without a BOM.
func WriteCSV(path string, header []string, rows [][]string, comma rune) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, file.Close())
	}()

	writer := csv.NewWriter(file)
	writer.Comma = comma
	if len(header) > 0 {
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
