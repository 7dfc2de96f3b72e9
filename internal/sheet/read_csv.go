package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"
)

const utf8BOM = "\ufeff"

// ReadCSV reads a delimited text file into a grid. Rows may have differing
// field counts and a leading UTF-8 byte order mark is dropped.
func ReadCSV(path string, comma rune) (grid Grid, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, file.Close())
	}()

	reader := csv.NewReader(file)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], utf8BOM)
	}
	return Grid(records), nil
}
