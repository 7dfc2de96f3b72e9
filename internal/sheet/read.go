package sheet

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported file type by its extension.
type Format string

const (
	FormatXLSX Format = ".xlsx"
	FormatXLS  Format = ".xls"
	FormatODS  Format = ".ods"
	FormatCSV  Format = ".csv"
)

// Spreadsheets lists the spreadsheet formats (everything but CSV).
var Spreadsheets = []Format{FormatXLSX, FormatXLS, FormatODS}

// FormatOf returns the lower-cased extension of path.
func FormatOf(path string) Format {
	return Format(strings.ToLower(filepath.Ext(path)))
}

// UnsupportedFormatError is returned for an extension outside the accepted set.
type UnsupportedFormatError struct {
	Ext      string
	Accepted []Format
}

func (e *UnsupportedFormatError) Error() string {
	accepted := make([]string, len(e.Accepted))
	for i, format := range e.Accepted {
		accepted[i] = string(format)
	}
	ext := e.Ext
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Sprintf("unsupported file format %s (accepted: %s)", ext, strings.Join(accepted, ", "))
}

// CheckFormat validates the extension of path against accepted.
func CheckFormat(path string, accepted ...Format) (Format, error) {
	format := FormatOf(path)
	for _, candidate := range accepted {
		if candidate == format {
			return format, nil
		}
	}
	return format, &UnsupportedFormatError{Ext: string(format), Accepted: accepted}
}

// ReadGrid loads the first sheet of path. CSV files are read with ';' as
// separator. When accepted is empty every known format is allowed.
func ReadGrid(path string, accepted ...Format) (Grid, error) {
	if len(accepted) == 0 {
		accepted = []Format{FormatXLSX, FormatXLS, FormatODS, FormatCSV}
	}
	format, err := CheckFormat(path, accepted...)
	if err != nil {
		return nil, err
	}
	var grid Grid
	switch format {
	case FormatXLSX:
		grid, err = readXLSX(path)
	case FormatXLS:
		grid, err = readXLS(path)
	case FormatODS:
		grid, err = readODS(path)
	case FormatCSV:
		grid, err = ReadCSV(path, ';')
	}
	if err != nil {
		return nil, err
	}
	return trimTrailing(grid), nil
}

// ReadTable loads path with ReadGrid and treats the first row as header.
func ReadTable(path string, accepted ...Format) (Table, error) {
	grid, err := ReadGrid(path, accepted...)
	if err != nil {
		return Table{}, err
	}
	return NewTable(grid), nil
}
