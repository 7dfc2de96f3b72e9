package sheet

import (
	"fmt"

	"github.com/knieriem/odf/ods"
	"go.uber.org/multierr"
)

// readODS returns the cells of the first table of an OpenDocument spreadsheet.
func readODS(path string) (grid Grid, err error) {
	f, err := ods.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	var doc ods.Doc
	if err := f.ParseContent(&doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(doc.Table) == 0 {
		return Grid{}, nil
	}
	return Grid(doc.Table[0].Strings()), nil
}
