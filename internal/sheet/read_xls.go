package sheet

import (
	"fmt"

	"github.com/extrame/xls"
)

// readXLS returns the cells of the first sheet of a BIFF workbook.
func readXLS(path string) (Grid, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	ws := wb.GetSheet(0)
	if ws == nil {
		return Grid{}, nil
	}
	grid := make(Grid, 0, int(ws.MaxRow)+1)
	for r := 0; r <= int(ws.MaxRow); r++ {
		row := ws.Row(r)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		last := row.LastCol()
		if last < 0 {
			last = 0
		}
		cells := make([]string, last)
		for c := row.FirstCol(); c < last; c++ {
			if c < 0 {
				continue
			}
			cells[c] = row.Col(c)
		}
		grid = append(grid, cells)
	}
	return grid, nil
}
