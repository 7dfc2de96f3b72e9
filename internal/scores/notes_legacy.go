package scores

import (
	"fmt"
	"strconv"
	"strings"

	"examkit/internal/anonymat"
	"examkit/internal/sheet"
)

func readLegacyNotes(path string, layout LegacyLayout, digits int) (*Notes, error) {
	grid, err := sheet.ReadGrid(path, sheet.FormatXLSX, sheet.FormatXLS)
	if err != nil {
		return nil, err
	}
	notes := newNotes()
	notes.Rows = len(grid)
	notes.Columns = grid.Width()
	notes.Padded = notes.Columns < layout.Width

	for c := layout.FirstQuestionCol; c <= layout.LastQuestionCol; c++ {
		raw := strings.ReplaceAll(strings.TrimSpace(grid.Cell(layout.RatesRow, c)), "%", "")
		if raw == "" {
			continue
		}
		value, err := sheet.ParseNumber(raw)
		if err != nil {
			continue
		}
		notes.Rates = append(notes.Rates, Rate{Question: questionLabel(c - layout.FirstQuestionCol + 1), Value: value})
	}
	sortRates(notes.Rates)

	for r := layout.FirstDataRow; r < len(grid); r++ {
		rawID := strings.TrimSpace(grid.Cell(r, layout.IdentifierCol))
		rawMark := strings.TrimSpace(grid.Cell(r, layout.MarkCol))
		if rawID == "" || rawMark == "" {
			notes.Skipped++
			continue
		}
		number, err := anonymat.Integer(rawID)
		if err != nil {
			notes.Skipped++
			continue
		}
		mark, err := sheet.ParseNumber(rawMark)
		if err != nil {
			notes.Skipped++
			continue
		}
		id := strconv.FormatInt(number, 10)
		if !anonymat.Valid(id, digits) {
			notes.reject(r+1, id, mark, digits)
			continue
		}
		notes.put(id, mark)
	}
	return notes, nil
}

func questionLabel(n int) string {
	return fmt.Sprintf("Q%02d", n)
}
