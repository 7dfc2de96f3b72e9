package sheet

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadGridXLSXRawValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, WriteXLSX(path, "Sheet1", [][]any{
		{"Client", "Nom client"},
		{9245.0, "Alice"},
		{1001, nil},
		{},
	}))

	grid, err := ReadGrid(path)
	require.NoError(t, err)
	require.Len(t, grid, 3)
	require.Equal(t, "Client", grid.Cell(0, 0))
	require.Equal(t, "9245", grid.Cell(1, 0))
	require.Equal(t, "1001", grid.Cell(2, 0))
	require.Equal(t, "", grid.Cell(2, 1))
	require.Equal(t, "", grid.Cell(10, 10))
}

func TestReadGridCSVSemicolonAndBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.csv")
	body := "\ufeffetu;Mark;Q01\n1001;12,5;1\n9002;8\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	table, err := ReadTable(path)
	require.NoError(t, err)
	require.Equal(t, []string{"etu", "Mark", "Q01"}, table.Header)
	require.Len(t, table.Rows, 2)
	require.Equal(t, "12,5", table.Value(0, table.Index("Mark")))
	require.Equal(t, "", table.Value(1, table.Index("Q01")))
}

func TestReadGridUnsupportedFormat(t *testing.T) {
	_, err := ReadGrid("notes.txt", FormatCSV, FormatXLSX)
	var unsupported *UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))
	require.Equal(t, ".txt", unsupported.Ext)
	require.Contains(t, err.Error(), ".csv, .xlsx")
}

func TestReadGridMissingFile(t *testing.T) {
	_, err := ReadGrid(filepath.Join(t.TempDir(), "absent.xlsx"))
	require.Error(t, err)
}

func TestTableRequireListsFoundColumns(t *testing.T) {
	table := NewTable(Grid{{" etu ", "Note"}})
	require.Equal(t, 0, table.Index("etu"))

	err := table.Require("Mark", "etu")
	var missing *MissingColumnsError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, []string{"Mark"}, missing.Missing)
	require.Equal(t, []string{"etu", "Note"}, missing.Found)
	require.Contains(t, err.Error(), "'Mark'")
}

func TestWorkbookSheetsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	wb := NewWorkbook()
	first, err := wb.AddSheet("Général", []string{"Numéro CREM", "Note"}, [][]any{{"1001", 15.5}})
	require.NoError(t, err)
	require.Equal(t, "Général", first)
	long, err := wb.AddSheet(strings.Repeat("L", 40), []string{"A"}, nil)
	require.NoError(t, err)
	require.Len(t, []rune(long), MaxSheetName)
	dup, err := wb.AddSheet("général", []string{"A"}, nil)
	require.NoError(t, err)
	require.Equal(t, "général (2)", dup)
	require.NoError(t, wb.SetProperties("report", "run-1"))
	require.NoError(t, wb.SaveAs(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, []string{"Général", long, "général (2)"}, f.GetSheetList())
	value, err := f.GetCellValue("Général", "B2")
	require.NoError(t, err)
	require.Equal(t, "15.5", value)
	props, err := f.GetDocProps()
	require.NoError(t, err)
	require.Equal(t, "run-1", props.Identifier)
}

func TestSheetNameSanitizes(t *testing.T) {
	used := map[string]struct{}{}
	require.Equal(t, "L1_L2", SheetName("L1/L2", used))
	require.Equal(t, "Sheet", SheetName(" '' ", used))
}

func TestWriteCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(path, []string{"a", "b"}, [][]string{{"1", "x,y"}}, ','))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "a,b\n1,\"x,y\"\n", string(data))
}

func TestParseNumber(t *testing.T) {
	valid := map[string]float64{
		"12":      12,
		" 12,5 ":  12.5,
		"-3.25e1": -32.5,
		"+.5":     0.5,
	}
	for raw, want := range valid {
		got, err := ParseNumber(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}
	for _, raw := range []string{"", "  ", "abc", "nan", "NaN", "inf", "-Inf", "Infinity", "0x1p-2", "0X10", "1e999", "1_000", "12 5"} {
		_, err := ParseNumber(raw)
		require.Error(t, err, raw)
	}
}

func TestWorkbookCloseIsIdempotent(t *testing.T) {
	wb := NewWorkbook()
	_, err := wb.AddSheet("Data", []string{"a"}, [][]any{{1}})
	require.NoError(t, err)
	require.NoError(t, wb.Close())
	require.NoError(t, wb.Close())
	require.Error(t, wb.SaveAs(filepath.Join(t.TempDir(), "out.xlsx")))

	saved := NewWorkbook()
	require.NoError(t, saved.SaveAs(filepath.Join(t.TempDir(), "saved.xlsx")))
	require.NoError(t, saved.Close())
}
