package licences

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"examkit/internal/sheet"
	"examkit/internal/testutil"
)

func writeLicenceFile(t *testing.T, dir, name string, rows [][]any) string {
	t.Helper()
	return testutil.WriteXLSX(t, filepath.Join(dir, name), rows...)
}

func TestClientColumnSkipsNameColumn(t *testing.T) {
	idx, ok := ClientColumn([]string{"Nom client", "Prénom", "N° Client"})
	if !ok || idx != 2 {
		t.Fatalf("expected column 2, got %d (%v)", idx, ok)
	}
	if _, ok := ClientColumn([]string{"Nom", "Email"}); ok {
		t.Fatalf("expected no client column")
	}
}

func TestExtractIdentifiersCollapsesFloats(t *testing.T) {
	dir := t.TempDir()
	path := writeLicenceFile(t, dir, "l1 info.xlsx", [][]any{
		{"Nom client", "Client"},
		{"A", "9245.0"},
		{"B", 9245},
		{"C", nil},
		{"D", "abc"},
		{"E", 1001},
	})
	result, err := ExtractIdentifiers(path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if result.Licence != "L1 INFO" {
		t.Fatalf("expected upper-cased stem, got %q", result.Licence)
	}
	if diff := cmp.Diff([]int64{9245, 1001}, result.Numbers); diff != "" {
		t.Fatalf("numbers mismatch (-want +got):\n%s", diff)
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Line != 5 {
		t.Fatalf("expected one diagnostic on line 5, got %+v", result.Diagnostics)
	}
}

func TestExtractIdentifiersMissingColumn(t *testing.T) {
	path := writeLicenceFile(t, t.TempDir(), "L2.xlsx", [][]any{{"Nom", "Email"}, {"A", "a@x"}})
	_, err := ExtractIdentifiers(path)
	var missing *sheet.MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

func TestAggregatePartitionsAndReportsDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeLicenceFile(t, dir, "l1.xlsx", [][]any{{"Client"}, {1001}, {9002}, {7003}, {5000}})
	writeLicenceFile(t, dir, "l2.xlsx", [][]any{{"Client"}, {1001}, {9100}})
	writeLicenceFile(t, dir, "notes.xlsx", [][]any{{"Nom"}, {"x"}})
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write readme: %v", err)
	}

	result, err := Aggregate(dir, Options{})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	want17 := []Entry{{1001, "L1"}, {7003, "L1"}, {1001, "L2"}}
	if diff := cmp.Diff(want17, result.Buckets[0]); diff != "" {
		t.Fatalf("1/7 bucket mismatch (-want +got):\n%s", diff)
	}
	want9 := []Entry{{9002, "L1"}, {9100, "L2"}}
	if diff := cmp.Diff(want9, result.Buckets[1]); diff != "" {
		t.Fatalf("9 bucket mismatch (-want +got):\n%s", diff)
	}
	if len(result.Files) != 3 {
		t.Fatalf("expected 3 file reports, got %d", len(result.Files))
	}
	if result.Files[0].Total != 4 || len(result.Files[0].Outside) != 1 {
		t.Fatalf("unexpected l1 report %+v", result.Files[0])
	}
	if result.Files[2].Err == nil {
		t.Fatalf("expected notes.xlsx to be reported as unusable")
	}

	dups := result.Duplicates(0)
	if diff := cmp.Diff([]Duplicate{{Number: 1001, Licences: []string{"L1", "L2"}}}, dups); diff != "" {
		t.Fatalf("duplicates mismatch (-want +got):\n%s", diff)
	}
	if len(result.Duplicates(1)) != 0 {
		t.Fatalf("expected no duplicates in bucket 9")
	}
}

func TestAggregateErrors(t *testing.T) {
	if _, err := Aggregate(filepath.Join(t.TempDir(), "missing"), Options{}); err == nil {
		t.Fatalf("expected missing directory error")
	}
	empty := t.TempDir()
	if _, err := Aggregate(empty, Options{}); err == nil {
		t.Fatalf("expected no files error")
	}
	writeLicenceFile(t, empty, "l1.xlsx", [][]any{{"Client"}, {5000}})
	if _, err := Aggregate(empty, Options{}); !errors.Is(err, ErrNoStudents) {
		t.Fatalf("expected ErrNoStudents, got %v", err)
	}
}

func TestWriteReportsUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "licences_1_7.xlsx")
	if err := Write(path, []Entry{{1001, "L1"}}); err == nil {
		t.Fatalf("expected write into a missing directory to fail")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no roster on disk, got %v", err)
	}
}

func TestWriteSortsAndRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "licences_1_7.xlsx")
	entries := []Entry{{7003, "L2"}, {1001, "L2"}, {1500, "L1"}}
	if err := Write(path, entries); err != nil {
		t.Fatalf("write: %v", err)
	}
	grid, err := sheet.ReadGrid(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := sheet.Grid{
		{ColumnNumber, ColumnLicence},
		{"1500", "L1"},
		{"1001", "L2"},
		{"7003", "L2"},
	}
	if diff := cmp.Diff(want, grid); diff != "" {
		t.Fatalf("roster mismatch (-want +got):\n%s", diff)
	}
}
