// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"examkit/internal/sheet"
)

// Timeout bounds the work of a single test.
const Timeout = 10 * time.Second

type deadliner interface {
	Deadline() (time.Time, bool)
}

// Context returns a context cancelled when the test ends. It expires one
// second before the test deadline when that comes first; benchmarks have no
// deadline and always get Timeout.
func Context(t testing.TB) context.Context {
	t.Helper()
	timeout := Timeout
	if d, ok := t.(deadliner); ok {
		deadline, ok := d.Deadline()
		if remaining := time.Until(deadline) - time.Second; ok && remaining > 0 && remaining < timeout {
			timeout = remaining
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// WriteXLSX writes rows to the first sheet of a new workbook at path.
func WriteXLSX(t testing.TB, path string, rows ...[]any) string {
	t.Helper()
	if err := sheet.WriteXLSX(path, "Sheet1", rows); err != nil {
		t.Fatalf("write %s: %v", filepath.Base(path), err)
	}
	return path
}

// WriteCSV writes a semicolon separated file, the export format of the
// exam scanner.
func WriteCSV(t testing.TB, path string, header []string, rows ...[]string) string {
	t.Helper()
	if err := sheet.WriteCSV(path, header, rows, ';'); err != nil {
		t.Fatalf("write %s: %v", filepath.Base(path), err)
	}
	return path
}
