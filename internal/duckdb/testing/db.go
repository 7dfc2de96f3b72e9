// Package duckdbtesting opens throwaway engines for tests.
package duckdbtesting

import (
	"testing"

	"examkit/internal/duckdb"
	"examkit/internal/testutil"
)

// Open opens an in-memory engine and closes it when the test ends.
func Open(t testing.TB) *duckdb.Engine {
	t.Helper()
	engine, err := duckdb.Open(testutil.Context(t))
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	t.Cleanup(func() {
		if err := engine.Close(); err != nil {
			t.Errorf("close duckdb: %v", err)
		}
	})
	return engine
}

// Load opens an engine holding marks.
func Load(t testing.TB, marks ...duckdb.Mark) *duckdb.Engine {
	t.Helper()
	engine := Open(t)
	if err := engine.Load(testutil.Context(t), marks); err != nil {
		t.Fatalf("load marks: %v", err)
	}
	return engine
}
