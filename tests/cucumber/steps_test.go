//go:build cucumber
// +build cucumber

package cucumber

import (
	"testing"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
	"github.com/google/go-cmp/cmp"
)

func TestTableRowsTrimsCells(t *testing.T) {
	table := &godog.Table{Rows: []*messages.PickleTableRow{
		{Cells: []*messages.PickleTableCell{{Value: " etu "}, {Value: "Mark"}}},
		{Cells: []*messages.PickleTableCell{{Value: "1001"}, {Value: ""}}},
	}}
	want := [][]string{{"etu", "Mark"}, {"1001", ""}}
	if diff := cmp.Diff(want, tableRows(table)); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	if tableRows(nil) != nil {
		t.Fatalf("expected nil rows for nil table")
	}
}
