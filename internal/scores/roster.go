package scores

import (
	"fmt"
	"sort"
	"strconv"

	"examkit/internal/anonymat"
	"examkit/internal/licences"
	"examkit/internal/sheet"
)

// RosterIssue reports a roster row that could not be used.
type RosterIssue struct {
	Line   int
	Value  string
	Reason string
}

// Roster maps identifiers to licence names.
type Roster struct {
	Issues []RosterIssue

	licences map[string]string
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{licences: map[string]string{}}
}

// ReadRoster reads a licence roster with the Numéro Anonymat and Licence
// columns, as written by the licences command.
func ReadRoster(path string) (*Roster, error) {
	table, err := sheet.ReadTable(path, sheet.FormatCSV, sheet.FormatXLSX, sheet.FormatXLS, sheet.FormatODS)
	if err != nil {
		return nil, err
	}
	if err := table.Require(licences.ColumnNumber, licences.ColumnLicence); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	numberCol := table.Index(licences.ColumnNumber)
	licenceCol := table.Index(licences.ColumnLicence)

	roster := NewRoster()
	for r := range table.Rows {
		raw := table.Value(r, numberCol)
		licence := table.Value(r, licenceCol)
		if raw == "" && licence == "" {
			continue
		}
		number, err := anonymat.Integer(raw)
		if err != nil {
			roster.Issues = append(roster.Issues, RosterIssue{Line: r + 2, Value: raw, Reason: err.Error()})
			continue
		}
		if licence == "" {
			roster.Issues = append(roster.Issues, RosterIssue{Line: r + 2, Value: raw, Reason: "missing licence"})
			continue
		}
		roster.Set(strconv.FormatInt(number, 10), licence)
	}
	return roster, nil
}

// Set records or replaces the licence of id.
func (r *Roster) Set(id, licence string) {
	if r.licences == nil {
		r.licences = map[string]string{}
	}
	r.licences[id] = licence
}

// Lookup returns the licence of id.
func (r *Roster) Lookup(id string) (string, bool) {
	licence, ok := r.licences[id]
	return licence, ok
}

// Len returns the number of identifiers in the roster.
func (r *Roster) Len() int {
	return len(r.licences)
}

// Licences returns the distinct licence names in sorted order.
func (r *Roster) Licences() []string {
	seen := map[string]struct{}{}
	var names []string
	for _, licence := range r.licences {
		if _, ok := seen[licence]; ok {
			continue
		}
		seen[licence] = struct{}{}
		names = append(names, licence)
	}
	sort.Strings(names)
	return names
}
