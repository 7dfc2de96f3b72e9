package scores

import (
	"fmt"
	"strconv"
	"strings"
)

// Reserved sheet names of the results workbook.
const (
	SheetGeneral   = "Général"
	SheetStats     = "Stats"
	SheetUnmatched = "Sans Licence"
)

// DefaultGroups are the group sheets offered on every run.
var DefaultGroups = []string{"Groupe A", "Groupe B", "Groupe C"}

// IsReservedSheet reports whether name collides with a fixed sheet.
func IsReservedSheet(name string) bool {
	for _, reserved := range []string{SheetGeneral, SheetStats, SheetUnmatched} {
		if strings.EqualFold(strings.TrimSpace(name), reserved) {
			return true
		}
	}
	return false
}

// Group is a named selection of licences.
type Group struct {
	Name     string
	Licences []string
}

// Selection is the outcome of ParseGroupSelection.
type Selection struct {
	Licences []string
	All      bool
	Warnings []string
}

// ParseGroupSelection interprets the licences chosen for a group:
// "aucun", "none" or an empty answer select nothing, "tous", "toutes" or
// "all" select every licence, otherwise a comma separated list of 1-based
// indexes into available. Out of range indexes are warned about and skipped;
// a non numeric entry cancels the whole selection.
func ParseGroupSelection(input string, available []string) Selection {
	answer := strings.ToLower(strings.TrimSpace(input))
	switch answer {
	case "", "aucun", "none":
		return Selection{}
	case "tous", "toutes", "all":
		return Selection{Licences: append([]string(nil), available...), All: true}
	}
	var selection Selection
	seen := map[int]struct{}{}
	for _, part := range strings.Split(answer, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Selection{Warnings: []string{fmt.Sprintf("invalid input %q, no licence selected", input)}}
		}
		if n < 1 || n > len(available) {
			selection.Warnings = append(selection.Warnings, fmt.Sprintf("number %d is invalid, ignored", n))
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		selection.Licences = append(selection.Licences, available[n-1])
	}
	return selection
}
