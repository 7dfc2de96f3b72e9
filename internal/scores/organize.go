package scores

import (
	"sort"
)

// Student is a record matched to a licence.
type Student struct {
	Record
	Licence string
}

// Organized groups records by licence. Every licence list is sorted by mark,
// best first.
type Organized struct {
	ByLicence map[string][]Record
	// Unmatched keeps the records absent from the roster in score order.
	Unmatched []Record
	// Total is the number of records organized.
	Total int
}

// Organize joins records with the roster.
func Organize(records []Record, roster *Roster) *Organized {
	org := &Organized{ByLicence: map[string][]Record{}, Total: len(records)}
	for _, record := range records {
		licence, ok := roster.Lookup(record.ID)
		if !ok {
			org.Unmatched = append(org.Unmatched, record)
			continue
		}
		org.ByLicence[licence] = append(org.ByLicence[licence], record)
	}
	org.Resort()
	return org
}

// Resort sorts every licence list by descending mark. Ties keep their order.
func (o *Organized) Resort() {
	for _, records := range o.ByLicence {
		sortByMark(records)
	}
}

// Licences returns the licence names in sorted order.
func (o *Organized) Licences() []string {
	names := make([]string, 0, len(o.ByLicence))
	for licence := range o.ByLicence {
		names = append(names, licence)
	}
	sort.Strings(names)
	return names
}

// Matched returns the number of records attached to a licence.
func (o *Organized) Matched() int {
	total := 0
	for _, records := range o.ByLicence {
		total += len(records)
	}
	return total
}

// Students lists every matched record, best mark first. Equal marks keep
// licence order, then per-licence order.
func (o *Organized) Students() []Student {
	return o.students(o.Licences())
}

func (o *Organized) students(licences []string) []Student {
	var students []Student
	for _, licence := range licences {
		for _, record := range o.ByLicence[licence] {
			students = append(students, Student{Record: record, Licence: licence})
		}
	}
	sort.SliceStable(students, func(i, j int) bool {
		return students[i].Mark > students[j].Mark
	})
	return students
}

// UnmatchedByID returns the unmatched records ordered by identifier.
func (o *Organized) UnmatchedByID() []Record {
	records := append([]Record(nil), o.Unmatched...)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
	return records
}

func sortByMark(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Mark > records[j].Mark
	})
}
