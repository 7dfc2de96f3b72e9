package scores

import (
	"fmt"
	"strconv"
	"strings"
)

// Choice is the answer given for one unmatched student.
type Choice struct {
	Ignore  bool
	Licence string
}

// ParseLicenceChoice interprets an answer as a 1-based index into
// available, as a licence name, or as "i" to ignore the student. An empty
// answer ignores the student too.
func ParseLicenceChoice(input string, available []string) (Choice, error) {
	answer := strings.TrimSpace(input)
	if answer == "" || strings.EqualFold(answer, "i") {
		return Choice{Ignore: true}, nil
	}
	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(available) {
			return Choice{Ignore: true}, fmt.Errorf("invalid licence number %d", n)
		}
		return Choice{Licence: available[n-1]}, nil
	}
	return Choice{Licence: answer}, nil
}

// Assign attaches record to licence and records the choice in the roster.
// Callers resort once all assignments are done.
func (o *Organized) Assign(record Record, licence string, roster *Roster) {
	o.ByLicence[licence] = append(o.ByLicence[licence], record)
	if roster != nil {
		roster.Set(record.ID, licence)
	}
}
