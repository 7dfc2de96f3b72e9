package sheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseNumber parses a plain decimal cell written with a comma or a dot, such
// as "12,5" or "-3.25e1". Special values (nan, inf) and hexadecimal floats
// are rejected, as are results that overflow float64.
func ParseNumber(raw string) (float64, error) {
	value := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if value == "" {
		return 0, fmt.Errorf("empty number")
	}
	for _, r := range value {
		if !strings.ContainsRune("0123456789+-.eE", r) {
			return 0, fmt.Errorf("%q is not a decimal number", raw)
		}
	}
	number, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a decimal number", raw)
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, fmt.Errorf("%q is out of range", raw)
	}
	return number, nil
}
