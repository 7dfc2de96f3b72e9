// Package anonymat normalizes anonymized student identifiers and routes them
// into buckets keyed by their leading digit.
package anonymat

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"examkit/internal/sheet"
)

// DefaultDigits is the expected length of a valid identifier.
const DefaultDigits = 4

// Canonical trims raw and collapses numeric spellings to their integer form,
// so "9245.0" and "9245" both become "9245". Non numeric tokens are returned
// trimmed. The boolean is false when raw is blank.
func Canonical(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}
	if n, err := Integer(value); err == nil {
		return strconv.FormatInt(n, 10), true
	}
	return value, true
}

// Integer parses an integer-valued cell. Float spellings are accepted as long
// as they carry no fractional part.
func Integer(raw string) (int64, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("empty identifier")
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n, nil
	}
	f, err := sheet.ParseNumber(value)
	if err != nil {
		return 0, fmt.Errorf("identifier %q is not a number", value)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("identifier %q is not an integer", value)
	}
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("identifier %q is out of range", value)
	}
	return int64(f), nil
}

// Valid reports whether id is made of exactly digits ASCII digits.
func Valid(id string, digits int) bool {
	if digits <= 0 {
		digits = DefaultDigits
	}
	if len(id) != digits {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

// LeadingDigit returns the first byte of id when it is an ASCII digit.
func LeadingDigit(id string) (byte, bool) {
	if id == "" || id[0] < '0' || id[0] > '9' {
		return 0, false
	}
	return id[0], true
}
