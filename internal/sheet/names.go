package sheet

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxSheetName is the longest sheet name Excel accepts.
const MaxSheetName = 31

const invalidSheetChars = `[]:*?/\`

// SheetName makes name acceptable to Excel and unique among used, which is
// keyed by lower-cased names since Excel compares them case-insensitively.
func SheetName(name string, used map[string]struct{}) string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidSheetChars, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	clean = strings.Trim(clean, "'")
	if clean == "" {
		clean = "Sheet"
	}
	clean = truncateRunes(clean, MaxSheetName)
	if _, taken := used[strings.ToLower(clean)]; !taken {
		return clean
	}
	for n := 2; ; n++ {
		suffix := " (" + strconv.Itoa(n) + ")"
		candidate := truncateRunes(clean, MaxSheetName-utf8.RuneCountInString(suffix)) + suffix
		if _, taken := used[strings.ToLower(candidate)]; !taken {
			return candidate
		}
	}
}

func truncateRunes(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	runes := []rune(value)
	return string(runes[:limit])
}
