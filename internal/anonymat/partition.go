package anonymat

import (
	"fmt"
	"strings"
)

// Bucket groups identifiers whose leading digit is one of Digits.
type Bucket struct {
	Name   string `yaml:"name"`
	Digits string `yaml:"digits"`
}

// Contains reports whether id starts with one of the bucket digits.
func (b Bucket) Contains(id string) bool {
	digit, ok := LeadingDigit(id)
	if !ok {
		return false
	}
	return strings.IndexByte(b.Digits, digit) >= 0
}

// Label renders the digit set for console output, e.g. "1/7/8".
func (b Bucket) Label() string {
	parts := make([]string, 0, len(b.Digits))
	for i := 0; i < len(b.Digits); i++ {
		parts = append(parts, string(b.Digits[i]))
	}
	return strings.Join(parts, "/")
}

// Partition is an ordered list of buckets with disjoint digit sets.
type Partition []Bucket

// LicencePartition is the default split used by the roster aggregator.
func LicencePartition() Partition {
	return Partition{{Name: "1_7", Digits: "17"}, {Name: "9", Digits: "9"}}
}

// ScorePartition is the default split used by the score merger.
func ScorePartition() Partition {
	return Partition{{Name: "1-7-8", Digits: "178"}, {Name: "9", Digits: "9"}}
}

// Classify returns the bucket owning id and its index.
func (p Partition) Classify(id string) (int, bool) {
	for i, bucket := range p {
		if bucket.Contains(id) {
			return i, true
		}
	}
	return -1, false
}

// Validate checks bucket names and that no digit is claimed twice.
func (p Partition) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("partition has no buckets")
	}
	names := map[string]struct{}{}
	owner := map[rune]string{}
	for i, bucket := range p {
		name := strings.TrimSpace(bucket.Name)
		if name == "" {
			return fmt.Errorf("bucket %d has no name", i)
		}
		if _, exists := names[name]; exists {
			return fmt.Errorf("duplicate bucket name %q", name)
		}
		names[name] = struct{}{}
		if bucket.Digits == "" {
			return fmt.Errorf("bucket %q has no digits", name)
		}
		for _, r := range bucket.Digits {
			if r < '0' || r > '9' {
				return fmt.Errorf("bucket %q: %q is not a digit", name, r)
			}
			if other, taken := owner[r]; taken {
				return fmt.Errorf("digit %c is claimed by buckets %q and %q", r, other, name)
			}
			owner[r] = name
		}
	}
	return nil
}
