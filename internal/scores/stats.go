package scores

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"examkit/internal/duckdb"
)

// Stats holds the mark summaries shown on the Stats sheet.
type Stats struct {
	Overall    duckdb.Summary
	HasOverall bool
	ByLicence  map[string]duckdb.Summary
}

// ComputeStats summarizes matched marks overall and per licence.
func ComputeStats(ctx context.Context, org *Organized) (stats Stats, err error) {
	engine, err := duckdb.Open(ctx)
	if err != nil {
		return Stats{}, err
	}
	defer func() {
		err = multierr.Append(err, engine.Close())
	}()

	marks := make([]duckdb.Mark, 0, org.Matched())
	for _, licence := range org.Licences() {
		for _, record := range org.ByLicence[licence] {
			marks = append(marks, duckdb.Mark{Licence: licence, Identifier: record.ID, Value: record.Mark})
		}
	}
	if err := engine.Load(ctx, marks); err != nil {
		return Stats{}, err
	}
	overall, ok, err := engine.Overall(ctx)
	if err != nil {
		return Stats{}, err
	}
	summaries, err := engine.ByLicence(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats = Stats{Overall: overall, HasOverall: ok, ByLicence: make(map[string]duckdb.Summary, len(summaries))}
	for _, summary := range summaries {
		stats.ByLicence[summary.Licence] = summary
	}
	if len(stats.ByLicence) != len(org.ByLicence) {
		return Stats{}, fmt.Errorf("stats cover %d licences, expected %d", len(stats.ByLicence), len(org.ByLicence))
	}
	return stats, nil
}

// Round2 rounds half away from zero to two decimals.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// FormatPercent renders a ratio as a percentage with at least one decimal,
// such as "75.0%" or "66.67%".
func FormatPercent(ratio float64) string {
	text := strconv.FormatFloat(Round2(ratio*100), 'f', -1, 64)
	if !strings.ContainsAny(text, ".eEnN") {
		text += ".0"
	}
	return text + "%"
}
