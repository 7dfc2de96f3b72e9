package scores

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"examkit/internal/duckdb"
	"examkit/internal/sheet"
)

// Column names of the results workbook.
const (
	ColumnCREM    = "Numéro CREM"
	ColumnNote    = "Note"
	ColumnLicence = "Licence"
)

// RatesTitle heads the question section of the Stats sheet.
const RatesTitle = "TAUX DE RÉUSSITE PAR QUESTION"

// OverallLabel names the first row of the Stats sheet.
const OverallLabel = "GÉNÉRAL"

var statsHeader = []string{ColumnLicence, "Nombre d'étudiants", "Moyenne", "Médiane", "Écart-type", "Note min", "Note max"}

// SheetSummary describes one written sheet.
type SheetSummary struct {
	Name     string
	Students int
	Licences int
}

// SkippedGroup is a group without a sheet.
type SkippedGroup struct {
	Name   string
	Reason string
}

// Report is a results workbook ready to be saved.
type Report struct {
	RunID   string
	Sheets  []SheetSummary
	Skipped []SkippedGroup

	workbook *sheet.Workbook
}

// BuildReport lays out the Général, Stats, per-licence, group and Sans
// Licence sheets.
func BuildReport(org *Organized, rates []Rate, groups []Group, stats Stats) (_ *Report, err error) {
	report := &Report{RunID: uuid.NewString(), workbook: sheet.NewWorkbook()}
	defer func() {
		if err != nil {
			err = multierr.Append(err, report.Close())
		}
	}()
	if err := report.workbook.SetProperties("Résultats", report.RunID); err != nil {
		return nil, fmt.Errorf("set properties: %w", err)
	}

	all := org.Students()
	if err := report.add(SheetGeneral, []string{ColumnCREM, ColumnNote, ColumnLicence}, studentRows(all), len(all), len(org.ByLicence)); err != nil {
		return nil, err
	}
	if err := report.add(SheetStats, statsHeader, statsRows(org.Licences(), rates, stats), 0, 0); err != nil {
		return nil, err
	}
	for _, licence := range org.Licences() {
		records := org.ByLicence[licence]
		if err := report.add(licence, []string{ColumnCREM, ColumnNote}, recordRows(records), len(records), 1); err != nil {
			return nil, err
		}
	}
	for _, group := range groups {
		if len(group.Licences) == 0 {
			report.Skipped = append(report.Skipped, SkippedGroup{Name: group.Name, Reason: "no licence selected"})
			continue
		}
		students := org.students(group.Licences)
		if len(students) == 0 {
			report.Skipped = append(report.Skipped, SkippedGroup{Name: group.Name, Reason: "no student found"})
			continue
		}
		if err := report.add(group.Name, []string{ColumnCREM, ColumnNote, ColumnLicence}, studentRows(students), len(students), len(group.Licences)); err != nil {
			return nil, err
		}
	}
	if len(org.Unmatched) > 0 {
		unmatched := append([]Record(nil), org.Unmatched...)
		sortByMark(unmatched)
		if err := report.add(SheetUnmatched, []string{ColumnCREM, ColumnNote}, recordRows(unmatched), len(unmatched), 0); err != nil {
			return nil, err
		}
	}
	return report, nil
}

func (r *Report) add(name string, header []string, rows [][]any, students, licences int) error {
	written, err := r.workbook.AddSheet(name, header, rows)
	if err != nil {
		return fmt.Errorf("sheet %q: %w", name, err)
	}
	r.Sheets = append(r.Sheets, SheetSummary{Name: written, Students: students, Licences: licences})
	return nil
}

// Save writes the workbook to path and releases it.
func (r *Report) Save(path string) error {
	return r.workbook.SaveAs(path)
}

// Close releases a report that will not be saved. It is a no-op after Save.
func (r *Report) Close() error {
	return r.workbook.Close()
}

func studentRows(students []Student) [][]any {
	rows := make([][]any, 0, len(students))
	for _, student := range students {
		rows = append(rows, []any{student.ID, student.Mark, student.Licence})
	}
	return rows
}

func recordRows(records []Record) [][]any {
	rows := make([][]any, 0, len(records))
	for _, record := range records {
		rows = append(rows, []any{record.ID, record.Mark})
	}
	return rows
}

func statsRows(licences []string, rates []Rate, stats Stats) [][]any {
	var rows [][]any
	if stats.HasOverall {
		rows = append(rows, summaryRow(OverallLabel, stats.Overall))
		rows = append(rows, blankRow())
		for _, licence := range licences {
			rows = append(rows, summaryRow(licence, stats.ByLicence[licence]))
		}
	}
	if len(rates) > 0 {
		rows = append(rows, blankRow(), blankRow())
		rows = append(rows, []any{RatesTitle})
		for _, rate := range rates {
			rows = append(rows, []any{rate.Question, FormatPercent(rate.Value)})
		}
	}
	return rows
}

func summaryRow(label string, summary duckdb.Summary) []any {
	var stddev any
	if summary.StdDev.Valid {
		stddev = Round2(summary.StdDev.Float64)
	}
	return []any{
		label,
		summary.Count,
		Round2(summary.Mean),
		Round2(summary.Median),
		stddev,
		Round2(summary.Min),
		Round2(summary.Max),
	}
}

func blankRow() []any {
	return nil
}

// OutputPath forces the .xlsx extension and resolves path. The returned
// extension is the one replaced, empty when path already ended in .xlsx.
func OutputPath(path string) (string, string, error) {
	if strings.TrimSpace(path) == "" {
		return "", "", fmt.Errorf("output path is empty")
	}
	ext := filepath.Ext(path)
	var replaced string
	if !strings.EqualFold(ext, ".xlsx") {
		replaced = ext
		if replaced == "" {
			replaced = "(none)"
		}
		path = strings.TrimSuffix(path, ext) + ".xlsx"
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", fmt.Errorf("resolve %s: %w", path, err)
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return "", "", fmt.Errorf("%s is a directory", abs)
	}
	return abs, replaced, nil
}
