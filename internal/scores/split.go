package scores

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"examkit/internal/anonymat"
	"examkit/internal/sheet"
)

// SplitResult holds the records routed to each bucket of a partition.
type SplitResult struct {
	Partition anonymat.Partition
	Buckets   [][]Record
	// Outside lists records whose leading digit matches no bucket.
	Outside []Record
}

// Split routes records by leading digit. Record order is preserved.
func Split(records []Record, partition anonymat.Partition) SplitResult {
	result := SplitResult{Partition: partition, Buckets: make([][]Record, len(partition))}
	for _, record := range records {
		idx, ok := partition.Classify(record.ID)
		if !ok {
			result.Outside = append(result.Outside, record)
			continue
		}
		result.Buckets[idx] = append(result.Buckets[idx], record)
	}
	return result
}

// SplitFile describes one written bucket file.
type SplitFile struct {
	Bucket anonymat.Bucket
	Path   string
	Count  int
}

// SplitPath returns the file written for bucket next to original. Legacy .xls
// sources are written as .xlsx.
func SplitPath(original string, bucket anonymat.Bucket) string {
	ext := filepath.Ext(original)
	stem := strings.TrimSuffix(original, ext)
	if sheet.FormatOf(original) == sheet.FormatXLS {
		ext = ".xlsx"
	}
	return stem + "_" + bucket.Name + ext
}

// WriteSplit writes one score file per bucket, in the format of original.
func WriteSplit(original string, notes *Notes, partition anonymat.Partition, layout LegacyLayout) (SplitResult, []SplitFile, error) {
	format, err := sheet.CheckFormat(original, sheet.FormatCSV, sheet.FormatXLSX, sheet.FormatXLS)
	if err != nil {
		return SplitResult{}, nil, err
	}
	result := Split(notes.Records, partition)
	files := make([]SplitFile, 0, len(partition))
	for i, bucket := range partition {
		path := SplitPath(original, bucket)
		records := result.Buckets[i]
		if format == sheet.FormatCSV {
			err = writeSplitCSV(path, records, notes.Rates)
		} else {
			err = writeSplitLegacy(path, records, notes.Rates, layout)
		}
		if err != nil {
			return result, files, fmt.Errorf("write %s: %w", path, err)
		}
		files = append(files, SplitFile{Bucket: bucket, Path: path, Count: len(records)})
	}
	return result, files, nil
}

func writeSplitCSV(path string, records []Record, rates []Rate) error {
	header := []string{ColumnIdentifier, ColumnMark}
	for _, rate := range rates {
		header = append(header, rate.Question)
	}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		row := []string{record.ID, formatFloat(record.Mark)}
		for _, rate := range rates {
			row = append(row, formatFloat(rate.Value))
		}
		rows = append(rows, row)
	}
	return sheet.WriteCSV(path, header, rows, ';')
}

func writeSplitLegacy(path string, records []Record, rates []Rate, layout LegacyLayout) error {
	rows := make([][]any, layout.FirstDataRow, layout.FirstDataRow+len(records))
	ratesRow := make([]any, layout.Width)
	for i, rate := range rates {
		col := layout.FirstQuestionCol + i
		if col > layout.LastQuestionCol {
			break
		}
		ratesRow[col] = rate.Value
	}
	rows[layout.RatesRow] = ratesRow
	for _, record := range records {
		row := make([]any, layout.Width)
		row[layout.MarkCol] = record.Mark
		row[layout.IdentifierCol] = record.ID
		rows = append(rows, row)
	}
	return sheet.WriteXLSX(path, "Sheet1", rows)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
