package licences

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"examkit/internal/anonymat"
	"examkit/internal/sheet"
)

// ErrNoStudents is returned when no file yields a single identifier.
var ErrNoStudents = errors.New("no student found in the licence files")

// Entry is one row of an output roster.
type Entry struct {
	Number  int64
	Licence string
}

// FileReport summarizes one scanned file.
type FileReport struct {
	Name    string
	Licence string
	Total   int
	// PerBucket counts identifiers by bucket index.
	PerBucket []int
	Outside   []int64
	Err       error
}

// Result is the outcome of Aggregate.
type Result struct {
	Partition   anonymat.Partition
	Buckets     [][]Entry
	Files       []FileReport
	Diagnostics []Diagnostic
}

// Options configures Aggregate.
type Options struct {
	Partition anonymat.Partition
	Logger    *zap.Logger
}

// Scan lists the spreadsheets of dir in name order. Office lock files are
// skipped.
func Scan(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("directory %q does not exist", dir)
		}
		return nil, fmt.Errorf("stat %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %q: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "~$") || strings.HasPrefix(name, ".~lock") {
			continue
		}
		if _, err := sheet.CheckFormat(name, sheet.Spreadsheets...); err != nil {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("no spreadsheet (.xlsx, .xls, .ods) found in %q", dir)
	}
	return files, nil
}

// Aggregate reads every licence file of dir and routes identifiers into the
// partition buckets. Files without a client column are reported in Files and
// otherwise ignored.
func Aggregate(dir string, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	partition := opts.Partition
	if len(partition) == 0 {
		partition = anonymat.LicencePartition()
	}
	if err := partition.Validate(); err != nil {
		return Result{}, err
	}
	files, err := Scan(dir)
	if err != nil {
		return Result{}, err
	}

	result := Result{Partition: partition, Buckets: make([][]Entry, len(partition))}
	found := 0
	for _, path := range files {
		extracted, err := ExtractIdentifiers(path)
		report := FileReport{
			Name:      filepath.Base(path),
			Licence:   extracted.Licence,
			PerBucket: make([]int, len(partition)),
		}
		if err != nil {
			report.Err = describe(path, err)
			result.Files = append(result.Files, report)
			logger.Debug("licence file skipped", zap.String("file", report.Name), zap.Error(err))
			continue
		}
		result.Diagnostics = append(result.Diagnostics, extracted.Diagnostics...)
		report.Total = len(extracted.Numbers)
		for _, n := range extracted.Numbers {
			idx, ok := partition.Classify(strconv.FormatInt(n, 10))
			if !ok {
				report.Outside = append(report.Outside, n)
				continue
			}
			result.Buckets[idx] = append(result.Buckets[idx], Entry{Number: n, Licence: extracted.Licence})
			report.PerBucket[idx]++
			found++
		}
		result.Files = append(result.Files, report)
		logger.Debug("licence file read",
			zap.String("file", report.Name),
			zap.String("licence", report.Licence),
			zap.Int("identifiers", report.Total))
	}
	if found == 0 {
		return result, ErrNoStudents
	}
	return result, nil
}

// Total returns the number of routed entries.
func (r Result) Total() int {
	total := 0
	for _, bucket := range r.Buckets {
		total += len(bucket)
	}
	return total
}

// Duplicate is an identifier listed by more than one file of a bucket.
type Duplicate struct {
	Number   int64
	Licences []string
}

// Duplicates returns, for bucket idx, the identifiers seen more than once, in
// first-seen order.
func (r Result) Duplicates(idx int) []Duplicate {
	if idx < 0 || idx >= len(r.Buckets) {
		return nil
	}
	licences := map[int64][]string{}
	var order []int64
	for _, entry := range r.Buckets[idx] {
		if _, seen := licences[entry.Number]; !seen {
			order = append(order, entry.Number)
		}
		licences[entry.Number] = append(licences[entry.Number], entry.Licence)
	}
	var dups []Duplicate
	for _, n := range order {
		if len(licences[n]) > 1 {
			dups = append(dups, Duplicate{Number: n, Licences: licences[n]})
		}
	}
	return dups
}

// Sorted returns entries ordered by licence then number.
func Sorted(entries []Entry) []Entry {
	out := append([]Entry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Licence != out[j].Licence {
			return out[i].Licence < out[j].Licence
		}
		return out[i].Number < out[j].Number
	})
	return out
}
