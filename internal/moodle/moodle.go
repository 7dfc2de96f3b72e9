// Package moodle converts a list of anonymat numbers and emails into the CSV
// accepted by the Moodle bulk user upload.
package moodle

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"examkit/internal/sheet"
)

// Defaults applied to every imported account.
const (
	DefaultAuth      = "email"
	DefaultFirstName = "Etudiant"
)

// Accepted lists the input formats of the email file.
var Accepted = sheet.Spreadsheets

// ErrNoEntries is returned when the input holds no usable row.
var ErrNoEntries = errors.New("no entries found in input file")

// Entry is one student account.
type Entry struct {
	Anonymat string
	Email    string
}

// ReadOptions controls how the email file is read.
type ReadOptions struct {
	SkipHeader bool
	Logger     *zap.Logger
}

// ReadEntries reads column A (anonymat) and column B (email) of the first
// sheet. Rows missing either value are dropped and values are trimmed.
func ReadEntries(path string, opts ReadOptions) ([]Entry, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	grid, err := sheet.ReadGrid(path, Accepted...)
	if err != nil {
		return nil, err
	}
	start := 0
	if opts.SkipHeader {
		start = 1
	}
	entries := make([]Entry, 0, len(grid))
	dropped := 0
	for r := start; r < len(grid); r++ {
		anonymat := strings.TrimSpace(grid.Cell(r, 0))
		email := strings.TrimSpace(grid.Cell(r, 1))
		if anonymat == "" || email == "" {
			dropped++
			continue
		}
		entries = append(entries, Entry{Anonymat: anonymat, Email: email})
	}
	logger.Debug("email file read",
		zap.String("path", path),
		zap.Int("rows", len(grid)),
		zap.Int("entries", len(entries)),
		zap.Int("dropped", dropped))
	return entries, nil
}

// Profile holds the constant columns of every row.
type Profile struct {
	Auth      string
	FirstName string
}

// DefaultProfile returns the profile used when nothing is configured.
func DefaultProfile() Profile {
	return Profile{Auth: DefaultAuth, FirstName: DefaultFirstName}
}

// Rows maps entries to the upload schema. The cohort1 column is only present
// when cohort is not empty.
func Rows(entries []Entry, profile Profile, cohort string) ([]string, [][]string) {
	header := []string{"username", "email", "auth", "firstname", "lastname"}
	if cohort != "" {
		header = append(header, "cohort1")
	}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		row := []string{entry.Anonymat, entry.Email, profile.Auth, profile.FirstName, entry.Anonymat}
		if cohort != "" {
			row = append(row, cohort)
		}
		rows = append(rows, row)
	}
	return header, rows
}

// Write saves the upload CSV to path.
func Write(path string, entries []Entry, profile Profile, cohort string) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}
	header, rows := Rows(entries, profile, cohort)
	if err := sheet.WriteCSV(path, header, rows, ','); err != nil {
		return fmt.Errorf("write moodle csv: %w", err)
	}
	return nil
}
