// Package questions turns a multiple choice question bank kept in a
// spreadsheet into a Moodle XML import file.
package questions

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"examkit/internal/sheet"
)

// Bank columns. Options 2 to MaxOptions, Required and Commentaires are
// optional.
const (
	ColumnNumber   = "SNO"
	ColumnText     = "Questions"
	ColumnType     = "Type"
	ColumnCorrect  = "Correct Answer"
	ColumnPoints   = "Points"
	ColumnFeedback = "Commentaires"
	ColumnRequired = "Required"
)

// MaxOptions is the number of "option N" columns read per question.
const MaxOptions = 5

// Accepted lists the bank formats.
var Accepted = sheet.Spreadsheets

// ErrNoQuestions is returned when the bank has a header but no question row.
var ErrNoQuestions = errors.New("no question found in the bank")

// OptionColumn names the column of the n-th option, counted from 1.
func OptionColumn(n int) string {
	return fmt.Sprintf("option %d", n)
}

// RequiredColumns lists the columns a bank must have.
func RequiredColumns() []string {
	return []string{ColumnNumber, ColumnText, ColumnType, OptionColumn(1), ColumnCorrect, ColumnPoints}
}

// Row is one raw line of the bank, cells trimmed.
type Row struct {
	Number   string
	Text     string
	Type     string
	Options  []string
	Correct  string
	Points   string
	Feedback string
}

// ReadOptions controls how a bank is read.
type ReadOptions struct {
	Logger *zap.Logger
}

// ReadBank reads the first sheet of path. Blank lines are dropped.
func ReadBank(path string, opts ReadOptions) ([]Row, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	table, err := sheet.ReadTable(path, Accepted...)
	if err != nil {
		return nil, err
	}
	if err := table.Require(RequiredColumns()...); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	optionCols := make([]int, 0, MaxOptions)
	for n := 1; n <= MaxOptions; n++ {
		optionCols = append(optionCols, table.Index(OptionColumn(n)))
	}
	cell := func(r int, name string) string {
		return table.Value(r, table.Index(name))
	}

	rows := make([]Row, 0, len(table.Rows))
	blank := 0
	for r, raw := range table.Rows {
		if strings.TrimSpace(strings.Join(raw, "")) == "" {
			blank++
			continue
		}
		row := Row{
			Number:   cell(r, ColumnNumber),
			Text:     cell(r, ColumnText),
			Type:     cell(r, ColumnType),
			Correct:  cell(r, ColumnCorrect),
			Points:   cell(r, ColumnPoints),
			Feedback: cell(r, ColumnFeedback),
		}
		for _, c := range optionCols {
			row.Options = append(row.Options, table.Value(r, c))
		}
		rows = append(rows, row)
	}
	logger.Debug("question bank read",
		zap.String("path", path),
		zap.Int("questions", len(rows)),
		zap.Int("blank", blank))
	if len(rows) == 0 {
		return nil, ErrNoQuestions
	}
	return rows, nil
}
