//go:build cucumber
// +build cucumber

package cucumber

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/cucumber/godog"
	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"examkit/internal/scores"
)

// theExitCodeIs asserts the exact CLI exit code.
func (s *featureState) theExitCodeIs(code int) error {
	if s.exitCode != code {
		return fmt.Errorf("expected exit code %d, got %d (stderr %q)", code, s.exitCode, s.stderr.String())
	}
	return nil
}

// theExitCodeIsNonZero asserts that the CLI returned an error code.
func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("expected non-zero exit code")
	}
	return nil
}

// theOutputListsCommands asserts the output contains expected command names.
func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	output := s.stdout.String()
	for _, row := range tableRows(table) {
		for _, command := range row {
			if command == "" {
				continue
			}
			if !strings.Contains(output, command) {
				return fmt.Errorf("expected command %q in output", command)
			}
		}
	}
	return nil
}

func (s *featureState) theOutputMentions(text string) error {
	if !strings.Contains(s.stdout.String(), text) {
		return fmt.Errorf("expected %q in output, got:\n%s", text, s.stdout.String())
	}
	return nil
}

func (s *featureState) theErrorOutputMentions(text string) error {
	if !strings.Contains(s.stderr.String(), text) {
		return fmt.Errorf("expected %q in error output, got %q", text, s.stderr.String())
	}
	return nil
}

func (s *featureState) theFileExists(name string) error {
	if _, err := os.Stat(s.path(name)); err != nil {
		return fmt.Errorf("expected %s to exist: %w", name, err)
	}
	return nil
}

func (s *featureState) theFileDoesNotExist(name string) error {
	if _, err := os.Stat(s.path(name)); !os.IsNotExist(err) {
		return fmt.Errorf("expected %s to be absent, got %v", name, err)
	}
	return nil
}

// theFileContainsLines compares a text file line by line.
func (s *featureState) theFileContainsLines(name string, table *godog.Table) error {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	var want []string
	for _, row := range tableRows(table) {
		want = append(want, strings.Join(row, "|"))
	}
	got := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		return fmt.Errorf("%s mismatch (-want +got):\n%s", name, diff)
	}
	return nil
}

// theQuizHasQuestions checks the multichoice entries of a Moodle XML file:
// name, single flag and the options worth 100, joined with "+".
func (s *featureState) theQuizHasQuestions(name string, table *godog.Table) error {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	var quiz struct {
		Questions []struct {
			Type    string `xml:"type,attr"`
			Name    string `xml:"name>text"`
			Single  string `xml:"single"`
			Answers []struct {
				Fraction string `xml:"fraction,attr"`
				Text     string `xml:"text"`
			} `xml:"answer"`
		} `xml:"question"`
	}
	if err := xml.Unmarshal(data, &quiz); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	var got [][]string
	for _, question := range quiz.Questions {
		if question.Type != "multichoice" {
			continue
		}
		var correct []string
		for _, answer := range question.Answers {
			if answer.Fraction == "100" {
				correct = append(correct, answer.Text)
			}
		}
		got = append(got, []string{question.Name, question.Single, strings.Join(correct, "+")})
	}
	if diff := cmp.Diff(tableRows(table), got); diff != "" {
		return fmt.Errorf("%s mismatch (-want +got):\n%s", name, diff)
	}
	return nil
}

// theRosterLists checks every number/licence pair of a written roster.
func (s *featureState) theRosterLists(name string, table *godog.Table) error {
	roster, err := scores.ReadRoster(s.path(name))
	if err != nil {
		return err
	}
	rows := tableRows(table)
	if roster.Len() != len(rows) {
		return fmt.Errorf("expected %d students in %s, got %d", len(rows), name, roster.Len())
	}
	for _, row := range rows {
		if len(row) != 2 {
			return fmt.Errorf("expected number and licence, got %v", row)
		}
		licence, ok := roster.Lookup(row[0])
		if !ok || licence != row[1] {
			return fmt.Errorf("expected %s in %s, got %q (found %v)", row[0], row[1], licence, ok)
		}
	}
	return nil
}

func (s *featureState) theWorkbookHasSheets(name string, table *godog.Table) error {
	wb, err := excelize.OpenFile(s.path(name))
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer wb.Close()
	var want []string
	for _, row := range tableRows(table) {
		want = append(want, row[0])
	}
	if diff := cmp.Diff(want, wb.GetSheetList()); diff != "" {
		return fmt.Errorf("sheets of %s mismatch (-want +got):\n%s", name, diff)
	}
	return nil
}

func (s *featureState) theSheetLists(sheetName, name string, table *godog.Table) error {
	wb, err := excelize.OpenFile(s.path(name))
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer wb.Close()
	got, err := wb.GetRows(sheetName)
	if err != nil {
		return fmt.Errorf("read %s: %w", sheetName, err)
	}
	if diff := cmp.Diff(tableRows(table), got); diff != "" {
		return fmt.Errorf("sheet %s mismatch (-want +got):\n%s", sheetName, diff)
	}
	return nil
}
