//go:build cucumber
// +build cucumber

package cucumber

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"

	"examkit/internal/config"
	"examkit/internal/sheet"
)

// anEmptyWorkingDirectory moves the scenario into a fresh temp directory.
func (s *featureState) anEmptyWorkingDirectory() error {
	dir, err := os.MkdirTemp("", "examkit-feature-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	s.workDir = dir
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working dir: %w", err)
	}
	s.previousWD = wd
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("chdir: %w", err)
	}
	return s.setEnv("NO_COLOR", "1")
}

// theConfigFileContains writes examkit.yml in the working directory.
func (s *featureState) theConfigFileContains(doc *godog.DocString) error {
	return s.writeFile(config.FileName, doc.Content+"\n")
}

// aSpreadsheetWithRows writes the table as the first sheet of an xlsx file.
func (s *featureState) aSpreadsheetWithRows(name string, table *godog.Table) error {
	if err := s.ensureDir(name); err != nil {
		return err
	}
	rows := make([][]any, 0, len(table.Rows))
	for _, values := range tableRows(table) {
		row := make([]any, len(values))
		for i, value := range values {
			if value != "" {
				row[i] = value
			}
		}
		rows = append(rows, row)
	}
	return sheet.WriteXLSX(s.path(name), "Sheet1", rows)
}

// aCSVFileWithRows writes the table as a semicolon separated file.
func (s *featureState) aCSVFileWithRows(name string, table *godog.Table) error {
	if err := s.ensureDir(name); err != nil {
		return err
	}
	rows := tableRows(table)
	if len(rows) == 0 {
		return fmt.Errorf("table for %s is empty", name)
	}
	return sheet.WriteCSV(s.path(name), rows[0], rows[1:], ';')
}

// aTextFileContaining writes a plain file.
func (s *featureState) aTextFileContaining(name, content string) error {
	return s.writeFile(name, content+"\n")
}

// iAnswer queues the answers read by interactive prompts.
func (s *featureState) iAnswer(doc *godog.DocString) error {
	s.answers = doc.Content + "\n"
	return nil
}

func (s *featureState) writeFile(name, content string) error {
	if err := s.ensureDir(name); err != nil {
		return err
	}
	if err := os.WriteFile(s.path(name), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *featureState) ensureDir(name string) error {
	if s.workDir == "" {
		return fmt.Errorf("working directory is not set")
	}
	if err := os.MkdirAll(filepath.Dir(s.path(name)), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", name, err)
	}
	return nil
}

func (s *featureState) path(name string) string {
	return filepath.Join(s.workDir, filepath.FromSlash(name))
}

// tableRows returns the trimmed cell values of every row.
func tableRows(table *godog.Table) [][]string {
	if table == nil {
		return nil
	}
	rows := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		values := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			values = append(values, strings.TrimSpace(cell.Value))
		}
		rows = append(rows, values)
	}
	return rows
}
