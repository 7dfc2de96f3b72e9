package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1

identifier:
  # Number of digits of a valid anonymat number.
  digits: 4

moodle:
  auth: email
  firstname: Etudiant

licences:
  buckets:
    - name: "1_7"
      digits: "17"
      output: licences_1_7.xlsx
    - name: "9"
      digits: "9"
      output: licences_9.xlsx

scores:
  output: resultats.xlsx
  buckets:
    - name: "1-7-8"
      digits: "178"
    - name: "9"
      digits: "9"
  groups: ["Groupe A", "Groupe B", "Groupe C"]
  # Offsets (zero-based) of the fixed-layout export of the exam software.
  legacy_layout:
    version: 1
    rates_row: 4
    first_question_col: 6
    last_question_col: 45
    first_data_row: 5
    mark_col: 3
    identifier_col: 46
    width: 47

questions:
  # Moodle category receiving the imported questions.
  category: Questions
  output: moodle_questions.xml
`

// Scaffold writes the default config to path, refusing to overwrite.
func Scaffold(path string) error {
	if path == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", path)
		}
		return fmt.Errorf("config file already exists at %q", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
