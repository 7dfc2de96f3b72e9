package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"examkit/internal/anonymat"
	"examkit/internal/scores"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := Validate(&cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Identifier.Digits != 4 {
		t.Fatalf("expected 4 digits, got %d", cfg.Identifier.Digits)
	}
	if cfg.Licences.Buckets[0].Output != DefaultLicences17 || cfg.Licences.Buckets[1].Output != DefaultLicences9 {
		t.Fatalf("unexpected licence outputs: %+v", cfg.Licences.Buckets)
	}
	if cfg.Scores.LegacyLayout != scores.LegacyLayoutV1() {
		t.Fatalf("expected v1 layout, got %+v", cfg.Scores.LegacyLayout)
	}
}

func TestScaffoldLoadsCleanly(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := Scaffold(path); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load scaffold: %v", err)
	}
	if cfg.Scores.Buckets[0] != (anonymat.Bucket{Name: "1-7-8", Digits: "178"}) {
		t.Fatalf("unexpected score buckets: %+v", cfg.Scores.Buckets)
	}
	if err := Scaffold(path); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected overwrite refusal, got %v", err)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("version: 1\nunknown: true\n"))
	if err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestParseRejectsMultipleDocuments(t *testing.T) {
	_, err := Parse([]byte("version: 1\n---\nversion: 1\n"))
	if err == nil || !strings.Contains(err.Error(), "multiple YAML documents") {
		t.Fatalf("expected multiple document error, got %v", err)
	}
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	body := "version: 1\nscores:\n  output: notes.xlsx\n  groups: [\"L1\", \"L2\"]\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scores.Output != "notes.xlsx" {
		t.Fatalf("expected output override, got %q", cfg.Scores.Output)
	}
	if len(cfg.Scores.Groups) != 2 {
		t.Fatalf("expected two groups, got %v", cfg.Scores.Groups)
	}
	if cfg.Moodle.FirstName != "Etudiant" {
		t.Fatalf("expected default firstname, got %q", cfg.Moodle.FirstName)
	}
}

func TestValidateCollectsIssues(t *testing.T) {
	cfg := Default()
	cfg.Version = 2
	cfg.Identifier.Digits = -1
	cfg.Licences.Buckets[1].Digits = "79"
	cfg.Licences.Buckets[1].Output = "licences_9.csv"
	cfg.Scores.Groups = []string{"Stats", "Groupe A", "Groupe A", "Groupe C"}
	cfg.Scores.LegacyLayout.Width = 10

	err := Validate(&cfg)
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := map[string]bool{}
	for _, issue := range validation.Issues {
		fields[issue.Field] = true
	}
	for _, want := range []string{
		"version",
		"identifier.digits",
		"licences.buckets",
		"licences.buckets[1].output",
		"scores.groups",
		"scores.groups[0]",
		"scores.groups[2]",
		"scores.legacy_layout",
	} {
		if !fields[want] {
			t.Fatalf("expected issue for %s, got %v", want, err)
		}
	}
}

func TestFindConfigPathSearchesParents(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	found, err := FindConfigPath(nested)
	if err != nil || found != "" {
		t.Fatalf("expected no config, got %q (%v)", found, err)
	}
	path := filepath.Join(root, FileName)
	if err := os.WriteFile(path, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	found, err = FindConfigPath(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found != path {
		t.Fatalf("expected %q, got %q", path, found)
	}
}

func TestFindConfigPathAcceptsYAMLSpelling(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "examkit.yaml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	found, err := FindConfigPath(root)
	if err != nil || found != path {
		t.Fatalf("expected %q, got %q (%v)", path, found, err)
	}

	blocked := t.TempDir()
	if err := os.Mkdir(filepath.Join(blocked, FileName), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := FindConfigPath(blocked); err == nil {
		t.Fatalf("expected a folder named %s to be rejected", FileName)
	}
}

func TestSameOutput(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"licences_1_7.xlsx", "licences_1_7.xlsx", true},
		{"licences_1_7.xlsx", " ./out/../LICENCES_1_7.xlsx ", true},
		{"licences_1_7.xlsx", "licences_9.xlsx", false},
		{"a/licences.xlsx", "b/licences.xlsx", false},
	}
	for _, tc := range cases {
		if got := SameOutput(tc.a, tc.b); got != tc.want {
			t.Fatalf("SameOutput(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestValidateRejectsSharedRosterOutput(t *testing.T) {
	cfg := Default()
	cfg.Licences.Buckets[1].Output = strings.ToUpper(cfg.Licences.Buckets[0].Output[:1]) + cfg.Licences.Buckets[0].Output[1:]

	err := Validate(&cfg)
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(validation.Issues) != 1 || validation.Issues[0].Field != "licences.buckets[1].output" {
		t.Fatalf("unexpected issues %+v", validation.Issues)
	}
}

func TestQuestionsSection(t *testing.T) {
	cfg := Default()
	if cfg.Questions.Category != "Questions" || cfg.Questions.Output != "moodle_questions.xml" {
		t.Fatalf("unexpected question defaults %+v", cfg.Questions)
	}

	cfg.Questions = QuestionsConfig{Category: "  ", Output: "bank.csv"}
	err := Validate(&cfg)
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := map[string]bool{}
	for _, issue := range validation.Issues {
		fields[issue.Field] = true
	}
	if !fields["questions.category"] || !fields["questions.output"] {
		t.Fatalf("expected question issues, got %v", err)
	}
}
