package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"examkit/internal/scores"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// issueCollector accumulates validation issues.
type issueCollector struct {
	issues []Issue
}

// add records a new validation issue.
func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

// result returns a ValidationError when issues are present.
func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks a normalized config for correctness.
func Validate(cfg *Config) error {
	c := &issueCollector{}

	if cfg.Version == 0 {
		c.add("version", "is required")
	} else if cfg.Version != 1 {
		c.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if cfg.Identifier.Digits < 1 {
		c.add("identifier.digits", "must be >= 1")
	}
	if strings.TrimSpace(cfg.Moodle.Auth) == "" {
		c.add("moodle.auth", "is required")
	}

	validateLicences(c, cfg.Licences)
	validateScores(c, cfg.Scores)
	validateQuestions(c, cfg.Questions)

	return c.result()
}

func validateLicences(c *issueCollector, cfg LicencesConfig) {
	if len(cfg.Buckets) != 2 {
		c.add("licences.buckets", fmt.Sprintf("expected 2 buckets, got %d", len(cfg.Buckets)))
	}
	if err := cfg.Partition().Validate(); err != nil {
		c.add("licences.buckets", err.Error())
	}
	var outputs []string
	for i, bucket := range cfg.Buckets {
		field := fmt.Sprintf("licences.buckets[%d].output", i)
		output := strings.TrimSpace(bucket.Output)
		if output == "" {
			c.add(field, "is required")
			continue
		}
		if ext := strings.ToLower(filepath.Ext(output)); ext != ".xlsx" {
			c.add(field, fmt.Sprintf("must end with .xlsx, got %q", output))
		}
		for _, previous := range outputs {
			if SameOutput(previous, output) {
				c.add(field, fmt.Sprintf("duplicate output %q", output))
				break
			}
		}
		outputs = append(outputs, output)
	}
}

func validateScores(c *issueCollector, cfg ScoresConfig) {
	if strings.TrimSpace(cfg.Output) == "" {
		c.add("scores.output", "is required")
	}
	if err := cfg.Buckets.Validate(); err != nil {
		c.add("scores.buckets", err.Error())
	}
	if len(cfg.Groups) > len(scores.DefaultGroups) {
		c.add("scores.groups", fmt.Sprintf("at most %d groups are supported", len(scores.DefaultGroups)))
	}
	seen := map[string]struct{}{}
	for i, group := range cfg.Groups {
		field := fmt.Sprintf("scores.groups[%d]", i)
		name := strings.TrimSpace(group)
		if name == "" {
			c.add(field, "is required")
			continue
		}
		if scores.IsReservedSheet(name) {
			c.add(field, fmt.Sprintf("%q clashes with a report sheet", name))
		}
		if _, exists := seen[name]; exists {
			c.add(field, fmt.Sprintf("duplicate group %q", name))
		}
		seen[name] = struct{}{}
	}
	if err := cfg.LegacyLayout.Validate(); err != nil {
		c.add("scores.legacy_layout", err.Error())
	}
}

func validateQuestions(c *issueCollector, cfg QuestionsConfig) {
	if strings.TrimSpace(cfg.Category) == "" {
		c.add("questions.category", "is required")
	}
	if ext := strings.ToLower(filepath.Ext(cfg.Output)); ext != ".xml" {
		c.add("questions.output", fmt.Sprintf("must end with .xml, got %q", cfg.Output))
	}
}
