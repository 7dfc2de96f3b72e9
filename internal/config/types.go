package config

import (
	"examkit/internal/anonymat"
	"examkit/internal/scores"
)

// Config is the optional examkit.yml document.
type Config struct {
	Version    int              `yaml:"version"`
	Identifier IdentifierConfig `yaml:"identifier"`
	Moodle     MoodleConfig     `yaml:"moodle"`
	Licences   LicencesConfig   `yaml:"licences"`
	Scores     ScoresConfig     `yaml:"scores"`
	Questions  QuestionsConfig  `yaml:"questions"`
}

type IdentifierConfig struct {
	Digits int `yaml:"digits"`
}

type MoodleConfig struct {
	Auth      string `yaml:"auth"`
	FirstName string `yaml:"firstname"`
}

type LicencesConfig struct {
	Buckets []LicenceBucket `yaml:"buckets"`
}

// LicenceBucket pairs a leading-digit bucket with the workbook it is written to.
type LicenceBucket struct {
	anonymat.Bucket `yaml:",inline"`
	Output          string `yaml:"output"`
}

type ScoresConfig struct {
	Output       string              `yaml:"output"`
	Buckets      anonymat.Partition  `yaml:"buckets"`
	Groups       []string            `yaml:"groups"`
	LegacyLayout scores.LegacyLayout `yaml:"legacy_layout"`
}

// QuestionsConfig sets the Moodle question bank category and XML file name.
type QuestionsConfig struct {
	Category string `yaml:"category"`
	Output   string `yaml:"output"`
}

// Partition returns the aggregator buckets without their output names.
func (c LicencesConfig) Partition() anonymat.Partition {
	partition := make(anonymat.Partition, len(c.Buckets))
	for i, bucket := range c.Buckets {
		partition[i] = bucket.Bucket
	}
	return partition
}
