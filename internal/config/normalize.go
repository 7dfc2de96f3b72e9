package config

import (
	"examkit/internal/anonymat"
	"examkit/internal/moodle"
	"examkit/internal/questions"
	"examkit/internal/scores"
)

// Default output names, matching the files the exam office already expects.
const (
	DefaultLicences17 = "licences_1_7.xlsx"
	DefaultLicences9  = "licences_9.xlsx"
	DefaultReport     = "resultats.xlsx"
)

// Normalize fills unset fields with their defaults.
func Normalize(cfg *Config) {
	if cfg.Identifier.Digits == 0 {
		cfg.Identifier.Digits = anonymat.DefaultDigits
	}
	if cfg.Moodle.Auth == "" {
		cfg.Moodle.Auth = moodle.DefaultAuth
	}
	if cfg.Moodle.FirstName == "" {
		cfg.Moodle.FirstName = moodle.DefaultFirstName
	}
	if len(cfg.Licences.Buckets) == 0 {
		defaults := anonymat.LicencePartition()
		cfg.Licences.Buckets = []LicenceBucket{
			{Bucket: defaults[0], Output: DefaultLicences17},
			{Bucket: defaults[1], Output: DefaultLicences9},
		}
	}
	if cfg.Scores.Output == "" {
		cfg.Scores.Output = DefaultReport
	}
	if len(cfg.Scores.Buckets) == 0 {
		cfg.Scores.Buckets = anonymat.ScorePartition()
	}
	if len(cfg.Scores.Groups) == 0 {
		cfg.Scores.Groups = append([]string(nil), scores.DefaultGroups...)
	}
	if cfg.Scores.LegacyLayout == (scores.LegacyLayout{}) {
		cfg.Scores.LegacyLayout = scores.LegacyLayoutV1()
	}
	if cfg.Questions.Category == "" {
		cfg.Questions.Category = questions.DefaultCategory
	}
	if cfg.Questions.Output == "" {
		cfg.Questions.Output = questions.DefaultOutput
	}
}
