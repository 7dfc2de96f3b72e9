package questions

import (
	"fmt"
	"strings"

	"examkit/internal/sheet"
)

// TypeRadio marks a single answer question. Any other type, CHECKBOX
// included, allows several answers.
const TypeRadio = "RADIO"

// Question is a bank row ready to be written.
type Question struct {
	// Number is the 1-based position of the row in the bank.
	Number   int
	Text     string
	Feedback string
	Points   float64
	Single   bool
	Options  []string
	Correct  []string
}

// IsCorrect reports whether option is one of the correct answers.
func (q Question) IsCorrect(option string) bool {
	for _, correct := range q.Correct {
		if correct == option {
			return true
		}
	}
	return false
}

// Skipped is a row left out of the export.
type Skipped struct {
	Number int
	Reason string
}

// Convert checks every row. Rows without options, without a recognised
// correct answer or with bad points are skipped; the others keep their
// position number.
func Convert(rows []Row) ([]Question, []Skipped) {
	var built []Question
	var skipped []Skipped
	for i, row := range rows {
		question, err := convert(i+1, row)
		if err != nil {
			skipped = append(skipped, Skipped{Number: i + 1, Reason: err.Error()})
			continue
		}
		built = append(built, question)
	}
	return built, skipped
}

func convert(number int, row Row) (Question, error) {
	var options []string
	for _, option := range row.Options {
		if option = strings.TrimSpace(option); option != "" {
			options = append(options, option)
		}
	}
	if len(options) == 0 {
		return Question{}, fmt.Errorf("no option")
	}
	correct := ParseCorrectAnswers(row.Correct, options)
	if len(correct) == 0 {
		return Question{}, fmt.Errorf("no correct answer matches an option (%q)", row.Correct)
	}
	points, err := parsePoints(row.Points)
	if err != nil {
		return Question{}, err
	}
	return Question{
		Number:   number,
		Text:     row.Text,
		Feedback: row.Feedback,
		Points:   points,
		Single:   strings.EqualFold(strings.TrimSpace(row.Type), TypeRadio),
		Options:  options,
		Correct:  correct,
	}, nil
}

// parsePoints defaults blank and zero grades to 1.
func parsePoints(raw string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 1, nil
	}
	points, err := sheet.ParseNumber(raw)
	if err != nil {
		return 0, fmt.Errorf("points: %w", err)
	}
	if points < 0 {
		return 0, fmt.Errorf("points %q must not be negative", raw)
	}
	if points == 0 {
		return 1, nil
	}
	return points, nil
}

// ParseCorrectAnswers maps the comma separated "Correct Answer" cell to
// options. Each part matches an option exactly, then ignoring case, then when
// one text contains the other. Unmatched parts are dropped and an option is
// listed once.
func ParseCorrectAnswers(raw string, options []string) []string {
	var correct []string
	seen := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		match, ok := matchOption(part, options)
		if !ok || seen[match] {
			continue
		}
		seen[match] = true
		correct = append(correct, match)
	}
	return correct
}

func matchOption(part string, options []string) (string, bool) {
	for _, option := range options {
		if option == part {
			return option, true
		}
	}
	for _, option := range options {
		if strings.EqualFold(option, part) {
			return option, true
		}
	}
	for _, option := range options {
		if strings.Contains(option, part) || strings.Contains(part, option) {
			return option, true
		}
	}
	return "", false
}
