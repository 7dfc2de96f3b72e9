package questions

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// Defaults of the question export.
const (
	DefaultCategory = "Questions"
	DefaultOutput   = "moodle_questions.xml"
	Penalty         = "0.3333333"
)

// Feedback shown by Moodle once a question is graded.
const (
	FeedbackCorrect   = "Votre reponse est correcte."
	FeedbackPartial   = "Votre reponse est partiellement correcte."
	FeedbackIncorrect = "Votre reponse est incorrecte."
)

type quizXML struct {
	XMLName   xml.Name      `xml:"quiz"`
	Questions []questionXML `xml:"question"`
}

type questionXML struct {
	Type            string      `xml:"type,attr"`
	Category        *textXML    `xml:"category,omitempty"`
	Name            *textXML    `xml:"name,omitempty"`
	QuestionText    *htmlXML    `xml:"questiontext,omitempty"`
	GeneralFeedback *htmlXML    `xml:"generalfeedback,omitempty"`
	DefaultGrade    string      `xml:"defaultgrade,omitempty"`
	Penalty         string      `xml:"penalty,omitempty"`
	Hidden          string      `xml:"hidden,omitempty"`
	Single          string      `xml:"single,omitempty"`
	ShuffleAnswers  string      `xml:"shuffleanswers,omitempty"`
	AnswerNumbering string      `xml:"answernumbering,omitempty"`
	Correct         *plainXML   `xml:"correctfeedback,omitempty"`
	Partial         *plainXML   `xml:"partiallycorrectfeedback,omitempty"`
	Incorrect       *plainXML   `xml:"incorrectfeedback,omitempty"`
	Answers         []answerXML `xml:"answer"`
}

type textXML struct {
	Text string `xml:"text"`
}

type plainXML struct {
	Format string `xml:"format,attr"`
	Text   string `xml:"text"`
}

type cdataXML struct {
	Value string `xml:",cdata"`
}

type htmlXML struct {
	Format string   `xml:"format,attr"`
	Text   cdataXML `xml:"text"`
}

type answerXML struct {
	Fraction string   `xml:"fraction,attr"`
	Format   string   `xml:"format,attr"`
	Text     cdataXML `xml:"text"`
	Feedback plainXML `xml:"feedback"`
}

// htmlEscaper keeps markup typed in the bank visible as text in Moodle.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func html(text string) *htmlXML {
	return &htmlXML{Format: "html", Text: cdataXML{Value: htmlEscaper.Replace(text)}}
}

func feedback(text string) *plainXML {
	return &plainXML{Format: "html", Text: text}
}

// Marshal renders the Moodle XML document: a category entry followed by one
// multichoice question per item. Correct options are worth 100, the others 0.
func Marshal(category string, items []Question) ([]byte, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}
	quiz := quizXML{Questions: make([]questionXML, 0, len(items)+1)}
	quiz.Questions = append(quiz.Questions, questionXML{
		Type:     "category",
		Category: &textXML{Text: "$course$/top/" + category},
	})
	for _, item := range items {
		question := questionXML{
			Type:            "multichoice",
			Name:            &textXML{Text: fmt.Sprintf("Question %d", item.Number)},
			QuestionText:    html(item.Text),
			GeneralFeedback: html(item.Feedback),
			DefaultGrade:    strconv.FormatFloat(item.Points, 'f', -1, 64),
			Penalty:         Penalty,
			Hidden:          "0",
			Single:          strconv.FormatBool(item.Single),
			ShuffleAnswers:  "true",
			AnswerNumbering: "abc",
			Correct:         feedback(FeedbackCorrect),
			Partial:         feedback(FeedbackPartial),
			Incorrect:       feedback(FeedbackIncorrect),
		}
		for _, option := range item.Options {
			fraction := "0"
			if item.IsCorrect(option) {
				fraction = "100"
			}
			question.Answers = append(question.Answers, answerXML{
				Fraction: fraction,
				Format:   "html",
				Text:     cdataXML{Value: htmlEscaper.Replace(option)},
				Feedback: plainXML{Format: "html"},
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}
	body, err := xml.MarshalIndent(quiz, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode moodle xml: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// Write saves the Moodle XML document to path.
func Write(path, category string, items []Question) (err error) {
	if len(items) == 0 {
		return ErrNoQuestions
	}
	body, err := Marshal(category, items)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, file.Close())
	}()
	if _, err := file.Write(body); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
