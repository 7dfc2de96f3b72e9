package questions

import (
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"examkit/internal/sheet"
	"examkit/internal/testutil"
)

func bankHeader() []any {
	return []any{"SNO", "Questions", "Type", "Required", "option 1", "option 2", "option 3", "option 4", "option 5", "Correct Answer", "Commentaires", "Points"}
}

func TestReadBank(t *testing.T) {
	path := testutil.WriteXLSX(t, filepath.Join(t.TempDir(), "bank.xlsx"),
		bankHeader(),
		[]any{1, "Capital of France?", "RADIO", "Yes", "Paris", "Lyon", nil, nil, nil, "Paris", "Easy", 2},
		[]any{},
		[]any{2, "Even numbers?", "CHECKBOX", nil, " 2 ", "3", "4", nil, nil, "2, 4", nil, nil},
	)

	rows, err := ReadBank(path, ReadOptions{})
	require.NoError(t, err)
	want := []Row{
		{Number: "1", Text: "Capital of France?", Type: "RADIO", Options: []string{"Paris", "Lyon", "", "", ""}, Correct: "Paris", Points: "2", Feedback: "Easy"},
		{Number: "2", Text: "Even numbers?", Type: "CHECKBOX", Options: []string{"2", "3", "4", "", ""}, Correct: "2, 4"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestReadBankWithoutOptionalColumns(t *testing.T) {
	path := testutil.WriteXLSX(t, filepath.Join(t.TempDir(), "bank.xlsx"),
		[]any{"SNO", "Questions", "Type", "option 1", "Correct Answer", "Points"},
		[]any{1, "True?", "RADIO", "Yes", "Yes", 1},
	)
	rows, err := ReadBank(path, ReadOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, []string{"Yes", "", "", "", ""}, rows[0].Options)
	require.Empty(t, rows[0].Feedback)
}

func TestReadBankErrors(t *testing.T) {
	dir := t.TempDir()

	missing := testutil.WriteXLSX(t, filepath.Join(dir, "missing.xlsx"), []any{"SNO", "Questions", "option 1"})
	_, err := ReadBank(missing, ReadOptions{})
	var columns *sheet.MissingColumnsError
	require.ErrorAs(t, err, &columns)
	require.Equal(t, []string{"Type", "Correct Answer", "Points"}, columns.Missing)

	empty := testutil.WriteXLSX(t, filepath.Join(dir, "empty.xlsx"), bankHeader())
	_, err = ReadBank(empty, ReadOptions{})
	require.ErrorIs(t, err, ErrNoQuestions)

	_, err = ReadBank(filepath.Join(dir, "bank.csv"), ReadOptions{})
	var unsupported *sheet.UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
}

func TestParseCorrectAnswers(t *testing.T) {
	options := []string{"Paris", "Lyon", "Marseille", "Nice"}
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "exact", raw: "Paris", want: []string{"Paris"}},
		{name: "several", raw: "Paris, Lyon", want: []string{"Paris", "Lyon"}},
		{name: "case", raw: "paris,LYON", want: []string{"Paris", "Lyon"}},
		{name: "partial", raw: "Mars", want: []string{"Marseille"}},
		{name: "longer than option", raw: "Nice (06)", want: []string{"Nice"}},
		{name: "unknown", raw: "Berlin", want: nil},
		{name: "blank", raw: "  ", want: nil},
		{name: "empty parts and repeats", raw: "Paris,,paris, ", want: []string{"Paris"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, ParseCorrectAnswers(tc.raw, options)); diff != "" {
				t.Fatalf("answers mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvertSkipsUnusableRows(t *testing.T) {
	rows := []Row{
		{Text: "Capital?", Type: "radio", Options: []string{"Paris", "", "Lyon"}, Correct: "Paris", Points: "2,5"},
		{Text: "No option", Type: "RADIO", Options: []string{"", " "}, Correct: "A"},
		{Text: "No match", Type: "CHECKBOX", Options: []string{"A", "B"}, Correct: "C"},
		{Text: "Bad points", Type: "CHECKBOX", Options: []string{"A"}, Correct: "A", Points: "nan"},
		{Text: "Defaults", Options: []string{"A", "B"}, Correct: "a, b", Points: "0"},
	}

	built, skipped := Convert(rows)
	want := []Question{
		{Number: 1, Text: "Capital?", Points: 2.5, Single: true, Options: []string{"Paris", "Lyon"}, Correct: []string{"Paris"}},
		{Number: 5, Text: "Defaults", Points: 1, Options: []string{"A", "B"}, Correct: []string{"A", "B"}},
	}
	if diff := cmp.Diff(want, built); diff != "" {
		t.Fatalf("questions mismatch (-want +got):\n%s", diff)
	}
	var numbers []int
	for _, skip := range skipped {
		require.NotEmpty(t, skip.Reason)
		numbers = append(numbers, skip.Number)
	}
	require.Equal(t, []int{2, 3, 4}, numbers)
}

type parsedQuiz struct {
	Questions []struct {
		Type         string `xml:"type,attr"`
		Category     string `xml:"category>text"`
		Name         string `xml:"name>text"`
		Text         string `xml:"questiontext>text"`
		Feedback     string `xml:"generalfeedback>text"`
		DefaultGrade string `xml:"defaultgrade"`
		Single       string `xml:"single"`
		Answers      []struct {
			Fraction string `xml:"fraction,attr"`
			Text     string `xml:"text"`
		} `xml:"answer"`
	} `xml:"question"`
}

func TestMarshalBuildsMoodleQuiz(t *testing.T) {
	items := []Question{
		{Number: 1, Text: `Is 1 < 2 & "true"?`, Feedback: "It's basic", Points: 1.5, Single: true, Options: []string{"Yes", "No"}, Correct: []string{"Yes"}},
		{Number: 3, Text: "Pick <b>two</b>", Points: 1, Options: []string{"A", "B", "C"}, Correct: []string{"A", "C"}},
	}
	body, err := Marshal("Chapitre 1", items)
	require.NoError(t, err)
	doc := string(body)
	require.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`+"\n<quiz>"), doc)
	require.Contains(t, doc, `<text><![CDATA[Is 1 &lt; 2 &amp; &quot;true&quot;?]]></text>`)
	require.Contains(t, doc, "<penalty>0.3333333</penalty>")
	require.Contains(t, doc, "<answernumbering>abc</answernumbering>")
	require.Contains(t, doc, "<text>"+FeedbackPartial+"</text>")

	var quiz parsedQuiz
	require.NoError(t, xml.Unmarshal(body, &quiz))
	require.Len(t, quiz.Questions, 3)
	require.Equal(t, "category", quiz.Questions[0].Type)
	require.Equal(t, "$course$/top/Chapitre 1", quiz.Questions[0].Category)

	first := quiz.Questions[1]
	require.Equal(t, "multichoice", first.Type)
	require.Equal(t, "Question 1", first.Name)
	require.Equal(t, "It&apos;s basic", first.Feedback)
	require.Equal(t, "1.5", first.DefaultGrade)
	require.Equal(t, "true", first.Single)

	second := quiz.Questions[2]
	require.Equal(t, "Question 3", second.Name)
	require.Equal(t, "Pick &lt;b&gt;two&lt;/b&gt;", second.Text)
	require.Equal(t, "false", second.Single)
	var fractions []string
	for _, answer := range second.Answers {
		fractions = append(fractions, answer.Text+"="+answer.Fraction)
	}
	require.Equal(t, []string{"A=100", "B=0", "C=100"}, fractions)
}

func TestMarshalDefaultsCategory(t *testing.T) {
	body, err := Marshal(" ", []Question{{Number: 1, Points: 1, Options: []string{"A"}, Correct: []string{"A"}}})
	require.NoError(t, err)
	require.Contains(t, string(body), "<text>$course$/top/Questions</text>")
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultOutput)
	require.ErrorIs(t, Write(path, "", nil), ErrNoQuestions)
	_, err := os.Stat(path)
	require.True(t, errors.Is(err, os.ErrNotExist))

	require.NoError(t, Write(path, "", []Question{{Number: 1, Points: 1, Options: []string{"A"}, Correct: []string{"A"}}}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `<answer fraction="100" format="html">`)

	require.Error(t, Write(filepath.Join(dir, "missing", "out.xml"), "", []Question{{Number: 1, Options: []string{"A"}, Correct: []string{"A"}}}))
}
