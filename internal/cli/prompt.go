package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// commandInput feeds every interactive question; tests replace it.
var commandInput io.Reader = os.Stdin

func newPromptReader() *bufio.Reader {
	if commandInput == nil {
		return bufio.NewReader(os.Stdin)
	}
	return bufio.NewReader(commandInput)
}

// yesNoAnswers maps accepted answers, English or French, to their meaning.
var yesNoAnswers = map[string]bool{
	"y": true, "yes": true, "o": true, "oui": true,
	"n": false, "no": false, "non": false,
}

// ask prints question and returns the trimmed answer. ended is set when the
// operator closed the input, in which case the answer may still be non empty.
func ask(reader *bufio.Reader, out io.Writer, question string) (answer string, ended bool, err error) {
	fmt.Fprint(out, question)
	line, err := reader.ReadString('\n')
	switch {
	case errors.Is(err, io.EOF):
		ended = true
	case err != nil:
		return "", false, fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), ended, nil
}

// promptString asks until it gets a value. A blank answer picks
// defaultValue when there is one.
func promptString(reader *bufio.Reader, out io.Writer, label, defaultValue string) (string, error) {
	question := label + ": "
	if defaultValue != "" {
		question = fmt.Sprintf("%s [%s]: ", label, defaultValue)
	}
	for {
		answer, ended, err := ask(reader, out, question)
		if err != nil {
			return "", err
		}
		switch {
		case answer != "":
			return answer, nil
		case defaultValue != "":
			return defaultValue, nil
		case ended:
			return "", fmt.Errorf("no answer given for %q", label)
		}
	}
}

// promptOptional asks once on its own line; an empty answer is returned as is.
func promptOptional(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	answer, _, err := ask(reader, out, label+"\n➜ ")
	if err != nil {
		return "", err
	}
	fmt.Fprintln(out)
	return answer, nil
}

// promptYesNo asks a confirmation. A blank answer or a closed input keeps
// defaultYes; anything unknown is asked again while input remains.
func promptYesNo(reader *bufio.Reader, out io.Writer, label string, defaultYes bool) (bool, error) {
	choices := "y/N"
	if defaultYes {
		choices = "Y/n"
	}
	for {
		answer, ended, err := ask(reader, out, fmt.Sprintf("%s [%s]: ", label, choices))
		if err != nil {
			return false, err
		}
		if answer == "" {
			if ended {
				fmt.Fprintln(out)
			}
			return defaultYes, nil
		}
		if yes, ok := yesNoAnswers[strings.ToLower(answer)]; ok {
			return yes, nil
		}
		if ended {
			return false, fmt.Errorf("%q is neither yes nor no", answer)
		}
		fmt.Fprintln(out, "Answer o/oui or n/non (y/yes or n/no also work).")
	}
}
