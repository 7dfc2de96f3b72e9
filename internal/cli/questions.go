package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"examkit/internal/questions"
)

// runQuestions builds the handler for the questions command.
func runQuestions(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		var opts commonOptions
		opts.register(flags)
		categoryFlag := flags.String("category", "", "Moodle category of the questions (default from config)")
		if done, code := parseFlags(cmd, flags, args, stdout, stderr); done {
			return code
		}
		if flags.NArg() < 1 || flags.NArg() > 2 {
			fmt.Fprintln(stderr, "expected <bank> [output.xml]")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		s, err := opts.open(stdout, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		defer s.close()

		input := flags.Arg(0)
		output := strings.TrimSpace(flags.Arg(1))
		if output == "" {
			output = s.cfg.Questions.Output
		}
		category := strings.TrimSpace(*categoryFlag)
		if category == "" {
			category = s.cfg.Questions.Category
		}

		s.out.Title("Moodle question bank")
		s.out.Line("Bank:     %s", input)
		s.out.Line("Output:   %s", output)
		s.out.Line("Category: %s", category)
		s.out.Blank()

		if _, err := os.Stat(input); err != nil {
			s.errOut.Fail("File not found: %s", input)
			return ExitError
		}
		rows, err := questions.ReadBank(input, questions.ReadOptions{Logger: s.logger})
		if err != nil {
			if errors.Is(err, questions.ErrNoQuestions) {
				s.errOut.Warn("No question found in %s", input)
				return ExitError
			}
			s.errOut.Fail("Cannot read %s: %v", input, err)
			s.errOut.Info("Expected columns: %s, Required, option 2-%d, Commentaires", strings.Join(questions.RequiredColumns(), ", "), questions.MaxOptions)
			return ExitError
		}
		s.out.OK("%d question(s) read", len(rows))

		built, skipped := questions.Convert(rows)
		for _, skip := range skipped {
			s.out.Warn("Question %d skipped: %s", skip.Number, skip.Reason)
		}
		if err := questions.Write(output, category, built); err != nil {
			if errors.Is(err, questions.ErrNoQuestions) {
				s.errOut.Fail("No usable question in %s, nothing written", input)
				return ExitError
			}
			s.errOut.Fail("Cannot write %s: %v", output, err)
			return ExitError
		}

		abs, err := filepath.Abs(output)
		if err != nil {
			abs = output
		}
		s.out.OK("%d question(s) exported to %s", len(built), abs)
		s.out.Info("Import in Moodle from Question bank > Import > Moodle XML format")
		s.logger.Debug("question bank exported",
			zap.String("path", abs),
			zap.String("category", category),
			zap.Int("questions", len(built)),
			zap.Int("skipped", len(skipped)))
		return ExitOK
	}
}
