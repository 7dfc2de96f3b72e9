package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"examkit/internal/moodle"
)

// runMoodle builds the handler for the moodle command.
func runMoodle(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		var opts commonOptions
		opts.register(flags)
		skipHeader := flags.Bool("skip-header", false, "Ignore the first row of the input")
		if done, code := parseFlags(cmd, flags, args, stdout, stderr); done {
			return code
		}
		if flags.NArg() < 2 || flags.NArg() > 3 {
			fmt.Fprintln(stderr, "expected <input> <output.csv> [cohort-id]")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		input := flags.Arg(0)
		output := flags.Arg(1)
		cohort := strings.TrimSpace(flags.Arg(2))

		s, err := opts.open(stdout, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		defer s.close()

		s.out.Title("Moodle user upload")
		s.out.Line("Input file:  %s", input)
		s.out.Line("Output file: %s", output)
		if cohort != "" {
			s.out.Line("Cohort:      %s", cohort)
		} else {
			s.out.Line("Cohort:      none")
		}
		s.out.Blank()

		if _, err := os.Stat(input); err != nil {
			s.errOut.Fail("File not found: %s", input)
			return ExitError
		}
		entries, err := moodle.ReadEntries(input, moodle.ReadOptions{SkipHeader: *skipHeader, Logger: s.logger})
		if err != nil {
			s.errOut.Fail("Cannot read %s: %v", input, err)
			return ExitError
		}
		s.out.OK("%d entries read", len(entries))

		profile := moodle.Profile{Auth: s.cfg.Moodle.Auth, FirstName: s.cfg.Moodle.FirstName}
		if err := moodle.Write(output, entries, profile, cohort); err != nil {
			if errors.Is(err, moodle.ErrNoEntries) {
				s.errOut.Warn("No data found in %s", input)
				return ExitError
			}
			s.errOut.Fail("Cannot write %s: %v", output, err)
			return ExitError
		}

		abs, err := filepath.Abs(output)
		if err != nil {
			abs = output
		}
		s.out.OK("%d users exported to %s", len(entries), abs)
		if cohort != "" {
			s.out.OK("Every user will be enrolled in cohort %s", cohort)
		}
		header, _ := moodle.Rows(nil, profile, cohort)
		s.out.Info("CSV header: %s", strings.Join(header, ","))
		return ExitOK
	}
}
