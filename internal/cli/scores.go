package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"examkit/internal/scores"
	"examkit/internal/ui/picker"
)

// pickFile allows tests to replace the terminal file picker.
var pickFile = picker.Run

var (
	scoreTypes   = []string{".csv", ".xlsx", ".xls"}
	licenceTypes = []string{".csv", ".xlsx", ".xls", ".ods"}
)

// runScores builds the handler for the scores command.
func runScores(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		var opts commonOptions
		opts.register(flags)
		scoresFlag := flags.String("scores", "", "Score export (.csv or legacy .xlsx/.xls)")
		licencesFlag := flags.String("licences", "", "Licence roster (.csv, .xlsx, .xls or .ods)")
		outFlag := flags.String("out", "", "Results workbook (prompted when missing)")
		uiMode := flags.String("ui", "auto", "How missing files are chosen: auto|picker|prompt")
		if done, code := parseFlags(cmd, flags, args, stdout, stderr); done {
			return code
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		source, notice, err := resolveInputSource(*uiMode, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		s, err := opts.open(stdout, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		defer s.close()
		if notice != "" {
			s.errOut.Warn("%s", notice)
		}

		ctx := context.Background()
		reader := newPromptReader()
		s.out.Title("Exam scores by licence")
		s.out.Blank()

		chooser := fileChooser{ctx: ctx, reader: reader, out: stdout, usePicker: source == askWithPicker, noColor: opts.noColor}
		scoresPath, err := chooser.choose(*scoresFlag, "Select the score export (.csv, .xlsx, .xls)", scoreTypes)
		if err != nil {
			s.errOut.Fail("%v", err)
			return ExitError
		}
		if scoresPath == "" {
			s.out.Fail("No file selected. Aborting.")
			return ExitOK
		}
		s.out.OK("Score export: %s", scoresPath)
		licencesPath, err := chooser.choose(*licencesFlag, "Select the licence roster (.csv, .xlsx, .xls, .ods)", licenceTypes)
		if err != nil {
			s.errOut.Fail("%v", err)
			return ExitError
		}
		if licencesPath == "" {
			s.out.Fail("No file selected. Aborting.")
			return ExitOK
		}
		s.out.OK("Licence roster: %s", licencesPath)
		output := strings.TrimSpace(*outFlag)
		if output == "" {
			if output, err = promptString(reader, stdout, "Output file", s.cfg.Scores.Output); err != nil {
				s.errOut.Fail("%v", err)
				return ExitError
			}
		}
		s.out.Blank()

		s.out.Section("Reading the score export")
		layout := s.cfg.Scores.LegacyLayout
		digits := s.cfg.Identifier.Digits
		notes, err := scores.ReadNotes(scoresPath, layout, digits)
		if err != nil {
			s.errOut.Fail("Cannot read %s: %v", scoresPath, err)
			return ExitError
		}
		s.logger.Debug("score export read",
			zap.String("path", scoresPath),
			zap.Int("records", notes.Len()),
			zap.Int("rates", len(notes.Rates)))
		printNotes(s, notes, layout, digits)

		s.out.Section("Splitting identifiers")
		split, files, err := scores.WriteSplit(scoresPath, notes, s.cfg.Scores.Buckets, layout)
		if err != nil {
			s.errOut.Fail("%v", err)
			return ExitError
		}
		for _, record := range split.Outside {
			s.out.Warn("Number %s starts with '%c', ignored", record.ID, record.ID[0])
		}
		for _, file := range files {
			s.out.OK("%d number(s) starting with %s → %s", file.Count, file.Bucket.Label(), file.Path)
		}
		s.out.Blank()

		s.out.Section("Reading the licence roster")
		roster, err := scores.ReadRoster(licencesPath)
		if err != nil {
			s.errOut.Fail("Cannot read %s: %v", licencesPath, err)
			return ExitError
		}
		s.out.OK("%d student(s) in the roster", roster.Len())
		for _, issue := range roster.Issues {
			s.out.Warn("Line %d: %q ignored (%s)", issue.Line, issue.Value, issue.Reason)
		}
		s.out.Blank()

		s.out.Section("Organizing by licence")
		s.out.Info("Marks to process: %d", notes.Len())
		s.out.Info("Students in the roster: %d", roster.Len())
		org := scores.Organize(notes.Records, roster)
		if len(org.Unmatched) > 0 {
			s.out.Warn("%d student(s) not found in the roster:", len(org.Unmatched))
			for _, record := range org.UnmatchedByID() {
				s.out.Item("CREM number %s (mark %.2f)", record.ID, record.Mark)
			}
			s.out.Line("Students processed: %d/%d", org.Matched(), org.Total)
		}
		printBreakdown(s, org)

		if len(org.Unmatched) > 0 {
			if err := assignUnmatched(reader, stdout, s, org, roster); err != nil {
				s.errOut.Fail("%v", err)
				return ExitError
			}
		}
		groups, err := configureGroups(reader, stdout, s, s.cfg.Scores.Groups, org.Licences())
		if err != nil {
			s.errOut.Fail("%v", err)
			return ExitError
		}

		s.out.Section("Writing the report")
		path, replaced, err := scores.OutputPath(output)
		if err != nil {
			s.errOut.Fail("%v", err)
			return ExitError
		}
		if replaced != "" {
			s.out.Warn("Extension %s is not supported, using .xlsx instead", replaced)
		}
		stats, err := scores.ComputeStats(ctx, org)
		if err != nil {
			s.errOut.Fail("Cannot compute statistics: %v", err)
			return ExitError
		}
		report, err := scores.BuildReport(org, notes.Rates, groups, stats)
		if err != nil {
			s.errOut.Fail("Cannot build the report: %v", err)
			return ExitError
		}
		if err := report.Save(path); err != nil {
			s.errOut.Fail("Cannot write the report: %v", err)
			return ExitError
		}
		for _, sheet := range report.Sheets {
			switch {
			case sheet.Name == scores.SheetStats:
				s.out.OK("Sheet %q written", sheet.Name)
			case sheet.Name == scores.SheetUnmatched:
				s.out.Warn("Sheet %q written with %d student(s)", sheet.Name, sheet.Students)
			case sheet.Licences > 1:
				s.out.OK("Sheet %q written with %d student(s) from %d licence(s)", sheet.Name, sheet.Students, sheet.Licences)
			default:
				s.out.OK("Sheet %q written with %d student(s)", sheet.Name, sheet.Students)
			}
		}
		for _, skipped := range report.Skipped {
			s.out.Warn("Group %q: %s, sheet not created", skipped.Name, skipped.Reason)
		}
		s.logger.Debug("report written", zap.String("path", path), zap.String("run_id", report.RunID))

		s.out.Blank()
		s.out.Title("Done")
		s.out.Line("Report: %s", path)
		s.out.Line("Run: %s", report.RunID)
		s.out.Line("%d licence(s) processed", len(org.ByLicence))
		if len(org.Unmatched) > 0 {
			s.out.Warn("%d student(s) without licence", len(org.Unmatched))
		}
		return ExitOK
	}
}

// fileChooser resolves an input path from a flag, the picker or a prompt.
type fileChooser struct {
	ctx       context.Context
	reader    *bufio.Reader
	out       io.Writer
	usePicker bool
	noColor   bool
}

func (c fileChooser) choose(flagValue, title string, types []string) (string, error) {
	if path := strings.TrimSpace(flagValue); path != "" {
		return path, nil
	}
	if c.usePicker {
		return pickFile(c.ctx, picker.Options{Title: title, Dir: ".", AllowedTypes: types, NoColor: c.noColor, Output: c.out})
	}
	return promptOptional(c.reader, c.out, title+" (path, empty to abort):")
}

func printNotes(s *session, notes *scores.Notes, layout scores.LegacyLayout, digits int) {
	s.out.OK("File loaded: %d rows x %d columns", notes.Rows, notes.Columns)
	if notes.Padded {
		s.out.Warn("The file has %d columns, %d expected", notes.Columns, layout.Width)
		s.out.Info("Missing columns are read as empty cells")
	}
	s.out.OK("%d success rate(s)", len(notes.Rates))
	s.out.OK("%d mark(s) extracted", notes.Len())
	if notes.Skipped > 0 {
		s.out.Warn("%d row(s) ignored (missing data)", notes.Skipped)
	}
	if len(notes.Diagnostics) == 0 {
		s.out.Blank()
		return
	}
	s.out.Warn("%d validation error(s)", len(notes.Diagnostics))
	s.out.Blank()
	s.out.Section("Validation errors")
	s.out.Line("These anonymat numbers are invalid (expected %d digits):", digits)
	for i, diag := range notes.Diagnostics {
		s.out.Line("%d. Line %d: number '%s' (mark %.2f)", i+1, diag.Line, diag.ID, diag.Mark)
		s.out.Detail("→ %s", diag.Reason)
	}
	s.out.Line("These students are left out of every output. Fix the source file and run again.")
	s.out.Blank()
}

func printBreakdown(s *session, org *scores.Organized) {
	if len(org.ByLicence) == 0 {
		s.out.Blank()
		return
	}
	s.out.Line("Students per licence:")
	for _, licence := range org.Licences() {
		s.out.Item("%s: %d student(s)", licence, len(org.ByLicence[licence]))
	}
	s.out.Blank()
}

func assignUnmatched(reader *bufio.Reader, stdout io.Writer, s *session, org *scores.Organized, roster *scores.Roster) error {
	available := roster.Licences()
	s.out.Section("Students missing from the roster")
	for i, record := range org.Unmatched {
		s.out.Line("%d. Number %s (mark %.2f)", i+1, record.ID, record.Mark)
	}
	s.out.Blank()
	s.out.Line("Licences in the roster:")
	for i, licence := range available {
		s.out.Line("  %d. %s", i+1, licence)
	}
	s.out.Blank()
	assign, err := promptYesNo(reader, stdout, "Assign these students to licences?", false)
	if err != nil {
		return err
	}
	if !assign {
		s.out.Line("Students not found stay in the %q sheet.", scores.SheetUnmatched)
		s.out.Blank()
		return nil
	}

	var remaining []scores.Record
	for _, record := range org.Unmatched {
		answer, err := promptOptional(reader, stdout, fmt.Sprintf("Student %s (mark %.2f): licence number or name, 'i' to ignore", record.ID, record.Mark))
		if err != nil {
			return err
		}
		choice, err := scores.ParseLicenceChoice(answer, available)
		if err != nil {
			s.out.Warn("%v, student %s ignored", err, record.ID)
			remaining = append(remaining, record)
			continue
		}
		if choice.Ignore {
			s.out.Line("→ Student %s ignored", record.ID)
			remaining = append(remaining, record)
			continue
		}
		org.Assign(record, choice.Licence, roster)
		s.out.OK("Student %s assigned to licence %q", record.ID, choice.Licence)
	}
	org.Unmatched = remaining
	org.Resort()
	if len(remaining) > 0 {
		s.out.Warn("%d student(s) stay without licence", len(remaining))
	}
	s.out.Blank()
	return nil
}

func configureGroups(reader *bufio.Reader, stdout io.Writer, s *session, names []string, available []string) ([]scores.Group, error) {
	groups := make([]scores.Group, 0, len(names))
	s.out.Section("Group configuration")
	if len(available) == 0 {
		s.out.Warn("No licence available, groups skipped")
		for _, name := range names {
			groups = append(groups, scores.Group{Name: name})
		}
		s.out.Blank()
		return groups, nil
	}
	s.out.Line("Available licences:")
	for i, licence := range available {
		s.out.Line("  %d. %s", i+1, licence)
	}
	s.out.Blank()
	for _, name := range names {
		answer, err := promptOptional(reader, stdout, fmt.Sprintf("%s: licence numbers separated by commas, 'tous' for all, 'aucun' to skip", name))
		if err != nil {
			return nil, err
		}
		selection := scores.ParseGroupSelection(answer, available)
		for _, warning := range selection.Warnings {
			s.out.Warn("%s", warning)
		}
		switch {
		case selection.All:
			s.out.OK("All licences selected for %s", name)
		case len(selection.Licences) == 0:
			s.out.Line("→ No licence selected for %s", name)
		default:
			s.out.OK("%d licence(s) selected for %s", len(selection.Licences), name)
		}
		groups = append(groups, scores.Group{Name: name, Licences: selection.Licences})
	}
	s.out.Blank()
	return groups, nil
}
