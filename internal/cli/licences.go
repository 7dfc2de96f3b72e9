package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"examkit/internal/config"
	"examkit/internal/licences"
	"examkit/internal/scores"
)

// runLicences builds the handler for the licences command.
func runLicences(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		var opts commonOptions
		opts.register(flags)
		dirFlag := flags.String("dir", "", "Folder holding one spreadsheet per licence (prompted when missing)")
		out17 := flags.String("out-17", "", "Roster of the first bucket (prompted when missing)")
		out9 := flags.String("out-9", "", "Roster of the second bucket (prompted when missing)")
		yes := flags.Bool("yes", false, "Keep duplicates without asking")
		if done, code := parseFlags(cmd, flags, args, stdout, stderr); done {
			return code
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		s, err := opts.open(stdout, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		defer s.close()

		buckets := s.cfg.Licences.Buckets
		partition := s.cfg.Licences.Partition()
		reader := newPromptReader()

		dir := strings.TrimSpace(*dirFlag)
		if dir == "" {
			if dir, err = promptString(reader, stdout, "Folder holding the licence files", "."); err != nil {
				s.errOut.Fail("%v", err)
				return ExitError
			}
		}
		outputs := []string{strings.TrimSpace(*out17), strings.TrimSpace(*out9)}
		for i := range outputs {
			if outputs[i] != "" {
				continue
			}
			label := fmt.Sprintf("Roster for identifiers starting with %s", buckets[i].Label())
			if outputs[i], err = promptString(reader, stdout, label, buckets[i].Output); err != nil {
				s.errOut.Fail("%v", err)
				return ExitError
			}
		}
		for i, output := range outputs {
			path, replaced, err := scores.OutputPath(output)
			if err != nil {
				s.errOut.Fail("%v", err)
				return ExitError
			}
			if replaced != "" {
				s.out.Warn("Extension %s is not supported, writing %s", replaced, path)
			}
			outputs[i] = path
		}
		if config.SameOutput(outputs[0], outputs[1]) {
			s.errOut.Fail("Both rosters would be written to %s, choose two different files", outputs[0])
			return ExitError
		}

		s.out.Title("Licence rosters")
		if abs, err := filepath.Abs(dir); err == nil {
			s.out.Info("Source folder: %s", abs)
		}
		result, err := licences.Aggregate(dir, licences.Options{Partition: partition, Logger: s.logger})
		if err != nil && !errors.Is(err, licences.ErrNoStudents) {
			s.errOut.Fail("%v", err)
			return ExitError
		}
		s.out.Info("%d file(s) found", len(result.Files))
		s.out.Blank()
		s.out.Section("Reading licence files")
		printLicenceFiles(s, result)
		if errors.Is(err, licences.ErrNoStudents) {
			s.errOut.Fail("No student found in the licence files.")
			return ExitError
		}

		s.out.Section("Checking duplicates")
		duplicates := false
		for i, bucket := range partition {
			dups := result.Duplicates(i)
			if len(dups) == 0 {
				continue
			}
			duplicates = true
			s.out.Warn("Duplicates among identifiers starting with %s:", bucket.Label())
			for _, dup := range dups {
				s.out.Item("Number %d: %s", dup.Number, strings.Join(dup.Licences, ", "))
			}
		}
		if !duplicates {
			s.out.OK("No duplicate")
		} else if !*yes {
			keep, err := promptYesNo(reader, stdout, "Continue and keep every duplicate?", false)
			if err != nil {
				s.errOut.Fail("%v", err)
				return ExitError
			}
			if !keep {
				s.out.Line("Cancelled.")
				return ExitOK
			}
		}
		s.out.Blank()

		s.out.Section("Writing rosters")
		for i, bucket := range partition {
			entries := result.Buckets[i]
			if len(entries) == 0 {
				s.out.Warn("No student with an identifier starting with %s, %s not written", bucket.Label(), filepath.Base(outputs[i]))
				continue
			}
			if err := licences.Write(outputs[i], entries); err != nil {
				s.errOut.Fail("%v", err)
				return ExitError
			}
			s.out.OK("%s written with %d students (identifiers %s)", outputs[i], len(entries), bucket.Label())
		}
		s.out.Blank()
		printLicenceStats(s, result)
		return ExitOK
	}
}

func printLicenceFiles(s *session, result licences.Result) {
	for _, file := range result.Files {
		s.out.Line("%s", file.Name)
		s.out.Detail("Licence: %s", file.Licence)
		switch {
		case file.Err != nil:
			s.out.Warn("%v", file.Err)
		case file.Total == 0:
			s.out.Warn("No identifier found")
		default:
			s.out.OK("%d identifier(s) found", file.Total)
			for i, bucket := range result.Partition {
				s.out.Detail("→ %d starting with %s", file.PerBucket[i], bucket.Label())
			}
			if len(file.Outside) > 0 {
				s.out.Warn("%d identifier(s) outside every bucket: %s", len(file.Outside), joinNumbers(file.Outside))
			}
		}
		s.out.Blank()
	}
	for _, diag := range result.Diagnostics {
		s.out.Warn("%s line %d: %q ignored (%s)", filepath.Base(diag.File), diag.Line, diag.Value, diag.Reason)
	}
}

func printLicenceStats(s *session, result licences.Result) {
	s.out.Section("Statistics")
	s.out.Line("Total students: %d", result.Total())
	s.out.Blank()

	counts := map[string][]int{}
	for i, bucket := range result.Buckets {
		for _, entry := range bucket {
			if counts[entry.Licence] == nil {
				counts[entry.Licence] = make([]int, len(result.Buckets))
			}
			counts[entry.Licence][i]++
		}
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	s.out.Line("Students per licence:")
	for _, name := range names {
		total := 0
		parts := make([]string, 0, len(result.Partition))
		for i, bucket := range result.Partition {
			total += counts[name][i]
			parts = append(parts, fmt.Sprintf("%3d in %s", counts[name][i], bucket.Label()))
		}
		s.out.Item("%-15s : %3d total  (%s)", name, total, strings.Join(parts, ", "))
	}
	s.out.Blank()
	for i, bucket := range result.Partition {
		s.out.Line("Roster %s: %d students", bucket.Label(), len(result.Buckets[i]))
	}
}

func joinNumbers(numbers []int64) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}
