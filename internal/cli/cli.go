// Package cli implements the examkit command line: one subcommand per exam
// office chore plus the config helpers.
package cli

import (
	"fmt"
	"io"
)

// Process exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Command groups shown by the root help.
const (
	groupTools = "Exam tools"
	groupSetup = "Settings"
)

// Command is one examkit subcommand.
type Command struct {
	Name    string
	Group   string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

// Run dispatches args to a subcommand and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}
	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}
	return cmd.Run(args[1:], stdout, stderr)
}

// RunWithInput runs the CLI with interactive answers read from stdin.
func RunWithInput(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	previous := commandInput
	commandInput = stdin
	defer func() { commandInput = previous }()
	return Run(args, stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	return arg == "help" || isHelpFlag(arg)
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help"
}

// wantsHelp reports whether a help flag appears anywhere in args, so that
// "examkit scores --out x.xlsx --help" prints help instead of running.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if isHelpFlag(arg) {
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  examkit <command> [options]")
	for _, group := range []string{groupTools, groupSetup} {
		fmt.Fprintf(w, "\n%s:\n", group)
		for _, cmd := range commands {
			if cmd.Group == group {
				fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Summary)
			}
		}
	}
	fmt.Fprintln(w, "\nEvery command reads examkit.yml from the exam folder or a parent when present.")
	fmt.Fprintln(w, "Run \"examkit <command> --help\" for its options.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s.\n", cmd.Summary)
	}
}

// command wires a handler factory to its help text.
func command(group, name, summary string, usage []string, handler func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{Name: name, Group: group, Summary: summary, Usage: usage}
	cmd.Run = handler(cmd)
	return cmd
}

var commands = []*Command{
	command(groupTools, "moodle", "Turn an anonymat/email sheet into a Moodle user upload CSV", []string{
		"examkit moodle [--config <path>] [--skip-header] <input> <output.csv> [cohort-id]",
	}, runMoodle),
	command(groupTools, "licences", "Split the per-licence student files into the two anonymat rosters", []string{
		"examkit licences [--dir <folder>] [--out-17 <file>] [--out-9 <file>] [--yes]",
	}, runLicences),
	command(groupTools, "scores", "Merge an exam score export with a licence roster into a results workbook", []string{
		"examkit scores [--scores <file>] [--licences <file>] [--out <file>] [--ui auto|picker|prompt]",
	}, runScores),
	command(groupTools, "questions", "Convert a multiple choice question bank into a Moodle XML import", []string{
		"examkit questions [--config <path>] [--category <name>] <bank> [output.xml]",
	}, runQuestions),
	command(groupSetup, "init", "Write a commented examkit.yml with the office defaults", []string{
		"examkit init [--config <path>]",
	}, runInit),
	command(groupSetup, "validate", "Check examkit.yml and list every problem found", []string{
		"examkit validate [--config <path>]",
	}, runValidate),
}
