//go:build cucumber
// +build cucumber

package cucumber

import (
	"fmt"
	"strings"

	"examkit/internal/cli"
)

// iRunCommand executes a CLI command for the scenario.
func (s *featureState) iRunCommand(command string) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}
	if args[0] == "examkit" {
		args = args[1:]
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.RunWithInput(args, strings.NewReader(s.answers), &s.stdout, &s.stderr)
	return nil
}
