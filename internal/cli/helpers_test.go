package cli

import (
	"strings"
	"testing"
)

// withInput replaces the prompt input for the duration of the test.
func withInput(t *testing.T, input string) {
	t.Helper()
	original := commandInput
	commandInput = strings.NewReader(input)
	t.Cleanup(func() { commandInput = original })
}

// inTempDir moves the test into an empty working directory so no
// examkit.yml is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}
