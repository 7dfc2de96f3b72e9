package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// inputSource says how the scores command asks for a file it was not given.
type inputSource int

const (
	askWithPrompt inputSource = iota
	askWithPicker
)

// Values accepted by --ui.
const (
	uiAuto   = "auto"
	uiPicker = "picker"
	uiPrompt = "prompt"
)

// isTerminal is swapped by tests that need an interactive stdout.
var isTerminal = stdoutIsTerminal

// resolveInputSource maps --ui to an input source. Asking for the picker on a
// redirected stdout degrades to typed paths and returns a notice to print.
func resolveInputSource(mode string, stdout io.Writer) (source inputSource, notice string, err error) {
	interactive := isTerminal(stdout)
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", uiAuto:
		if interactive {
			return askWithPicker, "", nil
		}
		return askWithPrompt, "", nil
	case uiPicker:
		if interactive {
			return askWithPicker, "", nil
		}
		return askWithPrompt, "No terminal attached, type the file paths instead of browsing.", nil
	case uiPrompt:
		return askWithPrompt, "", nil
	}
	return askWithPrompt, "", fmt.Errorf("unknown --ui value %q, use %s, %s or %s", mode, uiAuto, uiPicker, uiPrompt)
}

func stdoutIsTerminal(stdout io.Writer) bool {
	switch w := stdout.(type) {
	case *os.File:
		return w != nil && term.IsTerminal(int(w.Fd()))
	case interface{ Fd() uintptr }:
		return term.IsTerminal(int(w.Fd()))
	}
	return false
}
