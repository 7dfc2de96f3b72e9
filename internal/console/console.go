// Package console prints the progress lines of the examkit commands.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const ruleWidth = 70

// Printer writes human readable progress lines.
type Printer struct {
	out     io.Writer
	noColor bool
}

// New returns a Printer on out. Styling is disabled when noColor is set or
// out is not a terminal.
func New(out io.Writer, noColor bool) *Printer {
	return &Printer{out: out, noColor: noColor || !shouldUseStyling(out)}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Title prints a banner framed by double rules.
func (p *Printer) Title(text string) {
	rule := strings.Repeat("=", ruleWidth)
	p.println(p.style(rule, lipgloss.Color("33")))
	p.println(p.bold(text, lipgloss.Color("33")))
	p.println(p.style(rule, lipgloss.Color("33")))
}

// Section prints a step heading framed by single rules.
func (p *Printer) Section(text string) {
	rule := strings.Repeat("-", ruleWidth)
	p.println(p.style(rule, lipgloss.Color("240")))
	p.println(p.bold(text, lipgloss.Color("252")))
	p.println(p.style(rule, lipgloss.Color("240")))
}

// OK prints a success line.
func (p *Printer) OK(format string, args ...any) {
	p.mark("✓", lipgloss.Color("42"), format, args...)
}

// Warn prints a warning line.
func (p *Printer) Warn(format string, args ...any) {
	p.mark("⚠", lipgloss.Color("214"), format, args...)
}

// Fail prints an error line.
func (p *Printer) Fail(format string, args ...any) {
	p.mark("✗", lipgloss.Color("196"), format, args...)
}

// Info prints a neutral note.
func (p *Printer) Info(format string, args ...any) {
	p.mark("ℹ", lipgloss.Color("39"), format, args...)
}

// Item prints an indented bullet.
func (p *Printer) Item(format string, args ...any) {
	p.println("   • " + fmt.Sprintf(format, args...))
}

// Detail prints an indented line under the previous one.
func (p *Printer) Detail(format string, args ...any) {
	p.println(p.style("   "+fmt.Sprintf(format, args...), lipgloss.Color("244")))
}

// Line prints unstyled text.
func (p *Printer) Line(format string, args ...any) {
	p.println(fmt.Sprintf(format, args...))
}

// Blank prints an empty line.
func (p *Printer) Blank() {
	p.println("")
}

func (p *Printer) mark(symbol string, color lipgloss.Color, format string, args ...any) {
	p.println(p.style(symbol, color) + " " + fmt.Sprintf(format, args...))
}

func (p *Printer) println(line string) {
	if p == nil || p.out == nil {
		return
	}
	fmt.Fprintln(p.out, line)
}

func (p *Printer) style(text string, color lipgloss.Color) string {
	if p.noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func (p *Printer) bold(text string, color lipgloss.Color) string {
	if p.noColor {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render(text)
}

func shouldUseStyling(writer io.Writer) bool {
	if writer == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := writer.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
