package console

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinterPlainOutput(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, false)

	p.Section("Reading")
	p.OK("%d notes", 3)
	p.Warn("skipped %s", "row")
	p.Fail("broken")
	p.Item("L1 : %d", 2)

	got := out.String()
	for _, want := range []string{"Reading\n", "✓ 3 notes\n", "⚠ skipped row\n", "✗ broken\n", "   • L1 : 2\n"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
	if strings.Contains(got, "\x1b[") {
		t.Fatalf("expected no escape codes for a buffer, got %q", got)
	}
}

func TestPrinterTitleRules(t *testing.T) {
	var out bytes.Buffer
	New(&out, true).Title("examkit")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 || lines[1] != "examkit" {
		t.Fatalf("unexpected title output %q", out.String())
	}
	if lines[0] != strings.Repeat("=", ruleWidth) {
		t.Fatalf("unexpected rule %q", lines[0])
	}
}

func TestNilPrinterIsSilent(t *testing.T) {
	var p *Printer
	p.Line("ignored")
}
