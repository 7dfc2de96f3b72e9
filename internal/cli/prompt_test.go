package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestPromptYesNoAcceptsFrenchAnswers(t *testing.T) {
	cases := []struct {
		input      string
		defaultYes bool
		want       bool
	}{
		{input: "o\n", want: true},
		{input: "oui\n", want: true},
		{input: "Y\n", want: true},
		{input: "non\n", defaultYes: true, want: false},
		{input: "\n", defaultYes: true, want: true},
		{input: "", defaultYes: false, want: false},
		{input: "peut-être\nn\n", defaultYes: true, want: false},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		got, err := promptYesNo(bufio.NewReader(strings.NewReader(tc.input)), &out, "Continue?", tc.defaultYes)
		if err != nil {
			t.Fatalf("input %q: unexpected error %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("input %q: expected %v, got %v", tc.input, tc.want, got)
		}
	}
}

func TestPromptStringUsesDefault(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("\n  custom.xlsx \n"))

	first, err := promptString(reader, &out, "Output file", "resultats.xlsx")
	if err != nil || first != "resultats.xlsx" {
		t.Fatalf("expected default, got %q (%v)", first, err)
	}
	second, err := promptString(reader, &out, "Output file", "resultats.xlsx")
	if err != nil || second != "custom.xlsx" {
		t.Fatalf("expected trimmed answer, got %q (%v)", second, err)
	}
	if !strings.Contains(out.String(), "Output file [resultats.xlsx]: ") {
		t.Fatalf("unexpected prompt %q", out.String())
	}
}

func TestPromptOptionalAllowsEmpty(t *testing.T) {
	var out bytes.Buffer
	got, err := promptOptional(bufio.NewReader(strings.NewReader("")), &out, "Path")
	if err != nil || got != "" {
		t.Fatalf("expected empty answer, got %q (%v)", got, err)
	}
}

func TestPromptStringFailsWithoutAnswer(t *testing.T) {
	var out bytes.Buffer
	if _, err := promptString(bufio.NewReader(strings.NewReader("\n  \n")), &out, "Folder holding the licence files", ""); err == nil {
		t.Fatalf("expected an error once input ends without an answer")
	}
	if _, err := promptYesNo(bufio.NewReader(strings.NewReader("bof")), &out, "Continue?", true); err == nil {
		t.Fatalf("expected an unknown final answer to fail")
	}
}
