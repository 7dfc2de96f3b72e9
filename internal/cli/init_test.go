package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"examkit/internal/config"
)

func TestInitWritesLoadableConfig(t *testing.T) {
	dir := inTempDir(t)

	var out, errOut bytes.Buffer
	code := Run([]string{"init", "--yes"}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr %q)", ExitOK, code, errOut.String())
	}
	target := filepath.Join(dir, config.FileName)
	if !strings.Contains(out.String(), "Wrote ") {
		t.Fatalf("expected confirmation, got %q", out.String())
	}
	if _, err := config.Load(target); err != nil {
		t.Fatalf("load scaffolded config: %v", err)
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	dir := inTempDir(t)
	target := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(target, []byte("identifier:\n  digits: 4\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var out, errOut bytes.Buffer
	code := Run([]string{"init", "--yes"}, &out, &errOut)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut.String(), "already exists") {
		t.Fatalf("expected overwrite refusal, got %q", errOut.String())
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if string(data) != "identifier:\n  digits: 4\n" {
		t.Fatalf("config was modified: %q", data)
	}
}

func TestInitAsksForConfirmation(t *testing.T) {
	dir := inTempDir(t)
	withInput(t, "non\n")

	var out, errOut bytes.Buffer
	code := Run([]string{"init", "--config", "custom.yml"}, &out, &errOut)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut.String(), "Init cancelled.") {
		t.Fatalf("expected cancellation, got %q", errOut.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "custom.yml")); !os.IsNotExist(err) {
		t.Fatalf("expected no config file, got %v", err)
	}
}
