package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"examkit/internal/config"
)

func TestValidateCommand(t *testing.T) {
	cases := []struct {
		name     string
		content  string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{name: "no config", wantCode: ExitError, wantErr: "no examkit.yml found"},
		{name: "valid", content: "version: 1\nidentifier:\n  digits: 5\n", wantCode: ExitOK, wantOut: "Config OK"},
		{name: "unknown field", content: "version: 1\nidentifer:\n  digits: 5\n", wantCode: ExitError, wantErr: "Validation failed"},
		{name: "invalid digits", content: "version: 1\nidentifier:\n  digits: -2\n", wantCode: ExitError, wantErr: "identifier.digits"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := inTempDir(t)
			if tc.content != "" {
				if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(tc.content), 0o644); err != nil {
					t.Fatalf("write config: %v", err)
				}
			}
			var out, errOut bytes.Buffer
			code := Run([]string{"validate"}, &out, &errOut)
			if code != tc.wantCode {
				t.Fatalf("expected exit %d, got %d (stderr %q)", tc.wantCode, code, errOut.String())
			}
			if tc.wantOut != "" && !strings.Contains(out.String(), tc.wantOut) {
				t.Fatalf("expected %q in stdout, got %q", tc.wantOut, out.String())
			}
			if tc.wantErr != "" && !strings.Contains(errOut.String(), tc.wantErr) {
				t.Fatalf("expected %q in stderr, got %q", tc.wantErr, errOut.String())
			}
		})
	}
}
