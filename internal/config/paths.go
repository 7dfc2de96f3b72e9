package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the settings file created by "examkit init".
const FileName = "examkit.yml"

// fileNames lists the settings file spellings accepted in each exam folder.
var fileNames = []string{FileName, "examkit.yaml"}

// FindConfigPath walks from startDir (the working directory when blank) up to
// the filesystem root and returns the first settings file met. Running
// without settings is allowed, so a miss returns "" and no error.
func FindConfigPath(startDir string) (string, error) {
	dir := strings.TrimSpace(startDir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("locate exam folder: %w", err)
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("locate exam folder %q: %w", startDir, err)
	}
	for {
		found, err := settingsIn(dir)
		if found != "" || err != nil {
			return found, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func settingsIn(dir string) (string, error) {
	for _, name := range fileNames {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		switch {
		case os.IsNotExist(err):
			continue
		case err != nil:
			return "", fmt.Errorf("inspect settings %q: %w", candidate, err)
		case info.IsDir():
			return "", fmt.Errorf("settings %q is a folder, expected a YAML file", candidate)
		}
		return candidate, nil
	}
	return "", nil
}

// SameOutput reports whether two workbook paths name the same file. Case is
// ignored since exam folders often live on case-insensitive shares.
func SameOutput(a, b string) bool {
	return strings.EqualFold(outputKey(a), outputKey(b))
}

func outputKey(path string) string {
	path = strings.TrimSpace(path)
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
