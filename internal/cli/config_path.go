package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"examkit/internal/config"
)

// resolveConfigPath normalizes a config path or finds it from CWD. An empty
// result means no config file exists.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// loadConfig loads the resolved config, or the defaults when none exists.
func loadConfig(configPath string) (config.Config, string, error) {
	resolved, err := resolveConfigPath(configPath)
	if err != nil {
		return config.Config{}, "", err
	}
	if resolved == "" {
		return config.Default(), "", nil
	}
	cfg, err := config.Load(resolved)
	if err != nil {
		return config.Config{}, resolved, err
	}
	return cfg, resolved, nil
}
