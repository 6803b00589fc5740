package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when an explicitly requested config file is missing.
var ErrNotFound = errors.New("config file not found")

// DefaultConfigPaths returns the search order for config files.
func DefaultConfigPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "cronwrap", "config.yaml"))
	}
	paths = append(paths, "/etc/cronwrap/config.yaml")
	return paths
}

// Resolve loads the config from the given explicit path, or searches the
// default locations. Unlike an explicit path, a missing default file is not
// an error: cronwrap works without any config. It fills in Hostname from
// os.Hostname() if empty. The returned path is empty when defaults are used.
func Resolve(explicit string) (*Config, string, error) {
	path, err := findConfig(explicit, DefaultConfigPaths())
	if err != nil {
		return nil, "", err
	}

	cfg := Default()
	if path != "" {
		cfg, err = Load(path)
		if err != nil {
			return nil, "", err
		}
	}

	if cfg.Hostname == "" {
		h, err := os.Hostname()
		if err != nil {
			return nil, "", fmt.Errorf("resolving hostname: %w", err)
		}
		cfg.Hostname = h
	}

	return cfg, path, nil
}

func findConfig(explicit string, defaults []string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotFound, explicit)
		}
		return explicit, nil
	}

	for _, p := range defaults {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", nil
}
