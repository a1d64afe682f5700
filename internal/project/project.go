// Package project locates loom's input files on disk.
//
// Input files (macro definitions, settings, changelogs) usually live at a
// project root while loom runs somewhere below it, so lookups walk upward
// through parent directories and take the nearest match.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ErrNotFound reports that no parent directory contains the requested file.
var ErrNotFound = errors.New("not found in any parent directory")

// FindUp searches dir and each of its parents for a file called name and
// returns the path of the nearest match.
func FindUp(dir, name string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving start directory: %w", err)
	}

	for {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		dir = parent
	}
}

// FindUpAny returns the nearest match for any of the given names, trying
// names in order within each directory before ascending.
func FindUpAny(dir string, names ...string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving start directory: %w", err)
	}

	for {
		for _, name := range names {
			path := filepath.Join(dir, name)
			info, err := os.Stat(path)
			if err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%v: %w", names, ErrNotFound)
		}
		dir = parent
	}
}

// ConfigDir returns the loom configuration directory.
//
// Resolution:
//   - $LOOM_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/loom if set (respects XDG on any platform)
//   - %AppData%/loom on Windows
//   - ~/.config/loom on macOS and Linux
func ConfigDir() string {
	// Explicit override
	if dir := os.Getenv("LOOM_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "loom")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "loom")
		}
	}

	// macOS and Linux: ~/.config/loom
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "loom")
}
