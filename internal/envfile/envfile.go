// Package envfile reads KEY=VALUE environment files.
//
// Files feed two consumers: Load seeds the process environment before
// commands run (variables already set always win), and Parse returns the
// raw pairs for use as a macro resolver source.
package envfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse reads KEY=VALUE pairs from r. Blank lines and #-comments are
// skipped, an optional "export " prefix is stripped, and matching single or
// double quotes around values are removed. Lines without a key are ignored.
func Parse(r io.Reader) (map[string]string, error) {
	vars := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := parseLine(line)
		if !ok {
			continue
		}
		vars[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading env file: %w", err)
	}

	return vars, nil
}

// Load reads the env file at path and sets any variables not already present
// in the environment. A missing file is not an error; only read failures are.
func Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // best-effort close on read-only file

	vars, err := Parse(f)
	if err != nil {
		return fmt.Errorf("env file %s: %w", path, err)
	}

	for key, value := range vars {
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
	return nil
}

// parseLine extracts KEY=VALUE from a line.
func parseLine(line string) (key, value string, ok bool) {
	rawKey, rawValue, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}

	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rawKey), "export "))
	if key == "" {
		return "", "", false
	}

	value = strings.TrimSpace(rawValue)
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
	}

	return key, value, true
}
