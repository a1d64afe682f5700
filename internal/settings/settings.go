// Package settings parses INI-like settings files and exposes their values
// as macro resolver sources.
//
// The format is a single-pass line protocol: [section] headers, key = value
// pairs, and comments starting with # or ;. Values may be wrapped in single
// or double quotes. Keys seen before any header land in the default section.
package settings

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gorewood/loom/internal/macro"
)

// File is a parsed settings file.
type File struct {
	sections map[string]*Section
	order    []string
	Path     string
}

// Section is a named group of key/value pairs within a settings file.
type Section struct {
	name   string
	values map[string]string
	order  []string
}

// Load reads and parses the settings file at path.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening settings file %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // best-effort close on read-only file

	parsed, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing settings file %s: %w", path, err)
	}
	parsed.Path = path
	return parsed, nil
}

// Parse reads an INI-like settings stream.
func Parse(r io.Reader) (*File, error) {
	file := &File{sections: make(map[string]*Section)}
	section := file.section("")

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())

		// Skip blank lines and comments
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			name, ok := parseHeader(line)
			if !ok {
				return nil, fmt.Errorf("line %d: malformed section header %q", lineno, line)
			}
			section = file.section(name)
			continue
		}

		key, value, ok := parsePair(line)
		if !ok {
			return nil, fmt.Errorf("line %d: expected key = value, got %q", lineno, line)
		}
		section.set(key, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	return file, nil
}

// ParseString parses settings from an in-memory string.
func ParseString(s string) (*File, error) {
	return Parse(strings.NewReader(s))
}

// parseHeader extracts the section name from a [name] line.
func parseHeader(line string) (string, bool) {
	if !strings.HasSuffix(line, "]") {
		return "", false
	}
	name := strings.TrimSpace(line[1 : len(line)-1])
	if name == "" {
		return "", false
	}
	return name, true
}

// parsePair extracts key and value from a key = value line.
// Handles optional quoting (single or double quotes) around the value.
func parsePair(line string) (key, value string, ok bool) {
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return "", "", false
	}

	key = strings.TrimSpace(parts[0])
	value = strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", false
	}

	// Strip matching quotes from the value
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
	}

	return key, value, true
}

// section returns the named section, creating it on first use.
func (f *File) section(name string) *Section {
	if s, ok := f.sections[name]; ok {
		return s
	}
	s := &Section{name: name, values: make(map[string]string)}
	f.sections[name] = s
	f.order = append(f.order, name)
	return s
}

// Section returns the named section, or nil if the file has none. The empty
// name addresses the default section.
func (f *File) Section(name string) *Section {
	return f.sections[name]
}

// Sections returns the section names in file order. The default section is
// included only when it holds values.
func (f *File) Sections() []string {
	names := make([]string, 0, len(f.order))
	for _, name := range f.order {
		if name == "" && len(f.sections[name].values) == 0 {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Resolver resolves bare keys against the default section and dotted
// section.key names against named sections.
func (f *File) Resolver() macro.Resolver {
	return func(name string) (string, bool) {
		if s := f.sections[""]; s != nil {
			if value, ok := s.Get(name); ok {
				return value, true
			}
		}
		i := strings.LastIndex(name, ".")
		if i < 0 {
			return "", false
		}
		s := f.sections[name[:i]]
		if s == nil {
			return "", false
		}
		return s.Get(name[i+1:])
	}
}

// Names returns every resolvable name in the file: bare keys of the default
// section and section.key pairs, in file order.
func (f *File) Names() []string {
	var names []string
	for _, sectionName := range f.order {
		s := f.sections[sectionName]
		for _, key := range s.order {
			if sectionName == "" {
				names = append(names, key)
				continue
			}
			names = append(names, sectionName+"."+key)
		}
	}
	return names
}

// set records a key/value pair, keeping first-seen key order.
func (s *Section) set(key, value string) {
	if _, seen := s.values[key]; !seen {
		s.order = append(s.order, key)
	}
	s.values[key] = value
}

// Name returns the section's name; the default section's name is empty.
func (s *Section) Name() string {
	return s.name
}

// Get looks up a key in the section.
func (s *Section) Get(key string) (string, bool) {
	value, ok := s.values[key]
	return value, ok
}

// Keys returns the section's keys in file order.
func (s *Section) Keys() []string {
	return append([]string(nil), s.order...)
}

// Resolver resolves names against this section's keys only.
func (s *Section) Resolver() macro.Resolver {
	return s.Get
}
