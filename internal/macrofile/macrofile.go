// Package macrofile loads macro definitions from loom.yaml files.
//
// Files are resolved in order:
//  1. loom.yaml or .loom.yaml in the working directory or a parent (project-local)
//  2. ~/.config/loom/loom.yaml (user global)
package macrofile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/loom/internal/macro"
	"github.com/gorewood/loom/internal/project"
)

// FileName is the canonical macro-definition file name; DotFileName is the
// hidden variant checked second.
const (
	FileName    = "loom.yaml"
	DotFileName = ".loom.yaml"
)

// File is a parsed macro-definition file.
type File struct {
	// Metadata
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`

	// Macro definitions; values may contain {name} placeholders that refer
	// to other macros or to other resolver sources.
	Macros map[string]string `yaml:"macros"`

	// Source location for display
	Path string `yaml:"-"`
}

// Load reads and parses the macro file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading macro file %s: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing macro file %s: %w", path, err)
	}

	file.Path = path
	return &file, nil
}

// Discover finds and loads the nearest macro file: project-local first
// (walking up from startDir), then the user's global file. Returns
// project.ErrNotFound when neither exists.
func Discover(startDir string) (*File, error) {
	if path, err := project.FindUpAny(startDir, FileName, DotFileName); err == nil {
		return Load(path)
	}

	if dir := project.ConfigDir(); dir != "" {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return nil, fmt.Errorf("%s: %w", FileName, project.ErrNotFound)
}

// Resolver resolves names against the file's macro definitions.
func (f *File) Resolver() macro.Resolver {
	return macro.Map(f.Macros)
}

// Names returns the defined macro names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Macros))
	for name := range f.Macros {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
