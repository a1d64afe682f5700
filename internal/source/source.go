// Package source assembles macro resolvers from loom's inputs.
//
// A Set is an ordered collection of resolver sources; earlier sources win
// when names collide. Sources are either given explicitly (flag values,
// file paths) or discovered by walking up from a directory.
package source

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/gorewood/loom/internal/changelog"
	"github.com/gorewood/loom/internal/macro"
	"github.com/gorewood/loom/internal/macrofile"
	"github.com/gorewood/loom/internal/project"
	"github.com/gorewood/loom/internal/settings"
)

// SettingsFileName is the settings file discovery walks up to find.
const SettingsFileName = "loom.ini"

// ChangelogFileName is the changelog discovery walks up to find.
const ChangelogFileName = "CHANGELOG.md"

// Options selects which sources a Set collects.
type Options struct {
	// Literals are name=value definitions with the highest priority.
	Literals map[string]string

	// Explicit file paths; empty means not requested (or discovered, when
	// Discover is set).
	MacroFile string
	Settings  string
	Changelog string

	// Env includes the process environment as the lowest-priority source.
	Env bool

	// Discover walks up from Dir for loom.yaml, loom.ini, and CHANGELOG.md
	// when their explicit paths are empty.
	Discover bool

	// Dir is the discovery root; empty means the working directory.
	Dir string
}

// Entry is one resolver source within a Set.
type Entry struct {
	// Kind labels the source: "set", "macros", "settings", "changelog", "env".
	Kind string

	// Path is the backing file, when the source is file-backed.
	Path string

	// Names are the resolvable names the source exposes.
	Names []string

	resolve macro.Resolver
}

// Set is an ordered collection of resolver sources.
type Set struct {
	entries []Entry
}

// Collect builds a Set from opts. Sources are ordered by priority: literals,
// macro file, settings, changelog, environment. Discovery misses are not
// errors; explicit paths that fail to load are.
func Collect(opts Options) (*Set, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	set := &Set{}

	if len(opts.Literals) > 0 {
		names := make([]string, 0, len(opts.Literals))
		for name := range opts.Literals {
			names = append(names, name)
		}
		sort.Strings(names)
		set.entries = append(set.entries, Entry{
			Kind:    "set",
			Names:   names,
			resolve: macro.Map(opts.Literals),
		})
	}

	if err := set.addMacroFile(opts, dir); err != nil {
		return nil, err
	}
	if err := set.addSettings(opts, dir); err != nil {
		return nil, err
	}
	if err := set.addChangelog(opts, dir); err != nil {
		return nil, err
	}

	if opts.Env {
		set.entries = append(set.entries, Entry{
			Kind:    "env",
			Names:   envNames(),
			resolve: macro.Env(),
		})
	}

	return set, nil
}

func (s *Set) addMacroFile(opts Options, dir string) error {
	switch {
	case opts.MacroFile != "":
		file, err := macrofile.Load(opts.MacroFile)
		if err != nil {
			return err
		}
		s.add("macros", file.Path, file.Names(), file.Resolver())
	case opts.Discover:
		file, err := macrofile.Discover(dir)
		if errors.Is(err, project.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		s.add("macros", file.Path, file.Names(), file.Resolver())
	}
	return nil
}

func (s *Set) addSettings(opts Options, dir string) error {
	path := opts.Settings
	if path == "" && opts.Discover {
		found, err := project.FindUp(dir, SettingsFileName)
		if errors.Is(err, project.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		path = found
	}
	if path == "" {
		return nil
	}

	file, err := settings.Load(path)
	if err != nil {
		return err
	}
	s.add("settings", file.Path, file.Names(), file.Resolver())
	return nil
}

func (s *Set) addChangelog(opts Options, dir string) error {
	path := opts.Changelog
	if path == "" && opts.Discover {
		found, err := project.FindUp(dir, ChangelogFileName)
		if errors.Is(err, project.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		path = found
	}
	if path == "" {
		return nil
	}

	log, err := changelog.Load(path)
	if err != nil {
		return err
	}
	release := log.Latest()
	if release == nil {
		return fmt.Errorf("changelog %s has no released versions", path)
	}
	s.add("changelog", log.Path, release.Names(), release.Resolver())
	return nil
}

func (s *Set) add(kind, path string, names []string, resolve macro.Resolver) {
	s.entries = append(s.entries, Entry{
		Kind:    kind,
		Path:    path,
		Names:   names,
		resolve: resolve,
	})
}

// Resolver combines the set's sources in priority order.
func (s *Set) Resolver() macro.Resolver {
	resolvers := make([]macro.Resolver, 0, len(s.entries))
	for _, entry := range s.entries {
		resolvers = append(resolvers, entry.resolve)
	}
	return macro.First(resolvers...)
}

// Entries returns the set's sources in priority order.
func (s *Set) Entries() []Entry {
	return s.entries
}

// envNames returns the environment variable names, sorted.
func envNames() []string {
	env := os.Environ()
	names := make([]string, 0, len(env))
	for _, kv := range env {
		if name, _, ok := strings.Cut(kv, "="); ok && name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ParseLiteral splits a name=value flag argument.
func ParseLiteral(arg string) (name, value string, err error) {
	name, value, ok := strings.Cut(arg, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return "", "", fmt.Errorf("expected name=value, got %q", arg)
	}
	return strings.TrimSpace(name), value, nil
}
