// Package changelog parses keep-a-changelog style release notes and exposes
// release metadata as macro resolver sources.
package changelog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/gorewood/loom/internal/macro"
	"github.com/gorewood/loom/internal/text"
)

// Changelog is a parsed release-notes document.
type Changelog struct {
	Title    string
	Releases []*Release
	Path     string
}

// Release is one versioned section of a changelog.
type Release struct {
	Version    string
	Date       string
	Unreleased bool
	Scopes     []Scope
	Notes      string
}

// Scope is a categorized subsection of a release, such as Added or Fixed.
type Scope struct {
	Label string
	Notes string
}

// releaseHeading matches level-2 version headings:
//
//	## [1.2.0] - 2026-01-02
//	## 1.2.0 (2026-01-02)
//	## [Unreleased]
var releaseHeading = regexp.MustCompile(`^##\s+\[?([^][()\s]+)\]?(?:[\s(-]+(\d{4}-\d{2}-\d{2}))?`)

// scopeHeading matches level-3 scope headings like "### Added".
var scopeHeading = regexp.MustCompile(`^###\s+(.+?)\s*$`)

// titleHeading matches the document title.
var titleHeading = regexp.MustCompile(`^#\s+(.+?)\s*$`)

// Load reads and parses the changelog at path.
func Load(path string) (*Changelog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening changelog %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // best-effort close on read-only file

	parsed, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing changelog %s: %w", path, err)
	}
	parsed.Path = path
	return parsed, nil
}

// Parse reads a changelog document in a single pass. Lines before the first
// release heading (intro prose, the title) are skipped, except the title,
// which is retained.
func Parse(r io.Reader) (*Changelog, error) {
	log := &Changelog{}

	var release *Release
	var scope *Scope
	var body strings.Builder

	flushScope := func() {
		if scope == nil {
			return
		}
		scope.Notes = text.NormalizeNewlines(body.String(), text.Suppress, text.Suppress)
		release.Scopes = append(release.Scopes, *scope)
		scope = nil
		body.Reset()
	}
	flushRelease := func() {
		flushScope()
		if release == nil {
			return
		}
		release.Notes = text.NormalizeNewlines(release.Notes, text.Suppress, text.Suppress)
		log.Releases = append(log.Releases, release)
		release = nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if m := releaseHeading.FindStringSubmatch(line); m != nil {
			flushRelease()
			release = &Release{Version: m[1], Date: m[2]}
			if strings.EqualFold(m[1], "unreleased") {
				release.Unreleased = true
			}
			continue
		}

		if release == nil {
			if log.Title == "" {
				if m := titleHeading.FindStringSubmatch(line); m != nil {
					log.Title = m[1]
				}
			}
			continue
		}

		release.Notes += line + "\n"

		if m := scopeHeading.FindStringSubmatch(line); m != nil {
			flushScope()
			scope = &Scope{Label: m[1]}
			continue
		}
		if scope != nil {
			body.WriteString(line)
			body.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading changelog: %w", err)
	}
	flushRelease()

	return log, nil
}

// ParseString parses a changelog from an in-memory string.
func ParseString(s string) (*Changelog, error) {
	return Parse(strings.NewReader(s))
}

// Latest returns the most recent released version, skipping an unreleased
// section. Returns nil when the changelog has no releases.
func (c *Changelog) Latest() *Release {
	for _, release := range c.Releases {
		if !release.Unreleased {
			return release
		}
	}
	return nil
}

// Find returns the release with the given version, or nil.
func (c *Changelog) Find(version string) *Release {
	for _, release := range c.Releases {
		if release.Version == version {
			return release
		}
	}
	return nil
}

// Resolver exposes the release's metadata to templates: version, date,
// notes, and one changes.<scope> name per subsection.
func (r *Release) Resolver() macro.Resolver {
	values := map[string]string{
		"version": r.Version,
		"date":    r.Date,
		"notes":   r.Notes,
	}
	for _, scope := range r.Scopes {
		values["changes."+strings.ToLower(scope.Label)] = scope.Notes
	}
	return macro.Map(values)
}

// Names returns the resolvable names Resolver exposes, in stable order.
func (r *Release) Names() []string {
	names := []string{"version", "date", "notes"}
	for _, scope := range r.Scopes {
		names = append(names, "changes."+strings.ToLower(scope.Label))
	}
	return names
}
