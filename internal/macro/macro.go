// Package macro expands {name} placeholders in templates.
//
// Expansion is recursive: a resolved value may itself contain placeholders,
// which are expanded with the same resolver. Multi-line substitutions are
// re-indented to match the template context around the placeholder, so
// blocks dropped into indented positions keep their shape.
//
// Unresolved names are never an error; their placeholders survive verbatim,
// braces included. Self-referential resolvers terminate at MaxDepth.
package macro

import (
	"regexp"
	"strings"

	"github.com/gorewood/loom/internal/text"
)

// MaxDepth bounds recursive expansion of resolved values. Reaching the bound
// stops further expansion of that branch: the resolved text is used as-is,
// so expansion always terminates, even when a name resolves to itself.
const MaxDepth = 1024

// placeholderPattern matches {name} where name is one or more letters,
// digits, underscores, or dots. Braces used any other way (unmatched, empty,
// or around disallowed characters) are left as literal text.
var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_.]+)\}`)

// Expand replaces every {name} placeholder in template with the value the
// resolver returns for it. Resolved values are expanded recursively before
// insertion, then re-indented to the placeholder's context. Names that do
// not resolve are reproduced verbatim. A template containing no placeholders
// is returned unchanged.
func Expand(template string, resolve Resolver) string {
	return expand(template, resolve, 0)
}

func expand(template string, resolve Resolver, depth int) string {
	matches := placeholderPattern.FindAllStringSubmatchIndex(template, -1)
	if len(matches) == 0 {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		b.WriteString(template[last:start])

		value, ok := resolve(template[m[2]:m[3]])
		if !ok {
			b.WriteString(template[start:end])
		} else {
			if depth < MaxDepth {
				value = expand(value, resolve, depth+1)
			}
			b.WriteString(reindent(template, start, value))
		}
		last = end
	}
	b.WriteString(template[last:])

	return b.String()
}

// reindent aligns a substitution with the template context at the
// placeholder position. The first line lands at the placeholder's column
// through ordinary concatenation and is never re-prefixed. When the value
// spans multiple lines, every following line receives the context indent:
// the text before the placeholder on its line when that text is blank, or
// the shortest indent found within it when the placeholder sits after other
// content.
func reindent(template string, at int, value string) string {
	value = text.NormalizeNewlines(value, text.Suppress, text.Suppress)
	if !strings.Contains(value, "\n") {
		return value
	}

	head := template[text.LineStart(template, at):at]
	indent := head
	if !text.IsBlank(head) {
		indent = text.Indentation(head)
	}

	first, rest, _ := strings.Cut(value, "\n")
	return first + "\n" + text.IndentBlock(indent, rest)
}
