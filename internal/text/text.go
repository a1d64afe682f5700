// Package text provides line-oriented helpers for indentation-aware
// manipulation of multi-line strings.
//
// All functions are pure: they never mutate their inputs and hold no state.
// Whitespace means spaces and tabs; line terminators are "\n" or "\r\n".
package text

import (
	"fmt"
	"iter"
	"regexp"
	"strings"
)

// FormatError reports text that violates the structure a strict operation
// requires, such as a line missing its expected indentation.
type FormatError struct {
	Msg string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return e.Msg
}

// Lines returns an iterator over the lines of block. Each line retains its
// trailing terminator ("\n" or "\r\n"); a final line without one is yielded
// as-is. The sequence is restartable: ranging over it again re-scans block.
func Lines(block string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := 0; i < len(block); {
			end := strings.IndexByte(block[i:], '\n')
			if end < 0 {
				yield(block[i:])
				return
			}
			if !yield(block[i : i+end+1]) {
				return
			}
			i += end + 1
		}
	}
}

// IsBlank reports whether line contains nothing but whitespace. Line
// terminators count as whitespace, so "\r\n" and "" are both blank.
func IsBlank(line string) bool {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}

// Indentation returns the shortest run of leading spaces and tabs among the
// non-blank lines of block. A block with no non-blank lines has no
// indentation. When prefixes differ in length, the shortest wins, which is
// the common-indentation heuristic used to deindent fenced text.
func Indentation(block string) string {
	indent := ""
	found := false
	for line := range Lines(block) {
		if IsBlank(line) {
			continue
		}
		prefix := leadingWhitespace(line)
		if !found || len(prefix) < len(indent) {
			indent = prefix
			found = true
		}
	}
	return indent
}

// leadingWhitespace returns the run of spaces and tabs at the start of line.
func leadingWhitespace(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}

// DeindentLine removes the indent prefix from line. Blank lines pass through
// unchanged. A non-blank line that does not start with indent passes through
// unchanged in lenient mode and is rejected with a FormatError in strict
// mode, because silently accepting it would corrupt block structure.
func DeindentLine(indent, line string, strict bool) (string, error) {
	if IsBlank(line) {
		return line, nil
	}
	if strings.HasPrefix(line, indent) {
		return line[len(indent):], nil
	}
	if strict {
		return "", &FormatError{Msg: fmt.Sprintf("line not properly indented: %q", line)}
	}
	return line, nil
}

// DeindentBlock applies DeindentLine to every line of block.
func DeindentBlock(indent, block string, strict bool) (string, error) {
	var b strings.Builder
	b.Grow(len(block))
	for line := range Lines(block) {
		deindented, err := DeindentLine(indent, line, strict)
		if err != nil {
			return "", err
		}
		b.WriteString(deindented)
	}
	return b.String(), nil
}

// IndentBlock prepends indent to every non-blank line of block. Blank lines
// are kept as-is, except an unterminated blank final line, which contributes
// nothing to the result.
func IndentBlock(indent, block string) string {
	var b strings.Builder
	b.Grow(len(block))
	for line := range Lines(block) {
		if IsBlank(line) {
			if strings.HasSuffix(line, "\n") {
				b.WriteString(line)
			}
			continue
		}
		b.WriteString(indent)
		b.WriteString(line)
	}
	return b.String()
}

// Newline selects how NormalizeNewlines treats one boundary of a block.
type Newline int

const (
	// Preserve keeps a single newline when the trimmed input had any.
	Preserve Newline = iota
	// Force inserts exactly one newline whether or not the input had one.
	Force
	// Suppress removes the boundary newline entirely.
	Suppress
)

// normalizePattern splits text into a leading blank-line run, a body, and a
// trailing run of terminators and blank lines. It matches every string,
// including the empty one.
var normalizePattern = regexp.MustCompile(`(?s)\A((?:[ \t]*\r?\n)*)(.*?)((?:\r?\n[ \t]*)*)\z`)

// NormalizeNewlines trims the blank-line runs and line terminators at both
// ends of s, then reinserts a single leading and/or trailing "\n" according
// to head and tail.
func NormalizeNewlines(s string, head, tail Newline) string {
	groups := normalizePattern.FindStringSubmatch(s)
	leading, body, trailing := groups[1], groups[2], groups[3]

	var b strings.Builder
	b.Grow(len(body) + 2)
	if wantNewline(head, leading != "") {
		b.WriteByte('\n')
	}
	b.WriteString(body)
	if wantNewline(tail, trailing != "") {
		b.WriteByte('\n')
	}
	return b.String()
}

// wantNewline decides whether a boundary newline belongs in the output, given
// whether the trimmed input had one there.
func wantNewline(mode Newline, had bool) bool {
	switch mode {
	case Force:
		return true
	case Suppress:
		return false
	default:
		return had
	}
}

// LineStart walks backward from index to the start of the line containing
// it: the position just after the nearest preceding "\n", or 0.
func LineStart(s string, index int) int {
	for index > 0 && s[index-1] != '\n' {
		index--
	}
	return index
}

// LineEnd walks forward from index to the exclusive end of the line
// containing it: the position of the next "\n", or len(s).
func LineEnd(s string, index int) int {
	for index < len(s) && s[index] != '\n' {
		index++
	}
	return index
}
