package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/loom/internal/macro"
	"github.com/gorewood/loom/internal/source"
)

// --- Expand tool ---

// ExpandInput is the input for the expand tool.
type ExpandInput struct {
	Template string            `json:"template"         jsonschema:"template text containing {name} placeholders"`
	Macros   map[string]string `json:"macros,omitempty" jsonschema:"inline macro definitions; highest priority"`
	Dir      string            `json:"dir,omitempty"    jsonschema:"directory to discover sources from (default: working directory)"`
	Env      bool              `json:"env,omitempty"    jsonschema:"include process environment variables as a source"`
}

// ExpandOutput is the output for the expand tool.
type ExpandOutput struct {
	Expanded string   `json:"expanded"          jsonschema:"the expanded text"`
	Sources  []Source `json:"sources,omitempty" jsonschema:"resolver sources consulted, in priority order"`
}

// Source describes one resolver source.
type Source struct {
	Kind string `json:"kind"           jsonschema:"source kind: set, macros, settings, changelog, or env"`
	Path string `json:"path,omitempty" jsonschema:"backing file, when file-backed"`
}

func handleExpand(_ context.Context, _ *mcp.CallToolRequest, input ExpandInput) (*mcp.CallToolResult, ExpandOutput, error) {
	set, err := source.Collect(source.Options{
		Literals: input.Macros,
		Env:      input.Env,
		Discover: true,
		Dir:      input.Dir,
	})
	if err != nil {
		return nil, ExpandOutput{}, fmt.Errorf("collecting sources: %w", err)
	}

	out := ExpandOutput{
		Expanded: macro.Expand(input.Template, set.Resolver()),
		Sources:  toSources(set.Entries()),
	}
	return nil, out, nil
}

// --- Macros tool ---

// MacrosInput is the input for the macros tool.
type MacrosInput struct {
	Dir string `json:"dir,omitempty" jsonschema:"directory to discover sources from (default: working directory)"`
}

// MacroInfo is one resolvable name and where it comes from.
type MacroInfo struct {
	Name string `json:"name"           jsonschema:"resolvable macro name"`
	Kind string `json:"kind"           jsonschema:"source kind the name comes from"`
	Path string `json:"path,omitempty" jsonschema:"backing file, when file-backed"`
}

// MacrosOutput is the output for the macros tool.
type MacrosOutput struct {
	Macros []MacroInfo `json:"macros" jsonschema:"resolvable names in priority order"`
}

func handleMacros(_ context.Context, _ *mcp.CallToolRequest, input MacrosInput) (*mcp.CallToolResult, MacrosOutput, error) {
	set, err := source.Collect(source.Options{
		Discover: true,
		Dir:      input.Dir,
	})
	if err != nil {
		return nil, MacrosOutput{}, fmt.Errorf("collecting sources: %w", err)
	}

	out := MacrosOutput{Macros: []MacroInfo{}}
	seen := make(map[string]bool)
	for _, entry := range set.Entries() {
		for _, name := range entry.Names {
			if seen[name] {
				continue
			}
			seen[name] = true
			out.Macros = append(out.Macros, MacroInfo{
				Name: name,
				Kind: entry.Kind,
				Path: entry.Path,
			})
		}
	}
	return nil, out, nil
}

// toSources converts source entries to their tool-output form.
func toSources(entries []source.Entry) []Source {
	result := make([]Source, 0, len(entries))
	for _, entry := range entries {
		result = append(result, Source{Kind: entry.Kind, Path: entry.Path})
	}
	return result
}
