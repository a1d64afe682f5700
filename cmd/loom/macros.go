// Package main provides the entry point for the loom CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/loom/internal/output"
	"github.com/gorewood/loom/internal/source"
)

// macroEntry is one resolvable macro name for output.
type macroEntry struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	Path string `json:"path,omitempty"`
}

// macrosFlags holds the flag values for the macros command.
type macrosFlags struct {
	macroFile string
	settings  string
	changelog string
	env       bool
}

// newMacrosCmd creates the macros command.
func newMacrosCmd() *cobra.Command {
	var flags macrosFlags

	cmd := &cobra.Command{
		Use:   "macros",
		Short: "List resolvable macro names",
		Long: `List every macro name the current sources can resolve.

Each name is reported once, attributed to the highest-priority source
that defines it. Sources are discovered the same way 'loom expand'
discovers them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMacros(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.macroFile, "macros", "", "Macro definition file (default: discovered loom.yaml)")
	cmd.Flags().StringVar(&flags.settings, "settings", "", "Settings file (default: discovered loom.ini)")
	cmd.Flags().StringVar(&flags.changelog, "changelog", "", "Changelog file (default: discovered CHANGELOG.md)")
	cmd.Flags().BoolVar(&flags.env, "env", false, "Include environment variables")

	return cmd
}

// runMacros executes the macros command.
func runMacros(cmd *cobra.Command, flags macrosFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())

	set, err := source.Collect(source.Options{
		MacroFile: flags.macroFile,
		Settings:  flags.settings,
		Changelog: flags.changelog,
		Env:       flags.env,
		Discover:  true,
	})
	if err != nil {
		wrapped := output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(wrapped)
		return wrapped
	}

	entries := collectMacroEntries(set)

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"count":  len(entries),
			"macros": entries,
		})
	}

	outputMacrosHuman(printer, entries)
	return nil
}

// collectMacroEntries flattens a source set into deduplicated macro entries.
// The first source to define a name wins, matching expansion priority.
func collectMacroEntries(set *source.Set) []macroEntry {
	seen := make(map[string]bool)
	var entries []macroEntry
	for _, src := range set.Entries() {
		for _, name := range src.Names {
			if seen[name] {
				continue
			}
			seen[name] = true
			entries = append(entries, macroEntry{
				Name: name,
				Kind: src.Kind,
				Path: src.Path,
			})
		}
	}
	return entries
}

// outputMacrosHuman outputs the macro list in human-readable format.
func outputMacrosHuman(printer *output.Printer, entries []macroEntry) {
	if len(entries) == 0 {
		printer.Println("No macros found - create a loom.yaml or pass --env")
		return
	}

	for _, entry := range entries {
		if entry.Path != "" {
			printer.KeyValue(entry.Name, entry.Kind+" ("+entry.Path+")")
			continue
		}
		printer.KeyValue(entry.Name, entry.Kind)
	}
}
