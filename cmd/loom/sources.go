// Package main provides the entry point for the loom CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/loom/internal/output"
	"github.com/gorewood/loom/internal/source"
)

// sourceEntry is one resolver source for output.
type sourceEntry struct {
	Kind  string `json:"kind"`
	Path  string `json:"path,omitempty"`
	Names int    `json:"names"`
}

// newSourcesCmd creates the sources command.
func newSourcesCmd() *cobra.Command {
	var env bool

	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Show discovered macro sources",
		Long: `Show the source files loom would use for expansion, in priority order.

Discovery walks up from the working directory looking for loom.yaml,
loom.ini, and CHANGELOG.md, then falls back to the user config
directory for macro definitions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSources(cmd, env)
		},
	}

	cmd.Flags().BoolVar(&env, "env", false, "Include the environment as a source")

	return cmd
}

// runSources executes the sources command.
func runSources(cmd *cobra.Command, env bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())

	set, err := source.Collect(source.Options{
		Env:      env,
		Discover: true,
	})
	if err != nil {
		wrapped := output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(wrapped)
		return wrapped
	}

	entries := make([]sourceEntry, 0, len(set.Entries()))
	for _, src := range set.Entries() {
		entries = append(entries, sourceEntry{
			Kind:  src.Kind,
			Path:  src.Path,
			Names: len(src.Names),
		})
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"count":   len(entries),
			"sources": entries,
		})
	}

	outputSourcesHuman(printer, entries)
	return nil
}

// outputSourcesHuman outputs the source list in human-readable format.
func outputSourcesHuman(printer *output.Printer, entries []sourceEntry) {
	if len(entries) == 0 {
		printer.Println("No sources found - create a loom.yaml, loom.ini, or CHANGELOG.md")
		return
	}

	for _, entry := range entries {
		label := entry.Path
		if label == "" {
			label = "(process environment)"
		}
		printer.Print("%s  %s  %d name", entry.Kind, label, entry.Names)
		if entry.Names != 1 {
			printer.Print("s")
		}
		printer.Println()
	}
}
