// Package main provides the entry point for the loom CLI.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/loom/internal/macro"
	"github.com/gorewood/loom/internal/output"
	"github.com/gorewood/loom/internal/source"
)

// expandFlags holds the flag values for the expand command.
type expandFlags struct {
	set         []string
	text        string
	macroFile   string
	settings    string
	changelog   string
	env         bool
	noDiscovery bool
	out         string
}

// newExpandCmd creates the expand command.
func newExpandCmd() *cobra.Command {
	var flags expandFlags

	cmd := &cobra.Command{
		Use:   "expand [template-file]",
		Short: "Expand macros in a template",
		Long: `Expand {name} macros in a template read from a file, stdin, or --text.

Values are resolved in priority order: --set definitions, the macro file,
the settings file, changelog metadata, then the environment (with --env).
Files not given explicitly are discovered by walking up from the working
directory. Unresolved names are left in the output verbatim.

Examples:
  loom expand notes.tmpl                          # Expand a template file
  cat notes.tmpl | loom expand -                  # Expand stdin
  loom expand --text "v{version}" --changelog CHANGELOG.md
  loom expand notes.tmpl --set product=loom --out NOTES.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(cmd, args, flags)
		},
	}

	cmd.Flags().StringArrayVar(&flags.set, "set", nil, "Define a macro as name=value (repeatable, highest priority)")
	cmd.Flags().StringVar(&flags.text, "text", "", "Expand this string instead of a file")
	cmd.Flags().StringVar(&flags.macroFile, "macros", "", "Macro definition file (default: discovered loom.yaml)")
	cmd.Flags().StringVar(&flags.settings, "settings", "", "Settings file (default: discovered loom.ini)")
	cmd.Flags().StringVar(&flags.changelog, "changelog", "", "Changelog file (default: discovered CHANGELOG.md)")
	cmd.Flags().BoolVar(&flags.env, "env", false, "Resolve names from the environment as a last resort")
	cmd.Flags().BoolVar(&flags.noDiscovery, "no-discovery", false, "Skip walking up for source files")
	cmd.Flags().StringVar(&flags.out, "out", "", "Write the result to a file instead of stdout")

	return cmd
}

// runExpand executes the expand command.
func runExpand(cmd *cobra.Command, args []string, flags expandFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())

	template, err := readTemplate(cmd, args, flags)
	if err != nil {
		printer.Error(err)
		return err
	}

	set, err := collectSources(flags)
	if err != nil {
		wrapped := output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(wrapped)
		return wrapped
	}

	expanded := macro.Expand(template, set.Resolver())
	return writeResult(printer, expanded, flags.out)
}

// readTemplate loads the template from --text, a file argument, or stdin.
func readTemplate(cmd *cobra.Command, args []string, flags expandFlags) (string, error) {
	if flags.text != "" {
		if len(args) > 0 {
			return "", output.NewUserError("give either a template file or --text, not both")
		}
		return flags.text, nil
	}

	if len(args) == 0 {
		return "", output.NewUserError("specify a template file, '-' for stdin, or --text")
	}

	if args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", output.NewSystemErrorWithCause("reading stdin", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", output.NewUserErrorWithCause(fmt.Sprintf("reading template %s", args[0]), err)
	}
	return string(data), nil
}

// collectSources builds the resolver set from the expand flags.
func collectSources(flags expandFlags) (*source.Set, error) {
	literals, err := parseSetFlags(flags.set)
	if err != nil {
		return nil, err
	}

	return source.Collect(source.Options{
		Literals:  literals,
		MacroFile: flags.macroFile,
		Settings:  flags.settings,
		Changelog: flags.changelog,
		Env:       flags.env,
		Discover:  !flags.noDiscovery,
	})
}

// parseSetFlags converts repeated --set name=value flags into a map.
func parseSetFlags(defs []string) (map[string]string, error) {
	if len(defs) == 0 {
		return nil, nil
	}
	literals := make(map[string]string, len(defs))
	for _, def := range defs {
		name, value, err := source.ParseLiteral(def)
		if err != nil {
			return nil, fmt.Errorf("--set: %w", err)
		}
		literals[name] = value
	}
	return literals, nil
}

// writeResult delivers the expanded text to --out or the printer.
func writeResult(printer *output.Printer, expanded, outPath string) error {
	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(expanded), 0o644); err != nil {
			wrapped := output.NewSystemErrorWithCause(fmt.Sprintf("writing %s", outPath), err)
			printer.Error(wrapped)
			return wrapped
		}
		return nil
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"expanded": expanded})
	}
	printer.Print("%s", expanded)
	return nil
}
