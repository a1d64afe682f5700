// Package output provides structured output handling for the loom CLI.
//
// The Printer is the primary interface for command output. It switches
// between human-readable and JSON formats and disables lipgloss styling
// when output is piped:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//
//	printer.Println("Some text")
//	printer.KeyValue("version", "1.2.0")
//	printer.Error(err)
//
// # Exit Codes
//
// The package defines standard exit codes and error constructors:
//
//	output.ExitSuccess     // 0: Success
//	output.ExitUserError   // 1: User error (bad args, missing input)
//	output.ExitSystemError // 2: System error (I/O failure)
//
// Errors built with NewUserError and NewSystemError carry exit codes used
// for both JSON error output and the process exit code.
package output
