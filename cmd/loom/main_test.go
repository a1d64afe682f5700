package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRootCommand_Version(t *testing.T) {
	// Set version for testing
	version = "1.2.3"

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "1.2.3") {
		t.Errorf("--version output should contain version: %q", output)
	}
	if !strings.Contains(output, "loom") {
		t.Errorf("--version output should contain 'loom': %q", output)
	}
}

func TestRootCommand_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	output := buf.String()

	// Check for expected help content
	expectations := []string{
		"loom",
		"Usage:",
		"expand",
		"macros",
		"sources",
		"serve",
		"--json",
		"--help",
	}

	for _, expected := range expectations {
		if !strings.Contains(output, expected) {
			t.Errorf("--help output should contain %q: %q", expected, output)
		}
	}
}

func TestRootCommand_JSONFlag_NoSubcommand(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--json"})

	err := cmd.Execute()
	// Should error because no subcommand is provided
	if err == nil {
		t.Fatal("Expected error when running with --json but no subcommand")
	}

	output := buf.String()

	// Should output JSON error
	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Output should be valid JSON: %v\nOutput: %s", err, output)
	}

	if _, ok := result["error"]; !ok {
		t.Errorf("JSON output should contain 'error' field: %s", output)
	}
	if _, ok := result["code"]; !ok {
		t.Errorf("JSON output should contain 'code' field: %s", output)
	}
}

func TestRootCommand_JSONFlag_Persistence(t *testing.T) {
	// Verify --json flag is persistent and accessible to subcommands
	cmd := newRootCmd()

	flag := cmd.PersistentFlags().Lookup("json")
	if flag == nil {
		t.Fatal("--json flag should be a persistent flag")
	}
}

func TestBuildVersion_Dev(t *testing.T) {
	version = "dev"
	commit = "none"
	date = "unknown"

	if got := buildVersion(); got != "dev" {
		t.Errorf("buildVersion() = %q, want %q", got, "dev")
	}
}

func TestBuildVersion_Release(t *testing.T) {
	version = "1.0.0"
	commit = "0123456789abcdef"
	date = "2024-06-01"

	got := buildVersion()
	if !strings.Contains(got, "1.0.0") {
		t.Errorf("buildVersion() should contain version: %q", got)
	}
	if !strings.Contains(got, "0123456") {
		t.Errorf("buildVersion() should contain short commit: %q", got)
	}
	if strings.Contains(got, "0123456789abcdef") {
		t.Errorf("buildVersion() should truncate the commit: %q", got)
	}
}
