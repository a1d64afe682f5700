package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runLoom executes the root command with args and returns stdout, stderr,
// and the execute error.
func runLoom(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// isolate moves the test into an empty directory so discovery finds nothing
// but what the test creates.
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("LOOM_CONFIG_HOME", filepath.Join(dir, "config"))
	return dir
}

func TestExpand_TextWithSet(t *testing.T) {
	isolate(t)

	out, _, err := runLoom(t, "", "expand", "--text", "release {version} is out", "--set", "version=2.1.0")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "release 2.1.0 is out" {
		t.Errorf("expand output = %q, want %q", out, "release 2.1.0 is out")
	}
}

func TestExpand_TemplateFile(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "notes.tmpl")
	if err := os.WriteFile(path, []byte("hello {name}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runLoom(t, "", "expand", path, "--set", "name=world")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "hello world\n" {
		t.Errorf("expand output = %q, want %q", out, "hello world\n")
	}
}

func TestExpand_Stdin(t *testing.T) {
	isolate(t)

	out, _, err := runLoom(t, "from {src}\n", "expand", "-", "--set", "src=stdin")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "from stdin\n" {
		t.Errorf("expand output = %q, want %q", out, "from stdin\n")
	}
}

func TestExpand_UnresolvedVerbatim(t *testing.T) {
	isolate(t)

	out, _, err := runLoom(t, "", "expand", "--text", "keep {unknown} as-is")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "keep {unknown} as-is" {
		t.Errorf("expand output = %q, want %q", out, "keep {unknown} as-is")
	}
}

func TestExpand_MultilineIndented(t *testing.T) {
	dir := isolate(t)

	macros := "macros:\n  items: |-\n    one\n    two\n"
	if err := os.WriteFile(filepath.Join(dir, "loom.yaml"), []byte(macros), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runLoom(t, "", "expand", "--text", "list:\n  {items}\n")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := "list:\n  one\n  two\n"
	if out != want {
		t.Errorf("expand output = %q, want %q", out, want)
	}
}

func TestExpand_ChangelogSource(t *testing.T) {
	dir := isolate(t)

	cl := "# Changelog\n\n## [3.0.0] - 2024-05-01\n\n### Added\n\n- big feature\n"
	path := filepath.Join(dir, "CHANGELOG.md")
	if err := os.WriteFile(path, []byte(cl), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runLoom(t, "", "expand", "--text", "v{version} ({date})", "--changelog", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "v3.0.0 (2024-05-01)" {
		t.Errorf("expand output = %q, want %q", out, "v3.0.0 (2024-05-01)")
	}
}

func TestExpand_JSONOutput(t *testing.T) {
	isolate(t)

	out, _, err := runLoom(t, "", "expand", "--json", "--text", "hi {name}", "--set", "name=there")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Output should be valid JSON: %v\nOutput: %s", err, out)
	}
	if result["expanded"] != "hi there" {
		t.Errorf("expanded = %v, want %q", result["expanded"], "hi there")
	}
}

func TestExpand_OutFile(t *testing.T) {
	dir := isolate(t)

	outPath := filepath.Join(dir, "result.txt")
	stdout, _, err := runLoom(t, "", "expand", "--text", "{a}{b}", "--set", "a=x", "--set", "b=y", "--out", outPath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout should be empty with --out, got %q", stdout)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", outPath, err)
	}
	if string(data) != "xy" {
		t.Errorf("out file = %q, want %q", string(data), "xy")
	}
}

func TestExpand_FileAndTextConflict(t *testing.T) {
	isolate(t)

	_, _, err := runLoom(t, "", "expand", "some-file", "--text", "x")
	if err == nil {
		t.Fatal("Expected error when both a file and --text are given")
	}
	if !strings.Contains(err.Error(), "not both") {
		t.Errorf("error should mention the conflict: %v", err)
	}
}

func TestExpand_NoTemplate(t *testing.T) {
	isolate(t)

	_, _, err := runLoom(t, "", "expand")
	if err == nil {
		t.Fatal("Expected error when no template is given")
	}
}

func TestExpand_MissingTemplateFile(t *testing.T) {
	isolate(t)

	_, errOut, err := runLoom(t, "", "expand", "no-such-file.tmpl")
	if err == nil {
		t.Fatal("Expected error for a missing template file")
	}
	if !strings.Contains(errOut, "no-such-file.tmpl") {
		t.Errorf("stderr should name the missing file: %q", errOut)
	}
}

func TestExpand_BadSetFlag(t *testing.T) {
	isolate(t)

	_, _, err := runLoom(t, "", "expand", "--text", "x", "--set", "no-equals")
	if err == nil {
		t.Fatal("Expected error for a malformed --set value")
	}
	if !strings.Contains(err.Error(), "name=value") {
		t.Errorf("error should explain the expected form: %v", err)
	}
}

func TestExpand_SetBeatsMacroFile(t *testing.T) {
	dir := isolate(t)

	macros := "macros:\n  name: from-file\n"
	if err := os.WriteFile(filepath.Join(dir, "loom.yaml"), []byte(macros), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runLoom(t, "", "expand", "--text", "{name}", "--set", "name=from-flag")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "from-flag" {
		t.Errorf("expand output = %q, want %q", out, "from-flag")
	}
}
