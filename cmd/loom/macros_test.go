package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMacros_ListsFromMacroFile(t *testing.T) {
	dir := isolate(t)

	macros := "macros:\n  greeting: hello\n  product: loom\n"
	if err := os.WriteFile(filepath.Join(dir, "loom.yaml"), []byte(macros), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runLoom(t, "", "macros")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, name := range []string{"greeting", "product", "loom.yaml"} {
		if !strings.Contains(out, name) {
			t.Errorf("macros output should contain %q: %q", name, out)
		}
	}
}

func TestMacros_Empty(t *testing.T) {
	isolate(t)

	out, _, err := runLoom(t, "", "macros")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "No macros found") {
		t.Errorf("macros output should report nothing found: %q", out)
	}
}

func TestMacros_JSONDedupesAcrossSources(t *testing.T) {
	dir := isolate(t)

	macros := "macros:\n  version: from-macros\n"
	if err := os.WriteFile(filepath.Join(dir, "loom.yaml"), []byte(macros), 0o644); err != nil {
		t.Fatal(err)
	}
	cl := "# Changelog\n\n## [1.0.0] - 2024-01-01\n\n### Added\n\n- start\n"
	if err := os.WriteFile(filepath.Join(dir, "CHANGELOG.md"), []byte(cl), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runLoom(t, "", "macros", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var result struct {
		Count  int          `json:"count"`
		Macros []macroEntry `json:"macros"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Output should be valid JSON: %v\nOutput: %s", err, out)
	}

	kinds := make(map[string]string)
	for _, m := range result.Macros {
		if prev, dup := kinds[m.Name]; dup {
			t.Errorf("name %q listed twice (%s and %s)", m.Name, prev, m.Kind)
		}
		kinds[m.Name] = m.Kind
	}
	// version is defined by both sources; the macro file has priority
	if kinds["version"] != "macros" {
		t.Errorf("version should be attributed to the macro file, got %q", kinds["version"])
	}
	if kinds["date"] != "changelog" {
		t.Errorf("date should come from the changelog, got %q", kinds["date"])
	}
}

func TestSources_ListsDiscovered(t *testing.T) {
	dir := isolate(t)

	if err := os.WriteFile(filepath.Join(dir, "loom.yaml"), []byte("macros:\n  a: b\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "loom.ini"), []byte("[build]\nout = dist\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runLoom(t, "", "sources")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "loom.yaml") {
		t.Errorf("sources output should list loom.yaml: %q", out)
	}
	if !strings.Contains(out, "loom.ini") {
		t.Errorf("sources output should list loom.ini: %q", out)
	}
}

func TestSources_JSONEmpty(t *testing.T) {
	isolate(t)

	out, _, err := runLoom(t, "", "sources", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var result struct {
		Count   int           `json:"count"`
		Sources []sourceEntry `json:"sources"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Output should be valid JSON: %v\nOutput: %s", err, out)
	}
	if result.Count != 0 {
		t.Errorf("count = %d, want 0", result.Count)
	}
}
