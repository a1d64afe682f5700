package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(root, "a", "loom.yaml")
	if err := os.WriteFile(target, []byte("macros: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FindUp(nested, "loom.yaml")
	if err != nil {
		t.Fatalf("FindUp() error = %v", err)
	}
	if got != target {
		t.Errorf("FindUp() = %q, want %q", got, target)
	}
}

func TestFindUpNearestWins(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	outer := filepath.Join(root, "loom.yaml")
	inner := filepath.Join(nested, "loom.yaml")
	for _, path := range []string{outer, inner} {
		if err := os.WriteFile(path, []byte("macros: {}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := FindUp(nested, "loom.yaml")
	if err != nil {
		t.Fatalf("FindUp() error = %v", err)
	}
	if got != inner {
		t.Errorf("FindUp() = %q, want nearest match %q", got, inner)
	}
}

func TestFindUpNotFound(t *testing.T) {
	_, err := FindUp(t.TempDir(), "no-such-file-anywhere.xyz")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("FindUp() error = %v, want ErrNotFound", err)
	}
}

func TestFindUpIgnoresDirectories(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "loom.yaml"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := FindUp(root, "loom.yaml")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("FindUp() error = %v, want ErrNotFound for directory match", err)
	}
}

func TestFindUpAny(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "sub")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	// The first listed name wins within a directory, even if a later name
	// exists closer to the root.
	second := filepath.Join(nested, ".loom.yaml")
	if err := os.WriteFile(second, []byte("macros: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FindUpAny(nested, "loom.yaml", ".loom.yaml")
	if err != nil {
		t.Fatalf("FindUpAny() error = %v", err)
	}
	if got != second {
		t.Errorf("FindUpAny() = %q, want %q", got, second)
	}
}

func TestConfigDirOverride(t *testing.T) {
	t.Setenv("LOOM_CONFIG_HOME", "/tmp/loom-config")
	if got := ConfigDir(); got != "/tmp/loom-config" {
		t.Errorf("ConfigDir() = %q, want override", got)
	}
}

func TestConfigDirXDG(t *testing.T) {
	t.Setenv("LOOM_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	want := filepath.Join("/tmp/xdg", "loom")
	if got := ConfigDir(); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}
