package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCatalogCmd_Embedded(t *testing.T) {
	out, err := runCmd(t, "catalog")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	for _, want := range []string{"LESSONS (", "PROJECTS (", "MATERIALS (", "SCHEDULE (", "l1", "Monday"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCatalogCmd_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("lessons: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := runCmd(t, "catalog", "--seed", path); err == nil {
		t.Fatal("expected error for malformed catalog")
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := runCmd(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "commit:") {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestServeCmd_RejectsArgs(t *testing.T) {
	if _, err := runCmd(t, "serve", "extra"); err == nil {
		t.Fatal("expected error for positional args")
	}
}
