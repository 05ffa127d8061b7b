package spec

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "pkg.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBasicSpec(t *testing.T) {
	path := writeSpec(t, `
name: example
version: 1.0
release: "1"
license: MIT
packages:
  - files:
      - /usr/bin/example
`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "example" || s.Version != "1.0" || s.Release != "1" {
		t.Errorf("unexpected spec: %+v", s)
	}
	if len(s.Packages) != 1 || len(s.Packages[0].Files) != 1 {
		t.Fatalf("unexpected packages: %+v", s.Packages)
	}
}

func TestLoadMissingVersionFails(t *testing.T) {
	path := writeSpec(t, `
name: example
release: "1"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("want error for missing version")
	}
}

func TestLoadResolvesDefines(t *testing.T) {
	path := writeSpec(t, `
name: example
version: "{{.major}}.{{.minor}}"
release: "1"
defines:
  major: "2"
  minor: "3"
packages: []
`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Version != "2.3" {
		t.Errorf("Version = %q, want %q", s.Version, "2.3")
	}
}

func TestOutputNameForNamedSubPackage(t *testing.T) {
	s := &Spec{Name: "example"}
	if got := s.OutputName(SubPackage{}); got != "example" {
		t.Errorf("OutputName(unnamed) = %q, want %q", got, "example")
	}
	if got := s.OutputName(SubPackage{Name: "devel"}); got != "example-devel" {
		t.Errorf("OutputName(devel) = %q, want %q", got, "example-devel")
	}
	if got := s.OutputName(SubPackage{Name: "devel", FullName: "libexample"}); got != "libexample" {
		t.Errorf("OutputName(full override) = %q, want %q", got, "libexample")
	}
}
