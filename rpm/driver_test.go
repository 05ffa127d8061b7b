package rpm

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/etnz/rpm-pack-builder/spec"
)

func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not found in PATH: %v", name, err)
	}
}

func TestBuildBinaryPackagesWritesOneFilePerSubPackage(t *testing.T) {
	requireTool(t, "cpio")
	requireTool(t, "gzip")

	root := t.TempDir()
	binDir := filepath.Join(root, "usr", "bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(binDir, "example"), []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}

	s := &spec.Spec{
		Name:    "example",
		Version: "1.0",
		Release: "1",
		Packages: []spec.SubPackage{
			{Files: []string{"/usr/bin/example"}},
			{Name: "empty"},
		},
	}

	outDir := t.TempDir()
	ctx := NewBuildContext(root, outDir)

	if err := BuildBinaryPackages(ctx, s); err != nil {
		t.Fatalf("BuildBinaryPackages: %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("want 1 output file (empty sub-package skipped), got %d: %v", len(entries), entries)
	}
}

func TestBuildBinaryPackagesRequiresVersionAndRelease(t *testing.T) {
	s := &spec.Spec{Name: "example"}
	ctx := NewBuildContext("", t.TempDir())
	err := BuildBinaryPackages(ctx, s)
	if err == nil {
		t.Fatal("want error for missing version/release")
	}
	if _, ok := err.(*BadSpecError); !ok {
		t.Fatalf("want *BadSpecError, got %T", err)
	}
}

func TestBuildSourcePackageStagesSpecAndSources(t *testing.T) {
	requireTool(t, "cpio")
	requireTool(t, "gzip")

	dir := t.TempDir()
	specPath := filepath.Join(dir, "example.yaml")
	tarball := filepath.Join(dir, "example-1.0.tar.gz")
	if err := os.WriteFile(specPath, []byte("name: example\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(tarball, []byte("fake tarball"), 0644); err != nil {
		t.Fatal(err)
	}

	s := &spec.Spec{
		Name:    "example",
		Version: "1.0",
		Release: "1",
		Sources: []string{"example-1.0.tar.gz"},
		Path:    specPath,
	}

	outDir := t.TempDir()
	ctx := NewBuildContext("", outDir)

	if err := BuildSourcePackage(ctx, s); err != nil {
		t.Fatalf("BuildSourcePackage: %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("want 1 output file, got %d: %v", len(entries), entries)
	}
	if entries[0].Name() != "example-1.0-1.src.rpm" {
		t.Errorf("output name = %q, want %q", entries[0].Name(), "example-1.0-1.src.rpm")
	}
}
