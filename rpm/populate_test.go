package rpm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/rpm-pack-builder/internal/header"
)

func TestPopulateFilesMD5AndSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	if err := os.WriteFile(path, []byte("abcd"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx := newTestContext(t, "")
	m, err := ExpandManifest(ctx, path, ModeBinary)
	if err != nil {
		t.Fatalf("ExpandManifest: %v", err)
	}
	SortManifest(m)

	h := header.New()
	if err := PopulateFiles(ctx, h, m); err != nil {
		t.Fatalf("PopulateFiles: %v", err)
	}

	md5s, ok := h.GetStringArray(header.TagFileMD5s)
	if !ok || len(md5s) != 1 {
		t.Fatalf("want 1 md5 entry, got %v ok=%v", md5s, ok)
	}
	const want = "e2fc714c4727ee9395f324cd2e7f331f"
	if md5s[0] != want {
		t.Errorf("md5 = %q, want %q", md5s[0], want)
	}

	sizes, ok := h.GetInt32(header.TagSize)
	if !ok || len(sizes) != 1 || sizes[0] != 4 {
		t.Errorf("TagSize = %v ok=%v, want [4]", sizes, ok)
	}
}

func TestPopulateFilesSymlinkHasEmptyMD5AndLinkTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	if err := os.WriteFile(target, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	ctx := newTestContext(t, "")
	m, err := ExpandManifest(ctx, link, ModeBinary)
	if err != nil {
		t.Fatalf("ExpandManifest: %v", err)
	}

	h := header.New()
	if err := PopulateFiles(ctx, h, m); err != nil {
		t.Fatalf("PopulateFiles: %v", err)
	}

	md5s, _ := h.GetStringArray(header.TagFileMD5s)
	links, _ := h.GetStringArray(header.TagFileLinks)
	if md5s[0] != "" {
		t.Errorf("symlink md5 = %q, want empty", md5s[0])
	}
	if links[0] != target {
		t.Errorf("link target = %q, want %q", links[0], target)
	}
}

// TestPopulateFilesSourceModeStagedSymlinkGetsRealMD5 mirrors driver_source.go's
// staging step: the manifest entry is built by stat'ing a symlink in source mode, and
// PopulateFiles must see it as a regular file with a real MD5, not an empty MD5 and a
// link-target column pointing at the staging symlink's target.
func TestPopulateFilesSourceModeStagedSymlinkGetsRealMD5(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "example-1.0.tar.gz")
	if err := os.WriteFile(target, []byte("abcd"), 0644); err != nil {
		t.Fatal(err)
	}
	stageDir := t.TempDir()
	staged := filepath.Join(stageDir, "example-1.0.tar.gz")
	if err := os.Symlink(target, staged); err != nil {
		t.Fatal(err)
	}

	rec, err := statRecord(ModeSource, staged, "example-1.0.tar.gz", false, false)
	if err != nil {
		t.Fatalf("statRecord: %v", err)
	}
	m := FileManifest{rec}

	ctx := newTestContext(t, "")
	h := header.New()
	if err := PopulateFiles(ctx, h, m); err != nil {
		t.Fatalf("PopulateFiles: %v", err)
	}

	md5s, _ := h.GetStringArray(header.TagFileMD5s)
	links, _ := h.GetStringArray(header.TagFileLinks)
	const want = "e2fc714c4727ee9395f324cd2e7f331f"
	if md5s[0] != want {
		t.Errorf("md5 = %q, want %q (the real file's hash)", md5s[0], want)
	}
	if links[0] != "" {
		t.Errorf("link target = %q, want empty for a regular file", links[0])
	}
}

func TestPopulateFilesFlagsDocAndConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx := newTestContext(t, "")
	m, err := ExpandManifest(ctx, "%config %doc "+path, ModeBinary)
	if err != nil {
		t.Fatalf("ExpandManifest: %v", err)
	}

	h := header.New()
	if err := PopulateFiles(ctx, h, m); err != nil {
		t.Fatalf("PopulateFiles: %v", err)
	}
	flags, _ := h.GetInt32(header.TagFileFlags)
	want := int32(header.FileFlagConfig) | int32(header.FileFlagDoc)
	if flags[0] != want {
		t.Errorf("flags = %d, want %d", flags[0], want)
	}
}
