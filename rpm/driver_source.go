package rpm

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/rpm-pack-builder/internal/archiveio"
	"github.com/etnz/rpm-pack-builder/internal/archtab"
	"github.com/etnz/rpm-pack-builder/spec"
)

// BuildSourcePackage runs the source-package driver (SPEC_FULL.md §4.8): it stages
// the spec file, every declared source, and each sub-package's icon as symlinks
// under a fresh temp directory, expands that staged file list in source mode, and
// writes a single .src.rpm. Staged symlinks and the temp directory are removed
// before returning, success or failure.
func BuildSourcePackage(ctx *BuildContext, s *spec.Spec) error {
	primary, err := BuildPrimaryHeader(s)
	if err != nil {
		return err
	}

	stageDir, err := os.MkdirTemp("", "rpmbuild-src-*")
	if err != nil {
		return &ExecError{Reason: "creating staging directory", Err: err}
	}
	if err := os.Chmod(stageDir, 0700); err != nil {
		os.RemoveAll(stageDir)
		return &ExecError{Reason: "setting staging directory mode", Err: err}
	}
	defer os.RemoveAll(stageDir)

	var staged []string

	specBase := filepath.Base(s.Path)
	if err := stageSymlink(stageDir, specBase, s.Path); err != nil {
		return err
	}
	staged = append(staged, specBase)

	specDir := filepath.Dir(s.Path)
	for _, src := range s.Sources {
		base := filepath.Base(src)
		target := src
		if !filepath.IsAbs(target) {
			target = filepath.Join(specDir, src)
		}
		if err := stageSymlink(stageDir, base, target); err != nil {
			return err
		}
		staged = append(staged, base)
	}

	// Each sub-package's own icon is staged under its own name, fixing the
	// original's stale-loop-variable bug (SPEC_FULL.md §11: the original reused
	// the sources loop's variable when computing the icon's destination path, so
	// every staged icon ended up pointing at the last declared source file).
	for _, sub := range s.Packages {
		if sub.Icon == "" {
			continue
		}
		base := filepath.Base(sub.Icon)
		target := sub.Icon
		if !filepath.IsAbs(target) {
			target = filepath.Join(specDir, sub.Icon)
		}
		if err := stageSymlink(stageDir, base, target); err != nil {
			return err
		}
		staged = append(staged, base)
	}

	// Every staged entry is itself a symlink (stageSymlink, above); stat rather than
	// lstat so the record describes the real source file, not the staging symlink.
	manifest := make(FileManifest, 0, len(staged))
	for _, name := range staged {
		rec, err := statRecord(ModeSource, filepath.Join(stageDir, name), name, false, false)
		if err != nil {
			return badSpecf("staging %s: file not found", name)
		}
		manifest = append(manifest, rec)
	}
	SortManifest(manifest)

	if err := PopulateFiles(ctx, primary, manifest); err != nil {
		return err
	}
	if err := addPlatformTags(ctx, primary); err != nil {
		return err
	}

	outName := fmt.Sprintf("%s-%s-%s.src.rpm", s.Name, s.Version, s.Release)
	outPath := filepath.Join(ctx.OutputDir, outName)

	f, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return &ExecError{Reason: "creating " + outPath, Err: err}
	}
	defer f.Close()

	lead := Lead{
		Type:    LeadTypeSource,
		ArchNum: int16(archtab.HostArchCode()),
		Name:    s.Name,
		OSNum:   int16(archtab.HostOSCode()),
	}
	if _, err := f.Write(lead.Bytes()); err != nil {
		return &ExecError{Reason: "writing lead for " + outPath, Err: err}
	}

	var hbuf bytes.Buffer
	if _, err := primary.WriteTo(&hbuf); err != nil {
		return &ExecError{Reason: "serializing header for " + outPath, Err: err}
	}
	if _, err := f.Write(hbuf.Bytes()); err != nil {
		return &ExecError{Reason: "writing header for " + outPath, Err: err}
	}

	names := make([]string, len(manifest))
	for i, r := range manifest {
		names[i] = r.Path
	}

	pipeline := archiveio.NewPipeline()
	pipeline.Verbose = ctx.Verbose
	pipeline.Dir = stageDir
	pipeline.Staging = true
	if err := pipeline.Run(f, names); err != nil {
		return &ExecError{Reason: "archiving " + outPath, Err: err}
	}

	ctx.emit(EventArchiveStreamed{Session: ctx.SessionID, Path: outPath, FileCount: len(manifest)})
	ctx.emit(EventPackageWritten{Session: ctx.SessionID, Path: outPath, Kind: "source"})
	return nil
}

func stageSymlink(stageDir, name, target string) error {
	abs, err := filepath.Abs(target)
	if err != nil {
		return &ExecError{Reason: "resolving " + target, Err: err}
	}
	if _, err := os.Lstat(abs); err != nil {
		return badSpecf("source file not found: %s", target)
	}
	linkPath := filepath.Join(stageDir, name)
	if err := os.Symlink(abs, linkPath); err != nil {
		return &ExecError{Reason: "staging " + target, Err: err}
	}
	return nil
}
