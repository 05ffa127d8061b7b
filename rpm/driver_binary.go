package rpm

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/rpm-pack-builder/internal/archiveio"
	"github.com/etnz/rpm-pack-builder/internal/archtab"
	"github.com/etnz/rpm-pack-builder/internal/header"
	"github.com/etnz/rpm-pack-builder/spec"
)

// BuildPrimaryHeader assembles the header entries shared by every sub-package of one
// spec (SPEC_FULL.md §4.7): identity and license. These are the entries propagated
// into each sub-package header; summary, description, group and script hooks are
// per-sub-package and are never inherited.
func BuildPrimaryHeader(s *spec.Spec) (*header.Header, error) {
	h := header.New()
	if err := h.AddString(header.TagName, s.Name); err != nil {
		return nil, err
	}
	if err := h.AddString(header.TagVersion, s.Version); err != nil {
		return nil, err
	}
	if err := h.AddString(header.TagRelease, s.Release); err != nil {
		return nil, err
	}
	if s.License != "" {
		if err := h.AddString(header.TagLicense, s.License); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// subHeader returns a deep copy of primary with sub's own summary, description,
// group and script-hook fields added (SPEC_FULL.md §4.7 keeps the primary header's
// script hooks out of sub-package headers; primary carries no script hooks to begin
// with, so this holds by construction). Each field is set at
// most once per call, so the duplicate-tag rejection in header.Header.add never
// triggers here; errors are only possible if primary itself already carries one of
// these tags, which BuildPrimaryHeader never does.
func subHeader(primary *header.Header, sub spec.SubPackage) (*header.Header, error) {
	h := primary.Copy()
	type field struct {
		tag header.Tag
		v   string
	}
	fields := []field{
		{header.TagSummary, sub.Summary},
		{header.TagDesc, sub.Description},
		{header.TagGroup, sub.Group},
		{header.TagPreIn, sub.Scripts.PreIn},
		{header.TagPostIn, sub.Scripts.PostIn},
		{header.TagPreUn, sub.Scripts.PreUn},
		{header.TagPostUn, sub.Scripts.PostUn},
	}
	for _, f := range fields {
		if f.v == "" {
			continue
		}
		if err := h.AddString(f.tag, f.v); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// BuildBinaryPackages runs the binary-package driver (SPEC_FULL.md §4.7) over every
// sub-package declared in s, writing one .rpm file per sub-package that declares a
// non-empty file list into ctx.OutputDir. Sub-packages with an empty Files list are
// skipped, each producing an EventSubPackageSkipped.
func BuildBinaryPackages(ctx *BuildContext, s *spec.Spec) error {
	if s.Version == "" {
		return badSpecf("no version field")
	}
	if s.Release == "" {
		return badSpecf("no release field")
	}

	primary, err := BuildPrimaryHeader(s)
	if err != nil {
		return err
	}

	for _, sub := range s.Packages {
		if len(sub.Files) == 0 {
			ctx.emit(EventSubPackageSkipped{Session: ctx.SessionID, Name: s.OutputName(sub)})
			continue
		}
		if err := buildOneBinaryPackage(ctx, s, primary, sub); err != nil {
			return err
		}
	}
	return nil
}

func buildOneBinaryPackage(ctx *BuildContext, s *spec.Spec, primary *header.Header, sub spec.SubPackage) error {
	h, err := subHeader(primary, sub)
	if err != nil {
		return err
	}

	manifest, err := ExpandManifest(ctx, strings.Join(sub.Files, "\n"), ModeBinary)
	if err != nil {
		return err
	}
	SortManifest(manifest)

	if err := PopulateFiles(ctx, h, manifest); err != nil {
		return err
	}

	if err := addPlatformTags(ctx, h); err != nil {
		return err
	}

	if sub.Icon != "" {
		if err := addIcon(h, sub.Icon); err != nil {
			return err
		}
	}

	outName := fmt.Sprintf("%s-%s-%s.%s.rpm", s.OutputName(sub), s.Version, s.Release, archtab.HostArchName())
	outPath := filepath.Join(ctx.OutputDir, outName)

	f, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return &ExecError{Reason: "creating " + outPath, Err: err}
	}
	defer f.Close()

	lead := Lead{
		Type:    LeadTypeBinary,
		ArchNum: int16(archtab.HostArchCode()),
		Name:    s.OutputName(sub),
		OSNum:   int16(archtab.HostOSCode()),
	}
	if _, err := f.Write(lead.Bytes()); err != nil {
		return &ExecError{Reason: "writing lead for " + outPath, Err: err}
	}

	var hbuf bytes.Buffer
	if _, err := h.WriteTo(&hbuf); err != nil {
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
	pipeline.Dir = ctx.RootDir
	if pipeline.Dir == "" {
		pipeline.Dir = "/"
	}
	if err := pipeline.Run(f, names); err != nil {
		return &ExecError{Reason: "archiving " + outPath, Err: err}
	}

	ctx.emit(EventManifestExpanded{Session: ctx.SessionID, Package: s.OutputName(sub), FileCount: len(manifest), InstalledSize: manifest.TotalSize()})
	ctx.emit(EventArchiveStreamed{Session: ctx.SessionID, Path: outPath, FileCount: len(manifest)})
	ctx.emit(EventPackageWritten{Session: ctx.SessionID, Path: outPath, Kind: "binary"})
	return nil
}

// addPlatformTags writes the OS, arch, build-time and build-host tags. The OS tag
// intentionally mirrors the arch lookup by default (SPEC_FULL.md §11's decided
// redesign note preserving the original's tag-swap bug), controlled by
// ctx.WriteOSTagFromArch. OS and arch are one-byte fields (SPEC_FULL.md §4.3, §4.7).
func addPlatformTags(ctx *BuildContext, h *header.Header) error {
	osValue := archtab.HostOSCode()
	if ctx.WriteOSTagFromArch {
		osValue = archtab.HostArchCode()
	}
	if err := h.AddInt8(header.TagOS, []int8{osValue}); err != nil {
		return err
	}
	if err := h.AddInt8(header.TagArch, []int8{archtab.HostArchCode()}); err != nil {
		return err
	}
	if err := h.AddInt32(header.TagBuildTime, []int32{int32(ctx.BuildTime())}); err != nil {
		return err
	}
	return h.AddString(header.TagBuildHost, ctx.BuildHost())
}

// addIcon reads path and attaches it under the tag matching its content: a leading
// "GIF" marks a GIF, a leading "/* XPM" marks an XPM, anything else falls back to the
// generic icon tag (SPEC_FULL.md §4.7).
func addIcon(h *header.Header, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ExecError{Reason: "reading icon " + path, Err: err}
	}
	tag := header.TagIcon
	switch {
	case bytes.HasPrefix(data, []byte("GIF")):
		tag = header.TagGif
	case bytes.HasPrefix(data, []byte("/* XPM")):
		tag = header.TagXpm
	}
	return h.AddBinary(tag, data)
}
