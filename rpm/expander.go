package rpm

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Mode selects whether a manifest line list is expanded for a binary sub-package
// (paths must be absolute, on-disk paths are read straight off RootDir) or a source
// package (paths are package-relative, already staged under a temp directory).
type Mode int

const (
	ModeBinary Mode = iota
	ModeSource
)

// ExpandManifest walks the %files-style directive text for one sub-package and
// returns one FileRecord per path named or discovered (SPEC_FULL.md §4.1). Directory
// entries named with %dir contribute only themselves; any other directory entry
// contributes itself and then expands recursively, every descendant inheriting the
// line's isdoc/isconf flags.
// A %docdir line registers a new doc-directory prefix and contributes no record of
// its own. A line with no path token and no %docdir is silently skipped. A named
// path that cannot be stat'd (source mode) or lstat'd (binary mode) is a
// *BadSpecError, raised immediately.
//
// The doc-directory registry is reset to its three defaults at the start of every
// call, per the spec's "the docdir registry is explicitly reset at the start of each
// manifest expansion" contract — a %docdir declared by one sub-package must never
// leak into another's file list.
func ExpandManifest(ctx *BuildContext, text string, mode Mode) (FileManifest, error) {
	ctx.DocDirs.Reset()

	var out FileManifest

	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		isDoc, isConfig, isDir := false, false, false
		path := ""
		for _, f := range fields {
			switch f {
			case "%doc":
				isDoc = true
			case "%config":
				isConfig = true
			case "%dir":
				isDir = true
			case "%docdir":
				// handled below once the whole line is scanned
			default:
				path = f
			}
		}

		if len(fields) == 1 && fields[0] == "%docdir" {
			continue // %docdir alone, no path: nothing to register
		}
		if containsDocDir(fields) {
			if path == "" {
				continue
			}
			if err := ctx.DocDirs.Add(path); err != nil {
				return nil, err
			}
			continue
		}

		if path == "" {
			// a %doc/%config-only line with no path: silently skipped
			continue
		}

		diskPath := path
		if mode == ModeBinary {
			if !strings.HasPrefix(path, "/") {
				return nil, badSpecf("file needs leading /")
			}
			if ctx.RootDir != "" {
				diskPath = filepath.Join(ctx.RootDir, path)
			}
		}

		rec, err := statRecord(mode, diskPath, path, isDoc, isConfig)
		if err != nil {
			return nil, badSpecf("file not found: %s", path)
		}

		if isDir && !rec.IsSymlink() {
			out = append(out, rec)
			continue
		}

		if rec.RawMode&modeTypeMask == modeDirectory && !rec.IsSymlink() {
			descendants, err := walkDir(mode, diskPath, path, isDoc, isConfig)
			if err != nil {
				return nil, badSpecf("walking %s: %v", path, err)
			}
			out = append(out, rec)
			out = append(out, descendants...)
			continue
		}

		out = append(out, rec)
	}

	return out, nil
}

const modeDirectory = 0040000

func containsDocDir(fields []string) bool {
	for _, f := range fields {
		if f == "%docdir" {
			return true
		}
	}
	return false
}

// statRecord builds a FileRecord for one manifest entry. Binary mode uses lstat, so a
// symlink named in the manifest surfaces as a symlink in the header. Source mode uses
// stat: every staged "source" entry is itself a symlink pointing at the real file
// (driver_source.go's stageSymlink), and the record must describe that real file, not
// the staging symlink, per SPEC_FULL.md §4.1 ("Use stat, not lstat").
func statRecord(mode Mode, diskPath, storedPath string, isDoc, isConfig bool) (FileRecord, error) {
	var fi os.FileInfo
	var err error
	if mode == ModeSource {
		fi, err = os.Stat(diskPath)
	} else {
		fi, err = os.Lstat(diskPath)
	}
	if err != nil {
		return FileRecord{}, err
	}
	return fileRecordFromInfo(fi, diskPath, storedPath, isDoc, isConfig), nil
}

// walkDir recursively descends diskPath, returning one record per entry found. In
// binary mode a symlink, including one that points at a directory, is recorded as
// a symlink and is not descended into. storedPath is the
// header-visible path corresponding to diskPath; the two walk in lock-step.
func walkDir(mode Mode, diskPath, storedPath string, isDoc, isConfig bool) (FileManifest, error) {
	entries, err := os.ReadDir(diskPath)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var out FileManifest
	for _, entry := range entries {
		childDisk := filepath.Join(diskPath, entry.Name())
		childStored := storedPath + "/" + entry.Name()

		rec, err := statRecord(mode, childDisk, childStored, isDoc, isConfig)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)

		if rec.RawMode&modeTypeMask == modeDirectory && !rec.IsSymlink() {
			descendants, err := walkDir(mode, childDisk, childStored, isDoc, isConfig)
			if err != nil {
				return nil, err
			}
			out = append(out, descendants...)
		}
	}
	return out, nil
}
