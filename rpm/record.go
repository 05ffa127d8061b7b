package rpm

// FileRecord describes one file to be packaged (SPEC_FULL.md §3). It is produced by
// the manifest expander from a single lstat (binary mode) or stat (source mode)
// call, is immutable thereafter, and is consumed (and discarded) by the header
// populator — which derives MD5 digests, symlink targets and owner/group names from
// it on the fly rather than mutating it.
type FileRecord struct {
	// Path is the path as stored in the header: absolute in binary mode, a
	// package-relative path staged under a temp dir in source mode.
	Path string

	// DiskPath is the path actually passed to lstat/stat/readlink — Path with
	// any root-prefix override prepended. For the source driver's staged entries
	// it is the staging-directory path, while Path is the bare file name.
	DiskPath string

	IsDoc    bool
	IsConfig bool

	Size  int64
	UID   int
	GID   int
	Mtime int64
	// RawMode is the raw stat mode, including file-type bits, matching
	// SPEC_FULL.md §4.3's "modes: stat mode (full bits including type)".
	RawMode uint32
	Rdev    int64
}

// IsSymlink reports whether the record's mode bits mark it as a symbolic link.
func (r FileRecord) IsSymlink() bool { return r.RawMode&modeTypeMask == modeSymlink }

// IsRegular reports whether the record's mode bits mark it as a regular file.
func (r FileRecord) IsRegular() bool { return r.RawMode&modeTypeMask == modeRegular }

// The low 12 bits plus type bits of a POSIX st_mode; only the two type bits this
// package cares about are named here since Go's os.FileMode does not preserve the
// raw file-type encoding stat(2) returns.
const (
	modeTypeMask = 0170000
	modeRegular  = 0100000
	modeSymlink  = 0120000
)

// FileManifest is an ordered, growable collection of FileRecord — the redesigned
// replacement (SPEC_FULL.md §11) for the original's linked-list accumulation.
type FileManifest []FileRecord

// TotalSize sums the Size field across every record, the value the header populator
// writes to the SIZE tag (SPEC_FULL.md §4.3, §8 "sum(file-sizes column) == SIZE tag").
func (m FileManifest) TotalSize() int64 {
	var total int64
	for _, r := range m {
		total += r.Size
	}
	return total
}
