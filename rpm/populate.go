package rpm

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"

	"github.com/etnz/rpm-pack-builder/internal/header"
)

// PopulateFiles writes the twelve parallel file-metadata columns described in
// SPEC_FULL.md §4.3 into h, in the order m is given (callers sort first via
// SortManifest). Regular files are hashed; symlinks are read to fill the link-target
// column; every other entry contributes an empty string in both. Owner and group
// names are resolved through ctx's identity caches, which may themselves return a
// *LimitError. An empty manifest writes no file columns, only a SIZE tag of zero.
func PopulateFiles(ctx *BuildContext, h *header.Header, m FileManifest) error {
	if len(m) == 0 {
		return h.AddInt32(header.TagSize, []int32{0})
	}

	names := make([]string, len(m))
	links := make([]string, len(m))
	md5s := make([]string, len(m))
	sizes := make([]int32, len(m))
	uids := make([]int32, len(m))
	gids := make([]int32, len(m))
	unames := make([]string, len(m))
	gnames := make([]string, len(m))
	mtimes := make([]int32, len(m))
	flags := make([]int32, len(m))
	modes := make([]int16, len(m))
	rdevs := make([]int16, len(m))

	for i, r := range m {
		names[i] = r.Path
		sizes[i] = int32(r.Size)
		uids[i] = int32(r.UID)
		gids[i] = int32(r.GID)
		mtimes[i] = int32(r.Mtime)
		modes[i] = int16(r.RawMode)
		rdevs[i] = int16(r.Rdev)

		var flag int32
		if r.IsConfig {
			flag |= int32(header.FileFlagConfig)
		}
		if r.IsDoc || ctx.DocDirs.IsDoc(r.Path) {
			flag |= int32(header.FileFlagDoc)
		}
		flags[i] = flag

		uname, err := ctx.Users.Resolve(r.UID)
		if err != nil {
			return err
		}
		unames[i] = uname

		gname, err := ctx.Groups.Resolve(r.GID)
		if err != nil {
			return err
		}
		gnames[i] = gname

		switch {
		case r.IsSymlink():
			target, err := os.Readlink(r.DiskPath)
			if err != nil {
				return &ExecError{Reason: "reading link " + r.DiskPath, Err: err}
			}
			links[i] = target
			md5s[i] = ""
		case r.IsRegular():
			sum, err := md5File(r.DiskPath)
			if err != nil {
				return &ExecError{Reason: "hashing " + r.DiskPath, Err: err}
			}
			links[i] = ""
			md5s[i] = sum
		default:
			links[i] = ""
			md5s[i] = ""
		}
	}

	type stringCol struct {
		tag header.Tag
		v   []string
	}
	for _, c := range []stringCol{
		{header.TagFilenames, names},
		{header.TagFileLinks, links},
		{header.TagFileMD5s, md5s},
		{header.TagFileUname, unames},
		{header.TagFileGname, gnames},
	} {
		if err := h.AddStringArray(c.tag, c.v); err != nil {
			return err
		}
	}

	type int32Col struct {
		tag header.Tag
		v   []int32
	}
	for _, c := range []int32Col{
		{header.TagFileSizes, sizes},
		{header.TagFileUIDs, uids},
		{header.TagFileGIDs, gids},
		{header.TagFileMtimes, mtimes},
		{header.TagFileFlags, flags},
	} {
		if err := h.AddInt32(c.tag, c.v); err != nil {
			return err
		}
	}

	if err := h.AddInt16(header.TagFileModes, modes); err != nil {
		return err
	}
	if err := h.AddInt16(header.TagFileRDevs, rdevs); err != nil {
		return err
	}

	return h.AddInt32(header.TagSize, []int32{int32(m.TotalSize())})
}

func md5File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sum := md5.New()
	if _, err := io.Copy(sum, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(sum.Sum(nil)), nil
}
