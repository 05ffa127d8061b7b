//go:build linux

package rpm

import (
	"os"
	"syscall"
)

// fileRecordFromInfo builds a FileRecord straight off a single lstat(2) or stat(2)
// result, mirroring the original's struct file_entry.statbuf population in
// add_file(). diskPath is the path actually passed to lstat/stat/readlink; storedPath
// is the path recorded in the header.
func fileRecordFromInfo(fi os.FileInfo, diskPath, storedPath string, isDoc, isConfig bool) FileRecord {
	st := fi.Sys().(*syscall.Stat_t)
	return FileRecord{
		Path:     storedPath,
		DiskPath: diskPath,
		IsDoc:    isDoc,
		IsConfig: isConfig,
		Size:     fi.Size(),
		UID:      int(st.Uid),
		GID:      int(st.Gid),
		Mtime:    st.Mtim.Sec,
		RawMode:  uint32(st.Mode),
		Rdev:     int64(st.Rdev),
	}
}
