//go:build linux

package vfs

import (
	"os"

	"golang.org/x/sys/unix"
)

// BlockSize returns the logical block size of the filesystem holding path.
func BlockSize(path string) int {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil || st.Bsize <= 0 {
		return DefaultBlockSize
	}
	return int(st.Bsize)
}

// DirectIOEnabled reports whether f was opened with O_DIRECT.
// On Linux the flag is visible through F_GETFL.
func DirectIOEnabled(f *os.File) (bool, error) {
	flag, err := unix.FcntlInt(f.Fd(), unix.F_GETFL, 0)
	if err != nil {
		return false, err
	}
	return flag&unix.O_DIRECT != 0, nil
}
