//go:build darwin

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

// DirectIOEnabled is unavailable on Darwin: unbuffered mode is set with
// F_NOCACHE, which is not reflected in the file status flags.
func DirectIOEnabled(_ *os.File) (bool, error) {
	return false, ErrDirectIONotSupported
}
