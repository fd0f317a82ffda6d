//go:build unix && !linux && !darwin

package vfs

import (
	"os"
)

// BlockSize returns the default logical block size on platforms without a
// supported filesystem query.
func BlockSize(_ string) int {
	return DefaultBlockSize
}

// DirectIOEnabled is unavailable on this platform.
func DirectIOEnabled(_ *os.File) (bool, error) {
	return false, ErrDirectIONotSupported
}
