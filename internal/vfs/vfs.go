//go:build unix

// Package vfs provides the filesystem primitives the verifier needs around
// direct I/O: page-aligned buffer allocation, O_DIRECT opens, and
// interruption-tolerant write and close wrappers.
//
// Direct I/O requires the buffer address, the transfer size, and the file
// offset to all be aligned to the logical block size. Here everything is
// aligned to the page size, which satisfies any smaller block size.
package vfs

import (
	"errors"
	"fmt"
	"os"
	"unsafe"

	"github.com/ncw/directio"
	"golang.org/x/sys/unix"
)

// DefaultBlockSize is the fallback logical block size when the filesystem
// cannot be queried.
const DefaultBlockSize = 4096

// ErrNotAligned is returned when an allocated buffer does not meet the
// requested alignment.
var ErrNotAligned = errors.New("vfs: buffer not aligned for direct I/O")

// ErrDirectIONotSupported is returned when direct I/O introspection is not
// available on the current platform.
var ErrDirectIONotSupported = errors.New("vfs: direct I/O not supported")

// Alignment returns the distance of the block's base address from the
// previous align boundary. Zero means the block is aligned.
func Alignment(block []byte, align int) int {
	if len(block) == 0 || align <= 1 {
		return 0
	}
	return int(uintptr(unsafe.Pointer(&block[0])) & uintptr(align-1))
}

// IsAligned reports whether value is a multiple of align.
func IsAligned(value, align int) bool {
	if align <= 0 {
		return true
	}
	return value%align == 0
}

// AlignedBlock allocates a size-byte buffer whose base address is a multiple
// of align. align must be a power of two.
func AlignedBlock(size, align int) ([]byte, error) {
	if size <= 0 || align <= 0 || align&(align-1) != 0 {
		return nil, fmt.Errorf("vfs: bad aligned block request (size %d, align %d)", size, align)
	}

	var block []byte
	if align <= directio.AlignSize {
		// directio aligns to AlignSize; any smaller power of two divides it.
		block = directio.AlignedBlock(size)
	} else {
		raw := make([]byte, size+align)
		if a := Alignment(raw, align); a != 0 {
			raw = raw[align-a:]
		}
		block = raw[:size]
	}

	if Alignment(block, align) != 0 {
		return nil, ErrNotAligned
	}
	return block, nil
}

// OpenDirectRead opens the named file read-only in direct (unbuffered) mode,
// bypassing the page cache. The error is returned as-is so callers can
// inspect the underlying errno; there is no fallback to buffered mode.
func OpenDirectRead(name string) (*os.File, error) {
	return directio.OpenFile(name, os.O_RDONLY, 0)
}

// SafeWrite writes all of p to f, retrying on interruption and accumulating
// byte counts across short writes. The first non-EINTR error is returned.
func SafeWrite(f *os.File, p []byte) error {
	for len(p) > 0 {
		n, err := f.Write(p)
		p = p[n:]
		if err != nil && !errors.Is(err, unix.EINTR) {
			return err
		}
	}
	return nil
}

// Close closes f, treating interruption as success. After EINTR the state of
// the descriptor is unspecified, so close is never retried and the
// interruption is not reported as a failure.
func Close(f *os.File) error {
	if err := f.Close(); err != nil && !errors.Is(err, unix.EINTR) {
		return err
	}
	return nil
}

// ProbeDirectIO reports whether the filesystem holding dir accepts a direct
// mode open. Some filesystems (notably tmpfs) reject O_DIRECT with EINVAL.
func ProbeDirectIO(dir string) bool {
	f, err := os.CreateTemp(dir, "diocheck-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	defer os.Remove(name)

	df, err := OpenDirectRead(name)
	if err != nil {
		return false
	}
	_ = df.Close()
	return true
}
