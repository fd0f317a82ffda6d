package pagefile

import (
	"errors"
	"fmt"
	"io"

	"github.com/aalhour/diocheck/internal/checksum"
	"github.com/aalhour/diocheck/internal/chunk"
	"github.com/aalhour/diocheck/internal/vfs"
)

// VerifyOptions controls what VerifyPage checks beyond record 0.
type VerifyOptions struct {
	// AllRecords verifies every record in the page, not just record 0.
	AllRecords bool

	// WantDigest, when nonzero, is checked against the XXH3 digest of the
	// page before any record is decoded.
	WantDigest uint64
}

// ReadDirect opens path in direct (unbuffered) mode and reads exactly one
// page into a page-aligned buffer. A failed open is returned as-is; it is
// never downgraded to a buffered read.
//
// Exactly one read is issued. A short read or read error is fatal: how
// direct I/O interacts with interruption and short reads is not well-defined
// enough to paper over with retries.
func ReadDirect(path string, pageSize int) ([]byte, error) {
	buf, err := vfs.AlignedBlock(pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	f, err := vfs.OpenDirectRead(path)
	if err != nil {
		return nil, fmt.Errorf("open direct: %w", err)
	}
	defer func() { _ = vfs.Close(f) }()

	n, err := f.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("direct read: %w", err)
	}
	if n != pageSize {
		return nil, fmt.Errorf("direct read returned %d of %d bytes: %w", n, pageSize, ErrShortRead)
	}
	return buf, nil
}

// VerifyPage checks a page read back from disk: digest first when requested,
// then record 0, then the remaining records when AllRecords is set. The
// first failure wins.
func VerifyPage(page []byte, opts VerifyOptions) error {
	if opts.WantDigest != 0 {
		if got := checksum.Sum64(page); got != opts.WantDigest {
			return fmt.Errorf("page digest 0x%016x, want 0x%016x: %w",
				got, opts.WantDigest, ErrDigestMismatch)
		}
	}

	if err := chunk.VerifyBytes(page, 0); err != nil {
		return err
	}
	if !opts.AllRecords {
		return nil
	}
	for off := chunk.RecordSize; off+chunk.RecordSize <= len(page); off += chunk.RecordSize {
		if err := chunk.VerifyBytes(page[off:], uint64(off)); err != nil {
			return err
		}
	}
	return nil
}

// ReadAndVerify reads one page from path in direct mode and verifies it.
func ReadAndVerify(path string, pageSize int, opts VerifyOptions) error {
	page, err := ReadDirect(path, pageSize)
	if err != nil {
		return err
	}
	return VerifyPage(page, opts)
}
