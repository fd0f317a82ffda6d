// Package pagefile writes one page of chunk records through the buffered
// write path and reads it back through the direct (unbuffered) read path.
//
// The write side behaves like any ordinary writer: sequential buffered
// writes, interruption retried, short writes accumulated. The read side is
// deliberately strict: one aligned read of exactly one page, with any
// deviation treated as fatal.
package pagefile

import (
	"errors"
	"fmt"
	"os"

	"github.com/aalhour/diocheck/internal/checksum"
	"github.com/aalhour/diocheck/internal/chunk"
	"github.com/aalhour/diocheck/internal/vfs"
)

var (
	// ErrRecordSizeMismatch is returned when the page size is not a whole
	// multiple of the record size. This is a configuration failure and is
	// detected before any file is created.
	ErrRecordSizeMismatch = errors.New("pagefile: page size is not a multiple of the record size")

	// ErrShortRead is returned when the direct read returns fewer bytes
	// than one page.
	ErrShortRead = errors.New("pagefile: short direct read")

	// ErrDigestMismatch is returned when the page read back does not hash
	// to the digest computed on the write side.
	ErrDigestMismatch = errors.New("pagefile: page digest mismatch")
)

// Populate creates the file at path and fills it with one page of chunk
// records, record i at byte offset i*RecordSize. It returns the XXH3 digest
// of the full encoded page.
//
// The file must not already exist. On any write failure the partially
// written file is removed before the error is returned, so no partial file
// is ever left behind.
func Populate(path string, pageSize int) (uint64, error) {
	if pageSize <= 0 || pageSize%chunk.RecordSize != 0 {
		return 0, fmt.Errorf("page size %d vs record size %d: %w",
			pageSize, chunk.RecordSize, ErrRecordSizeMismatch)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC|os.O_EXCL, 0600)
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}

	h := checksum.NewHasher()
	numRecords := pageSize / chunk.RecordSize
	rec := make([]byte, 0, chunk.RecordSize)
	for i := 0; i < numRecords; i++ {
		rec = chunk.AppendRecord(rec[:0], uint64(i*chunk.RecordSize))
		if err := vfs.SafeWrite(f, rec); err != nil {
			_ = vfs.Close(f)
			_ = os.Remove(path)
			return 0, fmt.Errorf("write record %d: %w", i, err)
		}
		_, _ = h.Write(rec)
	}

	if err := vfs.Close(f); err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("close temp file: %w", err)
	}
	return h.Sum64(), nil
}
