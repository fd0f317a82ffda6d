// Package chunk defines the fixed-layout verification record written to and
// read back from disk.
//
// A record is 64 bytes: the record's own byte offset within the file, six
// sentinel pad words, and the bitwise complement of the offset as a redundant
// cross-check. Every field is a little-endian uint64 with no padding between
// fields, so a page filled with records is a pure byte-layout contract and
// any single corrupted or misplaced word is attributable to a named field.
package chunk

import (
	"fmt"

	"github.com/aalhour/diocheck/internal/encoding"
)

const (
	// RecordSize is the encoded size of one record in bytes.
	RecordSize = 8 * encoding.Fixed64Size

	// NumPads is the number of sentinel pad fields in a record.
	NumPads = 6
)

// padSentinel returns the fixed value expected in pad field i.
// Pads carry their own index (0,1,2,3,4,5) so a shifted or torn read
// surfaces as a specific pad mismatch.
func padSentinel(i int) uint64 {
	return uint64(i)
}

// Record is the decoded form of one verification record.
// Records are transient: they exist on disk and in read buffers, never as
// retained state.
type Record struct {
	Offset    uint64
	Pad       [NumPads]uint64
	NotOffset uint64
}

// FieldError reports the first record field that failed verification.
type FieldError struct {
	// Field is the wire name of the failing field: "offset", "pad0".."pad5",
	// or "not_offset".
	Field string

	// RecordOffset is the byte offset the record was expected to describe.
	RecordOffset uint64

	Got  uint64
	Want uint64
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("chunk at offset %d: bad %s value: got 0x%016x, want 0x%016x",
		e.RecordOffset, e.Field, e.Got, e.Want)
}

// Encode returns the encoded record for the given file offset.
func Encode(offset uint64) []byte {
	return AppendRecord(make([]byte, 0, RecordSize), offset)
}

// AppendRecord appends the encoded record for the given file offset to dst
// and returns the extended slice.
func AppendRecord(dst []byte, offset uint64) []byte {
	dst = encoding.AppendFixed64(dst, offset)
	for i := 0; i < NumPads; i++ {
		dst = encoding.AppendFixed64(dst, padSentinel(i))
	}
	return encoding.AppendFixed64(dst, ^offset)
}

// Decode decodes one record from the front of buf.
func Decode(buf []byte) (Record, error) {
	if len(buf) < RecordSize {
		return Record{}, fmt.Errorf("chunk: decode needs %d bytes, have %d: %w",
			RecordSize, len(buf), encoding.ErrBufferTooSmall)
	}
	var r Record
	r.Offset = encoding.DecodeFixed64(buf)
	for i := 0; i < NumPads; i++ {
		r.Pad[i] = encoding.DecodeFixed64(buf[(1+i)*encoding.Fixed64Size:])
	}
	r.NotOffset = encoding.DecodeFixed64(buf[(1+NumPads)*encoding.Fixed64Size:])
	return r, nil
}

// Verify checks a decoded record against the offset it is expected to
// describe. Fields are checked in wire order and the first mismatch is
// returned as a *FieldError; any single mismatch is a hard failure.
func Verify(r Record, expectedOffset uint64) error {
	if r.Offset != expectedOffset {
		return &FieldError{Field: "offset", RecordOffset: expectedOffset, Got: r.Offset, Want: expectedOffset}
	}
	for i := 0; i < NumPads; i++ {
		if r.Pad[i] != padSentinel(i) {
			return &FieldError{
				Field:        fmt.Sprintf("pad%d", i),
				RecordOffset: expectedOffset,
				Got:          r.Pad[i],
				Want:         padSentinel(i),
			}
		}
	}
	if r.NotOffset != ^expectedOffset {
		return &FieldError{Field: "not_offset", RecordOffset: expectedOffset, Got: r.NotOffset, Want: ^expectedOffset}
	}
	return nil
}

// VerifyBytes decodes one record from the front of buf and verifies it
// against expectedOffset.
func VerifyBytes(buf []byte, expectedOffset uint64) error {
	r, err := Decode(buf)
	if err != nil {
		return err
	}
	return Verify(r, expectedOffset)
}
