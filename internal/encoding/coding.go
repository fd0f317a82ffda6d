// Package encoding provides fixed-width binary layout primitives for the
// on-disk chunk record format.
//
// All multi-byte integers are encoded in little-endian byte order. The
// record format is a byte-layout contract: serialization is always explicit,
// never a struct's in-memory representation.
package encoding

import (
	"encoding/binary"
	"errors"
)

// Fixed64Size is the encoded size of a fixed-width uint64.
const Fixed64Size = 8

// ErrBufferTooSmall is returned when the buffer doesn't have enough space.
var ErrBufferTooSmall = errors.New("encoding: buffer too small")

// EncodeFixed64 encodes a uint64 into an 8-byte little-endian buffer.
// REQUIRES: dst has at least 8 bytes.
func EncodeFixed64(dst []byte, value uint64) {
	binary.LittleEndian.PutUint64(dst, value)
}

// DecodeFixed64 decodes a uint64 from an 8-byte little-endian buffer.
// REQUIRES: src has at least 8 bytes.
func DecodeFixed64(src []byte) uint64 {
	return binary.LittleEndian.Uint64(src)
}

// AppendFixed64 appends a little-endian uint64 to dst and returns the
// extended slice.
func AppendFixed64(dst []byte, value uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, value)
}

// GetFixed64 decodes a uint64 from the front of src and returns the
// remaining bytes.
func GetFixed64(src []byte) (uint64, []byte, error) {
	if len(src) < Fixed64Size {
		return 0, src, ErrBufferTooSmall
	}
	return binary.LittleEndian.Uint64(src), src[Fixed64Size:], nil
}
