// Package checksum provides the page digest used to cross-check the bytes
// handed to the kernel on the write path against the bytes returned by the
// direct read path.
package checksum

import (
	"github.com/zeebo/xxh3"
)

// Sum64 returns the XXH3 64-bit digest of data.
func Sum64(data []byte) uint64 {
	return xxh3.Hash(data)
}

// Hasher accumulates a digest incrementally, one record at a time.
type Hasher struct {
	h xxh3.Hasher
}

// NewHasher returns a zeroed Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Write adds p to the running digest. It never fails.
func (h *Hasher) Write(p []byte) (int, error) {
	return h.h.Write(p)
}

// Sum64 returns the digest of everything written so far.
func (h *Hasher) Sum64() uint64 {
	return h.h.Sum64()
}

// Reset clears the running digest.
func (h *Hasher) Reset() {
	h.h.Reset()
}
