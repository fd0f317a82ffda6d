//go:build unix

package vfs

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestAlignedBlock(t *testing.T) {
	for _, tc := range []struct {
		size  int
		align int
	}{
		{4096, 512},
		{4096, 4096},
		{16384, 16384},
		{65536, 65536},
	} {
		block, err := AlignedBlock(tc.size, tc.align)
		if err != nil {
			t.Fatalf("AlignedBlock(%d, %d): %v", tc.size, tc.align, err)
		}
		if len(block) != tc.size {
			t.Errorf("AlignedBlock(%d, %d) len = %d", tc.size, tc.align, len(block))
		}
		if a := Alignment(block, tc.align); a != 0 {
			t.Errorf("AlignedBlock(%d, %d) misaligned by %d", tc.size, tc.align, a)
		}
	}
}

func TestAlignedBlockRejectsBadRequests(t *testing.T) {
	for _, tc := range []struct {
		size  int
		align int
	}{
		{0, 4096},
		{-1, 4096},
		{4096, 0},
		{4096, 1000}, // not a power of two
	} {
		if _, err := AlignedBlock(tc.size, tc.align); err == nil {
			t.Errorf("AlignedBlock(%d, %d) = nil error, want failure", tc.size, tc.align)
		}
	}
}

func TestIsAligned(t *testing.T) {
	tests := []struct {
		value, align int
		want         bool
	}{
		{0, 4096, true},
		{4096, 4096, true},
		{8192, 4096, true},
		{100, 4096, false},
		{4095, 4096, false},
		{7, 0, true},
	}
	for _, tt := range tests {
		if got := IsAligned(tt.value, tt.align); got != tt.want {
			t.Errorf("IsAligned(%d, %d) = %v, want %v", tt.value, tt.align, got, tt.want)
		}
	}
}

func TestSafeWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "safewrite")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	payload := bytes.Repeat([]byte{0xA5}, 12345)
	if err := SafeWrite(f, payload); err != nil {
		t.Fatalf("SafeWrite: %v", err)
	}
	if err := Close(f); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("read back %d bytes, want %d identical bytes", len(got), len(payload))
	}
}

func TestCloseReportsRealErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "closed-twice")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := Close(f); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := Close(f); err == nil {
		t.Error("second Close = nil, want error on closed file")
	}
}

func TestBlockSize(t *testing.T) {
	bs := BlockSize(t.TempDir())
	if bs <= 0 {
		t.Errorf("BlockSize = %d, want > 0", bs)
	}
}

func TestOpenDirectRead(t *testing.T) {
	dir := t.TempDir()
	if !ProbeDirectIO(dir) {
		t.Skip("direct I/O not supported on this filesystem")
	}

	path := filepath.Join(dir, "data")
	if err := os.WriteFile(path, make([]byte, 4096), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := OpenDirectRead(path)
	if err != nil {
		t.Fatalf("OpenDirectRead: %v", err)
	}
	defer f.Close()

	enabled, err := DirectIOEnabled(f)
	if errors.Is(err, ErrDirectIONotSupported) {
		t.Skip("direct I/O flag not inspectable on this platform")
	}
	if err != nil {
		t.Fatalf("DirectIOEnabled: %v", err)
	}
	if !enabled {
		t.Error("DirectIOEnabled = false for a direct-mode open")
	}
}
