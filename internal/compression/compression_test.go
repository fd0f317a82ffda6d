package compression

import (
	"bytes"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	// A page of repeated sentinel-style words, like a real artifact.
	data := bytes.Repeat([]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0xFF, 0xBF}, 512)

	for _, ct := range []Type{NoCompression, SnappyCompression, LZ4Compression, ZstdCompression} {
		t.Run(ct.String(), func(t *testing.T) {
			compressed, err := Compress(ct, data)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			decompressed, err := Decompress(ct, compressed)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(decompressed, data) {
				t.Errorf("round trip mismatch: got %d bytes, want %d", len(decompressed), len(data))
			}
		})
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		name    string
		want    Type
		wantErr bool
	}{
		{"none", NoCompression, false},
		{"snappy", SnappyCompression, false},
		{"lz4", LZ4Compression, false},
		{"zstd", ZstdCompression, false},
		{"gzip", NoCompression, true},
		{"", NoCompression, true},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseType(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFileExt(t *testing.T) {
	if ext := NoCompression.FileExt(); ext != "" {
		t.Errorf("NoCompression.FileExt() = %q, want empty", ext)
	}
	for _, ct := range []Type{SnappyCompression, LZ4Compression, ZstdCompression} {
		if ext := ct.FileExt(); ext == "" || ext[0] != '.' {
			t.Errorf("%v.FileExt() = %q, want dotted extension", ct, ext)
		}
	}
}
