// Package artifact collects evidence when a verification run fails.
//
// A bundle is a directory holding run.json (the run's configuration,
// environment, and failure) and the raw page image as read back from disk,
// compressed with the configured codec. The bundle lets a failure on one
// machine be inspected offline on another.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/aalhour/diocheck/internal/compression"
)

// RunInfo contains metadata about a verification run.
type RunInfo struct {
	Timestamp time.Time `json:"timestamp"`

	// Environment
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`

	// Configuration
	PageSize   int    `json:"page_size"`
	RecordSize int    `json:"record_size"`
	AllRecords bool   `json:"all_records"`
	TempFile   string `json:"temp_file"`
	Codec      string `json:"codec"`

	// Result
	Error string `json:"error,omitempty"`
}

// NewRunInfo returns a RunInfo stamped with the current time and build
// environment.
func NewRunInfo() RunInfo {
	return RunInfo{
		Timestamp: time.Now().UTC(),
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// Write creates a bundle directory under dir and writes run.json plus the
// compressed page image into it. It returns the bundle directory path.
// page may be nil when the failure happened before any page was read.
func Write(dir string, info RunInfo, page []byte, codec compression.Type) (string, error) {
	runDir := filepath.Join(dir, "diocheck-"+info.Timestamp.Format("20060102-150405.000000000"))
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("create bundle dir: %w", err)
	}

	info.Codec = codec.String()
	meta, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal run info: %w", err)
	}
	if err := os.WriteFile(filepath.Join(runDir, "run.json"), meta, 0644); err != nil {
		return "", fmt.Errorf("write run.json: %w", err)
	}

	if page != nil {
		compressed, err := compression.Compress(codec, page)
		if err != nil {
			return "", fmt.Errorf("compress page: %w", err)
		}
		name := "page.bin" + codec.FileExt()
		if err := os.WriteFile(filepath.Join(runDir, name), compressed, 0644); err != nil {
			return "", fmt.Errorf("write page image: %w", err)
		}
	}

	return runDir, nil
}

// ReadPage loads and decompresses the page image from a bundle directory
// written with the given codec.
func ReadPage(runDir string, codec compression.Type) ([]byte, error) {
	name := "page.bin" + codec.FileExt()
	compressed, err := os.ReadFile(filepath.Join(runDir, name))
	if err != nil {
		return nil, fmt.Errorf("read page image: %w", err)
	}
	return compression.Decompress(codec, compressed)
}
