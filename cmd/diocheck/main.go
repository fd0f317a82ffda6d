// diocheck verifies that a storage stack honors direct (unbuffered,
// page-aligned) I/O semantics.
//
// diocheck writes one page of fixed-layout chunk records to a temporary file
// through the normal buffered path, reopens the file in direct mode
// (bypassing the page cache), reads the page back into a page-aligned
// buffer, and verifies the records byte for byte. The temporary file is
// removed on the way out regardless of outcome.
//
// Semantics of O_DIRECT can be found at http://lwn.net/Articles/348739/
//
// Run a check:
//
// ```bash
// ./bin/diocheck -dir /mnt/target -all
// ```
//
// The exit code is 0 on success; on failure it carries the underlying errno
// (EINVAL for configuration errors, EIO for verification failures).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/aalhour/diocheck/internal/check"
	"github.com/aalhour/diocheck/internal/compression"
	"github.com/aalhour/diocheck/internal/logging"
)

var (
	dir         = flag.String("dir", ".", "Directory for the temporary file")
	pageSize    = flag.Int("page-size", 0, "Page size in bytes (default: platform page size)")
	allRecords  = flag.Bool("all", false, "Verify every record in the page, not just record 0")
	keep        = flag.Bool("keep", false, "Keep the temporary file after the run")
	artifactDir = flag.String("artifact-dir", "", "Directory for failure artifact bundles (disabled when empty)")
	codecName   = flag.String("compress", "zstd", "Artifact compression: zstd, lz4, snappy, none")
	verbose     = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	codec, err := compression.ParseType(*codecName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	level := logging.LevelInfo
	if *verbose {
		level = logging.LevelDebug
	}
	log := logging.NewDefaultLogger(level)

	err = check.Run(check.Options{
		Dir:         *dir,
		PageSize:    *pageSize,
		AllRecords:  *allRecords,
		Keep:        *keep,
		ArtifactDir: *artifactDir,
		Codec:       codec,
		Logger:      log,
	})
	if err != nil {
		log.Errorf(logging.NSDriver+"direct I/O check failed: %v", err)
	} else {
		log.Infof(logging.NSDriver + "direct I/O check passed")
	}
	os.Exit(check.ExitCode(err))
}
