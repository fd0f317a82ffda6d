// Package check sequences one verification run: populate a temporary file
// with chunk records through the buffered path, read it back through the
// direct path, verify, and clean up.
//
// The sequence is strictly linear and the first failure wins. The temporary
// file is removed on the way out no matter which stage failed; only the
// -keep option leaves it in place.
package check

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/aalhour/diocheck/internal/artifact"
	"github.com/aalhour/diocheck/internal/chunk"
	"github.com/aalhour/diocheck/internal/compression"
	"github.com/aalhour/diocheck/internal/logging"
	"github.com/aalhour/diocheck/internal/pagefile"
)

// Options configures a verification run.
type Options struct {
	// Dir is the directory for the temporary file. Empty means the current
	// working directory.
	Dir string

	// PageSize overrides the platform page size when positive.
	PageSize int

	// AllRecords verifies every record in the page, not just record 0.
	AllRecords bool

	// Keep leaves the temporary file in place after the run.
	Keep bool

	// ArtifactDir, when set, receives a failure bundle when the direct read
	// or the verification fails.
	ArtifactDir string

	// Codec compresses the artifact page image.
	Codec compression.Type

	// Logger receives run diagnostics. Nil gets a default stderr logger.
	Logger logging.Logger
}

// Run performs one populate, read-and-verify, cleanup cycle and returns the
// first error encountered.
func Run(opts Options) error {
	log := logging.OrDefault(opts.Logger)

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = os.Getpagesize()
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	path, err := tempName(dir)
	if err != nil {
		return err
	}
	log.Debugf(logging.NSDriver+"page size %d, record size %d, temp file %s",
		pageSize, chunk.RecordSize, path)

	defer func() {
		if opts.Keep {
			log.Infof(logging.NSDriver+"keeping temp file %s", path)
			return
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warnf(logging.NSDriver+"remove temp file: %v", err)
		}
	}()

	digest, err := pagefile.Populate(path, pageSize)
	if err != nil {
		log.Errorf(logging.NSPopulate+"populate failed: %v", err)
		return fmt.Errorf("populate: %w", err)
	}
	log.Infof(logging.NSPopulate+"wrote %d records (%d bytes), page digest 0x%016x",
		pageSize/chunk.RecordSize, pageSize, digest)

	page, err := pagefile.ReadDirect(path, pageSize)
	if err != nil {
		log.Errorf(logging.NSVerify+"direct read failed: %v", err)
		writeArtifact(opts, log, path, pageSize, nil, err)
		return fmt.Errorf("read: %w", err)
	}

	vopts := pagefile.VerifyOptions{AllRecords: opts.AllRecords, WantDigest: digest}
	if err := pagefile.VerifyPage(page, vopts); err != nil {
		log.Errorf(logging.NSVerify+"verification failed: %v", err)
		writeArtifact(opts, log, path, pageSize, page, err)
		return fmt.Errorf("verify: %w", err)
	}

	if opts.AllRecords {
		log.Infof(logging.NSVerify+"all %d records verified", pageSize/chunk.RecordSize)
	} else {
		log.Infof(logging.NSVerify + "record 0 verified")
	}
	return nil
}

// ExitCode maps a run error to the process exit code: 0 for success, the
// underlying errno when one is present, EINVAL for configuration errors, and
// EIO for verification failures and short reads.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, pagefile.ErrRecordSizeMismatch) {
		return int(unix.EINVAL)
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	var fe *chunk.FieldError
	if errors.As(err, &fe) {
		return int(unix.EIO)
	}
	if errors.Is(err, pagefile.ErrShortRead) || errors.Is(err, pagefile.ErrDigestMismatch) {
		return int(unix.EIO)
	}
	return 1
}

// tempName picks a unique file name under dir. The file itself is created
// exclusively by Populate.
func tempName(dir string) (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("temp name: %w", err)
	}
	return filepath.Join(dir, "diocheck-"+hex.EncodeToString(b[:])+".tmp"), nil
}

// writeArtifact records a failure bundle. Bundle errors are logged and never
// mask the failure that triggered them.
func writeArtifact(opts Options, log logging.Logger, path string, pageSize int, page []byte, cause error) {
	if opts.ArtifactDir == "" {
		return
	}
	info := artifact.NewRunInfo()
	info.PageSize = pageSize
	info.RecordSize = chunk.RecordSize
	info.AllRecords = opts.AllRecords
	info.TempFile = path
	info.Error = cause.Error()

	runDir, err := artifact.Write(opts.ArtifactDir, info, page, opts.Codec)
	if err != nil {
		log.Warnf(logging.NSArtifact+"bundle not written: %v", err)
		return
	}
	log.Infof(logging.NSArtifact+"failure bundle written to %s", runDir)
}
