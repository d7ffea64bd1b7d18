package rsync

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/JayanAXHF/obsidian-syncer/pkg/must"
)

// stagingNamePrefix is the file name prefix used for the transient staging
// file created during Apply. It lives alongside the target so that the
// final rename is atomic even on platforms where rename is not guaranteed
// to be atomic across directories.
const stagingNamePrefix = ".obsidian-syncer-staging-"

// Apply executes delta against base and writes the reconstructed bytes to
// targetPath, replacing any existing file atomically from the caller's
// perspective. It never panics on a malformed delta: a Copy operation whose
// range extends beyond base is silently clipped rather than aborting the
// whole apply, since a correct builder never produces one but a corrupted
// or crafted delta must not be able to crash the applier.
func Apply(base []byte, delta *Delta, targetPath string) error {
	dir := filepath.Dir(targetPath)

	staging, err := os.CreateTemp(dir, stagingNamePrefix)
	if err != nil {
		return errors.Wrap(err, "unable to create staging file")
	}
	stagingPath := staging.Name()

	if err := writeDelta(staging, base, delta); err != nil {
		must.Close(staging, nil)
		must.OSRemove(stagingPath, nil)
		return errors.Wrap(err, "unable to write staging file")
	}

	if err := staging.Close(); err != nil {
		must.OSRemove(stagingPath, nil)
		return errors.Wrap(err, "unable to close staging file")
	}

	if err := os.Rename(stagingPath, targetPath); err != nil {
		must.OSRemove(stagingPath, nil)
		return errors.Wrap(err, "unable to rename staging file into place")
	}

	return nil
}

// writeDelta streams the reconstructed bytes for delta to w, flushing before
// returning.
func writeDelta(w *os.File, base []byte, delta *Delta) error {
	writer := bufio.NewWriter(w)

	baseLen := uint64(len(base))
	for _, op := range delta.Ops {
		switch op.Type {
		case OpCopy:
			start := op.Offset
			end := start + op.Len
			if end > baseLen {
				end = baseLen
			}
			if start < baseLen && start < end {
				if _, err := writer.Write(base[start:end]); err != nil {
					return err
				}
			}
		case OpInsert:
			if _, err := writer.Write(op.Data); err != nil {
				return err
			}
		}
	}

	if err := writer.Flush(); err != nil {
		return err
	}
	return w.Sync()
}
