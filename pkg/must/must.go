// Package must provides small helpers for invoking cleanup-style operations
// (closing a handle, removing a stale file) whose error return is usually
// uninteresting but shouldn't be silently swallowed with a bare _ either.
package must

import (
	"io"
	"os"

	"github.com/JayanAXHF/obsidian-syncer/pkg/logging"
)

// Close closes c, logging a warning if it fails. It's meant for defer sites
// where a close error almost never changes program behavior but is still
// worth surfacing.
func Close(c io.Closer, logger *logging.Logger) {
	if err := c.Close(); err != nil {
		logger.Warnf("Unable to close: %s", err.Error())
	}
}

// OSRemove removes the named file, logging a warning if it fails (and
// ignoring the case where it's already gone). It's typically used to
// best-effort clean up a staging file after a failed atomic write.
func OSRemove(name string, logger *logging.Logger) {
	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		logger.Warnf("Unable to remove '%s': %s", name, err.Error())
	}
}

