package syncer

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Report summarizes one SyncVaults pass. It supplements the
// StartedSync/FinishedSync actions present in the reference
// implementation's Action enum, which the distilled specification dropped
// but which a complete tool still needs for logging and diagnostics.
type Report struct {
	// RunID uniquely identifies this pass, for correlating log lines across
	// a run that performs several passes (one per source vault).
	RunID string
	// FilesScanned is the total number of regular files visited in the
	// source plugin directory, across every destination.
	FilesScanned int
	// FilesChanged is the number of (file, destination) pairs whose
	// contents differed and were therefore rewritten.
	FilesChanged int
	// FilesFailed is the number of (file, destination) pairs that could
	// not be synced; see Errors for the underlying causes.
	FilesFailed int
	// BytesMatched is the total number of bytes reconstructed via Copy
	// operations (i.e. bytes the destination already had in common with
	// the source).
	BytesMatched uint64
	// BytesLiteral is the total number of bytes reconstructed via Insert
	// operations (i.e. bytes transferred as literal data).
	BytesLiteral uint64
	// Elapsed is the wall-clock duration of the pass.
	Elapsed time.Duration
	// Errors holds one error per failed (file, destination) pair,
	// wrapped with enough context to identify which pair failed.
	Errors []error
}

// String renders a one-line human-readable summary, suitable for a
// status-line print or a log line.
func (r Report) String() string {
	return fmt.Sprintf(
		"[%s] scanned %d, changed %d, failed %d (%s matched, %s literal) in %s",
		r.RunID, r.FilesScanned, r.FilesChanged, r.FilesFailed,
		humanize.Bytes(r.BytesMatched), humanize.Bytes(r.BytesLiteral), r.Elapsed,
	)
}

// merge folds other into r, accumulating counters and concatenating error
// lists. It's used to combine the per-destination reports produced by
// concurrent workers into the single Report returned by SyncVaults.
func (r *Report) merge(other Report) {
	r.FilesScanned += other.FilesScanned
	r.FilesChanged += other.FilesChanged
	r.FilesFailed += other.FilesFailed
	r.BytesMatched += other.BytesMatched
	r.BytesLiteral += other.BytesLiteral
	r.Errors = append(r.Errors, other.Errors...)
}
