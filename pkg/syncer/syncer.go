package syncer

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/JayanAXHF/obsidian-syncer/pkg/logging"
	"github.com/JayanAXHF/obsidian-syncer/pkg/rsync"
	"github.com/JayanAXHF/obsidian-syncer/pkg/vault"
)

// maxConcurrentDestinations bounds how many destination vaults are synced
// in parallel during a single pass. Destinations are independent of one
// another, so there's no correctness reason to serialize them, but an
// unbounded fan-out would open one file-reading goroutine per destination
// per invocation with no ceiling.
const maxConcurrentDestinations = 4

// Options configures a SyncVaults pass.
type Options struct {
	// BlockSize overrides rsync.BlockSize when nonzero.
	BlockSize uint64
	// IgnorePatterns is a list of doublestar glob patterns, matched
	// against plugin-relative paths, that are skipped entirely.
	IgnorePatterns []string
}

// SyncVaults performs one full mirroring pass from source's plugin
// directory to each of destinations' plugin directories. For every regular
// file under source's .obsidian/plugins, it reads the source and
// destination copies, computes a delta, and applies it — in that order,
// per spec. Destinations are visited concurrently (bounded by
// maxConcurrentDestinations); the caller is responsible for ensuring that
// no two SyncVaults calls target overlapping destination sets at once.
func SyncVaults(ctx context.Context, source vault.Vault, destinations []vault.Vault, logger *logging.Logger, opts Options) (Report, error) {
	started := time.Now()
	runID := uuid.New().String()

	sourceRoot := source.PluginsPath()
	relativePaths, err := collectFiles(sourceRoot, opts.IgnorePatterns)
	if err != nil {
		return Report{}, errors.Wrap(err, "unable to walk source plugin directory")
	}

	var (
		mu     sync.Mutex
		report Report
		wg     sync.WaitGroup
		sem    = make(chan struct{}, maxConcurrentDestinations)
	)

	for _, destination := range destinations {
		destination := destination

		select {
		case <-ctx.Done():
			wg.Wait()
			return report, ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			destReport := syncOneDestination(sourceRoot, destination.PluginsPath(), relativePaths, opts.BlockSize, logger.Sublogger(filepath.Base(destination.Path)))

			mu.Lock()
			report.merge(destReport)
			mu.Unlock()
		}()
	}

	wg.Wait()
	report.RunID = runID
	report.Elapsed = time.Since(started)
	return report, nil
}

// syncOneDestination mirrors every path in relativePaths from sourceRoot
// into destRoot.
func syncOneDestination(sourceRoot, destRoot string, relativePaths []string, blockSize uint64, logger *logging.Logger) Report {
	var report Report

	for _, relative := range relativePaths {
		report.FilesScanned++

		sourcePath := filepath.Join(sourceRoot, relative)
		destPath := filepath.Join(destRoot, relative)

		changed, matched, literal, err := syncOneFile(sourcePath, destPath, blockSize)
		if err != nil {
			report.FilesFailed++
			report.Errors = append(report.Errors, errors.Wrapf(err, "unable to sync %q", relative))
			logger.Warnf("Unable to sync %q: %s", relative, err.Error())
			continue
		}

		if changed {
			report.FilesChanged++
		}
		report.BytesMatched += matched
		report.BytesLiteral += literal
	}

	return report
}

// syncOneFile reconciles a single file: it reads both copies as whole-file
// byte slices, and if they differ, computes and applies a delta. It
// reports whether the destination was rewritten and how many bytes were
// reconstructed by each operation kind.
func syncOneFile(sourcePath, destPath string, blockSize uint64) (changed bool, matchedBytes, literalBytes uint64, err error) {
	newData, err := os.ReadFile(sourcePath)
	if err != nil {
		return false, 0, 0, errors.Wrap(err, "unable to read source file")
	}

	base, err := os.ReadFile(destPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return false, 0, 0, errors.Wrap(err, "unable to read destination file")
		}
		base = nil
	}

	if bytesEqual(base, newData) {
		return false, uint64(len(base)), 0, nil
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return false, 0, 0, errors.Wrap(err, "unable to create destination directory")
	}

	delta := rsync.GenerateDeltaWithBlockSize(base, newData, blockSize)

	for _, op := range delta.Ops {
		switch op.Type {
		case rsync.OpCopy:
			matchedBytes += op.Len
		case rsync.OpInsert:
			literalBytes += uint64(len(op.Data))
		}
	}

	if err := rsync.Apply(base, delta, destPath); err != nil {
		return false, 0, 0, errors.Wrap(err, "unable to apply delta")
	}

	return true, matchedBytes, literalBytes, nil
}

// collectFiles walks root in depth-first order and returns the root-relative
// path of every regular file not excluded by patterns. Paths use forward
// slashes regardless of OS, matching the convention doublestar patterns
// expect.
func collectFiles(root string, patterns []string) ([]string, error) {
	var relativePaths []string

	err := filepath.Walk(root, func(walkPath string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if walkPath == root {
			return nil
		}

		relative, relErr := filepath.Rel(root, walkPath)
		if relErr != nil {
			return relErr
		}
		relative = filepath.ToSlash(relative)

		if info.IsDir() {
			if shouldIgnore(patterns, relative) {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}
		if shouldIgnore(patterns, relative) {
			return nil
		}

		relativePaths = append(relativePaths, relative)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return relativePaths, nil
}

func shouldIgnore(patterns []string, relativePath string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, relativePath); ok {
			return true
		}
	}
	return false
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
