package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/JayanAXHF/obsidian-syncer/pkg/logging"
	"github.com/JayanAXHF/obsidian-syncer/pkg/timeutil"
)

// pluginsDebounceInterval coalesces bursts of writes to the same file (an
// editor's save-as-several-small-writes pattern, or a plugin's build step
// touching a handful of files in quick succession) into a single signal.
const pluginsDebounceInterval = 300 * time.Millisecond

// WatchPlugins watches vaultPath's plugin directory recursively and emits
// the relative path (relative to the plugin directory) of each changed
// regular file on the returned channel, filtered through ignorePatterns
// (doublestar glob patterns matched against that relative path). New
// subdirectories created after the watch starts are added automatically.
//
// The returned channel is closed when ctx is canceled.
func WatchPlugins(ctx context.Context, vaultPath string, ignorePatterns []string, logger *logging.Logger) (<-chan string, error) {
	root := filepath.Join(vaultPath, ".obsidian", "plugins")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "unable to create filesystem watcher")
	}

	if err := addRecursive(watcher, root, logger); err != nil {
		watcher.Close()
		return nil, errors.Wrap(err, "unable to watch plugin directory")
	}

	changed := make(chan string, 64)

	go func() {
		defer watcher.Close()
		defer close(changed)

		var mu sync.Mutex
		pending := make(map[string]*time.Timer)

		flush := func(path string) {
			select {
			case changed <- path:
			case <-ctx.Done():
			}
			mu.Lock()
			delete(pending, path)
			mu.Unlock()
		}

		for {
			select {
			case <-ctx.Done():
				mu.Lock()
				for _, timer := range pending {
					timeutil.StopAndDrainTimer(timer)
				}
				mu.Unlock()
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				if event.Has(fsnotify.Create) {
					if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
						if addErr := addRecursive(watcher, event.Name, logger); addErr != nil {
							logger.Warnf("Unable to watch new plugin subdirectory %q: %s", event.Name, addErr.Error())
						}
						continue
					}
				}

				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}

				relative, relErr := filepath.Rel(root, event.Name)
				if relErr != nil {
					continue
				}
				relative = filepath.ToSlash(relative)

				if matchesAny(ignorePatterns, relative) {
					continue
				}

				mu.Lock()
				if timer, exists := pending[relative]; exists {
					timeutil.StopAndDrainTimer(timer)
					timer.Reset(pluginsDebounceInterval)
				} else {
					path := relative
					pending[relative] = time.AfterFunc(pluginsDebounceInterval, func() { flush(path) })
				}
				mu.Unlock()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warnf("Plugin directory watch error: %s", err.Error())
			}
		}
	}()

	return changed, nil
}

// addRecursive walks dir and adds it and every subdirectory to watcher. It
// tolerates permission errors on individual entries rather than aborting
// the whole walk, logging a warning instead.
func addRecursive(watcher *fsnotify.Watcher, dir string, logger *logging.Logger) error {
	return filepath.Walk(dir, func(walkPath string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				logger.Warnf("Permission denied watching %q, skipping", walkPath)
				return nil
			}
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if addErr := watcher.Add(walkPath); addErr != nil {
			logger.Warnf("Unable to watch %q: %s", walkPath, addErr.Error())
		}
		return nil
	})
}

// matchesAny reports whether relativePath matches any of the given
// doublestar glob patterns.
func matchesAny(patterns []string, relativePath string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, relativePath); ok {
			return true
		}
	}
	return false
}
