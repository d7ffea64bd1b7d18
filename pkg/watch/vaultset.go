package watch

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/JayanAXHF/obsidian-syncer/pkg/logging"
)

// WatchVaultSet watches the vault registry file at path for writes and
// emits a signal on the returned channel each time its contents change.
// fsnotify can't watch a single file reliably across editors that save by
// rename-over (Obsidian does not, but the registry is still rewritten
// wholesale on every change), so this watches the file's parent directory
// and filters events down to the registry's own name.
//
// The returned channel is closed when ctx is canceled.
func WatchVaultSet(ctx context.Context, path string, logger *logging.Logger) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "unable to create filesystem watcher")
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, errors.Wrap(err, "unable to watch vault registry directory")
	}

	name := filepath.Base(path)
	signals := make(chan struct{}, 1)

	go func() {
		defer watcher.Close()
		defer close(signals)

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != name {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				select {
				case signals <- struct{}{}:
				default:
					// A signal is already pending; the consumer hasn't
					// caught up yet, and coalescing is fine since every
					// signal means "re-read the whole file."
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warnf("Vault registry watch error: %s", err.Error())
			}
		}
	}()

	return signals, nil
}
