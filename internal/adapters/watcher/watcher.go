package watcher

import (
	"context"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/assemble/internal/adapters/fs"
	"go.trai.ch/assemble/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	walker *fs.Walker
	logger ports.Logger
	window time.Duration
}

// NewWatcher creates a new file system watcher that batches events over window.
func NewWatcher(walker *fs.Walker, logger ports.Logger, window time.Duration) *Watcher {
	return &Watcher{
		walker: walker,
		logger: logger,
		window: window,
	}
}

// Watch watches root recursively until ctx is canceled. Batches are delivered to onChange
// one at a time on the calling goroutine.
func (w *Watcher) Watch(ctx context.Context, root string, ignore []string, onChange func(paths []string)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create file watcher")
	}
	defer func() { _ = fsw.Close() }()

	for dir := range w.walker.WalkDirs(root, ignore) {
		if err := fsw.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to watch directory"), "path", dir)
		}
	}

	batches := make(chan []string)
	debouncer := NewDebouncer(w.window, func(paths []string) {
		select {
		case batches <- paths:
		case <-ctx.Done():
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case paths := <-batches:
			onChange(paths)

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) || w.walker.Excluded(root, event.Name, ignore) {
				continue
			}
			debouncer.Add(event.Name)

			// New directories are watched along with everything below them.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					for dir := range w.walker.WalkDirs(event.Name, ignore) {
						_ = fsw.Add(dir)
					}
				}
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error: " + err.Error())
		}
	}
}

func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
