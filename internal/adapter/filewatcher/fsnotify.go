// Package filewatcher signals changes to the dataset file.
package filewatcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher emits a signal after the watched file changes and then stays quiet
// for the debounce period. Bursts of writes produce one signal.
type Watcher struct {
	log      *slog.Logger
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
}

// New creates a watcher for the file at path. The parent directory is watched
// so that replace-by-rename updates are seen.
func New(logger *slog.Logger, path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve dataset path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	return &Watcher{
		log:      logger.With("component", "filewatcher"),
		watcher:  w,
		path:     abs,
		debounce: debounce,
	}, nil
}

// Watch starts monitoring. The returned channel is closed when ctx is done or
// the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	out := make(chan struct{}, 1)

	go func() {
		defer close(out)

		timer := time.NewTimer(w.debounce)
		if !timer.Stop() {
			<-timer.C
		}
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !w.relevant(event) {
					continue
				}
				w.log.DebugContext(ctx, "dataset file event", slog.String("op", event.Op.String()))
				timer.Reset(w.debounce)
			case <-timer.C:
				w.log.InfoContext(ctx, "dataset file changed", slog.String("path", w.path))
				select {
				case out <- struct{}{}:
				default:
					// A signal is already pending.
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.log.WarnContext(ctx, "file watcher error", slog.String("error", err.Error()))
			}
		}
	}()

	return out, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename)
}
