package lockdir

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/fairway/internal/core/ports"
)

// DefaultDebounce is how long the watcher waits for writes to settle before reloading.
const DefaultDebounce = 200 * time.Millisecond

// Watch reloads the directory whenever its file changes, until ctx is done.
// The parent directory is watched so editors that replace the file by rename are seen.
// Reload failures are logged and the previous snapshot is kept.
func (d *Directory) Watch(ctx context.Context, logger ports.Logger, window time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(filepath.Dir(d.path)); err != nil {
		return err
	}

	target := filepath.Clean(d.path)
	deb := newDebouncer(window, func() {
		if err := d.Reload(); err != nil {
			if logger != nil {
				logger.Warn("lock file reload failed: " + err.Error())
			}
			return
		}
		if logger != nil {
			logger.Info("lock file reloaded")
		}
	})
	defer deb.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				deb.trigger()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if logger != nil {
				logger.Warn("lock file watcher: " + err.Error())
			}
		}
	}
}

// debouncer coalesces bursts of file events into a single reload.
type debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	window   time.Duration
	callback func()
}

func newDebouncer(window time.Duration, callback func()) *debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &debouncer{window: window, callback: callback}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.callback)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
