// Package watcher re-runs a callback whenever a single file changes on
// disk, coalescing bursts of writes into one call.
package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// DefaultDebounce is how long the file must stay quiet before the callback runs.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors one file for writes and re-creations.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
	fs       *fsnotify.Watcher
}

// New creates a watcher for path. The parent directory is watched rather
// than the file itself so that editors which save by renaming a new file
// over the old one are still noticed.
//
// Arguments:
// - path: The file to watch.
// - debounce: Quiet period before the callback runs; 0 selects DefaultDebounce.
// - logger: Destination for watcher errors; nil discards them.
//
// Returns:
// - The watcher, ready for Run.
// - error if the path cannot be resolved or the directory cannot be watched.
func New(path string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve watched path")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		fsWatcher.Close()
		return nil, errors.Wrapf(err, "failed to watch folder %s", filepath.Dir(abs))
	}

	return &Watcher{path: abs, debounce: debounce, logger: logger, fs: fsWatcher}, nil
}

// Run calls fn once after every burst of changes to the watched file and
// returns when ctx is done or the watcher is closed. fn runs on the Run
// goroutine, so calls never overlap.
func (w *Watcher) Run(ctx context.Context, fn func()) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.logger.Debug("source changed", "path", w.path)
			fn()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "path", w.path, "error", err)
		}
	}
}

// Close stops watching. A concurrent Run returns.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
