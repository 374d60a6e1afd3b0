// Package watch re-runs a callback when a model file changes on disk.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/zeebo/xxh3"

	"github.com/KhalidAdan/tables/internal/debug"
)

// DefaultDebounce is how long the watcher waits for writes to settle
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a file for changes
type Watcher struct {
	// Debounce is read by Start; zero means DefaultDebounce
	Debounce time.Duration

	file     string
	callback func() error
	watcher  *fsnotify.Watcher
	done     chan struct{}
	lastHash uint64
}

// NewWatcher creates a watcher for file. The containing directory is
// watched so editors that replace the file on save are still seen.
func NewWatcher(file string, callback func() error) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	absPath, err := filepath.Abs(file)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	return &Watcher{
		file:     absPath,
		callback: callback,
		watcher:  watcher,
		done:     make(chan struct{}),
	}, nil
}

// Start runs the callback once and then again after every change that
// alters the file's contents
func (w *Watcher) Start() error {
	if _, err := w.changed(); err != nil {
		return err
	}
	if err := w.callback(); err != nil {
		return fmt.Errorf("initial callback failed: %w", err)
	}

	delay := w.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}

	go func() {
		timer := time.NewTimer(delay)
		timer.Stop()
		var fire <-chan time.Time

		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if path, err := filepath.Abs(event.Name); err == nil && path == w.file {
					timer.Reset(delay)
					fire = timer.C
				}

			case <-fire:
				fire = nil
				changed, err := w.changed()
				if err != nil {
					debug.Warn("watch read failed", "file", w.file, "error", err)
					continue
				}
				if !changed {
					debug.Debug("watch skipped unchanged file", "file", w.file)
					continue
				}
				if err := w.callback(); err != nil {
					debug.Error("watch callback failed", "error", err)
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				debug.Error("watch error", "error", err)

			case <-w.done:
				timer.Stop()
				return
			}
		}
	}()

	return nil
}

// Stop stops watching the file
func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}

// changed hashes the file and reports whether it differs from the last
// hash seen. Only the watch goroutine calls it after Start.
func (w *Watcher) changed() (bool, error) {
	data, err := os.ReadFile(w.file)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", w.file, err)
	}
	sum := xxh3.Hash(data)
	if sum == w.lastHash {
		return false, nil
	}
	w.lastHash = sum
	return true, nil
}
