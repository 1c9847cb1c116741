// Package watcher watches a document file and signals, debounced, when it
// changes on disk.
package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/spanedit/internal/log"
)

// Watcher monitors one document file for changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	onChange  chan struct{}
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	Path     string
	Debounce time.Duration
}

// DefaultConfig returns defaults for watching path.
func DefaultConfig(path string) Config {
	return Config{
		Path:     path,
		Debounce: 300 * time.Millisecond,
	}
}

// New creates a watcher for the file at cfg.Path.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		path:      filepath.Clean(cfg.Path),
		debounce:  cfg.Debounce,
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching. The returned channel receives a signal once a burst
// of changes to the file has settled.
func (w *Watcher) Start() (<-chan struct{}, error) {
	// Watch the directory so atomic rename-over saves are seen.
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}

	go w.loop()

	log.Debug(log.CatDocfile, "watching document", "path", w.path, "debounce", w.debounce)
	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	// settle is nil while no burst is pending.
	var settle <-chan time.Time
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warn(log.CatDocfile, "watch error", "path", w.path, "error", err)

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.touchesDocument(event) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			settle = timer.C

		case <-settle:
			settle = nil
			w.signal()
		}
	}
}

// signal never blocks; a pending signal already covers this change.
func (w *Watcher) signal() {
	select {
	case w.onChange <- struct{}{}:
	default:
	}
}

// touchesDocument reports writes to the file and files renamed or created in
// its place.
func (w *Watcher) touchesDocument(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}
