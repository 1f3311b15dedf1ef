package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceDelay is how long the watcher waits for writes to settle
const DebounceDelay = 100 * time.Millisecond

// ReloadEvent carries a freshly loaded config, or the error loading it
type ReloadEvent struct {
	Path string
	File *File
	Err  error
}

// Watcher reloads the config file when it changes on disk
type Watcher struct {
	watcher       *fsnotify.Watcher
	path          string
	logger        *slog.Logger
	changes       chan ReloadEvent
	done          chan struct{}
	mu            sync.Mutex
	debounceTimer *time.Timer
	stopOnce      sync.Once
}

// NewWatcher creates a watcher for the config file at path
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		watcher: fsWatcher,
		path:    filepath.Clean(path),
		logger:  logger.With("component", "config_watcher"),
		changes: make(chan ReloadEvent, 4),
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching. The parent directory is watched because editors
// often replace the file instead of writing it in place.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	go w.watch()
	return nil
}

// Stop stops the watcher. Changes is left open; listeners select on Done.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
		w.mu.Unlock()
		w.watcher.Close()
	})
}

// Changes returns the channel for reload notifications
func (w *Watcher) Changes() <-chan ReloadEvent {
	return w.changes
}

// Done is closed once Stop has been called
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// watch is the main event loop
func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.mu.Lock()
			if w.debounceTimer != nil {
				w.debounceTimer.Stop()
			}
			w.debounceTimer = time.AfterFunc(DebounceDelay, w.reload)
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue watching
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// reload loads the file after debounce and notifies listeners
func (w *Watcher) reload() {
	f, err := Load(w.path)
	if err != nil {
		w.logger.Warn("config reload failed", "path", w.path, "error", err)
	} else {
		w.logger.Debug("config reloaded", "path", w.path, "profiles", len(f.Profiles))
	}

	select {
	case <-w.done:
	case w.changes <- ReloadEvent{Path: w.path, File: f, Err: err}:
	}
}
