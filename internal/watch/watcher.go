// Package watch notifies when a flag store file changes on disk so the
// registry can be re-initialized.
package watch

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce batches the burst of events a single save produces.
const DefaultDebounce = 100 * time.Millisecond

// fileState identifies file content; a missing file is its own state.
type fileState struct {
	exists bool
	sum    uint64
}

// Watcher monitors a single store file. It emits on its channel only when
// the file's content actually changed, so rewrites of identical bytes (and
// the temp files used for atomic saves) never trigger a reload.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	logger    *slog.Logger

	changes  chan struct{}
	stopChan chan struct{}

	mu      sync.Mutex
	stopped bool // Stop was called
	closed  bool // changes is closed
	last    fileState
}

// New creates a watcher for path. The parent directory is watched so the
// file may be created, replaced or removed.
func New(path string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		fsWatcher.Close()
		return nil, err
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		path:      path,
		debounce:  debounce,
		logger:    logger,
		changes:   make(chan struct{}, 1),
		stopChan:  make(chan struct{}),
		last:      readState(path, logger),
	}, nil
}

// Start begins watching and returns the change channel. The channel is
// closed when the watcher stops.
func (w *Watcher) Start() <-chan struct{} {
	go w.run()
	return w.changes
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	w.stopped = true

	close(w.stopChan)
	w.fsWatcher.Close()
}

func (w *Watcher) run() {
	defer func() {
		w.mu.Lock()
		w.closed = true
		close(w.changes)
		w.mu.Unlock()
	}()

	var debounceTimer *time.Timer
	name := filepath.Base(w.path)

	for {
		select {
		case <-w.stopChan:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}

			w.logger.Debug("watch: event", "op", event.Op, "path", event.Name)

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, w.emitIfChanged)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch: error", "path", w.path, "err", err)
		}
	}
}

func (w *Watcher) emitIfChanged() {
	state := readState(w.path, w.logger)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || state == w.last {
		return
	}
	w.last = state

	select {
	case w.changes <- struct{}{}:
	default:
		// A change is already pending; the consumer reads the latest file.
	}
}

func readState(path string, logger *slog.Logger) fileState {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Debug("watch: read", "path", path, "err", err)
		}
		return fileState{}
	}
	return fileState{exists: true, sum: xxhash.Sum64(data)}
}
