// Package watcher reports saves of the shader currently on screen.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/richinsley/goshaderview/logging"
	"go.uber.org/zap"
)

// Watcher watches the directory of one file and reports writes to that file
// after they settle. The containing directory is watched rather than the
// file so that editors which save by rename are still seen.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	target   string
	dir      string
	pending  map[string]time.Time
	debounce time.Duration
	changes  chan string
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	log      *zap.Logger
}

// New creates a watcher that waits debounce after the last event on a file
// before reporting it.
func New(debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		watcher:  fw,
		pending:  make(map[string]time.Time),
		debounce: debounce,
		changes:  make(chan string, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		log:      logging.OrNop(log),
	}, nil
}

// Changes delivers the path of the watched file each time it settles after
// a change. At most one report is buffered.
func (w *Watcher) Changes() <-chan string { return w.changes }

// Watch switches the watched file to path.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.target = abs
	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		if err := w.watcher.Remove(w.dir); err != nil {
			w.log.Debug("failed to stop watching directory", zap.String("dir", w.dir), zap.Error(err))
		}
		w.dir = ""
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.dir = dir
	w.log.Debug("watching", zap.String("file", abs))
	return nil
}

// Start runs the event loop in a goroutine until ctx ends or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.run(ctx)
}

// Stop ends the event loop and closes the underlying watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		w.log.Warn("failed to close file watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := w.debounce / 2
	if tick <= 0 {
		tick = 10 * time.Millisecond
	}
	debounceTicker := time.NewTicker(tick)
	defer debounceTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watcher error", zap.Error(err))
		case now := <-debounceTicker.C:
			w.flush(now)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if name != w.target {
		return
	}
	w.pending[name] = time.Now()
}

func (w *Watcher) flush(now time.Time) {
	w.mu.Lock()
	var ready []string
	for name, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			ready = append(ready, name)
			delete(w.pending, name)
		}
	}
	w.mu.Unlock()

	for _, name := range ready {
		select {
		case w.changes <- name:
		default:
			// a reload is already queued
		}
	}
}
