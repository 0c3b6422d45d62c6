// Package watcher implements C6 (spec.md §4.6): a debounced fsnotify
// observer over the data directory's three kind subdirectories, driving the
// same registry mutation paths Bootstrap uses in bulk. Grounded on the
// debounced-fsnotify pattern the teacher codebase uses for its own
// directory watcher.
package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/oxhq/langserved/internal/engine"
	"github.com/oxhq/langserved/internal/registries"
)

// Watcher observes the data directory and keeps a registries.Set in sync
// with it. Every mutation it drives is serialized from its own side (one
// debounced load or remove at a time, under applyMu), though registry
// readers run fully concurrently with it (spec.md §4.6).
type Watcher struct {
	fsw    *fsnotify.Watcher
	set    *registries.Set
	logger *zap.Logger

	debounce time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool

	// applyMu serializes the debounced callbacks, which time.AfterFunc runs
	// on goroutines of their own.
	applyMu sync.Mutex

	done chan struct{}
}

// New opens an OS-level watch subscription on each kind's subdirectory of
// dataRoot. A subdirectory that does not yet exist is created, mirroring
// the original source's behavior of always having somewhere to watch.
// Failure to establish the OS-level subscription is fatal (spec.md §4.6).
func New(dataRoot string, set *registries.Set, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, kind := range engine.AllKinds() {
		dir := filepath.Join(dataRoot, kind.Dir())
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fsw.Close()
			return nil, err
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	return &Watcher{
		fsw:      fsw,
		set:      set,
		logger:   logger,
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}, nil
}

// Run drives the watch loop until Close is called. It is meant to be run in
// its own goroutine, started concurrently with request serving once
// Bootstrap has returned (spec.md §4.7).
func (w *Watcher) Run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher: fsnotify error", zap.Error(err))
		}
	}
}

// Close stops the watch loop and waits for Run to exit.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.stopped = true
	for _, t := range w.timers {
		t.Stop()
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	<-w.done
	return err
}

// handle debounces an fsnotify event per path: each new event for the same
// path resets that path's timer rather than firing immediately, coalescing
// bursts from file-copy operations (spec.md §4.6).
func (w *Watcher) handle(event fsnotify.Event) {
	switch {
	case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
		w.schedule(event.Name, func() { w.applyLoad(event.Name) })
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		w.schedule(event.Name, func() { w.applyRemove(event.Name) })
	default:
		w.logger.Debug("watcher: ignoring event", zap.String("op", event.Op.String()), zap.String("path", event.Name))
	}
}

func (w *Watcher) schedule(path string, fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		w.applyMu.Lock()
		defer w.applyMu.Unlock()
		fn()
	})
}

func (w *Watcher) applyLoad(path string) {
	df, ok := engine.Classify(path)
	if !ok {
		return
	}
	if err := w.set.Load(df); err != nil {
		w.logger.Warn("watcher: failed to load data file, prior state retained",
			zap.String("kind", string(df.Kind)),
			zap.String("language", df.Language),
			zap.String("path", df.Path),
			zap.Error(err),
		)
	}
}

func (w *Watcher) applyRemove(path string) {
	kind, language, ok := engine.ClassifyRemoved(path)
	if !ok {
		return
	}
	w.set.Remove(kind, language)
}
