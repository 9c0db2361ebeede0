package catalog

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/dimensio/errors"
	"github.com/teranos/dimensio/units"
)

// DefaultDebounce is how long the watcher waits for a burst of file events
// to settle before rebuilding.
const DefaultDebounce = 250 * time.Millisecond

// BuildFunc builds a fresh registry, usually Loader.Build.
type BuildFunc func() (*units.Registry, error)

// ReloadCallback is called after every rebuild. On failure reg is nil, err
// is set and the holder still publishes the previous registry.
type ReloadCallback func(reg *units.Registry, err error)

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debouncePeriod = d }
}

// WithWatcherLogger sets the watcher's logger.
func WithWatcherLogger(logger *zap.SugaredLogger) WatcherOption {
	return func(w *Watcher) { w.logger = logOrNop(logger) }
}

// Watcher rebuilds the registry when any watched catalog file changes.
type Watcher struct {
	holder  *Holder
	build   BuildFunc
	files   map[string]bool
	watcher *fsnotify.Watcher
	logger  *zap.SugaredLogger

	mu             sync.Mutex
	callbacks      []ReloadCallback
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
}

// NewWatcher watches paths and publishes rebuilt registries to holder.
// Parent directories are watched rather than the files themselves, so
// editors that save by renaming a temporary file are still noticed.
func NewWatcher(holder *Holder, build BuildFunc, paths []string, opts ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		holder:         holder,
		build:          build,
		files:          make(map[string]bool, len(paths)),
		watcher:        fw,
		logger:         zap.NewNop().Sugar(),
		debouncePeriod: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to resolve catalog path %s", p)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch directory %s", dir)
		}
	}

	return w, nil
}

// OnReload registers a callback for rebuild results.
func (w *Watcher) OnReload(callback ReloadCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start watches until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.watchLoop(ctx)
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.files[abs] {
				continue
			}

			w.logger.Infow("Catalog change detected",
				"file", event.Name,
				"op", event.Op.String())
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("Catalog watcher error", "error", err)
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, func() {
		_ = w.Reload()
	})
}

// Reload rebuilds immediately. On success the new registry is published;
// on failure the previous one stays in place and the error is returned.
func (w *Watcher) Reload() error {
	reg, err := w.build()
	if err != nil {
		w.logger.Errorw("Catalog reload failed, keeping previous registry", "error", err)
	} else {
		w.holder.Swap(reg)
		w.logger.Infow("Catalog reloaded",
			"units", reg.Len(),
			"space", reg.Space().Name())
	}

	w.mu.Lock()
	callbacks := make([]ReloadCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, callback := range callbacks {
		callback(reg, err)
	}
	return err
}

// Stop stops watching and cancels any pending reload.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
