package catalog

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig configures the catalog watcher
type WatcherConfig struct {
	// Dir is the catalog directory to watch
	Dir string

	// Base is overlaid by the reloaded tables (nil = reloaded tables only)
	Base *Catalog

	// DebounceDelay is how long to wait for more changes before reloading
	DebounceDelay time.Duration

	// Logger for logging events
	Logger *slog.Logger
}

// ReloadEvent carries the result of a reload
type ReloadEvent struct {
	// Catalog is the freshly loaded catalog (nil when Err is set)
	Catalog *Catalog

	// Paths are the table files whose change triggered the reload
	Paths []string

	// Err is set when the edited tables failed to load
	Err error
}

// Watcher reloads a catalog directory whenever one of its tables changes.
// Every reload produces a new Catalog; published catalogs are never mutated.
type Watcher struct {
	config  WatcherConfig
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	events chan ReloadEvent
}

// NewWatcher creates a new catalog watcher
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.DebounceDelay == 0 {
		config.DebounceDelay = 100 * time.Millisecond
	}

	return &Watcher{
		config:  config,
		watcher: fsw,
		logger:  logger,
		pending: make(map[string]fsnotify.Op),
		events:  make(chan ReloadEvent, 16),
	}, nil
}

// Events returns the channel of reload events
func (w *Watcher) Events() <-chan ReloadEvent {
	return w.events
}

// Start begins watching the catalog directory and its material directories
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.config.Dir); err != nil {
		return err
	}
	entries, err := os.ReadDir(w.config.Dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			w.addDir(filepath.Join(w.config.Dir, e.Name()))
		}
	}

	go w.processEvents(ctx)

	w.logger.Info("Catalog watcher started",
		"dir", w.config.Dir,
		"debounce", w.config.DebounceDelay)
	return nil
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) addDir(path string) {
	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		return
	}
	w.logger.Debug("Watching directory", "path", path)
}

// processEvents handles fsnotify events with debouncing
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	ticker := time.NewTicker(w.config.DebounceDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			w.addDir(path)
			return
		}
	}

	ext := filepath.Ext(path)
	if ext != ".yaml" && ext != ".yml" {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Table change detected", "path", path, "op", event.Op.String())
}

// flushPending reloads the catalog once per batch of changes
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	event := ReloadEvent{Paths: paths}
	loaded, err := LoadDir(w.config.Dir, w.logger)
	if err != nil {
		w.logger.Warn("Catalog reload failed", "error", err)
		event.Err = err
	} else {
		if w.config.Base != nil {
			loaded = w.config.Base.Overlay(loaded)
		}
		event.Catalog = loaded
		w.logger.Info("Catalog reloaded", "materials", loaded.Materials(), "changed", len(paths))
	}

	select {
	case w.events <- event:
	case <-ctx.Done():
	}
}
