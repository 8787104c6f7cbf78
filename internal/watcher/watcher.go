// Package watcher monitors application roots for filesystem changes so
// the registry can be rescanned when applications appear, disappear or
// change their declared dependencies.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeHandler is invoked with the set of paths that changed after the
// debounce window closes.
type ChangeHandler func(paths []string)

// Watcher monitors one or more application roots. Events are debounced:
// an editor save typically produces a burst of events, and the handler
// should fire once per burst, not once per event.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	roots     []string
	debounce  time.Duration
	onChange  ChangeHandler
	pending   map[string]time.Time
	mu        sync.Mutex
	done      chan struct{}
	running   bool
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// New creates a watcher over the given roots. Roots that do not exist
// are skipped at Start time. A non-positive debounce selects 500ms.
func New(roots []string, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating filesystem watcher: %w", err)
	}

	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		roots:     roots,
		debounce:  debounce,
		pending:   make(map[string]time.Time),
		done:      make(chan struct{}),
	}, nil
}

// SetOnChange sets the callback for debounced change notifications.
func (w *Watcher) SetOnChange(handler ChangeHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = handler
}

// Start begins watching. It returns an error only when no root could be
// watched at all.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.addRoots(); err != nil {
		return err
	}

	w.wg.Add(2)
	go w.processEvents()
	go w.processDebounce()

	return nil
}

// Stop stops the watcher and waits for its goroutines to exit. Safe to
// call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.mu.Unlock()

	w.stopOnce.Do(func() {
		close(w.done)
	})
	err := w.fsWatcher.Close()
	w.wg.Wait()
	return err
}

// WatchedRoots returns the roots that are actually being watched.
func (w *Watcher) WatchedRoots() []string {
	return w.fsWatcher.WatchList()
}

// addRoots watches each root and its immediate subdirectories. One
// level is enough: the entry point and the dependency file both live
// directly inside an application directory.
func (w *Watcher) addRoots() error {
	watched := 0
	for _, root := range w.roots {
		if err := w.fsWatcher.Add(root); err != nil {
			continue
		}
		watched++

		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			// Individual subdirectory failures are not fatal.
			_ = w.fsWatcher.Add(filepath.Join(root, entry.Name()))
		}
	}

	if watched == 0 {
		return fmt.Errorf("no watchable roots among %d configured", len(w.roots))
	}
	return nil
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if isTransient(event.Name) {
		return
	}

	// New application directories need their own watch so later edits
	// inside them are seen.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.fsWatcher.Add(event.Name)
		}
	}

	w.mu.Lock()
	w.pending[event.Name] = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) processDebounce() {
	defer w.wg.Done()
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.flushPending()
		}
	}
}

// flushPending invokes the handler once for all paths that have been
// quiet for a full debounce window.
func (w *Watcher) flushPending() {
	w.mu.Lock()
	handler := w.onChange
	if handler == nil || len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	now := time.Now()
	var ready []string
	for path, eventTime := range w.pending {
		if now.Sub(eventTime) >= w.debounce {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	if len(ready) > 0 {
		handler(ready)
	}
}

// isTransient reports whether a path looks like editor scratch state.
func isTransient(path string) bool {
	base := filepath.Base(path)
	if base == "" {
		return true
	}
	if base[0] == '.' || base[0] == '#' || base[len(base)-1] == '~' {
		return true
	}
	return strings.HasSuffix(base, ".swp") || base == "__pycache__"
}
