package watch

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"featurepack/pkg/logging"
)

// DefaultDebounceInterval is how long the watcher waits for further changes
// before emitting a batch.
const DefaultDebounceInterval = 500 * time.Millisecond

// ChangeEvent is one debounced batch of configuration file changes.
type ChangeEvent struct {
	// Paths lists the changed files, sorted.
	Paths     []string
	Timestamp time.Time
}

// Watcher reports changes to the YAML files of one or more directories.
//
// Rapid successive writes (an editor saving, a config export rewriting the
// whole directory) collapse into a single ChangeEvent.
type Watcher struct {
	mu sync.Mutex

	dirs             []string
	watcher          *fsnotify.Watcher
	debounceInterval time.Duration

	pending map[string]bool
	timer   *time.Timer

	stopCh  chan struct{}
	running bool
}

// NewWatcher creates a watcher for dirs.
func NewWatcher(debounceInterval time.Duration, dirs ...string) *Watcher {
	if debounceInterval == 0 {
		debounceInterval = DefaultDebounceInterval
	}
	return &Watcher{
		dirs:             dirs,
		debounceInterval: debounceInterval,
		pending:          make(map[string]bool),
		stopCh:           make(chan struct{}),
	}
}

// Start begins watching. Events are delivered on changes until ctx is done or
// Stop is called.
func (w *Watcher) Start(ctx context.Context, changes chan<- ChangeEvent) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	w.watcher = watcher
	w.running = true
	w.stopCh = make(chan struct{})
	w.mu.Unlock()

	for _, dir := range w.dirs {
		if err := watcher.Add(dir); err != nil {
			w.Stop()
			return err
		}
		logging.Debug("Watcher", "Watching directory: %s", dir)
	}

	go w.processEvents(ctx, watcher, changes)

	logging.Info("Watcher", "Started watching %s for configuration changes", strings.Join(w.dirs, ", "))
	return nil
}

func (w *Watcher) processEvents(ctx context.Context, watcher *fsnotify.Watcher, changes chan<- ChangeEvent) {
	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return

		case <-w.stopCh:
			w.cancelPending()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			w.handleFsEvent(event, changes)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.Error("Watcher", err, "Filesystem watcher error")
		}
	}
}

func (w *Watcher) handleFsEvent(event fsnotify.Event, changes chan<- ChangeEvent) {
	if !isYAMLFile(event.Name) {
		return
	}
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[event.Name] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceInterval, func() { w.flush(changes) })
}

func (w *Watcher) flush(changes chan<- ChangeEvent) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]bool)
	w.timer = nil
	w.mu.Unlock()

	sort.Strings(paths)
	select {
	case changes <- ChangeEvent{Paths: paths, Timestamp: time.Now()}:
		logging.Debug("Watcher", "Emitted change event for %d files", len(paths))
	default:
		logging.Warn("Watcher", "Change event channel full, dropping %d changes", len(paths))
	}
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.pending = make(map[string]bool)
}

// Stop ends watching. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	w.running = false
	close(w.stopCh)

	var err error
	if w.watcher != nil {
		err = w.watcher.Close()
		if err != nil {
			logging.Error("Watcher", err, "Error closing filesystem watcher")
		}
		w.watcher = nil
	}
	logging.Info("Watcher", "Stopped watching")
	return err
}

func isYAMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
