// Package watch signals when catalog manifests change on disk.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for a burst of writes to settle
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches manifest files and catalog directories
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	logger    *zap.Logger

	mu    sync.Mutex
	files map[string]struct{} // Watched manifest files (absolute)
	dirs  map[string]string   // Watched catalog roots -> glob pattern

	changes chan struct{}
}

// New creates a watcher with nothing registered yet
func New(logger *zap.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		debounce:  DefaultDebounce,
		logger:    logger,
		files:     make(map[string]struct{}),
		dirs:      make(map[string]string),
		changes:   make(chan struct{}, 1),
	}, nil
}

// SetDebounce changes the settle window. Call before Run.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// AddFile watches a single manifest. The parent directory is watched so
// editors that save by rename are still seen.
func (w *Watcher) AddFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.files[abs] = struct{}{}
	w.mu.Unlock()

	return w.fsWatcher.Add(filepath.Dir(abs))
}

// AddDir watches every manifest below root matching pattern
func (w *Watcher) AddDir(root, pattern string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.dirs[abs] = pattern
	w.mu.Unlock()

	return w.addTree(abs)
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsWatcher.Add(path); err != nil {
			w.logger.Debug("failed to watch directory", zap.String("path", path), zap.Error(err))
		}
		return nil
	})
}

// Changes delivers one signal per settled burst of manifest changes
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Run processes filesystem events until ctx is cancelled
func (w *Watcher) Run(ctx context.Context) {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				w.maybeAddDir(event.Name)
			}
			if !w.relevant(event.Name) {
				continue
			}
			w.logger.Debug("manifest changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}

// relevant reports whether path is a watched manifest
func (w *Watcher) relevant(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[path]; ok {
		return true
	}

	for root, pattern := range w.dirs {
		rel, ok := within(root, path)
		if !ok {
			continue
		}
		if match, _ := doublestar.Match(pattern, rel); match {
			return true
		}
	}
	return false
}

// maybeAddDir starts watching directories created inside a catalog root
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	w.mu.Lock()
	inRoot := false
	for root := range w.dirs {
		if _, ok := within(root, path); ok {
			inRoot = true
			break
		}
	}
	w.mu.Unlock()

	if inRoot {
		if err := w.addTree(path); err != nil {
			w.logger.Debug("failed to watch new directory", zap.String("path", path), zap.Error(err))
		}
	}
}

// within returns path relative to root in slash form, and false when path
// is not below root
func within(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
