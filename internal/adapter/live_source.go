package adapter

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	m "planview.dev/pkg/planview/internal/model"
)

// LiveReportSource keeps an up-to-date snapshot of a report that is still
// being written, for interactive viewing sessions. A filesystem watcher
// reloads the report whenever the producer rewrites the file; readers always
// get the last successfully loaded tree.
//
// Snapshot is safe to call from the UI event loop while the watcher
// goroutine replaces the tree; the tree itself is never mutated in place,
// only swapped wholesale.
type LiveReportSource struct {
	store   ReportStore
	path    m.Path
	watcher *fsnotify.Watcher

	mu      sync.RWMutex
	current *m.Entry

	done chan struct{}
}

// NewLiveReportSource loads the report once and starts watching its
// directory for rewrites. Close must be called to release the watcher.
func NewLiveReportSource(store ReportStore, path m.Path) (*LiveReportSource, error) {
	root, err := store.Load(path)
	if err != nil {
		return nil, fmt.Errorf("initial load: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory, not the file: producers typically replace the
	// report via rename, which drops a direct file watch.
	if err := watcher.Add(filepath.Dir(string(path))); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch report dir: %w", err)
	}

	source := &LiveReportSource{
		store:   store,
		path:    path,
		watcher: watcher,
		current: root,
		done:    make(chan struct{}),
	}

	go source.watch()

	return source, nil
}

// Snapshot returns the most recently loaded tree.
func (s *LiveReportSource) Snapshot() *m.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// Close stops the watcher goroutine.
func (s *LiveReportSource) Close() error {
	close(s.done)
	return s.watcher.Close()
}

func (s *LiveReportSource) watch() {
	target := filepath.Clean(string(s.path))

	for {
		select {
		case <-s.done:
			return

		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != target {
				continue
			}

			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}

			s.reload()

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}

			slog.Warn("report watcher error", "path", s.path, "error", err)
		}
	}
}

// reload swaps in a fresh tree. A half-written file that fails to decode
// keeps the previous snapshot; the next write will be picked up.
func (s *LiveReportSource) reload() {
	root, err := s.store.Load(s.path)
	if err != nil {
		slog.Debug("skipping unreadable report revision", "path", s.path, "error", err)
		return
	}

	s.mu.Lock()
	s.current = root
	s.mu.Unlock()

	slog.Debug("reloaded live report", "path", s.path)
}
