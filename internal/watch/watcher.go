// Package watch monitors a jobs directory and triggers form runs when
// job files are dropped in or rewritten.
package watch

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// JobChangeCallback is called with the job files that changed since the
// last debounce window elapsed.
type JobChangeCallback func(changedFiles []string)

// JobWatcher monitors a directory for new or updated *.json job files.
type JobWatcher struct {
	watcher  *fsnotify.Watcher
	callback JobChangeCallback
	debounce time.Duration

	// Debounce state
	pending map[string]struct{}
	timer   *time.Timer
	mu      sync.Mutex

	cancel context.CancelFunc
}

// NewJobWatcher creates a watcher for the given jobs directory.
func NewJobWatcher(dir string, callback JobChangeCallback) (*JobWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	jw := &JobWatcher{
		watcher:  watcher,
		callback: callback,
		debounce: 500 * time.Millisecond, // Editors fire multiple events per save
		pending:  make(map[string]struct{}),
	}

	return jw, nil
}

// Start begins watching for file changes
func (jw *JobWatcher) Start(ctx context.Context) {
	ctx, jw.cancel = context.WithCancel(ctx)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-jw.watcher.Events:
				if !ok {
					return
				}
				jw.handleEvent(event)
			case _, ok := <-jw.watcher.Errors:
				if !ok {
					return
				}
				// Keep watching
			}
		}
	}()
}

// Stop stops watching for file changes
func (jw *JobWatcher) Stop() {
	if jw.cancel != nil {
		jw.cancel()
	}
	jw.watcher.Close()
}

func (jw *JobWatcher) handleEvent(event fsnotify.Event) {
	if !strings.HasSuffix(event.Name, ".json") {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	jw.mu.Lock()
	defer jw.mu.Unlock()

	jw.pending[event.Name] = struct{}{}

	if jw.timer != nil {
		jw.timer.Stop()
	}
	jw.timer = time.AfterFunc(jw.debounce, jw.flush)
}

func (jw *JobWatcher) flush() {
	jw.mu.Lock()
	pending := jw.pending
	jw.pending = make(map[string]struct{})
	jw.mu.Unlock()

	if jw.callback == nil || len(pending) == 0 {
		return
	}

	files := make([]string, 0, len(pending))
	for f := range pending {
		files = append(files, f)
	}
	jw.callback(files)
}

// SetDebounce sets the debounce duration for batching file changes
func (jw *JobWatcher) SetDebounce(d time.Duration) {
	jw.mu.Lock()
	defer jw.mu.Unlock()
	jw.debounce = d
}
