// Package watch reports when a file is changed by another process.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"
)

const defaultDebounce = 150 * time.Millisecond

// File watches a single file. Its directory is watched rather than the file
// itself so atomic rename-over writes keep being observed.
type File struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	changes  chan struct{}
}

// NewFile starts watching path. Call Run to begin delivering changes.
func NewFile(path string, debounce time.Duration) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &File{
		path:     abs,
		debounce: debounce,
		watcher:  w,
		changes:  make(chan struct{}, 1),
	}, nil
}

// Changes receives one value per burst of writes to the file.
func (f *File) Changes() <-chan struct{} {
	return f.changes
}

// Run delivers changes until ctx is cancelled, then closes the watcher.
func (f *File) Run(ctx context.Context) {
	defer func() { _ = f.watcher.Close() }()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != f.path {
				continue
			}
			// The store's own temp-file renames land here too; consumers
			// compare against what they hold before acting.
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
				klog.V(1).Infof("watch: %s %s", ev.Op, ev.Name)
				fire = time.After(f.debounce)
			}
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			klog.Warningf("watch %s: %v", f.path, err)
		case <-fire:
			fire = nil
			select {
			case f.changes <- struct{}{}:
			default:
			}
		}
	}
}
