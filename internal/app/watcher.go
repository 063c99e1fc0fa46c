package app

import (
	"context"

	"k8s.io/klog/v2"

	"github.com/five82/galleria/internal/watch"
)

// StartWatcher launches a background goroutine reporting external writes to
// path. It returns nil when the file cannot be watched; the UI then relies on
// its own writes only.
func StartWatcher(ctx context.Context, path string) <-chan struct{} {
	w, err := watch.NewFile(path, 0)
	if err != nil {
		klog.Warningf("favorites watcher disabled: %v", err)
		return nil
	}
	go w.Run(ctx)
	return w.Changes()
}
