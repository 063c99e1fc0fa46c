package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStartWatcher_ReportsExternalWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), "favorites.json")
	changes := StartWatcher(ctx, path)
	if changes == nil {
		t.Fatalf("StartWatcher returned nil for a writable directory")
	}

	if err := os.WriteFile(path, []byte(`{"cp_favs":"[]"}`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case <-changes:
	case <-time.After(3 * time.Second):
		t.Fatalf("no change reported after write")
	}
}

func TestStartWatcher_MissingDirectoryDisablesWatching(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "favorites.json")
	if changes := StartWatcher(context.Background(), path); changes != nil {
		t.Fatalf("StartWatcher = %v, want nil for a missing directory", changes)
	}
}
