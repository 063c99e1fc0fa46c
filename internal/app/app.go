package app

import (
	"context"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/five82/galleria/internal/config"
	"github.com/five82/galleria/internal/favorites"
	"github.com/five82/galleria/internal/gallery"
	"github.com/five82/galleria/internal/kv"
	"github.com/five82/galleria/internal/preview"
	"github.com/five82/galleria/internal/source"
	"github.com/five82/galleria/internal/ui"
)

// Options configure the galleria application.
type Options struct {
	ConfigPath string
}

// Run boots the galleria TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := kv.Open(cfg.StorageBackend, cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StorageBackend, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			klog.Warningf("close store: %v", err)
		}
	}()
	klog.Infof("favorites stored in %s (%s)", cfg.StoragePath, cfg.StorageBackend)

	src, err := source.New(cfg.SourceOptions())
	if err != nil {
		return fmt.Errorf("init photo source: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ctrl := gallery.NewController(src, favorites.New(store))

	uiOpts := ui.Options{
		Context:    ctx,
		Controller: ctrl,
		Store:      store,
		ThemeName:  ui.SavedTheme(ctx, store, cfg.Theme),
	}

	if cfg.Previews {
		renderer := preview.New(ctx, preview.Options{
			Workers: cfg.PreviewWorkers,
			Width:   ui.CardWidth,
			Height:  ui.PreviewHeight,
		})
		// Cancel before Stop so blocked result sends give up.
		defer renderer.Stop()
		defer cancel()
		uiOpts.Previews = renderer
	}

	if cfg.StorageBackend == kv.BackendFile {
		uiOpts.Changes = StartWatcher(ctx, cfg.StoragePath)
	}

	return ui.Run(uiOpts)
}
