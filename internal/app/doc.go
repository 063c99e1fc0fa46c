// Package app wires configuration, storage, the photo source and the UI into
// the running galleria program.
//
// # Startup
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()          TOML settings + env overrides
//	       ├─────> kv.Open()              file or sqlite store
//	       ├─────> source.New()           Unsplash client or mock
//	       ├─────> gallery.NewController()
//	       ├─────> preview.New()          thumbnail worker pool (optional)
//	       ├─────> StartWatcher()         file backend only
//	       └─────> ui.Run()               blocks until quit
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Config file unreadable or invalid TOML
//   - Store cannot be opened
//
// A missing API key with missing_credential = "error" is not fatal; it
// surfaces as a failed first page. Everything after startup is logged and
// shown in the UI.
package app
