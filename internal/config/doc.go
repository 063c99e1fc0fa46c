// Package config loads galleria's TOML settings.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/galleria/config.toml
//  3. If the file doesn't exist, fall back to Defaults
//  4. If the file exists but fields are missing or invalid, use defaults
//
// After the file is applied, GALLERIA_UNSPLASH_KEY and then
// UNSPLASH_ACCESS_KEY override api_key when set.
//
// # TOML Format
//
//	api_key = ""
//	api_base = "https://api.unsplash.com"
//	page_size = 25
//	mock_size = 30
//	missing_credential = "mock"   # or "error"
//	storage_backend = "file"      # or "sqlite"
//	storage_path = "~/.local/share/galleria/favorites.json"
//	previews = true
//	preview_workers = 4
//	theme = "Dracula"
//
// Unknown enum values are logged and replaced by their defaults. Missing
// config files are not an error.
package config
