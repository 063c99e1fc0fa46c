package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/galleria/internal/kv"
	"github.com/five82/galleria/internal/source"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, name := range apiKeyEnv {
		t.Setenv(name, "")
	}
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearKeyEnv(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.PageSize != defaultPageSize {
		t.Fatalf("PageSize = %d, want %d", cfg.PageSize, defaultPageSize)
	}
	if cfg.MissingCredential != source.PolicyMock {
		t.Fatalf("MissingCredential = %q, want mock", cfg.MissingCredential)
	}
	if cfg.StorageBackend != kv.BackendFile {
		t.Fatalf("StorageBackend = %q, want file", cfg.StorageBackend)
	}
	wantStore, err := expandPath(defaultFileStorePath)
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	if cfg.StoragePath != wantStore {
		t.Fatalf("StoragePath = %q, want %q", cfg.StoragePath, wantStore)
	}
	if cfg.HasCredential() {
		t.Fatalf("HasCredential = true, want false")
	}
	if !cfg.Previews {
		t.Fatalf("Previews = false, want default true")
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearKeyEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_key = "  abc123  "
api_base = " http://localhost:9999 "
page_size = 9
mock_size = 30
missing_credential = "error"
storage_backend = "sqlite"
storage_path = "~/.galleria/favs.db"
previews = false
preview_workers = 2
theme = " Slate "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "abc123" || cfg.APIBase != "http://localhost:9999" {
		t.Fatalf("api = %q %q, want trimmed values", cfg.APIKey, cfg.APIBase)
	}
	if cfg.PageSize != 9 || cfg.MockSize != 30 || cfg.PreviewWorkers != 2 {
		t.Fatalf("sizes = %d/%d/%d, want 9/30/2", cfg.PageSize, cfg.MockSize, cfg.PreviewWorkers)
	}
	if cfg.MissingCredential != source.PolicyError {
		t.Fatalf("MissingCredential = %q, want error", cfg.MissingCredential)
	}
	if cfg.StorageBackend != kv.BackendSQLite {
		t.Fatalf("StorageBackend = %q, want sqlite", cfg.StorageBackend)
	}
	if !strings.HasPrefix(cfg.StoragePath, home) || !strings.HasSuffix(cfg.StoragePath, "favs.db") {
		t.Fatalf("StoragePath = %q, want it under HOME %q", cfg.StoragePath, home)
	}
	if cfg.Previews {
		t.Fatalf("Previews = true, want false")
	}
	if cfg.Theme != "Slate" {
		t.Fatalf("Theme = %q, want Slate", cfg.Theme)
	}

	opts := cfg.SourceOptions()
	if opts.APIKey != "abc123" || opts.PageSize != 9 || opts.MissingKeyPolicy != source.PolicyError {
		t.Fatalf("SourceOptions = %+v", opts)
	}
}

func TestLoad_SQLiteBackendDefaultsItsOwnPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearKeyEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`storage_backend = "SQLITE"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want, _ := expandPath(defaultSQLiteDBPath)
	if cfg.StoragePath != want {
		t.Fatalf("StoragePath = %q, want %q", cfg.StoragePath, want)
	}
}

func TestLoad_InvalidEnumsFallBack(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearKeyEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
missing_credential = "panic"
storage_backend = "redis"
page_size = -3
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.MissingCredential != source.PolicyMock {
		t.Fatalf("MissingCredential = %q, want mock", cfg.MissingCredential)
	}
	if cfg.StorageBackend != kv.BackendFile {
		t.Fatalf("StorageBackend = %q, want file", cfg.StorageBackend)
	}
	if cfg.PageSize != defaultPageSize {
		t.Fatalf("PageSize = %d, want %d", cfg.PageSize, defaultPageSize)
	}
}

func TestLoad_EnvOverridesAPIKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearKeyEnv(t)
	t.Setenv("UNSPLASH_ACCESS_KEY", "from-env")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_key = "from-file"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "from-env" {
		t.Fatalf("APIKey = %q, want from-env", cfg.APIKey)
	}

	t.Setenv("GALLERIA_UNSPLASH_KEY", "preferred")
	cfg, _ = Load(filepath.Join(t.TempDir(), "missing.toml"))
	if cfg.APIKey != "preferred" {
		t.Fatalf("APIKey = %q, want preferred", cfg.APIKey)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`page_size = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
