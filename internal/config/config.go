package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"k8s.io/klog/v2"

	"github.com/five82/galleria/internal/kv"
	"github.com/five82/galleria/internal/source"
)

// Config captures galleria's user settings.
type Config struct {
	APIKey            string
	APIBase           string
	PageSize          int
	MockSize          int
	MissingCredential source.CredentialPolicy
	StorageBackend    string
	StoragePath       string
	Previews          bool
	PreviewWorkers    int
	Theme             string
}

const (
	defaultConfigPath     = "~/.config/galleria/config.toml"
	defaultFileStorePath  = "~/.local/share/galleria/favorites.json"
	defaultSQLiteDBPath   = "~/.local/share/galleria/galleria.db"
	defaultPageSize       = source.DefaultPageSize
	defaultMockSize       = source.DefaultMockSize
	defaultPreviewWorkers = 4
	defaultTheme          = "Dracula"
)

// Environment variables that override api_key, first match wins.
var apiKeyEnv = []string{"GALLERIA_UNSPLASH_KEY", "UNSPLASH_ACCESS_KEY"}

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		APIBase:           source.DefaultBaseURL,
		PageSize:          defaultPageSize,
		MockSize:          defaultMockSize,
		MissingCredential: source.PolicyMock,
		StorageBackend:    kv.BackendFile,
		StoragePath:       mustExpand(defaultFileStorePath),
		Previews:          true,
		PreviewWorkers:    defaultPreviewWorkers,
		Theme:             defaultTheme,
	}
}

// Load locates and parses the galleria config, falling back to defaults when
// missing. API key environment variables override the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIKey            string `toml:"api_key"`
		APIBase           string `toml:"api_base"`
		PageSize          int    `toml:"page_size"`
		MockSize          int    `toml:"mock_size"`
		MissingCredential string `toml:"missing_credential"`
		StorageBackend    string `toml:"storage_backend"`
		StoragePath       string `toml:"storage_path"`
		Previews          *bool  `toml:"previews"`
		PreviewWorkers    int    `toml:"preview_workers"`
		Theme             string `toml:"theme"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIKey = strings.TrimSpace(raw.APIKey)
	if base := strings.TrimSpace(raw.APIBase); base != "" {
		cfg.APIBase = base
	}
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}
	if raw.MockSize > 0 {
		cfg.MockSize = raw.MockSize
	}

	policy, ok := source.ParsePolicy(raw.MissingCredential)
	if !ok {
		klog.Warningf("config: unknown missing_credential %q, using %q", raw.MissingCredential, policy)
	}
	cfg.MissingCredential = policy

	switch backend := strings.ToLower(strings.TrimSpace(raw.StorageBackend)); backend {
	case "", kv.BackendFile:
		cfg.StorageBackend = kv.BackendFile
	case kv.BackendSQLite:
		cfg.StorageBackend = kv.BackendSQLite
		cfg.StoragePath = mustExpand(defaultSQLiteDBPath)
	default:
		klog.Warningf("config: unknown storage_backend %q, using %q", raw.StorageBackend, kv.BackendFile)
		cfg.StorageBackend = kv.BackendFile
	}
	if p := strings.TrimSpace(raw.StoragePath); p != "" {
		cfg.StoragePath = mustExpand(p)
	}

	if raw.Previews != nil {
		cfg.Previews = *raw.Previews
	}
	if raw.PreviewWorkers > 0 {
		cfg.PreviewWorkers = raw.PreviewWorkers
	}
	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		cfg.Theme = theme
	}

	applyEnv(&cfg)
	return cfg, nil
}

// HasCredential reports whether an API key is configured.
func (c Config) HasCredential() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// SourceOptions maps the config onto photo source options.
func (c Config) SourceOptions() source.Options {
	return source.Options{
		APIKey:           c.APIKey,
		BaseURL:          c.APIBase,
		PageSize:         c.PageSize,
		MockSize:         c.MockSize,
		MissingKeyPolicy: c.MissingCredential,
	}
}

func applyEnv(cfg *Config) {
	for _, name := range apiKeyEnv {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			cfg.APIKey = v
			return
		}
	}
}

// ExpandPath resolves a leading tilde and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
