package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/tailscale/hujson"
)

var envTemplateRe = regexp.MustCompile(`\$\{\{\s*\.Env\.(\w+)\s*\}\}`)

// Load reads a JSONC config file, expands ${{ .Env.VAR }} templates,
// standardizes it to plain JSON, unmarshals it into Config, and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault is Load, except that a missing file yields the default config.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes JSONC config content.
func Parse(data []byte) (*Config, error) {
	// Expand before standardizing, since templates live inside strings.
	expanded := expandEnvTemplates(string(data))

	std, err := hujson.Standardize([]byte(expanded))
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(std, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a config with every default applied.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// expandEnvTemplates replaces ${{ .Env.VAR }} with the env var value.
func expandEnvTemplates(s string) string {
	return envTemplateRe.ReplaceAllStringFunc(s, func(match string) string {
		parts := envTemplateRe.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		return os.Getenv(parts[1])
	})
}

// applyDefaults fills in zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendFile
	}
	if cfg.Storage.Path == "" {
		switch cfg.Storage.Backend {
		case BackendSQLite:
			cfg.Storage.Path = filepath.Join(MemopadPath(), "memopad.db")
		default:
			cfg.Storage.Path = filepath.Join(MemopadPath(), "store")
		}
	}
	if cfg.Storage.KeyFile == "" {
		cfg.Storage.KeyFile = filepath.Join(MemopadPath(), ".age-key")
	}

	if cfg.Clipboard.Backend == "" {
		cfg.Clipboard.Backend = ClipboardAuto
	}
	if cfg.Clipboard.CopiedFor <= 0 {
		cfg.Clipboard.CopiedFor = Duration(1500 * time.Millisecond)
	}

	if cfg.Display.CollapseChars <= 0 {
		cfg.Display.CollapseChars = 40
	}
	if cfg.Display.CollapseLines <= 0 {
		cfg.Display.CollapseLines = 3
	}
	if cfg.Display.ClampLines <= 0 {
		cfg.Display.ClampLines = 2
	}

	if cfg.Journal.Path == "" {
		cfg.Journal.Path = filepath.Join(MemopadPath(), "journal.jsonl")
	}
}

// UseBackend switches the storage backend and resets the path to that
// backend's default location.
func (c *Config) UseBackend(backend string) {
	c.Storage.Backend = backend
	c.Storage.Path = ""
	applyDefaults(c)
}
