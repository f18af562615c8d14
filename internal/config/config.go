package config

import (
	"encoding/json"
	"time"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Clipboard backends.
const (
	ClipboardAuto   = "auto"
	ClipboardSystem = "system"
	ClipboardOSC52  = "osc52"
)

// Config is the root configuration for memopad.
type Config struct {
	Storage   StorageConfig   `json:"storage"`
	Clipboard ClipboardConfig `json:"clipboard"`
	Display   DisplayConfig   `json:"display"`
	Journal   JournalConfig   `json:"journal"`
}

// StorageConfig selects where memos and preferences are persisted.
type StorageConfig struct {
	Backend string `json:"backend"` // "file", "sqlite", "memory"
	Path    string `json:"path"`    // directory for "file", database file for "sqlite"
	Encrypt bool   `json:"encrypt"` // wrap the backend with age encryption
	KeyFile string `json:"key_file,omitempty"`
}

// ClipboardConfig configures copy-to-clipboard.
type ClipboardConfig struct {
	Backend   string   `json:"backend"` // "auto", "system", "osc52"
	CopiedFor Duration `json:"copied_for"`
}

// DisplayConfig holds the collapse thresholds used by the TUI and `list`.
type DisplayConfig struct {
	CollapseChars int `json:"collapse_chars"`
	CollapseLines int `json:"collapse_lines"`
	ClampLines    int `json:"clamp_lines"`
}

// JournalConfig configures the JSONL history of memo changes.
type JournalConfig struct {
	Disabled bool   `json:"disabled"`
	Path     string `json:"path"`
}

// Duration wraps time.Duration for JSON unmarshaling.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
