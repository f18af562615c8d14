package config

import (
	"os"
	"path/filepath"
)

// MemopadPath returns the root directory for memopad data.
// It uses $MEMOPAD_PATH if set, otherwise defaults to ~/.memopad.
func MemopadPath() string {
	if v := os.Getenv("MEMOPAD_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".memopad")
	}
	return filepath.Join(home, ".memopad")
}

// ConfigPath returns the path to the memopad config file.
func ConfigPath() string {
	return filepath.Join(MemopadPath(), "config.jsonc")
}

// DotenvPath returns the path to the memopad .env file.
func DotenvPath() string {
	return filepath.Join(MemopadPath(), ".env")
}

// LogPath returns the file the TUI writes logs to while it owns the terminal.
func LogPath() string {
	return filepath.Join(MemopadPath(), "memopad.log")
}
