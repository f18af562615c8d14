package memo

import (
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/dohr-michael/memopad/internal/kv"
)

// LoadDarkMode reads the theme preference. Absent or unparseable means light.
func LoadDarkMode(store kv.Store) bool {
	raw, ok, err := store.Get(KeyDarkMode)
	if err != nil {
		slog.Warn("read theme preference failed", "error", err)
		return false
	}
	if !ok {
		return false
	}

	var dark bool
	if err := json.Unmarshal([]byte(raw), &dark); err != nil {
		slog.Debug("unparseable theme preference, using light", "value", raw)
		return false
	}
	return dark
}

// SaveDarkMode persists the theme preference as a JSON boolean.
func SaveDarkMode(store kv.Store, dark bool) error {
	return store.Set(KeyDarkMode, strconv.FormatBool(dark))
}
