package kv

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dohr-michael/memopad/internal/config"
)

// Open builds the Store described by cfg. The returned closer must be called
// on shutdown; it is a no-op for backends without resources.
func Open(cfg config.StorageConfig) (Store, io.Closer, error) {
	var (
		store  Store
		closer io.Closer = nopCloser{}
	)

	switch cfg.Backend {
	case config.BackendMemory:
		store = NewMemStore()
	case config.BackendFile, "":
		store = NewFileStore(cfg.Path)
	case config.BackendSQLite:
		s, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		store, closer = s, s
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}

	if cfg.Encrypt {
		if err := GenerateIdentity(cfg.KeyFile); err != nil {
			closer.Close()
			return nil, nil, err
		}
		id, err := LoadIdentity(cfg.KeyFile)
		if err != nil {
			closer.Close()
			return nil, nil, err
		}
		store = NewAgeStore(store, id)
	}

	slog.Debug("storage opened", "backend", cfg.Backend, "path", cfg.Path, "encrypt", cfg.Encrypt)
	return store, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
