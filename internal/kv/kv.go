// Package kv provides the string key-value stores memopad persists to.
//
// Every backend satisfies Store. Get reports a missing key with ok=false and
// a nil error; errors are reserved for I/O and decoding failures.
package kv

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidKey = errors.New("invalid key")
	ErrClosed     = errors.New("store is closed")
)

// Store is a string key-value store.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// validateKey rejects keys that cannot be used as a file name.
func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`+"\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
