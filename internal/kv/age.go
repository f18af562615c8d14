package kv

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"
	"filippo.io/age/armor"
)

// AgeStore wraps another Store and encrypts every value with an age X25519 identity.
// Values are stored ASCII-armored so text backends keep holding text.
type AgeStore struct {
	inner    Store
	identity *age.X25519Identity
}

// NewAgeStore wraps inner with encryption for identity.
func NewAgeStore(inner Store, identity *age.X25519Identity) *AgeStore {
	return &AgeStore{inner: inner, identity: identity}
}

// Get decrypts the value stored under key.
func (s *AgeStore) Get(key string) (string, bool, error) {
	blob, ok, err := s.inner.Get(key)
	if err != nil || !ok {
		return "", ok, err
	}
	plain, err := decrypt(blob, s.identity)
	if err != nil {
		return "", false, fmt.Errorf("decrypt %s: %w", key, err)
	}
	return plain, true, nil
}

// Set encrypts value and stores it under key.
func (s *AgeStore) Set(key, value string) error {
	blob, err := encrypt(value, s.identity.Recipient())
	if err != nil {
		return fmt.Errorf("encrypt %s: %w", key, err)
	}
	return s.inner.Set(key, blob)
}

// Close closes the wrapped store if it has a Close method.
func (s *AgeStore) Close() error {
	if c, ok := s.inner.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// GenerateIdentity creates an X25519 key pair and writes it to path with 0o600.
// It is idempotent: if the file already exists, it does nothing.
func GenerateIdentity(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return fmt.Errorf("generate age identity: %w", err)
	}

	content := fmt.Sprintf("# created by memopad\n# public key: %s\n%s\n",
		identity.Recipient().String(), identity.String())

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create key directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write age key: %w", err)
	}
	return nil
}

// LoadIdentity reads an age private key from the given file.
func LoadIdentity(path string) (*age.X25519Identity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open age key: %w", err)
	}
	defer f.Close()

	identities, err := age.ParseIdentities(f)
	if err != nil {
		return nil, fmt.Errorf("parse age identities: %w", err)
	}
	if len(identities) == 0 {
		return nil, fmt.Errorf("no identities found in %s", path)
	}

	id, ok := identities[0].(*age.X25519Identity)
	if !ok {
		return nil, fmt.Errorf("unexpected identity type in %s", path)
	}
	return id, nil
}

func encrypt(plaintext string, recipient *age.X25519Recipient) (string, error) {
	var buf bytes.Buffer
	aw := armor.NewWriter(&buf)
	w, err := age.Encrypt(aw, recipient)
	if err != nil {
		return "", fmt.Errorf("age encrypt init: %w", err)
	}
	if _, err := io.WriteString(w, plaintext); err != nil {
		return "", fmt.Errorf("age encrypt write: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("age encrypt close: %w", err)
	}
	if err := aw.Close(); err != nil {
		return "", fmt.Errorf("armor close: %w", err)
	}
	return buf.String(), nil
}

func decrypt(blob string, identity *age.X25519Identity) (string, error) {
	r, err := age.Decrypt(armor.NewReader(strings.NewReader(blob)), identity)
	if err != nil {
		return "", fmt.Errorf("age decrypt: %w", err)
	}
	plain, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read decrypted: %w", err)
	}
	return string(plain), nil
}
