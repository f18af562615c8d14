package kv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filippo.io/age"
)

func TestGenerateIdentity_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".age-key")

	if err := GenerateIdentity(path); err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("permissions = %o, want 0600", info.Mode().Perm())
	}

	if _, err := LoadIdentity(path); err != nil {
		t.Errorf("LoadIdentity: %v", err)
	}
}

func TestGenerateIdentity_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".age-key")

	if err := GenerateIdentity(path); err != nil {
		t.Fatalf("first call: %v", err)
	}
	data1, _ := os.ReadFile(path)

	if err := GenerateIdentity(path); err != nil {
		t.Fatalf("second call: %v", err)
	}
	data2, _ := os.ReadFile(path)

	if string(data1) != string(data2) {
		t.Error("identity was regenerated")
	}
}

func TestAgeStore_EncryptsAtRest(t *testing.T) {
	id, err := age.GenerateX25519Identity()
	if err != nil {
		t.Fatal(err)
	}
	inner := NewMemStore()
	s := NewAgeStore(inner, id)

	if err := s.Set("memos", `["secret plan"]`); err != nil {
		t.Fatalf("Set: %v", err)
	}

	raw, _, _ := inner.Get("memos")
	if strings.Contains(raw, "secret plan") {
		t.Error("plaintext leaked into the wrapped store")
	}
	if !strings.HasPrefix(raw, "-----BEGIN AGE ENCRYPTED FILE-----") {
		t.Errorf("expected armored ciphertext, got %q", raw)
	}
}

func TestAgeStore_WrongIdentity(t *testing.T) {
	id1, _ := age.GenerateX25519Identity()
	id2, _ := age.GenerateX25519Identity()
	inner := NewMemStore()

	if err := NewAgeStore(inner, id1).Set("memos", `["x"]`); err != nil {
		t.Fatal(err)
	}
	if _, _, err := NewAgeStore(inner, id2).Get("memos"); err == nil {
		t.Error("expected decrypt error with a foreign identity")
	}
}

func TestAgeStore_GarbageValue(t *testing.T) {
	id, _ := age.GenerateX25519Identity()
	inner := NewMemStore()
	if err := inner.Set("memos", "not age"); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := NewAgeStore(inner, id).Get("memos"); err == nil || ok {
		t.Errorf("Get = ok %v, err %v; want error", ok, err)
	}
}
