package memo

import (
	"testing"

	"github.com/dohr-michael/memopad/internal/kv"
)

func TestDarkMode(t *testing.T) {
	backend := kv.NewMemStore()

	if LoadDarkMode(backend) {
		t.Error("absent preference should be light")
	}

	if err := SaveDarkMode(backend, true); err != nil {
		t.Fatal(err)
	}
	if raw, _, _ := backend.Get(KeyDarkMode); raw != "true" {
		t.Errorf("stored %q, want true", raw)
	}
	if !LoadDarkMode(backend) {
		t.Error("expected dark after save")
	}

	if err := SaveDarkMode(backend, false); err != nil {
		t.Fatal(err)
	}
	if LoadDarkMode(backend) {
		t.Error("expected light after save")
	}
}

func TestDarkMode_Unparseable(t *testing.T) {
	for _, raw := range []string{"yes", "", "{", `"true"`, "1"} {
		backend := kv.NewMemStore()
		backend.Set(KeyDarkMode, raw)
		if LoadDarkMode(backend) {
			t.Errorf("LoadDarkMode(%q) = true, want light", raw)
		}
	}
}
