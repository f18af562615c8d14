package memo

import (
	"errors"
	"slices"
	"testing"

	"github.com/dohr-michael/memopad/internal/kv"
)

func seeded(t *testing.T, memos ...string) *Store {
	t.Helper()
	s := NewStore(kv.NewMemStore())
	for _, m := range memos {
		if !s.Add(m) {
			t.Fatalf("Add(%q) rejected", m)
		}
	}
	return s
}

func TestEditSession_SaveCommits(t *testing.T) {
	s := seeded(t, "a", "b")
	e := NewEditSession(s)

	if _, ok := e.Editing(); ok {
		t.Fatal("new session should be idle")
	}
	if !e.Begin(1) {
		t.Fatal("Begin rejected")
	}
	if idx, ok := e.Editing(); !ok || idx != 1 {
		t.Fatalf("Editing() = %d, %v", idx, ok)
	}
	if e.Draft() != "b" {
		t.Errorf("draft = %q, want current text", e.Draft())
	}

	e.SetDraft("b edited")
	if got, _ := s.Get(1); got != "b" {
		t.Error("draft leaked into the store before save")
	}

	committed, err := e.Save()
	if err != nil || !committed {
		t.Fatalf("Save() = %v, %v", committed, err)
	}
	if got := s.List(); !slices.Equal(got, []string{"a", "b edited"}) {
		t.Errorf("list = %q", got)
	}
	if _, ok := e.Editing(); ok {
		t.Error("session should be idle after save")
	}
}

func TestEditSession_BlankDraftDiscarded(t *testing.T) {
	s := seeded(t, "keep")
	e := NewEditSession(s)
	e.Begin(0)
	e.SetDraft("   ")

	committed, err := e.Save()
	if err != nil || committed {
		t.Fatalf("Save() = %v, %v; want false, nil", committed, err)
	}
	if got, _ := s.Get(0); got != "keep" {
		t.Errorf("memo = %q", got)
	}
	if _, ok := e.Editing(); ok {
		t.Error("session should be idle after discarded save")
	}
}

func TestEditSession_Cancel(t *testing.T) {
	s := seeded(t, "keep")
	rev := s.Revision()
	e := NewEditSession(s)
	e.Begin(0)
	e.SetDraft("changed")
	e.Cancel()

	if got, _ := s.Get(0); got != "keep" {
		t.Errorf("memo = %q", got)
	}
	if s.Revision() != rev {
		t.Error("cancel mutated the store")
	}
	if e.Draft() != "" {
		t.Errorf("draft = %q after cancel", e.Draft())
	}
}

func TestEditSession_BeginOutOfRange(t *testing.T) {
	e := NewEditSession(seeded(t, "a"))
	if e.Begin(3) || e.Begin(-1) {
		t.Error("Begin accepted an invalid index")
	}
	if _, ok := e.Editing(); ok {
		t.Error("session should stay idle")
	}
}

func TestEditSession_BeginCancelsPrevious(t *testing.T) {
	s := seeded(t, "a", "b")
	e := NewEditSession(s)
	e.Begin(0)
	e.SetDraft("draft for a")

	e.Begin(1)
	if idx, _ := e.Editing(); idx != 1 {
		t.Fatalf("editing %d, want 1", idx)
	}
	if e.Draft() != "b" {
		t.Errorf("draft = %q, want fresh draft", e.Draft())
	}

	e.SetDraft("B")
	e.Save()
	if got := s.List(); !slices.Equal(got, []string{"a", "B"}) {
		t.Errorf("list = %q", got)
	}
}

func TestEditSession_StaleAfterDelete(t *testing.T) {
	s := seeded(t, "a", "b", "c")
	e := NewEditSession(s)
	e.Begin(2)
	e.SetDraft("c edited")

	s.Delete(0)

	committed, err := e.Save()
	if !errors.Is(err, ErrStaleEdit) || committed {
		t.Fatalf("Save() = %v, %v; want ErrStaleEdit", committed, err)
	}
	if got := s.List(); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("list = %q, stale save must not write", got)
	}
	if _, ok := e.Editing(); ok {
		t.Error("session should be idle after stale save")
	}
}

func TestEditSession_IdleOps(t *testing.T) {
	e := NewEditSession(seeded(t, "a"))
	e.SetDraft("ignored")
	if e.Draft() != "" {
		t.Errorf("draft = %q while idle", e.Draft())
	}
	if committed, err := e.Save(); committed || err != nil {
		t.Errorf("idle Save() = %v, %v", committed, err)
	}
}
