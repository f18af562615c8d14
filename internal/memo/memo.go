// Package memo owns the memo list: an ordered sequence of free-text notes,
// identified by position, persisted as a snapshot after every change.
package memo

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dohr-michael/memopad/internal/events"
	"github.com/dohr-michael/memopad/internal/kv"
)

// Keys used in the backing kv.Store.
const (
	KeyMemos    = "memos"
	KeyDarkMode = "darkMode"
)

// Store holds the memo list and persists it through a kv.Store.
//
// Mutators return false when the input is rejected (blank text, text that is
// not valid UTF-8, index out of range); rejected calls neither change the list
// nor touch persistence. Events are published inside the critical section, so
// their order matches the order of the changes.
type Store struct {
	mu    sync.RWMutex
	kv    kv.Store
	bus   events.Publisher
	memos []string
	rev   uint64
}

// Option configures a Store.
type Option func(*Store)

// WithPublisher makes the store publish memo.* events after each change.
func WithPublisher(p events.Publisher) Option {
	return func(s *Store) { s.bus = p }
}

// NewStore creates a Store backed by backend and loads the persisted snapshot.
func NewStore(backend kv.Store, opts ...Option) *Store {
	s := &Store{kv: backend}
	for _, opt := range opts {
		opt(s)
	}
	s.Load()
	return s
}

// Load replaces the in-memory list with the persisted snapshot. A missing,
// unreadable or malformed snapshot yields an empty list.
func (s *Store) Load() {
	memos := s.readSnapshot()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.memos = memos
	s.rev++
	s.publish(events.EventMemoLoaded, map[string]any{"count": len(memos)})
}

func (s *Store) readSnapshot() []string {
	raw, ok, err := s.kv.Get(KeyMemos)
	if err != nil {
		slog.Warn("read memo snapshot failed, starting empty", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	memos, err := DecodeSnapshot(raw)
	if err != nil {
		slog.Warn("malformed memo snapshot, starting empty", "error", err)
		return nil
	}

	kept := memos[:0]
	for _, m := range memos {
		if isBlank(m) {
			continue
		}
		kept = append(kept, m)
	}
	if dropped := len(memos) - len(kept); dropped > 0 {
		slog.Warn("dropped blank memos from snapshot", "count", dropped)
	}
	return kept
}

// Add appends text as the last memo. Blank or invalid text is rejected.
// Text is stored exactly as given.
func (s *Store) Add(text string) bool {
	if !Valid(text) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.memos = append(s.memos, text)
	index := len(s.memos) - 1
	s.commit()
	s.publish(events.EventMemoAdded, map[string]any{"index": index, "text": text})
	return true
}

// Update replaces the memo at index. Blank or invalid text or an
// out-of-range index is rejected.
func (s *Store) Update(index int, text string) bool {
	if !Valid(text) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.memos) {
		return false
	}
	previous := s.memos[index]
	s.memos[index] = text
	s.commit()
	s.publish(events.EventMemoUpdated, map[string]any{"index": index, "text": text, "previous": previous})
	return true
}

// Delete removes the memo at index. Later memos shift down by one, so any
// index held by a caller is stale afterwards.
func (s *Store) Delete(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.memos) {
		return false
	}
	removed := s.memos[index]
	s.memos = append(s.memos[:index:index], s.memos[index+1:]...)
	s.commit()
	s.publish(events.EventMemoDeleted, map[string]any{"index": index, "text": removed})
	return true
}

// List returns a copy of the memos in order.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.memos))
	copy(out, s.memos)
	return out
}

// Get returns the memo at index.
func (s *Store) Get(index int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.memos) {
		return "", false
	}
	return s.memos[index], true
}

// Len returns the number of memos.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.memos)
}

// Revision increases on every load and every applied mutation.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rev
}

// commit bumps the revision and writes the snapshot. Caller holds s.mu.
// A failed write is logged; the in-memory list stays authoritative.
func (s *Store) commit() {
	s.rev++
	if err := s.kv.Set(KeyMemos, EncodeSnapshot(s.memos)); err != nil {
		slog.Error("persist memos failed", "error", err, "count", len(s.memos))
	}
}

// publish waits for room on the bus so a burst of changes is not dropped.
// Caller holds s.mu.
func (s *Store) publish(typ events.EventType, payload map[string]any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.PublishAsync(context.Background(), events.NewEvent(typ, events.SourceStore, payload)); err != nil {
		slog.Debug("memo event not published", "type", typ, "error", err)
	}
}

// Valid reports whether text can be stored as a memo: not blank, and valid
// UTF-8 so the JSON snapshot round-trips it unchanged.
func Valid(text string) bool {
	return !isBlank(text) && utf8.ValidString(text)
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
