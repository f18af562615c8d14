package memo

import "errors"

// ErrStaleEdit is returned by EditSession.Save when the memo list changed
// after the session began, so the remembered index may point elsewhere.
var ErrStaleEdit = errors.New("memo list changed while editing")

// EditSession drafts changes to one memo at a time.
//
//	Idle --Begin(i)--> Editing(i, draft) --Save/Cancel--> Idle
//
// Beginning a new session while one is active cancels the active one.
type EditSession struct {
	store  *Store
	active bool
	index  int
	draft  string
	rev    uint64
}

// NewEditSession returns an idle session bound to store.
func NewEditSession(store *Store) *EditSession {
	return &EditSession{store: store}
}

// Begin starts editing memo index with its current text as the draft.
// It returns false, leaving the session idle, when index is out of range.
func (e *EditSession) Begin(index int) bool {
	e.Cancel()

	text, ok := e.store.Get(index)
	if !ok {
		return false
	}
	e.active = true
	e.index = index
	e.draft = text
	e.rev = e.store.Revision()
	return true
}

// Editing reports the index being edited.
func (e *EditSession) Editing() (int, bool) {
	if !e.active {
		return -1, false
	}
	return e.index, true
}

// Draft returns the current draft text; empty when idle.
func (e *EditSession) Draft() string {
	return e.draft
}

// SetDraft replaces the draft. Ignored when idle.
func (e *EditSession) SetDraft(text string) {
	if e.active {
		e.draft = text
	}
}

// Save commits a non-blank draft and returns to idle. A blank draft is
// discarded silently. committed reports whether the memo changed.
func (e *EditSession) Save() (committed bool, err error) {
	if !e.active {
		return false, nil
	}
	index, draft, rev := e.index, e.draft, e.rev
	e.Cancel()

	if isBlank(draft) {
		return false, nil
	}
	if e.store.Revision() != rev {
		return false, ErrStaleEdit
	}
	return e.store.Update(index, draft), nil
}

// Cancel discards the draft and returns to idle.
func (e *EditSession) Cancel() {
	e.active = false
	e.index = -1
	e.draft = ""
	e.rev = 0
}
