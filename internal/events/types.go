package events

// EventType represents the type of event.
type EventType string

const (
	// Memo list
	EventMemoLoaded  EventType = "memo.loaded"
	EventMemoAdded   EventType = "memo.added"
	EventMemoUpdated EventType = "memo.updated"
	EventMemoDeleted EventType = "memo.deleted"

	// Presentation
	EventMemoCopied   EventType = "memo.copied"
	EventThemeChanged EventType = "theme.changed"
)

// EventSource identifies the component that emitted an event.
type EventSource string

const (
	SourceStore EventSource = "store"
	SourceTUI   EventSource = "tui"
	SourceCLI   EventSource = "cli"
)
