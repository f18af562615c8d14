package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dohr-michael/memopad/clients/tui/molecules"
	"github.com/dohr-michael/memopad/internal/clipboard"
	"github.com/dohr-michael/memopad/internal/events"
	"github.com/dohr-michael/memopad/internal/kv"
	"github.com/dohr-michael/memopad/internal/memo"
)

type focus int

const (
	focusInput focus = iota
	focusList
	focusEdit
)

// Options wires the App to its collaborators.
type Options struct {
	Store     *memo.Store
	Prefs     kv.Store // holds the theme preference
	Clipboard clipboard.Writer
	Events    events.Publisher // optional
	Collapse  memo.Collapse
	CopiedFor time.Duration
}

// App is the main TUI application model.
// Layout: HEADER | INPUT | MEMOS | STATUS | HELP
type App struct {
	store     *memo.Store
	prefs     kv.Store
	clip      clipboard.Writer
	bus       events.Publisher
	collapse  memo.Collapse
	copiedFor time.Duration

	input  molecules.MemoInput
	editor molecules.MemoInput
	list   viewport.Model
	help   help.Model
	keys   keyMap

	edit   *memo.EditSession
	expand *memo.Expansion
	flash  clipboard.Flash

	palette   Palette
	focus     focus
	cursor    int
	status    string
	statusErr bool
	statusSeq int
	width     int
	height    int
	quitting  bool
}

// NewApp creates the TUI model. The theme is read from opts.Prefs.
func NewApp(opts Options) *App {
	if opts.Collapse == (memo.Collapse{}) {
		opts.Collapse = memo.DefaultCollapse
	}
	if opts.CopiedFor <= 0 {
		opts.CopiedFor = 1500 * time.Millisecond
	}

	a := &App{
		store:     opts.Store,
		prefs:     opts.Prefs,
		clip:      opts.Clipboard,
		bus:       opts.Events,
		collapse:  opts.Collapse,
		copiedFor: opts.CopiedFor,
		input:     molecules.NewMemoInput("Type a memo...", 3),
		editor:    molecules.NewMemoInput("", 3),
		list:      viewport.New(80, 10),
		help:      help.New(),
		keys:      defaultKeyMap(),
		edit:      memo.NewEditSession(opts.Store),
		expand:    memo.NewExpansion(opts.Store),
		focus:     focusInput,
	}
	a.applyTheme(memo.LoadDarkMode(opts.Prefs))
	a.input.Focus()
	return a
}

// Init focuses the memo input.
func (a *App) Init() tea.Cmd {
	return a.input.Focus()
}

// Update handles messages and updates state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateSizes()
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			a.quitting = true
			return a, tea.Quit
		}
		switch a.focus {
		case focusEdit:
			return a, a.handleEditKey(msg)
		case focusList:
			return a, a.handleListKey(msg)
		default:
			return a, a.handleInputKey(msg)
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(msg)
		return a, cmd

	case copyResultMsg:
		return a, a.handleCopyResult(msg)

	case copyExpiredMsg:
		a.flash.Expire(msg.token)
		return a, nil

	case statusExpiredMsg:
		if msg.seq == a.statusSeq {
			a.status = ""
			a.statusErr = false
		}
		return a, nil
	}

	// Cursor blink and other framework messages go to whichever input is focused.
	var cmd tea.Cmd
	switch a.focus {
	case focusEdit:
		a.editor, cmd = a.editor.Update(msg)
	case focusInput:
		a.input, cmd = a.input.Update(msg)
	}
	return a, cmd
}

func (a *App) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Submit):
		if a.store.Add(a.input.Value()) {
			a.input.Reset()
			a.afterMutation()
			a.cursor = a.store.Len() - 1
		}
		return nil
	case key.Matches(msg, a.keys.SwitchFocus), key.Matches(msg, a.keys.Cancel):
		return a.setFocus(focusList)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return cmd
}

func (a *App) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return tea.Quit
	case key.Matches(msg, a.keys.SwitchFocus), key.Matches(msg, a.keys.Cancel):
		return a.setFocus(focusInput)
	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)
	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)
	case key.Matches(msg, a.keys.Edit):
		return a.beginEdit()
	case key.Matches(msg, a.keys.Expand):
		if text, ok := a.store.Get(a.cursor); ok && a.collapse.Collapsible(text) {
			a.expand.Toggle(a.cursor)
		}
	case key.Matches(msg, a.keys.Copy):
		return a.copySelected()
	case key.Matches(msg, a.keys.Delete):
		if a.store.Delete(a.cursor) {
			a.afterMutation()
			if a.store.Len() == 0 {
				return a.setFocus(focusInput)
			}
		}
	case key.Matches(msg, a.keys.Theme):
		a.toggleTheme()
	default:
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(msg)
		return cmd
	}
	return nil
}

func (a *App) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Submit):
		a.edit.SetDraft(a.editor.Value())
		committed, err := a.edit.Save()
		if err != nil {
			slog.Warn("edit discarded", "error", err)
			a.editor.Reset()
			return tea.Batch(a.setStatus("edit discarded: the list changed", true), a.setFocus(focusList))
		}
		if committed {
			a.afterMutation()
		}
		a.editor.Reset()
		return a.setFocus(focusList)
	case key.Matches(msg, a.keys.Cancel):
		a.edit.Cancel()
		a.editor.Reset()
		return a.setFocus(focusList)
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	a.edit.SetDraft(a.editor.Value())
	return cmd
}

func (a *App) beginEdit() tea.Cmd {
	if !a.edit.Begin(a.cursor) {
		return nil
	}
	a.editor.SetValue(a.edit.Draft())
	return a.setFocus(focusEdit)
}

func (a *App) copySelected() tea.Cmd {
	text, ok := a.store.Get(a.cursor)
	if !ok || a.clip == nil {
		return nil
	}
	clip, index, rev := a.clip, a.cursor, a.store.Revision()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), copyTimeout)
		defer cancel()
		return copyResultMsg{index: index, rev: rev, err: clip.Write(ctx, text)}
	}
}

func (a *App) handleCopyResult(msg copyResultMsg) tea.Cmd {
	if msg.err != nil {
		slog.Error("could not copy memo", "index", msg.index, "error", msg.err)
		return a.setStatus(fmt.Sprintf("copy failed: %v", msg.err), true)
	}
	// The list changed while the write was in flight; the index may point elsewhere.
	if msg.rev != a.store.Revision() {
		return nil
	}

	a.publish(events.EventMemoCopied, map[string]any{"index": msg.index})
	token := a.flash.Start(msg.index)
	return tea.Tick(a.copiedFor, func(time.Time) tea.Msg {
		return copyExpiredMsg{token: token}
	})
}

func (a *App) toggleTheme() {
	dark := !a.palette.Dark
	a.applyTheme(dark)
	if err := memo.SaveDarkMode(a.prefs, dark); err != nil {
		slog.Error("persist theme failed", "error", err)
	}
	a.publish(events.EventThemeChanged, map[string]any{"dark": dark})
}

func (a *App) applyTheme(dark bool) {
	a.palette = NewPalette(dark)
	a.input.SetTextStyle(a.palette.Text)
	a.editor.SetTextStyle(a.palette.Text)
	a.help.Styles.ShortKey = a.palette.Muted.Bold(true)
	a.help.Styles.ShortDesc = a.palette.Hint
	a.help.Styles.ShortSeparator = a.palette.Hint
}

// afterMutation drops view state tied to positions that may have moved.
func (a *App) afterMutation() {
	a.flash.Clear()
	a.clampCursor()
}

func (a *App) setFocus(f focus) tea.Cmd {
	if f == focusList && a.store.Len() == 0 {
		f = focusInput
	}
	a.focus = f
	a.input.Blur()
	a.editor.Blur()
	switch f {
	case focusInput:
		return a.input.Focus()
	case focusEdit:
		return a.editor.Focus()
	}
	return nil
}

func (a *App) setStatus(text string, isErr bool) tea.Cmd {
	a.statusSeq++
	a.status = text
	a.statusErr = isErr
	seq := a.statusSeq
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

func (a *App) moveCursor(delta int) {
	a.cursor += delta
	a.clampCursor()
}

func (a *App) clampCursor() {
	n := a.store.Len()
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) publish(typ events.EventType, payload map[string]any) {
	if a.bus == nil {
		return
	}
	a.bus.Publish(events.NewEvent(typ, events.SourceTUI, payload))
}
