package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit      key.Binding
	Newline     key.Binding
	Cancel      key.Binding
	SwitchFocus key.Binding
	Up          key.Binding
	Down        key.Binding
	Edit        key.Binding
	Expand      key.Binding
	Copy        key.Binding
	Delete      key.Binding
	Theme       key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add/save")),
		Newline:     key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"), key.WithHelp("alt+enter", "newline")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		SwitchFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "input/list")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Edit:        key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter/e", "edit")),
		Expand:      key.NewBinding(key.WithKeys(" ", "space", "o"), key.WithHelp("space", "more/less")),
		Copy:        key.NewBinding(key.WithKeys("c", "y"), key.WithHelp("c", "copy")),
		Delete:      key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d", "delete")),
		Theme:       key.NewBinding(key.WithKeys("t", "ctrl+t"), key.WithHelp("t", "theme")),
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// helpKeys adapts keyMap to help.KeyMap for the focus area currently active.
type helpKeys struct {
	keys  keyMap
	focus focus
}

func (h helpKeys) ShortHelp() []key.Binding {
	k := h.keys
	switch h.focus {
	case focusEdit:
		return []key.Binding{k.Submit, k.Newline, k.Cancel}
	case focusList:
		return []key.Binding{k.Up, k.Down, k.Edit, k.Expand, k.Copy, k.Delete, k.Theme, k.SwitchFocus, k.Quit}
	default:
		return []key.Binding{k.Submit, k.Newline, k.SwitchFocus, k.Cancel}
	}
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
