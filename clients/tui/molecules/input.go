// Package molecules provides mid-level TUI components.
package molecules

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MemoInput wraps a textarea for memo text. Enter is left to the owner
// (submit); Alt+Enter and Ctrl+J insert a newline.
type MemoInput struct {
	textarea textarea.Model
}

// NewMemoInput creates a multi-line input with the given placeholder and visible height.
func NewMemoInput(placeholder string, height int) MemoInput {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.SetHeight(height)
	ta.CharLimit = 0
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")

	return MemoInput{textarea: ta}
}

// SetWidth sets the input width.
func (m *MemoInput) SetWidth(w int) {
	m.textarea.SetWidth(w)
}

// SetTextStyle applies the theme's text color.
func (m *MemoInput) SetTextStyle(style lipgloss.Style) {
	m.textarea.FocusedStyle.Text = style
	m.textarea.BlurredStyle.Text = style
}

// Focus gives focus to the input.
func (m *MemoInput) Focus() tea.Cmd {
	return m.textarea.Focus()
}

// Blur removes focus from the input.
func (m *MemoInput) Blur() {
	m.textarea.Blur()
}

// Focused reports whether the input has focus.
func (m *MemoInput) Focused() bool {
	return m.textarea.Focused()
}

// Reset clears the input.
func (m *MemoInput) Reset() {
	m.textarea.Reset()
}

// Value returns the current text, untrimmed.
func (m *MemoInput) Value() string {
	return m.textarea.Value()
}

// SetValue replaces the current text.
func (m *MemoInput) SetValue(s string) {
	m.textarea.SetValue(s)
}

// Update forwards editing keys to the textarea.
func (m MemoInput) Update(msg tea.Msg) (MemoInput, tea.Cmd) {
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View renders the input area.
func (m MemoInput) View() string {
	return m.textarea.View()
}
