// Package atoms provides low-level TUI building blocks.
package atoms

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Label renders a short inline marker (e.g. "Copied!", "more") with the given style.
func Label(text string, style lipgloss.Style) string {
	return style.Render(text)
}

// Ordinal renders a 1-based memo number for a 0-based index.
func Ordinal(index int, style lipgloss.Style) string {
	return style.Render(fmt.Sprintf("#%d", index+1))
}
