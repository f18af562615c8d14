// Package tui provides the terminal user interface for memopad.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette colors, one set per theme.
type paletteColors struct {
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Accent   lipgloss.Color
	Border   lipgloss.Color
	Selected lipgloss.Color
	Success  lipgloss.Color
	Error    lipgloss.Color
	Editing  lipgloss.Color
	ToggleFg lipgloss.Color
	ToggleBg lipgloss.Color
}

var (
	lightColors = paletteColors{
		Text:     lipgloss.Color("#111827"),
		Muted:    lipgloss.Color("#6B7280"),
		Accent:   lipgloss.Color("#2563EB"),
		Border:   lipgloss.Color("#D1D5DB"),
		Selected: lipgloss.Color("#111827"),
		Success:  lipgloss.Color("#16A34A"),
		Error:    lipgloss.Color("#DC2626"),
		Editing:  lipgloss.Color("#22C55E"),
		ToggleFg: lipgloss.Color("#FFFFFF"),
		ToggleBg: lipgloss.Color("#1F2937"),
	}
	darkColors = paletteColors{
		Text:     lipgloss.Color("#F9FAFB"),
		Muted:    lipgloss.Color("#D1D5DB"),
		Accent:   lipgloss.Color("#60A5FA"),
		Border:   lipgloss.Color("#4B5563"),
		Selected: lipgloss.Color("#F9FAFB"),
		Success:  lipgloss.Color("#4ADE80"),
		Error:    lipgloss.Color("#F87171"),
		Editing:  lipgloss.Color("#22C55E"),
		ToggleFg: lipgloss.Color("#111827"),
		ToggleBg: lipgloss.Color("#F9FAFB"),
	}
)

// Palette holds the component styles for one theme.
type Palette struct {
	Dark bool

	Title        lipgloss.Style
	Hint         lipgloss.Style
	Toggle       lipgloss.Style
	Text         lipgloss.Style
	Muted        lipgloss.Style
	Link         lipgloss.Style
	Copied       lipgloss.Style
	Error        lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardEditing  lipgloss.Style
}

// NewPalette returns the styles for the dark or light theme.
func NewPalette(dark bool) Palette {
	c := lightColors
	if dark {
		c = darkColors
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.Border).
		Foreground(c.Text).
		Padding(0, 1)

	return Palette{
		Dark: dark,

		Title: lipgloss.NewStyle().
			Foreground(c.Text).
			Bold(true),

		Hint: lipgloss.NewStyle().
			Foreground(c.Muted),

		Toggle: lipgloss.NewStyle().
			Foreground(c.ToggleFg).
			Background(c.ToggleBg).
			Bold(true).
			Padding(0, 1),

		Text:   lipgloss.NewStyle().Foreground(c.Text),
		Muted:  lipgloss.NewStyle().Foreground(c.Muted),
		Link:   lipgloss.NewStyle().Foreground(c.Accent).Underline(true),
		Copied: lipgloss.NewStyle().Foreground(c.Success).Bold(true),
		Error:  lipgloss.NewStyle().Foreground(c.Error).Bold(true),

		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.Border),

		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.Accent),

		Card:         card,
		CardSelected: card.BorderForeground(c.Selected),
		CardEditing:  card.BorderForeground(c.Editing),
	}
}
