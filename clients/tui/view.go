package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dohr-michael/memopad/clients/tui/atoms"
)

const (
	headerHeight = 2 // title + hint
	inputHeight  = 5 // 3 lines + border
	footerHeight = 2 // status + help
	minListLines = 3
)

// View renders the application.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	a.refreshList()

	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		a.renderInput(),
		a.list.View(),
		a.renderStatus(),
		a.help.View(helpKeys{keys: a.keys, focus: a.focus}),
	)
}

func (a *App) updateSizes() {
	w := a.contentWidth()
	a.input.SetWidth(w - 2)
	a.editor.SetWidth(w - 4)
	a.help.Width = w

	listHeight := a.height - headerHeight - inputHeight - footerHeight
	if listHeight < minListLines {
		listHeight = minListLines
	}
	a.list.Width = w
	a.list.Height = listHeight
}

func (a *App) contentWidth() int {
	if a.width <= 0 {
		return 80
	}
	return a.width
}

func (a *App) renderHeader() string {
	toggle := "☾ Dark"
	if a.palette.Dark {
		toggle = "☀ Light"
	}
	title := a.palette.Title.Render("✎ memopad")
	badge := a.palette.Toggle.Render(toggle)

	gap := a.contentWidth() - lipgloss.Width(title) - lipgloss.Width(badge)
	if gap < 1 {
		gap = 1
	}
	line := title + strings.Repeat(" ", gap) + badge
	hint := a.palette.Hint.Render("select a memo and press enter to edit it")
	return line + "\n" + hint
}

func (a *App) renderInput() string {
	style := a.palette.Input
	if a.focus == focusInput {
		style = a.palette.InputFocused
	}
	return style.Width(a.contentWidth() - 2).Render(a.input.View())
}

func (a *App) renderStatus() string {
	if a.status == "" {
		return ""
	}
	if a.statusErr {
		return a.palette.Error.Render(a.status)
	}
	return a.palette.Hint.Render(a.status)
}

// refreshList re-renders the memo cards into the viewport and scrolls so the
// selected card is visible.
func (a *App) refreshList() {
	memos := a.store.List()
	if len(memos) == 0 {
		a.list.SetContent(a.palette.Hint.Render("No memos yet."))
		a.list.SetYOffset(0)
		return
	}

	var (
		cards             []string
		line              int
		selTop, selBottom int
	)
	for i, text := range memos {
		card := a.renderCard(i, text)
		h := lipgloss.Height(card)
		if i == a.cursor {
			selTop, selBottom = line, line+h
		}
		line += h
		cards = append(cards, card)
	}
	a.list.SetContent(strings.Join(cards, "\n"))

	switch {
	case selTop < a.list.YOffset:
		a.list.SetYOffset(selTop)
	case selBottom > a.list.YOffset+a.list.Height:
		a.list.SetYOffset(selBottom - a.list.Height)
	}
}

func (a *App) renderCard(index int, text string) string {
	p := a.palette
	width := a.contentWidth() - 2
	editingIndex, editing := a.edit.Editing()
	selected := index == a.cursor && a.focus != focusInput

	var body, footer string
	if editing && editingIndex == index {
		body = a.editor.View()
		footer = p.Muted.Render("enter save · esc cancel")
	} else {
		expanded := a.expand.Expanded(index)
		if expanded {
			body = text
		} else {
			body = a.collapse.Preview(text)
		}
		body = p.Text.Render(body)

		var parts []string
		parts = append(parts, atoms.Ordinal(index, p.Muted))
		if a.collapse.Collapsible(text) {
			more := "more"
			if expanded {
				more = "less"
			}
			parts = append(parts, atoms.Label(more, p.Link))
		}
		if a.flash.Active(index) {
			parts = append(parts, atoms.Label("Copied!", p.Copied))
		}
		footer = strings.Join(parts, "  ")
	}

	style := p.Card
	switch {
	case editing && editingIndex == index:
		style = p.CardEditing
	case selected:
		style = p.CardSelected.BorderStyle(lipgloss.ThickBorder())
	}
	return style.Width(width).Render(body + "\n" + footer)
}
