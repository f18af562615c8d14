package memo

import (
	"strings"
	"unicode/utf8"
)

// Collapse holds the thresholds above which a memo gets an expand/collapse toggle.
type Collapse struct {
	Chars int // collapsible when the rune count exceeds Chars
	Lines int // collapsible when the line count exceeds Lines
	Clamp int // lines shown while collapsed
}

// DefaultCollapse matches the original widget: 40 characters, 3 lines, 2 visible lines.
var DefaultCollapse = Collapse{Chars: 40, Lines: 3, Clamp: 2}

// Collapsible reports whether text is long enough to offer the toggle.
func (c Collapse) Collapsible(text string) bool {
	return utf8.RuneCountInString(text) > c.Chars || lineCount(text) > c.Lines
}

// Preview returns the collapsed rendering of text: leading blank lines are
// skipped, then at most Clamp lines and at most Chars runes are kept, with an
// ellipsis when anything was cut. Text that is not collapsible is returned
// unchanged.
func (c Collapse) Preview(text string) string {
	if !c.Collapsible(text) {
		return text
	}

	lines := strings.Split(text, "\n")
	// Leading blank lines would fill the clamp and hide the content.
	for len(lines) > 1 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	cut := false
	if c.Clamp > 0 && len(lines) > c.Clamp {
		lines = lines[:c.Clamp]
		cut = true
	}
	out := strings.Join(lines, "\n")

	if runes := []rune(out); len(runes) > c.Chars {
		out = string(runes[:c.Chars])
		cut = true
	}
	if cut {
		out = strings.TrimRight(out, " \t\n") + "…"
	}
	return out
}

func lineCount(text string) int {
	return strings.Count(text, "\n") + 1
}

type revisioned interface {
	Revision() uint64
}

// Expansion tracks which memos are expanded. All flags reset whenever the
// list revision changes, since positions may no longer match.
type Expansion struct {
	list     revisioned
	rev      uint64
	expanded map[int]bool
}

// NewExpansion tracks expanded flags for list.
func NewExpansion(list revisioned) *Expansion {
	return &Expansion{list: list, rev: list.Revision(), expanded: make(map[int]bool)}
}

// Expanded reports whether memo index is expanded.
func (x *Expansion) Expanded(index int) bool {
	x.sync()
	return x.expanded[index]
}

// Toggle flips memo index and returns the new state.
func (x *Expansion) Toggle(index int) bool {
	x.sync()
	x.expanded[index] = !x.expanded[index]
	return x.expanded[index]
}

func (x *Expansion) sync() {
	if rev := x.list.Revision(); rev != x.rev {
		x.rev = rev
		clear(x.expanded)
	}
}
