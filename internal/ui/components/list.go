package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/ui/theme"
)

// ListItem is a single row of a List.
type ListItem struct {
	Label string
	Badge string // rendered right after the label
	Done  bool   // styles the badge as completed
}

// List is a scrollable vertical selection list.
type List struct {
	Items    []ListItem
	Selected int
	Focused  bool
}

// NewList creates a list with the cursor on the first item.
func NewList(items []ListItem) List {
	return List{Items: items}
}

// SetItems replaces the rows and keeps the cursor in range.
func (l *List) SetItems(items []ListItem) {
	l.Items = items
	l.clamp()
}

// Update handles keyboard navigation.
func (l List) Update(msg tea.Msg) (List, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !l.Focused {
		return l, nil
	}

	switch kmsg.String() {
	case "up", "k":
		l.Selected--
	case "down", "j":
		l.Selected++
	case "home", "g":
		l.Selected = 0
	case "end", "G":
		l.Selected = len(l.Items) - 1
	}
	l.clamp()
	return l, nil
}

func (l *List) clamp() {
	if l.Selected >= len(l.Items) {
		l.Selected = len(l.Items) - 1
	}
	if l.Selected < 0 {
		l.Selected = 0
	}
}

// View renders at most height rows, scrolled so the cursor is visible.
func (l List) View(height int) string {
	if len(l.Items) == 0 {
		return ""
	}
	if height <= 0 {
		height = len(l.Items)
	}

	start := 0
	if l.Selected >= height {
		start = l.Selected - height + 1
	}
	end := start + height
	if end > len(l.Items) {
		end = len(l.Items)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		item := l.Items[i]
		var line string
		if i == l.Selected {
			style := theme.Unselected
			if l.Focused {
				style = theme.Selected
			}
			line = style.Render("▸ " + item.Label)
		} else {
			line = theme.Unselected.Render("  " + item.Label)
		}
		if item.Badge != "" {
			badge := theme.BadgePending
			if item.Done {
				badge = theme.BadgeDone
			}
			line += " " + badge.Render(item.Badge)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
