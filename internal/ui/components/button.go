package components

import (
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/ui/theme"
)

// Button is a styled action label with its key, e.g. "[Enter] Next".
type Button struct {
	Key    string
	Label  string
	Active bool
}

// NewButton creates a new button.
func NewButton(key, label string, active bool) Button {
	return Button{Key: key, Label: label, Active: active}
}

// View renders the button. Inactive buttons are dimmed.
func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label = "[" + b.Key + "] " + label
	}
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
