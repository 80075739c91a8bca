package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/loader"
	"github.com/oskarstaszewski-lgtm/nauka-progrmowania/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Fetch hands a loader request to the root model, which performs it off
// the update loop and feeds the loader.Result back in.
func Fetch(req loader.Request) tea.Cmd {
	return func() tea.Msg { return req }
}
