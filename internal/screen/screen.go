package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studiz/internal/ui/layout"
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

// StatusProvider is an optional interface that screens can implement to
// put a short status fragment in the header's right slot, such as the
// remaining test time.
type StatusProvider interface {
	HeaderStatus() string
}

// EscHandler is an optional interface for screens that run their own
// escape handling, such as a quit confirmation. While HandlesEsc
// reports true, the app's default esc-pops-one-screen behavior is
// suppressed and the key is routed to the screen instead.
type EscHandler interface {
	HandlesEsc() bool
}
