// Package screen defines the contract between the router and the
// individual views of the play UI.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learntwin/internal/ui/layout"
)

// Screen is one full-frame view. The app draws the header and footer
// around whatever View returns.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area only.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
