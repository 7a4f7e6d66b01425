package login

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntwin/internal/ui/theme"
)

const bannerArt = `
 ╦  ┌─┐┌─┐┬─┐┌┐┌╔╦╗┬ ┬┬┌┐┌
 ║  ├┤ ├─┤├┬┘│││ ║ ││││││││
 ╩═╝└─┘┴ ┴┴└─┘└┘ ╩ └┴┘┴┘└┘`

const bannerCompact = "L E A R N T W I N"

// RenderBanner returns the app banner, or a compact form for narrow
// terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
