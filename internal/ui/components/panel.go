package components

import (
	"github.com/abhisek/learntwin/internal/ui/theme"
)

// ContentWidth returns the inner width used for report panels so that
// stacked panels line up.
func ContentWidth(frameWidth int) int {
	// border (2) + padding (4)
	return min(max(frameWidth-6, 24), 72)
}

// Panel draws a titled, bordered box of the given inner width.
func Panel(title, body string, width int) string {
	content := body
	if title != "" {
		content = theme.Section.Render(title) + "\n\n" + body
	}
	return theme.Card.
		Width(width + 6).
		Render(content)
}
