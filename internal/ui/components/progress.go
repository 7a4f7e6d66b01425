package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntwin/internal/ui/theme"
)

// Bar is one labelled horizontal bar, used for accuracy charts.
type Bar struct {
	Label   string
	Percent float64 // 0..1
}

// BarChart renders bars with labels padded to a common width and the
// percentage on the right.
func BarChart(bars []Bar, width int) string {
	labelWidth := 0
	for _, b := range bars {
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
	}
	const percentWidth = 6 // "  100%"
	barWidth := max(width-labelWidth-2-percentWidth, 4)

	var sb strings.Builder
	for i, b := range bars {
		if i > 0 {
			sb.WriteString("\n")
		}
		label := b.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(b.Label))
		sb.WriteString(theme.Body.Render(label))
		sb.WriteString("  ")
		sb.WriteString(renderBar(b.Percent, barWidth))
		sb.WriteString(theme.Dim.Render(fmt.Sprintf("  %3d%%", int(b.Percent*100+0.5))))
	}
	return sb.String()
}

func renderBar(percent float64, width int) string {
	filled := min(max(int(float64(width)*percent+0.5), 0), width)
	return theme.BarFilled.Render(strings.Repeat(" ", filled)) +
		theme.BarEmpty.Render(strings.Repeat(" ", width-filled))
}
