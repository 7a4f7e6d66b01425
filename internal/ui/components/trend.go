package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntwin/internal/ui/theme"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values as a one-line block chart scaled between the
// smallest and largest value. Only the last width values are drawn.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	var b strings.Builder
	top := len(sparkLevels) - 1
	for _, v := range values {
		i := top / 2
		if hi > lo {
			i = int((v-lo)/(hi-lo)*float64(top) + 0.5)
		}
		b.WriteRune(sparkLevels[i])
	}
	return b.String()
}

// TrendChart renders a sparkline with its min and max below.
func TrendChart(values []float64, width int) string {
	if len(values) == 0 {
		return theme.Hint.Render("no timed attempts")
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lipgloss.NewStyle().Foreground(theme.Secondary).Render(Sparkline(values, width)) +
		"\n" + theme.Dim.Render(fmt.Sprintf("min %.1fs  max %.1fs  (%d questions)", lo, hi, len(values)))
}
