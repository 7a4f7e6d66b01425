package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntwin/internal/analytics"
	"github.com/abhisek/learntwin/internal/questionbank"
	"github.com/abhisek/learntwin/internal/ui/components"
	"github.com/abhisek/learntwin/internal/ui/layout"
	"github.com/abhisek/learntwin/internal/ui/theme"
)

// Render draws a full report at the given terminal width. It is shared by
// the report screen and the non-interactive report command.
func Render(rep *analytics.Report, width int) string {
	cw := components.ContentWidth(width)

	title := theme.Title.Render("Performance report") +
		theme.Dim.Render("  "+rep.User)

	if rep.Empty {
		return title + "\n\n" + components.Panel("", theme.Hint.Render(analytics.NoHistoryMessage), cw)
	}

	sections := []string{
		title,
		components.Panel("Overview", renderOverview(rep), cw),
		components.Panel("Accuracy by topic", components.BarChart(bars(rep.Topics, nil), cw), cw),
		components.Panel("Accuracy by chapter", components.BarChart(bars(rep.Chapters, nil), cw), cw),
		components.Panel("Accuracy by difficulty", components.BarChart(bars(rep.Difficulties, difficultyLabel), cw), cw),
		components.Panel("Time per question", components.TrendChart(rep.TimeTrend, cw), cw),
		components.Panel("Weakest area", renderWeakest(rep), cw),
		components.Panel("Suggested learning plan", theme.Body.Render(rep.Recommendation), cw),
	}

	if !layout.IsCompactWidth(width) {
		// Pair the chart panels side by side on wide terminals.
		half := (width-4)/2 - 6
		row := func(a, b string) string {
			return lipgloss.JoinHorizontal(lipgloss.Top, a, "  ", b)
		}
		sections = []string{
			title,
			row(
				components.Panel("Overview", renderOverview(rep), half),
				components.Panel("Weakest area", renderWeakest(rep), half),
			),
			row(
				components.Panel("Accuracy by topic", components.BarChart(bars(rep.Topics, nil), half), half),
				components.Panel("Accuracy by difficulty", components.BarChart(bars(rep.Difficulties, difficultyLabel), half), half),
			),
			components.Panel("Accuracy by chapter", components.BarChart(bars(rep.Chapters, nil), 2*half+8), 2*half+8),
			components.Panel("Time per question", components.TrendChart(rep.TimeTrend, 2*half+8), 2*half+8),
			components.Panel("Suggested learning plan", theme.Body.Render(rep.Recommendation), 2*half+8),
		}
	}

	return strings.Join(sections, "\n")
}

func renderOverview(rep *analytics.Report) string {
	lines := []string{
		fmt.Sprintf("Questions attempted  %d", rep.Attempts),
		fmt.Sprintf("Correct              %d", rep.Correct),
		fmt.Sprintf("Overall accuracy     %.0f%%", rep.OverallAccuracy*100),
		fmt.Sprintf("Avg time / question  %.2f s", rep.AverageTime),
	}
	return theme.Body.Render(strings.Join(lines, "\n"))
}

func renderWeakest(rep *analytics.Report) string {
	acc := rep.AccuracyByChapter[rep.WeakestChapter]
	return theme.Warning.Render(rep.WeakestChapter) + "\n" +
		theme.Dim.Render(fmt.Sprintf("%.0f%% correct, the lowest of your chapters", acc*100))
}

func bars(groups []analytics.GroupAccuracy, label func(string) string) []components.Bar {
	out := make([]components.Bar, 0, len(groups))
	for _, g := range groups {
		l := g.Key
		if label != nil {
			l = label(g.Key)
		}
		out = append(out, components.Bar{Label: l, Percent: g.Accuracy})
	}
	return out
}

func difficultyLabel(key string) string {
	d := questionbank.Difficulty(key)
	if d.Valid() {
		return d.Label()
	}
	return key
}
