// Package summary shows in-session totals when the learner stops playing.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntwin/internal/router"
	"github.com/abhisek/learntwin/internal/screen"
	"github.com/abhisek/learntwin/internal/session"
	"github.com/abhisek/learntwin/internal/ui/layout"
	"github.com/abhisek/learntwin/internal/ui/theme"
)

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary    *session.Summary
	exhausted  bool
	openReport func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. openReport builds the report screen shown
// when the learner presses R; it may be nil.
func New(summary *session.Summary, exhausted bool, openReport func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{summary: summary, exhausted: exhausted, openReport: openReport}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Home"}}
	if s.openReport != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "My report"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r", "R":
			if s.openReport != nil {
				next := s.openReport()
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n")
	if s.exhausted {
		b.WriteString(center(theme.Warning, "You've answered every question in the bank!"))
	} else {
		b.WriteString(center(theme.Title, "Session complete"))
	}
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center(theme.Dim, fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
		sum.TotalQuestions, sum.TotalCorrect, sum.Accuracy*100)
	b.WriteString(center(theme.Body, stats))
	b.WriteString("\n")

	return b.String()
}
