package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntwin/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", s.errMsg))
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}
	if s.question == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Picking your next question...")
	}

	q := s.question
	sum := s.ctrl.Summary()

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · %s", q.Topic, q.Chapter))
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s   Q %d", q.Difficulty.Label(), sum.TotalQuestions+1))
	if s.feedback != nil {
		infoRight = lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("%s   Q %d", q.Difficulty.Label(), sum.TotalQuestions))
	}

	b.WriteString(infoLeft)
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 2; pad > 0 {
		b.WriteString(strings.Repeat(" ", pad) + infoRight)
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-2, 0))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
	b.WriteString("\n")

	if s.feedback != nil {
		b.WriteString(s.renderFeedback(width))
	}
	if s.notice != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.notice))
	}

	return b.String()
}

func (s *QuizScreen) renderFeedback(width int) string {
	fb := s.feedback
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text) + "\n"
	}

	var b strings.Builder
	if fb.Correct {
		b.WriteString(center(theme.Correct, "Correct!"))
	} else {
		b.WriteString(center(theme.Incorrect, "Wrong answer."))
		if right := fb.Question.CorrectOption(); right != "" {
			b.WriteString(center(theme.Dim, "Correct answer: "+right))
		}
	}
	b.WriteString(center(theme.Dim, fmt.Sprintf("Time taken: %.2f seconds", fb.TimeTaken)))
	b.WriteString("\n")
	b.WriteString(center(theme.Hint, "Press any key to continue..."))
	return b.String()
}

func renderQuitConfirm(width int) string {
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center(theme.Body.Bold(true), "End this session?"))
	b.WriteString("\n")
	b.WriteString(center(theme.Dim, "Every answer so far is already saved."))
	b.WriteString("\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Success), "[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary), "[N] No, keep going"))
	return b.String()
}
