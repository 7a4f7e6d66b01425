// Package login asks for the learner identity before play starts.
package login

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntwin/internal/screen"
	"github.com/abhisek/learntwin/internal/ui/components"
	"github.com/abhisek/learntwin/internal/ui/layout"
	"github.com/abhisek/learntwin/internal/ui/theme"
)

// SubmittedMsg carries the trimmed, non-empty learner ID.
type SubmittedMsg struct {
	User string
}

// LoginScreen prompts for a learner ID.
type LoginScreen struct {
	input  components.TextInput
	errMsg string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen.
func New() *LoginScreen {
	return &LoginScreen{
		input: components.NewTextInput("e.g. student_001", 64),
	}
}

func (l *LoginScreen) Init() tea.Cmd {
	return l.input.Init()
}

func (l *LoginScreen) Title() string {
	return "Sign in"
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		user := l.input.Value()
		if user == "" {
			l.errMsg = "Enter your learner ID to start."
			return l, nil
		}
		l.errMsg = ""
		return l, func() tea.Msg { return SubmittedMsg{User: user} }
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

func (l *LoginScreen) View(width, height int) string {
	sections := []string{
		RenderBanner(width),
		"",
		theme.Body.Render("Adaptive practice that learns how you learn."),
		"",
		theme.Dim.Render("Learner ID"),
		l.input.View(),
	}
	if l.errMsg != "" {
		sections = append(sections, "", theme.Incorrect.Render(l.errMsg))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
