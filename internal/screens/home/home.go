// Package home is the menu shown after sign-in.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntwin/internal/questionbank"
	"github.com/abhisek/learntwin/internal/router"
	"github.com/abhisek/learntwin/internal/screen"
	"github.com/abhisek/learntwin/internal/ui/components"
	"github.com/abhisek/learntwin/internal/ui/theme"
)

// Screens builds the screens reachable from home.
type Screens struct {
	Quiz   func() screen.Screen
	Report func() screen.Screen
}

// HomeScreen lets the learner start practice or open their report.
type HomeScreen struct {
	user   string
	counts map[questionbank.Difficulty]int
	menu   components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen for user. counts describes the question bank.
func New(user string, counts map[questionbank.Difficulty]int, screens Screens) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			next := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}

	items := []components.MenuItem{
		{Label: "Practice", Key: "p", Detail: "adaptive questions", Action: push(screens.Quiz)},
		{Label: "My report", Key: "r", Detail: "accuracy, timing and a study plan", Action: push(screens.Report)},
		{Label: "Quit", Key: "q", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		user:   user,
		counts: counts,
		menu:   components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var bank []string
	total := 0
	for _, d := range questionbank.AllDifficulties() {
		n := h.counts[d]
		total += n
		bank = append(bank, fmt.Sprintf("%s %d", d.Label(), n))
	}

	sections := []string{
		theme.Title.Render("Welcome, " + h.user),
		theme.Dim.Render(fmt.Sprintf("%d questions in the bank (%s)", total, strings.Join(bank, ", "))),
		"",
		h.menu.View(),
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
