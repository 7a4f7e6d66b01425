// Package app wires the play screens into a Bubble Tea program.
package app

import (
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntwin/internal/questionbank"
	"github.com/abhisek/learntwin/internal/router"
	"github.com/abhisek/learntwin/internal/screen"
	"github.com/abhisek/learntwin/internal/screens/home"
	"github.com/abhisek/learntwin/internal/screens/login"
	"github.com/abhisek/learntwin/internal/screens/quiz"
	"github.com/abhisek/learntwin/internal/screens/report"
	"github.com/abhisek/learntwin/internal/selector"
	"github.com/abhisek/learntwin/internal/session"
	"github.com/abhisek/learntwin/internal/store"
	"github.com/abhisek/learntwin/internal/ui/layout"
)

// Options holds the dependencies of the play UI.
type Options struct {
	Bank *questionbank.Bank
	Repo store.AttemptRepo

	// User skips the sign-in prompt when set.
	User string

	// Seed drives question selection; 0 seeds from the clock.
	Seed uint64

	Logger *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	ctrl   *session.Controller
	width  int
	height int
}

func newAppModel(opts Options) *AppModel {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	m := &AppModel{opts: opts}
	if opts.User != "" {
		m.router = router.New(m.signIn(opts.User))
	} else {
		m.router = router.New(login.New())
	}
	return m
}

// signIn starts the learner's session and returns their home screen.
func (m *AppModel) signIn(user string) screen.Screen {
	m.ctrl = session.New(m.opts.Bank, m.opts.Repo, user,
		session.WithSelector(selector.NewSeeded(m.opts.Seed)),
		session.WithLogger(m.opts.Logger))
	m.ctrl.Start()
	m.opts.Logger.Info("session started", "user", user, "session_id", m.ctrl.SessionID())

	ctrl := m.ctrl
	openReport := func() screen.Screen { return report.New(ctrl.Report) }
	return home.New(user, m.opts.Bank.Counts(), home.Screens{
		Quiz:   func() screen.Screen { return quiz.New(ctrl, openReport) },
		Report: openReport,
	})
}

func (m *AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case login.SubmittedMsg:
		return m, m.router.Replace(m.signIn(msg.User))
	}

	return m, m.router.Update(msg)
}

func (m *AppModel) View() tea.View {
	v := tea.NewView(m.frame())
	v.AltScreen = true
	return v
}

// frame renders the full screen as a string.
func (m *AppModel) frame() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := strings.Join(m.router.Trail(), " › ")

	var status layout.Status
	if m.ctrl != nil {
		sum := m.ctrl.Summary()
		status = layout.Status{User: sum.User, Answered: sum.TotalQuestions, Correct: sum.TotalCorrect}
	}
	header := layout.RenderHeader(title, status, m.width)

	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the play UI and blocks until the learner quits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
