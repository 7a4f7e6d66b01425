// Package report shows the learner's analytics report.
package report

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntwin/internal/analytics"
	"github.com/abhisek/learntwin/internal/router"
	"github.com/abhisek/learntwin/internal/screen"
	"github.com/abhisek/learntwin/internal/ui/layout"
	"github.com/abhisek/learntwin/internal/ui/theme"
)

// Loader produces a fresh report.
type Loader func(ctx context.Context) (*analytics.Report, error)

type reportLoadedMsg struct {
	Report *analytics.Report
	Err    error
}

// ReportScreen loads and displays a report. The report is recomputed each
// time the screen is opened.
type ReportScreen struct {
	load   Loader
	report *analytics.Report
	errMsg string
	offset int
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)

// New creates a ReportScreen backed by load.
func New(load Loader) *ReportScreen {
	return &ReportScreen{load: load}
}

func (r *ReportScreen) Init() tea.Cmd {
	load := r.load
	return func() tea.Msg {
		rep, err := load(context.Background())
		return reportLoadedMsg{Report: rep, Err: err}
	}
}

func (r *ReportScreen) Title() string {
	return "My report"
}

func (r *ReportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (r *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		if msg.Err != nil {
			r.errMsg = msg.Err.Error()
			return r, nil
		}
		r.report = msg.Report
		r.offset = 0
	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			r.offset = max(r.offset-1, 0)
		case "down", "j":
			r.offset++
		case "q", "enter", "esc":
			return r, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return r, nil
}

func (r *ReportScreen) View(width, height int) string {
	if r.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nCould not build report: %s", r.errMsg))
	}
	if r.report == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\nCrunching your history...")
	}

	lines := strings.Split(Render(r.report, width), "\n")
	maxOffset := max(len(lines)-height, 0)
	if r.offset > maxOffset {
		r.offset = maxOffset
	}
	end := min(r.offset+height, len(lines))
	return strings.Join(lines[r.offset:end], "\n")
}
