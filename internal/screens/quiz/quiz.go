// Package quiz is the question-and-feedback loop of the play UI.
package quiz

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learntwin/internal/questionbank"
	"github.com/abhisek/learntwin/internal/router"
	"github.com/abhisek/learntwin/internal/screen"
	"github.com/abhisek/learntwin/internal/screens/summary"
	"github.com/abhisek/learntwin/internal/session"
	"github.com/abhisek/learntwin/internal/ui/components"
	"github.com/abhisek/learntwin/internal/ui/layout"
)

// QuizScreen serves questions from a session controller.
type QuizScreen struct {
	ctrl       *session.Controller
	openReport func() screen.Screen

	question *questionbank.Question
	mc       components.MultiChoice
	feedback *session.Result

	submitting         bool
	showingQuitConfirm bool
	notice             string
	errMsg             string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen. openReport builds the report screen offered
// on the summary; it may be nil.
func New(ctrl *session.Controller, openReport func() screen.Screen) *QuizScreen {
	return &QuizScreen{ctrl: ctrl, openReport: openReport}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.showNext()
}

func (s *QuizScreen) Title() string {
	return "Practice"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.showingQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case s.feedback != nil:
		return []layout.KeyHint{{Key: "any key", Description: "Next question"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓/A-Z", Description: "Choose"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "End session"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case answerRecordedMsg:
		return s.handleRecorded(msg)
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// showNext displays the controller's current question, or ends the
// session when the bank is exhausted.
func (s *QuizScreen) showNext() tea.Cmd {
	s.feedback = nil
	s.notice = ""

	q, err := s.ctrl.CurrentQuestion()
	if errors.Is(err, session.ErrExhausted) {
		s.question = nil
		return s.finish(true)
	}
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.question = &q
	s.mc = components.NewMultiChoice(q.Question, q.Options)
	return nil
}

func (s *QuizScreen) finish(exhausted bool) tea.Cmd {
	next := summary.New(s.ctrl.Summary(), exhausted, s.openReport)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *QuizScreen) submit(option string) tea.Cmd {
	ctrl := s.ctrl
	s.submitting = true
	return func() tea.Msg {
		res, err := ctrl.Submit(context.Background(), option)
		return answerRecordedMsg{Result: res, Err: err}
	}
}

func (s *QuizScreen) handleRecorded(msg answerRecordedMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	if msg.Err != nil {
		s.mc.Reset()
		if errors.Is(msg.Err, session.ErrNoSelection) {
			s.notice = "Select an option before submitting."
			return s, nil
		}
		// Nothing was recorded; the learner can submit again.
		s.notice = "Could not save your answer: " + msg.Err.Error()
		return s, nil
	}

	s.notice = ""
	s.feedback = msg.Result
	s.mc.Reveal(msg.Result.Question.Answer)
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			return s, s.finish(false)
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	if s.feedback != nil {
		return s, s.showNext()
	}

	if s.submitting || s.question == nil {
		return s, nil
	}

	if key == "esc" {
		s.showingQuitConfirm = true
		return s, nil
	}

	var cmd tea.Cmd
	s.mc, cmd = s.mc.Update(msg)
	if opt := s.mc.Value(); opt != "" {
		return s, tea.Batch(cmd, s.submit(opt))
	}
	return s, cmd
}
