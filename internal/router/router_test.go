package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learntwin/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	updates int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { s.updates++; return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPushAndPop(t *testing.T) {
	login := &stubScreen{title: "login"}
	r := New(login)

	quiz := &stubScreen{title: "quiz"}
	r.Update(PushScreenMsg{Screen: quiz})

	if r.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", r.Depth())
	}
	if !quiz.initRan {
		t.Error("expected Init on pushed screen")
	}
	if r.View(80, 24) != "quiz" {
		t.Errorf("view = %q, want quiz", r.View(80, 24))
	}

	r.Update(PopScreenMsg{})
	if r.Active() != login {
		t.Errorf("active = %q, want login", r.Active().Title())
	}
}

func TestPopKeepsBottomScreen(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1", r.Depth())
	}
}

func TestReplaceKeepsDepth(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "quiz"})

	summary := &stubScreen{title: "summary"}
	r.Update(ReplaceScreenMsg{Screen: summary})

	if r.Depth() != 2 {
		t.Errorf("depth = %d, want 2", r.Depth())
	}
	if r.Active().Title() != "summary" {
		t.Errorf("active = %q, want summary", r.Active().Title())
	}
	if !summary.initRan {
		t.Error("expected Init on replacement screen")
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	bottom := &stubScreen{title: "home"}
	top := &stubScreen{title: "report"}
	r := New(bottom)
	r.Push(top)

	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})

	if top.updates != 1 || bottom.updates != 0 {
		t.Errorf("updates top=%d bottom=%d, want 1 and 0", top.updates, bottom.updates)
	}
}

func TestTrail(t *testing.T) {
	r := New(&stubScreen{title: "Home"})
	r.Push(&stubScreen{})
	r.Push(&stubScreen{title: "Practice"})

	got := r.Trail()
	if len(got) != 2 || got[0] != "Home" || got[1] != "Practice" {
		t.Errorf("trail = %v, want [Home Practice]", got)
	}
}
