package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoice_NavigateAndChoose(t *testing.T) {
	mc := NewMultiChoice("2 + 2?", []string{"3", "4", "5"})

	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if mc.Value() != "" {
		t.Fatalf("value before Enter = %q, want empty", mc.Value())
	}
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if mc.Value() != "4" {
		t.Errorf("value = %q, want 4", mc.Value())
	}

	// Locked after choosing.
	mc, _ = mc.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if mc.Selected != 1 {
		t.Errorf("selection moved after choosing: %d", mc.Selected)
	}

	mc.Reset()
	if mc.Value() != "" {
		t.Errorf("value after Reset = %q, want empty", mc.Value())
	}
}

func TestMultiChoice_LetterShortcut(t *testing.T) {
	mc := NewMultiChoice("pick", []string{"a", "b", "c"})
	mc, _ = mc.Update(key('c'))
	if mc.Selected != 2 {
		t.Errorf("Selected = %d, want 2", mc.Selected)
	}
	mc, _ = mc.Update(key('z'))
	if mc.Selected != 2 {
		t.Errorf("out-of-range letter moved selection to %d", mc.Selected)
	}
}

func TestMultiChoice_ViewLabelsOptions(t *testing.T) {
	mc := NewMultiChoice("pick", []string{"left", "right"})
	mc.Reveal(1)
	view := mc.View()
	for _, want := range []string{"A)  left", "B)  right"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	fired := ""
	m := NewMenu([]MenuItem{
		{Label: "Off", Disabled: true},
		{Label: "Practice", Key: "p", Action: func() tea.Cmd { fired = "practice"; return nil }},
		{Label: "Report", Key: "r", Action: func() tea.Cmd { fired = "report"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("moved onto disabled item: %d", m.Selected)
	}

	m, _ = m.Update(key('r'))
	if fired != "report" || m.Selected != 2 {
		t.Errorf("shortcut fired %q selected %d", fired, m.Selected)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{1, 2, 3}, 10); got != "▁▅█" {
		t.Errorf("Sparkline = %q", got)
	}
	if got := Sparkline([]float64{5, 5}, 10); got != "▄▄" {
		t.Errorf("flat Sparkline = %q", got)
	}
	if got := Sparkline([]float64{1, 2, 3, 4}, 2); len([]rune(got)) != 2 {
		t.Errorf("Sparkline not truncated: %q", got)
	}
	if Sparkline(nil, 10) != "" {
		t.Error("expected empty sparkline for no values")
	}
}

func TestBarChart_ShowsPercent(t *testing.T) {
	out := BarChart([]Bar{{Label: "easy", Percent: 1}, {Label: "hard", Percent: 0.25}}, 40)
	if !strings.Contains(out, "100%") || !strings.Contains(out, " 25%") {
		t.Errorf("unexpected chart:\n%s", out)
	}
}
