package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learntwin/internal/ui/theme"
)

// MultiChoice is a single-answer option list. It has no notion of which
// option is right until Reveal is called.
type MultiChoice struct {
	Question string
	Options  []string
	Selected int
	Chosen   int // -1 until Enter

	revealed     bool
	correctIndex int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		Chosen:       -1,
		correctIndex: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles arrow navigation, letter shortcuts and Enter.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Chosen >= 0 {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		if len(m.Options) > 0 {
			m.Chosen = m.Selected
		}
	default:
		if i := labelIndex(key); i >= 0 && i < len(m.Options) {
			m.Selected = i
		}
	}

	return m, nil
}

// Value returns the chosen option text, or "" before Enter.
func (m MultiChoice) Value() string {
	if m.Chosen < 0 || m.Chosen >= len(m.Options) {
		return ""
	}
	return m.Options[m.Chosen]
}

// Reset clears the choice so the learner can pick again.
func (m *MultiChoice) Reset() {
	m.Chosen = -1
}

// Reveal marks which option was right; View then colors the options.
func (m *MultiChoice) Reveal(correctIndex int) {
	m.revealed = true
	m.correctIndex = correctIndex
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, optionLabel(i), opt)

		var style lipgloss.Style
		switch {
		case m.revealed && i == m.correctIndex:
			style = theme.Correct
		case m.revealed && i == m.Chosen:
			style = theme.Incorrect
		case m.revealed:
			style = theme.Dim
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func optionLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprint(i + 1)
}

func labelIndex(key string) int {
	if len(key) != 1 {
		return -1
	}
	c := key[0]
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a')
	case c >= 'A' && c <= 'Z':
		return int(c - 'A')
	}
	return -1
}
