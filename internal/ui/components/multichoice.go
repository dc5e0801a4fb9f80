package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptutor/internal/questionbank"
	"github.com/abhisek/adaptutor/internal/ui/theme"
)

// MultiChoice is the a-d option selector. It only tracks the cursor and the
// revealed outcome; grading happens in the session.
type MultiChoice struct {
	Options  [4]string
	Selected int

	question questionbank.Question

	revealed   bool
	chosen     int
	correctIdx int
}

// NewMultiChoice creates a selector for q's options.
func NewMultiChoice(q questionbank.Question) MultiChoice {
	return MultiChoice{
		Options:    q.Options,
		question:   q,
		chosen:     -1,
		correctIdx: -1,
	}
}

// Update moves the cursor with arrows or j/k, or jumps to an option with
// its letter. Input is ignored once the answer is revealed.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.revealed {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	default:
		if idx := questionbank.KeyIndex(key); idx >= 0 {
			m.Selected = idx
		}
	}

	return m, nil
}

// SelectedKey returns the answer key under the cursor.
func (m MultiChoice) SelectedKey() string {
	return questionbank.OptionKeys[m.Selected]
}

// Reveal marks the chosen option and the question's correct option for
// display.
func (m *MultiChoice) Reveal(chosenKey string) {
	m.revealed = true
	m.chosen = questionbank.KeyIndex(chosenKey)
	m.correctIdx = m.question.CorrectIndex()
}

// Revealed reports whether the outcome is being shown.
func (m MultiChoice) Revealed() bool {
	return m.revealed
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder

	for i, opt := range m.Options {
		label := strings.ToUpper(questionbank.OptionKeys[i])
		prefix := "  "
		if i == m.Selected && !m.revealed {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		var style lipgloss.Style
		switch {
		case m.revealed && i == m.correctIdx:
			style = theme.Correct
		case m.revealed && i == m.chosen:
			style = theme.Incorrect
		case m.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
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
