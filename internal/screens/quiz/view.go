package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptutor/internal/ui/components"
	"github.com/abhisek/adaptutor/internal/ui/layout"
	"github.com/abhisek/adaptutor/internal/ui/theme"
)

const sidebarWidth = 34

func (s *QuizScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}

	mainWidth := width
	var sidebar string
	if !layout.IsCompactWidth(width) {
		mainWidth = width - sidebarWidth - 2
		sidebar = s.renderMasterySidebar(height)
	}

	var main string
	if s.state.Current == nil {
		main = s.renderExhausted(mainWidth)
	} else {
		main = s.renderQuestionView(mainWidth)
	}

	if sidebar == "" {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(mainWidth).Render(main),
		"  ",
		sidebar,
	)
}

// renderQuestionView renders the current question, the answer area and,
// once graded, the feedback.
func (s *QuizScreen) renderQuestionView(width int) string {
	q := s.state.Current

	var b strings.Builder

	m, _ := s.state.Mastery.Get(q.Concept)
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", q.Concept))
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("difficulty %d  mastery %.0f%%", q.Difficulty, m*100))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 2; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(max(width-4, 10)).
		PaddingLeft(2).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text))
	b.WriteString("\n\n")

	b.WriteString(indent(s.choice.View(), "  "))

	if s.typing && s.result == nil {
		b.WriteString("\n  Answer: " + s.input.View() + "\n")
	}

	if s.notice != "" {
		b.WriteString("\n" + theme.Hint.Render("  "+s.notice) + "\n")
	}

	if s.result != nil {
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(width))
	}

	return b.String()
}

// renderFeedback renders the graded outcome with explanation and link.
func (s *QuizScreen) renderFeedback(width int) string {
	res := s.result

	var b strings.Builder
	if res.Correct {
		b.WriteString(theme.Correct.Render("  Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("  Not quite"))
		answer := strings.ToUpper(res.CorrectKey)
		if s.state.Current != nil {
			if text, ok := s.state.Current.Option(res.CorrectKey); ok {
				answer += ") " + text
			}
		}
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("   correct answer: " + answer))
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %s mastery %.0f%% → %.0f%%", res.Concept, res.Prior*100, res.Mastery*100)))
	b.WriteString("\n")

	if res.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(min(width-6, 70)).
			PaddingLeft(2).
			Foreground(theme.Text).
			Render(res.Explanation))
		b.WriteString("\n")
	}

	if res.ResourceURL != "" {
		b.WriteString("\n  Learn this concept: ")
		b.WriteString(theme.RenderLink(res.ResourceURL))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("  Press N for the next question"))
	return b.String()
}

// renderMasterySidebar lists concept mastery, strongest first.
func (s *QuizScreen) renderMasterySidebar(height int) string {
	entries := s.state.Mastery.Descending()

	labelWidth := 0
	for _, e := range entries {
		labelWidth = max(labelWidth, lipgloss.Width(e.Concept))
	}
	labelWidth = min(labelWidth, 14)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Mastery"))
	b.WriteString("\n\n")

	rows := 0
	for _, e := range entries {
		if height > 0 && rows >= height-4 {
			b.WriteString(theme.Hint.Render(fmt.Sprintf("+%d more", len(entries)-rows)))
			break
		}
		bar := components.NewMasteryBar(truncate(e.Concept, labelWidth), e.Mastery, s.state.FocusThreshold, sidebarWidth-4)
		bar.LabelWidth = labelWidth
		b.WriteString(bar.View())
		b.WriteString("\n")
		rows++
	}

	return components.Card(b.String(), sidebarWidth)
}

// renderExhausted is shown once every question has been asked.
func (s *QuizScreen) renderExhausted(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("You've worked through every question!"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press Enter for your summary, R to start over, or F to see what to focus on."))
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("End session?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Your answers are written to the history log."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Success).Render("[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep going"))

	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
