package summary

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptutor/internal/mastery"
	"github.com/abhisek/adaptutor/internal/screen"
	"github.com/abhisek/adaptutor/internal/screens/focus"
	"github.com/abhisek/adaptutor/internal/session"
	"github.com/abhisek/adaptutor/internal/ui/components"
	"github.com/abhisek/adaptutor/internal/ui/layout"
	"github.com/abhisek/adaptutor/internal/ui/theme"
)

// SummaryScreen displays the session summary. It is the last screen; any
// exit key quits the program.
type SummaryScreen struct {
	summary   *session.Summary
	recs      []session.Recommendation
	threshold float64
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.Summary, recs []session.Recommendation, threshold float64) *SummaryScreen {
	return &SummaryScreen{summary: summary, recs: recs, threshold: threshold}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Quit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Session complete!"))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Answered: %d      Correct: %d      Skipped: %d      Accuracy: %.0f%%",
		sum.Answered, sum.Correct, sum.Skipped, sum.Accuracy*100)
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n\n")

	cw := components.ContentWidth(width)
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Mastery")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	concepts := append([]session.ConceptResult(nil), sum.Concepts...)
	sort.SliceStable(concepts, func(i, j int) bool {
		return concepts[i].Mastery > concepts[j].Mastery
	})

	labelWidth := 0
	for _, c := range concepts {
		labelWidth = max(labelWidth, lipgloss.Width(c.Concept))
	}
	labelWidth = min(labelWidth, 20)

	for _, c := range concepts {
		bar := components.NewMasteryBar(c.Concept, c.Mastery, s.threshold, cw-24)
		bar.LabelWidth = labelWidth
		state := mastery.ResolveState(c.Mastery, c.Attempted, s.threshold)
		score := lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d/%d %-8s", c.Correct, c.Attempted, state))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()+score))
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, focus.Render(s.recs, s.threshold, cw)))

	return b.String()
}
