// Package focus shows the concepts to practice next with their resources.
package focus

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptutor/internal/questionbank"
	"github.com/abhisek/adaptutor/internal/router"
	"github.com/abhisek/adaptutor/internal/screen"
	"github.com/abhisek/adaptutor/internal/session"
	"github.com/abhisek/adaptutor/internal/ui/components"
	"github.com/abhisek/adaptutor/internal/ui/layout"
	"github.com/abhisek/adaptutor/internal/ui/theme"
)

// FocusScreen lists recommendations, weakest concept first.
type FocusScreen struct {
	recs      []session.Recommendation
	threshold float64
}

var _ screen.Screen = (*FocusScreen)(nil)
var _ screen.KeyHintProvider = (*FocusScreen)(nil)

// New computes recommendations for the session's current mastery.
func New(bank *questionbank.Bank, st *session.State) *FocusScreen {
	return &FocusScreen{
		recs:      session.Recommendations(bank, st),
		threshold: st.FocusThreshold,
	}
}

func (s *FocusScreen) Init() tea.Cmd {
	return nil
}

func (s *FocusScreen) Title() string {
	return "Focus"
}

func (s *FocusScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *FocusScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc", "f", "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *FocusScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, Render(s.recs, s.threshold, cw))
}

// Render draws the recommendation list at content width cw. The summary
// screen reuses it.
func Render(recs []session.Recommendation, threshold float64, cw int) string {
	var b strings.Builder
	b.WriteString("\n")

	if len(recs) == 0 {
		b.WriteString(theme.Correct.Render("Great job! Every concept is at or above the focus level."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Concepts below %.0f%% mastery, weakest first", threshold*100)))
	b.WriteString("\n\n")

	for _, rec := range recs {
		var card strings.Builder
		card.WriteString(components.NewMasteryBar(rec.Concept, rec.Mastery, threshold, cw-6).View())
		if len(rec.ResourceURLs) == 0 {
			card.WriteString("\n")
			card.WriteString(theme.Hint.Render("No resources listed. Practice more questions on this concept."))
		}
		for _, url := range rec.ResourceURLs {
			card.WriteString("\n")
			card.WriteString(theme.RenderLink(url))
		}
		b.WriteString(components.Card(card.String(), cw))
		b.WriteString("\n")
	}
	return b.String()
}
