package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptutor/internal/ui/theme"
)

// MasteryBar displays a concept's mastery as a horizontal bar.
type MasteryBar struct {
	Label      string
	LabelWidth int // pad labels to this width so bars line up
	Mastery    float64
	Threshold  float64
	Width      int
}

// NewMasteryBar creates a bar colored against the focus threshold.
func NewMasteryBar(label string, mastery, threshold float64, width int) MasteryBar {
	return MasteryBar{
		Label:     label,
		Mastery:   mastery,
		Threshold: threshold,
		Width:     width,
	}
}

// View renders the bar.
func (p MasteryBar) View() string {
	var result string

	if p.Label != "" {
		label := p.Label
		if pad := p.LabelWidth - lipgloss.Width(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 6 // "  100%"

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Mastery)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	filledStr := lipgloss.NewStyle().
		Background(theme.MasteryColor(p.Mastery, p.Threshold)).
		Render(strings.Repeat(" ", filled))

	emptyStr := lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", empty))

	result += filledStr + emptyStr

	result += lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %3d%%", int(p.Mastery*100+0.5)))

	return result
}
