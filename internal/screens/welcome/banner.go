package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptutor/internal/ui/theme"
)

const bannerArt = `
   _   ___   _   ___ _____ _   _ _____ ___  ___
  /_\ |   \ /_\ | _ \_   _| | | |_   _/ _ \| _ \
 / _ \| |) / _ \|  _/ | | | |_| | | || (_) |   /
/_/ \_\___/_/ \_\_|   |_|  \___/  |_| \___/|_|_\`

const bannerCompact = "A D A P T U T O R"

// RenderBanner returns the banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 52 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 52 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
