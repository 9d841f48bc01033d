package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/laban/internal/ui/theme"
)

const bannerArt = `
 ██╗      █████╗ ██████╗  █████╗ ███╗   ██╗
 ██║     ██╔══██╗██╔══██╗██╔══██╗████╗  ██║
 ██║     ███████║██████╔╝███████║██╔██╗ ██║
 ██║     ██╔══██║██╔══██╗██╔══██║██║╚██╗██║
 ███████╗██║  ██║██████╔╝██║  ██║██║ ╚████║
 ╚══════╝╚═╝  ╚═╝╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═══╝`

const bannerCompact = "L A B A N"

// RenderBanner returns the LABAN banner in gold. Terminals narrower than
// 46 columns get the compact form.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	if width < 46 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
