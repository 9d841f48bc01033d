package home

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/laban/internal/ui/theme"
)

// MascotVariant selects which passport art to display.
type MascotVariant int

const (
	MascotBlank    MascotVariant = iota // No results yet
	MascotStamped                       // Some instruments done
	MascotComplete                      // Every instrument done
)

const mascotBlank = `╭───────────╮
│  ✦ LABAN  │
│           │
│   ─────   │
╰───────────╯`

const mascotStamped = `╭───────────╮
│  ✦ LABAN  │
│ ▣       ▣ │
│   ─────   │
╰───────────╯`

const mascotComplete = `╭───────────╮
│  ★ LABAN  │
│ ▣ ▣ ▣ ▣ ▣ │
│   ─────   │
╰─────╥─────╯
      ╨`

// variantFor picks the art for done of total instruments.
func variantFor(done, total int) MascotVariant {
	switch {
	case done == 0:
		return MascotBlank
	case done >= total:
		return MascotComplete
	default:
		return MascotStamped
	}
}

// RenderMascot returns the passport art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotBlank
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg color.Color = theme.Primary

	switch v {
	case MascotComplete:
		art = mascotComplete
		fg = theme.Accent
	case MascotStamped:
		art = mascotStamped
	default:
		art = mascotBlank
		fg = theme.TextDim
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
