package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/laban/internal/ui/theme"
)

// ProgressBar is a labelled horizontal bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// StepProgress builds the quiz bar: "Câu n/total" where n is the question
// on screen, filled by the share already answered.
func StepProgress(done, total, width int) ProgressBar {
	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	return ProgressBar{
		Label:       fmt.Sprintf("Câu %d/%d", min(done+1, total), total),
		Percent:     pct,
		ShowPercent: true,
		Width:       width,
	}
}

// View renders the bar, never narrower than four cells.
func (p ProgressBar) View() string {
	var label, pct string
	if p.Label != "" {
		label = theme.Body.Render(p.Label) + "  "
	}
	if p.ShowPercent {
		pct = theme.Label.Render(fmt.Sprintf("  %3d%%", int(p.Percent*100)))
	}

	cells := max(4, p.Width-lipgloss.Width(label)-lipgloss.Width(pct))
	filled := min(cells, max(0, int(float64(cells)*p.Percent)))

	bar := lipgloss.NewStyle().Foreground(theme.Primary).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cells-filled))
	return label + bar + pct
}
