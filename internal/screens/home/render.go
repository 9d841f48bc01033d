package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/laban/internal/screens/welcome"
	"github.com/abhisek/laban/internal/ui/components"
	"github.com/abhisek/laban/internal/ui/theme"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// renderTitle returns the banner, compact when space is short.
func renderTitle(cw int, compact bool) string {
	bannerWidth := 80
	if compact {
		bannerWidth = 0
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(welcome.RenderBanner(bannerWidth))
}

// renderStatsBar shows who the passport belongs to and how many stamps it has.
func renderStatsBar(student string, done, total, results, cw int, compact bool) string {
	doneStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	countStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	who := dimStyle.Render("Chưa có hồ sơ")
	if student != "" {
		who = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(student)
	}

	var stats string
	if compact {
		stats = fmt.Sprintf("%s  %s %s",
			who,
			doneStyle.Render(fmt.Sprintf("▣%d/%d", done, total)),
			countStyle.Render(fmt.Sprintf("≡%d", results)),
		)
	} else {
		stats = fmt.Sprintf("%s   %s   %s",
			who,
			doneStyle.Render(fmt.Sprintf("▣ %d/%d BÀI", done, total)),
			countStyle.Render(fmt.Sprintf("≡ %d KẾT QUẢ", results)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int) string {
	var buttons []string
	for i, label := range items {
		buttons = append(buttons, components.MenuButton(label, i == selected, buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for small terminals
// where bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Accent).
				Bold(true).
				Render(" ▸ "+label+" "))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Text).
			Render("   "+label))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderProfileHint nudges the student to fill in a profile.
func renderProfileHint(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Hãy điền Hồ sơ trước khi làm bài")
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
