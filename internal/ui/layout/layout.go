package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/laban/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint is a key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool   { return width < CompactWidthThreshold }
func IsCompactHeight(height int) bool { return height < CompactHeightThreshold }

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := lipgloss.NewStyle().
		Foreground(theme.Text).
		Align(lipgloss.Center).
		Render(fmt.Sprintf(
			"Cửa sổ quá nhỏ!\n\nHãy mở rộng tối thiểu\n%d x %d\n\nHiện tại: %d x %d",
			MinWidth, MinHeight, width, height,
		))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

// Stamps draws one filled box per completed instrument.
func Stamps(done, total int) string {
	done = max(0, min(done, total))
	return strings.Repeat("▣", done) + strings.Repeat("□", total-done)
}

// RenderHeader draws the top bar: brand on the left, the screen title
// centred, and the student with their stamp count on the right.
func RenderHeader(title, student string, done, total int, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("✦ Laban")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	who := lipgloss.NewStyle().Foreground(theme.Secondary)
	if student == "" {
		student = "Chưa có hồ sơ"
		who = who.Foreground(theme.TextDim).Italic(true)
	}
	right := who.Render(student) + "  " +
		lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("%s %d/%d", Stamps(done, total), done, total))

	return bar(spread(brand, center, right, width-4), width)
}

// spread lays out three segments across inner, keeping center centred
// whenever the sides leave room for it.
func spread(left, center, right string, inner int) string {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)

	leftGap := max(1, (inner-cw)/2-lw)
	rightGap := max(1, inner-lw-leftGap-cw-rw)
	return left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
}

// RenderFooter draws the key hints, dropping trailing hints that do not fit.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	inner := width - 4
	var line string
	for _, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		next := part
		if line != "" {
			next = line + "   " + part
		}
		if lipgloss.Width(next) > inner {
			break
		}
		line = next
	}
	return bar(line, width)
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFrame stacks header, content and footer, giving the content
// whatever height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).Render(content),
		footer,
	)
}
