// Package passport shows finished results as passport pages.
package passport

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/laban/internal/assessment"
	"github.com/abhisek/laban/internal/report"
	"github.com/abhisek/laban/internal/screen"
	"github.com/abhisek/laban/internal/ui/layout"
	"github.com/abhisek/laban/internal/ui/theme"
)

// PassportScreen pages through a list of results, one card per page.
type PassportScreen struct {
	results []assessment.Result
	visas   []string
	page    int
	notice  string
}

var _ screen.Screen = (*PassportScreen)(nil)
var _ screen.KeyHintProvider = (*PassportScreen)(nil)

// New opens the passport at results[start]. notice, when set, is shown
// above the card (for example when a result could not be saved).
func New(results []assessment.Result, start int, notice string) *PassportScreen {
	visas := make([]string, len(results))
	for i := range visas {
		visas[i] = report.VisaNumber()
	}
	if start < 0 || start >= len(results) {
		start = 0
	}
	return &PassportScreen{
		results: results,
		visas:   visas,
		page:    start,
		notice:  notice,
	}
}

func (s *PassportScreen) Init() tea.Cmd {
	return nil
}

func (s *PassportScreen) Title() string {
	return "Hộ chiếu"
}

func (s *PassportScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if len(s.results) > 1 {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Lật trang"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quay lại"})
}

// Page returns the index of the result on display.
func (s *PassportScreen) Page() int {
	return s.page
}

func (s *PassportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "left", "h":
		if s.page > 0 {
			s.page--
		}
	case "right", "l":
		if s.page < len(s.results)-1 {
			s.page++
		}
	}
	return s, nil
}

func (s *PassportScreen) View(width, height int) string {
	if len(s.results) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Chưa có kết quả nào. Hãy làm một bài trắc nghiệm!"))
	}

	var sections []string
	if s.notice != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(s.notice), "")
	}

	cardWidth := min(report.DefaultWidth, width-4)
	sections = append(sections, report.Passport(s.results[s.page], report.PassportOptions{
		Visa:  s.visas[s.page],
		Width: cardWidth,
	}))

	if len(s.results) > 1 {
		sections = append(sections, "", theme.Hint.Render(pager(s.page, len(s.results))))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

func pager(page, total int) string {
	left, right := "  ", "  "
	if page > 0 {
		left = "◂ "
	}
	if page < total-1 {
		right = " ▸"
	}
	return fmt.Sprintf("%sTrang %d/%d%s", left, page+1, total, right)
}
