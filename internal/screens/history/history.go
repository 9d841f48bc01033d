// Package history lists every saved result, newest first.
package history

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/laban/internal/assessment"
	"github.com/abhisek/laban/internal/report"
	"github.com/abhisek/laban/internal/router"
	"github.com/abhisek/laban/internal/screen"
	"github.com/abhisek/laban/internal/screens/passport"
	"github.com/abhisek/laban/internal/store"
	"github.com/abhisek/laban/internal/ui/layout"
	"github.com/abhisek/laban/internal/ui/theme"
)

type historyLoadedMsg struct {
	Results []assessment.Result
	Err     error
}

// HistoryScreen displays past results.
type HistoryScreen struct {
	repo     store.ResultRepo
	results  []assessment.Result
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.ResultRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		results, err := repo.LoadAll(context.Background())
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		slices.Reverse(results)
		return historyLoadedMsg{Results: results}
	}
}

func (s *HistoryScreen) Title() string {
	return "Lịch sử"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Xem hộ chiếu"},
		{Key: "↑↓", Description: "Di chuyển"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.results = msg.Results
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.results)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.results) == 0 {
				return s, nil
			}
			next := passport.New(s.results, s.selected, "")
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nLỗi: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Đang tải lịch sử...")
	}
	if len(s.results) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Chưa có kết quả nào. Hãy làm một bài trắc nghiệm!")
	}

	var b strings.Builder
	b.WriteString("\n")

	// Keep the selection visible on short terminals.
	rows := max(height-2, 1)
	first := 0
	if s.selected >= rows {
		first = s.selected - rows + 1
	}
	last := min(first+rows, len(s.results))

	for i := first; i < last; i++ {
		r := s.results[i]
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}
		stale := ""
		if !report.Current(r) {
			stale = " *"
		}

		line := fmt.Sprintf("%s%s  %-16s  %-6s  %s%s",
			prefix, r.CompletedAt.Local().Format("02/01/2006"), r.Instrument.DisplayName(),
			r.Classification.Code, r.Classification.Label, stale)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Accent).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
