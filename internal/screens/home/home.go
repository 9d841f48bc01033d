// Package home is the main menu: one entry per instrument plus the
// passport, history and profile screens.
package home

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/laban/internal/assessment"
	"github.com/abhisek/laban/internal/guidance"
	"github.com/abhisek/laban/internal/router"
	"github.com/abhisek/laban/internal/screen"
	"github.com/abhisek/laban/internal/screens/history"
	"github.com/abhisek/laban/internal/screens/passport"
	"github.com/abhisek/laban/internal/screens/profile"
	"github.com/abhisek/laban/internal/screens/quiz"
	"github.com/abhisek/laban/internal/store"
	"github.com/abhisek/laban/internal/ui/components"
	"github.com/abhisek/laban/internal/ui/layout"
)

// Deps are the repositories the home screen reads and hands on.
type Deps struct {
	Results  store.ResultRepo
	Profiles store.ProfileRepo
	Now      func() time.Time
}

type loadedMsg struct {
	student *assessment.Student
	results []assessment.Result
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps    Deps
	student *assessment.Student
	results []assessment.Result
	done    map[assessment.Instrument]bool
	menu    components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen. Data loads in Init.
func New(deps Deps) *HomeScreen {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	h := &HomeScreen{deps: deps, done: map[assessment.Instrument]bool{}}
	h.buildMenu()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	deps := h.deps
	return func() tea.Msg {
		ctx := context.Background()
		var msg loadedMsg
		if deps.Profiles != nil {
			st, err := deps.Profiles.Latest(ctx)
			if err != nil {
				slog.Warn("failed to load profile", "err", err)
			}
			msg.student = st
		}
		if deps.Results != nil {
			results, err := deps.Results.LoadAll(ctx)
			if err != nil {
				slog.Warn("failed to load results", "err", err)
			}
			msg.results = results
		}
		return msg
	}
}

// Resume reloads after a quiz or the profile form closes.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.Init()
}

func (h *HomeScreen) Title() string {
	return "Trang chủ"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Di chuyển"},
		{Key: "Enter", Description: "Chọn"},
		{Key: "Ctrl+C", Description: "Thoát"},
	}
}

// studentName returns the profile name, or "" when none is saved.
func (h *HomeScreen) studentName() string {
	if h.student == nil {
		return ""
	}
	return h.student.Name
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(loadedMsg); ok {
		h.student = msg.student
		h.results = msg.results
		h.done = make(map[assessment.Instrument]bool)
		for _, r := range h.results {
			h.done[r.Instrument] = true
		}
		selected := h.menu.Selected
		h.buildMenu()
		h.menu.Selected = selected

		status := screen.StatusMsg{Student: h.studentName(), Done: len(h.done), Total: len(assessment.Instruments())}
		return h, func() tea.Msg { return status }
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) buildMenu() {
	var items []components.MenuItem

	for _, inst := range assessment.Instruments() {
		label := inst.DisplayName()
		if h.done[inst] {
			label += " ✓"
		}
		items = append(items, components.MenuItem{Label: label, Action: h.startQuiz(inst)})
	}

	items = append(items,
		components.MenuItem{Label: "HỘ CHIẾU", Action: h.openPassport},
		components.MenuItem{Label: "LỊCH SỬ", Action: func() tea.Cmd {
			return push(history.New(h.deps.Results))
		}},
		components.MenuItem{Label: "HỒ SƠ", Action: h.openProfile},
		components.MenuItem{Label: "THOÁT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	h.menu = components.NewMenu(items)
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// startQuiz opens the profile form first when no student is known, so
// every result carries a name.
func (h *HomeScreen) startQuiz(inst assessment.Instrument) func() tea.Cmd {
	return func() tea.Cmd {
		if h.studentName() == "" {
			return h.openProfile()
		}
		sc, err := assessment.Lookup(string(inst))
		if err != nil {
			return nil
		}
		return push(quiz.New(sc, quiz.Deps{
			Results: h.deps.Results,
			Student: *h.student,
			Now:     h.deps.Now,
		}))
	}
}

func (h *HomeScreen) openProfile() tea.Cmd {
	return push(profile.New(h.deps.Profiles, h.student))
}

// openPassport shows the latest result of each completed instrument.
func (h *HomeScreen) openPassport() tea.Cmd {
	return push(passport.New(guidance.Latest(h.results), 0, ""))
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer and frame gaps.
	termHeight := height + 8
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)
	total := len(assessment.Instruments())

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(variantFor(len(h.done), total), cw))
	}

	sections = append(sections, renderStatsBar(h.studentName(), len(h.done), total, len(h.results), cw, compact))

	if h.studentName() == "" {
		sections = append(sections, renderProfileHint(cw))
	}

	if compact {
		sections = append(sections, renderMenuCompact(h.menu.Labels(), h.menu.Selected, cw))
	} else {
		sections = append(sections, renderMenu(h.menu.Labels(), h.menu.Selected, cw))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}
