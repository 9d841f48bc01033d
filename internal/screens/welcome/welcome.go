package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/laban/internal/router"
	"github.com/abhisek/laban/internal/screen"
	"github.com/abhisek/laban/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
)

// Tagline is shown under the banner.
const Tagline = "Hộ chiếu năng lực cho học sinh THPT"

// compassFrames spin the needle while the splash plays; the last frame
// points north.
var compassFrames = []string{"↗", "→", "↘", "↓", "↙", "←", "↖", "↑"}

const compassArt = `    ╭───N───╮
    │       │
    W   %s   E
    │       │
    ╰───S───╯`

type tickMsg time.Time

// WelcomeScreen shows a splash animation before transitioning to home.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with homeFactory's
// screen on the first key press.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned || w.elapsed >= phase2End {
			return w, nil
		}
		w.elapsed += tickInterval
		w.tickCount++
		if w.elapsed >= phase2End {
			return w, nil
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	home := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

// needle returns the compass arrow for the current tick. It settles on
// north once the first phase is over.
func (w *WelcomeScreen) needle() string {
	if w.elapsed >= phase2End {
		return compassFrames[len(compassFrames)-1]
	}
	return compassFrames[w.tickCount%len(compassFrames)]
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	compass := strings.Replace(compassArt, "%s", w.needle(), 1)
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.Primary).Render(compass))

	if w.elapsed >= phase1End {
		sections = append(sections, "", RenderBanner(width))
	}

	if w.elapsed >= phase2End {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(Tagline),
			"",
			theme.Hint.Render("nhấn phím bất kỳ để bắt đầu"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
