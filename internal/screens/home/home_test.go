package home

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/laban/internal/assessment"
	"github.com/abhisek/laban/internal/router"
	"github.com/abhisek/laban/internal/screen"
	"github.com/abhisek/laban/internal/screens/passport"
	"github.com/abhisek/laban/internal/screens/profile"
	"github.com/abhisek/laban/internal/screens/quiz"
)

type fakeResults struct{ all []assessment.Result }

func (f *fakeResults) Save(_ context.Context, r assessment.Result) error {
	f.all = append(f.all, r)
	return nil
}
func (f *fakeResults) LoadAll(context.Context) ([]assessment.Result, error)    { return f.all, nil }
func (f *fakeResults) Get(context.Context, string) (*assessment.Result, error) { return nil, nil }

type fakeProfiles struct{ st *assessment.Student }

func (f *fakeProfiles) Save(_ context.Context, st assessment.Student) error {
	f.st = &st
	return nil
}
func (f *fakeProfiles) Latest(context.Context) (*assessment.Student, error) { return f.st, nil }

func grade(t *testing.T, name string, at time.Time) assessment.Result {
	t.Helper()
	sc, err := assessment.Lookup(name)
	require.NoError(t, err)
	res, err := assessment.Grade(sc, assessment.Repeat("A", len(sc.Questions())), assessment.Student{Name: "Lan"}, at)
	require.NoError(t, err)
	return *res
}

// loaded runs Init and feeds the result back, returning the status message.
func loaded(t *testing.T, h *HomeScreen) screen.StatusMsg {
	t.Helper()
	_, cmd := h.Update(h.Init()())
	require.NotNil(t, cmd)
	status, ok := cmd().(screen.StatusMsg)
	require.True(t, ok)
	return status
}

func pushed(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	return msg.Screen
}

func TestHomeStatusAndMarks(t *testing.T) {
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	results := &fakeResults{all: []assessment.Result{grade(t, "disc", base), grade(t, "disc", base.Add(time.Hour)), grade(t, "iq", base)}}
	h := New(Deps{Results: results, Profiles: &fakeProfiles{st: &assessment.Student{Name: "Lan"}}})

	status := loaded(t, h)
	assert.Equal(t, screen.StatusMsg{Student: "Lan", Done: 2, Total: 5}, status)
	assert.Equal(t, "IQ ✓", h.menu.Labels()[2])
	assert.Equal(t, "DISC ✓", h.menu.Labels()[4])
	assert.Equal(t, "MBTI", h.menu.Labels()[0])
	assert.NotContains(t, h.View(120, 40), "Hãy điền Hồ sơ")
}

func TestHomeQuizNeedsProfile(t *testing.T) {
	h := New(Deps{Results: &fakeResults{}, Profiles: &fakeProfiles{}})
	loaded(t, h)
	assert.Contains(t, h.View(120, 40), "Hãy điền Hồ sơ")

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.IsType(t, &profile.ProfileScreen{}, pushed(t, cmd))
}

func TestHomeStartsQuiz(t *testing.T) {
	h := New(Deps{Results: &fakeResults{}, Profiles: &fakeProfiles{st: &assessment.Student{Name: "Lan"}}})
	loaded(t, h)

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	q, ok := pushed(t, cmd).(*quiz.QuizScreen)
	require.True(t, ok)
	assert.Equal(t, assessment.InstrumentHolland, q.Session().Scorer().Instrument())
}

func TestHomeResumeKeepsSelection(t *testing.T) {
	profiles := &fakeProfiles{}
	h := New(Deps{Results: &fakeResults{}, Profiles: profiles})
	loaded(t, h)
	for range 7 {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	assert.Equal(t, "HỒ SƠ", h.menu.Labels()[h.menu.Selected])

	profiles.st = &assessment.Student{Name: "Minh"}
	_, cmd := h.Update(h.Resume()())
	require.NotNil(t, cmd)
	assert.Equal(t, "Minh", cmd().(screen.StatusMsg).Student)
	assert.Equal(t, 7, h.menu.Selected)
}

func TestHomePassportShowsLatestPerInstrument(t *testing.T) {
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	older := grade(t, "disc", base)
	newer := grade(t, "disc", base.Add(time.Hour))

	h := New(Deps{Results: &fakeResults{all: []assessment.Result{older, newer}}})
	loaded(t, h)
	for range 5 {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	p, ok := pushed(t, cmd).(*passport.PassportScreen)
	require.True(t, ok)
	// Both results are DISC, so the passport has a single page.
	assert.NotContains(t, p.View(120, 50), "Trang")
}

func TestVariantFor(t *testing.T) {
	assert.Equal(t, MascotBlank, variantFor(0, 5))
	assert.Equal(t, MascotStamped, variantFor(3, 5))
	assert.Equal(t, MascotComplete, variantFor(5, 5))
}

func TestHomeCompactView(t *testing.T) {
	h := New(Deps{})
	loaded(t, h)
	view := h.View(80, 16)
	assert.Contains(t, view, "L A B A N")
	assert.NotContains(t, view, "╨")
}
