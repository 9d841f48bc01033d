package history

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/laban/internal/assessment"
	"github.com/abhisek/laban/internal/router"
	"github.com/abhisek/laban/internal/screens/passport"
)

type fakeResults struct {
	all []assessment.Result
	err error
}

func (f *fakeResults) Save(context.Context, assessment.Result) error { return nil }

func (f *fakeResults) LoadAll(context.Context) ([]assessment.Result, error) {
	return append([]assessment.Result(nil), f.all...), f.err
}

func (f *fakeResults) Get(context.Context, string) (*assessment.Result, error) { return nil, nil }

func results(t *testing.T) []assessment.Result {
	t.Helper()
	base := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	var out []assessment.Result
	for i, name := range []string{"disc", "iq"} {
		sc, err := assessment.Lookup(name)
		require.NoError(t, err)
		res, err := assessment.Grade(sc, assessment.Repeat("A", len(sc.Questions())), assessment.Student{Name: "Lan"}, base.AddDate(0, 0, i))
		require.NoError(t, err)
		out = append(out, *res)
	}
	return out
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	s.Update(s.Init()())
}

func TestHistoryNewestFirst(t *testing.T) {
	all := results(t)
	s := New(&fakeResults{all: all})
	load(t, s)

	require.Len(t, s.results, 2)
	assert.Equal(t, assessment.InstrumentIQ, s.results[0].Instrument)

	view := s.View(100, 20)
	assert.Contains(t, view, "11/01/2026")
	assert.Contains(t, view, "DISC")
}

func TestHistoryEnterOpensPassport(t *testing.T) {
	s := New(&fakeResults{all: results(t)})
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	p, ok := msg.Screen.(*passport.PassportScreen)
	require.True(t, ok)
	assert.Equal(t, 1, p.Page())
}

func TestHistoryEmptyAndError(t *testing.T) {
	s := New(&fakeResults{})
	load(t, s)
	assert.Contains(t, s.View(100, 20), "Chưa có kết quả")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)

	s = New(&fakeResults{err: errors.New("boom")})
	load(t, s)
	assert.Contains(t, s.View(100, 20), "boom")
}
