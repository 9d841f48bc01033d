// Package quiz walks a student through one instrument, question by
// question, and hands the finished result to the passport screen.
package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/laban/internal/assessment"
	"github.com/abhisek/laban/internal/metrics"
	"github.com/abhisek/laban/internal/router"
	"github.com/abhisek/laban/internal/screen"
	"github.com/abhisek/laban/internal/screens/passport"
	"github.com/abhisek/laban/internal/store"
	"github.com/abhisek/laban/internal/ui/components"
	"github.com/abhisek/laban/internal/ui/layout"
	"github.com/abhisek/laban/internal/ui/theme"
)

// SaveFailedNotice is shown on the passport when the result could not be
// stored.
const SaveFailedNotice = "Không lưu được kết quả. Kết quả vẫn hiển thị bên dưới nhưng sẽ không có trong lịch sử."

// Deps are what a quiz needs to finish an attempt.
type Deps struct {
	Results store.ResultRepo
	Student assessment.Student
	Now     func() time.Time
}

type savedMsg struct {
	result assessment.Result
	err    error
}

// QuizScreen runs one assessment.Session.
type QuizScreen struct {
	deps       Deps
	session    *assessment.Session
	choices    components.ChoiceList
	confirming bool
	finishing  bool
	errMsg     string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.BackInterceptor = (*QuizScreen)(nil)

// New starts a fresh attempt at sc.
func New(sc assessment.Scorer, deps Deps) *QuizScreen {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	q := &QuizScreen{
		deps:    deps,
		session: assessment.NewSession(sc),
	}
	q.loadQuestion()
	return q
}

func (q *QuizScreen) loadQuestion() {
	cur, ok := q.session.Current()
	if !ok {
		return
	}
	opts := assessment.AnswerOptions(q.session.Scorer().Instrument(), cur)
	choices := make([]components.Choice, len(opts))
	for i, o := range opts {
		choices[i] = components.Choice{Key: o.Key, Label: o.Text}
	}
	q.choices = components.NewChoiceList(cur.Text, choices)
}

func (q *QuizScreen) Init() tea.Cmd {
	return nil
}

func (q *QuizScreen) Title() string {
	return q.session.Scorer().Instrument().DisplayName()
}

// InterceptsBack is always true: Esc asks before abandoning.
func (q *QuizScreen) InterceptsBack() bool {
	return true
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	if q.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Bỏ bài"},
			{Key: "N", Description: "Làm tiếp"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Chọn"},
		{Key: "Enter", Description: "Trả lời"},
		{Key: "Esc", Description: "Thoát"},
	}
}

// Session exposes the running attempt.
func (q *QuizScreen) Session() *assessment.Session {
	return q.session
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		notice := ""
		if msg.err != nil {
			metrics.ResultSaveFailures.Inc()
			slog.Warn("failed to save result", "instrument", msg.result.Instrument, "err", msg.err)
			notice = SaveFailedNotice
		}
		next := passport.New([]assessment.Result{msg.result}, 0, notice)
		return q, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyMsg:
		if q.finishing {
			return q, nil
		}
		if q.confirming {
			switch strings.ToLower(msg.String()) {
			case "y":
				return q, func() tea.Msg { return router.PopScreenMsg{} }
			case "n", "esc":
				q.confirming = false
			}
			return q, nil
		}
		if msg.String() == "esc" {
			q.confirming = true
			return q, nil
		}

		var cmd tea.Cmd
		q.choices, cmd = q.choices.Update(msg)
		if ch, ok := q.choices.Answer(); ok {
			return q, q.answer(assessment.Answer(ch.Key))
		}
		return q, cmd
	}
	return q, nil
}

func (q *QuizScreen) answer(a assessment.Answer) tea.Cmd {
	if err := q.session.Answer(a); err != nil {
		q.errMsg = err.Error()
		q.loadQuestion()
		return nil
	}
	q.errMsg = ""
	if !q.session.Done() {
		q.loadQuestion()
		return nil
	}
	return q.finish()
}

func (q *QuizScreen) finish() tea.Cmd {
	inst := q.session.Scorer().Instrument()
	res, err := q.session.Finish(q.deps.Student, q.deps.Now())
	metrics.ObserveGrade(inst, res, err)
	if err != nil {
		q.errMsg = err.Error()
		return nil
	}
	q.finishing = true

	repo := q.deps.Results
	result := *res
	return func() tea.Msg {
		if repo == nil {
			return savedMsg{result: result}
		}
		return savedMsg{result: result, err: repo.Save(context.Background(), result)}
	}
}

func (q *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	done, total := q.session.Progress()

	var sections []string
	sections = append(sections, components.StepProgress(done, total, cw).View(), "")

	switch {
	case q.finishing:
		sections = append(sections, theme.Hint.Render("Đang chấm điểm và cấp hộ chiếu..."))
	case q.confirming:
		sections = append(sections, components.Card(
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Bỏ bài đang làm?")+"\n\n"+
				theme.Body.Render(fmt.Sprintf("Bạn đã trả lời %d/%d câu. Câu trả lời sẽ không được lưu.", done, total))+"\n\n"+
				theme.Hint.Render("[Y] Bỏ bài    [N] Làm tiếp"),
			cw))
	default:
		sections = append(sections, components.Card(q.choices.View(), cw))
	}

	if q.errMsg != "" {
		sections = append(sections, "", lipgloss.NewStyle().Foreground(theme.Error).Render(q.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
