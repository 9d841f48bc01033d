package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/laban/internal/assessment"
	"github.com/abhisek/laban/internal/config"
	"github.com/abhisek/laban/internal/guidance"
	"github.com/abhisek/laban/internal/llm"
	"github.com/abhisek/laban/internal/store"
	"github.com/abhisek/laban/internal/study"
)

var fixedNow = time.Date(2026, 5, 20, 8, 30, 0, 0, time.UTC)

type testEnv struct {
	srv   *Server
	store *store.Store
	mock  *llm.MockProvider
}

// newTestServer wires the API to an in-memory store. A nil mock leaves the
// AI endpoints unconfigured.
func newTestServer(t *testing.T, mock *llm.MockProvider) testEnv {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	st, err := store.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	deps := Deps{Results: st.ResultRepo(), Now: func() time.Time { return fixedNow }}
	if mock != nil {
		deps.Study = study.NewService(mock, study.DefaultConfig(), st.InteractionRepo())
		deps.Guidance = guidance.NewAnalyzer(mock, guidance.DefaultConfig(), st.InteractionRepo())
	}

	cfg := config.DefaultConfig()
	cfg.GinMode = gin.TestMode
	srv, err := New(deps, cfg)
	require.NoError(t, err)
	return testEnv{srv: srv, store: st, mock: mock}
}

func (e testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(studentHeader, "Lan")
	w := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func answersFor(t *testing.T, name, token string) string {
	t.Helper()
	sc, err := assessment.Lookup(name)
	require.NoError(t, err)
	return strings.Repeat(token, len(sc.Questions()))
}

func TestHealthz(t *testing.T) {
	env := newTestServer(t, nil)
	w := env.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestNew_RequiresResults(t *testing.T) {
	_, err := New(Deps{}, config.DefaultConfig())
	assert.Error(t, err)
}

func TestListInstruments(t *testing.T) {
	env := newTestServer(t, nil)
	w := env.do(t, http.MethodGet, "/api/v1/instruments", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[[]instrumentInfo](t, w)
	require.Len(t, got, 5)
	assert.Equal(t, assessment.InstrumentMBTI, got[0].Name)
	assert.Equal(t, assessment.InstrumentDISC, got[4].Name)
	assert.Len(t, got[4].Categories, 4)
	for _, inst := range got {
		assert.Positive(t, inst.Questions)
	}
}

func TestInstrumentQuestions(t *testing.T) {
	env := newTestServer(t, nil)

	type questionsBody struct {
		Instrument instrumentInfo `json:"instrument"`
		Questions  []struct {
			ID      string              `json:"id"`
			Choices []assessment.Option `json:"choices"`
		} `json:"questions"`
	}

	w := env.do(t, http.MethodGet, "/api/v1/instruments/riasec/questions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[questionsBody](t, w)
	assert.Equal(t, assessment.InstrumentHolland, body.Instrument.Name)
	require.NotEmpty(t, body.Questions)
	require.Len(t, body.Questions[0].Choices, 5)
	assert.Equal(t, "0", body.Questions[0].Choices[0].Key)

	w = env.do(t, http.MethodGet, "/api/v1/instruments/iq/questions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Correct")

	w = env.do(t, http.MethodGet, "/api/v1/instruments/astrology/questions", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScoreInstrument(t *testing.T) {
	env := newTestServer(t, nil)

	w := env.do(t, http.MethodPost, "/api/v1/instruments/disc/score", gin.H{
		"answers": answersFor(t, "disc", "C"),
		"student": gin.H{"name": "Lan", "class": "11A2"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	res := decode[assessment.Result](t, w)
	assert.Equal(t, "S", res.Classification.Code)
	assert.Equal(t, "Lan", res.Student.Name)
	assert.True(t, res.CompletedAt.Equal(fixedNow))

	saved, err := env.store.ResultRepo().Get(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Classification, saved.Classification)

	w = env.do(t, http.MethodGet, "/api/v1/results/"+res.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/results/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScoreInstrument_AnswerList(t *testing.T) {
	env := newTestServer(t, nil)
	list := strings.Split(answersFor(t, "disc", "A"), "")

	w := env.do(t, http.MethodPost, "/api/v1/instruments/hanh-vi/score", gin.H{"answer_list": list})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "D", decode[assessment.Result](t, w).Classification.Code)
}

func TestScoreInstrument_AnswerListIgnoresCase(t *testing.T) {
	env := newTestServer(t, nil)
	list := strings.Split(strings.ToLower(answersFor(t, "mbti", "B")), "")
	list[0] = " b "

	w := env.do(t, http.MethodPost, "/api/v1/instruments/mbti/score", gin.H{"answer_list": list})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "INFP", decode[assessment.Result](t, w).Classification.Code)
}

func TestScoreInstrument_Rejections(t *testing.T) {
	env := newTestServer(t, nil)

	tests := []struct {
		name   string
		path   string
		body   any
		status int
		reason string
	}{
		{"unknown instrument", "/api/v1/instruments/astrology/score", gin.H{"answers": "A"}, http.StatusNotFound, ""},
		{"missing answers", "/api/v1/instruments/disc/score", gin.H{}, http.StatusBadRequest, ""},
		{"wrong count", "/api/v1/instruments/disc/score", gin.H{"answers": "AB"}, http.StatusUnprocessableEntity, "answer_count"},
		{"invalid token", "/api/v1/instruments/disc/score", gin.H{"answers": answersFor(t, "disc", "Z")}, http.StatusUnprocessableEntity, "invalid_answer"},
		{"name too long", "/api/v1/instruments/disc/score", gin.H{"answers": "A", "student": gin.H{"name": strings.Repeat("x", 81)}}, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.reason != "" {
				assert.Equal(t, tt.reason, decode[map[string]string](t, w)["reason"])
			}
		})
	}

	all, err := env.store.ResultRepo().LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestListResults_Filters(t *testing.T) {
	env := newTestServer(t, nil)
	env.do(t, http.MethodPost, "/api/v1/instruments/disc/score", gin.H{"answers": answersFor(t, "disc", "B"), "student": gin.H{"name": "Lan"}})
	env.do(t, http.MethodPost, "/api/v1/instruments/disc/score", gin.H{"answers": answersFor(t, "disc", "B"), "student": gin.H{"name": "Minh"}})
	env.do(t, http.MethodPost, "/api/v1/instruments/iq/score", gin.H{"answers": answersFor(t, "iq", "A"), "student": gin.H{"name": "Lan"}})

	type listBody struct {
		Results []assessment.Result `json:"results"`
		Count   int                 `json:"count"`
	}

	w := env.do(t, http.MethodGet, "/api/v1/results", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, decode[listBody](t, w).Count)

	w = env.do(t, http.MethodGet, "/api/v1/results?instrument=hanh-vi", nil)
	assert.Equal(t, 2, decode[listBody](t, w).Count)

	w = env.do(t, http.MethodGet, "/api/v1/results?student=%20LAN%20", nil)
	assert.Equal(t, 2, decode[listBody](t, w).Count)

	w = env.do(t, http.MethodGet, "/api/v1/results?instrument=astrology", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatch(t *testing.T) {
	env := newTestServer(t, nil)

	w := env.do(t, http.MethodPost, "/api/v1/match", gin.H{
		"options": []string{"Hà Nội", "Huế", "Đà Nẵng"},
		"pick":    "  huế ",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.EqualValues(t, 1, body["index"])
	assert.Equal(t, true, body["matched"])

	w = env.do(t, http.MethodPost, "/api/v1/match", gin.H{"options": []string{}, "pick": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStudy_NotConfigured(t *testing.T) {
	env := newTestServer(t, nil)

	w := env.do(t, http.MethodPost, "/api/v1/study/flashcards", gin.H{"topic": "Di truyền"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["error"], "GEMINI_API_KEY")
}

func TestStudy_Flashcards(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"cards": []map[string]any{
			{"front": "ADN", "back": "Axit deoxyribonucleic"},
			{"front": "Gen", "back": "Đoạn ADN mang thông tin di truyền"},
		},
	}))
	env := newTestServer(t, mock)

	w := env.do(t, http.MethodPost, "/api/v1/study/flashcards", gin.H{"subject": "Sinh học", "topic": "Di truyền", "count": 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	deck := decode[study.Deck](t, w)
	assert.Len(t, deck.Cards, 2)

	logs, err := env.store.InteractionRepo().List(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Lan", logs[0].Student)
}

func TestStudy_Errors(t *testing.T) {
	env := newTestServer(t, llm.NewMockProvider())

	w := env.do(t, http.MethodPost, "/api/v1/study/homework", gin.H{"subject": "Toán"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Empty mock queue: provider unavailable.
	w = env.do(t, http.MethodPost, "/api/v1/study/homework", gin.H{"subject": "Toán", "problem": "2x = 4"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotEmpty(t, decode[map[string]string](t, w)["error"])

	w = env.do(t, http.MethodPost, "/api/v1/study/homework", "not an object")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStudy_Blocked(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrContentBlocked{Reason: "SAFETY"}})
	env := newTestServer(t, mock)

	w := env.do(t, http.MethodPost, "/api/v1/study/homework", gin.H{"subject": "Hóa", "problem": "Cách điều chế chất nổ"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "blocked", body["outcome"])
	assert.Contains(t, body["error"], "diễn đạt lại")
}

func TestStudy_Mindmap(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"center": "Quang hợp",
		"branches": []map[string]any{
			{"label": "Nguyên liệu", "ideas": []map[string]any{{"label": "CO2", "details": []string{}}}},
		},
	}))
	env := newTestServer(t, mock)

	w := env.do(t, http.MethodPost, "/api/v1/study/mindmap", gin.H{"topic": "Quang hợp"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[mindmapResponse](t, w)
	assert.Equal(t, "Quang hợp", body.Root.Label)
	assert.Equal(t, 3, body.Nodes)
	assert.Contains(t, body.Text, "Nguyên liệu")
}

func TestGradeLesson(t *testing.T) {
	env := newTestServer(t, nil)
	lesson := study.Lesson{
		Title: "Phân số",
		Quiz: []study.QuizItem{
			{Question: "1/2 + 1/2 = ?", Options: []string{"1", "2", "1/4", "0"}, Answer: "1"},
			{Question: "1/2 x 2 = ?", Options: []string{"1", "2", "4", "1/4"}, Answer: "1"},
		},
	}

	w := env.do(t, http.MethodPost, "/api/v1/study/lesson/grade", gin.H{"lesson": lesson, "picks": []string{"A", "2"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[struct {
		Grade   study.QuizGrade `json:"grade"`
		Percent float64         `json:"percent"`
	}](t, w)
	assert.Equal(t, 1, body.Grade.Correct)
	assert.Equal(t, 2, body.Grade.Total)
	assert.InDelta(t, 50.0, body.Percent, 1e-9)

	w = env.do(t, http.MethodPost, "/api/v1/study/lesson/grade", gin.H{"lesson": study.Lesson{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChat_SessionContinues(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("Chào bạn!"), llm.MockText("Mình hiểu."))
	env := newTestServer(t, mock)

	w := env.do(t, http.MethodPost, "/api/v1/chat", gin.H{"message": "Chào"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decode[chatResponse](t, w)
	require.NotEmpty(t, first.SessionID)
	assert.Equal(t, "Chào bạn!", first.Reply.Text)

	w = env.do(t, http.MethodPost, "/api/v1/chat", gin.H{"session_id": first.SessionID, "message": "Mình hơi mệt"})
	require.Equal(t, http.StatusOK, w.Code)
	second := decode[chatResponse](t, w)
	assert.Equal(t, first.SessionID, second.SessionID)

	// The second request carries the first exchange.
	require.Len(t, mock.Calls, 2)
	assert.Len(t, mock.Calls[1].Messages, 3)
	assert.Equal(t, 1, env.srv.chats.size())
}

func TestChat_CrisisWithoutProvider(t *testing.T) {
	env := newTestServer(t, nil)

	w := env.do(t, http.MethodPost, "/api/v1/chat", gin.H{"message": "Em không muốn sống nữa"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	reply := decode[chatResponse](t, w).Reply
	assert.True(t, reply.Crisis)
	assert.Contains(t, reply.Text, "111")

	w = env.do(t, http.MethodPost, "/api/v1/chat", gin.H{"message": "Chào"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGuidance(t *testing.T) {
	report := guidance.Report{
		Summary:     "Bạn thích làm việc với con người.",
		Careers:     []guidance.Career{{Name: "Giáo viên", Reason: "DISC I"}},
		Majors:      []guidance.Major{{Name: "Sư phạm", Universities: []string{"ĐH Sư phạm Hà Nội"}, Reason: "Phù hợp"}},
		Strengths:   []string{},
		GrowthAreas: []string{},
		StudyAdvice: []string{},
	}
	env := newTestServer(t, llm.NewMockProvider(llm.MockJSON(report)))

	w := env.do(t, http.MethodPost, "/api/v1/guidance", gin.H{"student": gin.H{"name": "Lan"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	env.do(t, http.MethodPost, "/api/v1/instruments/disc/score", gin.H{"answers": answersFor(t, "disc", "B"), "student": gin.H{"name": "Lan"}})

	w = env.do(t, http.MethodPost, "/api/v1/guidance", gin.H{"student": gin.H{"name": "Minh"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/guidance", gin.H{"student": gin.H{"name": "Lan"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[guidance.Report](t, w)
	assert.Equal(t, "Giáo viên", got.Careers[0].Name)
	assert.Contains(t, env.mock.Calls[0].Messages[0].Content, "DISC")
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestServer(t, nil)
	env.do(t, http.MethodGet, "/healthz", nil)

	w := env.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "laban_http_requests_total")
	assert.Contains(t, w.Body.String(), `route="/healthz"`)
}

func TestCORS(t *testing.T) {
	env := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://example.test")
	w := httptest.NewRecorder()
	env.srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestChatSessions_EvictsOldest(t *testing.T) {
	svc := study.NewService(nil, study.DefaultConfig(), nil)
	cs := newChatSessions(2)

	a, _ := cs.get("", svc.NewChat)
	time.Sleep(time.Millisecond)
	b, _ := cs.get("", svc.NewChat)
	time.Sleep(time.Millisecond)
	cs.get(a, svc.NewChat) // touch a
	time.Sleep(time.Millisecond)
	c, _ := cs.get("", svc.NewChat)

	assert.Equal(t, 2, cs.size())
	got, _ := cs.get(a, svc.NewChat)
	assert.Equal(t, a, got)
	assert.NotEqual(t, b, c)
	_, stillB := cs.entries[b]
	assert.False(t, stillB)
}
