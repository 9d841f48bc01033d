package study

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/laban/internal/llm"
	"github.com/abhisek/laban/internal/store"
)

type memLogger struct {
	mu   sync.Mutex
	logs []store.Interaction
	err  error
}

func (m *memLogger) Append(_ context.Context, in store.Interaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, in)
	return m.err
}

func newTestService(responses ...llm.MockResponse) (*Service, *llm.MockProvider, *memLogger) {
	mock := llm.NewMockProvider(responses...)
	logger := &memLogger{}
	return NewService(mock, DefaultConfig(), logger), mock, logger
}

func TestFlashcards(t *testing.T) {
	svc, mock, logger := newTestService(llm.MockJSON(map[string]any{
		"cards": []map[string]any{
			{"front": "ADN", "back": "Axit deoxyribonucleic"},
			{"front": "  adn ", "back": "trùng lặp"},
			{"front": "Gen", "back": "Đoạn ADN mang thông tin di truyền", "hint": "đơn vị di truyền"},
			{"front": "", "back": "thẻ rỗng"},
			{"front": "NST", "back": "Nhiễm sắc thể"},
		},
	}))

	ctx := WithStudent(context.Background(), "Lan")
	deck, err := svc.Flashcards(ctx, FlashcardInput{Subject: "Sinh học", Topic: " Di truyền ", Count: 2})
	require.NoError(t, err)
	assert.Equal(t, "Di truyền", deck.Topic)
	require.Len(t, deck.Cards, 2)
	assert.Equal(t, "ADN", deck.Cards[0].Front)
	assert.Equal(t, "Gen", deck.Cards[1].Front)

	req := mock.Calls[0]
	assert.Equal(t, "flashcard-deck", req.Schema.Name)
	assert.Contains(t, req.Messages[0].Content, "Số thẻ: 2")

	require.Len(t, logger.logs, 1)
	assert.Equal(t, KindFlashcards, logger.logs[0].Kind)
	assert.Equal(t, "Lan", logger.logs[0].Student)
	assert.True(t, logger.logs[0].Success)
}

func TestFlashcards_CountDefaultsAndCap(t *testing.T) {
	svc, mock, _ := newTestService(
		llm.MockJSON(map[string]any{"cards": []map[string]any{{"front": "a", "back": "b"}}}),
		llm.MockJSON(map[string]any{"cards": []map[string]any{{"front": "a", "back": "b"}}}),
	)
	_, err := svc.Flashcards(context.Background(), FlashcardInput{Topic: "Hóa"})
	require.NoError(t, err)
	_, err = svc.Flashcards(context.Background(), FlashcardInput{Topic: "Hóa", Count: 500})
	require.NoError(t, err)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "Số thẻ: 10")
	assert.Contains(t, mock.Calls[1].Messages[0].Content, "Số thẻ: 30")
}

func TestFlashcards_NoUsableCards(t *testing.T) {
	svc, _, logger := newTestService(llm.MockJSON(map[string]any{"cards": []map[string]any{{"front": " ", "back": "x"}}}))
	_, err := svc.Flashcards(context.Background(), FlashcardInput{Topic: "Lý"})
	var inv *llm.ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, llm.SchemaMismatch, inv.Kind)
	require.Len(t, logger.logs, 1)
}

func TestInputValidation(t *testing.T) {
	svc, mock, logger := newTestService()
	ctx := context.Background()

	_, err := svc.Flashcards(ctx, FlashcardInput{Topic: "   "})
	var inErr *InputError
	require.ErrorAs(t, err, &inErr)
	assert.Equal(t, "topic", inErr.Field)

	_, err = svc.ReviewWriting(ctx, WritingInput{})
	require.ErrorAs(t, err, &inErr)
	_, err = svc.SolveHomework(ctx, HomeworkInput{Problem: strings.Repeat("x", 9000)})
	require.ErrorAs(t, err, &inErr)
	_, err = svc.EvaluateSpeaking(ctx, SpeakingInput{})
	require.ErrorAs(t, err, &inErr)
	_, err = svc.Lesson(ctx, LessonInput{Topic: "Hàm số", Grade: 9})
	require.ErrorAs(t, err, &inErr)
	assert.Equal(t, "grade", inErr.Field)

	assert.Zero(t, mock.CallCount(), "invalid input never reaches the provider")
	assert.Empty(t, logger.logs)
}

func TestReviewWriting(t *testing.T) {
	svc, mock, _ := newTestService(llm.MockJSON(WritingFeedback{
		Score:        7.5,
		Summary:      "Bài viết mạch lạc",
		Strengths:    []string{"Dẫn chứng tốt"},
		Improvements: []string{"Kết bài còn ngắn"},
		Corrections:  []Correction{{Original: "sự sống còn", Suggested: "sự tồn vong", Reason: "dùng từ"}},
	}))
	fb, err := svc.ReviewWriting(context.Background(), WritingInput{Prompt: "Nghị luận về lòng biết ơn", Essay: "Lòng biết ơn là..."})
	require.NoError(t, err)
	assert.Equal(t, 7.5, fb.Score)
	assert.Len(t, fb.Corrections, 1)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "Đề bài: Nghị luận về lòng biết ơn")
}

func TestReviewWriting_ScoreOutOfRange(t *testing.T) {
	svc, _, logger := newTestService(llm.MockJSON(WritingFeedback{Score: 12, Strengths: []string{}, Improvements: []string{}, Corrections: []Correction{}}))
	_, err := svc.ReviewWriting(context.Background(), WritingInput{Essay: "abc"})
	var inv *llm.ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, llm.SchemaMismatch, inv.Kind)
	require.Len(t, logger.logs, 1)
	assert.False(t, logger.logs[0].Success)
}

func TestSolveHomework(t *testing.T) {
	svc, _, _ := newTestService(llm.MockJSON(Solution{
		Answer:      "x = 2",
		Steps:       []string{"Chuyển vế: 2x = 4", "Chia hai vế cho 2"},
		Explanation: "Phương trình bậc nhất",
		Concepts:    []string{"Phương trình bậc nhất một ẩn"},
	}))
	sol, err := svc.SolveHomework(context.Background(), HomeworkInput{Subject: "Toán", Problem: "2x + 1 = 5"})
	require.NoError(t, err)
	assert.Equal(t, "x = 2", sol.Answer)
	assert.Len(t, sol.Steps, 2)
}

func TestEvaluateSpeaking(t *testing.T) {
	svc, _, _ := newTestService(llm.MockJSON(SpeakingFeedback{
		Score:       8,
		Fluency:     "Trôi chảy",
		Vocabulary:  "Phong phú",
		Grammar:     "Ít lỗi",
		Suggestions: []string{"Thêm ví dụ"},
		Improved:    "My hometown is ...",
	}))
	fb, err := svc.EvaluateSpeaking(context.Background(), SpeakingInput{Prompt: "Describe your hometown", Transcript: "My hometown is Hue"})
	require.NoError(t, err)
	assert.Equal(t, 8.0, fb.Score)
}

func TestNotConfigured(t *testing.T) {
	logger := &memLogger{}
	svc := NewService(nil, DefaultConfig(), logger)
	_, err := svc.SolveHomework(context.Background(), HomeworkInput{Problem: "1+1"})
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
	require.Len(t, logger.logs, 1)
	assert.False(t, logger.logs[0].Success)
}

func TestLoggerFailureDoesNotFailTool(t *testing.T) {
	svc, _, logger := newTestService(llm.MockJSON(Solution{Answer: "4", Steps: []string{"2+2"}, Concepts: []string{}}))
	logger.err = errors.New("disk full")
	sol, err := svc.SolveHomework(context.Background(), HomeworkInput{Problem: "2+2"})
	require.NoError(t, err)
	assert.Equal(t, "4", sol.Answer)
}

func TestSchemasReflect(t *testing.T) {
	for _, s := range []*llm.Schema{DeckSchema, WritingSchema, SolutionSchema, MindmapSchema, LessonSchema, SpeakingSchema} {
		assert.Equal(t, "object", s.Definition["type"], s.Name)
		assert.Equal(t, false, s.Definition["additionalProperties"], s.Name)
	}
}
