package study

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/laban/internal/llm"
)

func TestIsCrisis(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"Dạo này mình thấy KHÔNG MUỐN SỐNG nữa", true},
		{"mình   muốn   chết", true},
		{"I want to kill myself", true},
		{"Mình lo lắng về kỳ thi", false},
		{"Chết thật, quên làm bài rồi", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsCrisis(tt.msg), tt.msg)
	}
}

func TestChat_KeepsHistory(t *testing.T) {
	svc, mock, logger := newTestService(llm.MockText("Mình nghe đây."), llm.MockText("Bạn đã thử nghỉ ngơi chưa?"))
	chat := svc.NewChat()

	r, err := chat.Send(context.Background(), "Mình mệt quá")
	require.NoError(t, err)
	assert.Equal(t, "Mình nghe đây.", r.Text)
	assert.False(t, r.Crisis)

	_, err = chat.Send(context.Background(), "Học nhiều quá")
	require.NoError(t, err)

	second := mock.Calls[1]
	assert.Nil(t, second.Schema)
	require.Len(t, second.Messages, 3)
	assert.Equal(t, llm.RoleAssistant, second.Messages[1].Role)
	assert.Len(t, chat.History(), 4)
	assert.Len(t, logger.logs, 2)

	chat.Reset()
	assert.Empty(t, chat.History())
}

func TestChat_HistoryIsBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ChatHistory = 4
	mock := llm.NewMockProvider()
	for i := range 5 {
		mock.AddResponse(llm.MockText(fmt.Sprintf("trả lời %d", i)))
	}
	chat := NewService(mock, cfg, nil).NewChat()
	for i := range 5 {
		_, err := chat.Send(context.Background(), fmt.Sprintf("tin %d", i))
		require.NoError(t, err)
	}
	h := chat.History()
	require.Len(t, h, 4)
	assert.Equal(t, llm.RoleUser, h[0].Role)
	assert.Equal(t, "tin 3", h[0].Content)
}

func TestChat_FailedTurnLeavesHistory(t *testing.T) {
	svc, _, _ := newTestService(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	chat := svc.NewChat()
	_, err := chat.Send(context.Background(), "xin chào")
	var unavail *llm.ErrProviderUnavailable
	require.ErrorAs(t, err, &unavail)
	assert.Empty(t, chat.History())
}

func TestChat_CrisisAppendsHotline(t *testing.T) {
	svc, _, _ := newTestService(llm.MockText("Mình rất tiếc khi nghe vậy."))
	r, err := svc.NewChat().Send(context.Background(), "mình muốn tự tử")
	require.NoError(t, err)
	assert.True(t, r.Crisis)
	assert.Contains(t, r.Text, "Mình rất tiếc khi nghe vậy.")
	assert.Contains(t, r.Text, "111")
}

func TestChat_CrisisSurvivesProviderFailure(t *testing.T) {
	svc := NewService(nil, DefaultConfig(), nil)
	r, err := svc.NewChat().Send(context.Background(), "Mình chán sống lắm")
	require.NoError(t, err)
	assert.True(t, r.Crisis)
	assert.Equal(t, HotlineNotice, r.Text)
}

func TestChat_EmptyMessage(t *testing.T) {
	svc, mock, _ := newTestService()
	_, err := svc.NewChat().Send(context.Background(), "  ")
	var inErr *InputError
	require.ErrorAs(t, err, &inErr)
	assert.Zero(t, mock.CallCount())
}
