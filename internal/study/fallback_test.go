package study

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/abhisek/laban/internal/llm"
)

func TestFallbackMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"input", &InputError{Field: "topic", Reason: "is required"}, "Vui lòng nhập đầy đủ thông tin trước khi gửi."},
		{"not configured", fmt.Errorf("flashcards: %w", llm.ErrNotConfigured), "Chưa cấu hình trợ lý AI. Hãy đặt GEMINI_API_KEY (hoặc khóa của nhà cung cấp khác) rồi thử lại."},
		{"rate limit", &llm.ErrRateLimit{Err: errors.New("429")}, "Trợ lý AI đang quá tải. Bạn vui lòng thử lại sau ít phút nhé."},
		{"invalid json", fmt.Errorf("lesson: %w", &llm.ErrInvalidResponse{Kind: llm.InvalidJSON}), "Trợ lý AI trả về kết quả không hợp lệ. Bạn vui lòng thử lại."},
		{"blocked", fmt.Errorf("chat: %w", &llm.ErrContentBlocked{Reason: "SAFETY"}), "Nội dung này không phù hợp để trợ lý AI trả lời. Bạn hãy diễn đạt lại câu hỏi nhé."},
		{"max tokens", &llm.ErrMaxTokensExceeded{}, "Nội dung yêu cầu quá dài. Bạn hãy rút gọn rồi thử lại."},
		{"timeout", fmt.Errorf("chat: %w", context.DeadlineExceeded), "Trợ lý AI phản hồi quá lâu. Bạn vui lòng thử lại."},
		{"canceled", context.Canceled, "Yêu cầu đã bị hủy."},
		{"other", &llm.ErrProviderUnavailable{Err: errors.New("503")}, "Không thể kết nối tới trợ lý AI lúc này. Bạn vui lòng thử lại sau."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FallbackMessage(tt.err); got != tt.want {
				t.Errorf("FallbackMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
