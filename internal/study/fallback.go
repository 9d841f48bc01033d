package study

import (
	"context"
	"errors"

	"github.com/abhisek/laban/internal/llm"
)

// FallbackMessage converts a study or guidance error into the Vietnamese
// message shown to the student. It returns "" for a nil error.
func FallbackMessage(err error) string {
	var (
		inputErr  *InputError
		rateErr   *llm.ErrRateLimit
		invalid   *llm.ErrInvalidResponse
		maxTokens *llm.ErrMaxTokensExceeded
		blocked   *llm.ErrContentBlocked
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &inputErr):
		return "Vui lòng nhập đầy đủ thông tin trước khi gửi."
	case errors.Is(err, llm.ErrNotConfigured):
		return "Chưa cấu hình trợ lý AI. Hãy đặt GEMINI_API_KEY (hoặc khóa của nhà cung cấp khác) rồi thử lại."
	case errors.As(err, &rateErr):
		return "Trợ lý AI đang quá tải. Bạn vui lòng thử lại sau ít phút nhé."
	case errors.As(err, &invalid):
		return "Trợ lý AI trả về kết quả không hợp lệ. Bạn vui lòng thử lại."
	case errors.As(err, &blocked):
		return "Nội dung này không phù hợp để trợ lý AI trả lời. Bạn hãy diễn đạt lại câu hỏi nhé."
	case errors.As(err, &maxTokens):
		return "Nội dung yêu cầu quá dài. Bạn hãy rút gọn rồi thử lại."
	case errors.Is(err, context.DeadlineExceeded):
		return "Trợ lý AI phản hồi quá lâu. Bạn vui lòng thử lại."
	case errors.Is(err, context.Canceled):
		return "Yêu cầu đã bị hủy."
	default:
		return "Không thể kết nối tới trợ lý AI lúc này. Bạn vui lòng thử lại sau."
	}
}
