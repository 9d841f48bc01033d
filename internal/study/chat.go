package study

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/abhisek/laban/internal/llm"
	"github.com/abhisek/laban/internal/textmatch"
)

// HotlineNotice is appended to any chat reply once a crisis keyword is seen.
const HotlineNotice = "Nếu bạn đang gặp nguy hiểm hoặc có ý định tự làm hại bản thân, hãy gọi ngay Tổng đài 111 (miễn phí, 24/7) hoặc 115 khi cần cấp cứu, và nói chuyện với một người lớn mà bạn tin tưởng."

// crisisKeywords are matched against the normalized message.
var crisisKeywords = []string{
	"tự tử",
	"tự sát",
	"muốn chết",
	"không muốn sống",
	"chán sống",
	"kết thúc cuộc đời",
	"tự làm hại",
	"rạch tay",
	"cắt tay",
	"suicide",
	"kill myself",
}

// IsCrisis reports whether msg contains a crisis keyword.
func IsCrisis(msg string) bool {
	norm := textmatch.Normalize(msg)
	return lo.SomeBy(crisisKeywords, func(k string) bool {
		return strings.Contains(norm, k)
	})
}

// ChatSession is a mood-support conversation with bounded history.
// It is not safe for concurrent use.
type ChatSession struct {
	svc     *Service
	history []llm.Message
	now     func() time.Time
}

// NewChat starts an empty chat session.
func (s *Service) NewChat() *ChatSession {
	return &ChatSession{svc: s, now: time.Now}
}

// History returns a copy of the kept messages.
func (c *ChatSession) History() []llm.Message {
	return append([]llm.Message(nil), c.history...)
}

// Send posts msg and returns the reply. A failed turn leaves the history
// unchanged. When msg contains a crisis keyword the hotline notice is always
// returned, even if the provider fails.
func (c *ChatSession) Send(ctx context.Context, msg string) (*ChatReply, error) {
	msg, err := c.svc.require("message", msg)
	if err != nil {
		return nil, err
	}
	crisis := IsCrisis(msg)

	msgs := append(c.History(), llm.Message{Role: llm.RoleUser, Content: msg})
	resp, err := c.svc.send(ctx, KindChat, llm.Request{
		System:      chatSystemPrompt,
		Messages:    msgs,
		MaxTokens:   c.svc.cfg.ChatMaxTokens,
		Temperature: c.svc.cfg.Temperature,
	})
	var text string
	if err == nil {
		text, err = llm.Text(resp)
	}
	c.svc.record(ctx, KindChat, msg, resp, err)

	if err != nil {
		if crisis {
			return &ChatReply{Text: HotlineNotice, Crisis: true, At: c.now()}, nil
		}
		return nil, fmt.Errorf("%s: %w", KindChat, err)
	}

	text = strings.TrimSpace(text)
	c.history = append(msgs, llm.Message{Role: llm.RoleAssistant, Content: text})
	c.trim()

	if crisis {
		text += "\n\n" + HotlineNotice
	}
	return &ChatReply{Text: text, Crisis: crisis, At: c.now()}, nil
}

// trim drops the oldest exchanges beyond the configured history size,
// keeping the history starting on a user turn.
func (c *ChatSession) trim() {
	limit := c.svc.cfg.ChatHistory
	if limit <= 0 {
		return
	}
	for len(c.history) > limit {
		c.history = c.history[2:]
	}
}

// Reset clears the conversation.
func (c *ChatSession) Reset() {
	c.history = nil
}
