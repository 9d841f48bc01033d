package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/abhisek/laban/internal/store"
)

type recordingSink struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (s *recordingSink) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, data)
	return s.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"topic":"Văn","cards":[]}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 7, TotalTokens: 19},
	})
	sink := &recordingSink{}
	p := WithLogging(mock, "gemini", sink)

	ctx := WithStudent(WithPurpose(context.Background(), "flashcards"), "Nguyễn Lan")
	_, err := p.Generate(ctx, Request{
		System:   "Bạn là giáo viên.",
		Messages: []Message{{Role: RoleUser, Content: "Tạo thẻ về Truyện Kiều"}},
		Schema:   SchemaFor[testCardSet]("test-card-set", "cards"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(sink.events))
	}
	ev := sink.events[0]
	if ev.Provider != "gemini" || ev.Purpose != "flashcards" || ev.Student != "Nguyễn Lan" || !ev.Success || ev.Outcome != "ok" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.InputTokens != 12 || ev.OutputTokens != 7 {
		t.Fatalf("unexpected tokens: %d/%d", ev.InputTokens, ev.OutputTokens)
	}
	for _, want := range []string{"[system]", "Truyện Kiều", "[schema: test-card-set]"} {
		if !strings.Contains(ev.RequestBody, want) {
			t.Errorf("request body missing %q", want)
		}
	}
	if !strings.Contains(ev.ResponseBody, `"Văn"`) {
		t.Errorf("response body = %q", ev.ResponseBody)
	}
}

func TestLogging_RecordsFailureAndIgnoresSinkErrors(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrInvalidResponse{Kind: InvalidJSON, Err: errors.New("eof")}})
	sink := &recordingSink{err: errors.New("disk full")}
	p := WithLogging(mock, "openai", sink)

	_, err := p.Generate(context.Background(), Request{})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected provider error to pass through, got %v", err)
	}
	ev := sink.events[0]
	if ev.Success || ev.Outcome != "invalid_json" || ev.ErrorMessage == "" || ev.Purpose != "unknown" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestMetricsAndTimeoutDecorators(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`"ok"`)})
	p := WithMetrics(WithTimeout(mock, 0))
	if _, ok := p.(*MetricsProvider).inner.(*MockProvider); !ok {
		t.Fatal("zero timeout should not wrap the provider")
	}
	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text, _ := Text(resp); text != "ok" {
		t.Fatalf("unexpected text %q", text)
	}
}
