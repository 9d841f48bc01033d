// Package study forwards study requests to a generative AI provider and
// turns the replies into typed values: flashcard decks, writing feedback,
// homework solutions, mindmaps, lessons with quizzes, speaking feedback and
// a mood-support chat.
package study

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/laban/internal/llm"
	"github.com/abhisek/laban/internal/store"
)

// InteractionLogger records each tool call. store.InteractionRepo satisfies it.
type InteractionLogger interface {
	Append(ctx context.Context, in store.Interaction) error
}

// Service runs the study tools against one provider.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   InteractionLogger
}

// NewService creates a study service. A nil provider makes every tool fail
// with llm.ErrNotConfigured; a nil logger disables interaction logging.
func NewService(provider llm.Provider, cfg Config, logger InteractionLogger) *Service {
	return &Service{provider: provider, cfg: cfg, logger: logger}
}

// WithStudent attaches the student name recorded in interaction logs and
// on the LLM events the request produces.
func WithStudent(ctx context.Context, name string) context.Context {
	return llm.WithStudent(ctx, name)
}

// call is one single-turn tool request.
type call struct {
	kind      string
	system    string
	user      string
	schema    *llm.Schema
	maxTokens int
}

// generate sends c and decodes a structured reply into T.
func generate[T any](ctx context.Context, s *Service, c call) (T, error) {
	var out T
	resp, err := s.send(ctx, c.kind, llm.Request{
		System:      c.system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: c.user}},
		Schema:      c.schema,
		MaxTokens:   c.maxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err == nil {
		out, err = llm.Decode[T](resp)
	}
	s.record(ctx, c.kind, c.user, resp, err)
	if err != nil {
		return out, fmt.Errorf("%s: %w", c.kind, err)
	}
	return out, nil
}

func (s *Service) send(ctx context.Context, kind string, req llm.Request) (*llm.Response, error) {
	if s.provider == nil {
		return nil, llm.ErrNotConfigured
	}
	return s.provider.Generate(llm.WithPurpose(ctx, kind), req)
}

// record appends an interaction log entry. Failures are logged and ignored.
func (s *Service) record(ctx context.Context, kind, input string, resp *llm.Response, err error) {
	if s.logger == nil {
		return
	}
	in := store.Interaction{
		Kind:    kind,
		Student: llm.StudentFrom(ctx),
		Input:   input,
		Success: err == nil,
	}
	switch {
	case err != nil:
		in.Output = err.Error()
	case resp != nil:
		in.Output = string(resp.Content)
	}
	if lerr := s.logger.Append(context.WithoutCancel(ctx), in); lerr != nil {
		slog.Warn("failed to record interaction", "kind", kind, "err", lerr)
	}
}

// require trims v and checks it is non-empty and within the length limit.
func (s *Service) require(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", &InputError{Field: field, Reason: "is required"}
	}
	if s.cfg.MaxInputLength > 0 && utf8.RuneCountInString(v) > s.cfg.MaxInputLength {
		return "", &InputError{Field: field, Reason: fmt.Sprintf("exceeds %d characters", s.cfg.MaxInputLength)}
	}
	return v, nil
}
