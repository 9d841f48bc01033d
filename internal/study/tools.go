package study

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/laban/internal/llm"
	"github.com/abhisek/laban/internal/textmatch"
)

// Flashcards generates a deck. Duplicate and blank cards are dropped and the
// deck is cut to the requested count.
func (s *Service) Flashcards(ctx context.Context, in FlashcardInput) (*Deck, error) {
	topic, err := s.require("topic", in.Topic)
	if err != nil {
		return nil, err
	}
	in.Topic = topic
	in.Subject = strings.TrimSpace(in.Subject)
	switch {
	case in.Count <= 0:
		in.Count = s.cfg.DefaultCards
	case in.Count > s.cfg.MaxCards:
		in.Count = s.cfg.MaxCards
	}

	out, err := generate[deckOutput](ctx, s, call{
		kind:      KindFlashcards,
		system:    flashcardSystemPrompt,
		user:      buildFlashcardUserMessage(in),
		schema:    DeckSchema,
		maxTokens: s.cfg.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	cards := lo.Filter(out.Cards, func(c Flashcard, _ int) bool {
		return strings.TrimSpace(c.Front) != "" && strings.TrimSpace(c.Back) != ""
	})
	cards = lo.UniqBy(cards, func(c Flashcard) string { return textmatch.Normalize(c.Front) })
	if len(cards) == 0 {
		return nil, fmt.Errorf("%s: %w", KindFlashcards, &llm.ErrInvalidResponse{
			Kind: llm.SchemaMismatch,
			Err:  fmt.Errorf("deck has no usable cards"),
		})
	}
	if len(cards) > in.Count {
		cards = cards[:in.Count]
	}
	return &Deck{Subject: in.Subject, Topic: in.Topic, Cards: cards}, nil
}

// ReviewWriting grades an essay and suggests corrections.
func (s *Service) ReviewWriting(ctx context.Context, in WritingInput) (*WritingFeedback, error) {
	essay, err := s.require("essay", in.Essay)
	if err != nil {
		return nil, err
	}
	in.Essay = essay

	fb, err := generate[WritingFeedback](ctx, s, call{
		kind:      KindWriting,
		system:    writingSystemPrompt,
		user:      buildWritingUserMessage(in),
		schema:    WritingSchema,
		maxTokens: s.cfg.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

// SolveHomework explains a problem step by step.
func (s *Service) SolveHomework(ctx context.Context, in HomeworkInput) (*Solution, error) {
	problem, err := s.require("problem", in.Problem)
	if err != nil {
		return nil, err
	}
	in.Problem = problem

	sol, err := generate[Solution](ctx, s, call{
		kind:      KindHomework,
		system:    homeworkSystemPrompt,
		user:      buildHomeworkUserMessage(in),
		schema:    SolutionSchema,
		maxTokens: s.cfg.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return &sol, nil
}

// EvaluateSpeaking scores a transcribed spoken answer.
func (s *Service) EvaluateSpeaking(ctx context.Context, in SpeakingInput) (*SpeakingFeedback, error) {
	transcript, err := s.require("transcript", in.Transcript)
	if err != nil {
		return nil, err
	}
	in.Transcript = transcript

	fb, err := generate[SpeakingFeedback](ctx, s, call{
		kind:      KindSpeaking,
		system:    speakingSystemPrompt,
		user:      buildSpeakingUserMessage(in),
		schema:    SpeakingSchema,
		maxTokens: s.cfg.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return &fb, nil
}
