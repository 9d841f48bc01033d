package study

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/laban/internal/llm"
	"github.com/abhisek/laban/internal/textmatch"
)

// Lesson generates a lesson. Quiz items whose answer does not match exactly
// one of four distinct options are dropped; a lesson left without any quiz
// item is rejected as a schema mismatch.
func (s *Service) Lesson(ctx context.Context, in LessonInput) (*Lesson, error) {
	topic, err := s.require("topic", in.Topic)
	if err != nil {
		return nil, err
	}
	in.Topic = topic
	in.Subject = strings.TrimSpace(in.Subject)
	if in.Grade == 0 {
		in.Grade = 10
	}
	if in.Grade < 10 || in.Grade > 12 {
		return nil, &InputError{Field: "grade", Reason: "must be 10, 11 or 12"}
	}

	lesson, err := generate[Lesson](ctx, s, call{
		kind:      KindLesson,
		system:    lessonSystemPrompt,
		user:      buildLessonUserMessage(in),
		schema:    LessonSchema,
		maxTokens: s.cfg.LessonTokens,
	})
	if err != nil {
		return nil, err
	}

	lesson.Quiz = lo.Filter(lesson.Quiz, func(q QuizItem, _ int) bool {
		return ValidQuizItem(q) == nil
	})
	if len(lesson.Quiz) == 0 {
		return nil, fmt.Errorf("%s: %w", KindLesson, &llm.ErrInvalidResponse{
			Kind: llm.SchemaMismatch,
			Err:  fmt.Errorf("lesson has no valid quiz items"),
		})
	}
	return &lesson, nil
}

// ValidQuizItem checks that q has four options that differ after
// normalization and that its answer matches exactly one of them.
func ValidQuizItem(q QuizItem) error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("empty question")
	}
	if len(q.Options) != 4 {
		return fmt.Errorf("want 4 options, got %d", len(q.Options))
	}
	distinct := lo.Uniq(lo.Map(q.Options, func(o string, _ int) string { return textmatch.Normalize(o) }))
	if len(distinct) != len(q.Options) {
		return fmt.Errorf("options are not distinct")
	}
	if n := textmatch.CountMatches(q.Options, q.Answer); n != 1 {
		return fmt.Errorf("answer %q matches %d options", q.Answer, n)
	}
	return nil
}

// GradeQuiz compares picks with the lesson's answers in order. Picks may be
// option letters or option text; a missing pick counts as wrong.
func GradeQuiz(lesson *Lesson, picks []string) QuizGrade {
	g := QuizGrade{Total: len(lesson.Quiz)}
	for i, q := range lesson.Quiz {
		var pick string
		if i < len(picks) {
			pick = ResolvePick(q, picks[i])
		}
		ok := pick != "" && textmatch.Equal(pick, q.Answer)
		if ok {
			g.Correct++
		}
		g.Items = append(g.Items, QuizItemResult{
			Question: q.Question,
			Pick:     pick,
			Answer:   q.Answer,
			Correct:  ok,
		})
	}
	return g
}

// ResolvePick turns option text or a letter (A-D) into the option text.
// Option text wins over a letter with the same spelling.
func ResolvePick(q QuizItem, pick string) string {
	p := strings.TrimSpace(pick)
	if p == "" {
		return ""
	}
	if i := textmatch.IndexOf(q.Options, p); i >= 0 {
		return q.Options[i]
	}
	if len(p) == 1 {
		idx := int(strings.ToUpper(p)[0]) - 'A'
		if idx >= 0 && idx < len(q.Options) {
			return q.Options[idx]
		}
	}
	return p
}
